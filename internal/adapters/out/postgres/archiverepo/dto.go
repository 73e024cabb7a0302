// Package archiverepo maps completed orders and feedback to archive tables.
package archiverepo

import (
	"time"

	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// CompletedOrderDTO is one row per delivered order.
type CompletedOrderDTO struct {
	Number     uint64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedBy  string `gorm:"not null"`
	CustomerID string `gorm:"index;not null"`
	DriverID   string `gorm:"index;not null"`
	Location   string `gorm:"not null"`
	Notes      string
	Payment    string        `gorm:"type:varchar(16);not null"`
	Milestones MilestonesDTO `gorm:"embedded;embeddedPrefix:at_"`
	ArchivedAt time.Time     `gorm:"autoCreateTime"`
}

func (CompletedOrderDTO) TableName() string {
	return "completed_orders"
}

// MilestonesDTO holds the lifecycle instants. A milestone that was never
// recorded stays NULL.
type MilestonesDTO struct {
	Created   *time.Time
	Assigned  *time.Time
	PickedUp  *time.Time
	Arrived   *time.Time
	Completed *time.Time
}

// FeedbackDTO is the rating and optional comment of a delivered order.
type FeedbackDTO struct {
	OrderNumber uint64 `gorm:"primaryKey;autoIncrement:false"`
	DriverID    string `gorm:"index;not null"`
	Stars       int    `gorm:"type:smallint;not null"`
	Comment     string
	UpdatedAt   time.Time
}

func (FeedbackDTO) TableName() string {
	return "order_feedback"
}

// Migrate creates or updates the archive tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CompletedOrderDTO{}, &FeedbackDTO{})
}

func fromSnapshot(s order.Snapshot) CompletedOrderDTO {
	at := func(m order.Milestone) *time.Time {
		if t, ok := s.MilestoneAt(m); ok {
			t = t.UTC()
			return &t
		}
		return nil
	}

	return CompletedOrderDTO{
		Number:     s.Number.Value(),
		CreatedBy:  s.CreatedBy.String(),
		CustomerID: s.CustomerID.String(),
		DriverID:   s.DriverID.String(),
		Location:   s.Location,
		Notes:      s.Notes,
		Payment:    s.Payment.String(),
		Milestones: MilestonesDTO{
			Created:   at(order.MilestoneCreated),
			Assigned:  at(order.MilestoneAssigned),
			PickedUp:  at(order.MilestonePickedUp),
			Arrived:   at(order.MilestoneArrived),
			Completed: at(order.MilestoneCompleted),
		},
	}
}

func fromFeedback(f feedback.Feedback) FeedbackDTO {
	return FeedbackDTO{
		OrderNumber: f.OrderNumber.Value(),
		DriverID:    f.DriverID.String(),
		Stars:       f.Rating.Stars(),
		Comment:     f.Comment,
	}
}
