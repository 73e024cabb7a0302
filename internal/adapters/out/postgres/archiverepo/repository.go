package archiverepo

import (
	"context"
	"fmt"

	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormArchive writes completed orders and feedback with GORM. Writes are
// idempotent: an order is stored once, feedback is upserted.
type GormArchive struct {
	db *gorm.DB
}

func NewGormArchive(db *gorm.DB) *GormArchive {
	return &GormArchive{db: db}
}

// ArchiveOrder stores a completed order. Archiving the same order twice keeps
// the first row.
func (a *GormArchive) ArchiveOrder(ctx context.Context, snapshot order.Snapshot) error {
	if snapshot.Status != order.Completed {
		return fmt.Errorf("order %s is %s, only completed orders are archived", snapshot.Number, snapshot.Status)
	}

	dto := fromSnapshot(snapshot)
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// ArchiveFeedback stores the rating of an order, or updates it when the
// comment arrives later.
func (a *GormArchive) ArchiveFeedback(ctx context.Context, entry feedback.Feedback) error {
	if err := entry.Rating.Validate(); err != nil {
		return err
	}

	dto := fromFeedback(entry)
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"driver_id", "stars", "comment", "updated_at"}),
		}).
		Create(&dto).Error
}

// NopArchive drops everything. It stands in when no archive database is configured.
type NopArchive struct{}

func (NopArchive) ArchiveOrder(context.Context, order.Snapshot) error {
	return nil
}

func (NopArchive) ArchiveFeedback(context.Context, feedback.Feedback) error {
	return nil
}
