package archiverepo_test

import (
	"context"
	"testing"
	"time"

	"courierbot/internal/adapters/out/postgres/archiverepo"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	operator = kernel.MustNewActorID("admin1")
	driver42 = kernel.MustNewActorID("42")
	start    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

// ArchiveIntegrationTestSuite verifies the archive tables against a real
// PostgreSQL started in a container.
type ArchiveIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	archive   *archiverepo.GormArchive
}

func TestArchiveIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ArchiveIntegrationTestSuite))
}

func (suite *ArchiveIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(archiverepo.Migrate(db))
}

func (suite *ArchiveIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE completed_orders, order_feedback").Error)
	suite.archive = archiverepo.NewGormArchive(suite.db)
}

func (suite *ArchiveIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ArchiveIntegrationTestSuite) completedOrder(number string) order.Snapshot {
	o, err := order.NewDraft(kernel.MustParseOrderNumber(number), operator, order.PaymentQRCode, start)
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetField(operator, order.FieldLocation, "221B Baker St"))
	suite.Require().NoError(o.SetField(operator, order.FieldCustomerID, "999"))
	suite.Require().NoError(o.Assign(operator, driver42, start.Add(time.Minute)))
	for i, tr := range []order.Transition{order.TransitionPickup, order.TransitionArrive, order.TransitionComplete} {
		_, err = o.Advance(driver42, tr, start.Add(time.Duration(i+2)*time.Minute))
		suite.Require().NoError(err)
	}
	return o.Snapshot()
}

func (suite *ArchiveIntegrationTestSuite) TestArchiveOrder_StoresAllMilestones() {
	ctx := context.Background()
	snap := suite.completedOrder("7")

	suite.Require().NoError(suite.archive.ArchiveOrder(ctx, snap))

	var dto archiverepo.CompletedOrderDTO
	suite.Require().NoError(suite.db.First(&dto, "number = ?", 7).Error)
	suite.Equal("999", dto.CustomerID)
	suite.Equal("42", dto.DriverID)
	suite.Equal("qr-code", dto.Payment)
	suite.Require().NotNil(dto.Milestones.PickedUp)
	suite.True(start.Add(2 * time.Minute).Equal(*dto.Milestones.PickedUp))
	suite.Require().NotNil(dto.Milestones.Completed)
	suite.False(dto.ArchivedAt.IsZero())
}

func (suite *ArchiveIntegrationTestSuite) TestArchiveOrder_IsIdempotent() {
	ctx := context.Background()
	snap := suite.completedOrder("8")

	suite.Require().NoError(suite.archive.ArchiveOrder(ctx, snap))
	suite.Require().NoError(suite.archive.ArchiveOrder(ctx, snap))

	var count int64
	suite.Require().NoError(suite.db.Model(&archiverepo.CompletedOrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *ArchiveIntegrationTestSuite) TestArchiveOrder_RejectsActiveOrders() {
	snap := suite.completedOrder("9")
	snap.Status = order.Arrived

	suite.Require().Error(suite.archive.ArchiveOrder(context.Background(), snap))
}

func (suite *ArchiveIntegrationTestSuite) TestArchiveFeedback_Upserts() {
	ctx := context.Background()
	number := kernel.MustParseOrderNumber("10")
	rating, err := feedback.NewRating(3)
	suite.Require().NoError(err)
	entry := feedback.New(number, driver42, rating)

	suite.Require().NoError(suite.archive.ArchiveFeedback(ctx, entry))
	suite.Require().NoError(suite.archive.ArchiveFeedback(ctx, entry.WithComment("gate code missing")))

	var dtos []archiverepo.FeedbackDTO
	suite.Require().NoError(suite.db.Find(&dtos).Error)
	suite.Require().Len(dtos, 1)
	suite.Equal(3, dtos[0].Stars)
	suite.Equal("gate code missing", dtos[0].Comment)
}

func (suite *ArchiveIntegrationTestSuite) TestArchiveFeedback_RequiresRating() {
	entry := feedback.New(kernel.MustParseOrderNumber("11"), driver42, feedback.Rating{})

	suite.Require().Error(suite.archive.ArchiveFeedback(context.Background(), entry))
}

func TestNopArchive(t *testing.T) {
	var archive archiverepo.NopArchive

	require.NoError(t, archive.ArchiveOrder(t.Context(), order.Snapshot{}))
	require.NoError(t, archive.ArchiveFeedback(t.Context(), feedback.Feedback{}))
}
