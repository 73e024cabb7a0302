package cmd

import (
	"errors"
	"fmt"
	"io"

	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/messenger"
	"courierbot/internal/adapters/out/postgres"
	"courierbot/internal/adapters/out/postgres/archiverepo"
	"courierbot/internal/adapters/out/scheduler"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/jobs"

	"go.uber.org/zap"
)

type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	uowFactory *memory.UnitOfWorkFactory
	deadlines  *scheduler.DeadlineScheduler
	reminders  *scheduler.ReminderTimers
	notifier   ports.Notifier
	archive    ports.Archive
	matcher    services.AssignmentMatcher
	closers    []io.Closer
}

// NewCompositionRoot builds the shared state and the outbound adapters selected
// by cfg. The returned root must be closed on shutdown.
func NewCompositionRoot(cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewState(cfg.HistoryRetention)),
		deadlines:  scheduler.NewDeadlineScheduler(nil),
		matcher:    services.NewAssignmentMatcher(),
	}
	c.reminders = scheduler.NewReminderTimers(c.deadlines)

	m, err := c.newMessenger()
	if err != nil {
		return nil, err
	}
	c.notifier = messenger.NewBestEffortNotifier(m, logger, messenger.DefaultNotifyTimeout)

	c.archive, err = c.newArchive()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) newMessenger() (ports.Messenger, error) {
	switch c.cfg.Messenger {
	case MessengerKafka:
		m := messenger.NewKafkaMessenger([]string{c.cfg.KafkaHost}, c.cfg.KafkaNotificationsTopic)
		c.closers = append(c.closers, m)
		c.logger.Info("Publishing notifications to kafka",
			zap.String("host", c.cfg.KafkaHost),
			zap.String("topic", c.cfg.KafkaNotificationsTopic))
		return m, nil
	case MessengerAMQP:
		m, err := messenger.DialAMQPMessenger(c.cfg.AMQPURL, c.cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("failed to connect amqp messenger: %w", err)
		}
		c.closers = append(c.closers, m)
		c.logger.Info("Publishing notifications to amqp", zap.String("exchange", c.cfg.AMQPExchange))
		return m, nil
	default:
		return messenger.NewLogMessenger(c.logger), nil
	}
}

func (c *CompositionRoot) newArchive() (ports.Archive, error) {
	if !c.cfg.DB.Enabled() {
		c.logger.Info("Archive database not configured, completed orders are not archived")
		return archiverepo.NopArchive{}, nil
	}

	db, err := postgres.Open(c.cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB)

	return archiverepo.NewGormArchive(db), nil
}

// Close releases the messenger and archive connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) feedbackUoWFactory() commands.FeedbackUoWFactory {
	return FuncFeedbackUoWFactory(func() commands.FeedbackUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readUoWFactory() queries.ReadUoWFactory {
	return FuncReadUoWFactory(func() queries.ReadUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.cfg.DefaultPayment, nil)
}

func (c *CompositionRoot) CreateRequestInputCommandHandler() commands.RequestInputCommandHandler {
	return commands.NewRequestInputCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateEditFieldCommandHandler() commands.EditFieldCommandHandler {
	return commands.NewEditFieldCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitInputCommandHandler() commands.SubmitInputCommandHandler {
	return commands.NewSubmitInputCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetPaymentCommandHandler() commands.SetPaymentCommandHandler {
	return commands.NewSetPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelDraftCommandHandler() commands.CancelDraftCommandHandler {
	return commands.NewCancelDraftCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchCommandHandler() commands.DispatchCommandHandler {
	return commands.NewDispatchCommandHandler(c.fullUoWFactory(), c.matcher)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.fullUoWFactory(), c.matcher, c.notifier, nil)
}

func (c *CompositionRoot) CreateDriverAdvanceCommandHandler() *commands.DriverAdvanceCommandHandler {
	return commands.NewDriverAdvanceCommandHandler(
		c.fullUoWFactory(),
		c.notifier,
		c.reminders,
		c.archive,
		c.cfg.ReminderDelay,
		c.logger,
		nil,
	)
}

func (c *CompositionRoot) CreateDriverConnectCommandHandler() commands.DriverConnectCommandHandler {
	return commands.NewDriverConnectCommandHandler(c.driverUoWFactory(), c.notifier, c.cfg.OperatorIDs, nil)
}

func (c *CompositionRoot) CreateDriverDisconnectCommandHandler() commands.DriverDisconnectCommandHandler {
	return commands.NewDriverDisconnectCommandHandler(c.driverUoWFactory(), c.notifier, c.cfg.OperatorIDs, nil)
}

func (c *CompositionRoot) CreateFeedbackCommandHandler() commands.FeedbackCommandHandler {
	return commands.NewFeedbackCommandHandler(
		c.feedbackUoWFactory(),
		c.notifier,
		c.archive,
		c.cfg.OperatorIDs,
		c.logger,
		nil,
	)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetRecentOrdersQueryHandler() queries.GetRecentOrdersQueryHandler {
	return queries.NewGetRecentOrdersQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetConnectedDriversQueryHandler() queries.GetConnectedDriversQueryHandler {
	return queries.NewGetConnectedDriversQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readUoWFactory())
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.readUoWFactory())
}

// CreateHTTPServer wires every handler into the inbound API.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		RequestInput: c.CreateRequestInputCommandHandler(),
		EditField:    c.CreateEditFieldCommandHandler(),
		SubmitInput:  c.CreateSubmitInputCommandHandler(),
		SetPayment:   c.CreateSetPaymentCommandHandler(),
		CancelDraft:  c.CreateCancelDraftCommandHandler(),
		Dispatch:     c.CreateDispatchCommandHandler(),
		AssignDriver: c.CreateAssignDriverCommandHandler(),
		Advance:      c.CreateDriverAdvanceCommandHandler(),
		Connect:      c.CreateDriverConnectCommandHandler(),
		Disconnect:   c.CreateDriverDisconnectCommandHandler(),
		Feedback:     c.CreateFeedbackCommandHandler(),

		GetActiveOrders:     c.CreateGetActiveOrdersQueryHandler(),
		GetRecentOrders:     c.CreateGetRecentOrdersQueryHandler(),
		GetConnectedDrivers: c.CreateGetConnectedDriversQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		TrackOrder:          c.CreateTrackOrderQueryHandler(),
	})
}

// CreateJobManager returns the jobs polling the reminder deadlines.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.deadlines, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncFeedbackUoWFactory func() commands.FeedbackUoW

func (f FuncFeedbackUoWFactory) Create() commands.FeedbackUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReadUoWFactory func() queries.ReadUoW

func (f FuncReadUoWFactory) Create() queries.ReadUoW {
	return f()
}
