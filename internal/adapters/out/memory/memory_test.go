package memory_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	operator = kernel.MustNewActorID("admin1")
	driver42 = kernel.MustNewActorID("42")
	now      = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

// StateTestSuite exercises the unit of work and the repositories over a fresh
// State per test.
type StateTestSuite struct {
	suite.Suite
	ctx     context.Context
	state   *memory.State
	factory *memory.UnitOfWorkFactory
}

func TestStateTestSuite(t *testing.T) {
	suite.Run(t, new(StateTestSuite))
}

func (s *StateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.state = memory.NewState(3)
	s.factory = memory.NewUnitOfWorkFactory(s.state)
}

// inTx runs fn inside a committed unit of work.
func (s *StateTestSuite) inTx(fn func(uow ports.UnitOfWork)) {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	fn(uow)
	s.Require().NoError(uow.Commit(s.ctx))
}

func (s *StateTestSuite) newDraft() *order.Order {
	var draft *order.Order
	s.inTx(func(uow ports.UnitOfWork) {
		number, err := uow.OrderRepository().NextNumber(s.ctx)
		s.Require().NoError(err)

		draft, err = order.NewDraft(number, operator, order.PaymentCash, now)
		s.Require().NoError(err)
		s.Require().NoError(uow.OrderRepository().AddDraft(s.ctx, draft))
	})
	return draft
}

func (s *StateTestSuite) get(number kernel.OrderNumber) (*order.Order, error) {
	var (
		o   *order.Order
		err error
	)
	s.inTx(func(uow ports.UnitOfWork) {
		o, err = uow.OrderRepository().Get(s.ctx, number)
	})
	return o, err
}

func (s *StateTestSuite) activate(draft *order.Order) *order.Order {
	s.Require().NoError(draft.SetField(operator, order.FieldLocation, "221B Baker St"))
	s.Require().NoError(draft.SetField(operator, order.FieldCustomerID, "999"))
	s.Require().NoError(draft.Assign(operator, driver42, now))

	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Activate(s.ctx, draft))
	})
	return draft
}

func (s *StateTestSuite) complete(o *order.Order) {
	for _, tr := range []order.Transition{order.TransitionPickup, order.TransitionArrive, order.TransitionComplete} {
		_, err := o.Advance(driver42, tr, now)
		s.Require().NoError(err)
	}
	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Archive(s.ctx, o))
	})
}

func (s *StateTestSuite) TestNextNumber_IsMonotonic() {
	first := s.newDraft()
	second := s.newDraft()

	s.Equal("0001", first.Number().String())
	s.Equal("0002", second.Number().String())
}

func (s *StateTestSuite) TestNumbersAreNotReusedAfterRollback() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	_, err := uow.OrderRepository().NextNumber(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(uow.Rollback(s.ctx))

	s.Equal("0002", s.newDraft().Number().String())
}

func (s *StateTestSuite) TestGet_ReturnsCopies() {
	draft := s.newDraft()

	loaded, err := s.get(draft.Number())
	s.Require().NoError(err)
	s.Require().NoError(loaded.SetField(operator, order.FieldNotes, "not stored"))

	reloaded, err := s.get(draft.Number())
	s.Require().NoError(err)
	s.Empty(reloaded.Notes())
}

func (s *StateTestSuite) TestGet_UnknownNumber() {
	_, err := s.get(kernel.MustParseOrderNumber("77"))

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *StateTestSuite) TestUpdate_Draft() {
	draft := s.newDraft()
	s.Require().NoError(draft.SetField(operator, order.FieldNotes, "fragile"))

	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Update(s.ctx, draft))
	})

	loaded, err := s.get(draft.Number())
	s.Require().NoError(err)
	s.Equal("fragile", loaded.Notes())
}

func (s *StateTestSuite) TestUpdate_RefusesToMoveBetweenSets() {
	draft := s.newDraft()
	s.Require().NoError(draft.SetField(operator, order.FieldLocation, "221B Baker St"))
	s.Require().NoError(draft.SetField(operator, order.FieldCustomerID, "999"))
	s.Require().NoError(draft.Assign(operator, driver42, now))

	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().Error(uow.OrderRepository().Update(s.ctx, draft))
	})
}

func (s *StateTestSuite) TestRollback_DiscardsWrites() {
	draft := s.newDraft()
	s.Require().NoError(draft.SetField(operator, order.FieldNotes, "discarded"))

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.OrderRepository().Update(s.ctx, draft))
	s.True(uow.DriverRegistry().Connect(driver.MustNewInfo("42", "Alice")))
	s.Require().NoError(uow.Rollback(s.ctx))

	loaded, err := s.get(draft.Number())
	s.Require().NoError(err)
	s.Empty(loaded.Notes())
	s.inTx(func(uow ports.UnitOfWork) {
		s.Zero(uow.DriverRegistry().Count())
	})
}

func (s *StateTestSuite) TestRollback_AfterCommitIsHarmless() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.Commit(s.ctx))

	s.Require().ErrorIs(uow.Rollback(s.ctx), memory.ErrNoTransaction)

	// The state is free again.
	s.newDraft()
}

func (s *StateTestSuite) TestRepositoriesRequireATransaction() {
	uow := s.factory.Create()

	_, err := uow.OrderRepository().Get(s.ctx, kernel.MustParseOrderNumber("1"))

	s.Require().ErrorIs(err, memory.ErrNoTransaction)
}

func (s *StateTestSuite) TestBegin_HonoursCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.factory.Create().Begin(ctx)

	s.Require().ErrorIs(err, context.Canceled)
	s.newDraft()
}

func (s *StateTestSuite) TestActivate_MovesDraftToActive() {
	draft := s.activate(s.newDraft())

	s.inTx(func(uow ports.UnitOfWork) {
		repo := uow.OrderRepository()

		active, err := repo.ListActive(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(active, 1)
		s.Equal(draft.Number(), active[0].Number())

		_, err = repo.FindAwaitingInput(s.ctx, operator)
		s.Require().ErrorIs(err, errs.ErrObjectNotFound)

		s.Require().ErrorIs(repo.RemoveDraft(s.ctx, draft.Number()), errs.ErrObjectNotFound)
	})
}

func (s *StateTestSuite) TestActivate_RequiresAssignedStatus() {
	draft := s.newDraft()

	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().Error(uow.OrderRepository().Activate(s.ctx, draft))
	})
}

func (s *StateTestSuite) TestArchive_PrependsAndTrimsHistory() {
	var numbers []kernel.OrderNumber
	for range 4 {
		o := s.activate(s.newDraft())
		s.complete(o)
		numbers = append(numbers, o.Number())
	}

	s.inTx(func(uow ports.UnitOfWork) {
		repo := uow.OrderRepository()

		history, err := repo.ListHistory(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(history, 3, "retention is 3")
		s.Equal(numbers[3], history[0].Number())
		s.Equal(numbers[1], history[2].Number())

		limited, err := repo.ListHistory(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(limited, 1)
		s.Equal(numbers[3], limited[0].Number())

		active, err := repo.ListActive(s.ctx)
		s.Require().NoError(err)
		s.Empty(active)

		_, err = repo.Get(s.ctx, numbers[0])
		s.Require().ErrorIs(err, errs.ErrObjectNotFound, "trimmed out of the history")

		completed, err := repo.Get(s.ctx, numbers[3])
		s.Require().NoError(err)
		s.Equal(order.Completed, completed.Status())
	})
}

func (s *StateTestSuite) TestRemoveDraft() {
	draft := s.newDraft()

	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().RemoveDraft(s.ctx, draft.Number()))
	})

	_, err := s.get(draft.Number())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *StateTestSuite) TestFindAwaitingInput() {
	draft := s.newDraft()
	other := s.newDraft()
	s.Require().NoError(draft.RequestInput(operator, order.FieldLocation))
	s.inTx(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Update(s.ctx, draft))
	})

	s.inTx(func(uow ports.UnitOfWork) {
		found, err := uow.OrderRepository().FindAwaitingInput(s.ctx, operator)
		s.Require().NoError(err)
		s.Equal(draft.Number(), found.Number())
		s.NotEqual(other.Number(), found.Number())

		_, err = uow.OrderRepository().FindAwaitingInput(s.ctx, kernel.MustNewActorID("admin2"))
		s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (s *StateTestSuite) TestDriverRegistry() {
	alice := driver.MustNewInfo("42", "Alice")
	bob := driver.MustNewInfo("7", "Bob")

	s.inTx(func(uow ports.UnitOfWork) {
		s.True(uow.DriverRegistry().Connect(alice))
		uow.DriverRegistry().Connect(bob)
	})

	s.inTx(func(uow ports.UnitOfWork) {
		registry := uow.DriverRegistry()

		s.False(registry.Connect(driver.MustNewInfo("42", "Alice B.")), "reconnect is not new")
		s.True(registry.IsConnected(alice.ID()))
		s.Equal(2, registry.Count())

		list := registry.List()
		first := slices.Collect(list)
		second := slices.Collect(list)
		s.ElementsMatch([]driver.Info{alice, bob}, first)
		s.ElementsMatch(first, second, "the sequence is restartable")
	})

	s.inTx(func(uow ports.UnitOfWork) {
		registry := uow.DriverRegistry()

		info, ok := registry.Get(alice.ID())
		s.True(ok)
		s.Equal("Alice B.", info.DisplayName())

		s.True(registry.Disconnect(bob.ID()))
		s.False(registry.Disconnect(kernel.MustNewActorID("nobody")))
	})

	s.inTx(func(uow ports.UnitOfWork) {
		s.False(uow.DriverRegistry().IsConnected(bob.ID()))
		s.Equal(1, uow.DriverRegistry().Count())
	})
}

func (s *StateTestSuite) TestFeedbackRepository() {
	number := kernel.MustParseOrderNumber("1")
	rating, err := feedback.NewRating(4)
	s.Require().NoError(err)

	s.inTx(func(uow ports.UnitOfWork) {
		uow.FeedbackRepository().OpenRating(driver42, number)
	})

	s.inTx(func(uow ports.UnitOfWork) {
		repo := uow.FeedbackRepository()
		pending, ok := repo.PendingRating(driver42)
		s.Require().True(ok)
		s.Equal(number, pending)

		repo.RecordRating(feedback.New(number, driver42, rating))
	})

	s.inTx(func(uow ports.UnitOfWork) {
		repo := uow.FeedbackRepository()
		_, ok := repo.PendingRating(driver42)
		s.False(ok)
		pending, ok := repo.PendingComment(driver42)
		s.Require().True(ok)
		s.Equal(number, pending)

		repo.RecordComment(driver42, number, "smooth ride")
	})

	s.inTx(func(uow ports.UnitOfWork) {
		repo := uow.FeedbackRepository()
		_, ok := repo.PendingComment(driver42)
		s.False(ok)
		s.False(repo.SkipComment(driver42))

		entry, ok := repo.Get(number)
		s.Require().True(ok)
		s.Equal(4, entry.Rating.Stars())
		s.Equal("smooth ride", entry.Comment)
	})
}

func TestUnitOfWork_SerializesAccess(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewState(0))

	const workers = 20
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := factory.Create()
			if !assert.NoError(t, uow.Begin(ctx)) {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			uow.DriverRegistry().Connect(driver.MustNewInfo(string(rune('a'+i)), ""))
			assert.NoError(t, uow.Commit(ctx))
		}()
	}
	wg.Wait()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	assert.Equal(t, workers, uow.DriverRegistry().Count())
}
