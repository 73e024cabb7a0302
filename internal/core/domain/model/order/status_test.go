package order_test

import (
	"testing"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "created", order.Created.String())
	assert.Equal(t, "assigned", order.Assigned.String())
	assert.Equal(t, "picked-up", order.PickedUp.String())
	assert.Equal(t, "arrived", order.Arrived.String())
	assert.Equal(t, "completed", order.Completed.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Created, order.Assigned, order.PickedUp, order.Arrived, order.Completed} {
		require.NoError(t, s.Validate(), s.String())
	}
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("picked-up")
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, s)

	_, err = order.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transitionFn func(order.Status) (order.Status, error)

	transitions := map[string]struct {
		fn   transitionFn
		from order.Status
		to   order.Status
	}{
		"assign":   {order.Status.Assign, order.Created, order.Assigned},
		"pickup":   {order.Status.Pickup, order.Assigned, order.PickedUp},
		"arrive":   {order.Status.Arrive, order.PickedUp, order.Arrived},
		"complete": {order.Status.Complete, order.Arrived, order.Completed},
	}
	all := []order.Status{order.Unknown, order.Created, order.Assigned, order.PickedUp, order.Arrived, order.Completed}

	for name, tr := range transitions {
		t.Run(name, func(t *testing.T) {
			for _, from := range all {
				got, err := tr.fn(from)

				if from == tr.from {
					require.NoError(t, err)
					assert.Equal(t, tr.to, got)
					continue
				}
				require.ErrorIs(t, err, errs.ErrPreconditionFailed, "from %s", from)
				assert.Equal(t, order.Status(0), got)
			}
		})
	}
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, order.Created.IsDraft())
	assert.False(t, order.Assigned.IsDraft())
	assert.True(t, order.Completed.IsTerminal())
	assert.False(t, order.Arrived.IsTerminal())
}
