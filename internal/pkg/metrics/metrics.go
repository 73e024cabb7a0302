// Package metrics declares the prometheus collectors of the dispatch service.
// Collectors are registered on the default registry, which the HTTP adapter
// exposes on /metrics.
package metrics

import (
	"courierbot/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierbot_orders_created_total",
		Help: "Total number of draft orders created by operators.",
	})

	OrdersDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierbot_orders_dispatched_total",
		Help: "Total number of drafts moved to the active set by assigning a driver.",
	})

	OrdersCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierbot_orders_completed_total",
		Help: "Total number of orders moved to the completed history.",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierbot_orders_cancelled_total",
		Help: "Total number of drafts cancelled by operators.",
	})

	OperationRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierbot_operation_rejected_total",
		Help: "Total number of operations rejected by a guard, by operation and error kind.",
	},
		[]string{"operation", "kind"},
	)

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courierbot_notifications_total",
		Help: "Total number of notifications handed to the messenger, by kind and outcome.",
	},
		[]string{"kind", "outcome"},
	)

	RemindersFiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courierbot_reminders_fired_total",
		Help: "Total number of late delivery reminders that fired.",
	})

	ConnectedDrivers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "courierbot_connected_drivers",
		Help: "Current number of drivers in the registry.",
	})
)

// ObserveRejection counts a failed operation under the kind of its error.
func ObserveRejection(operation string, err error) {
	if err == nil {
		return
	}
	OperationRejectedTotal.WithLabelValues(operation, errs.KindOf(err).String()).Inc()
}
