package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthlog"

// Metrics holds every counter the application records.
type Metrics struct {
	WakeupsScheduled        prometheus.Counter
	WakeupsCancelled        prometheus.Counter
	RemindersFired          prometheus.Counter
	NotificationsShown      prometheus.Counter
	NotificationsSuppressed prometheus.Counter
	Imports                 *prometheus.CounterVec
	ImportedRecords         *prometheus.CounterVec
	Exports                 *prometheus.CounterVec
}

// New registers the application metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WakeupsScheduled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_wakeups_scheduled_total",
			Help:      "Reminder wake-ups registered with the alarm scheduler.",
		}),
		WakeupsCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_wakeups_cancelled_total",
			Help:      "Reminder wake-ups cancelled.",
		}),
		RemindersFired: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_fired_total",
			Help:      "Reminder wake-ups handled.",
		}),
		NotificationsShown: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_notifications_shown_total",
			Help:      "Reminder notifications delivered.",
		}),
		NotificationsSuppressed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_notifications_suppressed_total",
			Help:      "Reminder notifications skipped because the set was already logged today.",
		}),
		Imports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Data imports by result.",
		}, []string{"result"}),
		ImportedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_records_total",
			Help:      "Records written by data imports, by category.",
		}, []string{"category"}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Data exports by result.",
		}, []string{"result"}),
	}
}

// NewUnregistered builds metrics on a private registry. Used by tests and by
// commands that do not expose /metrics.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
