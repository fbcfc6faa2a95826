package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_log",
		Subsystem: "persistence",
		Name:      "users_created_total",
		Help:      "Number of users persisted to MongoDB.",
	})
	exercisesRecordedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_log",
		Subsystem: "persistence",
		Name:      "exercises_recorded_total",
		Help:      "Number of exercise records persisted to MongoDB.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_log",
		Subsystem: "persistence",
		Name:      "last_exercise_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise record persisted.",
	})
)

func init() {
	prometheus.MustRegister(usersCreatedCounter, exercisesRecordedCounter, exercisePersistGauge)
}

// RecordUserCreated increments the user creation counter.
func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

// RecordExercisePersisted counts the record and updates the persistence
// watermark gauge.
func RecordExercisePersisted(ts time.Time) {
	exercisesRecordedCounter.Inc()
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
}
