package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProfilesCreated  prometheus.Counter
	PaymentsRecorded *prometheus.CounterVec
	ScoresComputed   prometheus.Counter
	ScoreValues      prometheus.Histogram
	MutationDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bureau_profiles_created_total",
			Help: "Total number of credit profiles created",
		}),
		PaymentsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bureau_payments_recorded_total",
			Help: "Total payments recorded, by outcome",
		}, []string{"outcome"}),
		ScoresComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bureau_scores_computed_total",
			Help: "Total score recomputations",
		}),
		ScoreValues: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bureau_credit_score",
			Help:    "Distribution of computed credit scores",
			Buckets: []float64{300, 400, 500, 550, 600, 650, 700, 750, 800, 850},
		}),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bureau_profile_mutation_duration_seconds",
			Help:    "Duration of profile mutations (authorization through event emission)",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) IncrementProfilesCreated() {
	m.ProfilesCreated.Inc()
}

func (m *Metrics) IncrementPaymentsRecorded(onTime bool) {
	outcome := "on_time"
	if !onTime {
		outcome = "default"
	}
	m.PaymentsRecorded.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveScore(score uint64) {
	m.ScoresComputed.Inc()
	m.ScoreValues.Observe(float64(score))
}

func (m *Metrics) ObserveMutation(start time.Time) {
	m.MutationDuration.Observe(time.Since(start).Seconds())
}
