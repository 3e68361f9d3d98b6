package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the profile service.
type Metrics struct {
	SavesTotal         *prometheus.CounterVec
	ConflictsTotal     prometheus.Counter
	BioCompletions     prometheus.Counter
	ProfilesDeleted    prometheus.Counter
	SaveDuration       prometheus.Histogram
	RequestDuration    *prometheus.HistogramVec
	CacheWriteFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SavesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hustings_profile_saves_total",
			Help: "Profile saves by update channel and outcome",
		}, []string{"channel", "outcome"}),
		ConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hustings_district_conflicts_total",
			Help: "Saves rejected because the district was claimed by another identity",
		}),
		BioCompletions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hustings_bio_completions_total",
			Help: "First-time bio completions crossing the configured length threshold",
		}),
		ProfilesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hustings_profiles_deleted_total",
			Help: "Profiles destroyed on account deletion",
		}),
		SaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hustings_profile_save_duration_seconds",
			Help:    "End to end save latency including the authoritative reload",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hustings_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		CacheWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hustings_cache_write_failures_total",
			Help: "Best-effort cache mirror writes that failed",
		}),
	}
}

// IncrementSave records a save outcome for one update channel.
func (m *Metrics) IncrementSave(channel, outcome string) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues(channel, outcome).Inc()
}
