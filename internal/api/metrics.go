package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics counts submissions per form and outcome.
type metrics struct {
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formkit_submissions_total",
				Help: "Total number of validated submissions",
			},
			[]string{"form", "valid"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formkit_submission_duration_seconds",
				Help:    "Time spent binding and validating a submission",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"form"},
		),
	}
	reg.MustRegister(m.submissions, m.duration)
	return m
}

func (m *metrics) observe(form string, valid bool, started time.Time) {
	m.submissions.WithLabelValues(form, strconv.FormatBool(valid)).Inc()
	m.duration.WithLabelValues(form).Observe(time.Since(started).Seconds())
}
