package astroprop

import "github.com/prometheus/client_golang/prometheus"

// StepMetrics counts the integrator activity. A nil *StepMetrics is valid and records nothing.
type StepMetrics struct {
	Accepted    prometheus.Counter
	Rejected    prometheus.Counter
	Evaluations prometheus.Counter
	StepSize    prometheus.Histogram
	// StepError is the local error estimate of the accepted adaptive steps over the tolerance.
	StepError prometheus.Histogram
}

// NewStepMetrics returns new metrics registered on reg (if not nil).
func NewStepMetrics(reg prometheus.Registerer) *StepMetrics {
	m := &StepMetrics{
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astroprop_steps_accepted_total",
			Help: "Total number of accepted integration steps.",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astroprop_steps_rejected_total",
			Help: "Total number of integration steps rejected by the error control.",
		}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astroprop_derivative_evaluations_total",
			Help: "Total number of force model evaluations.",
		}),
		StepSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "astroprop_step_size_seconds",
			Help:    "Size of the accepted integration steps.",
			Buckets: prometheus.ExponentialBuckets(1e-3, 4, 10),
		}),
		StepError: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "astroprop_step_error_ratio",
			Help:    "Local error estimate of the accepted adaptive steps relative to the tolerance.",
			Buckets: []float64{1e-6, 1e-4, 1e-2, 0.1, 0.5, 1, 2},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Accepted, m.Rejected, m.Evaluations, m.StepSize, m.StepError)
	}
	return m
}

func (m *StepMetrics) accept(h float64) {
	if m == nil {
		return
	}
	m.Accepted.Inc()
	m.StepSize.Observe(h)
}

func (m *StepMetrics) estimated(ratio float64) {
	if m == nil {
		return
	}
	m.StepError.Observe(ratio)
}

func (m *StepMetrics) reject() {
	if m == nil {
		return
	}
	m.Rejected.Inc()
}

func (m *StepMetrics) evaluated(n int) {
	if m == nil {
		return
	}
	m.Evaluations.Add(float64(n))
}
