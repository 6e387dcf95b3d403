// Package metrics exposes fitting-pass counters to Prometheus
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// FitMetrics holds the collectors updated by a StatsContext during fitting passes
type FitMetrics struct {
	batches     prometheus.Counter   // "tabular_fit_batches_total"
	rows        prometheus.Counter   // "tabular_fit_rows_total"
	passSeconds prometheus.Histogram // "tabular_fit_pass_seconds"
}

// NewFitMetrics registers the fitting-pass collectors with reg. Collectors which
// are already registered (by another StatsContext) are shared. A nil reg
// produces a FitMetrics which records nothing.
func NewFitMetrics(reg prometheus.Registerer) (*FitMetrics, error) {
	m := &FitMetrics{}
	if reg == nil {
		return m, nil
	}
	batches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tabular_fit_batches_total",
		Help: "Total number of batches consumed by statistics fitting passes.",
	})
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tabular_fit_rows_total",
		Help: "Total number of rows consumed by statistics fitting passes.",
	})
	passSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tabular_fit_pass_seconds",
		Help:    "Duration of successful statistics fitting passes, in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	var err error
	if m.batches, err = registerCounter(reg, batches); err != nil {
		return nil, fmt.Errorf("metrics: register batch counter: %w", err)
	}
	if m.rows, err = registerCounter(reg, rows); err != nil {
		return nil, fmt.Errorf("metrics: register row counter: %w", err)
	}
	if err = reg.Register(passSeconds); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("metrics: register pass histogram: %w", err)
		}
		existing, ok := are.ExistingCollector.(prometheus.Histogram)
		if !ok {
			return nil, fmt.Errorf("metrics: %s is registered with another type", "tabular_fit_pass_seconds")
		}
		passSeconds = existing
	}
	m.passSeconds = passSeconds
	return m, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(prometheus.Counter)
		if !ok {
			return nil, fmt.Errorf("collector is registered with another type")
		}
		return existing, nil
	}
	return c, nil
}

// ObserveBatch records a Batch consumed by a fitting pass
func (m *FitMetrics) ObserveBatch(numRows int) {
	if m.batches == nil {
		return
	}
	m.batches.Inc()
	m.rows.Add(float64(numRows))
}

// ObservePass records the duration of a successful fitting pass
func (m *FitMetrics) ObservePass(seconds float64) {
	if m.passSeconds == nil {
		return
	}
	m.passSeconds.Observe(seconds)
}
