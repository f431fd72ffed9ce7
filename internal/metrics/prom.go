package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records Gantt recomputations in Prometheus metrics.
type PromSink struct {
	recomputes *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPromSink registers the collectors on reg (the default registerer when nil).
// Already registered collectors are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	recomputes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gantt_recomputations_total",
		Help: "Total number of schedule recomputations by outcome",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gantt_recompute_duration_seconds",
		Help:    "Time spent fetching requirements and rebuilding the schedule",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	var err error
	if recomputes, err = register(reg, recomputes); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}

	return &PromSink{recomputes: recomputes, latency: latency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (s *PromSink) RecordRecompute(outcome string, elapsed time.Duration) {
	s.recomputes.WithLabelValues(outcome).Inc()
	s.latency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
