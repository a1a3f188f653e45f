package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fawsd/crewrotation/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	schedules       *prometheus.CounterVec
	scheduleSeconds *prometheus.HistogramVec
	reliefQueries   *prometheus.CounterVec
}

// NewPromSink registers scheduling metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	schedules := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotation_schedules_total",
		Help: "Total number of rotation plans computed",
	}, []string{"rank", "group"})
	scheduleSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rotation_schedule_seconds",
		Help:    "Time spent computing one rotation plan",
		Buckets: prometheus.DefBuckets,
	}, []string{"rank", "group"})
	reliefQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relief_queries_total",
		Help: "Total number of relief and replacement queries",
	}, []string{"kind", "rank"})

	if err := reg.Register(schedules); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			schedules = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scheduleSeconds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scheduleSeconds = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(reliefQueries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reliefQueries = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		schedules:       schedules,
		scheduleSeconds: scheduleSeconds,
		reliefQueries:   reliefQueries,
	}, nil
}

// RecordSchedule increments the plan counter and observes the duration.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.schedules.WithLabelValues(ev.Rank, ev.GroupID).Inc()
	s.scheduleSeconds.WithLabelValues(ev.Rank, ev.GroupID).Observe(ev.Duration.Seconds())
	return nil
}

// RecordRelief increments the query counter.
func (s *PromSink) RecordRelief(ev coremetrics.ReliefEvent) error {
	s.reliefQueries.WithLabelValues(ev.Kind, ev.Rank).Inc()
	return nil
}
