package metrics

import coremetrics "github.com/fawsd/crewrotation/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRelief forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRelief(ev coremetrics.ReliefEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRelief(ev); err != nil {
			return err
		}
	}
	return nil
}
