// Package metrics defines the observability sink contract for scheduling
// computations.
package metrics

import "time"

// ScheduleEvent describes one rotation plan computation.
type ScheduleEvent struct {
	Rank       string
	GroupID    string
	Vessels    int
	Candidates int
	Duration   time.Duration
	At         time.Time
}

// ReliefEvent describes one relief or replacement query.
type ReliefEvent struct {
	Kind       string // "relief", "replacement" or "summary"
	Rank       string
	GroupID    string
	Candidates int
	Duration   time.Duration
	At         time.Time
}

// Sink records scheduling events for observability purposes.
type Sink interface {
	RecordSchedule(ev ScheduleEvent) error
	RecordRelief(ev ReliefEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSchedule(ScheduleEvent) error { return nil }
func (NopSink) RecordRelief(ReliefEvent) error     { return nil }
