// Package relief ranks onboard crew approaching the end of their contract
// and matches rested shore crew to the vessels that will need them.
package relief

import (
	"sort"
	"strings"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// Default eligibility thresholds, in days.
const (
	DefaultRemainsThreshold = 30
	DefaultElapsedThreshold = 335

	criticalRemains = 7
	criticalElapsed = 358

	// Shore crew ashore this many days or longer drop out of the
	// replacement pool.
	maxShoreDays = 15
)

// Reason records which threshold put a candidate on the relief list.
type Reason string

const (
	ReasonElapsed   Reason = "elapsed"
	ReasonRemaining Reason = "remaining"
)

// Priority orders relief candidates by urgency. Lower is more urgent.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	default:
		return "medium"
	}
}

// Candidate is an onboard crew member due for relief.
type Candidate struct {
	model.CrewRecord
	Reason     Reason   `json:"relief_reason"`
	Priority   Priority `json:"-"`
	DayRemains int      `json:"day_remains"`
	DayElapsed int      `json:"day_elapsed"`
}

// PriorityLabel is the wire form of Priority.
func (c Candidate) PriorityLabel() string { return c.Priority.String() }

// Replacement is a rested shore crew member matched to a feeder vessel.
type Replacement struct {
	model.CrewRecord
	StatusRank int `json:"-"`
	DayElapsed int `json:"day_elapsed"`
}

// Advisor computes relief and replacement rankings. The zero value uses the
// default thresholds.
type Advisor struct {
	RemainsThreshold int // 0 means DefaultRemainsThreshold
	ElapsedThreshold int // 0 means DefaultElapsedThreshold
	Logger           logger.Logger
}

func (a Advisor) thresholds() (remains, elapsed int) {
	remains, elapsed = a.RemainsThreshold, a.ElapsedThreshold
	if remains <= 0 {
		remains = DefaultRemainsThreshold
	}
	if elapsed <= 0 {
		elapsed = DefaultElapsedThreshold
	}
	return remains, elapsed
}

// ReliefCandidates filters onboard crew of the rank and group whose contract
// is nearly over, either by days remaining or days served, and ranks them by
// urgency. When both thresholds trigger the elapsed reason wins, since an
// overstayed contract is the stronger signal. Ordering is priority first,
// then fewest days remaining, then most days served.
func (a Advisor) ReliefCandidates(crew []model.CrewRecord, ix *fleet.Index, rank, groupID string) []Candidate {
	remainsThr, elapsedThr := a.thresholds()

	var out []Candidate
	for _, rec := range crew {
		if !rec.OnBoard() || rec.Rank != rank || ix.Lookup(rec) != groupID {
			continue
		}
		dr, de := rec.RemainingDays(), rec.ElapsedDays()
		if dr > remainsThr && de < elapsedThr {
			continue
		}
		reason := ReasonRemaining
		if de >= elapsedThr {
			reason = ReasonElapsed
		}
		out = append(out, Candidate{
			CrewRecord: rec,
			Reason:     reason,
			Priority:   priorityOf(dr, de),
			DayRemains: dr,
			DayElapsed: de,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.Priority != y.Priority {
			return x.Priority < y.Priority
		}
		if x.DayRemains != y.DayRemains {
			return x.DayRemains < y.DayRemains
		}
		return x.DayElapsed > y.DayElapsed
	})
	return out
}

func priorityOf(dayRemains, dayElapsed int) Priority {
	switch {
	case dayRemains < criticalRemains || dayElapsed > criticalElapsed:
		return PriorityCritical
	case dayRemains < DefaultRemainsThreshold || dayElapsed > DefaultElapsedThreshold:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// AvailableReplacements selects shore crew of the rank who last served on one
// of the feeder vessels and stepped ashore within the last maxShoreDays.
// Crew codes in exclude (typically codes held by an active rotation lock)
// are skipped. Location matching is substring containment in either
// direction, since registry vessel names and group configuration rarely
// agree on prefixes. Ordering is shore-status priority first, then most
// shore days within the window.
func (a Advisor) AvailableReplacements(crew []model.CrewRecord, rank string, feeders []string, exclude []int) []Replacement {
	excluded := make(map[int]bool, len(exclude))
	for _, code := range exclude {
		excluded[code] = true
	}

	var out []Replacement
	for _, rec := range crew {
		if rec.Rank != rank || excluded[rec.SeamanCode] {
			continue
		}
		status := model.StatusOf(rec.Location)
		if !status.Ashore() {
			continue
		}
		if rec.ElapsedDays() >= maxShoreDays {
			continue
		}
		if !matchesFeeder(rec.PrevLocation, feeders) {
			continue
		}
		out = append(out, Replacement{
			CrewRecord: rec,
			StatusRank: status.ShorePriority(),
			DayElapsed: rec.ElapsedDays(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StatusRank != out[j].StatusRank {
			return out[i].StatusRank < out[j].StatusRank
		}
		return out[i].DayElapsed > out[j].DayElapsed
	})
	return out
}

func matchesFeeder(prev string, feeders []string) bool {
	if prev == "" {
		return false
	}
	p := strings.ToUpper(strings.TrimSpace(prev))
	for _, f := range feeders {
		v := strings.ToUpper(strings.TrimSpace(f))
		if v == "" {
			continue
		}
		if strings.Contains(p, v) || strings.Contains(v, p) {
			return true
		}
	}
	return false
}
