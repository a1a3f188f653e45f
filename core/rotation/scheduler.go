package rotation

import (
	"time"

	"github.com/fawsd/crewrotation/core/logger"
)

// DefaultHorizonMonths is the rolling planning horizon: three years of
// month buckets beginning the first day of next month.
const DefaultHorizonMonths = 36

// Scheduler produces the month-by-vessel rotation grid for one group.
//
// The cadence is deliberate: at most one relief transaction fires per month,
// so handover logistics never stack up within a group, and each tour lasts as
// many months as the group has vessels, so every slot eventually serves on
// every vessel once per full cycle.
type Scheduler struct {
	HorizonMonths int       // 0 means DefaultHorizonMonths
	Now           time.Time // zero means time.Now(); fixed in tests
	Logger        logger.Logger
}

// Schedule fills the grid for the given vessels and slots. Vessels are
// expected in candidate-pool order (soonest-ending assignee first); slots are
// the pool's labels. Zero vessels yield an empty grid; with no slots every
// row stays blank, signalling an understaffed group rather than an error.
func (s Scheduler) Schedule(vessels []string, slots []SlotID) *Grid {
	horizon := s.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	now := s.Now
	if now.IsZero() {
		now = time.Now()
	}
	start := firstOfNextMonth(now)
	g := NewGrid(vessels, start, horizon)
	if len(vessels) == 0 || len(slots) == 0 {
		return g
	}

	// Round-robin order starts from the last slot: the candidate whose
	// contract runs longest relieves first while everyone else finishes
	// their current tour.
	available := make([]SlotID, 0, len(slots))
	available = append(available, slots[len(slots)-1])
	available = append(available, slots[:len(slots)-1]...)
	var used []SlotID

	tour := len(vessels)
	for m := 0; m < horizon; m++ {
		if len(available) == 0 {
			available, used = used, nil
		}
		// One transaction per month: the first vessel with an open cell gets
		// the next slot for a full tour.
		for v := range vessels {
			if g.At(v, m) != NoSlot {
				continue
			}
			slot := available[0]
			available = available[1:]
			for j := 0; j < tour && m+j < horizon; j++ {
				g.set(v, m+j, slot)
			}
			used = append(used, slot)
			if s.Logger != nil {
				s.Logger.Debugw("rotation assigned", map[string]any{
					"vessel": vessels[v],
					"slot":   slot.String(),
					"month":  g.Months[m].Format("2006-01"),
				})
			}
			break
		}
	}

	s.backfill(g)
	return g
}

// backfill keeps the most recent occupant warm across scheduling gaps: every
// empty cell after a vessel's first assignment inherits the label that last
// held the vessel, through the end of the horizon.
func (s Scheduler) backfill(g *Grid) {
	for v := range g.Vessels {
		last := NoSlot
		for m := range g.Months {
			if cell := g.At(v, m); cell != NoSlot {
				last = cell
			} else if last != NoSlot {
				g.set(v, m, last)
			}
		}
	}
}

func firstOfNextMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
