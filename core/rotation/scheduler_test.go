package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestScheduleStartsFirstOfNextMonth(t *testing.T) {
	s := Scheduler{HorizonMonths: 6, Now: testNow}
	g := s.Schedule([]string{"MV ALPHA"}, Slots(2))
	require.Len(t, g.Months, 6)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), g.Months[0])
}

func TestScheduleRotationOrder(t *testing.T) {
	// Four slots over three vessels: the last slot (the reserve) relieves
	// first, then the rest in pool order.
	s := Scheduler{HorizonMonths: 12, Now: testNow}
	vessels := []string{"MV ONE", "MV TWO", "MV THREE"}
	g := s.Schedule(vessels, Slots(4))

	// Month 1: slot D boards the first vessel for a three month tour.
	assert.Equal(t, "D", g.At(0, 0).String())
	assert.Equal(t, "D", g.At(0, 1).String())
	assert.Equal(t, "D", g.At(0, 2).String())

	// One transaction per month: the second vessel waits until month 2.
	assert.Equal(t, NoSlot, g.At(1, 0))
	assert.Equal(t, "A", g.At(1, 1).String())
	assert.Equal(t, NoSlot, g.At(2, 0))
	assert.Equal(t, NoSlot, g.At(2, 1))
	assert.Equal(t, "B", g.At(2, 2).String())

	// The first vessel's relief after D's tour comes from the same queue.
	assert.Equal(t, "C", g.At(0, 3).String())
}

func TestScheduleOneTransactionPerMonth(t *testing.T) {
	s := Scheduler{HorizonMonths: 36, Now: testNow}
	vessels := []string{"V1", "V2", "V3", "V4", "V5"}
	g := s.Schedule(vessels, Slots(6))

	for m := range g.Months {
		changes := 0
		for v := range vessels {
			cur := g.At(v, m)
			if cur == NoSlot {
				continue
			}
			if m == 0 || g.At(v, m-1) != cur {
				changes++
			}
		}
		assert.LessOrEqualf(t, changes, 1, "month %d has %d handovers", m, changes)
	}
}

func TestScheduleNoGapsAfterFirstAssignment(t *testing.T) {
	s := Scheduler{HorizonMonths: 36, Now: testNow}
	g := s.Schedule([]string{"V1", "V2", "V3", "V4"}, Slots(5))

	for v := range g.Vessels {
		first, ok := g.FirstRotation(v)
		require.Truef(t, ok, "vessel %d never assigned", v)
		started := false
		for m := range g.Months {
			if g.Months[m].Equal(first) {
				started = true
			}
			if started {
				assert.NotEqualf(t, NoSlot, g.At(v, m), "vessel %d empty at month %d", v, m)
			}
		}
	}
}

func TestScheduleFairness(t *testing.T) {
	// Over a long horizon every slot should serve a comparable number of
	// months; the round-robin queue never favours a label.
	s := Scheduler{HorizonMonths: 36, Now: testNow}
	slots := Slots(4)
	g := s.Schedule([]string{"V1", "V2", "V3"}, slots)

	months := make(map[SlotID]int)
	for v := range g.Vessels {
		for m := range g.Months {
			if cell := g.At(v, m); cell != NoSlot {
				months[cell]++
			}
		}
	}
	min, max := 1<<30, 0
	for _, slot := range slots {
		n := months[slot]
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	assert.LessOrEqual(t, max-min, len(slots), "slot workloads diverged: %v", months)
}

func TestScheduleEmptyInputs(t *testing.T) {
	s := Scheduler{HorizonMonths: 12, Now: testNow}

	g := s.Schedule(nil, Slots(3))
	assert.Empty(t, g.Vessels)

	g = s.Schedule([]string{"V1"}, nil)
	for m := range g.Months {
		assert.Equal(t, NoSlot, g.At(0, m))
	}
}

func TestScheduleFewerSlotsThanVessels(t *testing.T) {
	// Two slots over three vessels: the used queue recycles so every vessel
	// still gets crewed, even though the pool is undersized.
	s := Scheduler{HorizonMonths: 24, Now: testNow}
	g := s.Schedule([]string{"V1", "V2", "V3"}, Slots(2))

	for v := range g.Vessels {
		_, ok := g.FirstRotation(v)
		assert.Truef(t, ok, "vessel %d never assigned", v)
	}
}
