package rotation

import (
	"strconv"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// Plan is the full rotation outcome for one (rank, group) pair: the
// month-by-vessel schedule plus the legend mapping slot labels back to crew.
type Plan struct {
	Schedule   Table       `json:"schedule"`
	Crew       Table       `json:"crew"`
	Candidates []Candidate `json:"-"`
}

// Planner wires the candidate pool and the scheduler into one pass.
type Planner struct {
	Scheduler Scheduler
	Logger    logger.Logger
}

// BuildPlan builds the candidate pool for the rank and group, derives the
// vessel order from it, schedules the horizon, and returns both tables. A
// group with no matching crew yields a plan with empty tables, not an error.
func (p Planner) BuildPlan(crew []model.CrewRecord, ix *fleet.Index, rank, groupID string, reserveCodes []int) Plan {
	pool := Pool{Logger: p.Logger}
	candidates := pool.BuildCandidateList(crew, ix, rank, groupID, reserveCodes)
	vessels := VesselOrder(candidates)

	slots := make([]SlotID, len(candidates))
	for i, c := range candidates {
		slots[i] = c.Slot
	}

	grid := p.Scheduler.Schedule(vessels, slots)
	return Plan{
		Schedule:   grid.Table(),
		Crew:       crewTable(candidates),
		Candidates: candidates,
	}
}

const (
	colIndex      = "Index"
	colName       = "Name"
	colLastLoc    = "Last Location"
	colSeamanCode = "Seaman Code"
	colStartDate  = "Start Date"
	colEndDate    = "End Date"
)

// crewTable is the legend: one row per candidate keyed by slot label.
func crewTable(candidates []Candidate) Table {
	t := Table{Columns: []string{colIndex, colName, colLastLoc, colSeamanCode, colStartDate, colEndDate}}
	for _, c := range candidates {
		t.Data = append(t.Data, map[string]string{
			colIndex:      c.Slot.String(),
			colName:       c.Name,
			colLastLoc:    c.Vessel,
			colSeamanCode: strconv.Itoa(c.Code),
			colStartDate:  c.StartDate,
			colEndDate:    c.EndDate,
		})
	}
	return t
}
