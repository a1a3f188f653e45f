package rotation

import (
	"sort"
	"time"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// Candidate is one entry of a rotation candidate pool: an onboard crew member
// of the group, or a reserve pulled in from shore.
type Candidate struct {
	Slot      SlotID
	Code      int
	Name      string
	Vessel    string // current location, vessel or shore status
	StartDate string
	EndDate   string
	Reserve   bool

	end    time.Time // parsed EndDate, sort key
	hasEnd bool
}

// Pool builds candidate lists for a (rank, group) pair.
type Pool struct {
	Logger logger.Logger
}

// BuildCandidateList selects crew at the given rank whose location resolves
// to groupID, orders them by ascending contract end date so that the crew
// ending soonest rotates first, and prepends a reserve entry per supplied
// code. Unparseable end dates sort last. Reserve codes are resolved against
// the full crew table; unknown codes are dropped with a warning, never an
// error. Slot labels A, B, C, … are assigned in final list order.
func (p Pool) BuildCandidateList(crew []model.CrewRecord, ix *fleet.Index, rank, groupID string, reserveCodes []int) []Candidate {
	var onboard []Candidate
	for _, rec := range crew {
		if rec.Rank != rank || ix.Lookup(rec) != groupID {
			continue
		}
		onboard = append(onboard, newCandidate(rec, false))
	}
	sort.SliceStable(onboard, func(i, j int) bool {
		a, b := onboard[i], onboard[j]
		if a.hasEnd != b.hasEnd {
			return a.hasEnd // parseable dates first
		}
		return a.end.Before(b.end)
	})

	byCode := make(map[int]model.CrewRecord, len(crew))
	for _, rec := range crew {
		byCode[rec.SeamanCode] = rec
	}
	var list []Candidate
	for _, code := range reserveCodes {
		rec, ok := byCode[code]
		if !ok {
			if p.Logger != nil {
				p.Logger.Warnf("reserve code %d not found in crew table, skipping", code)
			}
			continue
		}
		list = append(list, newCandidate(rec, true))
	}
	list = append(list, onboard...)

	for i := range list {
		list[i].Slot = SlotID(i + 1)
	}
	return list
}

func newCandidate(rec model.CrewRecord, reserve bool) Candidate {
	end, ok := rec.ContractEnd()
	return Candidate{
		Code:      rec.SeamanCode,
		Name:      rec.Name,
		Vessel:    rec.Location,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
		Reserve:   reserve,
		end:       end,
		hasEnd:    ok,
	}
}

// VesselOrder returns the distinct vessels currently crewed by non-reserve
// candidates, in candidate order. Because candidates are sorted by contract
// end date, the vessel whose assignee leaves soonest comes first.
func VesselOrder(candidates []Candidate) []string {
	seen := make(map[string]bool)
	var vessels []string
	for _, c := range candidates {
		if c.Reserve || c.Vessel == "" || seen[c.Vessel] {
			continue
		}
		seen[c.Vessel] = true
		vessels = append(vessels, c.Vessel)
	}
	return vessels
}
