// Package promotion selects crew eligible for advancement to the next rank
// based on certification and service history.
package promotion

import (
	"sort"
	"strings"
	"time"

	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/model"
)

// Candidate is a crew member eligible for promotion, with the transfer
// history that established eligibility attached.
type Candidate struct {
	model.CrewRecord
	FirstService time.Time              `json:"first_service"`
	History      []model.MutationRecord `json:"history"`
}

// Filter computes promotion eligibility. The zero value evaluates tenure
// against time.Now().
type Filter struct {
	Now    time.Time
	Logger logger.Logger
}

func (f Filter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

// Promotable selects crew at fromRank holding the required certificate whose
// earliest sea-service mutation predates the tenure deadline. Administrative
// mutations (pending pay, pending leave) do not count as sea service and are
// excluded from both the tenure check and the attached history. Results are
// ordered longest-serving first.
func (f Filter) Promotable(mutations []model.MutationRecord, crew []model.CrewRecord, fromRank, requiredCertificate string, tenureYears int) []Candidate {
	deadline := f.now().AddDate(-tenureYears, 0, 0)
	histories := serviceHistories(mutations)

	var out []Candidate
	for _, rec := range crew {
		if !strings.EqualFold(rec.Rank, fromRank) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(rec.Certificate), requiredCertificate) {
			continue
		}
		hist := histories[rec.SeamanCode]
		if len(hist) == 0 {
			continue
		}
		first := hist[0].TransactionDate
		if !first.Before(deadline) {
			continue
		}
		out = append(out, Candidate{
			CrewRecord:   rec,
			FirstService: first,
			History:      hist,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FirstService.Before(out[j].FirstService)
	})
	return out
}

// PromotableWithVesselDiversity applies Promotable and additionally requires
// service on at least minDistinctVessels distinct vessels from the
// qualifying allow-list, counting both the origin and destination of each
// mutation.
func (f Filter) PromotableWithVesselDiversity(mutations []model.MutationRecord, crew []model.CrewRecord, fromRank, requiredCertificate string, tenureYears int, qualifyingVessels []string) []Candidate {
	const minDistinctVessels = 2

	allowed := make(map[string]bool, len(qualifyingVessels))
	for _, v := range qualifyingVessels {
		allowed[normalizeVessel(v)] = true
	}

	base := f.Promotable(mutations, crew, fromRank, requiredCertificate, tenureYears)
	out := base[:0:0]
	for _, c := range base {
		distinct := make(map[string]bool)
		for _, m := range c.History {
			for _, v := range []string{m.FromVessel, m.ToVessel} {
				if n := normalizeVessel(v); allowed[n] {
					distinct[n] = true
				}
			}
		}
		if len(distinct) < minDistinctVessels {
			continue
		}
		out = append(out, c)
	}
	return out
}

// serviceHistories groups sea-service mutations per crew code, ordered by
// transaction date.
func serviceHistories(mutations []model.MutationRecord) map[int][]model.MutationRecord {
	histories := make(map[int][]model.MutationRecord)
	for _, m := range mutations {
		if administrative(m.FromVessel) || administrative(m.ToVessel) {
			continue
		}
		histories[m.SeamanCode] = append(histories[m.SeamanCode], m)
	}
	for code := range histories {
		h := histories[code]
		sort.SliceStable(h, func(i, j int) bool {
			return h[i].TransactionDate.Before(h[j].TransactionDate)
		})
		histories[code] = h
	}
	return histories
}

func administrative(vessel string) bool {
	switch model.StatusOf(vessel) {
	case model.StatusPendingPay, model.StatusPendingLeave:
		return true
	default:
		return false
	}
}

func normalizeVessel(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
