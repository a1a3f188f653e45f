// Package relief exposes relief and replacement queries over HTTP.
package relief

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/logger"
	coremetrics "github.com/fawsd/crewrotation/core/metrics"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/core/relief"
)

// LockedCodeSource supplies crew codes held by active rotation locks.
type LockedCodeSource interface {
	LockedCodes(ctx context.Context, rank string) ([]int, error)
}

// Deps are the collaborators the relief handlers need.
type Deps struct {
	Source coreregistry.Source
	Groups fleet.Config
	Locks  LockedCodeSource
	Sink   coremetrics.Sink
	Log    logger.Logger
}

// NewCandidatesHandler returns relief candidates via
// GET /api/relief?fleet=container&category=deck&group=D1&rank=NAKHODA.
func NewCandidatesHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		rank, groupID := q.Get("rank"), q.Get("group")
		if rank == "" || groupID == "" {
			http.Error(w, "rank and group are required", http.StatusBadRequest)
			return
		}
		ix, err := fleet.Build(deps.Groups,
			fleet.FleetType(q.Get("fleet")), fleet.Category(q.Get("category")), deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, _, err := coreregistry.Load(r.Context(), deps.Source, deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		started := time.Now()
		candidates := relief.Advisor{Logger: deps.Log}.ReliefCandidates(snap.Crew, ix, rank, groupID)
		record(deps.Sink, "relief", rank, groupID, len(candidates), started)

		writeJSON(w, struct {
			Candidates []reliefCandidateWire `json:"candidates"`
		}{wireCandidates(candidates)})
	})
}

// NewReplacementsHandler returns rested shore crew for a group's feeder
// vessels via GET /api/relief/replacements?...&rank=NAKHODA&group=D1.
// Crew held by an active lock for the rank are excluded.
func NewReplacementsHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		rank, groupID := q.Get("rank"), q.Get("group")
		if rank == "" || groupID == "" {
			http.Error(w, "rank and group are required", http.StatusBadRequest)
			return
		}
		ix, err := fleet.Build(deps.Groups,
			fleet.FleetType(q.Get("fleet")), fleet.Category(q.Get("category")), deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, _, err := coreregistry.Load(r.Context(), deps.Source, deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		var exclude []int
		if deps.Locks != nil {
			exclude, err = deps.Locks.LockedCodes(r.Context(), rank)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		started := time.Now()
		replacements := relief.Advisor{Logger: deps.Log}.
			AvailableReplacements(snap.Crew, rank, ix.Vessels(groupID), exclude)
		record(deps.Sink, "replacement", rank, groupID, len(replacements), started)

		writeJSON(w, struct {
			Replacements []replacementWire `json:"replacements"`
		}{wireReplacements(replacements)})
	})
}

// NewSummaryHandler aggregates relief windows for a group via
// GET /api/relief/summary?fleet=container&category=deck&group=D1.
func NewSummaryHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		groupID := q.Get("group")
		ix, err := fleet.Build(deps.Groups,
			fleet.FleetType(q.Get("fleet")), fleet.Category(q.Get("category")), deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, _, err := coreregistry.Load(r.Context(), deps.Source, deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		crew := snap.Crew
		if groupID != "" {
			filtered := crew[:0:0]
			for _, rec := range crew {
				if ix.Lookup(rec) == groupID {
					filtered = append(filtered, rec)
				}
			}
			crew = filtered
		}

		started := time.Now()
		summary := relief.RotationSummary(crew)
		record(deps.Sink, "summary", q.Get("rank"), groupID, summary.Onboard, started)

		writeJSON(w, summary)
	})
}

func record(sink coremetrics.Sink, kind, rank, groupID string, n int, started time.Time) {
	if sink == nil {
		return
	}
	_ = sink.RecordRelief(coremetrics.ReliefEvent{
		Kind:       kind,
		Rank:       rank,
		GroupID:    groupID,
		Candidates: n,
		Duration:   time.Since(started),
		At:         started,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// reliefCandidateWire flattens a candidate for the response body.
type reliefCandidateWire struct {
	SeamanCode int    `json:"seamancode"`
	Name       string `json:"name"`
	Rank       string `json:"rank"`
	Vessel     string `json:"vessel"`
	DayRemains int    `json:"day_remains"`
	DayElapsed int    `json:"day_elapsed"`
	Reason     string `json:"relief_reason"`
	Priority   string `json:"relief_priority"`
}

func wireCandidates(in []relief.Candidate) []reliefCandidateWire {
	out := make([]reliefCandidateWire, len(in))
	for i, c := range in {
		out[i] = reliefCandidateWire{
			SeamanCode: c.SeamanCode,
			Name:       c.Name,
			Rank:       c.Rank,
			Vessel:     c.Location,
			DayRemains: c.DayRemains,
			DayElapsed: c.DayElapsed,
			Reason:     string(c.Reason),
			Priority:   c.PriorityLabel(),
		}
	}
	return out
}

type replacementWire struct {
	SeamanCode   int    `json:"seamancode"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	PrevLocation string `json:"prev_location"`
	DayElapsed   int    `json:"day_elapsed"`
}

func wireReplacements(in []relief.Replacement) []replacementWire {
	out := make([]replacementWire, len(in))
	for i, r := range in {
		out[i] = replacementWire{
			SeamanCode:   r.SeamanCode,
			Name:         r.Name,
			Status:       r.Location,
			PrevLocation: r.PrevLocation,
			DayElapsed:   r.DayElapsed,
		}
	}
	return out
}
