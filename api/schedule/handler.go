// Package schedule exposes rotation planning over HTTP.
package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/logger"
	coremetrics "github.com/fawsd/crewrotation/core/metrics"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/core/relief"
	"github.com/fawsd/crewrotation/core/rotation"
)

// Deps are the collaborators a plan handler needs.
type Deps struct {
	Source  coreregistry.Source
	Groups  fleet.Config
	Horizon int
	Sink    coremetrics.Sink
	Log     logger.Logger
}

// Response is the wire shape of one rotation plan. Relievers is present only
// when the request asked for the ashore reserve pool alongside the plan.
type Response struct {
	Schedule  rotation.Table  `json:"schedule"`
	Crew      rotation.Table  `json:"crew"`
	Relievers *rotation.Table `json:"relievers,omitempty"`
}

// NewPlanHandler returns an HTTP handler computing a rotation plan via
// GET /api/schedule?fleet=container&category=deck&group=D1&rank=NAKHODA.
// Optional reserves is a comma-separated list of seaman codes prepended to
// the candidate pool.
func NewPlanHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		rank := q.Get("rank")
		groupID := q.Get("group")
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
		planner := rotation.Planner{
			Scheduler: rotation.Scheduler{HorizonMonths: deps.Horizon, Logger: deps.Log},
			Logger:    deps.Log,
		}
		plan := planner.BuildPlan(snap.Crew, ix, rank, groupID, parseCodes(q.Get("reserves")))

		if deps.Sink != nil {
			_ = deps.Sink.RecordSchedule(coremetrics.ScheduleEvent{
				Rank:       rank,
				GroupID:    groupID,
				Vessels:    len(plan.Schedule.Data),
				Candidates: len(plan.Candidates),
				Duration:   time.Since(started),
				At:         started,
			})
		}

		resp := Response{Schedule: plan.Schedule, Crew: plan.Crew}
		if q.Get("relievers") == "1" || strings.EqualFold(q.Get("relievers"), "true") {
			adv := relief.Advisor{Logger: deps.Log}
			tbl := relieverTable(adv.AvailableReplacements(snap.Crew, rank, ix.Vessels(groupID), nil))
			resp.Relievers = &tbl
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// relieverTable renders the ashore reserve pool in the same column-oriented
// shape as the crew table.
func relieverTable(reps []relief.Replacement) rotation.Table {
	t := rotation.Table{
		Columns: []string{"Index", "Name", "Status", "Last Vessel", "Seaman Code", "Day Elapsed"},
	}
	for i, rep := range reps {
		t.Data = append(t.Data, map[string]string{
			"Index":       strconv.Itoa(i + 1),
			"Name":        rep.Name,
			"Status":      rep.Location,
			"Last Vessel": rep.PrevLocation,
			"Seaman Code": strconv.Itoa(rep.SeamanCode),
			"Day Elapsed": strconv.Itoa(rep.DayElapsed),
		})
	}
	return t
}

// NewGroupsHandler lists the group identifiers and vessels of a partition via
// GET /api/schedule/groups?fleet=container&category=deck.
func NewGroupsHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		ix, err := fleet.Build(deps.Groups,
			fleet.FleetType(q.Get("fleet")), fleet.Category(q.Get("category")), deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out := make(map[string][]string)
		for _, id := range ix.GroupIDs() {
			out[id] = ix.Vessels(id)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseCodes(raw string) []int {
	if raw == "" {
		return nil
	}
	var codes []int
	for _, part := range strings.Split(raw, ",") {
		if code, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			codes = append(codes, code)
		}
	}
	return codes
}
