// Package promotion exposes promotion eligibility queries over HTTP.
package promotion

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fawsd/crewrotation/core/logger"
	"github.com/fawsd/crewrotation/core/promotion"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
)

// Deps are the collaborators the promotion handler needs.
type Deps struct {
	Source coreregistry.Source
	Log    logger.Logger
}

// NewCandidatesHandler returns promotion candidates via
// GET /api/promotion?rank=MUALIM+I&certificate=ANT-I&tenure_years=3.
// When vessels is supplied (comma-separated allow-list), candidates must
// additionally have served on at least two distinct listed vessels.
func NewCandidatesHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		rank, cert := q.Get("rank"), q.Get("certificate")
		if rank == "" || cert == "" {
			http.Error(w, "rank and certificate are required", http.StatusBadRequest)
			return
		}
		tenure := 3
		if raw := q.Get("tenure_years"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid tenure_years", http.StatusBadRequest)
				return
			}
			tenure = n
		}

		snap, _, err := coreregistry.Load(r.Context(), deps.Source, deps.Log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		f := promotion.Filter{Logger: deps.Log}
		var candidates []promotion.Candidate
		if raw := q.Get("vessels"); raw != "" {
			var allow []string
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					allow = append(allow, v)
				}
			}
			candidates = f.PromotableWithVesselDiversity(snap.Mutations, snap.Crew, rank, cert, tenure, allow)
		} else {
			candidates = f.Promotable(snap.Mutations, snap.Crew, rank, cert, tenure)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(struct {
			Candidates []promotion.Candidate `json:"candidates"`
		}{candidates}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
