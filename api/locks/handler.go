// Package locks exposes the locked-rotation store over HTTP.
package locks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fawsd/crewrotation/core/lock"
	"github.com/fawsd/crewrotation/core/logger"
)

// Deps are the collaborators the lock handlers need.
type Deps struct {
	Store lock.Store
	Log   logger.Logger
}

// NewSaveHandler persists a rotation lock via POST /api/locks. Saving over an
// existing (group, rank) lock replaces it.
func NewSaveHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var l lock.LockedRotation
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if l.GroupKey == "" || l.Rank == "" {
			http.Error(w, "group_key and rank are required", http.StatusBadRequest)
			return
		}
		id, err := deps.Store.Save(r.Context(), l)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	})
}

// NewListHandler returns active locks via GET /api/locks?rank=NAKHODA. An
// empty rank returns every active lock.
func NewListHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		locks, err := deps.Store.Get(r.Context(), r.URL.Query().Get("rank"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if locks == nil {
			locks = []lock.LockedRotation{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(locks); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// NewUnlockHandler deactivates a lock via POST /api/locks/unlock with body
// {"group_key": ..., "rank": ...}. Missing locks yield 404.
func NewUnlockHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GroupKey string `json:"group_key"`
			Rank     string `json:"rank"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.GroupKey == "" || req.Rank == "" {
			http.Error(w, "group_key and rank are required", http.StatusBadRequest)
			return
		}
		err := deps.Store.Unlock(r.Context(), req.GroupKey, req.Rank)
		if errors.Is(err, lock.ErrNotFound) {
			http.Error(w, "no active lock", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "unlocked"})
	})
}

// NewCodesHandler lists locked crew codes via GET /api/locks/codes?rank=....
func NewCodesHandler(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		codes, err := deps.Store.LockedCodes(r.Context(), r.URL.Query().Get("rank"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if codes == nil {
			codes = []int{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string][]int{"locked_codes": codes}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
