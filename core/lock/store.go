// Package lock persists locked rotation plans. A lock freezes one group's
// computed schedule so that subsequent planning rounds neither reshuffle the
// group nor poach its crew as replacements elsewhere.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/fawsd/crewrotation/core/rotation"
)

// ErrNotFound is returned when no active lock exists for a (group, rank).
var ErrNotFound = errors.New("lock: not found")

// LockedRotation is one persisted rotation plan.
type LockedRotation struct {
	ID          string          `json:"id"`
	GroupKey    string          `json:"group_key"`
	Rank        string          `json:"rank"`
	Schedule    rotation.Table  `json:"schedule"`
	Crew        rotation.Table  `json:"crew"`
	Relievers   *rotation.Table `json:"relievers,omitempty"`
	LockedCodes []int           `json:"locked_codes"`
	LockedBy    string          `json:"locked_by,omitempty"`
	LockedAt    time.Time       `json:"locked_at"`
	Active      bool            `json:"active"`
}

// Store persists locked rotations. At most one lock per (group, rank) is
// active at a time; saving over an existing lock deactivates it atomically.
type Store interface {
	Save(ctx context.Context, lock LockedRotation) (id string, err error)
	Get(ctx context.Context, rank string) ([]LockedRotation, error)
	Unlock(ctx context.Context, groupKey, rank string) error
	LockedCodes(ctx context.Context, rank string) ([]int, error)
	Close() error
}
