package registry

import (
	"context"

	"github.com/fawsd/crewrotation/core/model"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/infra/logger"
)

// Fallback serves from the live registry and falls back to the cache when the
// registry is unreachable. Successful live fetches are written through so the
// cache stays warm for the next outage.
type Fallback struct {
	Live  coreregistry.Source
	Cache *Cache
	Log   logger.Logger
}

// NewFallback composes a live source with a cache.
func NewFallback(live coreregistry.Source, cache *Cache) *Fallback {
	return &Fallback{Live: live, Cache: cache, Log: logger.New("registry-fallback")}
}

// FetchCrew tries the live source first.
func (f *Fallback) FetchCrew(ctx context.Context) ([]model.CrewRecord, error) {
	recs, err := f.Live.FetchCrew(ctx)
	if err == nil {
		if serr := f.Cache.StoreCrew(ctx, recs); serr != nil && f.Log != nil {
			f.Log.Warnf("write-through crew cache: %v", serr)
		}
		return recs, nil
	}
	if f.Log != nil {
		f.Log.Warnf("live crew fetch failed, using cache: %v", err)
	}
	cached, cerr := f.Cache.FetchCrew(ctx)
	if cerr != nil {
		// The live error is the actionable one.
		return nil, err
	}
	return cached, nil
}

// FetchMutations tries the live source first.
func (f *Fallback) FetchMutations(ctx context.Context) ([]model.MutationRecord, error) {
	recs, err := f.Live.FetchMutations(ctx)
	if err == nil {
		if serr := f.Cache.StoreMutations(ctx, recs); serr != nil && f.Log != nil {
			f.Log.Warnf("write-through mutation cache: %v", serr)
		}
		return recs, nil
	}
	if f.Log != nil {
		f.Log.Warnf("live mutation fetch failed, using cache: %v", err)
	}
	cached, cerr := f.Cache.FetchMutations(ctx)
	if cerr != nil {
		return nil, err
	}
	return cached, nil
}
