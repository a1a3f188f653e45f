// Package app wires the configuration into a running planning service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	locksapi "github.com/fawsd/crewrotation/api/locks"
	promotionapi "github.com/fawsd/crewrotation/api/promotion"
	reliefapi "github.com/fawsd/crewrotation/api/relief"
	scheduleapi "github.com/fawsd/crewrotation/api/schedule"
	"github.com/fawsd/crewrotation/config"
	"github.com/fawsd/crewrotation/core/fleet"
	"github.com/fawsd/crewrotation/core/lock"
	coremetrics "github.com/fawsd/crewrotation/core/metrics"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/infra/logger"
	"github.com/fawsd/crewrotation/infra/metrics"
	"github.com/fawsd/crewrotation/infra/registry"
)

// Service orchestrates the planning API, the registry cache refresh, and the
// metrics endpoints.
type Service struct {
	source      coreregistry.Source
	cache       *registry.Cache
	locks       lock.Store
	groups      fleet.Config
	sink        coremetrics.Sink
	cfg         *config.Config
	log         logger.Logger
	promEnabled bool
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	groups := fleet.DefaultConfig()
	if cfg.Fleet.GroupsPath != "" {
		loaded, err := fleet.LoadConfig(cfg.Fleet.GroupsPath)
		if err != nil {
			return nil, fmt.Errorf("fleet groups: %w", err)
		}
		groups = loaded
	}

	cache, err := registry.NewCache(cfg.Registry.CachePath, cfg.Registry.CacheMaxAge)
	if err != nil {
		return nil, fmt.Errorf("registry cache: %w", err)
	}
	live := registry.NewHTTPClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
	source := registry.NewFallback(live, cache)

	locks, err := lock.NewSQLiteStore(cfg.Lock.Path)
	if err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("lock store: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			_ = cache.Close()
			_ = locks.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		source:      source,
		cache:       cache,
		locks:       locks,
		groups:      groups,
		sink:        sink,
		cfg:         cfg,
		log:         log,
		promEnabled: cfg.Metrics.PrometheusEnabled,
	}, nil
}

// Handler builds the HTTP mux for the planning API.
func (s *Service) Handler() http.Handler {
	scheduleDeps := scheduleapi.Deps{
		Source:  s.source,
		Groups:  s.groups,
		Horizon: s.cfg.Rotation.HorizonMonths,
		Sink:    s.sink,
		Log:     s.log,
	}
	reliefDeps := reliefapi.Deps{
		Source: s.source,
		Groups: s.groups,
		Locks:  s.locks,
		Sink:   s.sink,
		Log:    s.log,
	}
	lockDeps := locksapi.Deps{Store: s.locks, Log: s.log}

	mux := http.NewServeMux()
	mux.Handle("/api/schedule", scheduleapi.NewPlanHandler(scheduleDeps))
	mux.Handle("/api/schedule/groups", scheduleapi.NewGroupsHandler(scheduleDeps))
	mux.Handle("/api/relief", reliefapi.NewCandidatesHandler(reliefDeps))
	mux.Handle("/api/relief/replacements", reliefapi.NewReplacementsHandler(reliefDeps))
	mux.Handle("/api/relief/summary", reliefapi.NewSummaryHandler(reliefDeps))
	mux.Handle("/api/promotion", promotionapi.NewCandidatesHandler(
		promotionapi.Deps{Source: s.source, Log: s.log}))
	mux.Handle("/api/locks", lockListOrSave(lockDeps))
	mux.Handle("/api/locks/unlock", locksapi.NewUnlockHandler(lockDeps))
	mux.Handle("/api/locks/codes", locksapi.NewCodesHandler(lockDeps))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// lockListOrSave dispatches /api/locks by method.
func lockListOrSave(deps locksapi.Deps) http.Handler {
	get := locksapi.NewListHandler(deps)
	post := locksapi.NewSaveHandler(deps)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			post.ServeHTTP(w, r)
			return
		}
		get.ServeHTTP(w, r)
	})
}

// Run starts the API server, the Prometheus endpoint, and the periodic cache
// refresh, then blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	if s.promEnabled {
		addr := fmt.Sprintf(":%d", s.cfg.Metrics.PrometheusPort)
		go func() {
			if err := metrics.StartPromServer(ctx, addr, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go s.refreshLoop(ctx)

	s.log.Infof("planning API listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// refreshLoop keeps the registry cache warm. The first refresh runs
// immediately so a fresh deployment can survive an early registry outage.
func (s *Service) refreshLoop(ctx context.Context) {
	live := registry.NewHTTPClient(s.cfg.Registry.BaseURL, s.cfg.Registry.Timeout)
	refresh := func() {
		refreshCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if err := s.cache.Refresh(refreshCtx, live); err != nil {
			s.log.Warnf("cache refresh: %v", err)
		}
	}
	refresh()

	ticker := time.NewTicker(s.cfg.Registry.RefreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	cerr := s.cache.Close()
	if err := s.locks.Close(); err != nil {
		return err
	}
	return cerr
}
