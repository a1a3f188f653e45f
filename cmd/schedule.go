package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fawsd/crewrotation/config"
	"github.com/fawsd/crewrotation/core/fleet"
	coreregistry "github.com/fawsd/crewrotation/core/registry"
	"github.com/fawsd/crewrotation/core/rotation"
	"github.com/fawsd/crewrotation/infra/logger"
	"github.com/fawsd/crewrotation/infra/registry"
	"github.com/fawsd/crewrotation/pkg/export"
)

var (
	scheduleFleet    string
	scheduleCategory string
	scheduleGroup    string
	scheduleRank     string
	scheduleReserves string
	scheduleOut      string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute a rotation plan and export it as CSV",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFleet, "fleet", "container", "fleet type (container, manalagi)")
	scheduleCmd.Flags().StringVar(&scheduleCategory, "category", "deck", "rotation category (deck, engine)")
	scheduleCmd.Flags().StringVar(&scheduleGroup, "group", "", "rotation group id, e.g. D1")
	scheduleCmd.Flags().StringVar(&scheduleRank, "rank", "", "crew rank, e.g. NAKHODA")
	scheduleCmd.Flags().StringVar(&scheduleReserves, "reserves", "", "comma-separated reserve seaman codes")
	scheduleCmd.Flags().StringVarP(&scheduleOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if scheduleGroup == "" || scheduleRank == "" {
		return fmt.Errorf("--group and --rank are required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("schedule")

	groups := fleet.DefaultConfig()
	if cfg.Fleet.GroupsPath != "" {
		if groups, err = fleet.LoadConfig(cfg.Fleet.GroupsPath); err != nil {
			return fmt.Errorf("fleet groups: %w", err)
		}
	}
	ix, err := fleet.Build(groups, fleet.FleetType(scheduleFleet), fleet.Category(scheduleCategory), log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cache, err := registry.NewCache(cfg.Registry.CachePath, cfg.Registry.CacheMaxAge)
	if err != nil {
		return fmt.Errorf("registry cache: %w", err)
	}
	defer func() { _ = cache.Close() }()
	source := registry.NewFallback(
		registry.NewHTTPClient(cfg.Registry.BaseURL, cfg.Registry.Timeout), cache)

	snap, report, err := coreregistry.Load(ctx, source, log)
	if err != nil {
		return err
	}
	if !report.Empty() {
		log.Warnf("%d orphaned mutation rows ignored", len(report.Orphans))
	}

	var reserves []int
	for _, part := range strings.Split(scheduleReserves, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		code, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid reserve code %q", part)
		}
		reserves = append(reserves, code)
	}

	planner := rotation.Planner{
		Scheduler: rotation.Scheduler{HorizonMonths: cfg.Rotation.HorizonMonths, Logger: log},
		Logger:    log,
	}
	plan := planner.BuildPlan(snap.Crew, ix, scheduleRank, scheduleGroup, reserves)

	out := cmd.OutOrStdout()
	if scheduleOut != "" {
		f, err := os.Create(scheduleOut)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	return export.WriteCSV(out, plan.Schedule)
}
