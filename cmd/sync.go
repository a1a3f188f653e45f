package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fawsd/crewrotation/config"
	"github.com/fawsd/crewrotation/infra/registry"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local registry cache from the live registry",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cache, err := registry.NewCache(cfg.Registry.CachePath, cfg.Registry.CacheMaxAge)
	if err != nil {
		return fmt.Errorf("registry cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	live := registry.NewHTTPClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
	if err := cache.Refresh(ctx, live); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "registry cache refreshed")
	return nil
}
