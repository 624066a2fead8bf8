package main

import (
	"fmt"

	"github.com/Veraticus/binder/internal/cli"
	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/config"
	"github.com/Veraticus/binder/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the blueprint cache",
		Long:  `Show or clear the local cache of blueprint to expansion mappings.`,
	}

	cmd.AddCommand(cacheStatsCmd())
	cmd.AddCommand(cacheClearCmd())

	return cmd
}

func openCache(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	path := config.ExpandPath(cmd.Flag("path").Value.String())
	if path == "" {
		return nil, common.NewUserError("no cache configured", fmt.Errorf("%w: %s", common.ErrMissingConfig, config.KeyCachePath))
	}
	return initStorage(cmd.Context(), path)
}

func cacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache contents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%s: %d blueprints across %d expansions",
				store.Path(), stats.Blueprints, stats.Expansions)))
			return nil
		},
	}
	addCachePathFlag(cmd)
	return cmd
}

func cacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached blueprint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %d cached blueprints", n)))
			return nil
		},
	}
	addCachePathFlag(cmd)
	return cmd
}

// addCachePathFlag adds --path, defaulting to the configured cache.path.
func addCachePathFlag(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "cache database (default: cache.path from config)")
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("path") {
			return cmd.Flags().Set("path", viper.GetString(config.KeyCachePath))
		}
		return nil
	}
}
