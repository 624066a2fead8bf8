package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/binder/internal/cli"
	"github.com/Veraticus/binder/internal/collection"
	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/config"
	"github.com/Veraticus/binder/internal/expansion"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errInterrupted is returned when the user stops a run before it renders.
var errInterrupted = errors.New("interrupted")

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the binder report",
		Long: `Fetch the inventory, keep the cards priced above the threshold, and print
one table per enabled color category followed by the grand total.

Nothing is printed unless the whole report could be built.`,
		RunE: runReport,
	}

	cmd.Flags().StringP("output", "o", config.OutputTable, "Output format (table, json, yaml)")
	cmd.Flags().Int64("threshold", 0, "Only include cards priced at or above this many cents")
	cmd.Flags().StringSlice("colors", nil, "Categories to include (M,W,U,B,R,G,C,L)")

	_ = viper.BindPFlag(config.KeyOutput, cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag(config.KeyThreshold, cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag(config.KeyColors, cmd.Flags().Lookup("colors"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := slog.Default().With("run_id", runID)
	slog.SetDefault(logger)

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context())
	defer interrupts.Stop()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	expansions, err := client.Expansions(ctx)
	if err != nil {
		return interruptedOr(interrupts, err)
	}
	table := expansion.NewTable(expansions, cfg.GameID)
	slog.Debug("Loaded expansion table", "expansions", len(table), "game_id", cfg.GameID)

	var lookup service.BlueprintLookup = client
	if cfg.CachePath != "" {
		store, err := initStorage(ctx, cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		lookup = expansion.NewCachingLookup(store, client)
	}

	resolver := expansion.NewResolver(lookup, table)

	var opts []collection.AssemblerOption
	if cfg.Output == config.OutputTable {
		opts = append(opts, collection.WithProgress(cli.NewProgressBar(cmd.ErrOrStderr(), "Resolving expansions")))
	}
	pipeline := collection.NewPipeline(client, collection.NewAssembler(resolver, opts...))

	result, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return interruptedOr(interrupts, err)
	}

	slog.Debug("Report built",
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"blueprints", resolver.Len(),
		"lookups", resolver.Lookups())

	return writeReport(cmd.OutOrStdout(), cfg.Output, result.Report)
}

func interruptedOr(h *cli.InterruptHandler, err error) error {
	if h.WasInterrupted() {
		return errInterrupted
	}
	return err
}

func writeReport(w io.Writer, format string, r *model.Report) error {
	switch format {
	case config.OutputJSON:
		return cli.WriteJSON(w, r)
	case config.OutputYAML:
		return cli.WriteYAML(w, r)
	case config.OutputTable:
		_, err := io.WriteString(w, cli.RenderReport(r))
		return err
	default:
		return common.NewUserError("unsupported output format", fmt.Errorf("%w: %q", common.ErrInvalidConfig, format))
	}
}
