package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/binder/internal/config"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
)

// Result is a finished report plus informational counts about the input.
type Result struct {
	Report  *model.Report
	Fetched int
	Skipped int
}

// Pipeline fetches the inventory and runs it through normalization and
// report assembly.
type Pipeline struct {
	inventory service.InventoryFetcher
	assembler *Assembler
}

// NewPipeline wires an inventory source to an assembler.
func NewPipeline(inventory service.InventoryFetcher, assembler *Assembler) *Pipeline {
	return &Pipeline{inventory: inventory, assembler: assembler}
}

// Run produces the report for cfg. Nothing is returned unless every step
// succeeds.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	records, err := p.inventory.ExportProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}
	slog.Info("Read collection", "items", len(records))

	normalized, err := Normalize(records)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize inventory: %w", err)
	}
	if normalized.Skipped > 0 {
		slog.Debug("Skipped records without a color", "count", normalized.Skipped)
	}

	report, err := p.assembler.Assemble(ctx, normalized.Items, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Report:  report,
		Fetched: len(records),
		Skipped: normalized.Skipped,
	}, nil
}
