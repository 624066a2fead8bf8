package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/binder/internal/config"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
)

// ExpansionResolver resolves a batch of blueprints to expansion names.
type ExpansionResolver interface {
	ResolveAll(ctx context.Context, ids []model.BlueprintID, concurrency int, progress service.Progress) (map[model.BlueprintID]string, error)
}

// Assembler builds the final report from normalized items.
type Assembler struct {
	resolver ExpansionResolver
	progress service.Progress
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithProgress reports expansion resolution progress to p.
func WithProgress(p service.Progress) AssemblerOption {
	return func(a *Assembler) {
		a.progress = p
	}
}

// NewAssembler creates an assembler resolving expansions through resolver.
func NewAssembler(resolver ExpansionResolver, opts ...AssemblerOption) *Assembler {
	a := &Assembler{resolver: resolver}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble partitions items by the enabled categories of cfg, resolves the
// expansion of every remaining item and totals each category. Expansions
// are only resolved for items that survive filtering. A single resolution
// failure fails the whole report.
func (a *Assembler) Assemble(ctx context.Context, items []model.Item, cfg *config.Config) (*model.Report, error) {
	buckets := Partition(items, cfg.Categories, cfg.PriceThresholdCents)

	names, err := a.resolver.ResolveAll(ctx, BlueprintIDs(buckets), cfg.Concurrency, a.progress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve expansions: %w", err)
	}

	report := &model.Report{
		ThresholdCents: cfg.PriceThresholdCents,
		Categories:     make([]model.CategoryReport, 0, len(buckets)),
	}

	var totals []model.Totals
	for _, bucket := range buckets {
		rows := make([]model.Row, 0, len(bucket.Items))
		for _, item := range bucket.Items {
			rows = append(rows, model.Row{Item: item, Expansion: names[item.BlueprintID]})
		}

		t := Aggregate(bucket.Items)
		totals = append(totals, t)
		report.Categories = append(report.Categories, model.CategoryReport{
			Category:        bucket.Category,
			Rows:            rows,
			ItemCount:       t.Items,
			TotalValueCents: t.ValueCents,
		})

		slog.Debug("Assembled category",
			"category", bucket.Category.Code,
			"items", t.Items,
			"value_cents", t.ValueCents)
	}

	grand := GrandTotal(totals)
	report.TotalItems = grand.Items
	report.TotalValueCents = grand.ValueCents

	return report, nil
}
