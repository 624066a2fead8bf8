// Package service defines the interfaces between the reporting pipeline and
// its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/binder/internal/model"
)

// InventoryFetcher returns the raw inventory export, one element per product.
type InventoryFetcher interface {
	ExportProducts(ctx context.Context) ([]any, error)
}

// ExpansionFetcher returns every expansion the vendor knows about.
type ExpansionFetcher interface {
	Expansions(ctx context.Context) ([]model.Expansion, error)
}

// BlueprintLookup translates a blueprint into the expansion it belongs to.
type BlueprintLookup interface {
	BlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error)
}

// BlueprintLookupFunc adapts a function to the BlueprintLookup interface.
type BlueprintLookupFunc func(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error)

// BlueprintExpansion calls f(ctx, id).
func (f BlueprintLookupFunc) BlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error) {
	return f(ctx, id)
}

// BlueprintStore persists blueprint to expansion mappings between runs.
type BlueprintStore interface {
	// GetBlueprintExpansion returns common.ErrNotFound when id is not stored.
	GetBlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error)
	SaveBlueprintExpansion(ctx context.Context, id model.BlueprintID, expansionID model.ExpansionID) error
}

// Progress receives resolution progress. Start is called once with the
// number of distinct blueprints, Increment once per resolved blueprint.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}
