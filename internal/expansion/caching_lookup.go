package expansion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
)

// CachingLookup serves blueprint lookups from a persistent store and only
// falls through to the upstream lookup on a miss. Blueprint membership in
// an expansion never changes, so stored entries do not expire.
type CachingLookup struct {
	store    service.BlueprintStore
	upstream service.BlueprintLookup
}

// NewCachingLookup wraps upstream with store.
func NewCachingLookup(store service.BlueprintStore, upstream service.BlueprintLookup) *CachingLookup {
	return &CachingLookup{store: store, upstream: upstream}
}

// BlueprintExpansion implements service.BlueprintLookup.
func (c *CachingLookup) BlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error) {
	expID, err := c.store.GetBlueprintExpansion(ctx, id)
	if err == nil {
		slog.Debug("Blueprint cache hit", "blueprint_id", id)
		return expID, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return 0, fmt.Errorf("failed to read blueprint cache: %w", err)
	}

	expID, err = c.upstream.BlueprintExpansion(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := c.store.SaveBlueprintExpansion(ctx, id, expID); err != nil {
		// Cache writes are best effort.
		slog.Warn("Failed to save blueprint to cache", "blueprint_id", id, "error", err)
	}
	return expID, nil
}
