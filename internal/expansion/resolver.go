package expansion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/service"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Resolver maps blueprints to expansion names. Each distinct blueprint is
// looked up at most once for the lifetime of the Resolver, even when
// resolved concurrently.
type Resolver struct {
	lookup  service.BlueprintLookup
	table   model.ExpansionTable
	cache   map[model.BlueprintID]string
	group   singleflight.Group
	lookups atomic.Int64
	mu      sync.RWMutex
}

// NewResolver creates a resolver with an empty cache.
func NewResolver(lookup service.BlueprintLookup, table model.ExpansionTable) *Resolver {
	return &Resolver{
		lookup: lookup,
		table:  table,
		cache:  make(map[model.BlueprintID]string),
	}
}

// Resolve returns the expansion name of blueprint id.
func (r *Resolver) Resolve(ctx context.Context, id model.BlueprintID) (string, error) {
	if name, ok := r.cached(id); ok {
		return name, nil
	}

	v, err, _ := r.group.Do(id.String(), func() (any, error) {
		// A flight for id may have completed between the cache check and Do.
		if name, ok := r.cached(id); ok {
			return name, nil
		}

		r.lookups.Add(1)
		expID, err := r.lookup.BlueprintExpansion(ctx, id)
		if err != nil {
			return "", &common.ResolutionError{BlueprintID: id, Err: err}
		}

		exp, ok := r.table[expID]
		if !ok {
			return "", &common.ResolutionError{
				BlueprintID: id,
				Err:         fmt.Errorf("%w: expansion %d", common.ErrUnknownExpansion, expID),
			}
		}

		r.mu.Lock()
		r.cache[id] = exp.Name
		r.mu.Unlock()

		slog.Debug("Resolved blueprint", "blueprint_id", id, "expansion", exp.Name)
		return exp.Name, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ResolveAll resolves every id in ids with up to concurrency lookups in
// flight. The first failure cancels the remaining work. progress may be nil.
func (r *Resolver) ResolveAll(ctx context.Context, ids []model.BlueprintID, concurrency int, progress service.Progress) (map[model.BlueprintID]string, error) {
	distinct := make([]model.BlueprintID, 0, len(ids))
	seen := make(map[model.BlueprintID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	if progress != nil {
		progress.Start(len(distinct))
		defer progress.Finish()
	}

	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, id := range distinct {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := r.Resolve(gctx, id); err != nil {
				return err
			}
			if progress != nil {
				progress.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[model.BlueprintID]string, len(distinct))
	r.mu.RLock()
	for _, id := range distinct {
		names[id] = r.cache[id]
	}
	r.mu.RUnlock()
	return names, nil
}

// Lookups returns how many external lookups have been issued.
func (r *Resolver) Lookups() int {
	return int(r.lookups.Load())
}

// Len returns the number of cached blueprints.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func (r *Resolver) cached(id model.BlueprintID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.cache[id]
	return name, ok
}
