package cardtrader

import (
	"context"
	"sync"

	"github.com/Veraticus/binder/internal/model"
)

// MockClient is an in-memory stand-in for Client.
type MockClient struct {
	ExportProductsFn     func(ctx context.Context) ([]any, error)
	ExpansionsFn         func(ctx context.Context) ([]model.Expansion, error)
	BlueprintExpansionFn func(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error)

	// Call tracking
	BlueprintCalls  []model.BlueprintID
	ExportCalls     int
	ExpansionsCalls int
	mu              sync.Mutex
}

// NewMockClient creates a mock that serves the given blueprint mapping.
func NewMockClient(blueprints map[model.BlueprintID]model.ExpansionID) *MockClient {
	m := &MockClient{}
	m.BlueprintExpansionFn = func(_ context.Context, id model.BlueprintID) (model.ExpansionID, error) {
		exp, ok := blueprints[id]
		if !ok {
			return 0, &APIError{Path: "/blueprints/" + id.String(), StatusCode: 404, Body: "not found"}
		}
		return exp, nil
	}
	return m
}

// ExportProducts implements service.InventoryFetcher.
func (m *MockClient) ExportProducts(ctx context.Context) ([]any, error) {
	m.mu.Lock()
	m.ExportCalls++
	m.mu.Unlock()

	if m.ExportProductsFn != nil {
		return m.ExportProductsFn(ctx)
	}
	return []any{}, nil
}

// Expansions implements service.ExpansionFetcher.
func (m *MockClient) Expansions(ctx context.Context) ([]model.Expansion, error) {
	m.mu.Lock()
	m.ExpansionsCalls++
	m.mu.Unlock()

	if m.ExpansionsFn != nil {
		return m.ExpansionsFn(ctx)
	}
	return []model.Expansion{}, nil
}

// BlueprintExpansion implements service.BlueprintLookup.
func (m *MockClient) BlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error) {
	m.mu.Lock()
	m.BlueprintCalls = append(m.BlueprintCalls, id)
	m.mu.Unlock()

	if m.BlueprintExpansionFn != nil {
		return m.BlueprintExpansionFn(ctx, id)
	}
	return 0, nil
}

// CallsFor returns how many lookups were made for id.
func (m *MockClient) CallsFor(id model.BlueprintID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, call := range m.BlueprintCalls {
		if call == id {
			n++
		}
	}
	return n
}
