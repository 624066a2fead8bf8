// Package testutil provides shared fixtures for binder tests: a migrated
// in-memory blueprint cache and a builder for raw inventory records.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/binder/internal/model"
	"github.com/Veraticus/binder/internal/storage"
)

// TestDB is an in-memory blueprint cache scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	Blueprints     map[model.BlueprintID]model.ExpansionID
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory cache seeded with blueprints.
// It is closed automatically when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, map[model.BlueprintID]model.ExpansionID{42: 7})
func SetupTestDB(t *testing.T, blueprints map[model.BlueprintID]model.ExpansionID) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Blueprints: blueprints})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for id, exp := range opts.Blueprints {
		if err := store.SaveBlueprintExpansion(ctx, id, exp); err != nil {
			t.Fatalf("failed to seed blueprint %s: %v", id, err)
		}
	}

	return &TestDB{Storage: store, t: t}
}

// MustGet returns the stored expansion of id or fails the test.
func (db *TestDB) MustGet(id model.BlueprintID) model.ExpansionID {
	db.t.Helper()
	exp, err := db.Storage.GetBlueprintExpansion(context.Background(), id)
	if err != nil {
		db.t.Fatalf("blueprint %s not cached: %v", id, err)
	}
	return exp
}
