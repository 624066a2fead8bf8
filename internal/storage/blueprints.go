package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
)

// CacheStats summarizes the stored blueprint mappings.
type CacheStats struct {
	Blueprints int
	Expansions int
}

// GetBlueprintExpansion returns the stored expansion of id, or common.ErrNotFound.
func (s *SQLiteStorage) GetBlueprintExpansion(ctx context.Context, id model.BlueprintID) (model.ExpansionID, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var expansionID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT expansion_id FROM blueprints WHERE blueprint_id = ?`, int64(id),
	).Scan(&expansionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, common.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get blueprint %s: %w", id, err)
	}
	return model.ExpansionID(expansionID), nil
}

// SaveBlueprintExpansion stores or replaces the expansion of id.
func (s *SQLiteStorage) SaveBlueprintExpansion(ctx context.Context, id model.BlueprintID, expansionID model.ExpansionID) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBlueprint(id, expansionID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blueprints (blueprint_id, expansion_id, fetched_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(blueprint_id) DO UPDATE SET
			expansion_id = excluded.expansion_id,
			fetched_at = excluded.fetched_at`,
		int64(id), int64(expansionID))
	if err != nil {
		return fmt.Errorf("failed to save blueprint %s: %w", id, err)
	}
	return nil
}

// Stats counts stored blueprints and the distinct expansions they map to.
func (s *SQLiteStorage) Stats(ctx context.Context) (CacheStats, error) {
	if err := validateContext(ctx); err != nil {
		return CacheStats{}, err
	}

	var stats CacheStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT expansion_id) FROM blueprints`,
	).Scan(&stats.Blueprints, &stats.Expansions)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes every stored blueprint and reports how many were deleted.
func (s *SQLiteStorage) Clear(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM blueprints`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear blueprints: %w", err)
	}
	return result.RowsAffected()
}
