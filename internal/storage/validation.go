package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/binder/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidBlueprint = errors.New("invalid blueprint")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateBlueprint(id model.BlueprintID, expansionID model.ExpansionID) error {
	if id < 0 {
		return fmt.Errorf("%w: negative blueprint id %d", ErrInvalidBlueprint, id)
	}
	if expansionID < 0 {
		return fmt.Errorf("%w: negative expansion id %d", ErrInvalidBlueprint, expansionID)
	}
	return nil
}
