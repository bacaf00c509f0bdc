package repository

import (
	"context"

	"github.com/nkiryanov/modcheck/internal/models"
)

// Weight table repository
type WeightRepo interface {
	// Return entries whose range contains the sort code, first check first
	// Empty slice (not an error) if the sort code is not covered
	FindWeights(ctx context.Context, sortCode int) ([]models.WeightEntry, error)
}

// Sort code substitution repository
type SubstitutionRepo interface {
	// Return the whole substitution table
	ListSubstitutions(ctx context.Context) (map[string]string, error)
}

// Storage used by table import
type Storage interface {
	WeightRepo
	SubstitutionRepo

	// Replace all weight entries
	ReplaceWeights(ctx context.Context, entries []models.WeightEntry) error

	// Replace all substitutions
	ReplaceSubstitutions(ctx context.Context, substitutes map[string]string) error

	// Run fn in one transaction, commit if fn returns nil
	InTx(ctx context.Context, fn func(Storage) error) error
}
