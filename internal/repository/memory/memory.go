package memory

import (
	"context"

	"github.com/nkiryanov/modcheck/internal/models"
	"github.com/nkiryanov/modcheck/internal/substitution"
	"github.com/nkiryanov/modcheck/internal/weighttable"
)

// Repo serves tables loaded from files
type Repo struct {
	weights       *weighttable.Table
	substitutions *substitution.Table
}

func New(weights *weighttable.Table, substitutions *substitution.Table) *Repo {
	return &Repo{weights: weights, substitutions: substitutions}
}

// Load tables from files in the published layout
func Load(weightsPath string, substitutionsPath string) (*Repo, error) {
	weights, err := weighttable.Load(weightsPath)
	if err != nil {
		return nil, err
	}

	substitutions, err := substitution.Load(substitutionsPath)
	if err != nil {
		return nil, err
	}

	return New(weights, substitutions), nil
}

func (r *Repo) FindWeights(_ context.Context, sortCode int) ([]models.WeightEntry, error) {
	return r.weights.Lookup(sortCode), nil
}

func (r *Repo) ListSubstitutions(_ context.Context) (map[string]string, error) {
	return r.substitutions.Pairs(), nil
}
