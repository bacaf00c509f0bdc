package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/models"
)

const findWeights = `-- name: FindWeights
SELECT range_start, range_end, check_type, exception, weights
FROM weight_rules
WHERE range_start <= $1 AND range_end >= $1
ORDER BY position
`

func (s *Storage) FindWeights(ctx context.Context, sortCode int) ([]models.WeightEntry, error) {
	rows, _ := s.db.Query(ctx, findWeights, sortCode)
	entries, err := pgx.CollectRows(rows, rowToWeightEntry)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

const deleteWeights = `-- name: DeleteWeights
DELETE FROM weight_rules
`

var weightColumns = []string{"position", "range_start", "range_end", "check_type", "exception", "weights"}

// Replace the table content. Entry order is kept in 'position' column
func (s *Storage) ReplaceWeights(ctx context.Context, entries []models.WeightEntry) error {
	if _, err := s.db.Exec(ctx, deleteWeights); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	_, err := s.db.CopyFrom(ctx, pgx.Identifier{"weight_rules"}, weightColumns, pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		e := entries[i]
		weights := make([]int32, len(e.Weights))
		for j, w := range e.Weights {
			weights[j] = int32(w)
		}
		return []any{i + 1, e.Start, e.End, string(e.CheckType), int(e.Exception), weights}, nil
	}))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return fmt.Errorf("%w: %s", apperrors.ErrMalformedTable, pgErr.ConstraintName)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func rowToWeightEntry(row pgx.CollectableRow) (models.WeightEntry, error) {
	var (
		e         models.WeightEntry
		checkType string
		exc       int
		weights   []int32
	)

	err := row.Scan(&e.Start, &e.End, &checkType, &exc, &weights)
	if err != nil {
		return e, err
	}

	e.CheckType, err = models.ParseCheckType(checkType)
	if err != nil {
		return e, err
	}
	if len(weights) != models.DetailLength {
		return e, fmt.Errorf("%w: %d weights stored for range %06d-%06d", apperrors.ErrMalformedTable, len(weights), e.Start, e.End)
	}

	e.Exception = models.Exception(exc)
	for i, w := range weights {
		e.Weights[i] = int(w)
	}

	return e, nil
}
