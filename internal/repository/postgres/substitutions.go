package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/modcheck/internal/apperrors"
)

const listSubstitutions = `-- name: ListSubstitutions
SELECT sort_code, substitute FROM sort_code_substitutions
`

func (s *Storage) ListSubstitutions(ctx context.Context) (map[string]string, error) {
	rows, _ := s.db.Query(ctx, listSubstitutions)
	defer rows.Close()

	substitutes := make(map[string]string)
	var sortCode, substitute string
	_, err := pgx.ForEachRow(rows, []any{&sortCode, &substitute}, func() error {
		substitutes[sortCode] = substitute
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return substitutes, nil
}

const deleteSubstitutions = `-- name: DeleteSubstitutions
DELETE FROM sort_code_substitutions
`

const insertSubstitution = `-- name: InsertSubstitution
INSERT INTO sort_code_substitutions (sort_code, substitute)
VALUES ($1, $2)
`

func (s *Storage) ReplaceSubstitutions(ctx context.Context, substitutes map[string]string) error {
	if _, err := s.db.Exec(ctx, deleteSubstitutions); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for sortCode, substitute := range substitutes {
		if err := s.AddSubstitution(ctx, sortCode, substitute); err != nil {
			return err
		}
	}

	return nil
}

// Has to return apperrors.ErrDuplicateSubstitution if the sort code is already substituted
func (s *Storage) AddSubstitution(ctx context.Context, sortCode string, substitute string) error {
	_, err := s.db.Exec(ctx, insertSubstitution, sortCode, substitute)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSubstitution, sortCode)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
