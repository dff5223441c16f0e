package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("references a missing record")
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// classify maps driver errors onto the package sentinels, prefixing the
// resource name so messages read "asset not found".
func classify(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", resource, ErrNotFound)
	}
	switch sqlState(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%s %w: %v", resource, ErrConflict, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s %w: %v", resource, ErrInvalidReference, err)
	}
	return err
}

// sqlState extracts the SQLSTATE from either driver's error type.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
