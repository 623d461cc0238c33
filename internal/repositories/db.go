package repositories

import (
	"context"
	"errors"

	"carmart/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// the same surface, which keeps repository tests off a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// errNoRowsAffected marks write statements that matched zero rows.
var errNoRowsAffected = pgx.ErrNoRows

// translateErr maps driver errors to the domain taxonomy: missing rows
// become common.ErrNotFound, and constraint violations that slipped past
// pre-validation (two concurrent writes can both pass the read-time check)
// become conflicts instead of opaque store faults.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &common.ConflictError{Message: "El registro entra en conflicto con un valor único existente."}
		case pgForeignKeyViolation:
			return &common.ConflictError{Message: "La referencia indicada no existe."}
		}
	}
	return err
}
