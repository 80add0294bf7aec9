package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound          = errors.New("not found")
	ErrSourceUnavailable = errors.New("record source unavailable")
	ErrMissingColumn     = errors.New("required column missing")
)

// MapPgError translates the Postgres error codes the loader cares about to domain errors.
// A missing table or schema means the source was never provisioned; everything else passes through.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedTable, pgerrcode.InvalidSchemaName, pgerrcode.InvalidCatalogName:
			return errors.Join(ErrSourceUnavailable, err)
		case pgerrcode.UndefinedColumn:
			return errors.Join(ErrMissingColumn, err)
		}
	}
	return err
}
