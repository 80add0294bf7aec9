// Package postgres loads survey records from a Postgres table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
	"github.com/maxviazov/survey-pdf-service/internal/repository/source"
)

// DefaultTable is the table created by the bundled goose migration.
const DefaultTable = "survey_records"

type recordSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewRecordSource reads every row of table once. An empty table name selects DefaultTable.
func NewRecordSource(pool *pgxpool.Pool, table string) repository.RecordSource {
	if table == "" {
		table = DefaultTable
	}
	return &recordSource{pool: pool, table: table}
}

func (s *recordSource) Records(ctx context.Context) ([]model.Record, error) {
	if s.pool == nil {
		return nil, errors.New("pgx pool is nil")
	}
	// survey_no is cast to text: the column may be numeric in older imports.
	sql := fmt.Sprintf(
		`SELECT guid,
		        COALESCE(district_name, ''),
		        COALESCE(mandal_name, ''),
		        COALESCE(village_name, ''),
		        COALESCE(survey_no::text, '')
		 FROM %s
		 ORDER BY guid`,
		pgx.Identifier{s.table}.Sanitize(),
	)
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, repository.MapPgError(err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Record, error) {
		var r model.Record
		var guid *string
		if err := row.Scan(&guid, &r.District, &r.Mandal, &r.Village, &r.Survey); err != nil {
			return model.Record{}, err
		}
		if guid != nil {
			r.GUID = *guid
		}
		return source.NormalizeRecord(r), nil
	})
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}
