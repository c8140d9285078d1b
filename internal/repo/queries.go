package repo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
)

//go:embed queries/list_parameters_by_lab.sql
var listParametersByLab string

//go:embed queries/list_tests_by_lab.sql
var listTestsByLab string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ParameterRow mirrors a parameters table row. ReferenceRanges holds the raw jsonb column.
type ParameterRow struct {
	ID              int64
	Name            string
	Unit            *string
	Price           *string
	ReferenceRanges []byte
}

// TestRow mirrors a tests table row.
type TestRow struct {
	ID           int64
	Name         string
	ParameterIDs []int64
	Price        *string
}

// ListByLabParams scopes an id lookup to one lab.
type ListByLabParams struct {
	LabID int64
	IDs   []int64
}

// PGQueries runs the lab-scoped read queries against Postgres.
type PGQueries struct {
	db DBTX
}

// NewPGQueries constructs PGQueries on top of a pool, connection or transaction.
func NewPGQueries(db DBTX) *PGQueries {
	return &PGQueries{db: db}
}

// ListParametersByLab loads parameter rows for the given ids.
func (q *PGQueries) ListParametersByLab(ctx context.Context, arg ListByLabParams) ([]ParameterRow, error) {
	rows, err := q.db.Query(ctx, listParametersByLab, arg.LabID, arg.IDs)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ParameterRow])
	if err != nil {
		return nil, fmt.Errorf("scan parameters: %w", err)
	}
	return items, nil
}

// ListTestsByLab loads test bundle rows for the given ids.
func (q *PGQueries) ListTestsByLab(ctx context.Context, arg ListByLabParams) ([]TestRow, error) {
	rows, err := q.db.Query(ctx, listTestsByLab, arg.LabID, arg.IDs)
	if err != nil {
		return nil, fmt.Errorf("query tests: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[TestRow])
	if err != nil {
		return nil, fmt.Errorf("scan tests: %w", err)
	}
	return items, nil
}
