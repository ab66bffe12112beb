// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Store errors are returned wrapped with context but otherwise untouched;
// a missing row is reported as pgx.ErrNoRows. Classification into API
// errors happens in sqlerr, called by the error middleware.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// updateBuilder collects "column = $n" assignments for a partial UPDATE.
type updateBuilder struct {
	sets []string
	args []any
}

func (b *updateBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// addPatch adds column when the patch is set. A nil value writes NULL.
func addPatch[T any](b *updateBuilder, column string, p model.Patch[T]) {
	if p.Set {
		b.add(column, p.Value)
	}
}

// build returns "UPDATE table SET ..., updated_at = now() WHERE id = $n" and
// its arguments. updated_at is always bumped, so an empty patch still touches
// the row.
func (b *updateBuilder) build(table string, id int64) (string, []any) {
	sets := append(append([]string(nil), b.sets...), "updated_at = now()")
	args := append(append([]any(nil), b.args...), id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	return sql, args
}

// deleteByID removes one row and reports pgx.ErrNoRows when nothing matched.
func deleteByID(ctx context.Context, db DBTX, table string, id int64) error {
	tag, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return errors.Wrapf(err, "%s: delete %d", table, id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "%s: delete %d", table, id)
	}
	return nil
}
