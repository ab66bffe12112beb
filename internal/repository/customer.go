package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

// CustomerRepository reads the customers table.
type CustomerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a CustomerRepository over db.
func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns every customer, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, created_at FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "customers: list")
	}

	customers, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Customer])
	if err != nil {
		return nil, errors.Wrap(err, "customers: list")
	}
	return customers, nil
}
