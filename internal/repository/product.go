package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

const productColumns = "id, name, price, created_at, updated_at"

// ProductRepository reads and writes the products table.
type ProductRepository struct {
	db DBTX
}

// NewProductRepository creates a ProductRepository over db.
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every product, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "products: list")
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Product])
	if err != nil {
		return nil, errors.Wrap(err, "products: list")
	}
	return products, nil
}

// GetByID returns the product with id, or pgx.ErrNoRows.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "products: get %d", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, errors.Wrapf(err, "products: get %d", id)
	}
	return p, nil
}

// Create fails with a check violation when Price is negative.
func (r *ProductRepository) Create(ctx context.Context, in model.CreateProduct) (*model.Product, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING `+productColumns,
		in.Name, in.Price,
	)
	if err != nil {
		return nil, errors.Wrap(err, "products: create")
	}

	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, errors.Wrap(err, "products: create")
	}
	return p, nil
}

// Update writes the set patches of in and returns the stored row, or
// pgx.ErrNoRows.
func (r *ProductRepository) Update(ctx context.Context, id int64, in model.UpdateProduct) (*model.Product, error) {
	var b updateBuilder
	addPatch(&b, "name", in.Name)
	addPatch(&b, "price", in.Price)

	sql, args := b.build("products", id)
	rows, err := r.db.Query(ctx, sql+` RETURNING `+productColumns, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "products: update %d", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[model.Product])
	if err != nil {
		return nil, errors.Wrapf(err, "products: update %d", id)
	}
	return p, nil
}

// Delete removes the product, returning pgx.ErrNoRows when nothing matched.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "products", id)
}
