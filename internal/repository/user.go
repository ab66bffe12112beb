package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

const userColumns = "id, email, name, created_at, updated_at"

// UserRepository reads and writes the users table.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a UserRepository over db.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "users: list")
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return model.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "users: list")
	}
	return users, nil
}

// GetByID returns pgx.ErrNoRows when no user has id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, errors.Wrapf(err, "users: get %d", id)
	}
	return u, nil
}

// Create inserts the user. A duplicate email surfaces as a unique violation
// on users_email_key.
func (r *UserRepository) Create(ctx context.Context, in model.CreateUser) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (email, name) VALUES ($1, $2) RETURNING `+userColumns,
		in.Email, in.Name,
	))
	if err != nil {
		return nil, errors.Wrap(err, "users: create")
	}
	return u, nil
}

// Update writes only the set fields. It returns pgx.ErrNoRows when no user has id.
func (r *UserRepository) Update(ctx context.Context, id int64, in model.UpdateUser) (*model.User, error) {
	var b updateBuilder
	addPatch(&b, "email", in.Email)
	addPatch(&b, "name", in.Name)

	sql, args := b.build("users", id)
	u, err := scanUser(r.db.QueryRow(ctx, sql+` RETURNING `+userColumns, args...))
	if err != nil {
		return nil, errors.Wrapf(err, "users: update %d", id)
	}
	return u, nil
}

// Delete returns pgx.ErrNoRows when no user has id. Blogs written by the
// user keep existing with a NULL author.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "users", id)
}
