package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

// blogSelect reads blogs from the relation "b" joined with their author.
const blogSelect = `
SELECT b.id, b.title, b.content, b.author_id, b.created_at, b.updated_at,
       u.id, u.name, u.email
FROM b
LEFT JOIN users u ON u.id = b.author_id`

// BlogRepository reads and writes the blogs table.
type BlogRepository struct {
	db DBTX
}

// NewBlogRepository creates a BlogRepository over db.
func NewBlogRepository(db DBTX) *BlogRepository {
	return &BlogRepository{db: db}
}

func scanBlog(row pgx.Row) (*model.Blog, error) {
	var (
		b           model.Blog
		authorID    *int64
		authorName  *string
		authorEmail *string
	)
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&authorID, &authorName, &authorEmail,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		b.Author = &model.Author{ID: *authorID, Name: authorName}
		if authorEmail != nil {
			b.Author.Email = *authorEmail
		}
	}
	return &b, nil
}

// List returns every blog with its author, newest first.
func (r *BlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.db.Query(ctx, `WITH b AS (SELECT * FROM blogs)`+blogSelect+` ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "blogs: list")
	}

	blogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Blog, error) {
		b, err := scanBlog(row)
		if err != nil {
			return model.Blog{}, err
		}
		return *b, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "blogs: list")
	}
	return blogs, nil
}

// GetByID returns pgx.ErrNoRows when no blog has id.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	b, err := scanBlog(r.db.QueryRow(ctx, `WITH b AS (SELECT * FROM blogs WHERE id = $1)`+blogSelect, id))
	if err != nil {
		return nil, errors.Wrapf(err, "blogs: get %d", id)
	}
	return b, nil
}

// Create fails with a foreign key violation when AuthorID names no user.
func (r *BlogRepository) Create(ctx context.Context, in model.CreateBlog) (*model.Blog, error) {
	b, err := scanBlog(r.db.QueryRow(ctx,
		`WITH b AS (INSERT INTO blogs (title, content, author_id) VALUES ($1, $2, $3) RETURNING *)`+blogSelect,
		in.Title, in.Content, in.AuthorID,
	))
	if err != nil {
		return nil, errors.Wrap(err, "blogs: create")
	}
	return b, nil
}

// Update writes only the set fields. It returns pgx.ErrNoRows when no blog has id.
func (r *BlogRepository) Update(ctx context.Context, id int64, in model.UpdateBlog) (*model.Blog, error) {
	var ub updateBuilder
	addPatch(&ub, "title", in.Title)
	addPatch(&ub, "content", in.Content)
	addPatch(&ub, "author_id", in.AuthorID)

	sql, args := ub.build("blogs", id)
	b, err := scanBlog(r.db.QueryRow(ctx, `WITH b AS (`+sql+` RETURNING *)`+blogSelect, args...))
	if err != nil {
		return nil, errors.Wrapf(err, "blogs: update %d", id)
	}
	return b, nil
}

// Delete removes the blog, returning pgx.ErrNoRows when nothing matched.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "blogs", id)
}
