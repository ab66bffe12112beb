package router

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/pkg/errors"
)

// memStore mimics the PostgreSQL repositories closely enough for routing
// tests: identity ids, the unique email constraint, the author foreign key
// with ON DELETE SET NULL, and pgx.ErrNoRows for missing rows.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]model.User
	blogs     map[int64]model.Blog
	products  map[int64]model.Product
	customers []model.Customer
	// failWith, when set, is returned by every call.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]model.User{},
		blogs:    map[int64]model.Blog{},
		products: map[int64]model.Product{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// now advances with every id so created_at ordering is strict.
func (m *memStore) now() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.nextID) * time.Second)
}

func noRows(table string, id int64) error {
	return errors.Wrapf(pgx.ErrNoRows, "%s: %d", table, id)
}

func uniqueEmail() error {
	return &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}
}

func missingAuthor() error {
	return &pgconn.PgError{Code: "23503", TableName: "blogs", ConstraintName: "blogs_author_id_fkey"}
}

func newestFirst[T any](items map[int64]T, createdAt func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return createdAt(out[i]).After(createdAt(out[j])) })
	return out
}

type memUsers struct{ *memStore }

func (m memUsers) emailTaken(email string, except int64) bool {
	for _, u := range m.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (m memUsers) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return newestFirst(m.users, func(u model.User) time.Time { return u.CreatedAt }), nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, noRows("users", id)
	}
	return &u, nil
}

func (m memUsers) Create(_ context.Context, in model.CreateUser) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.emailTaken(in.Email, 0) {
		return nil, errors.Wrap(uniqueEmail(), "users: create")
	}
	id := m.id()
	u := model.User{ID: id, Email: in.Email, Name: in.Name, CreatedAt: m.now(), UpdatedAt: m.now()}
	m.users[id] = u
	return &u, nil
}

func (m memUsers) Update(_ context.Context, id int64, in model.UpdateUser) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, noRows("users", id)
	}
	if in.Email.Set {
		if m.emailTaken(*in.Email.Value, id) {
			return nil, uniqueEmail()
		}
		u.Email = *in.Email.Value
	}
	if in.Name.Set {
		u.Name = in.Name.Value
	}
	m.id()
	u.UpdatedAt = m.now()
	m.users[id] = u
	return &u, nil
}

func (m memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return noRows("users", id)
	}
	delete(m.users, id)
	for blogID, b := range m.blogs {
		if b.AuthorID != nil && *b.AuthorID == id {
			b.AuthorID = nil
			m.blogs[blogID] = b
		}
	}
	return nil
}

type memBlogs struct{ *memStore }

// withAuthor fills the author projection the way the LEFT JOIN does.
func (m memBlogs) withAuthor(b model.Blog) model.Blog {
	b.Author = nil
	if b.AuthorID != nil {
		if u, ok := m.users[*b.AuthorID]; ok {
			b.Author = &model.Author{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return b
}

func (m memBlogs) List(context.Context) ([]model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blogs := newestFirst(m.blogs, func(b model.Blog) time.Time { return b.CreatedAt })
	for i := range blogs {
		blogs[i] = m.withAuthor(blogs[i])
	}
	return blogs, nil
}

func (m memBlogs) GetByID(_ context.Context, id int64) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return nil, noRows("blogs", id)
	}
	b = m.withAuthor(b)
	return &b, nil
}

func (m memBlogs) Create(_ context.Context, in model.CreateBlog) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.AuthorID != nil {
		if _, ok := m.users[*in.AuthorID]; !ok {
			return nil, errors.Wrap(missingAuthor(), "blogs: create")
		}
	}
	id := m.id()
	b := model.Blog{ID: id, Title: in.Title, Content: in.Content, AuthorID: in.AuthorID, CreatedAt: m.now(), UpdatedAt: m.now()}
	m.blogs[id] = b
	b = m.withAuthor(b)
	return &b, nil
}

func (m memBlogs) Update(_ context.Context, id int64, in model.UpdateBlog) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return nil, noRows("blogs", id)
	}
	if in.AuthorID.Set && in.AuthorID.Value != nil {
		if _, ok := m.users[*in.AuthorID.Value]; !ok {
			return nil, missingAuthor()
		}
	}
	if in.Title.Set {
		b.Title = *in.Title.Value
	}
	if in.Content.Set {
		b.Content = in.Content.Value
	}
	if in.AuthorID.Set {
		b.AuthorID = in.AuthorID.Value
	}
	m.id()
	b.UpdatedAt = m.now()
	m.blogs[id] = b
	b = m.withAuthor(b)
	return &b, nil
}

func (m memBlogs) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return noRows("blogs", id)
	}
	delete(m.blogs, id)
	return nil
}

type memProducts struct{ *memStore }

func (m memProducts) List(context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newestFirst(m.products, func(p model.Product) time.Time { return p.CreatedAt }), nil
}

func (m memProducts) GetByID(_ context.Context, id int64) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, noRows("products", id)
	}
	return &p, nil
}

func (m memProducts) Create(_ context.Context, in model.CreateProduct) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	p := model.Product{ID: id, Name: in.Name, Price: in.Price, CreatedAt: m.now(), UpdatedAt: m.now()}
	m.products[id] = p
	return &p, nil
}

func (m memProducts) Update(_ context.Context, id int64, in model.UpdateProduct) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, noRows("products", id)
	}
	if in.Name.Set {
		p.Name = *in.Name.Value
	}
	if in.Price.Set {
		p.Price = *in.Price.Value
	}
	m.id()
	p.UpdatedAt = m.now()
	m.products[id] = p
	return &p, nil
}

func (m memProducts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return noRows("products", id)
	}
	delete(m.products, id)
	return nil
}

type memCustomers struct{ *memStore }

func (m memCustomers) List(context.Context) ([]model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.customers, nil
}
