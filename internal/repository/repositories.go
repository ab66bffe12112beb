package repository

import (
	"github.com/maprangsoft/crudapi/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User     *UserRepository
	Blog     *BlogRepository
	Product  *ProductRepository
	Customer *CustomerRepository
}

// NewRepositories constructs the repository container on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.Pool)
}

// NewRepositoriesWithDB constructs the repository container on any DBTX, such
// as a transaction in tests.
func NewRepositoriesWithDB(db DBTX) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Blog:     NewBlogRepository(db),
		Product:  NewProductRepository(db),
		Customer: NewCustomerRepository(db),
	}
}
