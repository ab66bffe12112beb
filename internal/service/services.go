package service

import (
	"github.com/maprangsoft/crudapi/internal/repository"
	"github.com/maprangsoft/crudapi/internal/server"
)

// Services groups the business services handed to the HTTP handlers.
type Services struct {
	User     *UserService
	Blog     *BlogService
	Product  *ProductService
	Customer *CustomerService
}

// NewServices builds every service over repos. User creation enqueues a
// welcome email only when the server started a job service.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier WelcomeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		User:     NewUserService(repos.User, notifier, s.Logger),
		Blog:     NewBlogService(repos.Blog),
		Product:  NewProductService(repos.Product),
		Customer: NewCustomerService(repos.Customer),
	}
}
