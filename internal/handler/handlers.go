package handler

import (
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	User     *UserHandler
	Blog     *BlogHandler
	Product  *ProductHandler
	Customer *CustomerHandler
}

// NewHandlers creates every handler the router mounts.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		User:     NewUserHandler(s, services.User),
		Blog:     NewBlogHandler(s, services.Blog),
		Product:  NewProductHandler(s, services.Product),
		Customer: NewCustomerHandler(s, services.Customer),
	}
}
