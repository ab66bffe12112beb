package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/handler"
)

func registerResourceRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")
	users.GET("", handler.Handle(h.User.List, http.StatusOK))
	users.GET("/:id", handler.Handle(h.User.GetByID, http.StatusOK))
	users.POST("", handler.Handle(h.User.Create, http.StatusCreated))
	users.PUT("/:id", handler.Handle(h.User.Update, http.StatusOK))
	users.DELETE("/:id", handler.Handle(h.User.Delete, http.StatusOK))

	blogs := r.Group("/blogs")
	blogs.GET("", handler.Handle(h.Blog.List, http.StatusOK))
	blogs.GET("/:id", handler.Handle(h.Blog.GetByID, http.StatusOK))
	blogs.POST("", handler.Handle(h.Blog.Create, http.StatusCreated))
	blogs.PUT("/:id", handler.Handle(h.Blog.Update, http.StatusOK))
	blogs.DELETE("/:id", handler.Handle(h.Blog.Delete, http.StatusOK))

	products := r.Group("/products")
	products.GET("", handler.Handle(h.Product.List, http.StatusOK))
	products.GET("/:id", handler.Handle(h.Product.GetByID, http.StatusOK))
	products.POST("", handler.Handle(h.Product.Create, http.StatusCreated))
	products.PUT("/:id", handler.Handle(h.Product.Update, http.StatusOK))
	products.DELETE("/:id", handler.Handle(h.Product.Delete, http.StatusOK))

	// Customers are read-only.
	r.GET("/customers", handler.Handle(h.Customer.List, http.StatusOK))
}
