package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
)

// CustomerHandler only lists; customers are read-only through the API.
type CustomerHandler struct {
	Handler
	customerService *service.CustomerService
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(s *server.Server, customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:         NewHandler(s),
		customerService: customerService,
	}
}

// List handles GET /customers with the {success, message, data} envelope.
func (h *CustomerHandler) List(c echo.Context, _ *NoRequest) (ListResponse[model.Customer], error) {
	ctx := c.Request().Context()
	customers, err := h.customerService.List(ctx)
	if err != nil {
		return ListResponse[model.Customer]{}, err
	}
	return ListResponse[model.Customer]{
		Success: true,
		Message: i18n.Ctx(ctx, i18n.MsgCustomersListed),
		Data:    customers,
	}, nil
}
