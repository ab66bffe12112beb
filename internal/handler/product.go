package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
	"github.com/maprangsoft/crudapi/internal/validation"
)

// CreateProductRequest is the body of POST /products. Price is required.
type CreateProductRequest struct {
	Name  validation.Field[string]
	Price validation.Field[int64]
}

func (r *CreateProductRequest) BindBody(body validation.Body) (err error) {
	if r.Name, err = body.String("name", i18n.ErrFieldRequired); err != nil {
		return err
	}
	r.Price, err = body.Integer("price", i18n.ErrFieldNonNegativeInt)
	return err
}

func (r *CreateProductRequest) Validate() error {
	if err := validation.Check("name", r.Name.Value, validation.Required); err != nil {
		return err
	}
	if !r.Price.Present() {
		return validation.FieldError("price", i18n.ErrFieldNonNegativeInt)
	}
	return validation.Check("price", r.Price.Value, validation.NonNegativeInt)
}

// UpdateProductRequest changes only the fields present in the body. Neither
// field may be cleared.
type UpdateProductRequest struct {
	validation.IDParam
	Name  validation.Field[string]
	Price validation.Field[int64]
}

func (r *UpdateProductRequest) BindBody(body validation.Body) (err error) {
	if r.Name, err = body.String("name", i18n.ErrFieldNotBlank); err != nil {
		return err
	}
	r.Price, err = body.Integer("price", i18n.ErrFieldNonNegativeInt)
	return err
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name.Set {
		if err := validation.Check("name", r.Name.Value, validation.NotBlank); err != nil {
			return err
		}
	}
	if r.Price.Set {
		if r.Price.Null {
			return validation.FieldError("price", i18n.ErrFieldNonNegativeInt)
		}
		return validation.Check("price", r.Price.Value, validation.NonNegativeInt)
	}
	return nil
}

// ProductHandler serves the /products routes.
type ProductHandler struct {
	Handler
	productService *service.ProductService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(s *server.Server, productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:        NewHandler(s),
		productService: productService,
	}
}

// List handles GET /products with the {success, message, data} envelope.
func (h *ProductHandler) List(c echo.Context, _ *NoRequest) (ListResponse[model.Product], error) {
	ctx := c.Request().Context()
	products, err := h.productService.List(ctx)
	if err != nil {
		return ListResponse[model.Product]{}, err
	}
	return ListResponse[model.Product]{
		Success: true,
		Message: i18n.Ctx(ctx, i18n.MsgProductsListed),
		Data:    products,
	}, nil
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c echo.Context, req *validation.IDParam) (DataResponse[*model.Product], error) {
	product, err := h.productService.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return DataResponse[*model.Product]{}, err
	}
	return DataResponse[*model.Product]{Data: product}, nil
}

// Create handles POST /products.
func (h *ProductHandler) Create(c echo.Context, req *CreateProductRequest) (DataResponse[*model.Product], error) {
	product, err := h.productService.Create(c.Request().Context(), model.CreateProduct{
		Name:  req.Name.Value,
		Price: req.Price.Value,
	})
	if err != nil {
		return DataResponse[*model.Product]{}, err
	}
	return DataResponse[*model.Product]{Data: product}, nil
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c echo.Context, req *UpdateProductRequest) (DataResponse[*model.Product], error) {
	product, err := h.productService.Update(c.Request().Context(), req.ID, model.UpdateProduct{
		Name:  patchOf(req.Name),
		Price: patchOf(req.Price),
	})
	if err != nil {
		return DataResponse[*model.Product]{}, err
	}
	return DataResponse[*model.Product]{Data: product}, nil
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context, req *validation.IDParam) (MessageResponse, error) {
	ctx := c.Request().Context()
	if err := h.productService.Delete(ctx, req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: i18n.Ctx(ctx, i18n.MsgDeleted)}, nil
}
