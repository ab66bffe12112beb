package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
	"github.com/maprangsoft/crudapi/internal/validation"
)

// CreateUserRequest is the body of POST /users. Both fields are required.
type CreateUserRequest struct {
	Email validation.Field[string]
	Name  validation.Field[string]
}

func (r *CreateUserRequest) BindBody(body validation.Body) (err error) {
	if r.Email, err = body.String("email", i18n.ErrFieldRequired); err != nil {
		return err
	}
	r.Name, err = body.String("name", i18n.ErrFieldString)
	return err
}

func (r *CreateUserRequest) Validate() error {
	return validation.Check("email", r.Email.Value, validation.Required, validation.Email)
}

// UpdateUserRequest changes only the fields present in the body. email may
// not be cleared; name may be set to null.
type UpdateUserRequest struct {
	validation.IDParam
	Email validation.Field[string]
	Name  validation.Field[string]
}

func (r *UpdateUserRequest) BindBody(body validation.Body) (err error) {
	if r.Email, err = body.String("email", i18n.ErrFieldNotBlank); err != nil {
		return err
	}
	r.Name, err = body.String("name", i18n.ErrFieldString)
	return err
}

func (r *UpdateUserRequest) Validate() error {
	if r.Email.Set {
		return validation.Check("email", r.Email.Value, validation.NotBlank, validation.Email)
	}
	return nil
}

// UserHandler serves the /users routes.
type UserHandler struct {
	Handler
	userService *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context, _ *NoRequest) (DataResponse[[]model.User], error) {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return DataResponse[[]model.User]{}, err
	}
	return DataResponse[[]model.User]{Data: users}, nil
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c echo.Context, req *validation.IDParam) (DataResponse[*model.User], error) {
	user, err := h.userService.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return DataResponse[*model.User]{}, err
	}
	return DataResponse[*model.User]{Data: user}, nil
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (DataResponse[*model.User], error) {
	user, err := h.userService.Create(c.Request().Context(), model.CreateUser{
		Email: req.Email.Value,
		Name:  req.Name.Ptr(),
	})
	if err != nil {
		return DataResponse[*model.User]{}, err
	}
	return DataResponse[*model.User]{Data: user}, nil
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (DataResponse[*model.User], error) {
	user, err := h.userService.Update(c.Request().Context(), req.ID, model.UpdateUser{
		Email: patchOf(req.Email),
		Name:  patchOf(req.Name),
	})
	if err != nil {
		return DataResponse[*model.User]{}, err
	}
	return DataResponse[*model.User]{Data: user}, nil
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context, req *validation.IDParam) (MessageResponse, error) {
	ctx := c.Request().Context()
	if err := h.userService.Delete(ctx, req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: i18n.Ctx(ctx, i18n.MsgDeleted)}, nil
}
