package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
	"github.com/maprangsoft/crudapi/internal/validation"
)

// CreateBlogRequest is the body of POST /blogs.
type CreateBlogRequest struct {
	Title    validation.Field[string]
	Content  validation.Field[string]
	AuthorID validation.Field[int64]
}

func (r *CreateBlogRequest) BindBody(body validation.Body) (err error) {
	if r.Title, err = body.String("title", i18n.ErrFieldRequired); err != nil {
		return err
	}
	if r.Content, err = body.String("content", i18n.ErrFieldString); err != nil {
		return err
	}
	r.AuthorID, err = body.Integer("authorId", i18n.ErrFieldPositiveInt)
	return err
}

func (r *CreateBlogRequest) Validate() error {
	if err := validation.Check("title", r.Title.Value, validation.Required); err != nil {
		return err
	}
	if r.AuthorID.Present() {
		return validation.Check("authorId", r.AuthorID.Value, validation.PositiveInt)
	}
	return nil
}

// UpdateBlogRequest changes only the fields present in the body. content and
// authorId may be set to null; title may not.
type UpdateBlogRequest struct {
	validation.IDParam
	Title    validation.Field[string]
	Content  validation.Field[string]
	AuthorID validation.Field[int64]
}

func (r *UpdateBlogRequest) BindBody(body validation.Body) (err error) {
	if r.Title, err = body.String("title", i18n.ErrFieldNotBlank); err != nil {
		return err
	}
	if r.Content, err = body.String("content", i18n.ErrFieldString); err != nil {
		return err
	}
	r.AuthorID, err = body.Integer("authorId", i18n.ErrFieldPositiveInt)
	return err
}

func (r *UpdateBlogRequest) Validate() error {
	if r.Title.Set {
		if err := validation.Check("title", r.Title.Value, validation.NotBlank); err != nil {
			return err
		}
	}
	if r.AuthorID.Present() {
		return validation.Check("authorId", r.AuthorID.Value, validation.PositiveInt)
	}
	return nil
}

// BlogHandler serves the /blogs routes.
type BlogHandler struct {
	Handler
	blogService *service.BlogService
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(s *server.Server, blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		Handler:     NewHandler(s),
		blogService: blogService,
	}
}

// List handles GET /blogs.
func (h *BlogHandler) List(c echo.Context, _ *NoRequest) (DataResponse[[]model.Blog], error) {
	blogs, err := h.blogService.List(c.Request().Context())
	if err != nil {
		return DataResponse[[]model.Blog]{}, err
	}
	return DataResponse[[]model.Blog]{Data: blogs}, nil
}

// GetByID handles GET /blogs/:id.
func (h *BlogHandler) GetByID(c echo.Context, req *validation.IDParam) (DataResponse[*model.Blog], error) {
	blog, err := h.blogService.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return DataResponse[*model.Blog]{}, err
	}
	return DataResponse[*model.Blog]{Data: blog}, nil
}

// Create handles POST /blogs.
func (h *BlogHandler) Create(c echo.Context, req *CreateBlogRequest) (DataResponse[*model.Blog], error) {
	blog, err := h.blogService.Create(c.Request().Context(), model.CreateBlog{
		Title:    req.Title.Value,
		Content:  req.Content.Ptr(),
		AuthorID: req.AuthorID.Ptr(),
	})
	if err != nil {
		return DataResponse[*model.Blog]{}, err
	}
	return DataResponse[*model.Blog]{Data: blog}, nil
}

// Update handles PUT /blogs/:id.
func (h *BlogHandler) Update(c echo.Context, req *UpdateBlogRequest) (DataResponse[*model.Blog], error) {
	blog, err := h.blogService.Update(c.Request().Context(), req.ID, model.UpdateBlog{
		Title:    patchOf(req.Title),
		Content:  patchOf(req.Content),
		AuthorID: patchOf(req.AuthorID),
	})
	if err != nil {
		return DataResponse[*model.Blog]{}, err
	}
	return DataResponse[*model.Blog]{Data: blog}, nil
}

// Delete handles DELETE /blogs/:id.
func (h *BlogHandler) Delete(c echo.Context, req *validation.IDParam) (MessageResponse, error) {
	ctx := c.Request().Context()
	if err := h.blogService.Delete(ctx, req.ID); err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Message: i18n.Ctx(ctx, i18n.MsgDeleted)}, nil
}
