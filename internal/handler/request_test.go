package handler

import (
	"testing"

	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/validation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bodyRequest interface {
	validation.BodyBinder
	validation.Validatable
}

// bind runs the body half of the binding pipeline and returns the message
// of the first failure, or "".
func bind(t *testing.T, req bodyRequest, body string) string {
	t.Helper()

	parsed, err := validation.ParseBody([]byte(body))
	require.NoError(t, err)

	if err = req.BindBody(parsed); err == nil {
		err = req.Validate()
	}
	if err == nil {
		return ""
	}

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "unexpected error type %T", err)
	assert.Equal(t, errs.KindValidation, httpErr.Kind)
	return httpErr.Message
}

func TestCreateUserRequest(t *testing.T) {
	req := &CreateUserRequest{}
	assert.Empty(t, bind(t, req, `{"email":" a@b.co ","name":" Ann "}`))
	assert.Equal(t, "a@b.co", req.Email.Value)
	assert.Equal(t, "Ann", *req.Name.Ptr())

	req = &CreateUserRequest{}
	assert.Empty(t, bind(t, req, `{"email":"a@b.co","name":null}`))
	assert.Nil(t, req.Name.Ptr())
}

func TestUpdateUserRequest(t *testing.T) {
	req := &UpdateUserRequest{}
	assert.Empty(t, bind(t, req, `{}`))
	assert.False(t, req.Email.Set)

	assert.Equal(t, "email cannot be empty", bind(t, &UpdateUserRequest{}, `{"email":"  "}`))
	assert.Equal(t, "invalid email format", bind(t, &UpdateUserRequest{}, `{"email":"a@b"}`))
	assert.Equal(t, "name must be a string", bind(t, &UpdateUserRequest{}, `{"name":false}`))
}

func TestBlogRequests(t *testing.T) {
	tests := []struct {
		name string
		req  bodyRequest
		body string
		want string
	}{
		{"create minimal", &CreateBlogRequest{}, `{"title":"t"}`, ""},
		{"create null author", &CreateBlogRequest{}, `{"title":"t","authorId":null}`, ""},
		{"create blank title", &CreateBlogRequest{}, `{"title":" "}`, "title is required"},
		{"create negative author", &CreateBlogRequest{}, `{"title":"t","authorId":-3}`, "authorId must be a positive integer"},
		{"create fractional author", &CreateBlogRequest{}, `{"title":"t","authorId":1.25}`, "authorId must be a positive integer"},
		{"update empty", &UpdateBlogRequest{}, `{}`, ""},
		{"update blank title", &UpdateBlogRequest{}, `{"title":""}`, "title cannot be empty"},
		{"update title wrong type", &UpdateBlogRequest{}, `{"title":[]}`, "title cannot be empty"},
		{"update content wrong type", &UpdateBlogRequest{}, `{"content":{}}`, "content must be a string"},
		{"update author zero", &UpdateBlogRequest{}, `{"authorId":0}`, "authorId must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bind(t, tt.req, tt.body))
		})
	}
}

func TestProductRequests(t *testing.T) {
	tests := []struct {
		name string
		req  bodyRequest
		body string
		want string
	}{
		{"create zero price", &CreateProductRequest{}, `{"name":"n","price":0}`, ""},
		{"create missing price", &CreateProductRequest{}, `{"name":"n"}`, "price must be a non-negative integer"},
		{"create negative price", &CreateProductRequest{}, `{"name":"n","price":-1}`, "price must be a non-negative integer"},
		{"create fractional price", &CreateProductRequest{}, `{"name":"n","price":1.5}`, "price must be a non-negative integer"},
		{"create huge price", &CreateProductRequest{}, `{"name":"n","price":1e300}`, "price must be a non-negative integer"},
		{"create missing name", &CreateProductRequest{}, `{"price":1}`, "name is required"},
		{"update empty", &UpdateProductRequest{}, `{}`, ""},
		{"update null price", &UpdateProductRequest{}, `{"price":null}`, "price must be a non-negative integer"},
		{"update null name", &UpdateProductRequest{}, `{"name":null}`, "name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bind(t, tt.req, tt.body))
		})
	}
}

func TestPatchOf(t *testing.T) {
	assert.Equal(t, model.Patch[string]{}, patchOf(validation.Field[string]{}))
	assert.Equal(t, model.SetNull[string](), patchOf(validation.Field[string]{Set: true, Null: true}))
	assert.Equal(t, model.SetTo("x"), patchOf(validation.Field[string]{Set: true, Value: "x"}))
}
