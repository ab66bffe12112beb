package handler

import (
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/maprangsoft/crudapi/internal/validation"
)

// DataResponse is the {"data": ...} envelope.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ListResponse is the envelope used by the product and customer lists.
type ListResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NoRequest is the payload of routes that read nothing from the request.
type NoRequest struct{}

func (*NoRequest) Validate() error { return nil }

// patchOf turns a body field into a column patch: absent leaves the column
// alone, null clears it.
func patchOf[T any](f validation.Field[T]) model.Patch[T] {
	switch {
	case !f.Set:
		return model.Patch[T]{}
	case f.Null:
		return model.SetNull[T]()
	default:
		return model.SetTo(f.Value)
	}
}
