// Package model defines the records stored and returned by the API.
//
// JSON field names are camelCase. Nullable columns are pointers so that a
// NULL is rendered as JSON null.
package model

// Patch describes a partial update of one column. Set reports whether the
// column is written at all; a nil Value writes NULL.
type Patch[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a Patch writing v.
func SetTo[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

// SetNull returns a Patch writing NULL.
func SetNull[T any]() Patch[T] {
	return Patch[T]{Set: true}
}
