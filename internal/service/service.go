// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/jackc/pgx/v5"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/pkg/errors"
)

// notFound turns a missing row into an entity-specific NotFoundError. Any
// other error is returned untouched for the error middleware to classify.
func notFound(err error, msgID string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError(msgID, nil)
	}
	return err
}

// nonNil makes sure a list renders as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
