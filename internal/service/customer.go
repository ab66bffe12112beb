package service

import (
	"context"

	"github.com/maprangsoft/crudapi/internal/model"
)

// CustomerRepository is the store used by CustomerService.
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
}

// CustomerService is read-only.
type CustomerService struct {
	repo CustomerRepository
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// List returns every customer, never nil.
func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(customers), nil
}
