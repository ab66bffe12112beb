package service

import (
	"context"

	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
)

// ProductRepository is the store used by ProductService.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, in model.CreateProduct) (*model.Product, error)
	Update(ctx context.Context, id int64, in model.UpdateProduct) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductService holds the product operations.
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates a ProductService.
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(products), nil
}

// GetByID returns the product or a "product not found" error.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.ErrProductNotFound)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, in model.CreateProduct) (*model.Product, error) {
	return s.repo.Create(ctx, in)
}

func (s *ProductService) Update(ctx context.Context, id int64, in model.UpdateProduct) (*model.Product, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
