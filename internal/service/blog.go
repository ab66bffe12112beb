package service

import (
	"context"

	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
)

// BlogRepository is the store used by BlogService.
type BlogRepository interface {
	List(ctx context.Context) ([]model.Blog, error)
	GetByID(ctx context.Context, id int64) (*model.Blog, error)
	Create(ctx context.Context, in model.CreateBlog) (*model.Blog, error)
	Update(ctx context.Context, id int64, in model.UpdateBlog) (*model.Blog, error)
	Delete(ctx context.Context, id int64) error
}

// BlogService holds the blog operations.
type BlogService struct {
	repo BlogRepository
}

// NewBlogService creates a BlogService.
func NewBlogService(repo BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(blogs), nil
}

// GetByID returns the blog or a "blog not found" error.
func (s *BlogService) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.ErrBlogNotFound)
	}
	return blog, nil
}

func (s *BlogService) Create(ctx context.Context, in model.CreateBlog) (*model.Blog, error) {
	return s.repo.Create(ctx, in)
}

func (s *BlogService) Update(ctx context.Context, id int64, in model.UpdateBlog) (*model.Blog, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
