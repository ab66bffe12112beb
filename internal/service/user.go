package service

import (
	"context"

	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/model"
	"github.com/rs/zerolog"
)

// UserRepository is the store used by UserService.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in model.CreateUser) (*model.User, error)
	Update(ctx context.Context, id int64, in model.UpdateUser) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// WelcomeNotifier schedules the welcome email for a new user.
type WelcomeNotifier interface {
	EnqueueWelcome(ctx context.Context, to, name string) error
}

// UserService holds the user operations.
type UserService struct {
	repo     UserRepository
	notifier WelcomeNotifier
	logger   *zerolog.Logger
}

// NewUserService builds the service. notifier may be nil, in which case no
// welcome email is sent.
func NewUserService(repo UserRepository, notifier WelcomeNotifier, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, notifier: notifier, logger: logger}
}

// List returns every user, never nil.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(users), nil
}

// GetByID returns the user or a "user not found" error.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.ErrUserNotFound)
	}
	return user, nil
}

// Create persists the user and, when configured, enqueues a welcome email.
// A failed enqueue is logged; the user is created either way.
func (s *UserService) Create(ctx context.Context, in model.CreateUser) (*model.User, error) {
	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		if err := s.notifier.EnqueueWelcome(ctx, user.Email, name); err != nil && s.logger != nil {
			s.logger.Error().
				Err(err).
				Int64("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// Update changes the given fields. A missing user yields the store's
// pgx.ErrNoRows.
func (s *UserService) Update(ctx context.Context, id int64, in model.UpdateUser) (*model.User, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
