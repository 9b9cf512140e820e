package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"financeqa/internal/auth"
	"financeqa/internal/cache"
	"financeqa/internal/errors"
	"financeqa/internal/model"
	"financeqa/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ErrUserNotFound is returned when a user id does not resolve.
var ErrUserNotFound = errors.New(errors.ErrNotFound, "user not found")

// UserService exposes user profile operations.
type UserService interface {
	Profile(ctx context.Context, caller auth.Identity) (*model.User, error)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// Profile returns the caller's own user record, cached for a few minutes.
func (s *userService) Profile(ctx context.Context, caller auth.Identity) (*model.User, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(caller.UserID), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(user.ID), user, userCacheTTL)
	return user, nil
}

// Invalidate drops the cached profile of a user.
func (s *userService) Invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}
