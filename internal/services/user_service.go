// Package services – UserService
//
// Read-only user summaries for the admin views. Account management and
// authentication live in a separate service; only listing and lookup are
// needed here to resolve "who redeemed this code".
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	// ListUsersPage returns a page of users with an optional filter.
	ListUsersPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.User, error)

	// CountUsers returns the total for the optional filter.
	CountUsers(ctx context.Context, db *gorm.DB, search string) (int64, error)
}

// UserService lists campaign participants.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository.
	Repo UserRepo
}

// NewUserService constructs a UserService bound to the given repository.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r}
}

// ListPage returns a page of users matching the optional search term and
// the total count.
func (s *UserService) ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	total, err := s.Repo.CountUsers(ctx, s.DB, search)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.User{}, 0, nil
	}

	items, err := s.Repo.ListUsersPage(ctx, s.DB, search, offset, pageSize)
	return items, total, err
}
