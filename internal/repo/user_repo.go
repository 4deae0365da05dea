// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for User
// summaries consumed by the admin views.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
)

// ListUsersPage returns a paginated slice of users ordered by id, with an
// optional name/email substring filter.
func ListUsersPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	q := db.WithContext(ctx).Order("id ASC")
	if search != "" {
		like := "%" + escapeLike(search) + "%"
		q = q.Where("name LIKE ? ESCAPE '\\' OR email LIKE ? ESCAPE '\\'", like, like)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountUsers returns the total number of users matching the optional
// substring filter.
func CountUsers(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.User{})
	if search != "" {
		like := "%" + escapeLike(search) + "%"
		q = q.Where("name LIKE ? ESCAPE '\\' OR email LIKE ? ESCAPE '\\'", like, like)
	}
	err := q.Count(&total).Error
	return total, err
}

// GetUser fetches a user by id, returning ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
