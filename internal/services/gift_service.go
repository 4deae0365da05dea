// Package services – GiftService
//
// This file implements the GiftService, the gift catalog admin surface.
// It validates names and coordinates repository operations for creating,
// listing (with pagination and search), updating, and removing gifts.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// GiftRepo defines the repository contract required by GiftService.
type GiftRepo interface {
	// CreateGift inserts a new catalog item.
	CreateGift(ctx context.Context, db *gorm.DB, name, description string, quantity int) (*domain.Gift, error)

	// ListGiftsPage returns a page of gifts with an optional name filter.
	ListGiftsPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.Gift, error)

	// CountGifts returns the total for the optional name filter.
	CountGifts(ctx context.Context, db *gorm.DB, search string) (int64, error)

	// GetGift fetches a gift by id, or repo.ErrNotFound.
	GetGift(ctx context.Context, db *gorm.DB, id uint) (*domain.Gift, error)

	// UpdateGift updates a gift in place, or repo.ErrNotFound.
	UpdateGift(ctx context.Context, db *gorm.DB, id uint, name, description string, quantity int) error

	// DeleteGift soft-deletes a gift, or repo.ErrNotFound.
	DeleteGift(ctx context.Context, db *gorm.DB, id uint) error
}

// GiftService manages the gift catalog.
type GiftService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the gift repository.
	Repo GiftRepo
}

// NewGiftService constructs a GiftService bound to the given repository.
func NewGiftService(db *gorm.DB, r GiftRepo) *GiftService {
	return &GiftService{DB: db, Repo: r}
}

// Create adds a catalog item. Names are trimmed; a blank name yields
// ErrEmptyName, and negative quantities are coerced to zero.
func (s *GiftService) Create(ctx context.Context, name, description string, quantity int) (*domain.Gift, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		quantity = 0
	}
	return s.Repo.CreateGift(ctx, s.DB, name, strings.TrimSpace(description), quantity)
}

// ListPage returns a page of gifts matching the optional search term and
// the total count.
func (s *GiftService) ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.Gift, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	total, err := s.Repo.CountGifts(ctx, s.DB, search)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Gift{}, 0, nil
	}

	items, err := s.Repo.ListGiftsPage(ctx, s.DB, search, offset, pageSize)
	return items, total, err
}

// Get fetches a gift by id, returning ErrGiftNotFound if missing.
func (s *GiftService) Get(ctx context.Context, id uint) (*domain.Gift, error) {
	g, err := s.Repo.GetGift(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return g, nil
}

// Update edits a gift in place with the same validation as Create.
func (s *GiftService) Update(ctx context.Context, id uint, name, description string, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if quantity < 0 {
		quantity = 0
	}
	if err := s.Repo.UpdateGift(ctx, s.DB, id, name, strings.TrimSpace(description), quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiftNotFound
		}
		return err
	}
	return nil
}

// Delete removes a gift, returning ErrGiftNotFound if missing.
func (s *GiftService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteGift(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiftNotFound
		}
		return err
	}
	return nil
}
