// Package services – WinnerService
//
// This file implements the WinnerService, the admin surface of the winners
// ledger: paginated listing, adding a value, and removing a row. Values are
// stored exactly as entered; the classification engine is responsible for
// treating different spellings of the same logical code as equivalent, so
// the ledger itself needs no normalization on write.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// WinnerRepo defines the ledger repository contract required by
// WinnerService.
type WinnerRepo interface {
	// ListWinnersPage returns a page of ledger rows, newest first.
	ListWinnersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Winner, error)

	// CountWinners returns the total number of ledger rows.
	CountWinners(ctx context.Context, db *gorm.DB) (int64, error)

	// CreateWinner inserts a ledger row with the given raw value.
	CreateWinner(ctx context.Context, db *gorm.DB, value string) (*domain.Winner, error)

	// DeleteWinner soft-deletes a ledger row, or repo.ErrNotFound.
	DeleteWinner(ctx context.Context, db *gorm.DB, id uint) error
}

// WinnerService manages the winners ledger.
type WinnerService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the ledger repository.
	Repo WinnerRepo
}

// NewWinnerService constructs a WinnerService bound to the given repository.
func NewWinnerService(db *gorm.DB, r WinnerRepo) *WinnerService {
	return &WinnerService{DB: db, Repo: r}
}

// ListPage returns a page of ledger rows and the total count.
func (s *WinnerService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Winner, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	total, err := s.Repo.CountWinners(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Winner{}, 0, nil
	}

	items, err := s.Repo.ListWinnersPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Add appends a value to the ledger. The value is stored verbatim apart
// from trimming surrounding whitespace; a blank value yields ErrEmptyValue.
func (s *WinnerService) Add(ctx context.Context, value string) (*domain.Winner, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrEmptyValue
	}
	return s.Repo.CreateWinner(ctx, s.DB, value)
}

// Remove soft-deletes a ledger row, returning ErrWinnerNotFound if the row
// does not exist.
func (s *WinnerService) Remove(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteWinner(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWinnerNotFound
		}
		return err
	}
	return nil
}
