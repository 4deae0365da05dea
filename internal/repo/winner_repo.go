// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Winner
// ledger.
//
// The winners table is append-and-remove only: operators paste in code
// values asserted to have won, and remove rows that were entered in error.
// Rows are soft-deleted; ListWinnerValues only ever sees live rows.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
)

// ListWinnerValues returns the raw values of all non-deleted winner rows,
// in insertion order. The classification engine expands these into the
// variant membership set on every call, so no normalized copy is stored.
func ListWinnerValues(ctx context.Context, db *gorm.DB) ([]string, error) {
	var values []string
	err := db.WithContext(ctx).
		Model(&domain.Winner{}).
		Order("id ASC").
		Pluck("value", &values).Error
	return values, err
}

// ListWinnersPage returns a paginated slice of winner rows, newest first.
// Use CountWinners to obtain the total for pagination metadata.
func ListWinnersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Winner, error) {
	var out []domain.Winner
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountWinners returns the total number of non-deleted winner rows.
func CountWinners(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Winner{}).
		Count(&total).Error
	return total, err
}

// CreateWinner inserts a new ledger row with the value exactly as the
// operator entered it. Duplicate spellings of the same logical code are
// allowed; classification collapses them via set semantics.
func CreateWinner(ctx context.Context, db *gorm.DB, value string) (*domain.Winner, error) {
	w := &domain.Winner{
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWinner soft-deletes a ledger row by id. If no row is affected it
// returns ErrNotFound.
func DeleteWinner(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Winner{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
