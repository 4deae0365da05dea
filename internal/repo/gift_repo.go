// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Gift
// catalog.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
)

// CreateGift inserts a new catalog item.
func CreateGift(ctx context.Context, db *gorm.DB, name, description string, quantity int) (*domain.Gift, error) {
	g := &domain.Gift{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// ListGiftsPage returns a paginated slice of gifts ordered by name, with an
// optional name-substring filter. Use CountGifts for pagination metadata.
func ListGiftsPage(ctx context.Context, db *gorm.DB, search string, offset, limit int) ([]domain.Gift, error) {
	var out []domain.Gift
	q := db.WithContext(ctx).Order("name ASC")
	if search != "" {
		q = q.Where("name LIKE ? ESCAPE '\\'", "%"+escapeLike(search)+"%")
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountGifts returns the total number of gifts matching the optional
// name-substring filter.
func CountGifts(ctx context.Context, db *gorm.DB, search string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.Gift{})
	if search != "" {
		q = q.Where("name LIKE ? ESCAPE '\\'", "%"+escapeLike(search)+"%")
	}
	err := q.Count(&total).Error
	return total, err
}

// GetGift fetches a gift by id, returning ErrNotFound if missing.
func GetGift(ctx context.Context, db *gorm.DB, id uint) (*domain.Gift, error) {
	var g domain.Gift
	if err := db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGift updates name, description, and quantity of a gift. If no row
// is affected it returns ErrNotFound.
func UpdateGift(ctx context.Context, db *gorm.DB, id uint, name, description string, quantity int) error {
	res := db.WithContext(ctx).
		Model(&domain.Gift{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"quantity":    quantity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteGift soft-deletes a gift by id, returning ErrNotFound if missing.
func DeleteGift(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Gift{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
