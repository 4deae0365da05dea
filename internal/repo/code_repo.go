// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Code model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Query composition is driven by CodeFilter, an explicit tagged filter type
// enumerating every predicate the code views support (by id, by value
// substring, by membership set, by used flag, by nullable gift link).
// Services construct a CodeFilter field by field, so the filter contract is
// statically checkable instead of passing loosely-typed where-clauses around.
//
// Error semantics:
//   - When a code is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CodeOrder selects the ordering of a code listing.
type CodeOrder int

const (
	// OrderIDAsc orders by ascending identifier (catalog-style views).
	OrderIDAsc CodeOrder = iota
	// OrderUsedAtDesc orders by most recent redemption first.
	OrderUsedAtDesc
)

// CodeFilter enumerates the predicates supported by code listings. The zero
// value matches every code ordered by ascending id; set fields to narrow.
//
// Membership semantics:
//   - ValueIn nil: no membership constraint.
//   - ValueIn non-nil but empty: matches nothing (an empty winner-variant
//     set must classify every code as "not winner", never "everything").
//   - ValueNotIn nil or empty: no exclusion constraint.
type CodeFilter struct {
	// ID restricts to a single code by primary key.
	ID *uint
	// ValueContains restricts to values containing the substring.
	ValueContains string
	// ValueIn restricts to values inside the membership set (exact match).
	ValueIn []string
	// ValueNotIn excludes values inside the membership set (exact match).
	ValueNotIn []string
	// Used restricts by redemption status when set.
	Used *bool
	// HasGift restricts by presence of the nullable gift link when set.
	HasGift *bool
	// Order selects the listing order.
	Order CodeOrder
}

// apply composes the filter onto a query rooted at the codes model.
func (f CodeFilter) apply(q *gorm.DB) *gorm.DB {
	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.ValueContains != "" {
		q = q.Where("value LIKE ? ESCAPE '\\'", "%"+escapeLike(f.ValueContains)+"%")
	}
	if f.ValueIn != nil {
		if len(f.ValueIn) == 0 {
			// Empty membership set matches nothing.
			q = q.Where("1 = 0")
		} else {
			q = q.Where("value IN ?", f.ValueIn)
		}
	}
	if len(f.ValueNotIn) > 0 {
		q = q.Where("value NOT IN ?", f.ValueNotIn)
	}
	if f.Used != nil {
		q = q.Where("used = ?", *f.Used)
	}
	if f.HasGift != nil {
		if *f.HasGift {
			q = q.Where("gift_id IS NOT NULL")
		} else {
			q = q.Where("gift_id IS NULL")
		}
	}
	return q
}

// order returns the ORDER BY clause for the filter.
func (f CodeFilter) order() string {
	if f.Order == OrderUsedAtDesc {
		return "used_at DESC"
	}
	return "id ASC"
}

// escapeLike escapes LIKE wildcards in a user-supplied search term so the
// term is matched literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// ListCodes returns a page of codes matching the filter, with gift and user
// summaries preloaded. It returns an empty slice when nothing matches.
// Use CountCodes with the same filter to obtain the total for pagination
// metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListCodes(ctx context.Context, db *gorm.DB, f CodeFilter, offset, limit int) ([]domain.Code, error) {
	var out []domain.Code
	err := f.apply(db.WithContext(ctx).Model(&domain.Code{})).
		Preload("Gift").
		Preload("User").
		Order(f.order()).
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountCodes returns the total number of codes matching the filter.
// On DB error, it returns the error.
func CountCodes(ctx context.Context, db *gorm.DB, f CodeFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Code{})).
		Count(&total).Error
	return total, err
}

// FindCodeByValues fetches the first code whose value exactly matches one of
// the given spellings, with gift and user preloaded. It returns ErrNotFound
// when none match. Callers pass the variant expansion of a single queried
// code so any historical formatting resolves to the same record.
func FindCodeByValues(ctx context.Context, db *gorm.DB, values []string) (*domain.Code, error) {
	if len(values) == 0 {
		return nil, ErrNotFound
	}
	var c domain.Code
	err := db.WithContext(ctx).
		Preload("Gift").
		Preload("User").
		Where("value IN ?", values).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCode fetches a single code by its primary key, with gift and user
// preloaded. It returns ErrNotFound if the record does not exist.
func GetCode(ctx context.Context, db *gorm.DB, id uint) (*domain.Code, error) {
	var c domain.Code
	err := db.WithContext(ctx).
		Preload("Gift").
		Preload("User").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCode inserts a new code row with the given raw value. Imported
// values are stored verbatim; normalization happens at classification time.
func CreateCode(ctx context.Context, db *gorm.DB, value string) (*domain.Code, error) {
	c := &domain.Code{
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
