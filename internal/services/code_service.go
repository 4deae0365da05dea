// Package services – CodeService
//
// This file implements the CodeService, the plain listing side of the codes
// table: paginated listings with the upstream filters (value substring,
// used/unused, linked-gift presence) and the single-code lookup that tries
// every spelling variant of the queried value. Classification views live in
// ClassificationService; this service never consults the winners ledger.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/codes"
	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/repo"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// CodeService provides code listing and lookup operations.
type CodeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the code repository.
	Repo CodeRepo
}

// NewCodeService constructs a CodeService bound to the given repository.
func NewCodeService(db *gorm.DB, r CodeRepo) *CodeService {
	return &CodeService{DB: db, Repo: r}
}

// CodeListOptions carries the upstream filters for List. Nil pointers leave
// the corresponding predicate off.
type CodeListOptions struct {
	// Search filters by value substring.
	Search string
	// Used filters by redemption status.
	Used *bool
	// HasGift filters by presence of a linked gift.
	HasGift *bool
}

// List returns a page of codes matching the options, newest-redemption
// first when filtering redeemed codes, ascending id otherwise, along with
// the total count.
func (s *CodeService) List(ctx context.Context, opt CodeListOptions, page, pageSize int) ([]domain.Code, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	f := repo.CodeFilter{
		ValueContains: opt.Search,
		Used:          opt.Used,
		HasGift:       opt.HasGift,
		Order:         repo.OrderIDAsc,
	}
	if opt.Used != nil && *opt.Used {
		f.Order = repo.OrderUsedAtDesc
	}

	total, err := s.Repo.CountCodes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Code{}, 0, nil
	}

	items, err := s.Repo.ListCodes(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Find resolves a single queried code by trying each of its spelling
// variants (raw, hyphenated, normalized, hyphen-stripped) as an exact
// match. A blank value yields ErrEmptyValue; no match under any variant
// yields ErrCodeNotFound.
func (s *CodeService) Find(ctx context.Context, value string) (*domain.Code, error) {
	if strings.TrimSpace(value) == "" {
		return nil, ErrEmptyValue
	}
	c, err := s.Repo.FindCodeByValues(ctx, s.DB, codes.Variants(value))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return c, nil
}
