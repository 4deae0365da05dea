// Package services – ClassificationService
//
// This file implements the ClassificationService, the read side of the code
// classification engine. It reconciles the redeemed-codes table against the
// independently maintained winners ledger and exposes four views over the
// same collection: winners, losers, winner-codes, and non-winner-codes.
//
// Winner status is computed, never persisted: on every call the service
// loads the raw winner values, expands them into the literal variant set
// (codes.BuildVariantSet), and classifies candidates by exact-match
// membership. Recomputing from scratch trades a little work per request for
// read-time consistency — there is no is-winner flag to go stale when an
// operator edits the ledger. At the expected ledger scale (hundreds of
// rows) this costs microseconds; if the ledger ever grows by orders of
// magnitude the variant set should be cached and invalidated on ledger
// mutation.
//
// Search semantics are two-stage and deliberately preserved from the
// original campaign tooling: the search term first narrows the variant set
// (literal substring over the variants), the narrowed set then drives the
// membership predicate, and the term is separately reapplied as a
// value-substring filter on the code collection. The two narrowings can
// interact: a term matching only a derived variant still narrows the
// membership views, and a term matching no variant empties them.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/codes"
	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/repo"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// CodeRepo defines the code repository contract required by the
// classification and code services.
type CodeRepo interface {
	// ListCodes returns a page of codes matching the filter.
	ListCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter, offset, limit int) ([]domain.Code, error)

	// CountCodes returns the total matching the filter, for pagination.
	CountCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter) (int64, error)

	// FindCodeByValues fetches the first code matching any of the given
	// exact spellings, or repo.ErrNotFound.
	FindCodeByValues(ctx context.Context, db *gorm.DB, values []string) (*domain.Code, error)
}

// WinnerValuesRepo supplies the raw ledger values the membership set is
// built from.
type WinnerValuesRepo interface {
	// ListWinnerValues returns all non-deleted winner values, verbatim.
	ListWinnerValues(ctx context.Context, db *gorm.DB) ([]string, error)
}

// ClassificationService computes the four classification views. It is
// stateless between calls and safe for concurrent use; each call is a
// self-contained computation over freshly fetched inputs.
type ClassificationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Codes is the code repository.
	Codes CodeRepo
	// WinnerValues supplies the ledger values.
	WinnerValues WinnerValuesRepo
}

// NewClassificationService constructs a ClassificationService bound to the
// given repositories.
func NewClassificationService(db *gorm.DB, codeRepo CodeRepo, winnerRepo WinnerValuesRepo) *ClassificationService {
	return &ClassificationService{DB: db, Codes: codeRepo, WinnerValues: winnerRepo}
}

// view describes one of the four classification outputs.
type view struct {
	// member selects codes inside the variant set (winners side) when
	// true, outside it (losers side) when false.
	member bool
	// usedOnly restricts to redeemed codes.
	usedOnly bool
	// order is the listing order mandated for the view.
	order repo.CodeOrder
}

// Winners returns redeemed codes whose value is in the winner-variant set,
// most recent redemption first.
func (s *ClassificationService) Winners(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return s.classify(ctx, view{member: true, usedOnly: true, order: repo.OrderUsedAtDesc}, search, page, pageSize)
}

// Losers returns redeemed codes whose value is not in the winner-variant
// set, most recent redemption first.
func (s *ClassificationService) Losers(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return s.classify(ctx, view{member: false, usedOnly: true, order: repo.OrderUsedAtDesc}, search, page, pageSize)
}

// WinnerCodes returns every code (redeemed or not) whose value is in the
// winner-variant set, ascending identifier.
func (s *ClassificationService) WinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return s.classify(ctx, view{member: true, usedOnly: false, order: repo.OrderIDAsc}, search, page, pageSize)
}

// NonWinnerCodes returns every code (redeemed or not) whose value is not in
// the winner-variant set, ascending identifier.
func (s *ClassificationService) NonWinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return s.classify(ctx, view{member: false, usedOnly: false, order: repo.OrderIDAsc}, search, page, pageSize)
}

// classify runs the shared pipeline: load ledger values, build and narrow
// the variant set, translate the view into a CodeFilter, and page through
// the matching codes. It never fails on empty results; errors only
// originate in the repository collaborators and are surfaced unchanged.
func (s *ClassificationService) classify(ctx context.Context, v view, search string, page, pageSize int) ([]domain.Code, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	values, err := s.WinnerValues.ListWinnerValues(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	variants := codes.BuildVariantSet(values).Narrow(search)

	// Membership views against an empty (or fully narrowed-away) set are
	// empty by definition; skip the query rather than emit IN (NULL).
	if v.member && variants.Len() == 0 {
		return []domain.Code{}, 0, nil
	}

	f := repo.CodeFilter{
		ValueContains: search,
		Order:         v.order,
	}
	if v.usedOnly {
		used := true
		f.Used = &used
	}
	if v.member {
		f.ValueIn = variants.Values()
	} else {
		// Nothing to exclude leaves the non-membership views unconstrained:
		// with an empty ledger every code is a non-winner.
		f.ValueNotIn = variants.Values()
	}

	total, err := s.Codes.CountCodes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Code{}, 0, nil
	}

	items, err := s.Codes.ListCodes(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}
