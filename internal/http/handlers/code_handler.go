// Code HTTP handlers.
//
// This file exposes the REST endpoints over the codes table, including the
// four classification views:
//   - GET /codes                   (plain listing, upstream filters)
//   - GET /codes/lookup            (single-code variant lookup)
//   - GET /codes/winners           (redeemed ∧ in winner set, newest first)
//   - GET /codes/losers            (redeemed ∧ not in winner set, newest first)
//   - GET /codes/winner-codes      (in winner set, id asc)
//   - GET /codes/non-winner-codes  (not in winner set, id asc)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Every list endpoint returns the
// stable {data, total} shape.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/services"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ClassificationService defines the four classification views consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ClassificationService interface {
	// Winners returns redeemed winner codes, newest redemption first.
	Winners(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)
	// Losers returns redeemed non-winner codes, newest redemption first.
	Losers(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)
	// WinnerCodes returns all winner codes, ascending id.
	WinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)
	// NonWinnerCodes returns all non-winner codes, ascending id.
	NonWinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)
}

// CodeService defines plain code listing and lookup operations.
type CodeService interface {
	// List returns a page of codes under the upstream filters.
	List(ctx context.Context, opt services.CodeListOptions, page, pageSize int) ([]domain.Code, int64, error)
	// Find resolves a single code trying every spelling variant.
	Find(ctx context.Context, value string) (*domain.Code, error)
}

//
// DTOs
//

// CodeListResponse is the stable shape of every code list endpoint.
type CodeListResponse struct {
	// Data is the page of code records, including gift and user summaries.
	Data []domain.Code `json:"data"`
	// Total is the number of records matching the view across all pages.
	Total int64 `json:"total"`
}

//
// Helpers
//

// clampPagination parses and bounds page and limit query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage  = 1
		defaultLimit = 20
		maxLimit     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxLimit {
		pageSize = maxLimit
	}
	return
}

// boolParam parses an optional boolean query parameter; absent or
// unparseable values return nil (predicate off).
func boolParam(c *gin.Context, name string) *bool {
	v := strings.TrimSpace(c.Query(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		b := true
		return &b
	case "0", "false", "no":
		b := false
		return &b
	}
	return nil
}

// listView runs one classification view and writes the {data, total} page.
func (h *Handlers) listView(c *gin.Context, fn func(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)) {
	page, pageSize := clampPagination(c)
	items, total, err := fn(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CodeListResponse{Data: items, Total: total})
}

//
// Handlers
//

// ListCodes godoc
// @ID          listCodes
// @Summary     List codes
// @Description Returns a page of codes with optional value-substring, redemption-status, and gift-link filters.
// @Tags        Codes
// @Produce     json
//
// @Param       search    query  string  false "Value substring filter"
// @Param       used      query  bool    false "Filter by redemption status"
// @Param       has_gift  query  bool    false "Filter by linked-gift presence"
// @Param       page      query  int     false "Page number"     minimum(1) default(1)
// @Param       limit     query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.CodeListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes [get]
func (h *Handlers) ListCodes(c *gin.Context) {
	page, pageSize := clampPagination(c)
	opt := services.CodeListOptions{
		Search:  c.Query("search"),
		Used:    boolParam(c, "used"),
		HasGift: boolParam(c, "has_gift"),
	}

	items, total, err := h.codeSvc.List(c.Request.Context(), opt, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CodeListResponse{Data: items, Total: total})
}

// LookupCode godoc
// @ID          lookupCode
// @Summary     Look up a single code
// @Description Resolves a code by value, matching any historical spelling (raw, hyphenated, normalized, hyphen-stripped).
// @Tags        Codes
// @Produce     json
//
// @Param       value  query  string  true "Code value in any format"  example(ab12-cd3456)
//
// @Success     200  {object} domain.Code
// @Failure     400  {object} handlers.ErrorResponse "Missing value"
// @Failure     404  {object} handlers.ErrorResponse "Code not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/lookup [get]
func (h *Handlers) LookupCode(c *gin.Context) {
	value := c.Query("value")
	if strings.TrimSpace(value) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value query parameter required")
		return
	}

	code, err := h.codeSvc.Find(c.Request.Context(), value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "code not found")
		case errors.Is(err, services.ErrEmptyValue):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value query parameter required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeLookupFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, code)
}

// ListWinners godoc
// @ID          listWinnersView
// @Summary     List winning redeemed codes
// @Description Redeemed codes whose value matches the winners ledger under any formatting, newest redemption first.
// @Tags        Codes
// @Produce     json
//
// @Param       search  query  string  false "Substring filter (narrows winner variants, then values)"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.CodeListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/winners [get]
func (h *Handlers) ListWinners(c *gin.Context) {
	h.listView(c, h.classSvc.Winners)
}

// ListLosers godoc
// @ID          listLosersView
// @Summary     List losing redeemed codes
// @Description Redeemed codes whose value does not match the winners ledger, newest redemption first.
// @Tags        Codes
// @Produce     json
//
// @Param       search  query  string  false "Substring filter (narrows winner variants, then values)"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.CodeListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/losers [get]
func (h *Handlers) ListLosers(c *gin.Context) {
	h.listView(c, h.classSvc.Losers)
}

// ListWinnerCodes godoc
// @ID          listWinnerCodes
// @Summary     List all winner codes
// @Description Every code (redeemed or not) whose value matches the winners ledger, ascending identifier.
// @Tags        Codes
// @Produce     json
//
// @Param       search  query  string  false "Substring filter (narrows winner variants, then values)"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.CodeListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/winner-codes [get]
func (h *Handlers) ListWinnerCodes(c *gin.Context) {
	h.listView(c, h.classSvc.WinnerCodes)
}

// ListNonWinnerCodes godoc
// @ID          listNonWinnerCodes
// @Summary     List all non-winner codes
// @Description Every code (redeemed or not) whose value does not match the winners ledger, ascending identifier.
// @Tags        Codes
// @Produce     json
//
// @Param       search  query  string  false "Substring filter (narrows winner variants, then values)"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.CodeListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/non-winner-codes [get]
func (h *Handlers) ListNonWinnerCodes(c *gin.Context) {
	h.listView(c, h.classSvc.NonWinnerCodes)
}
