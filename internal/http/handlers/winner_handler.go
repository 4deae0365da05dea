// Winners ledger HTTP handlers.
//
// This file exposes REST endpoints for the winners ledger:
//   - GET    /winners       (list, paginated)
//   - POST   /winners       (add a value)
//   - DELETE /winners/{id}  (remove a row)
//
// The ledger stores values verbatim; equivalence across code formats is the
// classification engine's concern, evaluated at read time on the code views.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/services"
	"github.com/brunovg/go-gift-backend/internal/utils"
)

// WinnerService defines winners ledger operations consumed by HTTP handlers.
type WinnerService interface {
	// ListPage returns a page of ledger rows and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Winner, int64, error)
	// Add appends a value to the ledger.
	Add(ctx context.Context, value string) (*domain.Winner, error)
	// Remove soft-deletes a ledger row.
	Remove(ctx context.Context, id uint) error
}

// CreateWinnerRequest is the JSON payload for adding a winner value.
type CreateWinnerRequest struct {
	// Value is the winning code in any format the operator has on hand.
	Value string `json:"value" binding:"required,min=1,max=64" example:"AB1234-CD56"`
}

// WinnerListResponse is the stable shape of the ledger listing.
type WinnerListResponse struct {
	Data  []domain.Winner `json:"data"`
	Total int64           `json:"total"`
}

// ListWinnerEntries godoc
// @ID          listWinnerEntries
// @Summary     List winners ledger rows
// @Description Returns a page of the winners ledger, newest first.
// @Tags        Winners
// @Produce     json
//
// @Param       page   query  int  false "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.WinnerListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /winners [get]
func (h *Handlers) ListWinnerEntries(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.winnerSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, WinnerListResponse{Data: items, Total: total})
}

// CreateWinnerEntry godoc
// @ID          createWinnerEntry
// @Summary     Add a winners ledger row
// @Description Records a code value as a winner; the value is stored exactly as entered.
// @Tags        Winners
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateWinnerRequest  true  "Winner value payload"
//
// @Success     201  {object} domain.Winner
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /winners [post]
func (h *Handlers) CreateWinnerEntry(c *gin.Context) {
	var req CreateWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value required (1–64 chars)")
		return
	}

	w, err := h.winnerSvc.Add(c.Request.Context(), req.Value)
	if err != nil {
		if errors.Is(err, services.ErrEmptyValue) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value required (1–64 chars)")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, w)
}

// DeleteWinnerEntry godoc
// @ID          deleteWinnerEntry
// @Summary     Remove a winners ledger row
// @Description Soft-deletes a ledger row by id; classification reflects the removal immediately.
// @Tags        Winners
// @Produce     json
//
// @Param       id  path  int  true "Ledger row ID"  example(42)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Winner not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /winners/{id} [delete]
func (h *Handlers) DeleteWinnerEntry(c *gin.Context) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return
	}

	if err := h.winnerSvc.Remove(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrWinnerNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "winner not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
