// Gift catalog HTTP handlers.
//
// This file exposes REST endpoints for the gift catalog:
//   - GET    /gifts       (list, paginated, name search)
//   - POST   /gifts       (create)
//   - GET    /gifts/{id}  (fetch)
//   - PUT    /gifts/{id}  (update)
//   - DELETE /gifts/{id}  (remove)
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

// GiftService defines gift catalog operations consumed by HTTP handlers.
type GiftService interface {
	// Create adds a catalog item.
	Create(ctx context.Context, name, description string, quantity int) (*domain.Gift, error)
	// ListPage returns a page of gifts and the total count.
	ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.Gift, int64, error)
	// Get fetches a gift by id.
	Get(ctx context.Context, id uint) (*domain.Gift, error)
	// Update edits a gift in place.
	Update(ctx context.Context, id uint, name, description string, quantity int) error
	// Delete removes a gift.
	Delete(ctx context.Context, id uint) error
}

// GiftRequest is the JSON payload for creating or updating a gift.
type GiftRequest struct {
	// Name is the display name of the gift (1–255 chars).
	Name string `json:"name" binding:"required,min=1,max=255" example:"Ceramic mug"`
	// Description is shown in the admin UI.
	Description string `json:"description" example:"Campaign-branded mug"`
	// Quantity is the remaining stock; negative values are coerced to zero.
	Quantity int `json:"quantity" example:"100"`
}

// GiftListResponse is the stable shape of the catalog listing.
type GiftListResponse struct {
	Data  []domain.Gift `json:"data"`
	Total int64         `json:"total"`
}

// giftID parses the id path parameter, failing the request when invalid.
func giftID(c *gin.Context) (uint, bool) {
	id := utils.AtoiDefault(c.Param("id"), 0)
	if id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// ListGifts godoc
// @ID          listGifts
// @Summary     List gifts
// @Description Returns a page of the gift catalog with an optional name search.
// @Tags        Gifts
// @Produce     json
//
// @Param       search  query  string  false "Name substring filter"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.GiftListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gifts [get]
func (h *Handlers) ListGifts(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.giftSvc.ListPage(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, GiftListResponse{Data: items, Total: total})
}

// CreateGift godoc
// @ID          createGift
// @Summary     Create a gift
// @Description Adds an item to the gift catalog.
// @Tags        Gifts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.GiftRequest  true  "Gift payload"
//
// @Success     201  {object} domain.Gift
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gifts [post]
func (h *Handlers) CreateGift(c *gin.Context) {
	var req GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
		return
	}

	g, err := h.giftSvc.Create(c.Request.Context(), req.Name, req.Description, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, g)
}

// GetGift godoc
// @ID          getGift
// @Summary     Fetch a gift
// @Description Returns a single catalog item by id.
// @Tags        Gifts
// @Produce     json
//
// @Param       id  path  int  true "Gift ID"  example(7)
//
// @Success     200  {object} domain.Gift
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Gift not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gifts/{id} [get]
func (h *Handlers) GetGift(c *gin.Context) {
	id, okID := giftID(c)
	if !okID {
		return
	}

	g, err := h.giftSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrGiftNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, g)
}

// UpdateGift godoc
// @ID          updateGift
// @Summary     Update a gift
// @Description Edits name, description, and quantity of a catalog item.
// @Tags        Gifts
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                   true  "Gift ID"  example(7)
// @Param       body  body  handlers.GiftRequest  true  "Gift payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Gift not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gifts/{id} [put]
func (h *Handlers) UpdateGift(c *gin.Context) {
	id, okID := giftID(c)
	if !okID {
		return
	}

	var req GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
		return
	}

	if err := h.giftSvc.Update(c.Request.Context(), id, req.Name, req.Description, req.Quantity); err != nil {
		switch {
		case errors.Is(err, services.ErrGiftNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
		case errors.Is(err, services.ErrEmptyName):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteGift godoc
// @ID          deleteGift
// @Summary     Delete a gift
// @Description Soft-deletes a catalog item; linked codes keep their history.
// @Tags        Gifts
// @Produce     json
//
// @Param       id  path  int  true "Gift ID"  example(7)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Gift not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gifts/{id} [delete]
func (h *Handlers) DeleteGift(c *gin.Context) {
	id, okID := giftID(c)
	if !okID {
		return
	}

	if err := h.giftSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrGiftNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
