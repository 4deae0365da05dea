// User summary HTTP handlers.
//
// Read-only listing of campaign participants, used by the admin UI to
// resolve who redeemed a code. Account management lives elsewhere.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunovg/go-gift-backend/internal/domain"
)

// UserService defines user summary operations consumed by HTTP handlers.
type UserService interface {
	// ListPage returns a page of users and the total count.
	ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.User, int64, error)
}

// UserListResponse is the stable shape of the user listing.
type UserListResponse struct {
	Data  []domain.User `json:"data"`
	Total int64         `json:"total"`
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Description Returns a page of campaign participants with an optional name/email search.
// @Tags        Users
// @Produce     json
//
// @Param       search  query  string  false "Name or email substring filter"
// @Param       page    query  int     false "Page number"     minimum(1) default(1)
// @Param       limit   query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.UserListResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.userSvc.ListPage(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, UserListResponse{Data: items, Total: total})
}
