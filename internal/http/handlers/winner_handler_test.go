package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/services"
)

func newWinnerRouter(winner stubWinnerSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubClassSvc{}, stubCodeSvc{}, winner, stubGiftSvc{}, stubUserSvc{})
	r := gin.New()
	r.GET("/winners", h.ListWinnerEntries)
	r.POST("/winners", h.CreateWinnerEntry)
	r.DELETE("/winners/:id", h.DeleteWinnerEntry)
	return r
}

func TestListWinnerEntries_ReturnsPage(t *testing.T) {
	winner := stubWinnerSvc{list: func(ctx context.Context, page, pageSize int) ([]domain.Winner, int64, error) {
		if page != 3 || pageSize != 10 {
			t.Fatalf("pagination not passed: page=%d limit=%d", page, pageSize)
		}
		return []domain.Winner{{ID: 1, Value: "AB1234-CD56"}}, 31, nil
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/winners?page=3&limit=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp WinnerListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Total != 31 || len(resp.Data) != 1 || resp.Data[0].Value != "AB1234-CD56" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestCreateWinnerEntry_Success201(t *testing.T) {
	winner := stubWinnerSvc{add: func(ctx context.Context, value string) (*domain.Winner, error) {
		if value != "Ab1234-cD56" {
			t.Fatalf("value not passed verbatim: %q", value)
		}
		return &domain.Winner{ID: 7, Value: value}, nil
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/winners", bytes.NewBufferString(`{"value":"Ab1234-cD56"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", w.Code)
	}
	var got domain.Winner
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.ID != 7 || got.Value != "Ab1234-cD56" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateWinnerEntry_BindingError400(t *testing.T) {
	winner := stubWinnerSvc{add: func(context.Context, string) (*domain.Winner, error) {
		t.Fatalf("service should not be called on binding error")
		return nil, nil
	}}
	r := newWinnerRouter(winner)

	for _, body := range []string{`{}`, `{"value":""}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/winners", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d; want 400", body, w.Code)
		}
	}
}

func TestCreateWinnerEntry_WhitespaceValue400(t *testing.T) {
	winner := stubWinnerSvc{add: func(context.Context, string) (*domain.Winner, error) {
		return nil, services.ErrEmptyValue
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/winners", bytes.NewBufferString(`{"value":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestDeleteWinnerEntry_Success204(t *testing.T) {
	var gotID uint
	winner := stubWinnerSvc{remove: func(ctx context.Context, id uint) error {
		gotID = id
		return nil
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/winners/42", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", w.Code)
	}
	if gotID != 42 {
		t.Fatalf("id = %d; want 42", gotID)
	}
}

func TestDeleteWinnerEntry_BadID400(t *testing.T) {
	winner := stubWinnerSvc{remove: func(context.Context, uint) error {
		t.Fatalf("service should not be called for invalid id")
		return nil
	}}
	r := newWinnerRouter(winner)

	for _, id := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/winners/"+id, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status = %d; want 400", id, w.Code)
		}
	}
}

func TestDeleteWinnerEntry_NotFound404(t *testing.T) {
	winner := stubWinnerSvc{remove: func(context.Context, uint) error {
		return services.ErrWinnerNotFound
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/winners/9", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestDeleteWinnerEntry_Internal500(t *testing.T) {
	winner := stubWinnerSvc{remove: func(context.Context, uint) error {
		return errors.New("db down")
	}}
	r := newWinnerRouter(winner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/winners/9", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
}
