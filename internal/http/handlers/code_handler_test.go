package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/services"
)

// ---- stubs to satisfy handlers.New() dependencies ----

type viewFn func(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error)

type stubClassSvc struct {
	winners        viewFn
	losers         viewFn
	winnerCodes    viewFn
	nonWinnerCodes viewFn
}

func callView(fn viewFn, ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	if fn != nil {
		return fn(ctx, search, page, pageSize)
	}
	return nil, 0, nil
}

func (s stubClassSvc) Winners(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return callView(s.winners, ctx, search, page, pageSize)
}
func (s stubClassSvc) Losers(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return callView(s.losers, ctx, search, page, pageSize)
}
func (s stubClassSvc) WinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return callView(s.winnerCodes, ctx, search, page, pageSize)
}
func (s stubClassSvc) NonWinnerCodes(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
	return callView(s.nonWinnerCodes, ctx, search, page, pageSize)
}

type stubCodeSvc struct {
	list func(ctx context.Context, opt services.CodeListOptions, page, pageSize int) ([]domain.Code, int64, error)
	find func(ctx context.Context, value string) (*domain.Code, error)
}

func (s stubCodeSvc) List(ctx context.Context, opt services.CodeListOptions, page, pageSize int) ([]domain.Code, int64, error) {
	if s.list != nil {
		return s.list(ctx, opt, page, pageSize)
	}
	return nil, 0, nil
}
func (s stubCodeSvc) Find(ctx context.Context, value string) (*domain.Code, error) {
	if s.find != nil {
		return s.find(ctx, value)
	}
	return nil, services.ErrCodeNotFound
}

type stubWinnerSvc struct {
	list   func(ctx context.Context, page, pageSize int) ([]domain.Winner, int64, error)
	add    func(ctx context.Context, value string) (*domain.Winner, error)
	remove func(ctx context.Context, id uint) error
}

func (s stubWinnerSvc) ListPage(ctx context.Context, page, pageSize int) ([]domain.Winner, int64, error) {
	if s.list != nil {
		return s.list(ctx, page, pageSize)
	}
	return nil, 0, nil
}
func (s stubWinnerSvc) Add(ctx context.Context, value string) (*domain.Winner, error) {
	if s.add != nil {
		return s.add(ctx, value)
	}
	return nil, nil
}
func (s stubWinnerSvc) Remove(ctx context.Context, id uint) error {
	if s.remove != nil {
		return s.remove(ctx, id)
	}
	return nil
}

type stubGiftSvc struct {
	create   func(ctx context.Context, name, description string, quantity int) (*domain.Gift, error)
	listPage func(ctx context.Context, search string, page, pageSize int) ([]domain.Gift, int64, error)
	get      func(ctx context.Context, id uint) (*domain.Gift, error)
	update   func(ctx context.Context, id uint, name, description string, quantity int) error
	remove   func(ctx context.Context, id uint) error
}

func (s stubGiftSvc) Create(ctx context.Context, name, description string, quantity int) (*domain.Gift, error) {
	if s.create != nil {
		return s.create(ctx, name, description, quantity)
	}
	return nil, nil
}
func (s stubGiftSvc) ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.Gift, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, search, page, pageSize)
	}
	return nil, 0, nil
}
func (s stubGiftSvc) Get(ctx context.Context, id uint) (*domain.Gift, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, services.ErrGiftNotFound
}
func (s stubGiftSvc) Update(ctx context.Context, id uint, name, description string, quantity int) error {
	if s.update != nil {
		return s.update(ctx, id, name, description, quantity)
	}
	return nil
}
func (s stubGiftSvc) Delete(ctx context.Context, id uint) error {
	if s.remove != nil {
		return s.remove(ctx, id)
	}
	return nil
}

type stubUserSvc struct {
	list func(ctx context.Context, search string, page, pageSize int) ([]domain.User, int64, error)
}

func (s stubUserSvc) ListPage(ctx context.Context, search string, page, pageSize int) ([]domain.User, int64, error) {
	if s.list != nil {
		return s.list(ctx, search, page, pageSize)
	}
	return nil, 0, nil
}

func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/codes", h.ListCodes)
	r.GET("/codes/lookup", h.LookupCode)
	r.GET("/codes/winners", h.ListWinners)
	r.GET("/codes/losers", h.ListLosers)
	r.GET("/codes/winner-codes", h.ListWinnerCodes)
	r.GET("/codes/non-winner-codes", h.ListNonWinnerCodes)
	return r
}

// ---- tests ----

func TestListCodes_TranslatesQueryParams(t *testing.T) {
	var gotOpt services.CodeListOptions
	var gotPage, gotLimit int
	code := stubCodeSvc{list: func(ctx context.Context, opt services.CodeListOptions, page, pageSize int) ([]domain.Code, int64, error) {
		gotOpt, gotPage, gotLimit = opt, page, pageSize
		return []domain.Code{{ID: 1, Value: "AB1234CD56"}}, 1, nil
	}}
	h := New(stubClassSvc{}, code, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/codes?search=AB&used=true&has_gift=false&page=2&limit=5", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotOpt.Search != "AB" || gotOpt.Used == nil || !*gotOpt.Used || gotOpt.HasGift == nil || *gotOpt.HasGift {
		t.Fatalf("options not translated: %+v", gotOpt)
	}
	if gotPage != 2 || gotLimit != 5 {
		t.Fatalf("pagination not translated: page=%d limit=%d", gotPage, gotLimit)
	}

	var resp CodeListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Value != "AB1234CD56" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestListCodes_ClampsPagination(t *testing.T) {
	var gotPage, gotLimit int
	code := stubCodeSvc{list: func(ctx context.Context, opt services.CodeListOptions, page, pageSize int) ([]domain.Code, int64, error) {
		gotPage, gotLimit = page, pageSize
		return nil, 0, nil
	}}
	h := New(stubClassSvc{}, code, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/codes?page=-3&limit=9999", nil)
	r.ServeHTTP(w, req)

	if gotPage != 1 || gotLimit != 100 {
		t.Fatalf("clamp failed: page=%d limit=%d", gotPage, gotLimit)
	}
}

func TestListCodes_ServiceError500(t *testing.T) {
	code := stubCodeSvc{list: func(context.Context, services.CodeListOptions, int, int) ([]domain.Code, int64, error) {
		return nil, 0, errors.New("boom")
	}}
	h := New(stubClassSvc{}, code, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/codes", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeListFailed {
		t.Fatalf("error code = %q", er.Code)
	}
}

func TestLookupCode_Success(t *testing.T) {
	now := time.Now().UTC()
	code := stubCodeSvc{find: func(ctx context.Context, value string) (*domain.Code, error) {
		if value != "ab12-cd3456" {
			t.Fatalf("value passed through = %q", value)
		}
		return &domain.Code{ID: 9, Value: "ab12cd3456", Used: true, UsedAt: &now}, nil
	}}
	h := New(stubClassSvc{}, code, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/codes/lookup?value=ab12-cd3456", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got domain.Code
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.ID != 9 || got.Value != "ab12cd3456" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestLookupCode_MissingValue400(t *testing.T) {
	h := New(stubClassSvc{}, stubCodeSvc{}, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	for _, target := range []string{"/codes/lookup", "/codes/lookup?value=%20%20"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d; want 400", target, w.Code)
		}
	}
}

func TestLookupCode_NotFound404(t *testing.T) {
	code := stubCodeSvc{find: func(context.Context, string) (*domain.Code, error) {
		return nil, services.ErrCodeNotFound
	}}
	h := New(stubClassSvc{}, code, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/codes/lookup?value=zz", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestClassificationViews_RouteToService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := map[string]bool{}
	mark := func(name string) viewFn {
		return func(ctx context.Context, search string, page, pageSize int) ([]domain.Code, int64, error) {
			called[name] = true
			if search != "CD-34" {
				t.Fatalf("%s: search = %q", name, search)
			}
			return []domain.Code{}, 0, nil
		}
	}
	class := stubClassSvc{
		winners:        mark("winners"),
		losers:         mark("losers"),
		winnerCodes:    mark("winner-codes"),
		nonWinnerCodes: mark("non-winner-codes"),
	}
	h := New(class, stubCodeSvc{}, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	for _, path := range []string{"/codes/winners", "/codes/losers", "/codes/winner-codes", "/codes/non-winner-codes"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path+"?search=CD-34", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
	}
	for _, name := range []string{"winners", "losers", "winner-codes", "non-winner-codes"} {
		if !called[name] {
			t.Fatalf("view %s never reached its service", name)
		}
	}
}

func TestClassificationView_ServiceError500(t *testing.T) {
	class := stubClassSvc{winners: func(context.Context, string, int, int) ([]domain.Code, int64, error) {
		return nil, 0, errors.New("ledger unavailable")
	}}
	h := New(class, stubCodeSvc{}, stubWinnerSvc{}, stubGiftSvc{}, stubUserSvc{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/codes/winners", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
}

func TestListUsers_ReturnsPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := stubUserSvc{list: func(ctx context.Context, search string, page, pageSize int) ([]domain.User, int64, error) {
		return []domain.User{{ID: 1, Name: "Alice", Email: "alice@example.com"}}, 1, nil
	}}
	h := New(stubClassSvc{}, stubCodeSvc{}, stubWinnerSvc{}, stubGiftSvc{}, user)

	r := gin.New()
	r.GET("/users", h.ListUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp UserListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Name != "Alice" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
