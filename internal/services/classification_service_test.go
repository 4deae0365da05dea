package services

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/brunovg/go-gift-backend/internal/domain"
	"github.com/brunovg/go-gift-backend/internal/repo"
)

// ----- Fake repos -----

// fakeCodeRepo evaluates CodeFilter against an in-memory slice with the
// same predicate semantics as the SQL composition in the repo package.
type fakeCodeRepo struct {
	codes []domain.Code

	listCalls  int
	countCalls int
	lastFilter repo.CodeFilter

	findValues []string
	findCode   *domain.Code
	findErr    error
}

func (r *fakeCodeRepo) match(c domain.Code, f repo.CodeFilter) bool {
	if f.ID != nil && c.ID != *f.ID {
		return false
	}
	if f.ValueContains != "" && !strings.Contains(c.Value, f.ValueContains) {
		return false
	}
	if f.ValueIn != nil {
		found := false
		for _, v := range f.ValueIn {
			if c.Value == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, v := range f.ValueNotIn {
		if c.Value == v {
			return false
		}
	}
	if f.Used != nil && c.Used != *f.Used {
		return false
	}
	if f.HasGift != nil && (c.GiftID != nil) != *f.HasGift {
		return false
	}
	return true
}

func (r *fakeCodeRepo) filtered(f repo.CodeFilter) []domain.Code {
	var out []domain.Code
	for _, c := range r.codes {
		if r.match(c, f) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Order == repo.OrderUsedAtDesc {
			var ti, tj time.Time
			if out[i].UsedAt != nil {
				ti = *out[i].UsedAt
			}
			if out[j].UsedAt != nil {
				tj = *out[j].UsedAt
			}
			return ti.After(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeCodeRepo) ListCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter, offset, limit int) ([]domain.Code, error) {
	r.listCalls++
	r.lastFilter = f
	out := r.filtered(f)
	if offset >= len(out) {
		return []domain.Code{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCodeRepo) CountCodes(ctx context.Context, db *gorm.DB, f repo.CodeFilter) (int64, error) {
	r.countCalls++
	r.lastFilter = f
	return int64(len(r.filtered(f))), nil
}

func (r *fakeCodeRepo) FindCodeByValues(ctx context.Context, db *gorm.DB, values []string) (*domain.Code, error) {
	r.findValues = values
	return r.findCode, r.findErr
}

type fakeWinnerValues struct {
	values []string
	err    error
	calls  int
}

func (r *fakeWinnerValues) ListWinnerValues(ctx context.Context, db *gorm.DB) ([]string, error) {
	r.calls++
	return r.values, r.err
}

// ----- Helpers -----

func usedCode(id uint, value string, usedAt time.Time) domain.Code {
	t := usedAt
	return domain.Code{ID: id, Value: value, Used: true, UsedAt: &t}
}

func freshCode(id uint, value string) domain.Code {
	return domain.Code{ID: id, Value: value}
}

func valuesOf(cs []domain.Code) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}
	return out
}

// ----- Tests -----

func TestWinners_MatchesAcrossFormattingDrift(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	cr := &fakeCodeRepo{codes: []domain.Code{
		usedCode(1, "ab1234cd56", t1), // lowercase, no hyphen — still the winner
		usedCode(2, "ZZ9999ZZ99", t2),
	}}
	wr := &fakeWinnerValues{values: []string{"AB1234-CD56"}}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.Winners(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("Winners: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Value != "ab1234cd56" {
		t.Fatalf("Winners = %v (total %d); want just ab1234cd56", valuesOf(items), total)
	}

	items, total, err = s.Losers(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("Losers: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Value != "ZZ9999ZZ99" {
		t.Fatalf("Losers = %v (total %d); want just ZZ9999ZZ99", valuesOf(items), total)
	}
}

func TestEmptyLedger_EverythingIsALoser(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	cr := &fakeCodeRepo{codes: []domain.Code{
		usedCode(1, "AAAA", t1),
		usedCode(2, "BBBB", t3),
		usedCode(3, "CCCC", t2),
	}}
	wr := &fakeWinnerValues{}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.Winners(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("Winners: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("empty ledger must yield no winners, got %v", valuesOf(items))
	}
	// Short-circuit: the membership query must not run at all.
	if cr.countCalls != 0 || cr.listCalls != 0 {
		t.Fatalf("winners view should not query with an empty variant set")
	}

	items, total, err = s.Losers(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("Losers: %v", err)
	}
	if total != 3 {
		t.Fatalf("losers total = %d; want the full collection", total)
	}
	want := []string{"BBBB", "CCCC", "AAAA"} // most recent redemption first
	got := valuesOf(items)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("losers order = %v; want %v", got, want)
		}
	}
}

func TestWinnerViews_NoDoubleCountForDuplicateLedgerRows(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	cr := &fakeCodeRepo{codes: []domain.Code{
		usedCode(1, "ab1234cd56", t1),
	}}
	// Same logical code pasted twice in different formats.
	wr := &fakeWinnerValues{values: []string{"AB1234-CD56", "ab1234cd56"}}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.Winners(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("Winners: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("duplicate ledger rows double-counted: total=%d items=%v", total, valuesOf(items))
	}
	// The IN list the repo received must hold distinct spellings only.
	seen := map[string]bool{}
	for _, v := range cr.lastFilter.ValueIn {
		if seen[v] {
			t.Fatalf("duplicate value %q in membership list %v", v, cr.lastFilter.ValueIn)
		}
		seen[v] = true
	}
}

func TestWinnerCodes_IncludesUnredeemedOrderedByID(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	cr := &fakeCodeRepo{codes: []domain.Code{
		usedCode(5, "AB12CD3456", t1),
		freshCode(2, "ab12cd3456"), // unredeemed spelling of the same winner
		freshCode(9, "UNRELATED0"),
	}}
	wr := &fakeWinnerValues{values: []string{"ab12-cd3456"}}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.WinnerCodes(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("WinnerCodes: %v", err)
	}
	if total != 2 {
		t.Fatalf("winner-codes total = %d; want 2", total)
	}
	if items[0].ID != 2 || items[1].ID != 5 {
		t.Fatalf("winner-codes order = %v; want ascending id", valuesOf(items))
	}

	items, total, err = s.NonWinnerCodes(context.Background(), "", 1, 20)
	if err != nil {
		t.Fatalf("NonWinnerCodes: %v", err)
	}
	if total != 1 || items[0].Value != "UNRELATED0" {
		t.Fatalf("non-winner-codes = %v (total %d); want just UNRELATED0", valuesOf(items), total)
	}
}

func TestSearch_NarrowsVariantsBeforeMembership(t *testing.T) {
	// The term "CD-34" appears only in the derived hyphenated variant
	// AB12CD-3456, never in the stored ledger value. Narrowing must still
	// keep the membership side alive through that variant.
	cr := &fakeCodeRepo{codes: []domain.Code{
		freshCode(1, "AB12CD-3456"),
		freshCode(2, "AB12CD3456"),
	}}
	wr := &fakeWinnerValues{values: []string{"ab12-cd3456"}}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.WinnerCodes(context.Background(), "CD-34", 1, 20)
	if err != nil {
		t.Fatalf("WinnerCodes: %v", err)
	}
	// Membership is narrowed to {AB12CD-3456} and the substring filter is
	// reapplied to the collection, so only the hyphenated row survives.
	if total != 1 || items[0].Value != "AB12CD-3456" {
		t.Fatalf("search-narrowed winner-codes = %v (total %d); want AB12CD-3456", valuesOf(items), total)
	}
	if len(cr.lastFilter.ValueIn) != 1 || cr.lastFilter.ValueIn[0] != "AB12CD-3456" {
		t.Fatalf("membership list = %v; want narrowed to the hyphenated variant", cr.lastFilter.ValueIn)
	}
	if cr.lastFilter.ValueContains != "CD-34" {
		t.Fatalf("collection substring filter not reapplied: %+v", cr.lastFilter)
	}
}

func TestSearch_NoSurvivingVariantEmptiesMembershipViews(t *testing.T) {
	cr := &fakeCodeRepo{codes: []domain.Code{
		usedCode(1, "AB12CD3456", time.Now()),
	}}
	wr := &fakeWinnerValues{values: []string{"ab12-cd3456"}}
	s := NewClassificationService(nil, cr, wr)

	items, total, err := s.Winners(context.Background(), "nope", 1, 20)
	if err != nil {
		t.Fatalf("Winners: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("no variant survives the term, view must be empty; got %v", valuesOf(items))
	}
	if cr.countCalls != 0 {
		t.Fatalf("membership view should short-circuit without querying")
	}
}

func TestClassify_PaginationClampAndOffset(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var cs []domain.Code
	for i := 1; i <= 5; i++ {
		cs = append(cs, usedCode(uint(i), "LOSE"+strings.Repeat("X", i), t1.Add(time.Duration(i)*time.Minute)))
	}
	cr := &fakeCodeRepo{codes: cs}
	wr := &fakeWinnerValues{}
	s := NewClassificationService(nil, cr, wr)

	// Invalid paging falls back to page 1 / size 20.
	items, total, err := s.Losers(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("Losers: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Fatalf("clamped paging returned %d/%d", len(items), total)
	}

	// Second page of size 2.
	items, total, err = s.Losers(context.Background(), "", 2, 2)
	if err != nil {
		t.Fatalf("Losers page 2: %v", err)
	}
	if total != 5 || len(items) != 2 {
		t.Fatalf("page 2 size 2 returned %d items (total %d)", len(items), total)
	}
}

func TestClassify_LedgerFetchErrorPropagates(t *testing.T) {
	cr := &fakeCodeRepo{}
	wr := &fakeWinnerValues{err: context.DeadlineExceeded}
	s := NewClassificationService(nil, cr, wr)

	if _, _, err := s.Winners(context.Background(), "", 1, 20); err == nil {
		t.Fatalf("expected ledger fetch error to propagate")
	}
	if cr.countCalls != 0 {
		t.Fatalf("must not query codes after ledger fetch failure")
	}
}
