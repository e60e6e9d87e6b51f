package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/utils"
)

// PageFetcher retrieves one server page of students.
type PageFetcher func(ctx context.Context, page, limit int) ([]student.Student, int, error)

// Filters are the ephemeral per-view criteria. A record passes when every
// non-empty criterion matches: names by case-insensitive substring, grade
// by exact equality.
type Filters struct {
	Firstname string
	Lastname  string
	Grade     string
}

func (f Filters) matches(s student.Student) bool {
	if f.Firstname != "" && !strings.Contains(strings.ToLower(s.Firstname), strings.ToLower(f.Firstname)) {
		return false
	}
	if f.Lastname != "" && !strings.Contains(strings.ToLower(s.Lastname), strings.ToLower(f.Lastname)) {
		return false
	}
	if f.Grade != "" && s.Grade != f.Grade {
		return false
	}
	return true
}

// Table is the paginated table view. It holds the last fetched server
// page, a derived filtered subset, and pagination recomputed over that
// subset. Filtering only ever sees the loaded page; it never reaches back
// to the server.
type Table struct {
	mu sync.Mutex

	fetch    PageFetcher
	pageSize int
	debounce time.Duration
	log      *slog.Logger

	records     []student.Student
	filtered    []student.Student
	filters     Filters
	currentPage int
	totalPages  int
	loading     bool
	lastErr     error

	// page-change requests are not guaranteed to resolve in issuance
	// order; each fetch is tagged and a superseded response is discarded
	// instead of applied
	issued  uint64
	applied uint64

	timer *time.Timer
}

type TableOption func(*Table)

func WithPageSize(n int) TableOption {
	return func(t *Table) {
		if n > 0 {
			t.pageSize = n
		}
	}
}

func WithDebounce(d time.Duration) TableOption {
	return func(t *Table) {
		t.debounce = d
	}
}

func WithLogger(log *slog.Logger) TableOption {
	return func(t *Table) {
		t.log = log
	}
}

func NewTable(fetch PageFetcher, opts ...TableOption) *Table {
	t := &Table{
		fetch:       fetch,
		pageSize:    10,
		debounce:    300 * time.Millisecond,
		currentPage: 1,
		totalPages:  1,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Load fetches one server page and applies it, unless a later fetch
// already landed.
func (t *Table) Load(ctx context.Context, page int) error {
	t.mu.Lock()
	t.issued++
	seq := t.issued
	t.loading = true
	t.mu.Unlock()

	records, totalPages, err := t.fetch(ctx, page, t.pageSize)

	t.mu.Lock()
	defer t.mu.Unlock()

	if seq <= t.applied {
		// a newer response has already been applied; drop this one
		return nil
	}

	t.applied = seq
	t.loading = false

	if err != nil {
		t.lastErr = err
		return err
	}

	t.lastErr = nil
	t.records = records
	t.currentPage = page
	t.totalPages = totalPages
	t.applyFiltersLocked(false)

	return nil
}

// SetFilters records new criteria and schedules one recomputation after
// the input has been quiet for the debounce window.
func (t *Table) SetFilters(f Filters) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filters = f

	if t.timer != nil {
		t.timer.Stop()
	}

	t.timer = time.AfterFunc(t.debounce, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.applyFiltersLocked(true)
	})
}

// applyFiltersLocked recomputes the filtered subset. When triggered by a
// criteria change the page count is re-derived from the subset and the
// view snaps back to page 1.
func (t *Table) applyFiltersLocked(resetPage bool) {
	filtered := make([]student.Student, 0, len(t.records))

	for _, s := range t.records {
		if t.filters.matches(s) {
			filtered = append(filtered, s)
		}
	}

	t.filtered = filtered

	if resetPage {
		t.totalPages = utils.TotalPages(len(filtered), t.pageSize)
		t.currentPage = 1
	}
}

// PageChange moves to page n. Out-of-range targets are a no-op, the
// control simply does nothing.
func (t *Table) PageChange(ctx context.Context, n int) bool {
	t.mu.Lock()
	total := t.totalPages
	t.mu.Unlock()

	if n < 1 || n > total {
		return false
	}

	_ = t.Load(ctx, n)

	return true
}

// VisibleRows slices the filtered subset for the current page.
func (t *Table) VisibleRows() []student.Student {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := (t.currentPage - 1) * t.pageSize

	if start >= len(t.filtered) {
		return []student.Student{}
	}

	end := start + t.pageSize

	if end > len(t.filtered) {
		end = len(t.filtered)
	}

	return t.filtered[start:end]
}

func (t *Table) CurrentPage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPage
}

func (t *Table) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalPages
}

func (t *Table) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Table) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Grades lists the distinct grades present on the loaded page, in order
// of appearance, for the grade filter dropdown.
func (t *Table) Grades() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]struct{}, len(t.records))
	out := make([]string, 0, len(t.records))

	for _, s := range t.records {
		if _, ok := seen[s.Grade]; ok {
			continue
		}
		seen[s.Grade] = struct{}{}
		out = append(out, s.Grade)
	}

	return out
}

// Edit and Delete are the row affordances. They only log; no mutation is
// wired up yet.

func (t *Table) Edit(id string) {
	if t.log != nil {
		t.log.Info("edit student", "id", id)
	}
}

func (t *Table) Delete(id string) {
	if t.log != nil {
		t.log.Info("delete student", "id", id)
	}
}
