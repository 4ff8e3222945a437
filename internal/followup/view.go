package followup

import (
	"sort"
	"strings"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/thoas/go-funk"
)

// PageSize is the fixed number of rows shown per page.
const PageSize = 25

type SortKey string

const (
	SortSeverity    SortKey = "severity"
	SortCreatedAt   SortKey = "created_at"
	SortDescription SortKey = "description"
	SortDisposition SortKey = "disposition"
	SortAssignee    SortKey = "assignee"
)

// Filters are AND-composed: an item stays visible only when it satisfies
// every active predicate. Search is a case-insensitive substring match over
// description and notes.
type Filters struct {
	Severity    api.Severity
	Disposition api.Disposition
	ToolSource  string
	AssignedTo  string
	Search      string
}

func (f Filters) active() bool {
	return f != Filters{}
}

func (f Filters) matches(item api.FollowUpItem) bool {
	if f.Severity != "" && item.Severity != f.Severity {
		return false
	}
	if f.Disposition != "" && item.Disposition != f.Disposition {
		return false
	}
	if f.ToolSource != "" && item.ToolSource != f.ToolSource {
		return false
	}
	if f.AssignedTo != "" && item.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Description), needle) &&
			!strings.Contains(strings.ToLower(item.Notes), needle) {
			return false
		}
	}
	return true
}

// View derives a filtered, sorted, paginated window over a caller-held
// slice of follow-up items. The source slice is never mutated; the derived
// rows are recomputed only when items, filters, sort or page change.
type View struct {
	items     []api.FollowUpItem
	filters   Filters
	sortKey   SortKey
	ascending bool
	page      int

	dirty  bool
	cached []api.FollowUpItem
}

func NewView(items []api.FollowUpItem) *View {
	return &View{
		items:   items,
		sortKey: SortCreatedAt,
		dirty:   true,
	}
}

// SetItems replaces the source slice, keeping filters and sort but
// returning to the first page.
func (v *View) SetItems(items []api.FollowUpItem) {
	v.items = items
	v.page = 0
	v.dirty = true
}

// SetFilters replaces all predicates at once and resets the page to 0.
func (v *View) SetFilters(f Filters) {
	v.filters = f
	v.page = 0
	v.dirty = true
}

func (v *View) Filters() Filters {
	return v.filters
}

// SortBy selects the sort key. Re-selecting the active key toggles the
// direction; switching keys resets to descending. The page is preserved.
func (v *View) SortBy(key SortKey) {
	if v.sortKey == key {
		v.ascending = !v.ascending
	} else {
		v.sortKey = key
		v.ascending = false
	}
	v.dirty = true
}

// SetSort places the view in an exact sort state regardless of what it
// was before. Callers translating flags or saved preferences use this;
// interactive toggling goes through SortBy. The page is preserved.
func (v *View) SetSort(key SortKey, ascending bool) {
	v.sortKey = key
	v.ascending = ascending
	v.dirty = true
}

func (v *View) SortState() (SortKey, bool) {
	return v.sortKey, v.ascending
}

func (v *View) Page() int {
	return v.page
}

// SetPage clamps to the valid page range of the current filter set.
func (v *View) SetPage(page int) {
	last := v.PageCount() - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	v.page = page
}

func (v *View) NextPage() { v.SetPage(v.page + 1) }
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

func (v *View) PageCount() int {
	n := len(v.matching())
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// TotalMatching is the number of rows surviving the filters, across all pages.
func (v *View) TotalMatching() int {
	return len(v.matching())
}

// Visible returns the rows of the current page, filter then sort then slice.
func (v *View) Visible() []api.FollowUpItem {
	rows := v.matching()
	start := v.page * PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ToolSources lists the distinct tool sources present in the source slice,
// for filter pickers.
func (v *View) ToolSources() []string {
	sources := make([]string, 0, len(v.items))
	for _, item := range v.items {
		sources = append(sources, item.ToolSource)
	}
	out := funk.UniqString(sources)
	sort.Strings(out)
	return out
}

func (v *View) matching() []api.FollowUpItem {
	if !v.dirty {
		return v.cached
	}

	rows := make([]api.FollowUpItem, 0, len(v.items))
	for _, item := range v.items {
		if !v.filters.active() || v.filters.matches(item) {
			rows = append(rows, item)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		less := v.less(rows[i], rows[j])
		if v.ascending {
			return less
		}
		return v.less(rows[j], rows[i])
	})

	v.cached = rows
	v.dirty = false
	return rows
}

func (v *View) less(a, b api.FollowUpItem) bool {
	switch v.sortKey {
	case SortSeverity:
		return a.Severity.Rank() < b.Severity.Rank()
	case SortCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortDescription:
		return strings.ToLower(a.Description) < strings.ToLower(b.Description)
	case SortDisposition:
		return a.Disposition < b.Disposition
	case SortAssignee:
		return strings.ToLower(a.AssignedTo) < strings.ToLower(b.AssignedTo)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
