package followup

import (
	"fmt"
	"testing"
	"time"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureItems() []api.FollowUpItem {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []api.FollowUpItem{
		{ID: "f-1", Description: "Unbalanced journal batch", Severity: api.SeverityHigh, Disposition: api.DispositionOpen, ToolSource: "tb_diagnostics", AssignedTo: "rlee", CreatedAt: base},
		{ID: "f-2", Description: "Weekend posting cluster", Severity: api.SeverityHigh, Disposition: api.DispositionOpen, ToolSource: "je_testing", AssignedTo: "rlee", CreatedAt: base.Add(time.Hour)},
		{ID: "f-3", Description: "Suspense account balance", Severity: api.SeverityHigh, Disposition: api.DispositionOpen, ToolSource: "tb_diagnostics", AssignedTo: "mchan", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "f-4", Description: "Stale outstanding check", Severity: api.SeverityMedium, Disposition: api.DispositionResolved, ToolSource: "bank_reconciliation", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "f-5", Description: "DSO above benchmark", Notes: "recheck after Q2", Severity: api.SeverityLow, Disposition: api.DispositionOpen, ToolSource: "ar_aging", CreatedAt: base.Add(4 * time.Hour)},
	}
}

func TestFiltersAreANDComposed(t *testing.T) {
	view := NewView(fixtureItems())

	view.SetFilters(Filters{Severity: api.SeverityHigh, ToolSource: "tb_diagnostics"})

	visible := view.Visible()
	require.Len(t, visible, 2)
	for _, item := range visible {
		assert.Equal(t, api.SeverityHigh, item.Severity)
		assert.Equal(t, "tb_diagnostics", item.ToolSource)
	}
}

func TestSearchIsCaseInsensitiveOverDescriptionAndNotes(t *testing.T) {
	view := NewView(fixtureItems())

	view.SetFilters(Filters{Search: "SUSPENSE"})
	require.Len(t, view.Visible(), 1)
	assert.Equal(t, "f-3", view.Visible()[0].ID)

	// Notes are part of the searched fields.
	view.SetFilters(Filters{Search: "q2"})
	require.Len(t, view.Visible(), 1)
	assert.Equal(t, "f-5", view.Visible()[0].ID)
}

func TestSeveritySortUsesOrdinalRankAndToggles(t *testing.T) {
	base := time.Now()
	view := NewView([]api.FollowUpItem{
		{ID: "a", Severity: api.SeverityLow, CreatedAt: base},
		{ID: "b", Severity: api.SeverityHigh, CreatedAt: base},
		{ID: "c", Severity: api.SeverityMedium, CreatedAt: base},
	})

	// Key change resets to descending, so select twice for ascending.
	view.SortBy(SortSeverity)
	view.SortBy(SortSeverity)
	rows := view.Visible()
	require.Len(t, rows, 3)
	assert.Equal(t, api.SeverityHigh, rows[0].Severity)
	assert.Equal(t, api.SeverityMedium, rows[1].Severity)
	assert.Equal(t, api.SeverityLow, rows[2].Severity)

	// Same key again reverses.
	view.SortBy(SortSeverity)
	rows = view.Visible()
	assert.Equal(t, api.SeverityLow, rows[0].Severity)
	assert.Equal(t, api.SeverityMedium, rows[1].Severity)
	assert.Equal(t, api.SeverityHigh, rows[2].Severity)
}

func TestFilterChangeResetsPageSortToggleDoesNot(t *testing.T) {
	items := make([]api.FollowUpItem, 0, 3*PageSize)
	for i := 0; i < 3*PageSize; i++ {
		items = append(items, api.FollowUpItem{
			ID:          fmt.Sprintf("f-%03d", i),
			Description: "recurring variance",
			Severity:    api.SeverityMedium,
			Disposition: api.DispositionOpen,
			ToolSource:  "flux",
			CreatedAt:   time.Now(),
		})
	}
	view := NewView(items)

	view.SetPage(2)
	require.Equal(t, 2, view.Page())

	view.SortBy(SortSeverity)
	assert.Equal(t, 2, view.Page(), "sort toggles preserve the page")

	view.SetFilters(Filters{Disposition: api.DispositionOpen})
	assert.Equal(t, 0, view.Page(), "any filter change returns to the first page")
}

func TestPaginationWindowAndClamping(t *testing.T) {
	items := make([]api.FollowUpItem, 0, PageSize+10)
	for i := 0; i < PageSize+10; i++ {
		items = append(items, api.FollowUpItem{ID: fmt.Sprintf("f-%03d", i), CreatedAt: time.Now()})
	}
	view := NewView(items)

	assert.Equal(t, 2, view.PageCount())
	assert.Len(t, view.Visible(), PageSize)

	view.NextPage()
	assert.Len(t, view.Visible(), 10)

	view.NextPage()
	assert.Equal(t, 1, view.Page(), "page index clamps at the last page")

	view.PrevPage()
	view.PrevPage()
	assert.Equal(t, 0, view.Page())
}

func TestSourceSliceIsNotMutated(t *testing.T) {
	items := fixtureItems()
	ids := func(in []api.FollowUpItem) []string {
		out := make([]string, len(in))
		for i, item := range in {
			out[i] = item.ID
		}
		return out
	}
	before := ids(items)

	view := NewView(items)
	view.SortBy(SortSeverity)
	view.SortBy(SortDescription)
	_ = view.Visible()

	assert.Equal(t, before, ids(items))
}

func TestToolSourcesAreDistinctAndSorted(t *testing.T) {
	view := NewView(fixtureItems())
	assert.Equal(t, []string{"ar_aging", "bank_reconciliation", "je_testing", "tb_diagnostics"}, view.ToolSources())
}

func TestSetSortIsAbsoluteNotAToggle(t *testing.T) {
	view := NewView(fixtureItems())

	// The view already starts on created_at; asking for that exact state
	// again must not flip the direction the way SortBy would.
	view.SetSort(SortCreatedAt, false)
	visible := view.Visible()
	require.Len(t, visible, 5)
	assert.Equal(t, "f-5", visible[0].ID, "descending created_at puts the newest item first")

	view.SetSort(SortCreatedAt, false)
	assert.Equal(t, "f-5", view.Visible()[0].ID)

	view.SetSort(SortCreatedAt, true)
	assert.Equal(t, "f-1", view.Visible()[0].ID, "ascending created_at puts the oldest item first")

	key, ascending := view.SortState()
	assert.Equal(t, SortCreatedAt, key)
	assert.True(t, ascending)
}

func TestSetSortPreservesPage(t *testing.T) {
	items := make([]api.FollowUpItem, 0, 3*PageSize)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3*PageSize; i++ {
		items = append(items, api.FollowUpItem{
			ID:          fmt.Sprintf("f-%d", i),
			Description: fmt.Sprintf("item %d", i),
			Severity:    api.SeverityLow,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	view := NewView(items)
	view.SetPage(2)

	view.SetSort(SortSeverity, true)
	assert.Equal(t, 2, view.Page())
}
