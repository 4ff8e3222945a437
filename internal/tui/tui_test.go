package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/operation"
	"github.com/auditlens/auditlens/internal/session"
)

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func noValidation(values []string) error { return nil }

func registerFixture() []api.FollowUpItem {
	return []api.FollowUpItem{
		{ID: "f-1", Description: "Unbalanced journal batch", Severity: api.SeverityHigh, Disposition: api.DispositionOpen, ToolSource: "tb_diagnostics"},
		{ID: "f-2", Description: "Weekend postings by admin", Severity: api.SeverityMedium, Disposition: api.DispositionOpen, ToolSource: "je_testing"},
		{ID: "f-3", Description: "Stale outstanding check", Severity: api.SeverityLow, Disposition: api.DispositionResolved, ToolSource: "bank_reconciliation"},
	}
}

func TestFollowUpsPageSeverityCycleFilters(t *testing.T) {
	p := newFollowUpsPage(client.New("http://localhost"), DefaultStyles())
	p.register.SetItems(registerFixture())
	p.refresh()
	require.Equal(t, 3, p.register.TotalMatching())

	p.update(keyMsg("s"))
	assert.Equal(t, api.SeverityHigh, p.register.Filters().Severity)
	assert.Equal(t, 1, p.register.TotalMatching())

	p.update(keyMsg("s"))
	p.update(keyMsg("s"))
	p.update(keyMsg("s"))
	assert.Equal(t, api.Severity(""), p.register.Filters().Severity)
	assert.Equal(t, 3, p.register.TotalMatching())
}

func TestFollowUpsPageSearchIsLive(t *testing.T) {
	p := newFollowUpsPage(client.New("http://localhost"), DefaultStyles())
	p.register.SetItems(registerFixture())
	p.refresh()

	p.update(keyMsg("/"))
	require.True(t, p.searching)
	p.update(keyMsg("w"))

	assert.Equal(t, "w", p.register.Filters().Search)
	assert.Equal(t, 1, p.register.TotalMatching())
	assert.Equal(t, 0, p.register.Page())

	p.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.searching)
}

func TestFollowUpsPageSortToggle(t *testing.T) {
	p := newFollowUpsPage(client.New("http://localhost"), DefaultStyles())
	p.register.SetItems(registerFixture())
	p.refresh()

	p.update(keyMsg("o"))
	key, ascending := p.register.SortState()
	assert.Equal(t, "severity", string(key))
	assert.False(t, ascending)

	p.update(keyMsg("t"))
	_, ascending = p.register.SortState()
	assert.True(t, ascending)
}

func TestRunPageRendersErrorBanner(t *testing.T) {
	p := newRunPage(pageFlux, "Flux Analysis", []string{"File"}, client.New("http://localhost"), DefaultStyles(), noValidation,
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			return "", assert.AnError
		})

	cmd := p.start()
	require.NotNil(t, cmd)
	require.Eventually(t, func() bool {
		return p.op.Status() == operation.StatusError
	}, time.Second, time.Millisecond)

	assert.Contains(t, p.view(), assert.AnError.Error())
}

func TestRunPageSupersededRunIsDiscarded(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{}, 2)
	releases := []chan string{make(chan string), make(chan string)}
	p := newRunPage(pageFlux, "Flux Analysis", []string{"File"}, client.New("http://localhost"), DefaultStyles(), noValidation,
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			index := calls.Add(1) - 1
			started <- struct{}{}
			return <-releases[index], nil
		})

	p.start()
	<-started
	p.start()
	<-started

	releases[1] <- "second"
	require.Eventually(t, func() bool {
		return p.op.Status() == operation.StatusSuccess
	}, time.Second, time.Millisecond)

	// The abandoned first run resolves late; its completion must be a no-op.
	releases[0] <- "first"
	time.Sleep(20 * time.Millisecond)

	snap := p.op.Snapshot()
	require.Equal(t, operation.StatusSuccess, snap.Status)
	assert.Equal(t, "second", *snap.Result)
}

func TestParseMetrics(t *testing.T) {
	metrics, err := parseMetrics("current_ratio=1.8, gross_margin=0.42")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"current_ratio": 1.8, "gross_margin": 0.42}, metrics)

	_, err = parseMetrics("current_ratio")
	assert.Error(t, err)

	_, err = parseMetrics("current_ratio=abc")
	assert.Error(t, err)
}

func TestBenchmarkRenderingIncludesEveryMetric(t *testing.T) {
	text := renderBenchmarks(&api.BenchmarkComparison{
		IndustryCode: "4411",
		IndustryName: "Automobile Dealers",
		FiscalYear:   2026,
		Metrics: []api.BenchmarkMetric{
			{Name: "current_ratio", CompanyValue: 1.8, IndustryValue: 1.53, Percentile: 62, Assessment: "above industry"},
			{Name: "gross_margin", CompanyValue: 0.42, IndustryValue: 0.36, Percentile: 71, Assessment: "above industry"},
		},
	})
	assert.True(t, strings.Contains(text, "Automobile Dealers"))
	assert.True(t, strings.Contains(text, "current_ratio"))
	assert.True(t, strings.Contains(text, "gross_margin"))
}

func TestRunPageValidationStaysOffTheOperationSlot(t *testing.T) {
	submitted := false
	p := newFluxPage(client.New("http://localhost"), session.NewDiagnosticContext(), DefaultStyles())
	p.submit = func(ctx context.Context, c *client.Client, values []string) (string, error) {
		submitted = true
		return "", nil
	}

	// Empty file input: the mistake is rendered on the form and the slot
	// never leaves idle, so no spinner flashes for an input error.
	cmd := p.start()
	assert.Nil(t, cmd)
	assert.False(t, submitted)
	assert.Equal(t, operation.StatusIdle, p.op.Status())
	assert.Contains(t, p.view(), "a file is required")
}

func TestFluxPageRejectsNonNumericThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tb.csv")
	require.NoError(t, os.WriteFile(path, []byte("account,debit,credit\n"), 0o600))

	p := newFluxPage(client.New("http://localhost"), session.NewDiagnosticContext(), DefaultStyles())
	p.inputs[0].SetValue(path)
	p.inputs[1].SetValue("abc")

	cmd := p.start()
	assert.Nil(t, cmd)
	assert.Equal(t, operation.StatusIdle, p.op.Status())
	assert.Contains(t, p.formErr, "not a number")
}

func TestBenchmarksFormValidationStaysOffTheComparisonSlot(t *testing.T) {
	p := newBenchmarksPage(client.New("http://localhost"), DefaultStyles())

	cmd := p.compare()
	assert.Nil(t, cmd)
	assert.Equal(t, operation.StatusIdle, p.comparison.Status())
	assert.Contains(t, p.view(), "an industry code is required")

	p.codeInput.SetValue("4411")
	p.metricsInput.SetValue("current_ratio=oops")
	cmd = p.compare()
	assert.Nil(t, cmd)
	assert.Equal(t, operation.StatusIdle, p.comparison.Status())
	assert.Contains(t, p.formErr, "not a number")
}
