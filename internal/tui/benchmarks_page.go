package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/operation"
)

type industriesLoadedMsg struct{}

type comparisonDoneMsg struct{}

// benchmarksPage pairs the public industry catalog with a small compare
// form. The catalog and the comparison are independent slots; refreshing
// one never disturbs the other.
type benchmarksPage struct {
	client *client.Client
	styles Styles

	industries *operation.Operation[[]api.Industry]
	comparison *operation.Operation[string]

	codeInput    textinput.Model
	metricsInput textinput.Model
	focus        int
	formErr      string
}

func newBenchmarksPage(c *client.Client, styles Styles) *benchmarksPage {
	code := textinput.New()
	code.Prompt = "> "
	code.Placeholder = "industry code, e.g. 4411"
	code.CharLimit = 6
	code.Focus()

	metrics := textinput.New()
	metrics.Prompt = "> "
	metrics.Placeholder = "current_ratio=1.8, gross_margin=0.42"
	metrics.CharLimit = 256

	return &benchmarksPage{
		client:       c,
		styles:       styles,
		industries:   operation.New[[]api.Industry](),
		comparison:   operation.New[string](),
		codeInput:    code,
		metricsInput: metrics,
	}
}

func (p *benchmarksPage) enter() tea.Cmd {
	done := p.industries.Run(context.Background(), func(ctx context.Context) (*[]api.Industry, error) {
		industries, err := p.client.ListIndustries(ctx)
		if err != nil {
			return nil, err
		}
		return &industries, nil
	})
	return tea.Batch(textinput.Blink, func() tea.Msg {
		<-done
		return industriesLoadedMsg{}
	})
}

func (p *benchmarksPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case industriesLoadedMsg, comparisonDoneMsg:
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			p.focus = 1 - p.focus
			if p.focus == 0 {
				p.metricsInput.Blur()
				return p.codeInput.Focus()
			}
			p.codeInput.Blur()
			return p.metricsInput.Focus()
		case "enter":
			return p.compare()
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.codeInput, cmd = p.codeInput.Update(msg)
	} else {
		p.metricsInput, cmd = p.metricsInput.Update(msg)
	}
	return cmd
}

// compare submits the form. Input mistakes never reach the comparison
// slot; they stay on the form as local errors.
func (p *benchmarksPage) compare() tea.Cmd {
	code := strings.TrimSpace(p.codeInput.Value())
	metrics, err := parseMetrics(p.metricsInput.Value())
	switch {
	case err != nil:
		p.formErr = err.Error()
		return nil
	case code == "":
		p.formErr = "an industry code is required"
		return nil
	case len(metrics) == 0:
		p.formErr = "at least one metric is required"
		return nil
	}
	p.formErr = ""

	done := p.comparison.Run(context.Background(), func(ctx context.Context) (*string, error) {
		result, err := p.client.CompareBenchmarks(ctx, client.BenchmarkRequest{
			IndustryCode: code,
			FiscalYear:   time.Now().Year(),
			Metrics:      metrics,
		})
		if err != nil {
			return nil, err
		}
		text := renderBenchmarks(result)
		return &text, nil
	})
	return func() tea.Msg {
		<-done
		return comparisonDoneMsg{}
	}
}

// parseMetrics reads "name=value" pairs separated by commas.
func parseMetrics(raw string) (map[string]float64, error) {
	metrics := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("metric %q is not name=value", pair)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %q is not a number", name, value)
		}
		metrics[strings.TrimSpace(name)] = parsed
	}
	return metrics, nil
}

func renderBenchmarks(result *api.BenchmarkComparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s), FY%d\n\n", result.IndustryName, result.IndustryCode, result.FiscalYear)
	for _, metric := range result.Metrics {
		fmt.Fprintf(&sb, "%-24s company %8.2f  industry %8.2f  p%.0f  %s\n",
			metric.Name, metric.CompanyValue, metric.IndustryValue, metric.Percentile, metric.Assessment)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (p *benchmarksPage) view() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Industry Benchmarks") + "\n\n")

	catalog := p.industries.Snapshot()
	switch catalog.Status {
	case operation.StatusLoading:
		sb.WriteString(p.styles.Muted.Render("loading industries...") + "\n\n")
	case operation.StatusError:
		sb.WriteString(p.styles.Error.Render(catalog.Error) + "\n\n")
	case operation.StatusSuccess:
		for _, industry := range *catalog.Result {
			sb.WriteString(fmt.Sprintf("  %s  %s\n", p.styles.Subtitle.Render(industry.Code), industry.Name))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(p.styles.Muted.Render("Industry") + "\n" + p.codeInput.View() + "\n")
	sb.WriteString(p.styles.Muted.Render("Company metrics") + "\n" + p.metricsInput.View() + "\n\n")

	if p.formErr != "" {
		sb.WriteString(p.styles.Error.Render(p.formErr))
		return sb.String()
	}

	comparison := p.comparison.Snapshot()
	switch comparison.Status {
	case operation.StatusLoading:
		sb.WriteString(p.styles.Muted.Render("comparing..."))
	case operation.StatusError:
		sb.WriteString(p.styles.Error.Render(comparison.Error))
	case operation.StatusSuccess:
		sb.WriteString(p.styles.Panel.Render(*comparison.Result))
	default:
		sb.WriteString(p.styles.Muted.Render("enter: compare"))
	}
	return sb.String()
}
