package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/followup"
	"github.com/auditlens/auditlens/internal/operation"
)

type followUpsLoadedMsg struct{}

var severityCycle = []api.Severity{"", api.SeverityHigh, api.SeverityMedium, api.SeverityLow}

var dispositionCycle = []api.Disposition{"", api.DispositionOpen, api.DispositionResolved, api.DispositionWaived}

var sortCycle = []followup.SortKey{
	followup.SortCreatedAt,
	followup.SortSeverity,
	followup.SortDescription,
	followup.SortDisposition,
	followup.SortAssignee,
}

// followUpsPage renders the follow-up register: a filterable, sortable,
// paged table over whatever the analytics service returned.
type followUpsPage struct {
	client *client.Client
	styles Styles

	op       *operation.Operation[[]api.FollowUpItem]
	register *followup.View

	tbl       table.Model
	search    textinput.Model
	searching bool

	severityIdx    int
	dispositionIdx int
	sortIdx        int
}

func newFollowUpsPage(c *client.Client, styles Styles) *followUpsPage {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search description and notes"
	search.CharLimit = 128

	tbl := table.New(
		table.WithColumns(followUpColumns(80)),
		table.WithHeight(followup.PageSize),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.Bold(true).BorderBottom(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder)
	tableStyles.Selected = tableStyles.Selected.Foreground(colorPrimary).Bold(true)
	tbl.SetStyles(tableStyles)

	return &followUpsPage{
		client:   c,
		styles:   styles,
		op:       operation.New[[]api.FollowUpItem](),
		register: followup.NewView(nil),
		tbl:      tbl,
		search:   search,
	}
}

func followUpColumns(width int) []table.Column {
	descWidth := width - 46
	if descWidth < 20 {
		descWidth = 20
	}
	return []table.Column{
		{Title: "SEV", Width: 6},
		{Title: "STATE", Width: 8},
		{Title: "TOOL", Width: 18},
		{Title: "ASSIGNEE", Width: 10},
		{Title: "DESCRIPTION", Width: descWidth},
	}
}

func (p *followUpsPage) setSize(width, height int) {
	p.tbl.SetColumns(followUpColumns(width - 6))
	if height > 12 {
		p.tbl.SetHeight(min(followup.PageSize, height-10))
	}
}

// enter refreshes the register every time the page is opened.
func (p *followUpsPage) enter() tea.Cmd {
	done := p.op.Run(context.Background(), func(ctx context.Context) (*[]api.FollowUpItem, error) {
		items, err := p.client.ListFollowUps(ctx)
		if err != nil {
			return nil, err
		}
		return &items, nil
	})
	return func() tea.Msg {
		<-done
		return followUpsLoadedMsg{}
	}
}

func (p *followUpsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case followUpsLoadedMsg:
		if snap := p.op.Snapshot(); snap.Status == operation.StatusSuccess {
			p.register.SetItems(*snap.Result)
			p.refresh()
		}
		return nil

	case tea.KeyMsg:
		if p.searching {
			return p.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			p.searching = true
			return p.search.Focus()
		case "s":
			p.severityIdx = (p.severityIdx + 1) % len(severityCycle)
			p.applyFilters()
			return nil
		case "d":
			p.dispositionIdx = (p.dispositionIdx + 1) % len(dispositionCycle)
			p.applyFilters()
			return nil
		case "o":
			p.sortIdx = (p.sortIdx + 1) % len(sortCycle)
			p.register.SortBy(sortCycle[p.sortIdx])
			p.refresh()
			return nil
		case "t":
			p.register.SortBy(sortCycle[p.sortIdx])
			p.refresh()
			return nil
		case "left", "h":
			p.register.PrevPage()
			p.refresh()
			return nil
		case "right", "l":
			p.register.NextPage()
			p.refresh()
			return nil
		case "R":
			return p.enter()
		}
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return cmd
}

func (p *followUpsPage) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		p.searching = false
		p.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	// The filter is live: every keystroke narrows the table and resets
	// the page, the way the register behaves everywhere else.
	p.applyFilters()
	return cmd
}

func (p *followUpsPage) applyFilters() {
	p.register.SetFilters(followup.Filters{
		Severity:    severityCycle[p.severityIdx],
		Disposition: dispositionCycle[p.dispositionIdx],
		Search:      p.search.Value(),
	})
	p.refresh()
}

func (p *followUpsPage) refresh() {
	visible := p.register.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, item := range visible {
		rows = append(rows, table.Row{
			string(item.Severity),
			string(item.Disposition),
			item.ToolSource,
			item.AssignedTo,
			item.Description,
		})
	}
	p.tbl.SetRows(rows)
	p.tbl.SetCursor(0)
}

func (p *followUpsPage) view() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Follow-Up Register") + "\n")
	sb.WriteString(p.search.View() + "\n\n")

	snap := p.op.Snapshot()
	switch snap.Status {
	case operation.StatusLoading:
		sb.WriteString(p.styles.Muted.Render("loading register..."))
		return sb.String()
	case operation.StatusError:
		sb.WriteString(p.styles.Error.Render(snap.Error) + "\n")
		sb.WriteString(p.styles.Muted.Render("R: retry"))
		return sb.String()
	}

	sb.WriteString(p.tbl.View() + "\n\n")
	sb.WriteString(p.footer())
	return sb.String()
}

func (p *followUpsPage) footer() string {
	sortKey, ascending := p.register.SortState()
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	status := fmt.Sprintf("page %d/%d • %d match • sort %s %s",
		p.register.Page()+1, p.register.PageCount(), p.register.TotalMatching(), sortKey, direction)

	filters := p.register.Filters()
	if filters.Severity != "" {
		status += " • severity=" + string(filters.Severity)
	}
	if filters.Disposition != "" {
		status += " • disposition=" + string(filters.Disposition)
	}

	help := "/: search • s/d: filters • o: sort key • t: direction • ←/→: page • R: reload"
	return p.styles.Subtitle.Render(status) + "\n" + p.styles.Footer.Render(help)
}
