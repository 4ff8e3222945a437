package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/session"
)

type page int

const (
	pageMenu page = iota
	pageFlux
	pageTrialBalance
	pageJETesting
	pageARAging
	pageBankRec
	pageFollowUps
	pageBenchmarks
)

type menuEntry struct {
	page  page
	label string
}

var menuEntries = []menuEntry{
	{pageFlux, "Flux Analysis"},
	{pageTrialBalance, "Trial Balance Diagnostics"},
	{pageJETesting, "Journal Entry Testing"},
	{pageARAging, "AR Aging"},
	{pageBankRec, "Bank Reconciliation"},
	{pageFollowUps, "Follow-Up Register"},
	{pageBenchmarks, "Industry Benchmarks"},
}

// Model is the root dashboard model. It owns one sub-model per page and
// routes messages to whichever page is active.
type Model struct {
	client  *client.Client
	session *session.Session
	diag    *session.DiagnosticContext
	styles  Styles

	active page
	cursor int
	width  int
	height int

	runPages   map[page]*runPage
	followUps  *followUpsPage
	benchmarks *benchmarksPage
}

// NewModel builds the dashboard over an analytics client and the current
// session. Every run page shares one diagnostic context, so the menu can
// surface the last captured result regardless of which tool produced it.
func NewModel(c *client.Client, s *session.Session) Model {
	styles := DefaultStyles()
	diag := session.NewDiagnosticContext()
	return Model{
		client:  c,
		session: s,
		diag:    diag,
		styles:  styles,
		active:  pageMenu,
		runPages: map[page]*runPage{
			pageFlux:         newFluxPage(c, diag, styles),
			pageTrialBalance: newTrialBalancePage(c, diag, styles),
			pageJETesting:    newJETestingPage(c, diag, styles),
			pageARAging:      newARAgingPage(c, diag, styles),
			pageBankRec:      newBankRecPage(c, diag, styles),
		},
		followUps:  newFollowUpsPage(c, styles),
		benchmarks: newBenchmarksPage(c, styles),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.followUps.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.active == pageMenu {
				return m, tea.Quit
			}
			m.active = pageMenu
			return m, nil
		}
		if m.active == pageMenu {
			return m.updateMenu(msg)
		}
	}

	return m.updateActive(msg)
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case "enter":
		m.active = menuEntries[m.cursor].page
		switch m.active {
		case pageFollowUps:
			return m, m.followUps.enter()
		case pageBenchmarks:
			return m, m.benchmarks.enter()
		default:
			return m, m.runPages[m.active].enter()
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case pageFollowUps:
		cmd = m.followUps.update(msg)
	case pageBenchmarks:
		cmd = m.benchmarks.update(msg)
	case pageMenu:
	default:
		cmd = m.runPages[m.active].update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	header := m.styles.Header.Render("AuditLens") + " " + m.styles.Muted.Render(m.identityLine())

	var body string
	switch m.active {
	case pageMenu:
		body = m.menuView()
	case pageFollowUps:
		body = m.followUps.view()
	case pageBenchmarks:
		body = m.benchmarks.view()
	default:
		body = m.runPages[m.active].view()
	}

	footer := m.styles.Footer.Render("esc: back • ctrl+c: quit")
	return m.styles.App.Render(header + "\n\n" + body + "\n\n" + footer)
}

func (m Model) menuView() string {
	out := m.styles.Title.Render("Diagnostics") + "\n\n"
	for i, entry := range menuEntries {
		line := "  " + entry.label
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + entry.label)
		}
		out += line + "\n"
	}
	if last := m.diag.Last(); last != nil {
		out += "\n" + m.styles.Muted.Render(fmt.Sprintf("last result: %s, %s", last.Tool, last.Summary))
	}
	return out
}

func (m Model) identityLine() string {
	if m.session == nil || !m.session.Authenticated() {
		return "not signed in"
	}
	identity := m.session.Identity()
	if identity.Email != "" {
		return fmt.Sprintf("%s (%s)", identity.Email, identity.Organization)
	}
	return identity.Subject
}
