package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/operation"
	"github.com/auditlens/auditlens/internal/session"
)

// submitFunc runs one diagnostic with the values typed into the page's
// inputs and returns the rendered result panel.
type submitFunc func(ctx context.Context, c *client.Client, values []string) (string, error)

// validateFunc checks the typed inputs before anything is submitted.
// Failures stay on the form; the operation slot never sees them.
type validateFunc func(values []string) error

type runDoneMsg struct {
	page page
}

// runPage is the shared model behind every upload-and-run diagnostic: a
// short input form, a spinner while the call is in flight, and a result
// panel or error banner. All remote state lives in the operation slot, so
// a stale completion from an abandoned run can never clobber a newer one.
type runPage struct {
	id     page
	title  string
	client *client.Client
	styles Styles

	inputs []textinput.Model
	labels []string
	focus  int

	spin     spinner.Model
	op       *operation.Operation[string]
	validate validateFunc
	submit   submitFunc
	formErr  string
}

func newRunPage(id page, title string, labels []string, c *client.Client, styles Styles, validate validateFunc, submit submitFunc) *runPage {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	return &runPage{
		id:       id,
		title:    title,
		client:   c,
		styles:   styles,
		inputs:   inputs,
		labels:   labels,
		spin:     spin,
		op:       operation.New[string](),
		validate: validate,
		submit:   submit,
	}
}

func (p *runPage) enter() tea.Cmd {
	return textinput.Blink
}

func (p *runPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			p.setFocus(p.focus + 1)
			return nil
		case "shift+tab", "up":
			p.setFocus(p.focus - 1)
			return nil
		case "enter":
			return p.start()
		case "ctrl+r":
			p.formErr = ""
			p.op.Reset()
			return nil
		}

	case runDoneMsg:
		if msg.page != p.id {
			return nil
		}
		return nil

	case spinner.TickMsg:
		if p.op.Status() == operation.StatusLoading {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return cmd
		}
		return nil
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return cmd
}

func (p *runPage) setFocus(index int) {
	if index < 0 || index >= len(p.inputs) {
		return
	}
	p.inputs[p.focus].Blur()
	p.focus = index
	p.inputs[p.focus].Focus()
}

// start kicks off a run. Input mistakes are caught here and rendered on
// the form; only validated submissions reach the operation slot. A run
// already in flight is superseded: the slot bumps its sequence and the
// older completion is discarded on arrival.
func (p *runPage) start() tea.Cmd {
	values := make([]string, len(p.inputs))
	for i := range p.inputs {
		values[i] = p.inputs[i].Value()
	}

	if err := p.validate(values); err != nil {
		p.formErr = err.Error()
		return nil
	}
	p.formErr = ""

	done := p.op.Run(context.Background(), func(ctx context.Context) (*string, error) {
		text, err := p.submit(ctx, p.client, values)
		if err != nil {
			return nil, err
		}
		return &text, nil
	})

	id := p.id
	await := func() tea.Msg {
		<-done
		return runDoneMsg{page: id}
	}
	return tea.Batch(p.spin.Tick, await)
}

func (p *runPage) view() string {
	out := p.styles.Title.Render(p.title) + "\n\n"
	for i, label := range p.labels {
		out += p.styles.Muted.Render(label) + "\n" + p.inputs[i].View() + "\n"
	}
	out += "\n"

	if p.formErr != "" {
		out += p.styles.Error.Render(p.formErr)
		return out
	}

	snap := p.op.Snapshot()
	switch snap.Status {
	case operation.StatusLoading:
		out += p.spin.View() + " running..."
	case operation.StatusError:
		out += p.styles.Error.Render(snap.Error)
	case operation.StatusSuccess:
		out += p.styles.Panel.Render(*snap.Result)
	default:
		out += p.styles.Muted.Render("enter: run • ctrl+r: clear")
	}
	return out
}

// requireDataFile checks an upload path before submission.
func requireDataFile(path string) error {
	if path == "" {
		return fmt.Errorf("a file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}
	return nil
}

func singleFileValidator(values []string) error {
	return requireDataFile(values[0])
}

func newFluxPage(c *client.Client, diag *session.DiagnosticContext, styles Styles) *runPage {
	return newRunPage(pageFlux, "Flux Analysis", []string{"Comparative trial balance (.csv/.xlsx)", "Threshold %"}, c, styles,
		func(values []string) error {
			if err := requireDataFile(values[0]); err != nil {
				return err
			}
			if values[1] != "" {
				if _, err := strconv.ParseFloat(values[1], 64); err != nil {
					return fmt.Errorf("threshold %q is not a number", values[1])
				}
			}
			return nil
		},
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			threshold := 10.0
			if values[1] != "" {
				threshold, _ = strconv.ParseFloat(values[1], 64)
			}
			file, err := os.Open(values[0])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[0], err)
			}
			defer file.Close()

			result, err := c.SubmitFlux(ctx, file.Name(), file, threshold)
			if err != nil {
				return "", err
			}
			diag.Set("flux", fmt.Sprintf("%d of %d account(s) flagged", result.FlaggedCount, len(result.Rows)), result)
			return renderFlux(result), nil
		})
}

func newTrialBalancePage(c *client.Client, diag *session.DiagnosticContext, styles Styles) *runPage {
	return newRunPage(pageTrialBalance, "Trial Balance Diagnostics", []string{"Trial balance (.csv/.xlsx)"}, c, styles, singleFileValidator,
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			file, err := os.Open(values[0])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[0], err)
			}
			defer file.Close()

			result, err := c.SubmitTrialBalance(ctx, file.Name(), file)
			if err != nil {
				return "", err
			}
			diag.Set("trial_balance", fmt.Sprintf("%d account(s), imbalance %.2f", result.MatchedCount, result.Imbalance), result)
			return renderTrialBalance(result), nil
		})
}

func newJETestingPage(c *client.Client, diag *session.DiagnosticContext, styles Styles) *runPage {
	return newRunPage(pageJETesting, "Journal Entry Testing", []string{"Journal entries (.csv/.xlsx)"}, c, styles, singleFileValidator,
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			file, err := os.Open(values[0])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[0], err)
			}
			defer file.Close()

			result, err := c.SubmitJETesting(ctx, file.Name(), file)
			if err != nil {
				return "", err
			}
			diag.Set("je_testing", fmt.Sprintf("%d of %d entries flagged", result.FlaggedCount, result.EntryCount), result)
			return renderJETesting(result), nil
		})
}

func newARAgingPage(c *client.Client, diag *session.DiagnosticContext, styles Styles) *runPage {
	return newRunPage(pageARAging, "AR Aging", []string{"Receivables detail (.csv/.xlsx)"}, c, styles, singleFileValidator,
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			file, err := os.Open(values[0])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[0], err)
			}
			defer file.Close()

			result, err := c.SubmitARAging(ctx, file.Name(), file)
			if err != nil {
				return "", err
			}
			diag.Set("ar_aging", fmt.Sprintf("%.1f%% overdue, DSO %.1f", result.OverduePercent, result.DaysSalesOutstanding), result)
			return renderARAging(result), nil
		})
}

func newBankRecPage(c *client.Client, diag *session.DiagnosticContext, styles Styles) *runPage {
	return newRunPage(pageBankRec, "Bank Reconciliation", []string{"Cash ledger (.csv/.xlsx)", "Bank statement (.csv/.xlsx)"}, c, styles,
		func(values []string) error {
			if err := requireDataFile(values[0]); err != nil {
				return err
			}
			return requireDataFile(values[1])
		},
		func(ctx context.Context, c *client.Client, values []string) (string, error) {
			ledger, err := os.Open(values[0])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[0], err)
			}
			defer ledger.Close()

			statement, err := os.Open(values[1])
			if err != nil {
				return "", fmt.Errorf("opening %s: %w", values[1], err)
			}
			defer statement.Close()

			result, err := c.SubmitBankReconciliation(ctx, ledger.Name(), ledger, statement.Name(), statement)
			if err != nil {
				return "", err
			}
			diag.Set("bank_reconciliation", fmt.Sprintf("net difference %.2f", result.NetDifference), result)
			return renderBankRec(result), nil
		})
}
