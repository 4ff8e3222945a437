package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/auditlens/auditlens/internal/session"
	"github.com/auditlens/auditlens/internal/tui"
)

type DashboardOptions struct {
	GlobalOptions
}

func NewCmdDashboard() *cobra.Command {
	o := &DashboardOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Open the interactive diagnostics dashboard.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *DashboardOptions) Run(ctx context.Context, args []string) error {
	s := session.New()
	s.SetToken(o.Token)

	program := tea.NewProgram(tui.NewModel(o.Client(), s), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard exited: %w", err)
	}
	return nil
}
