package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/internal/cli"
	"github.com/auditlens/auditlens/internal/config"
	"github.com/auditlens/auditlens/pkg/log"
)

func main() {
	level := "info"
	if cfg, err := config.New(); err == nil {
		level = cfg.Service.LogLevel
	}
	logger := log.InitLog(log.ParseLevel(level))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	command := NewAuditLensCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewAuditLensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auditlens [flags] [options]",
		Short: "auditlens runs audit diagnostics against the analytics service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdFlux())
	cmd.AddCommand(cli.NewCmdTrialBalance())
	cmd.AddCommand(cli.NewCmdJETesting())
	cmd.AddCommand(cli.NewCmdARAging())
	cmd.AddCommand(cli.NewCmdBankReconciliation())
	cmd.AddCommand(cli.NewCmdBenchmarks())
	cmd.AddCommand(cli.NewCmdFollowUps())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdDashboard())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
