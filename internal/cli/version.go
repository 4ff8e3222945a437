package cli

import (
	"context"
	"fmt"

	"github.com/auditlens/auditlens/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct{}

func NewCmdVersion() *cobra.Command {
	o := &VersionOptions{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print AuditLens version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	fmt.Printf("AuditLens Version: %s\n", versionInfo.String())
	return nil
}
