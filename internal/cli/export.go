package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

var legalExportKinds = []string{string(client.ExportPDF), string(client.ExportXLSX), string(client.ExportCSV)}

type ExportOptions struct {
	GlobalOptions

	Kind        string
	Dir         string
	PayloadPath string
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Kind:          string(client.ExportPDF),
		Dir:           ".",
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:          "export TOOL",
		Short:        "Download a rendered report for a diagnostic tool.",
		Example:      "export flux --kind pdf --dir ./reports",
		Args:         cobra.ExactArgs(1),
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

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Kind, "kind", o.Kind, fmt.Sprintf("Export kind. One of: (%v)", legalExportKinds))
	fs.StringVar(&o.Dir, "dir", o.Dir, "Directory the export is saved into")
	fs.StringVar(&o.PayloadPath, "payload-file", o.PayloadPath, "Optional JSON file with the result payload to render")
}

func (o *ExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains(legalExportKinds, o.Kind) {
		return fmt.Errorf("kind must be one of %v", legalExportKinds)
	}
	if o.PayloadPath != "" {
		if err := requireFile(o.PayloadPath, "payload-file"); err != nil {
			return err
		}
	}
	return nil
}

func (o *ExportOptions) Run(ctx context.Context, args []string) error {
	request := client.ExportRequest{Tool: args[0]}

	if o.PayloadPath != "" {
		raw, err := os.ReadFile(o.PayloadPath)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}
		var payload any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("payload is not valid JSON: %w", err)
		}
		request.Payload = payload
	}

	blob, filename, err := o.Client().ExportReport(ctx, client.ExportKind(o.Kind), request)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := export.SaveBlob(o.Dir, filename, blob)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s (%d bytes)\n", path, len(blob))
	return nil
}
