package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ARAgingOptions struct {
	GlobalOptions

	FilePath string
	Output   string
}

func DefaultARAgingOptions() *ARAgingOptions {
	return &ARAgingOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdARAging() *cobra.Command {
	o := DefaultARAgingOptions()
	cmd := &cobra.Command{
		Use:          "ar-aging",
		Short:        "Analyze an accounts receivable aging schedule.",
		Example:      "ar-aging --file ar_aging_q1.xlsx",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ARAgingOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.FilePath, "file", "f", o.FilePath, "Path to the AR aging schedule (.csv or .xlsx)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *ARAgingOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := requireFile(o.FilePath, "file"); err != nil {
		return err
	}
	return validateOutputFormat(o.Output)
}

func (o *ARAgingOptions) Run(ctx context.Context, args []string) error {
	file, err := os.Open(o.FilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.FilePath, err)
	}
	defer file.Close()

	result, err := o.Client().SubmitARAging(ctx, file.Name(), file)
	if err != nil {
		return fmt.Errorf("AR aging analysis failed: %w", err)
	}

	if handled, err := printStructured(o.Output, result); handled {
		return err
	}
	printARAgingTable(result)
	return nil
}

func printARAgingTable(result *api.ARAgingResult) {
	fmt.Printf("Total receivables %.2f, DSO %.1f days, %.1f%% overdue, top debtor %.1f%%\n\n",
		result.TotalReceivables, result.DaysSalesOutstanding, result.OverduePercent, result.TopDebtorPercent)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "BUCKET\tAMOUNT\t%\tCOUNT")
	for _, bucket := range result.Buckets {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%d\n", bucket.Label, bucket.Amount, bucket.Percent, bucket.Count)
	}
	w.Flush()
}
