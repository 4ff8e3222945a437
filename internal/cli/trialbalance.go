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

type TrialBalanceOptions struct {
	GlobalOptions

	FilePath string
	Output   string
}

func DefaultTrialBalanceOptions() *TrialBalanceOptions {
	return &TrialBalanceOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdTrialBalance() *cobra.Command {
	o := DefaultTrialBalanceOptions()
	cmd := &cobra.Command{
		Use:          "trial-balance",
		Short:        "Run the diagnostic battery over an uploaded trial balance.",
		Example:      "trial-balance --file tb_fy2026.csv",
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

func (o *TrialBalanceOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.FilePath, "file", "f", o.FilePath, "Path to the trial balance (.csv or .xlsx)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *TrialBalanceOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := requireFile(o.FilePath, "file"); err != nil {
		return err
	}
	return validateOutputFormat(o.Output)
}

func (o *TrialBalanceOptions) Run(ctx context.Context, args []string) error {
	file, err := os.Open(o.FilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.FilePath, err)
	}
	defer file.Close()

	result, err := o.Client().SubmitTrialBalance(ctx, file.Name(), file)
	if err != nil {
		return fmt.Errorf("trial balance diagnostics failed: %w", err)
	}

	if handled, err := printStructured(o.Output, result); handled {
		return err
	}
	printTrialBalanceTable(result)
	return nil
}

func printTrialBalanceTable(result *api.TrialBalanceDiagnostics) {
	fmt.Printf("%d account(s) matched, debits %.2f / credits %.2f (imbalance %.2f)\n\n",
		result.MatchedCount, result.TotalDebits, result.TotalCredits, result.Imbalance)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "CHECK\tRESULT\tSEVERITY\tDETAIL")
	for _, check := range result.Checks {
		status := "PASS"
		if !check.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", check.Name, status, check.Severity, check.Detail)
	}
	w.Flush()
}
