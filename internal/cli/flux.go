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

type FluxOptions struct {
	GlobalOptions

	FilePath     string
	ThresholdPct float64
	Output       string
}

func DefaultFluxOptions() *FluxOptions {
	return &FluxOptions{
		GlobalOptions: DefaultGlobalOptions(),
		ThresholdPct:  10,
	}
}

func NewCmdFlux() *cobra.Command {
	o := DefaultFluxOptions()
	cmd := &cobra.Command{
		Use:          "flux",
		Short:        "Run flux (variance) analysis over a comparative trial balance.",
		Example:      "flux --file tb_comparative.xlsx --threshold 15",
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

func (o *FluxOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.FilePath, "file", "f", o.FilePath, "Path to the comparative trial balance (.csv or .xlsx)")
	fs.Float64Var(&o.ThresholdPct, "threshold", o.ThresholdPct, "Variance percentage at or above which an account is flagged")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *FluxOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := requireFile(o.FilePath, "file"); err != nil {
		return err
	}
	if o.ThresholdPct < 0 {
		return fmt.Errorf("threshold must not be negative")
	}
	return validateOutputFormat(o.Output)
}

func (o *FluxOptions) Run(ctx context.Context, args []string) error {
	file, err := os.Open(o.FilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.FilePath, err)
	}
	defer file.Close()

	result, err := o.Client().SubmitFlux(ctx, file.Name(), file, o.ThresholdPct)
	if err != nil {
		return fmt.Errorf("flux analysis failed: %w", err)
	}

	if handled, err := printStructured(o.Output, result); handled {
		return err
	}
	printFluxTable(result)
	return nil
}

func printFluxTable(result *api.FluxResult) {
	fmt.Printf("%s vs %s, threshold %.1f%%: %d account(s) flagged\n\n", result.PeriodCurrent, result.PeriodPrior, result.ThresholdPct, result.FlaggedCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "ACCOUNT\tNAME\tPRIOR\tCURRENT\tVARIANCE\t%\tSEVERITY\tREASONS")
	for _, row := range result.Rows {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.1f\t%s\t%s\n",
			row.Account, row.AccountName, row.PriorBalance, row.CurrentBalance,
			row.Variance, row.VariancePct, row.Severity, joinReasons(row.RiskReasons))
	}
	w.Flush()
}

func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "-"
	}
	out := reasons[0]
	for _, reason := range reasons[1:] {
		out += "; " + reason
	}
	return out
}
