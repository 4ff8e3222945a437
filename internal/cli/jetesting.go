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

type JETestingOptions struct {
	GlobalOptions

	FilePath string
	Output   string
}

func DefaultJETestingOptions() *JETestingOptions {
	return &JETestingOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdJETesting() *cobra.Command {
	o := DefaultJETestingOptions()
	cmd := &cobra.Command{
		Use:          "je-testing",
		Short:        "Run the journal entry test battery over a journal export.",
		Example:      "je-testing --file journal_fy2026.csv",
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

func (o *JETestingOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.FilePath, "file", "f", o.FilePath, "Path to the journal entry export (.csv or .xlsx)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *JETestingOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := requireFile(o.FilePath, "file"); err != nil {
		return err
	}
	return validateOutputFormat(o.Output)
}

func (o *JETestingOptions) Run(ctx context.Context, args []string) error {
	file, err := os.Open(o.FilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.FilePath, err)
	}
	defer file.Close()

	result, err := o.Client().SubmitJETesting(ctx, file.Name(), file)
	if err != nil {
		return fmt.Errorf("journal entry testing failed: %w", err)
	}

	if handled, err := printStructured(o.Output, result); handled {
		return err
	}
	printJETestingTable(result)
	return nil
}

func printJETestingTable(result *api.JETestingResult) {
	fmt.Printf("%d entries tested, %d hit(s), Benford MAD %.4f\n\n", result.EntryCount, result.FlaggedCount, result.BenfordMAD)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "TEST\tHITS\tPOPULATION\tSEVERITY\tDETAIL")
	for _, test := range result.Tests {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", test.Name, test.HitCount, test.Population, test.Severity, test.Detail)
	}
	w.Flush()

	if len(result.Benford) > 0 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(w, "DIGIT\tACTUAL %\tEXPECTED %")
		for _, digit := range result.Benford {
			fmt.Fprintf(w, "%d\t%.1f\t%.1f\n", digit.Digit, digit.Actual, digit.Expected)
		}
		w.Flush()
	}
}
