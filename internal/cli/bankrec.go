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

type BankRecOptions struct {
	GlobalOptions

	LedgerPath    string
	StatementPath string
	Output        string
}

func DefaultBankRecOptions() *BankRecOptions {
	return &BankRecOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdBankReconciliation() *cobra.Command {
	o := DefaultBankRecOptions()
	cmd := &cobra.Command{
		Use:          "bank-reconciliation",
		Short:        "Match a cash ledger against a bank statement.",
		Example:      "bank-reconciliation --ledger cash_ledger.csv --statement statement.csv",
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

func (o *BankRecOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.LedgerPath, "ledger", o.LedgerPath, "Path to the cash ledger (.csv or .xlsx)")
	fs.StringVar(&o.StatementPath, "statement", o.StatementPath, "Path to the bank statement (.csv or .xlsx)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *BankRecOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := requireFile(o.LedgerPath, "ledger"); err != nil {
		return err
	}
	if err := requireFile(o.StatementPath, "statement"); err != nil {
		return err
	}
	return validateOutputFormat(o.Output)
}

func (o *BankRecOptions) Run(ctx context.Context, args []string) error {
	ledger, err := os.Open(o.LedgerPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.LedgerPath, err)
	}
	defer ledger.Close()

	statement, err := os.Open(o.StatementPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", o.StatementPath, err)
	}
	defer statement.Close()

	result, err := o.Client().SubmitBankReconciliation(ctx, ledger.Name(), ledger, statement.Name(), statement)
	if err != nil {
		return fmt.Errorf("bank reconciliation failed: %w", err)
	}

	if handled, err := printStructured(o.Output, result); handled {
		return err
	}
	printBankRecTable(result)
	return nil
}

func printBankRecTable(result *api.BankReconciliationSummary) {
	fmt.Printf("%d matched, %d ledger-only, %d statement-only, net difference %.2f\n\n",
		result.MatchedCount, result.LedgerOnlyCount, result.StatementOnlyCount, result.NetDifference)

	if len(result.Outstanding) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "SIDE\tDATE\tDESCRIPTION\tAMOUNT\tAGE\tSEVERITY")
	for _, item := range result.Outstanding {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%dd\t%s\n", item.Side, item.Date, item.Description, item.Amount, item.AgeDays, item.Severity)
	}
	w.Flush()
}
