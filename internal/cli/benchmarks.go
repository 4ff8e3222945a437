package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewCmdBenchmarks() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "Compare company ratios against industry benchmarks.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(newCmdBenchmarkIndustries())
	cmd.AddCommand(newCmdBenchmarkCompare())
	return cmd
}

type BenchmarkIndustriesOptions struct {
	GlobalOptions

	Output string
}

func newCmdBenchmarkIndustries() *cobra.Command {
	o := &BenchmarkIndustriesOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:          "industries",
		Short:        "List the industries benchmarks are available for.",
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

func (o *BenchmarkIndustriesOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *BenchmarkIndustriesOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutputFormat(o.Output)
}

func (o *BenchmarkIndustriesOptions) Run(ctx context.Context, args []string) error {
	industries, err := o.Client().ListIndustries(ctx)
	if err != nil {
		return fmt.Errorf("listing industries: %w", err)
	}

	if handled, err := printStructured(o.Output, industries); handled {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "CODE\tNAME")
	for _, industry := range industries {
		fmt.Fprintf(w, "%s\t%s\n", industry.Code, industry.Name)
	}
	w.Flush()
	return nil
}

type BenchmarkCompareOptions struct {
	GlobalOptions

	IndustryCode string
	FiscalYear   int
	RawMetrics   map[string]string
	Output       string

	metrics map[string]float64
}

type benchmarkCompareInput struct {
	IndustryCode string `validate:"required,industry_code"`
	FiscalYear   int    `validate:"gte=2000,lte=2100"`
}

func newCmdBenchmarkCompare() *cobra.Command {
	o := &BenchmarkCompareOptions{
		GlobalOptions: DefaultGlobalOptions(),
		FiscalYear:    2026,
	}
	cmd := &cobra.Command{
		Use:          "compare",
		Short:        "Compare company metrics against an industry.",
		Example:      `compare --industry 4411 --year 2026 --metric current_ratio=1.8 --metric gross_margin=0.42`,
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

func (o *BenchmarkCompareOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.IndustryCode, "industry", o.IndustryCode, "Industry code (see `benchmarks industries`)")
	fs.IntVar(&o.FiscalYear, "year", o.FiscalYear, "Fiscal year of the company figures")
	fs.StringToStringVar(&o.RawMetrics, "metric", o.RawMetrics, "Company metric as name=value; repeatable")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *BenchmarkCompareOptions) Complete(cmd *cobra.Command, args []string) error {
	o.metrics = make(map[string]float64, len(o.RawMetrics))
	for name, raw := range o.RawMetrics {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("metric %s: %q is not a number", name, raw)
		}
		o.metrics[name] = value
	}
	return nil
}

func (o *BenchmarkCompareOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if len(o.metrics) == 0 {
		return fmt.Errorf("at least one --metric is required")
	}
	v := validation.NewValidator()
	if err := v.Struct(benchmarkCompareInput{IndustryCode: o.IndustryCode, FiscalYear: o.FiscalYear}); err != nil {
		return fmt.Errorf("invalid comparison request: %w", err)
	}
	return validateOutputFormat(o.Output)
}

func (o *BenchmarkCompareOptions) Run(ctx context.Context, args []string) error {
	comparison, err := o.Client().CompareBenchmarks(ctx, client.BenchmarkRequest{
		IndustryCode: o.IndustryCode,
		FiscalYear:   o.FiscalYear,
		Metrics:      o.metrics,
	})
	if err != nil {
		return fmt.Errorf("benchmark comparison failed: %w", err)
	}

	if handled, err := printStructured(o.Output, comparison); handled {
		return err
	}
	printBenchmarkTable(comparison)
	return nil
}

func printBenchmarkTable(comparison *api.BenchmarkComparison) {
	fmt.Printf("%s (%s), FY%d\n\n", comparison.IndustryName, comparison.IndustryCode, comparison.FiscalYear)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "METRIC\tCOMPANY\tINDUSTRY\tPERCENTILE\tASSESSMENT")
	for _, metric := range comparison.Metrics {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f\t%s\n", metric.Name, metric.CompanyValue, metric.IndustryValue, metric.Percentile, metric.Assessment)
	}
	w.Flush()
}
