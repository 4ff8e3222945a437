package tui

import (
	"fmt"
	"strings"

	api "github.com/auditlens/auditlens/api/v1alpha1"
)

// The renderers below turn a diagnostic payload into the plain-text body of
// a result panel. Severity coloring happens at the register level, not here.

func renderFlux(result *api.FluxResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s vs %s, threshold %.1f%%\n", result.Filename, result.PeriodPrior, result.PeriodCurrent, result.ThresholdPct)
	fmt.Fprintf(&sb, "%d of %d account(s) flagged\n\n", result.FlaggedCount, len(result.Rows))
	for _, row := range result.Rows {
		fmt.Fprintf(&sb, "%-12s %12.2f -> %12.2f  %+7.1f%%  %s\n", row.Account, row.PriorBalance, row.CurrentBalance, row.VariancePct, row.Severity)
		for _, reason := range row.RiskReasons {
			fmt.Fprintf(&sb, "             - %s\n", reason)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderTrialBalance(result *api.TrialBalanceDiagnostics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d account(s) matched\n", result.Filename, result.MatchedCount)
	fmt.Fprintf(&sb, "debits %.2f, credits %.2f, imbalance %.2f\n\n", result.TotalDebits, result.TotalCredits, result.Imbalance)
	for _, check := range result.Checks {
		status := "PASS"
		if !check.Passed {
			status = fmt.Sprintf("FAIL (%s)", check.Severity)
		}
		fmt.Fprintf(&sb, "%-30s %s\n", check.Name, status)
		if check.Detail != "" {
			fmt.Fprintf(&sb, "  %s\n", check.Detail)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderJETesting(result *api.JETestingResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d entries, %d flagged, Benford MAD %.4f\n\n", result.Filename, result.EntryCount, result.FlaggedCount, result.BenfordMAD)
	for _, test := range result.Tests {
		fmt.Fprintf(&sb, "%-28s %4d/%d  %s\n", test.Name, test.HitCount, test.Population, test.Severity)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderARAging(result *api.ARAgingResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %.2f total receivables, DSO %.1f\n", result.Filename, result.TotalReceivables, result.DaysSalesOutstanding)
	fmt.Fprintf(&sb, "%.1f%% overdue, top debtor %.1f%%\n\n", result.OverduePercent, result.TopDebtorPercent)
	for _, bucket := range result.Buckets {
		fmt.Fprintf(&sb, "%-12s %12.2f  %5.1f%%  (%d invoices)\n", bucket.Label, bucket.Amount, bucket.Percent, bucket.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderBankRec(result *api.BankReconciliationSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d matched, %d ledger-only, %d statement-only\n", result.MatchedCount, result.LedgerOnlyCount, result.StatementOnlyCount)
	fmt.Fprintf(&sb, "net difference %.2f\n", result.NetDifference)
	if len(result.Outstanding) > 0 {
		sb.WriteString("\n")
		for _, item := range result.Outstanding {
			fmt.Fprintf(&sb, "%-9s %s  %-24s %12.2f  %dd  %s\n", item.Side, item.Date, item.Description, item.Amount, item.AgeDays, item.Severity)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
