package stubapi

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	api "github.com/auditlens/auditlens/api/v1alpha1"
)

// The stub fabricates results deterministically from the upload so repeated
// runs over the same file render identically.

func dataRows(content []byte) int {
	lines := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			lines++
		}
	}
	if lines == 0 {
		return 0
	}
	// First non-empty line is treated as the header.
	return lines - 1
}

func fabricateFlux(filename string, content []byte, threshold float64) api.FluxResult {
	rows := []api.FluxRow{
		{
			Account: "4000", AccountName: "Revenue",
			PriorBalance: 1200000, CurrentBalance: 1680000,
			Variance: 480000, VariancePct: 40,
			Severity:    api.SeverityHigh,
			RiskReasons: []string{"above threshold", "revenue recognition sensitivity"},
		},
		{
			Account: "5100", AccountName: "Payroll Expense",
			PriorBalance: 300000, CurrentBalance: 330000,
			Variance: 30000, VariancePct: 10,
			Severity:    api.SeverityMedium,
			RiskReasons: []string{"headcount change unverified"},
		},
		{
			Account: "6200", AccountName: "Office Supplies",
			PriorBalance: 20000, CurrentBalance: 20400,
			Variance: 400, VariancePct: 2,
			Severity: api.SeverityLow,
		},
	}

	flagged := 0
	for _, row := range rows {
		if row.VariancePct >= threshold {
			flagged++
		}
	}

	return api.FluxResult{
		Filename:      filename,
		PeriodPrior:   "FY2025",
		PeriodCurrent: "FY2026",
		ThresholdPct:  threshold,
		Rows:          rows,
		FlaggedCount:  flagged,
	}
}

func fabricateTrialBalance(filename string, content []byte) (*api.TrialBalanceDiagnostics, error) {
	header := ""
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			header = strings.ToLower(line)
			break
		}
	}
	if !strings.Contains(header, "debit") || !strings.Contains(header, "credit") {
		return nil, fmt.Errorf("No matching columns")
	}

	matched := dataRows(content)
	return &api.TrialBalanceDiagnostics{
		Filename:     filename,
		MatchedCount: matched,
		TotalDebits:  float64(matched) * 1000,
		TotalCredits: float64(matched) * 1000,
		Imbalance:    0,
		Checks: []api.TrialBalanceCheck{
			{Name: "debits_equal_credits", Passed: true, Severity: api.SeverityHigh},
			{Name: "unusual_sign_balances", Passed: matched%3 != 0, Severity: api.SeverityMedium, Detail: "asset accounts with credit balances"},
			{Name: "suspense_accounts", Passed: matched%5 != 0, Severity: api.SeverityMedium},
		},
	}, nil
}

func fabricateJETesting(filename string, content []byte) api.JETestingResult {
	entries := dataRows(content)

	benford := make([]api.BenfordDigit, 0, 9)
	expected := []float64{30.1, 17.6, 12.5, 9.7, 7.9, 6.7, 5.8, 5.1, 4.6}
	for digit := 1; digit <= 9; digit++ {
		actual := expected[digit-1]
		if digit == 1 {
			actual -= 3.5
		}
		if digit == 9 {
			actual += 3.5
		}
		benford = append(benford, api.BenfordDigit{Digit: digit, Actual: actual, Expected: expected[digit-1]})
	}

	tests := []api.JETest{
		{Name: "round_amounts", HitCount: entries / 10, Population: entries, Severity: api.SeverityMedium},
		{Name: "weekend_postings", HitCount: entries / 20, Population: entries, Severity: api.SeverityHigh, Detail: "entries posted on Saturday or Sunday"},
		{Name: "period_end_spike", HitCount: entries / 8, Population: entries, Severity: api.SeverityMedium},
		{Name: "unusual_users", HitCount: 0, Population: entries, Severity: api.SeverityLow},
	}

	flagged := 0
	for _, test := range tests {
		flagged += test.HitCount
	}

	return api.JETestingResult{
		Filename:     filename,
		EntryCount:   entries,
		Tests:        tests,
		Benford:      benford,
		BenfordMAD:   0.0078,
		FlaggedCount: flagged,
	}
}

func fabricateARAging(filename string, content []byte) api.ARAgingResult {
	rows := dataRows(content)
	total := float64(rows) * 1000

	buckets := []api.ARAgingBucket{
		{Label: "current", Amount: total * 0.55, Percent: 55, Count: rows * 55 / 100},
		{Label: "1-30", Amount: total * 0.20, Percent: 20, Count: rows * 20 / 100},
		{Label: "31-60", Amount: total * 0.12, Percent: 12, Count: rows * 12 / 100},
		{Label: "61-90", Amount: total * 0.08, Percent: 8, Count: rows * 8 / 100},
		{Label: "90+", Amount: total * 0.05, Percent: 5, Count: rows * 5 / 100},
	}

	return api.ARAgingResult{
		Filename:             filename,
		TotalReceivables:     total,
		Buckets:              buckets,
		DaysSalesOutstanding: 47.3,
		TopDebtorPercent:     18.2,
		OverduePercent:       45,
	}
}

func fabricateBankReconciliation(ledgerName string, ledger []byte, statementName string, statement []byte) api.BankReconciliationSummary {
	ledgerRows := dataRows(ledger)
	statementRows := dataRows(statement)

	matched := ledgerRows
	if statementRows < matched {
		matched = statementRows
	}

	return api.BankReconciliationSummary{
		LedgerFilename:     ledgerName,
		StatementFilename:  statementName,
		MatchedCount:       matched,
		LedgerOnlyCount:    ledgerRows - matched,
		StatementOnlyCount: statementRows - matched,
		NetDifference:      float64(ledgerRows-statementRows) * 250,
		Outstanding: []api.OutstandingItem{
			{Side: "ledger", Date: "2026-02-27", Description: "Check #1088", Amount: 1250, AgeDays: 25, Severity: api.SeverityMedium},
			{Side: "statement", Date: "2026-02-28", Description: "Bank fee", Amount: 35, AgeDays: 24, Severity: api.SeverityLow},
		},
	}
}

var industryCatalog = []api.Industry{
	{Code: "2361", Name: "Residential Building Construction"},
	{Code: "3254", Name: "Pharmaceutical Manufacturing"},
	{Code: "4411", Name: "Automobile Dealers"},
	{Code: "5221", Name: "Depository Credit Intermediation"},
	{Code: "5415", Name: "Computer Systems Design"},
	{Code: "7225", Name: "Restaurants and Other Eating Places"},
}

func fabricateBenchmarks(industryCode string, fiscalYear int, companyMetrics map[string]float64) api.BenchmarkComparison {
	name := "Unknown Industry"
	for _, industry := range industryCatalog {
		if industry.Code == industryCode {
			name = industry.Name
		}
	}

	metrics := make([]api.BenchmarkMetric, 0, len(companyMetrics))
	for _, metricName := range sortedKeys(companyMetrics) {
		company := companyMetrics[metricName]
		industry := company * 0.85
		percentile := 50.0
		if company > industry {
			percentile = 63.0
		}
		metrics = append(metrics, api.BenchmarkMetric{
			Name:          metricName,
			CompanyValue:  company,
			IndustryValue: industry,
			Percentile:    percentile,
			Assessment:    "within expected range",
		})
	}

	return api.BenchmarkComparison{
		IndustryCode: industryCode,
		IndustryName: name,
		FiscalYear:   fiscalYear,
		Metrics:      metrics,
	}
}

func fabricateExport(kind, tool string) ([]byte, string, error) {
	switch kind {
	case "csv":
		return []byte("section,value\nsummary,stub\n"), "text/csv", nil
	case "xlsx":
		// Minimal ZIP local-file header; enough for save-as flows.
		return []byte{0x50, 0x4b, 0x03, 0x04}, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case "pdf":
		return []byte("%PDF-1.4\n%stub " + tool + "\n%%EOF\n"), "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("unsupported export kind %q", kind)
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
