package v1alpha1

// OutstandingItem is a ledger or statement line the matcher could not pair.
type OutstandingItem struct {
	Side        string   `json:"side"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	AgeDays     int      `json:"age_days"`
	Severity    Severity `json:"severity"`
}

// BankReconciliationSummary is the payload of POST /audit/bank-reconciliation.
type BankReconciliationSummary struct {
	LedgerFilename     string            `json:"ledger_filename"`
	StatementFilename  string            `json:"statement_filename"`
	MatchedCount       int               `json:"matched_count"`
	LedgerOnlyCount    int               `json:"ledger_only_count"`
	StatementOnlyCount int               `json:"statement_only_count"`
	NetDifference      float64           `json:"net_difference"`
	Outstanding        []OutstandingItem `json:"outstanding,omitempty"`
}
