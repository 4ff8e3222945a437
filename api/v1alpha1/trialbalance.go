package v1alpha1

// TrialBalanceCheck is a single diagnostic the service ran against the
// uploaded trial balance.
type TrialBalanceCheck struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail,omitempty"`
	Accounts []string `json:"accounts,omitempty"`
}

// TrialBalanceDiagnostics is the payload of POST /audit/trial-balance.
type TrialBalanceDiagnostics struct {
	Filename     string              `json:"filename"`
	MatchedCount int                 `json:"matched_count"`
	TotalDebits  float64             `json:"total_debits"`
	TotalCredits float64             `json:"total_credits"`
	Imbalance    float64             `json:"imbalance"`
	Checks       []TrialBalanceCheck `json:"checks"`
}
