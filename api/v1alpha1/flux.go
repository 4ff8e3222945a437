package v1alpha1

// FluxRow is one account's period-over-period movement as scored by the
// analytics service. RiskReasons is the canonical field name; older page
// variants called it variance_indicators and are not carried forward.
type FluxRow struct {
	Account        string   `json:"account"`
	AccountName    string   `json:"account_name,omitempty"`
	PriorBalance   float64  `json:"prior_balance"`
	CurrentBalance float64  `json:"current_balance"`
	Variance       float64  `json:"variance"`
	VariancePct    float64  `json:"variance_pct"`
	Severity       Severity `json:"severity"`
	RiskReasons    []string `json:"risk_reasons,omitempty"`
}

// FluxResult is the payload of POST /audit/flux.
type FluxResult struct {
	Filename      string    `json:"filename"`
	PeriodPrior   string    `json:"period_prior"`
	PeriodCurrent string    `json:"period_current"`
	ThresholdPct  float64   `json:"threshold_pct"`
	Rows          []FluxRow `json:"rows"`
	FlaggedCount  int       `json:"flagged_count"`
}
