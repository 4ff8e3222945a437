package v1alpha1

// ARAgingBucket is one receivables age band.
type ARAgingBucket struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

// ARAgingResult is the payload of POST /audit/ar-aging.
type ARAgingResult struct {
	Filename             string          `json:"filename"`
	TotalReceivables     float64         `json:"total_receivables"`
	Buckets              []ARAgingBucket `json:"buckets"`
	DaysSalesOutstanding float64         `json:"days_sales_outstanding"`
	TopDebtorPercent     float64         `json:"top_debtor_percent"`
	OverduePercent       float64         `json:"overdue_percent"`
}
