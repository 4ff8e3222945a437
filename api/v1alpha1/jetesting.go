package v1alpha1

// JETest is one test of the journal-entry battery (round numbers, weekend
// postings, period-end spikes, user anomalies).
type JETest struct {
	Name       string   `json:"name"`
	HitCount   int      `json:"hit_count"`
	Population int      `json:"population"`
	Severity   Severity `json:"severity"`
	Detail     string   `json:"detail,omitempty"`
	EntryIDs   []string `json:"entry_ids,omitempty"`
}

// BenfordDigit is the first-digit distribution figure computed by the
// backend; the client only renders it.
type BenfordDigit struct {
	Digit    int     `json:"digit"`
	Actual   float64 `json:"actual"`
	Expected float64 `json:"expected"`
}

// JETestingResult is the payload of POST /audit/je-testing.
type JETestingResult struct {
	Filename     string         `json:"filename"`
	EntryCount   int            `json:"entry_count"`
	Tests        []JETest       `json:"tests"`
	Benford      []BenfordDigit `json:"benford,omitempty"`
	BenfordMAD   float64        `json:"benford_mad"`
	FlaggedCount int            `json:"flagged_count"`
}
