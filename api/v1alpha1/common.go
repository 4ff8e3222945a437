package v1alpha1

import "encoding/json"

// Envelope is the wrapper every analytics endpoint responds with. Data is
// left raw so each caller can decode it into its own payload type.
type Envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns the fixed ordinal used for sorting: the riskiest severity
// ranks lowest so ascending order surfaces it first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

func StringToSeverity(s string) Severity {
	switch s {
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	case string(SeverityLow):
		return SeverityLow
	default:
		return SeverityLow
	}
}

type Disposition string

const (
	DispositionOpen     Disposition = "open"
	DispositionResolved Disposition = "resolved"
	DispositionWaived   Disposition = "waived"
)

func StringToDisposition(s string) Disposition {
	switch s {
	case string(DispositionResolved):
		return DispositionResolved
	case string(DispositionWaived):
		return DispositionWaived
	default:
		return DispositionOpen
	}
}
