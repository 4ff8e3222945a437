package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type benchmarkInput struct {
	IndustryCode string  `validate:"required,industry_code"`
	FiscalYear   int     `validate:"gte=2000,lte=2100"`
	CurrentRatio float64 `validate:"gte=0"`
}

type followUpFilterInput struct {
	Severity    string `validate:"severity"`
	Disposition string `validate:"disposition"`
}

func TestBenchmarkInputValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(benchmarkInput{IndustryCode: "4411", FiscalYear: 2025, CurrentRatio: 1.8}))
	assert.Error(t, v.Struct(benchmarkInput{IndustryCode: "", FiscalYear: 2025}))
	assert.Error(t, v.Struct(benchmarkInput{IndustryCode: "44-11", FiscalYear: 2025}))
	assert.Error(t, v.Struct(benchmarkInput{IndustryCode: "4411", FiscalYear: 1895}))
	assert.Error(t, v.Struct(benchmarkInput{IndustryCode: "4411", FiscalYear: 2025, CurrentRatio: -2}))
}

func TestFilterEnumValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(followUpFilterInput{}))
	assert.NoError(t, v.Struct(followUpFilterInput{Severity: "high", Disposition: "waived"}))
	assert.Error(t, v.Struct(followUpFilterInput{Severity: "critical"}))
	assert.Error(t, v.Struct(followUpFilterInput{Disposition: "closed"}))
}
