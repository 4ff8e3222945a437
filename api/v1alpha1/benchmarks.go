package v1alpha1

// Industry is one entry of GET /benchmarks/industries. The endpoint is
// public and callable without a token.
type Industry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BenchmarkMetric compares one company ratio against the industry figure.
type BenchmarkMetric struct {
	Name          string  `json:"name"`
	CompanyValue  float64 `json:"company_value"`
	IndustryValue float64 `json:"industry_value"`
	Percentile    float64 `json:"percentile"`
	Assessment    string  `json:"assessment,omitempty"`
}

// BenchmarkComparison is the payload of POST /benchmarks/compare.
type BenchmarkComparison struct {
	IndustryCode string            `json:"industry_code"`
	IndustryName string            `json:"industry_name"`
	FiscalYear   int               `json:"fiscal_year"`
	Metrics      []BenchmarkMetric `json:"metrics"`
}
