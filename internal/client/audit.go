package client

import (
	"context"
	"fmt"
	"io"
	"strconv"

	api "github.com/auditlens/auditlens/api/v1alpha1"
)

// SubmitFlux uploads a comparative trial balance for flux analysis.
func (c *Client) SubmitFlux(ctx context.Context, filename string, file io.Reader, thresholdPct float64) (*api.FluxResult, error) {
	fields := map[string]string{
		"threshold_pct": strconv.FormatFloat(thresholdPct, 'f', -1, 64),
	}
	result := &api.FluxResult{}
	err := c.PostMultipart(ctx, "/audit/flux", []FilePart{{Field: "file", Filename: filename, Reader: file}}, fields, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitTrialBalance runs the trial balance diagnostic battery.
func (c *Client) SubmitTrialBalance(ctx context.Context, filename string, file io.Reader) (*api.TrialBalanceDiagnostics, error) {
	result := &api.TrialBalanceDiagnostics{}
	err := c.PostMultipart(ctx, "/audit/trial-balance", []FilePart{{Field: "file", Filename: filename, Reader: file}}, nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitJETesting runs the journal entry test battery.
func (c *Client) SubmitJETesting(ctx context.Context, filename string, file io.Reader) (*api.JETestingResult, error) {
	result := &api.JETestingResult{}
	err := c.PostMultipart(ctx, "/audit/je-testing", []FilePart{{Field: "file", Filename: filename, Reader: file}}, nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitARAging analyzes an accounts receivable aging schedule.
func (c *Client) SubmitARAging(ctx context.Context, filename string, file io.Reader) (*api.ARAgingResult, error) {
	result := &api.ARAgingResult{}
	err := c.PostMultipart(ctx, "/audit/ar-aging", []FilePart{{Field: "file", Filename: filename, Reader: file}}, nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitBankReconciliation matches a cash ledger against a bank statement.
func (c *Client) SubmitBankReconciliation(ctx context.Context, ledgerName string, ledger io.Reader, statementName string, statement io.Reader) (*api.BankReconciliationSummary, error) {
	files := []FilePart{
		{Field: "ledger", Filename: ledgerName, Reader: ledger},
		{Field: "statement", Filename: statementName, Reader: statement},
	}
	result := &api.BankReconciliationSummary{}
	if err := c.PostMultipart(ctx, "/audit/bank-reconciliation", files, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// BenchmarkRequest is the POST /benchmarks/compare body.
type BenchmarkRequest struct {
	IndustryCode string             `json:"industry_code"`
	FiscalYear   int                `json:"fiscal_year"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (c *Client) CompareBenchmarks(ctx context.Context, request BenchmarkRequest) (*api.BenchmarkComparison, error) {
	result := &api.BenchmarkComparison{}
	if err := c.PostJSON(ctx, "/benchmarks/compare", request, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListIndustries returns the benchmark industry catalog. The endpoint is
// callable without a token.
func (c *Client) ListIndustries(ctx context.Context) ([]api.Industry, error) {
	industries := []api.Industry{}
	if err := c.Get(ctx, "/benchmarks/industries", &industries); err != nil {
		return nil, err
	}
	return industries, nil
}

func (c *Client) ListFollowUps(ctx context.Context) ([]api.FollowUpItem, error) {
	items := []api.FollowUpItem{}
	if err := c.Get(ctx, "/followups", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) UpdateFollowUp(ctx context.Context, id string, update api.FollowUpUpdate) (*api.FollowUpItem, error) {
	item := &api.FollowUpItem{}
	if err := c.PatchJSON(ctx, fmt.Sprintf("/followups/%s", id), update, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) AddFollowUpComment(ctx context.Context, id string, author, body string) (*api.FollowUpItem, error) {
	comment := map[string]string{"author": author, "body": body}
	item := &api.FollowUpItem{}
	if err := c.PostJSON(ctx, fmt.Sprintf("/followups/%s/comments", id), comment, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ExportKind selects the server-side export renderer.
type ExportKind string

const (
	ExportPDF  ExportKind = "pdf"
	ExportXLSX ExportKind = "xlsx"
	ExportCSV  ExportKind = "csv"
)

// ExportRequest asks the service to render the named diagnostic result.
type ExportRequest struct {
	Tool    string `json:"tool"`
	Payload any    `json:"payload"`
}

// ExportReport downloads a rendered export blob.
func (c *Client) ExportReport(ctx context.Context, kind ExportKind, request ExportRequest) ([]byte, string, error) {
	return c.Download(ctx, fmt.Sprintf("/export/%s", kind), request)
}
