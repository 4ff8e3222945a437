package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeOK(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(w).Encode(api.Envelope{Ok: true, Data: raw}))
}

func TestSubmitBankReconciliationDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audit/bank-reconciliation", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		_, header, err := r.FormFile("ledger")
		require.NoError(t, err)
		assert.Equal(t, "cash_ledger.csv", header.Filename)
		_, _, err = r.FormFile("statement")
		require.NoError(t, err)

		envelopeOK(t, w, api.BankReconciliationSummary{MatchedCount: 3, NetDifference: 12.5})
	}))
	defer server.Close()

	c := New(server.URL)
	summary, err := c.SubmitBankReconciliation(context.Background(),
		"cash_ledger.csv", strings.NewReader("date,amount\n"),
		"statement.csv", strings.NewReader("date,amount\n"))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.MatchedCount)
}

func TestEnvelopeErrorIsSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(api.Envelope{Ok: false, Error: "No matching columns"}))
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.SubmitTrialBalance(context.Background(), "tb.csv", strings.NewReader("x"))

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "No matching columns", err.Error())
}

func TestNonOKStatusBecomesGenericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListFollowUps(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestMalformedPayloadBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListIndustries(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestBearerTokenAttachedOnlyWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeOK(t, w, []api.Industry{{Code: "4411", Name: "Automobile Dealers"}})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ListIndustries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "tokenless client must not send an Authorization header")

	c = New(server.URL, WithToken("abc123"))
	_, err = c.ListIndustries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestFluxThresholdTravelsAsFormField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "12.5", r.FormValue("threshold_pct"))
		envelopeOK(t, w, api.FluxResult{ThresholdPct: 12.5, FlaggedCount: 2})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.SubmitFlux(context.Background(), "tb_comparative.xlsx", strings.NewReader("x"), 12.5)

	require.NoError(t, err)
	assert.Equal(t, 2, result.FlaggedCount)
}

func TestDownloadReturnsBlobAndSuggestedFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/export/xlsx", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="flux_report.xlsx"`)
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	}))
	defer server.Close()

	c := New(server.URL)
	blob, filename, err := c.ExportReport(context.Background(), ExportXLSX, ExportRequest{Tool: "flux"})

	require.NoError(t, err)
	assert.Equal(t, "flux_report.xlsx", filename)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, blob)
}
