package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleItems() []api.FollowUpItem {
	return []api.FollowUpItem{
		{
			ID:          "f-1",
			Description: "Unbalanced journal batch",
			Severity:    api.SeverityHigh,
			Disposition: api.DispositionOpen,
			ToolSource:  "tb_diagnostics",
			AssignedTo:  "rlee",
			CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Notes:       "batch 2201",
		},
		{
			ID:          "f-2",
			Description: "Stale outstanding check",
			Severity:    api.SeverityMedium,
			Disposition: api.DispositionResolved,
			ToolSource:  "bank_reconciliation",
			CreatedAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestSaveBlobUsesSuggestedName(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveBlob(dir, "flux_report.xlsx", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flux_report.xlsx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestSaveBlobStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveBlob(dir, "../../etc/report.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), path)
}

func TestSaveBlobGeneratesNameWhenMissing(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveBlob(dir, "", []byte("x"))
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "auditlens_export_")
}

func TestWriteFollowUpsCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteFollowUpsCSV(buf, sampleItems()))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, followUpHeader, records[0])
	assert.Equal(t, "f-1", records[1][0])
	assert.Equal(t, "high", records[1][2])
	assert.Equal(t, "bank_reconciliation", records[2][4])
}

func TestWriteFollowUpsXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteFollowUpsXLSX(buf, sampleItems()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Follow-Ups")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Description", rows[0][1])
	assert.Equal(t, "Stale outstanding check", rows[2][1])
}
