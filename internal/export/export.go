package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/xuri/excelize/v2"
)

// SaveBlob writes a downloaded export to dir under the suggested filename,
// falling back to a timestamped name when the service suggested none. It
// returns the path written.
func SaveBlob(dir, suggested string, blob []byte) (string, error) {
	name := suggested
	if name == "" {
		name = fmt.Sprintf("auditlens_export_%s.bin", time.Now().Format("20060102_150405"))
	}
	// A suggested filename is untrusted input; keep only its base.
	name = filepath.Base(name)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}
	return path, nil
}

var followUpHeader = []string{"ID", "Description", "Severity", "Disposition", "Tool", "Assigned To", "Created At", "Notes"}

func followUpRow(item api.FollowUpItem) []string {
	return []string{
		item.ID,
		item.Description,
		string(item.Severity),
		string(item.Disposition),
		item.ToolSource,
		item.AssignedTo,
		item.CreatedAt.Format(time.RFC3339),
		item.Notes,
	}
}

// WriteFollowUpsCSV renders follow-up items as CSV.
func WriteFollowUpsCSV(w io.Writer, items []api.FollowUpItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(followUpHeader); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write(followUpRow(item)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFollowUpsXLSX renders follow-up items as a single-sheet workbook.
func WriteFollowUpsXLSX(w io.Writer, items []api.FollowUpItem) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Follow-Ups"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, header := range followUpHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, item := range items {
		for col, value := range followUpRow(item) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}
