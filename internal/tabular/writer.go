package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"geomed/internal/prediction/models"
)

const exportSheet = "HCP Search History"

var exportHeader = []string{
	"Name",
	"Email",
	"Hospital Affiliation",
	"PubMed Topic",
	"Predicted Country",
	"Confidence Score (%)",
	"Is Medical Doctor",
	"Specialty",
	"Public Profile URL",
	"Reasoning",
	"Data Sources",
	"Date",
}

// maxColumnWidth caps auto-sizing so reasoning text doesn't blow up the
// sheet layout.
const maxColumnWidth = 50

// WriteRecords renders records into a downloadable workbook, one row per
// record with human-readable headers and auto-sized columns.
func WriteRecords(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	widths := make([]int, len(exportHeader))
	writeRow(f, 1, exportHeader, widths)

	for i, record := range records {
		writeRow(f, i+2, exportRow(record), widths)
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(exportSheet, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func exportRow(record models.Record) []string {
	isDoctor := "No"
	if record.IsDoctor {
		isDoctor = "Yes"
	}
	return []string{
		record.Name,
		record.Email,
		record.Hospital,
		record.Topic,
		record.Country,
		fmt.Sprintf("%g", record.Confidence),
		isDoctor,
		orFallback(record.Specialty, "Not specified"),
		orFallback(record.ProfileURL, "Not available"),
		record.Reasoning,
		strings.Join(record.Sources, ", "),
		record.Timestamp.Format("2006-01-02 15:04:05"),
	}
}

func writeRow(f *excelize.File, rowNumber int, values []string, widths []int) {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNumber)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(exportSheet, cell, value)
		if len(value) > widths[i] {
			widths[i] = len(value)
		}
	}
}

func orFallback(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
