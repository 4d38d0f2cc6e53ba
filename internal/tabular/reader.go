// Package tabular converts between uploaded spreadsheets and prediction
// records. Column validation happens here, before any row reaches the
// batch runner.
package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"geomed/internal/prediction/models"
	dErrors "geomed/pkg/domain-errors"
)

// Required upload columns, matched against the header row verbatim.
var requiredColumns = []string{
	"Firstname",
	"Lastname",
	"Email ID",
	"Hospital Affiliation",
	"PubMed Article Title",
}

// ReadRows decodes the first sheet of an uploaded workbook into raw rows.
// A missing required column fails the whole upload with a validation error
// naming every absent column.
func ReadRows(r io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "could not read workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "could not read sheet")
	}
	if len(rows) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "sheet has no header row")
	}

	columns, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var result []models.RawRow
	for _, row := range rows[1:] {
		result = append(result, models.RawRow{
			FirstName: cell(row, columns["Firstname"]),
			LastName:  cell(row, columns["Lastname"]),
			Email:     cell(row, columns["Email ID"]),
			Hospital:  cell(row, columns["Hospital Affiliation"]),
			Topic:     cell(row, columns["PubMed Article Title"]),
		})
	}
	return result, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}
	return index, nil
}

// cell tolerates short rows: trailing empty cells are simply absent in
// excelize's row slices.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
