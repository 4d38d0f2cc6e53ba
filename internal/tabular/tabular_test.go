package tabular

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"geomed/internal/prediction/models"
)

func uploadWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, name))
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

var uploadHeader = []string{"Firstname", "Lastname", "Email ID", "Hospital Affiliation", "PubMed Article Title"}

func TestReadRows(t *testing.T) {
	r := uploadWorkbook(t, uploadHeader, [][]string{
		{"Jane", "Doe", "jane@ed.ac.uk", "Royal Infirmary", "cardiac imaging"},
		{"John", "Smith", "john@mayo.org", "Mayo Clinic", "oncology"},
	})

	rows, err := ReadRows(r)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.RawRow{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@ed.ac.uk",
		Hospital:  "Royal Infirmary",
		Topic:     "cardiac imaging",
	}, rows[0])
}

func TestReadRowsMissingColumns(t *testing.T) {
	r := uploadWorkbook(t, []string{"Firstname", "Email ID"}, nil)

	_, err := ReadRows(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required columns")
	assert.Contains(t, err.Error(), "Lastname")
	assert.Contains(t, err.Error(), "Hospital Affiliation")
	assert.Contains(t, err.Error(), "PubMed Article Title")
	assert.NotContains(t, err.Error(), "Email ID")
}

func TestReadRowsShortRow(t *testing.T) {
	r := uploadWorkbook(t, uploadHeader, [][]string{{"Jane", "Doe"}})

	rows, err := ReadRows(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane", rows[0].FirstName)
	assert.Empty(t, rows[0].Email)
}

func TestReadRowsNotAWorkbook(t *testing.T) {
	_, err := ReadRows(bytes.NewReader([]byte("definitely not xlsx")))
	require.Error(t, err)
}

func TestWriteRecordsRoundTrip(t *testing.T) {
	specialty := "Cardiology"
	records := []models.Record{
		{
			Name:       "Dr. Jane Doe",
			Email:      "jane@ed.ac.uk",
			Hospital:   "Royal Infirmary",
			Topic:      "cardiac imaging",
			Country:    "Scotland",
			Confidence: 85.5,
			Sources:    []string{"AI Analysis", "Hospital Name Analysis"},
			Reasoning:  "ed.ac.uk domain",
			IsDoctor:   true,
			Specialty:  &specialty,
			Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("HCP Search History")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Dr. Jane Doe", rows[1][0])
	assert.Equal(t, "Scotland", rows[1][4])
	assert.Equal(t, "85.5", rows[1][5])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "Cardiology", rows[1][7])
	assert.Equal(t, "Not available", rows[1][8])
	assert.Equal(t, "AI Analysis, Hospital Name Analysis", rows[1][10])
}
