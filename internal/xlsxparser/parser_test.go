// =============================================================================
// EDI 834 Generator - XLSX Parser Tests
// =============================================================================

package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an XLSX file with the given rows on the first sheet
// and returns its path.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"employee_id", "first_name", "last_name"},
		{"EMP001", "John", "Doe"},
		{"EMP002", "Jane", "Smith"},
	})

	data, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"employee_id", "first_name", "last_name"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "EMP001", data.Rows[0]["employee_id"])
	assert.Equal(t, "Smith", data.Rows[1]["last_name"])
	assert.Equal(t, []int{2, 3}, data.RowNumbers)
	assert.Equal(t, path, data.SourceFile)
}

// Empty sheet rows are skipped but sheet row numbers are preserved, matching
// the CSV parser's behavior.
func TestParseSkipsEmptyRowsKeepsNumbers(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"employee_id", "first_name"},
		{"EMP001", "John"},
		{"", ""},
		{"EMP003", "Ann"},
	})

	data, err := Parse(path)
	require.NoError(t, err)

	require.Len(t, data.Rows, 2)
	assert.Equal(t, []int{2, 4}, data.RowNumbers)
	assert.Equal(t, "EMP003", data.Rows[1]["employee_id"])
}

// Cells excelize drops from short rows come back as empty strings.
func TestParseShortRow(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"employee_id", "first_name", "last_name"},
		{"EMP001", "John"},
	})

	data, err := Parse(path)
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "John", data.Rows[0]["first_name"])
	assert.Equal(t, "", data.Rows[0]["last_name"])
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestParseHeaderOnlySheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"employee_id", "first_name"},
	})

	data, err := Parse(path)
	require.NoError(t, err)
	assert.Empty(t, data.Rows)
}
