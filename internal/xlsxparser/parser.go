// =============================================================================
// EDI 834 Generator - XLSX Parser Module
// =============================================================================
//
// This module reads enrollment rosters kept as XLSX workbooks into the same
// TableData shape the CSV parser produces, so the rest of the pipeline never
// knows which input format it came from. Only the first sheet is read; the
// first row of that sheet is the header row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/benefitsops/edi834/internal/types"
)

// Parse reads the first sheet of an XLSX workbook and returns the parsed
// table. Row numbering matches the CSV parser: the header is row 1 and data
// rows keep their original sheet position.
func Parse(filePath string) (*types.TableData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook sheet %q is empty", sheetName)
	}

	headers := cleanHeaders(rows[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("workbook sheet %q has no headers", sheetName)
	}

	data := &types.TableData{
		Headers:    headers,
		SourceFile: filePath,
	}

	for i, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(row) {
				rowMap[header] = strings.TrimSpace(row[col])
			} else {
				// excelize drops trailing empty cells from GetRows.
				rowMap[header] = ""
			}
		}

		data.Rows = append(data.Rows, rowMap)
		data.RowNumbers = append(data.RowNumbers, i+2)
	}

	return data, nil
}

// cleanHeaders trims header cells and drops trailing empty columns.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, 0, len(headers))
	for _, header := range headers {
		cleaned = append(cleaned, strings.TrimSpace(header))
	}

	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	allEmpty := true
	for _, h := range cleaned {
		if h != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return nil
	}

	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
