// =============================================================================
// EDI 834 Generator - CSV Parser Module
// =============================================================================
//
// This module reads enrollment CSV exports into the shared TableData shape.
// It is deliberately lenient about the input: variable column counts, lazy
// quoting, and stray whitespace are all tolerated, because the normalizer
// and validator downstream are the layers that judge data quality.
//
// The only fatal conditions here are input-structural: the file cannot be
// opened, cannot be read as CSV, or has no header row. Everything else is a
// data problem, not a parse problem.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/benefitsops/edi834/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// The first row is the header row. Data rows are returned as header -> value
// maps with whitespace trimmed; rows whose cells are all empty are skipped.
// Row numbers are 1-based file positions (the header is row 1, so the first
// data row is row 2) and are preserved across skipped rows.
func Parse(filePath string) (*types.TableData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	configureReader(reader)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV file has no headers")
	}

	data := &types.TableData{
		Headers:    headers,
		SourceFile: filePath,
	}

	for i, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(row) {
				rowMap[header] = strings.TrimSpace(row[col])
			} else {
				// Column missing in this row.
				rowMap[header] = ""
			}
		}

		data.Rows = append(data.Rows, rowMap)
		data.RowNumbers = append(data.RowNumbers, i+2)
	}

	return data, nil
}

// configureReader applies the lenient read settings used for enrollment
// exports.
func configureReader(reader *csv.Reader) {
	// Allow variable number of fields per row; short rows are padded with
	// empty values during extraction.
	reader.FieldsPerRecord = -1

	// Allow quotes that don't follow strict CSV rules.
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = true
}

// cleanHeaders trims header values and drops trailing empty columns.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, 0, len(headers))
	for _, header := range headers {
		cleaned = append(cleaned, strings.TrimSpace(header))
	}

	// Trailing empty headers are common in hand-edited exports.
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

// =============================================================================
// STRUCTURE PRE-CHECK
// =============================================================================

// StructureInfo is the result of a structural pre-check on an input file.
type StructureInfo struct {
	// Valid is false when the file is unreadable or has no header row.
	Valid bool

	// Errors lists fatal structural problems.
	Errors []string

	// Warnings lists non-fatal observations (e.g. no data rows).
	Warnings []string

	// Headers are the detected column headers.
	Headers []string

	// RowCount is the number of non-empty data rows.
	RowCount int
}

// ValidateStructure inspects a CSV file's structure without normalizing its
// contents: header presence, column names, and data row count.
func ValidateStructure(filePath string) StructureInfo {
	info := StructureInfo{Valid: true}

	data, err := Parse(filePath)
	if err != nil {
		info.Valid = false
		info.Errors = append(info.Errors, err.Error())
		return info
	}

	info.Headers = data.Headers
	info.RowCount = len(data.Rows)

	if info.RowCount == 0 {
		info.Warnings = append(info.Warnings, "file contains no data rows")
	}

	return info
}
