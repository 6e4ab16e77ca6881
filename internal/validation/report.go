// =============================================================================
// EDI 834 Generator - Validation Report Rendering
// =============================================================================
//
// Three interchangeable renderings of the same aggregate validation result:
//
//   text   banner-style report for the console or a .txt artifact
//   json   structured dump of the Result as-is
//   csv    flat form, one line per individual error
//
// =============================================================================

package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// =============================================================================
// RENDERING
// =============================================================================

// Render formats a validation result in the requested format. Unknown
// formats fall back to text.
func Render(result *Result, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render JSON report: %w", err)
		}
		return string(data), nil

	case FormatCSV:
		return renderCSV(result), nil

	default:
		return renderText(result), nil
	}
}

// renderCSV emits one line per individual error, so a record with three
// errors yields three rows.
func renderCSV(result *Result) string {
	lines := []string{"Record,Row,Employee ID,Error"}
	for _, entry := range result.Errors {
		for _, msg := range entry.Errors {
			lines = append(lines, fmt.Sprintf("%d,%d,%s,%q",
				entry.Record, entry.RowNumber, entry.EmployeeID, msg))
		}
	}
	return strings.Join(lines, "\n")
}

func renderText(result *Result) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString("VALIDATION REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Records: %d\n", result.TotalRecords)
	fmt.Fprintf(&b, "Valid Records: %d\n", result.ValidRecords)
	fmt.Fprintf(&b, "Invalid Records: %d\n", result.InvalidRecords)
	b.WriteString("\n")

	if len(result.Errors) > 0 {
		b.WriteString("ERRORS:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, entry := range result.Errors {
			fmt.Fprintf(&b, "\nRecord #%d (Row %d, Employee ID: %s):\n",
				entry.Record, entry.RowNumber, entry.EmployeeID)
			for _, msg := range entry.Errors {
				fmt.Fprintf(&b, "  - %s\n", msg)
			}
		}
	} else {
		b.WriteString("No errors found. All records are valid!\n")
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// =============================================================================
// SAVING
// =============================================================================

// FormatForPath picks a report format from a file extension: .json and .csv
// select their formats, anything else is text.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// SaveReport renders the result and writes it to path, choosing the format
// from the file extension.
func SaveReport(result *Result, path string) error {
	report, err := Render(result, FormatForPath(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
