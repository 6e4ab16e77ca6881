// =============================================================================
// EDI 834 Generator - Validation Engine
// =============================================================================
//
// This module validates normalized enrollment records against the configured
// rule set before EDI generation. Validation never throws for data-quality
// problems: errors are collected per record and rolled up into an aggregate
// result, and the caller decides whether to gate generation on it.
//
// A field-level check only runs when the field is present (non-empty);
// required-field presence is its own check. All checks run unconditionally
// for every record, so ordering affects only message sequencing, never the
// validity outcome.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/benefitsops/edi834/internal/config"
	"github.com/benefitsops/edi834/internal/types"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// RecordErrors holds the validation failures for one record.
type RecordErrors struct {
	// Record is the 1-based index of the record in the batch.
	Record int `json:"record"`

	// RowNumber is the record's row in the source file.
	RowNumber int `json:"row_number"`

	// EmployeeID identifies the record for humans; "N/A" when absent.
	EmployeeID string `json:"employee_id"`

	// Errors lists the human-readable failure messages.
	Errors []string `json:"errors"`
}

// Result is the aggregate outcome of validating a batch of records.
//
// Invariants: Valid == (InvalidRecords == 0) and
// ValidRecords + InvalidRecords == TotalRecords.
type Result struct {
	Valid          bool           `json:"valid"`
	TotalRecords   int            `json:"total_records"`
	ValidRecords   int            `json:"valid_records"`
	InvalidRecords int            `json:"invalid_records"`
	Errors         []RecordErrors `json:"errors"`
}

// =============================================================================
// DEFAULT PATTERNS AND ENUMERATIONS
// =============================================================================

const (
	defaultZipPattern   = `^\d{5}(-\d{4})?$`
	defaultStatePattern = `^[A-Z]{2}$`
)

var (
	defaultGenders       = []string{"M", "F", "U"}
	defaultRelationships = []string{"01", "18", "19", "53"}

	ssnPattern  = regexp.MustCompile(`^\d{9}$`)
	datePattern = regexp.MustCompile(`^\d{8}$`)
)

// dateFields are the record fields carrying YYYYMMDD dates.
var dateFields = []string{
	types.FieldDOB,
	types.FieldCoverageStart,
	types.FieldCoverageEnd,
}

// =============================================================================
// BATCH VALIDATION
// =============================================================================

// ValidateRecords validates a batch of enrollment records. A nil rule set
// falls back to the built-in defaults.
func ValidateRecords(records []types.EnrollmentRecord, rules *config.RuleSet) *Result {
	if rules == nil {
		rules = config.DefaultRuleSet()
	}

	result := &Result{
		Valid:        true,
		TotalRecords: len(records),
		Errors:       []RecordErrors{},
	}

	for i := range records {
		record := &records[i]
		recordErrors := ValidateRecord(record, rules)

		if len(recordErrors) > 0 {
			result.InvalidRecords++
			result.Valid = false

			employeeID := record.EmployeeID
			if employeeID == "" {
				employeeID = "N/A"
			}

			result.Errors = append(result.Errors, RecordErrors{
				Record:     i + 1,
				RowNumber:  record.RowNumber,
				EmployeeID: employeeID,
				Errors:     recordErrors,
			})
		} else {
			result.ValidRecords++
		}
	}

	return result
}

// =============================================================================
// RECORD VALIDATION
// =============================================================================

// ValidateRecord runs every rule against one record and returns the list of
// error messages. An empty list means the record is valid.
func ValidateRecord(record *types.EnrollmentRecord, rules *config.RuleSet) []string {
	var errors []string

	// Required fields.
	for _, field := range rules.RequiredFields {
		if record.Field(field) == "" {
			errors = append(errors, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	// SSN: exactly 9 digits after the normalizer's dash/space stripping.
	if record.SSN != "" && !ssnPattern.MatchString(record.SSN) {
		errors = append(errors, fmt.Sprintf("Invalid SSN format: %s", record.SSN))
	}

	// Dates: 8 digits and a real calendar date.
	for _, field := range dateFields {
		value := record.Field(field)
		if value != "" && !isValidDate(value) {
			errors = append(errors, fmt.Sprintf(
				"Invalid date format for %s: %s (expected YYYYMMDD)", field, value))
		}
	}

	// Plan code allow-list. An empty list disables the check.
	if record.PlanCode != "" && len(rules.PlanCodes) > 0 {
		if !contains(rules.PlanCodes, record.PlanCode) {
			errors = append(errors, fmt.Sprintf("Invalid plan code: %s", record.PlanCode))
		}
	}

	// Field length limits.
	for field, maxLength := range rules.MaxLengths {
		value := record.Field(field)
		if value != "" && len(value) > maxLength {
			errors = append(errors, fmt.Sprintf(
				"Field %s exceeds maximum length of %d", field, maxLength))
		}
	}

	// ZIP code pattern.
	if record.Zip != "" {
		if !matchPattern(rules.Pattern("zip", defaultZipPattern), record.Zip) {
			errors = append(errors, fmt.Sprintf("Invalid ZIP code format: %s", record.Zip))
		}
	}

	// State code pattern, checked against the upper-cased value.
	if record.State != "" {
		if !matchPattern(rules.Pattern("state", defaultStatePattern), strings.ToUpper(record.State)) {
			errors = append(errors, fmt.Sprintf(
				"Invalid state code: %s (expected 2-letter state code)", record.State))
		}
	}

	// Gender enumeration.
	if record.Gender != "" {
		if !contains(rules.Values("gender", defaultGenders), record.Gender) {
			errors = append(errors, fmt.Sprintf("Invalid gender code: %s", record.Gender))
		}
	}

	// Relationship code enumeration.
	if record.RelationshipCode != "" {
		if !contains(rules.Values("relationship_code", defaultRelationships), record.RelationshipCode) {
			errors = append(errors, fmt.Sprintf(
				"Invalid relationship code: %s", record.RelationshipCode))
		}
	}

	// Coverage date ordering. Dates are canonicalized to YYYYMMDD, so
	// lexicographic order equals chronological order.
	if record.CoverageStart != "" && record.CoverageEnd != "" {
		if record.CoverageStart > record.CoverageEnd {
			errors = append(errors, fmt.Sprintf(
				"Coverage start date (%s) is after end date (%s)",
				record.CoverageStart, record.CoverageEnd))
		}
	}

	return errors
}

// =============================================================================
// HELPERS
// =============================================================================

// isValidDate reports whether value is an 8-digit string that parses as a
// real calendar date under YYYYMMDD.
func isValidDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("20060102", value)
	return err == nil
}

// matchPattern compiles and applies a configured regex. An invalid pattern
// fails closed (treated as a non-match).
func matchPattern(pattern, value string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
