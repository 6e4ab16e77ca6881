// =============================================================================
// EDI 834 Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - validation
//   - generator
//
// =============================================================================

package types

// =============================================================================
// CANONICAL FIELD NAMES
// =============================================================================

// Canonical field names for an enrollment record. The normalizer maps raw
// input column headers onto exactly this set; the validator and generator
// reference fields only by these names.
const (
	FieldEmployeeID       = "employee_id"
	FieldSSN              = "ssn"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldMiddleName       = "middle_name"
	FieldDOB              = "dob"
	FieldGender           = "gender"
	FieldAddress1         = "address1"
	FieldAddress2         = "address2"
	FieldCity             = "city"
	FieldState            = "state"
	FieldZip              = "zip"
	FieldPlanCode         = "plan_code"
	FieldCoverageStart    = "coverage_start"
	FieldCoverageEnd      = "coverage_end"
	FieldRelationship     = "relationship"
	FieldRelationshipCode = "relationship_code"
	FieldSubscriberID     = "subscriber_id"
)

// =============================================================================
// ENROLLMENT RECORD
// =============================================================================

// EnrollmentRecord is the canonical form of one input row. Every field is a
// string; an absent value is the empty string, never a missing key. Records
// are created once by the normalizer and are not modified afterwards.
type EnrollmentRecord struct {
	// EmployeeID is the employer-assigned identifier for the employee.
	EmployeeID string

	// SSN is the social security number with dashes and spaces removed.
	SSN string

	FirstName  string
	LastName   string
	MiddleName string

	// DOB is the date of birth in YYYYMMDD form, or "" when the source
	// value was absent or unparseable.
	DOB string

	// Gender is one of M, F, or U.
	Gender string

	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string

	// PlanCode is the benefit plan identifier (e.g. MED001).
	PlanCode string

	// CoverageStart and CoverageEnd are YYYYMMDD dates, "" when absent.
	CoverageStart string
	CoverageEnd   string

	// RelationshipCode is the X12 relationship code. The normalizer always
	// assigns a value; 18 (employee/self) is the default.
	RelationshipCode string

	// SubscriberID is the carrier-assigned subscriber number, if any.
	SubscriberID string

	// RowNumber is the 1-based row number in the source file. Row 1 is the
	// header, so data rows are always >= 2.
	RowNumber int
}

// Field returns the value of a canonical field by name. Unknown names return
// the empty string, matching the absent-value convention.
func (r *EnrollmentRecord) Field(name string) string {
	switch name {
	case FieldEmployeeID:
		return r.EmployeeID
	case FieldSSN:
		return r.SSN
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldMiddleName:
		return r.MiddleName
	case FieldDOB:
		return r.DOB
	case FieldGender:
		return r.Gender
	case FieldAddress1:
		return r.Address1
	case FieldAddress2:
		return r.Address2
	case FieldCity:
		return r.City
	case FieldState:
		return r.State
	case FieldZip:
		return r.Zip
	case FieldPlanCode:
		return r.PlanCode
	case FieldCoverageStart:
		return r.CoverageStart
	case FieldCoverageEnd:
		return r.CoverageEnd
	case FieldRelationshipCode:
		return r.RelationshipCode
	case FieldSubscriberID:
		return r.SubscriberID
	default:
		return ""
	}
}

// =============================================================================
// TABLE DATA
// =============================================================================

// TableData is the parser-level view of a tabular input file, shared by the
// CSV and XLSX parsers so the rest of the pipeline is format agnostic.
type TableData struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as header -> trimmed value maps.
	Rows []map[string]string

	// RowNumbers holds the original 1-based row number for each entry in
	// Rows (the header row counts as row 1).
	RowNumbers []int

	// SourceFile is the path to the input file.
	SourceFile string
}
