// =============================================================================
// EDI 834 Generator - Record Normalizer
// =============================================================================
//
// This module maps heterogeneous input rows onto the canonical
// EnrollmentRecord shape. Legacy HR exports disagree on column naming
// ("dob" vs "date_of_birth" vs "birthdate"), so each canonical field carries
// an ordered list of accepted aliases; the first alias present in the row
// wins. Matching is case-insensitive against a lookup table built once at
// package init — no per-row reflection.
//
// The normalizer formats, it does not judge: an unparseable date becomes an
// empty string (absent), not an error. Error detection is the validator's
// job. The one exception is the absent-value defaulting the 834 mapping
// requires: gender always normalizes to M/F/U and relationship always
// normalizes to a code, with U and 18 as the respective defaults.
//
// =============================================================================

package converter

import (
	"regexp"
	"strings"
	"time"

	"github.com/benefitsops/edi834/internal/types"
)

// =============================================================================
// FIELD ALIAS TABLE
// =============================================================================

// fieldAliases maps each canonical field to its accepted input column names,
// in match-priority order. The canonical name itself is always first.
var fieldAliases = map[string][]string{
	types.FieldEmployeeID:    {"employee_id", "employeeid", "emp_id", "id"},
	types.FieldSSN:           {"ssn", "social_security_number", "social_security"},
	types.FieldFirstName:     {"first_name", "firstname", "fname"},
	types.FieldLastName:      {"last_name", "lastname", "lname"},
	types.FieldMiddleName:    {"middle_name", "middlename", "mname"},
	types.FieldDOB:           {"dob", "date_of_birth", "birth_date", "birthdate"},
	types.FieldGender:        {"gender", "sex"},
	types.FieldAddress1:      {"address1", "address_line1", "street"},
	types.FieldAddress2:      {"address2", "address_line2"},
	types.FieldCity:          {"city"},
	types.FieldState:         {"state"},
	types.FieldZip:           {"zip", "zipcode", "zip_code", "postal_code"},
	types.FieldPlanCode:      {"plan_code", "plancode", "plan"},
	types.FieldCoverageStart: {"coverage_start", "coverage_start_date", "effective_date", "start_date"},
	types.FieldCoverageEnd:   {"coverage_end", "coverage_end_date", "termination_date", "end_date"},
	types.FieldRelationship:  {"relationship", "relation"},
	types.FieldSubscriberID:  {"subscriber_id", "subscriberid", "member_id"},
}

// relationshipCodes maps spelled-out relationships to X12 codes.
var relationshipCodes = map[string]string{
	"EMPLOYEE":  "18",
	"SELF":      "18",
	"SPOUSE":    "01",
	"CHILD":     "19",
	"DEPENDENT": "19",
}

// defaultRelationshipCode is used when the input value is absent or
// unrecognized (employee/self).
const defaultRelationshipCode = "18"

var eightDigits = regexp.MustCompile(`^\d{8}$`)

// ssnStripper removes the separators commonly embedded in SSNs.
var ssnStripper = strings.NewReplacer("-", "", " ", "")

// =============================================================================
// NORMALIZATION FUNCTIONS
// =============================================================================

// Normalize converts one raw input row into a canonical EnrollmentRecord.
// rowNumber is the 1-based position in the source file (header is row 1).
func Normalize(rawRow map[string]string, rowNumber int) types.EnrollmentRecord {
	get := func(field string) string {
		return lookupField(rawRow, field)
	}

	record := types.EnrollmentRecord{
		EmployeeID:    get(types.FieldEmployeeID),
		SSN:           ssnStripper.Replace(get(types.FieldSSN)),
		FirstName:     get(types.FieldFirstName),
		LastName:      get(types.FieldLastName),
		MiddleName:    get(types.FieldMiddleName),
		DOB:           NormalizeDate(get(types.FieldDOB)),
		Gender:        NormalizeGender(get(types.FieldGender)),
		Address1:      get(types.FieldAddress1),
		Address2:      get(types.FieldAddress2),
		City:          get(types.FieldCity),
		State:         get(types.FieldState),
		Zip:           get(types.FieldZip),
		PlanCode:      get(types.FieldPlanCode),
		CoverageStart: NormalizeDate(get(types.FieldCoverageStart)),
		CoverageEnd:   NormalizeDate(get(types.FieldCoverageEnd)),
		SubscriberID:  get(types.FieldSubscriberID),
		RowNumber:     rowNumber,
	}

	record.RelationshipCode = NormalizeRelationship(get(types.FieldRelationship))

	return record
}

// lookupField resolves a canonical field against a raw row using the alias
// table. Keys are compared case-insensitively; the first alias with a
// non-empty value wins. Absent fields resolve to "".
func lookupField(rawRow map[string]string, field string) string {
	aliases := fieldAliases[field]
	if len(aliases) == 0 {
		return ""
	}

	// Build a lowercased view of the row keys. Rows are small (~20 cols),
	// so this stays cheap.
	lowered := make(map[string]string, len(rawRow))
	for key, value := range rawRow {
		lowered[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	for _, alias := range aliases {
		if value, ok := lowered[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}

// NormalizeDate converts MM/DD/YYYY dates to YYYYMMDD. A value that is
// already exactly 8 digits is passed through unchanged; anything else
// (including the empty string) normalizes to "" — the date is treated as
// absent, never as an error.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if t, err := time.Parse("01/02/2006", value); err == nil {
		return t.Format("20060102")
	}

	if eightDigits.MatchString(value) {
		return value
	}

	return ""
}

// NormalizeGender maps free-form gender values to the X12 codes M, F, or U.
// Anything unrecognized, including an absent value, becomes U.
func NormalizeGender(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "M", "MALE":
		return "M"
	case "F", "FEMALE":
		return "F"
	default:
		return "U"
	}
}

// NormalizeRelationship maps a spelled-out relationship to its X12 code.
// Unrecognized or absent input defaults to 18 (employee/self), so the
// relationship code is never empty.
func NormalizeRelationship(value string) string {
	if code, ok := relationshipCodes[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return code
	}
	return defaultRelationshipCode
}
