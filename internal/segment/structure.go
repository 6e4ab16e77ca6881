// =============================================================================
// EDI 834 Generator - Structural Validation & Pretty Printing
// =============================================================================
//
// Post-generation sanity checks and human-readability helpers for rendered
// EDI text. ValidateStructure is a structural smoke test, not a grammar
// complete X12 parser: it confirms the envelope shape (ISA first, IEA last,
// all six envelope tags present) without checking nesting, counts, or
// element-level validity.
//
// =============================================================================

package segment

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// PRETTY PRINTING
// =============================================================================

// PrettyPrint inserts a newline after each segment terminator for human
// legibility. The transformation is reversible via StripNewlines.
func PrettyPrint(edi string) string {
	segments := splitSegments(edi)
	if len(segments) == 0 {
		return ""
	}

	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = seg + Terminator
	}
	return strings.Join(lines, "\n")
}

// StripNewlines removes the line breaks added by PrettyPrint so the content
// can be re-validated or parsed as raw EDI.
func StripNewlines(edi string) string {
	edi = strings.ReplaceAll(edi, "\r", "")
	return strings.ReplaceAll(edi, "\n", "")
}

// splitSegments splits raw EDI text on the segment terminator, dropping
// empty fragments (the trailing terminator produces one).
func splitSegments(edi string) []string {
	parts := strings.Split(edi, Terminator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// =============================================================================
// STRUCTURAL VALIDATION
// =============================================================================

// StructureResult reports the outcome of a structural envelope check.
type StructureResult struct {
	// Valid is true when no structural errors were found.
	Valid bool `json:"valid"`

	// Errors lists the structural problems found, in detection order.
	Errors []string `json:"errors"`

	// Warnings lists non-fatal observations.
	Warnings []string `json:"warnings"`

	// SegmentCount is the number of non-empty segments in the content.
	SegmentCount int `json:"segment_count"`
}

// requiredEnvelopeTags are the six envelope segments every generated
// interchange must contain.
var requiredEnvelopeTags = []string{
	ISASegmentID, GSSegmentID, STSegmentID,
	SESegmentID, GESegmentID, IEASegmentID,
}

// ValidateStructure checks rendered EDI text for a well-formed envelope.
// Pretty-print newlines are stripped before inspection.
func ValidateStructure(edi string) StructureResult {
	result := StructureResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	segments := splitSegments(StripNewlines(edi))
	result.SegmentCount = len(segments)

	if len(segments) == 0 || !strings.HasPrefix(segments[0], ISASegmentID) {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing ISA header segment")
	}

	if len(segments) == 0 || !strings.HasPrefix(segments[len(segments)-1], IEASegmentID) {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing IEA trailer segment")
	}

	// Collect the tag set.
	tags := make(map[string]bool, len(segments))
	for _, seg := range segments {
		if idx := strings.Index(seg, ElementSeparator); idx > 0 {
			tags[seg[:idx]] = true
		}
	}

	for _, required := range requiredEnvelopeTags {
		if !tags[required] {
			result.Valid = false
			result.Errors = append(result.Errors, "Missing required segment: "+required)
		}
	}

	return result
}

// =============================================================================
// DEBUG OUTPUT
// =============================================================================

// jsonSegment is the JSON debug representation of one segment.
type jsonSegment struct {
	Segment  string   `json:"segment"`
	Elements []string `json:"elements"`
}

// ToJSON converts rendered EDI content to an indented JSON array of
// tag/elements pairs. Intended for debugging only.
func ToJSON(edi string) (string, error) {
	segments := splitSegments(StripNewlines(edi))

	structure := make([]jsonSegment, 0, len(segments))
	for _, seg := range segments {
		parts := strings.Split(seg, ElementSeparator)
		if len(parts) < 2 {
			continue
		}
		structure = append(structure, jsonSegment{
			Segment:  parts[0],
			Elements: parts[1:],
		})
	}

	data, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
