// =============================================================================
// EDI 834 Generator - Segment Formatter
// =============================================================================
//
// This module renders individual EDI segments: a short tag followed by
// delimiter-separated elements and a segment terminator. It also owns field
// padding and the delimiter escaping policy for free-text element values.
//
// DELIMITERS:
//   The X12 005010 defaults are used throughout the generator:
//     *   element separator
//     ~   segment terminator
//     :   component element separator
//     ^   repetition separator
//
// ESCAPING POLICY:
//   X12 005010 defines no escape character, so a delimiter occurring inside
//   a free-text value cannot be escaped on the wire. EscapeDelimiters
//   replaces each occurrence with a single space. This is the only escaping
//   policy in the codebase; callers must route all free-text element values
//   through it before segment assembly.
//
// =============================================================================

package segment

import (
	"strings"
)

// =============================================================================
// DELIMITER CONSTANTS
// =============================================================================

const (
	// ElementSeparator separates elements within a segment.
	ElementSeparator = "*"

	// Terminator closes a segment.
	Terminator = "~"

	// ComponentSeparator separates components within a composite element.
	ComponentSeparator = ":"

	// RepetitionSeparator separates repetitions of an element.
	RepetitionSeparator = "^"
)

// =============================================================================
// ALIGNMENT
// =============================================================================

// Alignment selects which side of a padded field the value is anchored to.
type Alignment int

const (
	// AlignLeft anchors the value on the left; padding is added on the right.
	AlignLeft Alignment = iota

	// AlignRight anchors the value on the right; padding is added on the left.
	AlignRight
)

// =============================================================================
// SEGMENT FORMATTING
// =============================================================================

// Format renders a segment with the default X12 delimiters.
//
// Empty elements are preserved as empty strings, so two adjacent separators
// on the wire mean "no value" rather than an error.
func Format(tag string, elements []string) string {
	return FormatWith(tag, elements, ElementSeparator, Terminator)
}

// FormatWith renders a segment with explicit delimiters:
//
//	tag + sep + join(elements, sep) + terminator
//
// The formatter does not escape delimiters inside element values; that is
// the caller's responsibility via EscapeDelimiters.
func FormatWith(tag string, elements []string, elementSeparator, segmentTerminator string) string {
	var b strings.Builder
	b.WriteString(tag)
	for _, elem := range elements {
		b.WriteString(elementSeparator)
		b.WriteString(elem)
	}
	b.WriteString(segmentTerminator)
	return b.String()
}

// =============================================================================
// FIELD PADDING
// =============================================================================

// PadField pads or truncates value to exactly length characters.
//
// Values longer than length are truncated. Shorter values are padded with
// padChar on the side opposite the alignment anchor: AlignLeft pads on the
// right, AlignRight pads on the left. A zero or negative length returns the
// empty string (truncation semantics, not an error).
func PadField(value string, length int, padChar byte, align Alignment) string {
	if length <= 0 {
		return ""
	}
	if len(value) >= length {
		return value[:length]
	}

	padding := strings.Repeat(string(padChar), length-len(value))
	if align == AlignRight {
		return padding + value
	}
	return value + padding
}

// =============================================================================
// DELIMITER ESCAPING
// =============================================================================

// ediDelimiterReplacer maps each reserved delimiter to a space.
var ediDelimiterReplacer = strings.NewReplacer(
	ElementSeparator, " ",
	Terminator, " ",
	ComponentSeparator, " ",
)

// EscapeDelimiters sanitizes a free-text element value by replacing any
// occurrence of the element separator, segment terminator, or component
// separator with a space.
func EscapeDelimiters(value string) string {
	return ediDelimiterReplacer.Replace(value)
}
