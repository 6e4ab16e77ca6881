// =============================================================================
// EDI 834 Generator - Envelope Segments
// =============================================================================
//
// Fixed-layout builders for the six X12 envelope segments:
//
//   ISA / IEA   interchange header and trailer
//   GS  / GE    functional group header and trailer
//   ST  / SE    transaction set header and trailer
//
// The positional element order and constant values below are mandated by the
// 005010X220A1 implementation guide and are not configurable; any deviation
// breaks conformance.
//
// =============================================================================

package segment

import "strconv"

// =============================================================================
// SEGMENT TAGS
// =============================================================================

const (
	ISASegmentID = "ISA"
	IEASegmentID = "IEA"
	GSSegmentID  = "GS"
	GESegmentID  = "GE"
	STSegmentID  = "ST"
	SESegmentID  = "SE"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

// ISA element lengths. The ISA is the only fixed-width segment in X12;
// each element must be exactly this long.
const (
	isaLenAuthInfo      = 10
	isaLenSecurityInfo  = 10
	isaLenSenderID      = 15
	isaLenReceiverID    = 15
	isaLenControlNumber = 9
)

const (
	// idQualifierMutual is the ZZ "mutually defined" interchange ID qualifier.
	idQualifierMutual = "ZZ"

	// controlVersion is the interchange control version number (ISA12).
	controlVersion = "00501"

	// functionalIDBenefitEnrollment is the GS01 code for 834 transaction sets.
	functionalIDBenefitEnrollment = "BE"

	// responsibleAgencyX12 is the GS07 responsible agency code.
	responsibleAgencyX12 = "X"

	// VersionCode identifies the 005010X220A1 implementation convention,
	// stamped on GS08 and ST03.
	VersionCode = "005010X220A1"

	// TransactionSetID834 is the benefit enrollment transaction set code.
	TransactionSetID834 = "834"
)

// Usage indicators for ISA15.
const (
	UsageTest       = "T"
	UsageProduction = "P"
)

// =============================================================================
// HEADER BUILDERS
// =============================================================================

// FormatISA builds the ISA Interchange Control Header.
//
// date must be YYMMDD and time HHMM. The control number is zero-padded to
// 9 digits, sender and receiver IDs are space-padded to 15 characters, and
// the usage indicator is "T" (test) or "P" (production).
func FormatISA(senderID, receiverID, date, time, controlNumber, usageIndicator string) string {
	elements := []string{
		"00",                                // ISA01 authorization info qualifier
		PadField("", isaLenAuthInfo, ' ', AlignLeft),     // ISA02 authorization information
		"00",                                // ISA03 security info qualifier
		PadField("", isaLenSecurityInfo, ' ', AlignLeft), // ISA04 security information
		idQualifierMutual,                   // ISA05 sender ID qualifier
		PadField(senderID, isaLenSenderID, ' ', AlignLeft),     // ISA06 sender ID
		idQualifierMutual,                   // ISA07 receiver ID qualifier
		PadField(receiverID, isaLenReceiverID, ' ', AlignLeft), // ISA08 receiver ID
		date,                                // ISA09 interchange date (YYMMDD)
		time,                                // ISA10 interchange time (HHMM)
		RepetitionSeparator,                 // ISA11 repetition separator
		controlVersion,                      // ISA12 control version number
		PadField(controlNumber, isaLenControlNumber, '0', AlignRight), // ISA13 control number
		"0",                                 // ISA14 acknowledgment requested
		usageIndicator,                      // ISA15 usage indicator
		ComponentSeparator,                  // ISA16 component element separator
	}
	return Format(ISASegmentID, elements)
}

// FormatGS builds the GS Functional Group Header.
//
// date must be YYYYMMDD; time may be HHMM or HHMMSS.
func FormatGS(senderCode, receiverCode, date, time, controlNumber string) string {
	elements := []string{
		functionalIDBenefitEnrollment, // GS01 functional identifier code
		senderCode,                    // GS02 application sender's code
		receiverCode,                  // GS03 application receiver's code
		date,                          // GS04 date (YYYYMMDD)
		time,                          // GS05 time
		controlNumber,                 // GS06 group control number
		responsibleAgencyX12,          // GS07 responsible agency code
		VersionCode,                   // GS08 version/release/industry ID
	}
	return Format(GSSegmentID, elements)
}

// FormatST builds the ST Transaction Set Header for an 834.
func FormatST(controlNumber string) string {
	elements := []string{
		TransactionSetID834, // ST01 transaction set identifier
		controlNumber,       // ST02 transaction set control number
		VersionCode,         // ST03 implementation convention reference
	}
	return Format(STSegmentID, elements)
}

// =============================================================================
// TRAILER BUILDERS
// =============================================================================

// FormatSE builds the SE Transaction Set Trailer. segmentCount must include
// the ST header and the SE itself; controlNumber must echo the ST.
func FormatSE(segmentCount int, controlNumber string) string {
	elements := []string{
		strconv.Itoa(segmentCount), // SE01 number of included segments
		controlNumber,              // SE02 transaction set control number
	}
	return Format(SESegmentID, elements)
}

// FormatGE builds the GE Functional Group Trailer. controlNumber must echo
// the GS.
func FormatGE(transactionCount int, controlNumber string) string {
	elements := []string{
		strconv.Itoa(transactionCount), // GE01 number of transaction sets
		controlNumber,                  // GE02 group control number
	}
	return Format(GESegmentID, elements)
}

// FormatIEA builds the IEA Interchange Control Trailer. The control number
// must echo the ISA and is zero-padded to 9 digits.
func FormatIEA(groupCount int, controlNumber string) string {
	elements := []string{
		strconv.Itoa(groupCount), // IEA01 number of functional groups
		PadField(controlNumber, isaLenControlNumber, '0', AlignRight), // IEA02 control number
	}
	return Format(IEASegmentID, elements)
}
