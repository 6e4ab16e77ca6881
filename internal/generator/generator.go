// =============================================================================
// EDI 834 Generator - Transaction Assembler
// =============================================================================
//
// This module assembles the complete 834 interchange from validated
// enrollment records:
//
//   ISA / GS            interchange + functional group headers
//   ST / BGN / REF / DTP  transaction set header and preamble
//   NM1 (1000A)         plan sponsor loop
//   2000 member loops   one per enrollment record, in input order
//   SE / GE / IEA       trailers with self-referencing counts
//
// The assembler assumes its input already passed validation; it re-checks
// nothing at the field level and makes only presence/absence emission
// decisions. Each member loop is a pure function of its record, so loop
// construction fans out over a bounded worker pool and joins in input order
// before the counters are summed.
//
// One generated file always contains exactly one transaction set in exactly
// one functional group. The GE and IEA counts are fixed accordingly.
//
// =============================================================================

package generator

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benefitsops/edi834/internal/segment"
	"github.com/benefitsops/edi834/internal/types"
)

// =============================================================================
// MAINTENANCE CONSTANTS
// =============================================================================

const (
	// maintenanceTypeChange is the INS03/HD01 maintenance type code.
	maintenanceTypeChange = "021"

	// maintenanceReasonIDCard is the INS04 maintenance reason code.
	maintenanceReasonIDCard = "01"

	// benefitStatusActive is the INS05 benefit status code.
	benefitStatusActive = "A"

	// employmentStatusFullTime is the INS08 employment status code.
	employmentStatusFullTime = "FT"

	// coverageLevelEmployeeOnly is the HD05 coverage level code. Dependent
	// and family coverage levels are out of scope for this generator.
	coverageLevelEmployeeOnly = "EMP"

	// insuranceLineHealth is the HD03 insurance line code.
	insuranceLineHealth = "HLT"

	// dateFormatCCYYMMDD is the D8 date/time format qualifier.
	dateFormatCCYYMMDD = "D8"

	maxIDLength = 15

	// defaultWorkers bounds the member-loop construction pool.
	defaultWorkers = 4
)

// =============================================================================
// GENERATOR
// =============================================================================

// Generator assembles EDI 834 interchanges. The interchange control number
// and usage indicator are fixed at construction time; a Generator instance
// is intended for a single generation run and must not be shared across
// concurrent runs.
type Generator struct {
	senderID       string
	receiverID     string
	usageIndicator string

	// controlNumber is the 9-digit interchange control number shared by
	// ISA, GS, GE and IEA.
	controlNumber string

	workers int
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Generator. Sender and receiver IDs are truncated to 15
// characters here; space padding happens inside the ISA builder only.
func New(senderID, receiverID string, testMode bool, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	usage := segment.UsageProduction
	if testMode {
		usage = segment.UsageTest
	}

	g := &Generator{
		senderID:       truncate(senderID, maxIDLength),
		receiverID:     truncate(receiverID, maxIDLength),
		usageIndicator: usage,
		workers:        defaultWorkers,
		logger:         logger,
		now:            time.Now,
	}
	g.controlNumber = controlNumber(g.now(), 9)
	return g
}

// Generate assembles the complete interchange for the given records and
// returns the raw EDI text (no pretty-print newlines). Records are emitted
// in input order with no resequencing or deduplication.
func (g *Generator) Generate(records []types.EnrollmentRecord) string {
	var segments []string

	segments = append(segments, g.headerSegments()...)
	segments = append(segments, g.transactionSet(records)...)
	segments = append(segments, g.trailerSegments()...)

	g.logger.Debug("assembled interchange",
		zap.Int("records", len(records)),
		zap.Int("segments", len(segments)),
		zap.String("control_number", g.controlNumber))

	return strings.Join(segments, "")
}

// =============================================================================
// ENVELOPE
// =============================================================================

// headerSegments builds the ISA and GS headers, both stamped with the
// shared interchange control number.
func (g *Generator) headerSegments() []string {
	now := g.now()
	return []string{
		segment.FormatISA(
			g.senderID,
			g.receiverID,
			now.Format("060102"), // YYMMDD
			now.Format("1504"),   // HHMM
			g.controlNumber,
			g.usageIndicator,
		),
		segment.FormatGS(
			g.senderID,
			g.receiverID,
			now.Format("20060102"), // YYYYMMDD
			now.Format("1504"),
			g.controlNumber,
		),
	}
}

// trailerSegments closes the functional group and interchange. Counts are
// fixed at one transaction set and one functional group.
func (g *Generator) trailerSegments() []string {
	return []string{
		segment.FormatGE(1, g.controlNumber),
		segment.FormatIEA(1, g.controlNumber),
	}
}

// =============================================================================
// TRANSACTION SET
// =============================================================================

// transactionSet builds ST through SE. The SE count covers every segment
// from ST to SE inclusive and the SE control number echoes the ST.
func (g *Generator) transactionSet(records []types.EnrollmentRecord) []string {
	var segments []string

	transactionControl := controlNumber(g.now(), 4)
	segments = append(segments, segment.FormatST(transactionControl))

	now := g.now()
	bgnDate := now.Format("20060102")
	bgnTime := now.Format("150405")

	// BGN - Beginning segment: purpose original, action change.
	segments = append(segments, segment.Format("BGN", []string{
		"00",               // BGN01 transaction set purpose (original)
		transactionControl, // BGN02 reference number
		bgnDate,            // BGN03 date
		bgnTime,            // BGN04 time
		"ET",               // BGN05 time zone
		"",                 // BGN06 reference ID
		"",                 // BGN07 transaction type
		"4",                // BGN08 action code (change)
	}))

	// REF - Employer reference.
	segments = append(segments, segment.Format("REF", []string{
		"38", // employer's ID qualifier
		transactionControl,
	}))

	// DTP - File effective date.
	segments = append(segments, segment.Format("DTP", []string{
		"007", // effective date qualifier
		dateFormatCCYYMMDD,
		bgnDate,
	}))

	segments = append(segments, g.sponsorLoop()...)
	segments = append(segments, g.buildMemberLoops(records)...)

	// SE count: ST + BGN + REF + DTP + sponsor + members, plus the SE
	// segment itself.
	segmentCount := len(segments) + 1
	segments = append(segments, segment.FormatSE(segmentCount, transactionControl))

	return segments
}

// sponsorLoop builds the 1000A plan sponsor loop: a single NM1 naming the
// sender as a non-person entity with a federal tax ID qualifier.
func (g *Generator) sponsorLoop() []string {
	return []string{
		segment.Format("NM1", []string{
			"P5",       // NM101 entity identifier (plan sponsor)
			"2",        // NM102 entity type (non-person)
			g.senderID, // NM103 organization name
			"",         // NM104 first name
			"",         // NM105 middle name
			"",         // NM106 prefix
			"",         // NM107 suffix
			"FI",       // NM108 ID qualifier (federal taxpayer ID)
			g.senderID, // NM109 identification code
		}),
	}
}

// buildMemberLoops constructs the 2000 loop for every record concurrently
// and joins the results in input order.
func (g *Generator) buildMemberLoops(records []types.EnrollmentRecord) []string {
	loops := make([][]string, len(records))

	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup

	for i := range records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			loops[i] = memberLoop(&records[i])
		}(i)
	}
	wg.Wait()

	var segments []string
	for _, loop := range loops {
		segments = append(segments, loop...)
	}
	return segments
}

// =============================================================================
// MEMBER LOOP
// =============================================================================

// memberLoop builds the 2000 loop for one enrollment record. It is a pure
// function of the record: no shared state, no ordering dependency on other
// loops. Optional segments are emitted only when their source data is
// present; an absent value shrinks the loop rather than producing an empty
// placeholder segment.
func memberLoop(record *types.EnrollmentRecord) []string {
	var segments []string

	relationship := record.RelationshipCode
	if relationship == "" {
		relationship = "18"
	}

	// INS - Insured benefit (always emitted).
	segments = append(segments, segment.Format("INS", []string{
		"Y",                      // INS01 member-level detail applies
		relationship,             // INS02 relationship code
		maintenanceTypeChange,    // INS03 maintenance type
		maintenanceReasonIDCard,  // INS04 maintenance reason
		benefitStatusActive,      // INS05 benefit status
		"",                       // INS06 medicare plan code
		"",                       // INS07 COBRA qualifier
		employmentStatusFullTime, // INS08 employment status
	}))

	// REF 0F - Subscriber number: subscriber_id, else employee_id.
	if subscriber := firstNonEmpty(record.SubscriberID, record.EmployeeID); subscriber != "" {
		segments = append(segments, segment.Format("REF", []string{
			"0F",
			segment.EscapeDelimiters(subscriber),
		}))
	}

	// REF 1L - Group/policy number.
	if record.EmployeeID != "" {
		segments = append(segments, segment.Format("REF", []string{
			"1L",
			segment.EscapeDelimiters(record.EmployeeID),
		}))
	}

	// DTP 348/349 - Member-level coverage dates, each gated on its own field.
	if record.CoverageStart != "" {
		segments = append(segments, segment.Format("DTP", []string{
			"348", dateFormatCCYYMMDD, record.CoverageStart,
		}))
	}
	if record.CoverageEnd != "" {
		segments = append(segments, segment.Format("DTP", []string{
			"349", dateFormatCCYYMMDD, record.CoverageEnd,
		}))
	}

	// NM1 IL - Member name (always emitted).
	segments = append(segments, segment.Format("NM1", []string{
		"IL", // insured/subscriber
		"1",  // person
		segment.EscapeDelimiters(record.LastName),
		segment.EscapeDelimiters(record.FirstName),
		segment.EscapeDelimiters(record.MiddleName),
		"",   // prefix
		"",   // suffix
		"34", // SSN qualifier
		record.SSN,
	}))

	// N3 - Street address.
	if record.Address1 != "" {
		segments = append(segments, segment.Format("N3", []string{
			segment.EscapeDelimiters(record.Address1),
			segment.EscapeDelimiters(record.Address2),
		}))
	}

	// N4 - City/state/ZIP. The ZIP+4 extension is dropped, not validated.
	if record.City != "" || record.State != "" || record.Zip != "" {
		segments = append(segments, segment.Format("N4", []string{
			segment.EscapeDelimiters(record.City),
			strings.ToUpper(record.State),
			zipBase(record.Zip),
		}))
	}

	// DMG - Demographics.
	if record.DOB != "" || record.Gender != "" {
		gender := record.Gender
		if gender == "" {
			gender = "U"
		}
		segments = append(segments, segment.Format("DMG", []string{
			dateFormatCCYYMMDD,
			record.DOB,
			gender,
		}))
	}

	// HD - Health coverage, with its nested coverage begin date.
	if record.PlanCode != "" {
		segments = append(segments, segment.Format("HD", []string{
			maintenanceTypeChange,
			"",
			insuranceLineHealth,
			segment.EscapeDelimiters(record.PlanCode),
			coverageLevelEmployeeOnly,
		}))

		if record.CoverageStart != "" {
			segments = append(segments, segment.Format("DTP", []string{
				"348", dateFormatCCYYMMDD, record.CoverageStart,
			}))
		}
	}

	return segments
}

// =============================================================================
// HELPERS
// =============================================================================

// controlNumber derives a numeric control number of the given length from a
// timestamp, keeping the trailing digits.
func controlNumber(t time.Time, length int) string {
	ts := t.Format("20060102150405")
	if len(ts) >= length {
		return ts[len(ts)-length:]
	}
	return segment.PadField(ts, length, '0', segment.AlignRight)
}

func truncate(value string, max int) string {
	if len(value) > max {
		return value[:max]
	}
	return value
}

// zipBase strips the ZIP+4 extension, keeping the 5-digit base.
func zipBase(zip string) string {
	if i := strings.IndexByte(zip, '-'); i >= 0 {
		return zip[:i]
	}
	return zip
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
