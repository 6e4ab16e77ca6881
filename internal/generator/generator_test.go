// =============================================================================
// EDI 834 Generator - Transaction Assembler Tests
// =============================================================================

package generator

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benefitsops/edi834/internal/segment"
	"github.com/benefitsops/edi834/internal/types"
)

// newTestGenerator returns a generator pinned to a fixed clock so control
// numbers and date stamps are deterministic.
func newTestGenerator(testMode bool) *Generator {
	g := New("ACME001", "INS999", testMode, zap.NewNop())

	fixed := time.Date(2026, 8, 26, 14, 30, 45, 0, time.UTC)
	g.now = func() time.Time { return fixed }
	g.controlNumber = controlNumber(fixed, 9)
	return g
}

// fullRecord exercises every conditional segment in the member loop.
func fullRecord() types.EnrollmentRecord {
	return types.EnrollmentRecord{
		EmployeeID:       "EMP001",
		SSN:              "123456789",
		FirstName:        "John",
		LastName:         "Doe",
		MiddleName:       "Q",
		DOB:              "19850115",
		Gender:           "M",
		Address1:         "123 Main St",
		Address2:         "Apt 4",
		City:             "Springfield",
		State:            "il",
		Zip:              "62701-1234",
		PlanCode:         "MED001",
		CoverageStart:    "20260101",
		CoverageEnd:      "20261231",
		RelationshipCode: "18",
		SubscriberID:     "SUB001",
		RowNumber:        2,
	}
}

// segmentsOf splits rendered EDI into individual segments (terminators
// stripped).
func segmentsOf(t *testing.T, edi string) []string {
	t.Helper()
	require.True(t, strings.HasSuffix(edi, segment.Terminator))
	return strings.Split(strings.TrimSuffix(edi, segment.Terminator), segment.Terminator)
}

// findSegments returns all segments whose tag matches.
func findSegments(segments []string, tag string) []string {
	var found []string
	for _, seg := range segments {
		if strings.HasPrefix(seg, tag+segment.ElementSeparator) {
			found = append(found, seg)
		}
	}
	return found
}

// elementAt returns the n-th element of a segment (1-based; 0 is the tag).
func elementAt(seg string, n int) string {
	parts := strings.Split(seg, segment.ElementSeparator)
	if n < len(parts) {
		return parts[n]
	}
	return ""
}

// =============================================================================
// ENVELOPE TESTS
// =============================================================================

func TestGenerateEnvelopeShape(t *testing.T) {
	g := newTestGenerator(true)
	edi := g.Generate([]types.EnrollmentRecord{fullRecord()})

	segments := segmentsOf(t, edi)

	assert.True(t, strings.HasPrefix(segments[0], "ISA*"))
	assert.True(t, strings.HasPrefix(segments[len(segments)-1], "IEA*"))

	result := segment.ValidateStructure(edi)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestGenerateUsageIndicator(t *testing.T) {
	testEDI := newTestGenerator(true).Generate(nil)
	prodEDI := newTestGenerator(false).Generate(nil)

	testISA := segmentsOf(t, testEDI)[0]
	prodISA := segmentsOf(t, prodEDI)[0]

	assert.Equal(t, "T", elementAt(testISA, 15))
	assert.Equal(t, "P", elementAt(prodISA, 15))
}

// The interchange control number is shared by ISA, GS, GE and IEA; the
// transaction control number is shared by ST and SE.
func TestGenerateControlNumbersEcho(t *testing.T) {
	g := newTestGenerator(true)
	segments := segmentsOf(t, g.Generate([]types.EnrollmentRecord{fullRecord()}))

	isa := findSegments(segments, "ISA")[0]
	gs := findSegments(segments, "GS")[0]
	st := findSegments(segments, "ST")[0]
	se := findSegments(segments, "SE")[0]
	ge := findSegments(segments, "GE")[0]
	iea := findSegments(segments, "IEA")[0]

	interchange := elementAt(isa, 13)
	assert.Equal(t, "826143045", interchange)
	assert.Equal(t, interchange, elementAt(gs, 6))
	assert.Equal(t, interchange, elementAt(ge, 2))
	assert.Equal(t, interchange, elementAt(iea, 2))

	transaction := elementAt(st, 2)
	assert.Equal(t, "3045", transaction)
	assert.Equal(t, transaction, elementAt(se, 2))
}

func TestGenerateFixedGroupCounts(t *testing.T) {
	g := newTestGenerator(true)
	segments := segmentsOf(t, g.Generate([]types.EnrollmentRecord{fullRecord(), fullRecord()}))

	assert.Equal(t, "1", elementAt(findSegments(segments, "GE")[0], 1))
	assert.Equal(t, "1", elementAt(findSegments(segments, "IEA")[0], 1))
}

// SE01 counts every segment from ST through SE inclusive.
func TestGenerateSECount(t *testing.T) {
	for _, recordCount := range []int{0, 1, 3, 10} {
		records := make([]types.EnrollmentRecord, recordCount)
		for i := range records {
			records[i] = fullRecord()
		}

		g := newTestGenerator(true)
		segments := segmentsOf(t, g.Generate(records))

		stIndex, seIndex := -1, -1
		for i, seg := range segments {
			if strings.HasPrefix(seg, "ST*") {
				stIndex = i
			}
			if strings.HasPrefix(seg, "SE*") {
				seIndex = i
			}
		}
		require.GreaterOrEqual(t, stIndex, 0)
		require.Greater(t, seIndex, stIndex)

		declared, err := strconv.Atoi(elementAt(segments[seIndex], 1))
		require.NoError(t, err)
		assert.Equal(t, seIndex-stIndex+1, declared, "records=%d", recordCount)
	}
}

func TestGenerateSponsorLoop(t *testing.T) {
	g := newTestGenerator(true)
	segments := segmentsOf(t, g.Generate(nil))

	sponsors := findSegments(segments, "NM1")
	require.Len(t, sponsors, 1)
	assert.Equal(t, "NM1*P5*2*ACME001*****FI*ACME001", sponsors[0])
}

func TestNewTruncatesLongIDs(t *testing.T) {
	g := New("THISSENDERIDISWAYTOOLONG", "R", true, nil)
	assert.Equal(t, "THISSENDERIDISW", g.senderID)
	assert.Len(t, g.senderID, 15)
}

// =============================================================================
// MEMBER LOOP TESTS
// =============================================================================

func TestMemberLoopFullRecord(t *testing.T) {
	record := fullRecord()
	segments := memberLoop(&record)

	expected := []string{
		"INS*Y*18*021*01*A***FT~",
		"REF*0F*SUB001~",
		"REF*1L*EMP001~",
		"DTP*348*D8*20260101~",
		"DTP*349*D8*20261231~",
		"NM1*IL*1*Doe*John*Q***34*123456789~",
		"N3*123 Main St*Apt 4~",
		"N4*Springfield*IL*62701~",
		"DMG*D8*19850115*M~",
		"HD*021**HLT*MED001*EMP~",
		"DTP*348*D8*20260101~",
	}
	assert.Equal(t, expected, segments)
}

// Optional segments vanish when their source data is absent; the loop
// shrinks instead of emitting empty placeholders.
func TestMemberLoopMinimalRecord(t *testing.T) {
	record := types.EnrollmentRecord{
		EmployeeID: "EMP002",
		LastName:   "Smith",
		FirstName:  "Jane",
		SSN:        "987654321",
	}
	segments := memberLoop(&record)

	expected := []string{
		"INS*Y*18*021*01*A***FT~",
		"REF*0F*EMP002~",
		"REF*1L*EMP002~",
		"NM1*IL*1*Smith*Jane****34*987654321~",
	}
	assert.Equal(t, expected, segments)
}

// REF 0F prefers the subscriber ID and falls back to the employee ID.
func TestMemberLoopSubscriberFallback(t *testing.T) {
	record := fullRecord()
	record.SubscriberID = ""

	segments := memberLoop(&record)
	refs := findSegments(segments, "REF")

	require.NotEmpty(t, refs)
	assert.Equal(t, "REF*0F*EMP001~", refs[0])
}

func TestMemberLoopDemographicsGates(t *testing.T) {
	record := fullRecord()
	record.DOB = ""
	record.Gender = ""

	segments := memberLoop(&record)
	assert.Empty(t, findSegments(segments, "DMG"))

	// Gender alone still emits DMG with an empty birth date.
	record.Gender = "F"
	segments = memberLoop(&record)
	dmg := findSegments(segments, "DMG")
	require.Len(t, dmg, 1)
	assert.Equal(t, "DMG*D8**F~", dmg[0])
}

func TestMemberLoopAddressGates(t *testing.T) {
	record := fullRecord()
	record.Address1 = ""

	segments := memberLoop(&record)
	assert.Empty(t, findSegments(segments, "N3"), "N3 requires address1")
	assert.Len(t, findSegments(segments, "N4"), 1, "N4 is independent of N3")

	record.City, record.State, record.Zip = "", "", ""
	segments = memberLoop(&record)
	assert.Empty(t, findSegments(segments, "N4"))
}

func TestMemberLoopPlanGatesHD(t *testing.T) {
	record := fullRecord()
	record.PlanCode = ""

	segments := memberLoop(&record)
	assert.Empty(t, findSegments(segments, "HD"))

	// Without HD the nested coverage DTP disappears too; only the
	// member-level 348/349 pair remains.
	dtps := findSegments(segments, "DTP")
	assert.Len(t, dtps, 2)
}

// Names are sanitized so embedded delimiters cannot corrupt the segment.
func TestMemberLoopEscapesNames(t *testing.T) {
	record := fullRecord()
	record.LastName = "DOE*JONES"
	record.FirstName = "JOHN~JIM"

	segments := memberLoop(&record)
	nm1 := findSegments(segments, "NM1")
	require.Len(t, nm1, 1)
	assert.Equal(t, "DOE JONES", elementAt(nm1[0], 3))
	assert.Equal(t, "JOHN JIM", elementAt(nm1[0], 4))
}

// Member loops are emitted in input order even though they are built
// concurrently.
func TestGenerateMemberOrder(t *testing.T) {
	records := make([]types.EnrollmentRecord, 20)
	for i := range records {
		records[i] = fullRecord()
		records[i].SubscriberID = "SUB" + strconv.Itoa(i)
	}

	g := newTestGenerator(true)
	segments := segmentsOf(t, g.Generate(records))

	var order []string
	for _, seg := range segments {
		if strings.HasPrefix(seg, "REF*0F*") {
			order = append(order, elementAt(seg, 2))
		}
	}

	require.Len(t, order, 20)
	for i, got := range order {
		assert.Equal(t, "SUB"+strconv.Itoa(i), got)
	}
}

func TestGenerateOneLoopPerRecord(t *testing.T) {
	records := []types.EnrollmentRecord{fullRecord(), fullRecord(), fullRecord()}

	g := newTestGenerator(true)
	segments := segmentsOf(t, g.Generate(records))

	assert.Len(t, findSegments(segments, "INS"), 3)

	memberNames := 0
	for _, seg := range findSegments(segments, "NM1") {
		if elementAt(seg, 1) == "IL" {
			memberNames++
		}
	}
	assert.Equal(t, 3, memberNames)
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestControlNumber(t *testing.T) {
	fixed := time.Date(2026, 8, 26, 14, 30, 45, 0, time.UTC)

	assert.Equal(t, "826143045", controlNumber(fixed, 9))
	assert.Equal(t, "3045", controlNumber(fixed, 4))
}

func TestZipBase(t *testing.T) {
	assert.Equal(t, "62701", zipBase("62701-1234"))
	assert.Equal(t, "62701", zipBase("62701"))
	assert.Equal(t, "", zipBase(""))
}
