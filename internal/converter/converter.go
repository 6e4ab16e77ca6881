// =============================================================================
// EDI 834 Generator - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for a single input file,
// from tabular parsing to the written EDI artifact:
//
//   1. Parse the input table (CSV or XLSX, chosen by extension)
//   2. Normalize rows into canonical enrollment records
//   3. Validate records against the rule set (generation gate)
//   4. Assemble the 834 interchange
//   5. Structural self-check of the generated envelope
//   6. Write the output file (only after full assembly)
//
// ERROR BOUNDARIES:
//   Input-structural problems (unreadable file, no header row) abort before
//   any record processing. Row-level problems are isolated by the
//   normalizer and surface as a skipped-row count. Business-rule violations
//   are reported, and generation is gated on zero violations. A structural
//   anomaly in the generated text signals a defect in the assembler itself
//   and is treated as fatal.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benefitsops/edi834/internal/config"
	"github.com/benefitsops/edi834/internal/csvparser"
	"github.com/benefitsops/edi834/internal/generator"
	"github.com/benefitsops/edi834/internal/segment"
	"github.com/benefitsops/edi834/internal/types"
	"github.com/benefitsops/edi834/internal/validation"
	"github.com/benefitsops/edi834/internal/xlsxparser"
	"github.com/benefitsops/edi834/pkg/utils"
)

// =============================================================================
// OPTIONS AND RESULT STRUCTURES
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// InputPath is the CSV or XLSX file to process.
	InputPath string

	// OutputPath is where the generated EDI file is written. Required for
	// generation, ignored by ValidateOnly.
	OutputPath string

	// SenderID and ReceiverID identify the interchange parties.
	SenderID   string
	ReceiverID string

	// TestMode selects the ISA usage indicator (T when true, P when false).
	TestMode bool

	// Pretty inserts a newline after each segment terminator in the output.
	Pretty bool

	// RulesPath points at the validation rules YAML. When the file is
	// absent the built-in defaults are used.
	RulesPath string

	// ReportPath, when set, writes the validation report there. Format is
	// chosen by extension (.json, .csv, else text).
	ReportPath string
}

// Result represents the outcome of a pipeline run.
type Result struct {
	// InputFile is the file that was processed.
	InputFile string

	// OutputFile is the generated EDI file; empty if generation did not
	// happen (failure or validate-only mode).
	OutputFile string

	// Success indicates the run completed without fatal errors and, for
	// full runs, produced an output file.
	Success bool

	// Error is the fatal error, nil on success.
	Error error

	// Validation is the aggregate validation result, present whenever the
	// pipeline got far enough to validate.
	Validation *validation.Result

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains processing statistics for one run.
type Stats struct {
	// RowsParsed is the number of data rows read from the input.
	RowsParsed int

	// RowsSkipped counts rows dropped by the normalizer's failure isolation.
	RowsSkipped int

	// RecordsNormalized is the number of canonical records produced.
	RecordsNormalized int

	// SegmentCount is the segment count of the generated interchange.
	SegmentCount int

	// ProcessingTime is the wall-clock duration of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs the enrollment-to-EDI pipeline for a single file.
type Converter struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Converter. A nil logger is replaced with a no-op logger.
func New(opts Options, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{opts: opts, logger: logger}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Run executes the full pipeline and writes the EDI artifact.
func (c *Converter) Run() Result {
	start := time.Now()
	result := Result{InputFile: c.opts.InputPath}

	records, res := c.prepare(&result)
	if res != nil {
		res.Stats.ProcessingTime = time.Since(start)
		return *res
	}

	// Generation gate: zero invalid records required.
	if !result.Validation.Valid {
		result.Error = fmt.Errorf("validation failed: %d of %d records have errors",
			result.Validation.InvalidRecords, result.Validation.TotalRecords)
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	if c.opts.OutputPath == "" {
		result.Error = fmt.Errorf("output path required for EDI generation")
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	// Assemble the interchange.
	gen := generator.New(c.opts.SenderID, c.opts.ReceiverID, c.opts.TestMode, c.logger)
	ediContent := gen.Generate(records)

	// Structural self-check. A failure here means the assembler itself is
	// broken, not the input data.
	structure := segment.ValidateStructure(ediContent)
	result.Stats.SegmentCount = structure.SegmentCount
	if !structure.Valid {
		result.Error = fmt.Errorf("generated EDI failed structural validation: %s",
			strings.Join(structure.Errors, "; "))
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	if c.opts.Pretty {
		ediContent = segment.PrettyPrint(ediContent)
	}

	// Write only after the full string is assembled; no partial files.
	if err := utils.WriteFile(c.opts.OutputPath, ediContent); err != nil {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	c.logger.Info("wrote EDI file",
		zap.String("path", c.opts.OutputPath),
		zap.Int("segments", structure.SegmentCount),
		zap.Int("records", len(records)))

	result.OutputFile = c.opts.OutputPath
	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// ValidateOnly executes the pipeline up to and including validation,
// skipping assembly entirely.
func (c *Converter) ValidateOnly() Result {
	start := time.Now()
	result := Result{InputFile: c.opts.InputPath}

	_, res := c.prepare(&result)
	if res != nil {
		res.Stats.ProcessingTime = time.Since(start)
		return *res
	}

	result.Success = result.Validation.Valid
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// prepare runs the shared front half of the pipeline: parse, normalize,
// load rules, validate, optionally write the report. On a fatal error it
// returns a non-nil Result to bubble up.
func (c *Converter) prepare(result *Result) ([]types.EnrollmentRecord, *Result) {
	// Parse the input table.
	data, err := c.parseInput()
	if err != nil {
		result.Error = err
		return nil, result
	}
	result.Stats.RowsParsed = len(data.Rows)
	c.logger.Debug("parsed input",
		zap.String("file", c.opts.InputPath),
		zap.Int("rows", len(data.Rows)),
		zap.Strings("headers", data.Headers))

	// Normalize rows into canonical records. Row-level failures are
	// isolated: the offending row is skipped and the batch continues.
	records, skipped := c.normalizeRows(data)
	result.Stats.RowsSkipped = skipped
	result.Stats.RecordsNormalized = len(records)

	// Load the rule set (built-in defaults when the file is absent).
	rules, err := config.Load(c.opts.RulesPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to load validation rules: %w", err)
		return nil, result
	}

	result.Validation = validation.ValidateRecords(records, rules)
	c.logger.Debug("validated records",
		zap.Int("valid", result.Validation.ValidRecords),
		zap.Int("invalid", result.Validation.InvalidRecords))

	if c.opts.ReportPath != "" {
		if err := validation.SaveReport(result.Validation, c.opts.ReportPath); err != nil {
			result.Error = err
			return nil, result
		}
		c.logger.Info("wrote validation report", zap.String("path", c.opts.ReportPath))
	}

	return records, nil
}

// parseInput selects the parser by file extension. XLSX workbooks and CSV
// exports produce the identical TableData shape.
func (c *Converter) parseInput() (*types.TableData, error) {
	switch strings.ToLower(filepath.Ext(c.opts.InputPath)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(c.opts.InputPath)
	default:
		return csvparser.Parse(c.opts.InputPath)
	}
}

// normalizeRows converts raw rows to records, isolating per-row failures.
func (c *Converter) normalizeRows(data *types.TableData) ([]types.EnrollmentRecord, int) {
	records := make([]types.EnrollmentRecord, 0, len(data.Rows))
	skipped := 0

	for i, row := range data.Rows {
		rowNumber := i + 2
		if i < len(data.RowNumbers) {
			rowNumber = data.RowNumbers[i]
		}

		record, ok := c.normalizeRow(row, rowNumber)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped
}

// normalizeRow wraps Normalize with panic recovery so one malformed row can
// never abort the batch.
func (c *Converter) normalizeRow(row map[string]string, rowNumber int) (record types.EnrollmentRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("skipping malformed row",
				zap.Int("row", rowNumber),
				zap.Any("cause", r))
			ok = false
		}
	}()

	return Normalize(row, rowNumber), true
}
