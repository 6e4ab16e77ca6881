// =============================================================================
// EDI 834 Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the pipeline through
// validation and stops before assembly. It is the dry-run companion to
// 'generate': same parsing, same normalization, same rule set, no output
// file.
//
// COMMAND USAGE:
//   edi834gen validate --input enrollment.csv
//   edi834gen validate --input roster.xlsx --report errors.csv
//
// The command exits nonzero when any record fails validation, so it can be
// used as a gate in scripted workflows.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benefitsops/edi834/internal/converter"
	"github.com/benefitsops/edi834/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	validateInputPath  string
	validateReportPath string
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate enrollment data without generating EDI output",
	Long: `The validate command parses and normalizes an enrollment export, then
checks every record against the validation rule set. No EDI file is
written.

Use --report to save the full error list; the extension selects the
format (.json, .csv, or text).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command and its flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInputPath, "input", "i", "",
		"Input CSV or XLSX file with enrollment data")
	validateCmd.Flags().StringVar(&validateReportPath, "report", "",
		"Save the validation report to this file (text, json, or csv by extension)")

	validateCmd.MarkFlagRequired("input")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runValidate drives the validation-only pipeline for a single input file.
func runValidate() error {
	if !utils.FileExists(validateInputPath) {
		return fmt.Errorf("input file not found: %s", validateInputPath)
	}

	conv := converter.New(converter.Options{
		InputPath:  validateInputPath,
		RulesPath:  rulesFile,
		ReportPath: validateReportPath,
	}, logger)

	result := conv.ValidateOnly()
	if result.Error != nil {
		return result.Error
	}

	printValidationSummary(result.Validation)

	fmt.Printf("\n  Input File:        %s\n", result.InputFile)
	fmt.Printf("  Records Processed: %d\n", result.Stats.RecordsNormalized)
	if result.Stats.RowsSkipped > 0 {
		fmt.Printf("  Rows Skipped:      %d\n", result.Stats.RowsSkipped)
	}
	if validateReportPath != "" {
		fmt.Printf("  Report:            %s\n", validateReportPath)
	}

	if !result.Validation.Valid {
		return fmt.Errorf("validation failed: %d of %d records have errors",
			result.Validation.InvalidRecords, result.Validation.TotalRecords)
	}
	return nil
}
