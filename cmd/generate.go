// =============================================================================
// EDI 834 Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full pipeline:
// parse -> normalize -> validate -> assemble -> structural check -> write.
//
// COMMAND USAGE:
//   edi834gen generate --input enrollment.csv --output benefits_834.edi
//
// FLAGS:
//   --input, -i    : Input CSV or XLSX file with enrollment data (required)
//   --output, -o   : Output EDI 834 file path
//   --sender       : Sender ID (up to 15 characters)
//   --receiver     : Receiver ID (up to 15 characters)
//   --production   : Generate a production file (default is test mode)
//   --pretty       : Pretty print EDI output with line breaks
//   --report       : Save the validation report (format from extension)
//
// Generation is gated on validation: any invalid record stops the run
// before assembly, with exit code 1.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benefitsops/edi834/internal/converter"
	"github.com/benefitsops/edi834/internal/validation"
	"github.com/benefitsops/edi834/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputPath  string
	outputPath string
	senderID   string
	receiverID string
	production bool
	pretty     bool
	reportPath string
)

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an EDI 834 file from enrollment data",
	Long: `The generate command reads a tabular enrollment export (CSV or XLSX),
normalizes and validates every record, and assembles a compliant ANSI X12
834 interchange.

Generation is gated on data quality: if any record fails validation, no
EDI file is written. Use the validate command (or --report) to inspect the
failures first.

If --output is omitted, a name is derived from the {uuid} pattern in the
current directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the generate command and its flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&inputPath, "input", "i", "",
		"Input CSV or XLSX file with enrollment data")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output EDI 834 file path")
	generateCmd.Flags().StringVar(&senderID, "sender", "SENDER",
		"Sender ID (up to 15 characters)")
	generateCmd.Flags().StringVar(&receiverID, "receiver", "RECEIVER",
		"Receiver ID (up to 15 characters)")
	generateCmd.Flags().BoolVarP(&production, "production", "p", false,
		"Generate a production file (default is test mode)")
	generateCmd.Flags().BoolVar(&pretty, "pretty", false,
		"Pretty print EDI output with line breaks")
	generateCmd.Flags().StringVar(&reportPath, "report", "",
		"Save the validation report to this file (text, json, or csv by extension)")

	generateCmd.MarkFlagRequired("input")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate drives the converter for a single input file.
func runGenerate() error {
	if !utils.FileExists(inputPath) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	out := outputPath
	if out == "" {
		out = utils.GenerateOutputName("{uuid}", ".edi")
	}

	conv := converter.New(converter.Options{
		InputPath:  inputPath,
		OutputPath: out,
		SenderID:   senderID,
		ReceiverID: receiverID,
		TestMode:   !production,
		Pretty:     pretty,
		RulesPath:  rulesFile,
		ReportPath: reportPath,
	}, logger)

	result := conv.Run()
	printValidationSummary(result.Validation)

	if result.Error != nil {
		return result.Error
	}

	mode := "Test"
	if production {
		mode = "Production"
	}

	fmt.Println("\n✓ Generation Complete")
	fmt.Printf("  Input File:        %s\n", result.InputFile)
	fmt.Printf("  Output File:       %s\n", result.OutputFile)
	fmt.Printf("  Records Processed: %d\n", result.Stats.RecordsNormalized)
	if result.Stats.RowsSkipped > 0 {
		fmt.Printf("  Rows Skipped:      %d\n", result.Stats.RowsSkipped)
	}
	fmt.Printf("  Segments:          %d\n", result.Stats.SegmentCount)
	fmt.Printf("  Mode:              %s\n", mode)
	fmt.Printf("  Sender ID:         %s\n", senderID)
	fmt.Printf("  Receiver ID:       %s\n", receiverID)
	fmt.Printf("  Duration:          %s\n", result.Stats.ProcessingTime.Round(1e6))

	return nil
}

// printValidationSummary prints the pass/fail line for a validation result.
func printValidationSummary(result *validation.Result) {
	if result == nil {
		return
	}
	if result.Valid {
		fmt.Printf("✓ All %d records validated successfully\n", result.ValidRecords)
		return
	}

	fmt.Printf("✗ Validation failed: %d of %d records have errors\n",
		result.InvalidRecords, result.TotalRecords)

	// Show the first few failures inline; the full list goes to --report.
	const maxShown = 5
	for i, entry := range result.Errors {
		if i == maxShown {
			fmt.Printf("  ... and %d more record(s) with errors (use --report for the full list)\n",
				len(result.Errors)-maxShown)
			break
		}
		fmt.Printf("  Record #%d (Row %d, Employee ID: %s):\n",
			entry.Record, entry.RowNumber, entry.EmployeeID)
		for _, msg := range entry.Errors {
			fmt.Printf("    - %s\n", msg)
		}
	}
}
