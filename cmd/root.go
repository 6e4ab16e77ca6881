// =============================================================================
// EDI 834 Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (edi834gen)
//   ├── generateCmd (edi834gen generate)
//   ├── validateCmd (edi834gen validate)
//   └── versionCmd (edi834gen version)
//
// The root command owns the global flags (--rules, --verbose) and the
// construction of the shared zap logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL FLAGS AND STATE
// =============================================================================

// rulesFile holds the path to the validation rules YAML. When the file does
// not exist the built-in default rule set is used.
var rulesFile string

// verbose enables debug logging when set to true.
var verbose bool

// logger is the shared zap logger, built in the persistent pre-run so every
// subcommand sees the --verbose flag.
var logger *zap.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edi834gen",
	Short: "EDI 834 Generator - Convert benefits enrollment data to ANSI X12 834",

	Long: `EDI 834 Generator converts employee benefits enrollment data (CSV or XLSX)
into a compliant ANSI X12 834 (005010X220A1) benefit enrollment file.

The pipeline normalizes loosely structured input columns into canonical
enrollment records, validates them against a configurable rule set, and
assembles the full interchange envelope with self-consistent control
numbers and segment counts.

Example Usage:
  edi834gen generate -i enrollment.csv -o benefits_834.edi
  edi834gen generate -i roster.xlsx -o out.edi --sender ACME001 --receiver INS999
  edi834gen validate -i enrollment.csv --report errors.csv`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = buildLogger(verbose)
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// buildLogger constructs the shared logger: a development config with debug
// level under --verbose, otherwise a quiet production config writing to
// stderr.
func buildLogger(verbose bool) *zap.Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&rulesFile,
		"rules",
		"rules.yaml",
		"Path to the validation rules file (built-in defaults when absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
