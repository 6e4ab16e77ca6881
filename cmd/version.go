// =============================================================================
// EDI 834 Generator - Version Command
// =============================================================================
//
// This file defines the 'version' command, which prints build information.
// Version and BuildDate are intended to be set at build time via ldflags:
//
//   go build -ldflags "-X github.com/benefitsops/edi834/cmd.Version=1.0.0 \
//                      -X github.com/benefitsops/edi834/cmd.BuildDate=2026-08-26"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edi834gen version %s\n", Version)
		fmt.Printf("  Build Date: %s\n", BuildDate)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  Platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

// init registers the version command.
func init() {
	rootCmd.AddCommand(versionCmd)
}
