// =============================================================================
// EDI 834 Generator - Main Entry Point
// =============================================================================
//
// Converts employee benefits enrollment data (CSV or XLSX) into compliant
// ANSI X12 834 (005010X220A1) benefit enrollment files.
//
// All command handling is delegated to the cmd package.
//
// =============================================================================

package main

import "github.com/benefitsops/edi834/cmd"

func main() {
	cmd.Execute()
}
