// =============================================================================
// EDI DELFOR Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EDI DELFOR Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   ediconv process        - Process all EDI files in the input directory
//   ediconv inspect FILE   - Parse a single file and print the text report
//   ediconv version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - configs/       : Contains partner-specific YAML configurations
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/EDI-DELFOR-conversion/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
