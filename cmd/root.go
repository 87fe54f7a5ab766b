// =============================================================================
// EDI DELFOR Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'inspect') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ediconv)
//   ├── processCmd (ediconv process)
//   ├── inspectCmd (ediconv inspect)
//   └── versionCmd (ediconv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "ediconv",

	Short: "EDI DELFOR Converter - Decode partner delivery forecasts into schedules",

	Long: `EDI DELFOR Converter decodes flat, delimiter-based EDI DELFOR interchanges
from the supported trading partners (Cummins, Minebea, TRW-KOB) into
structured delivery-schedule records, rendered as plain-text reports and
XLSX workbooks with computed calendar weeks.

Key Features:
  - One shared segment interpreter, parameterized per partner dialect
  - Automatic dialect detection from file name and content
  - Robust decoding: malformed values degrade, they never abort a file
  - Concurrent processing with automatic input archival

Example Usage:
  ediconv process                      # Process all files in the input directory
  ediconv process --config ./my.yaml   # Use a custom configuration file
  ediconv inspect forecasts/cmi_1.edi  # Print the report for a single file`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
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
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
