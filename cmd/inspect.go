// =============================================================================
// EDI DELFOR Converter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which parses a single interchange
// file and prints the text report (document header, trading partners,
// delivery-schedule table and statistics) to stdout without writing any
// output files or touching the archive.
//
// COMMAND USAGE:
//   ediconv inspect FILE [--dialect NAME]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/dialect"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/interpreter"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/render"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/pkg/utils"
	"github.com/spf13/cobra"
)

// inspectDialect forces a dialect instead of detecting one.
var inspectDialect string

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Parse a single EDI file and print its report",
	Long: `The inspect command decodes one interchange file and prints the resulting
report to stdout. Nothing is written to the output directory and the input
file is not archived, which makes it the tool of choice for checking an
unfamiliar partner file before running a batch.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

// init registers the inspect command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(inspectCmd)

	// --dialect flag: Force a dialect instead of detecting it.
	inspectCmd.Flags().StringVar(
		&inspectDialect,
		"dialect",
		"",
		"Force a dialect (cummins, minebea, trwkob) instead of detecting it",
	)
}

// runInspect decodes one file and prints its report.
func runInspect(path string) error {
	content, err := utils.ReadFileLossy(path)
	if err != nil {
		return err
	}

	var d dialect.Dialect
	if inspectDialect != "" {
		var ok bool
		d, ok = dialect.ByName(inspectDialect)
		if !ok {
			return fmt.Errorf("unknown dialect %q", inspectDialect)
		}
	} else {
		var ok bool
		d, ok = dialect.Detect(path, content)
		if !ok {
			return fmt.Errorf("unsupported file type: %s", path)
		}
	}

	result := interpreter.New(d).Parse(content)

	fmt.Printf("Dialect: %s\n\n", d.Name)
	fmt.Print(render.Report(result))

	return nil
}
