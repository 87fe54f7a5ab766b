// =============================================================================
// EDI DELFOR Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which is the main command for
// converting EDI interchanges. It orchestrates the batch pipeline.
//
// COMMAND USAGE:
//   ediconv process [flags]
//
// FLAGS:
//   --single      : Process only a single file (specify with --file)
//   --file        : Path to a specific file to process (used with --single)
//   --dialect     : Force a dialect instead of detecting it
//
// PROCESSING PIPELINE:
//   1. Load configuration files
//   2. Discover EDI files in the input directory
//   3. For each file (concurrently):
//      a. Read permissively and pick the dialect
//      b. Run the segment interpreter
//      c. Write the text report and XLSX workbook
//      d. Archive the input file
//   4. Generate summary report
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/config"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/converter"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// forceDialect forces a dialect instead of detecting one per file.
var forceDialect string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process EDI DELFOR files and convert them to reports and workbooks",
	Long: `The process command scans the input directory for EDI interchange files,
picks the partner dialect for each (partner configuration patterns first,
then filename/content detection), and converts them into plain-text reports
and XLSX workbooks.

Processing is done concurrently. Each file is processed independently, and
errors in one file do not affect the processing of others.

On successful processing:
  - The generated outputs are placed in the output directory
  - The original interchange is moved to the input archive

On error:
  - The original file remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	// --single flag: Process only a single file.
	processCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	// --file flag: Path to a specific file to process.
	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process (used with --single)",
	)

	// --dialect flag: Force a dialect for all processed files.
	processCmd.Flags().StringVar(
		&forceDialect,
		"dialect",
		"",
		"Force a dialect (cummins, minebea, trwkob) instead of detecting it",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess is the main function that orchestrates the batch pipeline.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== EDI DELFOR Converter ===")
	fmt.Println("Loading configuration...")

	mainConfig, err := loadMainConfig()
	if err != nil {
		return err
	}

	partnerConfigs, err := config.LoadPartnerConfigs(mainConfig.ConfigsDir)
	if err != nil {
		return fmt.Errorf("failed to load partner configs: %w", err)
	}

	fmt.Printf("Loaded %d partner configuration(s)\n", len(partnerConfigs))

	logger := converter.NewLogger(mainConfig.LogLevel, verbose)

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if singleFile {
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		inputFiles = []string{filePath}
	} else {
		fmt.Println("Discovering input files...")
		inputFiles, err = discoverInputFiles(mainConfig.InputDir)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No EDI files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Process each file in a separate goroutine, bounded by the configured
	// concurrency limit. Use a channel to collect results.

	fmt.Println("Processing files...")

	var wg sync.WaitGroup
	results := make(chan converter.Result, len(inputFiles))
	limiter := make(chan struct{}, mainConfig.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(filePath string) {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			conv := converter.New(filePath, mainConfig, partnerConfigs, logger)
			if forceDialect != "" {
				conv.ForceDialect(forceDialect)
			}
			results <- conv.Run()
		}(file)
	}

	// Close the results channel when all goroutines are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS AND PRINT SUMMARY
	// =========================================================================

	var successCount, errorCount int

	for result := range results {
		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s [%s] -> %s (%d entries)\n",
				filepath.Base(result.FilePath), result.Dialect,
				strings.Join(baseNames(result.Outputs), ", "), result.Stats.Entries)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(inputFiles))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadMainConfig loads the main config file, falling back to defaults when
// the default config file is simply not present.
func loadMainConfig() (*config.MainConfig, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && cfgFile == "config.yaml" {
			return config.DefaultMainConfig(), nil
		}
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	return mainConfig, nil
}

// discoverInputFiles scans the input directory for EDI interchange files.
// Files with an .edi or .txt extension are picked up; partner mailboxes
// deliver both.
func discoverInputFiles(inputDir string) ([]string, error) {
	var files []string

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".edi", ".txt":
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// baseNames maps file paths to their base names for compact summary lines.
func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
