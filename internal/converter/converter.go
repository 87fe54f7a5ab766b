// =============================================================================
// EDI DELFOR Converter - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for a single interchange
// file:
//
//   1. Read the file permissively (invalid bytes replaced, not fatal)
//   2. Pick the dialect (partner config patterns, then content detection)
//   3. Run the segment interpreter
//   4. Write the text report and/or XLSX workbook
//   5. Archive the processed input file
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. The interpreter is a pure
//   function and the converter holds no shared mutable state, so files never
//   contend with each other.
//
// ERROR MODEL:
//   Only whole-file failures (unreadable input, unwritable output) surface
//   as errors; a readable file always yields a structured result, however
//   sparse. A failed read produces no partial output at all.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/config"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/dialect"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/interpreter"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/render"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// Dialect is the dialect the file was interpreted with.
	Dialect string

	// Outputs lists the generated output files.
	Outputs []string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Entries is the number of delivery-schedule entries produced.
	Entries int

	// TotalQuantity is the sum of all numeric entry quantities.
	TotalQuantity int64

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface consumed by the converter.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger writes leveled lines to stdout. Debug output is gated by the
// configured log level.
type defaultLogger struct {
	verbose bool
}

func (l *defaultLogger) log(level, msg string, args ...interface{}) {
	fmt.Printf("[%s] %s\n", level, fmt.Sprintf(msg, args...))
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		l.log("DEBUG", msg, args...)
	}
}
func (l *defaultLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args...) }
func (l *defaultLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args...) }
func (l *defaultLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args...) }

// NewLogger returns the default stdout logger. Debug lines are emitted when
// verbose is true or the configured level is "debug".
func NewLogger(level string, verbose bool) Logger {
	return &defaultLogger{verbose: verbose || level == "debug"}
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single EDI interchange file.
type Converter struct {
	// ediPath is the path to the input file.
	ediPath string

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	// partnerConfigs are the per-partner matching configurations, keyed by
	// dialect name.
	partnerConfigs map[string]*config.PartnerConfig

	// forcedDialect, when non-empty, bypasses detection.
	forcedDialect string

	// logger receives pipeline progress.
	logger Logger
}

// New creates a new Converter instance for one input file.
func New(ediPath string, mainConfig *config.MainConfig, partnerConfigs map[string]*config.PartnerConfig, logger Logger) *Converter {
	return &Converter{
		ediPath:        ediPath,
		mainConfig:     mainConfig,
		partnerConfigs: partnerConfigs,
		logger:         logger,
	}
}

// ForceDialect pins the dialect, bypassing pattern matching and content
// detection. Used by the inspect command's --dialect flag.
func (c *Converter) ForceDialect(name string) {
	c.forcedDialect = name
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.ediPath,
		Success:  false,
	}

	c.logger.Info("Processing file: %s", c.ediPath)

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================
	// A failed read surfaces as a user-visible failure with no partial
	// structured output.

	content, err := utils.ReadFileLossy(c.ediPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: PICK DIALECT
	// =========================================================================

	d, err := c.pickDialect(content)
	if err != nil {
		result.Error = err
		return result
	}
	result.Dialect = d.Name
	c.logger.Debug("Using dialect: %s", d.Name)

	// =========================================================================
	// STEP 3: INTERPRET
	// =========================================================================

	parsed := interpreter.New(d).Parse(content)
	result.Stats.Entries = len(parsed.Entries)
	result.Stats.TotalQuantity = render.TotalQuantity(parsed.Entries)
	c.logger.Debug("Interpreted %d schedule entries", len(parsed.Entries))

	// =========================================================================
	// STEP 4: WRITE OUTPUTS
	// =========================================================================

	if err := utils.EnsureDir(c.mainConfig.OutputDir); err != nil {
		result.Error = err
		return result
	}

	if c.mainConfig.ReportEnabled() {
		reportPath := c.outputPath(d.Name, ".txt")
		if err := os.WriteFile(reportPath, []byte(render.Report(parsed)), 0644); err != nil {
			result.Error = fmt.Errorf("failed to write report: %w", err)
			return result
		}
		result.Outputs = append(result.Outputs, reportPath)
		c.logger.Debug("Wrote report: %s", reportPath)
	}

	if c.mainConfig.WorkbookEnabled() {
		workbookPath := c.outputPath(d.Name, ".xlsx")
		if err := xlsxwriter.Write(parsed, workbookPath); err != nil {
			result.Error = fmt.Errorf("failed to write workbook: %w", err)
			return result
		}
		result.Outputs = append(result.Outputs, workbookPath)
		c.logger.Debug("Wrote workbook: %s", workbookPath)
	}

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================

	if c.mainConfig.ArchiveEnabled() {
		if _, err := utils.MoveFile(c.ediPath, c.mainConfig.InputArchiveDir); err != nil {
			// Archival failure does not fail the processing.
			c.logger.Warn("Failed to archive input: %v", err)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// pickDialect resolves the dialect for the file: a forced dialect wins, then
// partner-config file patterns, then filename/content detection. Partner
// configs are checked in the fixed dialect.All order so a file matching more
// than one partner's patterns resolves the same way on every run.
func (c *Converter) pickDialect(content string) (dialect.Dialect, error) {
	if c.forcedDialect != "" {
		d, ok := dialect.ByName(c.forcedDialect)
		if !ok {
			return dialect.Dialect{}, fmt.Errorf("unknown dialect %q", c.forcedDialect)
		}
		return d, nil
	}

	for _, d := range dialect.All() {
		pc, ok := c.partnerConfigs[d.Name]
		if ok && dialect.MatchExtra(c.ediPath, pc.FileMatchingPatterns) {
			return d, nil
		}
	}

	d, ok := dialect.Detect(c.ediPath, content)
	if !ok {
		return dialect.Dialect{}, fmt.Errorf("unsupported file type: %s", filepath.Base(c.ediPath))
	}
	return d, nil
}

// outputPath builds the output file path for one output kind.
func (c *Converter) outputPath(dialectName, extension string) string {
	name := utils.ExpandOutputName(c.mainConfig.OutputNameFormat, c.ediPath, dialectName, extension)
	return filepath.Join(c.mainConfig.OutputDir, name)
}
