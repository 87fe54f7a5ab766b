package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/config"
)

// nopLogger discards everything; converter tests assert on results, not logs.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const cumminsInterchange = "UNB+UNOA:2+CUMMINS+US+240115:1030'" +
	"BGM+241+DOC123'" +
	"LIN+1++PART-77:IN'" +
	"SCC+1'" +
	"QTY+1:10:PCE'" +
	"DTM+2:20240301:102'"

func testConfig(t *testing.T) *config.MainConfig {
	t.Helper()
	base := t.TempDir()
	return &config.MainConfig{
		InputDir:         filepath.Join(base, "input"),
		OutputDir:        filepath.Join(base, "output"),
		InputArchiveDir:  filepath.Join(base, "archive"),
		OutputNameFormat: "{stem}_{dialect}",
		MaxConcurrency:   1,
	}
}

func writeInput(t *testing.T, cfg *config.MainConfig, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0755))
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)
	inputPath := writeInput(t, cfg, "CMI_0042.edi", cumminsInterchange)

	result := New(inputPath, cfg, nil, nopLogger{}).Run()

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, "cummins", result.Dialect)
	assert.Equal(t, 1, result.Stats.Entries)
	assert.Equal(t, int64(10), result.Stats.TotalQuantity)

	require.Len(t, result.Outputs, 2)
	assert.FileExists(t, result.Outputs[0])
	assert.FileExists(t, result.Outputs[1])

	report, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.Contains(t, string(report), "PART-77")
	assert.Contains(t, string(report), "01.03.2024")

	// The processed input moved to the archive.
	assert.NoFileExists(t, inputPath)
	assert.FileExists(t, filepath.Join(cfg.InputArchiveDir, "CMI_0042.edi"))
}

func TestRunHonorsOutputToggles(t *testing.T) {
	off := false
	cfg := testConfig(t)
	cfg.WriteWorkbook = &off
	cfg.ArchiveInputs = &off
	inputPath := writeInput(t, cfg, "CMI_0042.edi", cumminsInterchange)

	result := New(inputPath, cfg, nil, nopLogger{}).Run()

	require.NoError(t, result.Error)
	require.Len(t, result.Outputs, 1)
	assert.True(t, strings.HasSuffix(result.Outputs[0], ".txt"))
	// Archival disabled: the input stays put.
	assert.FileExists(t, inputPath)
}

func TestRunPartnerConfigPatternOverridesDetection(t *testing.T) {
	cfg := testConfig(t)
	// Neutral name and content: only the partner pattern identifies the file.
	inputPath := writeInput(t, cfg, "inbound-4711.edi", "UNB+UNOA:2+S+R+240115:1030'")

	partnerConfigs := map[string]*config.PartnerConfig{
		"trwkob": {PartnerName: "TRW-KOB", Dialect: "trwkob",
			FileMatchingPatterns: []string{"inbound-*.edi"}},
	}

	result := New(inputPath, cfg, partnerConfigs, nopLogger{}).Run()

	require.NoError(t, result.Error)
	assert.Equal(t, "trwkob", result.Dialect)
}

func TestPickDialectOverlappingPatternsResolveDeterministically(t *testing.T) {
	cfg := testConfig(t)
	partnerConfigs := map[string]*config.PartnerConfig{
		"trwkob": {PartnerName: "TRW-KOB", Dialect: "trwkob",
			FileMatchingPatterns: []string{"shared-*.edi"}},
		"cummins": {PartnerName: "Cummins", Dialect: "cummins",
			FileMatchingPatterns: []string{"shared-*.edi"}},
	}

	// Map iteration order must not leak into the resolution: the fixed
	// dialect order always picks the same partner for an ambiguous match.
	for i := 0; i < 20; i++ {
		c := New("shared-feed.edi", cfg, partnerConfigs, nopLogger{})
		d, err := c.pickDialect("")
		require.NoError(t, err)
		assert.Equal(t, "cummins", d.Name)
	}
}

func TestRunForcedDialect(t *testing.T) {
	cfg := testConfig(t)
	inputPath := writeInput(t, cfg, "CMI_0042.edi", cumminsInterchange)

	c := New(inputPath, cfg, nil, nopLogger{})
	c.ForceDialect("minebea")
	result := c.Run()

	require.NoError(t, result.Error)
	assert.Equal(t, "minebea", result.Dialect)
}

func TestRunUnknownForcedDialectFails(t *testing.T) {
	cfg := testConfig(t)
	inputPath := writeInput(t, cfg, "CMI_0042.edi", cumminsInterchange)

	c := New(inputPath, cfg, nil, nopLogger{})
	c.ForceDialect("nonsense")
	result := c.Run()

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestRunUnidentifiableFileFails(t *testing.T) {
	cfg := testConfig(t)
	inputPath := writeInput(t, cfg, "notes.txt", "just some text")

	result := New(inputPath, cfg, nil, nopLogger{}).Run()

	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "unsupported file type")
}

func TestRunMissingInputFails(t *testing.T) {
	cfg := testConfig(t)

	result := New(filepath.Join(cfg.InputDir, "absent.edi"), cfg, nil, nopLogger{}).Run()

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
	assert.Empty(t, result.Outputs)
}

func TestOutputNameExpansion(t *testing.T) {
	cfg := testConfig(t)
	inputPath := writeInput(t, cfg, "CMI_0042.edi", cumminsInterchange)

	result := New(inputPath, cfg, nil, nopLogger{}).Run()

	require.NoError(t, result.Error)
	require.Len(t, result.Outputs, 2)
	assert.Equal(t, "CMI_0042_cummins.txt", filepath.Base(result.Outputs[0]))
	assert.Equal(t, "CMI_0042_cummins.xlsx", filepath.Base(result.Outputs[1]))
}
