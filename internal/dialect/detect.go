// =============================================================================
// EDI DELFOR Converter - Dialect Detection
// =============================================================================
//
// Detection picks which dialect table to interpret a file with, based on
// substrings in the file name and the interchange content. Partner
// configurations can extend the file-name patterns; the built-in pattern
// lists cover the naming conventions the partners actually use.
//
// =============================================================================

package dialect

import (
	"path/filepath"
	"strings"
)

// detectPatterns lists, per dialect, the upper-cased substrings that identify
// a file as belonging to that partner. Both the file name and the content
// are checked.
var detectPatterns = []struct {
	name     string
	patterns []string
}{
	{"cummins", []string{"CUMMINS", "CMI", "DELFOR_CUMMINS", "CUMMINS_DELFOR"}},
	{"minebea", []string{"MINEBEA", "MINOL", "MINEBEA-MINOL", "MBM", "DELFOR_MINEBEA", "MINEBEA_DELFOR"}},
	{"trwkob", []string{"TRWKOB", "TRW-KOB", "TRW_KOB", "KOBALT", "DELFOR_TRWKOB", "TRWKOB_DELFOR"}},
}

// Detect picks the dialect for a file based on its name and content.
//
// PARAMETERS:
//   - fileName: The input file name (a full path is acceptable).
//   - content:  The raw interchange text.
//
// RETURNS:
//   - The detected dialect and true, or the zero Dialect and false when the
//     file matches no partner and does not look like an EDI interchange.
//
// DETECTION ORDER:
//  1. Partner-specific substrings in the file name or content.
//  2. A UNA/UNB service-segment prefix, which identifies a standard
//     interchange; minebea is the historical default for those.
func Detect(fileName, content string) (Dialect, bool) {
	name := strings.ToUpper(filepath.Base(fileName))
	upper := strings.ToUpper(content)

	for _, candidate := range detectPatterns {
		for _, pattern := range candidate.patterns {
			if strings.Contains(name, pattern) || strings.Contains(upper, pattern) {
				d, _ := ByName(candidate.name)
				return d, true
			}
		}
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "UNB") || strings.HasPrefix(trimmed, "UNA") {
		return Minebea(), true
	}

	return Dialect{}, false
}

// MatchExtra checks a file name against additional, configuration-provided
// glob patterns for one dialect.
func MatchExtra(fileName string, patterns []string) bool {
	base := filepath.Base(fileName)
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, base)
		if err != nil {
			// Invalid pattern, skip it.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
