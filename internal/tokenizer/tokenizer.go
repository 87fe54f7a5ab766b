// =============================================================================
// EDI DELFOR Converter - Segment Tokenizer Module
// =============================================================================
//
// This module splits raw interchange text into an ordered sequence of
// segments and each segment into ordered fields and components, per the fixed
// EDIFACT default delimiter grammar:
//
//   '  terminates a segment
//   +  separates fields within a segment
//   :  separates components (sub-fields) within a field
//   ?  releases the following delimiter character (makes it literal)
//
// FEATURES:
//   - Release characters are stripped from field content, not just skipped,
//     so "ACME?+CO" tokenizes to the literal value "ACME+CO"
//   - Leading/trailing blank segments are skipped silently
//   - Malformed input never fails: a segment with fewer fields than a
//     handler expects simply carries no information for the missing
//     positions (see types.Segment.Field / Component)
//
// =============================================================================

package tokenizer

import (
	"strings"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

// =============================================================================
// DELIMITER GRAMMAR
// =============================================================================

// Delimiters defines the delimiter grammar used to split an interchange.
type Delimiters struct {
	// SegmentTerminator ends one segment.
	SegmentTerminator rune

	// FieldSeparator splits a segment into fields.
	FieldSeparator rune

	// ComponentSeparator splits a field into components.
	ComponentSeparator rune

	// ReleaseChar makes the following delimiter character literal.
	ReleaseChar rune
}

// Default returns the EDIFACT default delimiter grammar used by all three
// partner dialects.
func Default() Delimiters {
	return Delimiters{
		SegmentTerminator:  '\'',
		FieldSeparator:     '+',
		ComponentSeparator: ':',
		ReleaseChar:        '?',
	}
}

// =============================================================================
// TOKENIZER FUNCTIONS
// =============================================================================

// Tokenize splits raw interchange text into segments using the default
// delimiter grammar.
func Tokenize(content string) []types.Segment {
	return TokenizeWith(content, Default())
}

// TokenizeWith splits raw interchange text into segments using a custom
// delimiter grammar.
//
// PARAMETERS:
//   - content: The raw interchange text.
//   - delims:  The delimiter grammar.
//
// RETURNS:
//   - The ordered list of non-empty, whitespace-trimmed segments. Empty or
//     whitespace-only input yields an empty (nil) slice, never an error.
func TokenizeWith(content string, delims Delimiters) []types.Segment {
	raws := splitEscaped(content, delims.SegmentTerminator, delims.ReleaseChar)

	var segments []types.Segment
	for _, raw := range raws {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		seg := splitSegment(raw, delims)
		if seg.Tag == "" {
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}

// splitSegment splits one raw segment into its tag and fields.
func splitSegment(raw string, delims Delimiters) types.Segment {
	parts := splitEscaped(raw, delims.FieldSeparator, delims.ReleaseChar)
	if len(parts) == 0 {
		return types.Segment{}
	}

	seg := types.Segment{Tag: strings.TrimSpace(unescape(parts[0], delims.ReleaseChar))}

	for _, part := range parts[1:] {
		comps := splitEscaped(part, delims.ComponentSeparator, delims.ReleaseChar)
		field := types.Field{
			Raw:        unescape(part, delims.ReleaseChar),
			Components: make([]string, len(comps)),
		}
		for i, c := range comps {
			field.Components[i] = unescape(c, delims.ReleaseChar)
		}
		seg.Fields = append(seg.Fields, field)
	}

	return seg
}

// splitEscaped splits s on sep, honoring the release character: a separator
// immediately preceded by the release character is literal content, not a
// split point. The release characters themselves are left in place so that
// nested splits (fields, then components) see them too; unescape removes
// them once splitting is done.
func splitEscaped(s string, sep, release rune) []string {
	var parts []string
	var cur strings.Builder
	released := false

	for _, r := range s {
		switch {
		case released:
			cur.WriteRune(r)
			released = false
		case r == release:
			cur.WriteRune(r)
			released = true
		case r == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, cur.String())

	return parts
}

// unescape strips release characters from field content, keeping the
// character each one protected. A trailing release character with nothing
// after it is dropped.
func unescape(s string, release rune) string {
	if !strings.ContainsRune(s, release) {
		return s
	}

	var out strings.Builder
	released := false
	for _, r := range s {
		if released {
			out.WriteRune(r)
			released = false
			continue
		}
		if r == release {
			released = true
			continue
		}
		out.WriteRune(r)
	}

	return out.String()
}
