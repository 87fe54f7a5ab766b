// =============================================================================
// EDI DELFOR Converter - Schedule Finalizer Module
// =============================================================================
//
// Small shared utilities applied to finalized schedule entries before they
// reach the presentation and export layers:
//   - a deduplicated part-number index (first occurrence wins per part)
//   - a stable display ordering by effective date, undated entries last
//   - the ISO calendar-week derivation used by the workbook export
//
// The "DD.MM.YYYY" string format is the hard contract between the
// interpreter's date formatting and everything in this file.
//
// =============================================================================

package schedule

import (
	"sort"
	"time"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

// layoutDate is the canonical date layout of the output contract.
const layoutDate = "02.01.2006"

// =============================================================================
// PART INDEX
// =============================================================================

// Part is one deduplicated part-number index record.
type Part struct {
	// PartNumber identifies the part.
	PartNumber string

	// Description is the description of the first entry seen for the part.
	Description string
}

// PartIndex derives the part-number index from finalized entries. The first
// occurrence wins per part number; entries without a part number are not
// indexed. The returned slice preserves first-seen order, which keeps the
// index deterministic across runs.
func PartIndex(entries []types.DeliveryScheduleEntry) []Part {
	seen := make(map[string]bool)
	var parts []Part

	for _, entry := range entries {
		if entry.PartNumber == "" || seen[entry.PartNumber] {
			continue
		}
		seen[entry.PartNumber] = true
		parts = append(parts, Part{
			PartNumber:  entry.PartNumber,
			Description: entry.Description,
		})
	}

	return parts
}

// =============================================================================
// DISPLAY ORDERING
// =============================================================================

// SortEntries returns a copy of the entries in display/export order:
// ascending by parsed effective date, with undated or unparsable entries
// after every dated entry, keeping their original relative order among
// themselves. The input slice is not modified.
func SortEntries(entries []types.DeliveryScheduleEntry) []types.DeliveryScheduleEntry {
	sorted := make([]types.DeliveryScheduleEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return entryDate(sorted[i]).Before(entryDate(sorted[j]))
	})

	return sorted
}

// entryDate parses an entry's effective date for ordering. Absent or
// unparsable dates sort as the maximum time, pushing them past every dated
// entry.
func entryDate(entry types.DeliveryScheduleEntry) time.Time {
	if entry.Date == "" {
		return maxTime
	}
	t, err := time.Parse(layoutDate, entry.Date)
	if err != nil {
		return maxTime
	}
	return t
}

var maxTime = time.Unix(1<<62, 0)

// =============================================================================
// CALENDAR WEEKS
// =============================================================================

// WeekNumber derives the ISO-8601 week number (1-53) from a "DD.MM.YYYY"
// date string. The second return value is false for unparsable input; the
// function never panics on bad dates.
func WeekNumber(date string) (int, bool) {
	t, err := time.Parse(layoutDate, date)
	if err != nil {
		return 0, false
	}
	_, week := t.ISOWeek()
	return week, true
}
