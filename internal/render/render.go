// =============================================================================
// EDI DELFOR Converter - Text Rendering Module
// =============================================================================
//
// This module renders an interpreted result as plain text: the document
// header block, the trading-partner block, the delivery-schedule table and
// the statistics block. These correspond to the report sections consumed by
// operators reviewing a converted interchange.
//
// Quantity aggregation skips non-numeric quantity values instead of failing;
// a schedule entry with an absent or garbled quantity still renders, it just
// does not contribute to the totals.
//
// =============================================================================

package render

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/schedule"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

// =============================================================================
// REPORT RENDERING
// =============================================================================

// Report renders the full text report for one interpreted interchange:
// header, partners, sorted schedule table and statistics.
func Report(result types.Result) string {
	var b strings.Builder

	b.WriteString(Header(result.Header))
	b.WriteString("\n")
	b.WriteString(Partners(result.Partners))
	b.WriteString("\n")
	b.WriteString(Entries(schedule.SortEntries(result.Entries)))
	b.WriteString("\n")
	b.WriteString(Stats(result.Entries))

	return b.String()
}

// Header renders the document header block. Absent attributes are omitted,
// not rendered as empty lines.
func Header(h types.InterchangeHeader) string {
	var b strings.Builder
	b.WriteString("=== DOCUMENT HEADER ===\n")

	writeAttr(&b, "Sender", h.Sender)
	writeAttr(&b, "Recipient", h.Recipient())
	writeAttr(&b, "Date/Time", h.Timestamp)
	writeAttr(&b, "Message reference", h.MessageRef)
	writeAttr(&b, "Message number", h.MessageNumber)
	writeAttr(&b, "Document date", h.DocumentDate)

	return b.String()
}

// Partners renders the trading-partner block.
func Partners(p types.PartnerInfo) string {
	var b strings.Builder
	b.WriteString("=== TRADING PARTNERS ===\n")

	writeAttr(&b, "Buyer", p.Buyer)
	writeAttr(&b, "Seller", p.Seller)
	writeAttr(&b, "Ship-to", p.ShipTo)

	return b.String()
}

// writeAttr writes one "key: value" line, skipping absent values.
func writeAttr(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", key, value)
}

// =============================================================================
// SCHEDULE TABLE
// =============================================================================

// Entries renders the delivery-schedule table in the order given (callers
// sort via schedule.SortEntries when they want display order).
func Entries(entries []types.DeliveryScheduleEntry) string {
	var b strings.Builder
	b.WriteString("=== DELIVERY SCHEDULE ===\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Part\tDescription\tDate\tDue\tQuantity\tUnit\tKind\tSCC\tRelease\tOrder")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.PartNumber, e.Description, e.Date, e.DueDate,
			e.Quantity, e.Unit, e.Kind, e.SCC, e.Release, e.OrderRef)
	}
	w.Flush()

	return b.String()
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats renders the statistics block: entry count, total quantity over
// numeric quantities, and per-kind counts and sums. Kinds are reported in
// their fixed enum order so the output is deterministic.
func Stats(entries []types.DeliveryScheduleEntry) string {
	var b strings.Builder
	b.WriteString("=== STATISTICS ===\n")
	fmt.Fprintf(&b, "Total entries: %d\n", len(entries))
	fmt.Fprintf(&b, "Total quantity: %d\n", TotalQuantity(entries))

	kinds := []types.QuantityKind{
		types.KindDelivery, types.KindCumulative, types.KindPlanned,
		types.KindMinimum, types.KindMaximum, types.KindUnknown,
	}
	counts := make(map[types.QuantityKind]int)
	sums := make(map[types.QuantityKind]int64)
	for _, e := range entries {
		counts[e.Kind]++
		if n, err := strconv.ParseInt(e.Quantity, 10, 64); err == nil {
			sums[e.Kind] += n
		}
	}

	for _, kind := range kinds {
		if counts[kind] == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d entries, %d pieces\n", kind, counts[kind], sums[kind])
	}

	return b.String()
}

// TotalQuantity sums every numeric quantity across the entries. Absent or
// non-numeric quantities contribute zero.
func TotalQuantity(entries []types.DeliveryScheduleEntry) int64 {
	var total int64
	for _, e := range entries {
		if n, err := strconv.ParseInt(e.Quantity, 10, 64); err == nil {
			total += n
		}
	}
	return total
}
