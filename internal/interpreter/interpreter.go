// =============================================================================
// EDI DELFOR Converter - Segment Interpreter Module
// =============================================================================
//
// This module is the core of the converter: a stateful walk over the ordered
// segment sequence of one DELFOR interchange. It accumulates partial record
// state (current line item, pending quantities, scheduling scope, release
// scope) and emits completed delivery-schedule entries at well-defined
// trigger points. All partner-specific variation lives in the dialect tables
// (see the dialect package); this engine is shared by all three partners.
//
// INTERPRETATION PIPELINE:
//   raw text -> tokenizer -> segment sequence -> interpreter
//            -> (interchange header, partner info, schedule entries)
//
// TRIGGER POINTS:
//   - Buffered dialects: a date segment with the dialect's flush qualifier
//     stamps every pending quantity with its date and emits one entry each.
//     Whatever is still pending at end of input drains as undated entries.
//   - Immediate dialects: the scheduling-condition segment emits the entry
//     under construction once it carries both a date and a quantity.
//
// ERROR HANDLING:
//   Nothing here is fatal. Malformed dates and numbers pass through
//   verbatim, truncated segments degrade to no-ops for the fields they
//   lack, and unrecognized segment tags are ignored. The worst outcome is
//   an incomplete or default-valued record, never a failed parse.
//
// CONCURRENCY:
//   Parse is a pure function: every call owns its accumulators exclusively
//   and discards them on return, so concurrent calls on different files
//   never contend on shared state.
//
// =============================================================================

package interpreter

import (
	"strings"
	"time"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/dialect"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/tokenizer"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

// =============================================================================
// SEGMENT TAGS AND QUALIFIERS
// =============================================================================

const (
	tagInterchangeHeader = "UNB"
	tagMessageHeader     = "UNH"
	tagBeginMessage      = "BGM"
	tagDateTime          = "DTM"
	tagPartyAddress      = "NAD"
	tagLineItem          = "LIN"
	tagProductID         = "PIA"
	tagItemDescription   = "IMD"
	tagLocation          = "LOC"
	tagReference         = "RFF"
	tagSchedulingCond    = "SCC"
	tagQuantity          = "QTY"

	// DTM qualifier for the document date, shared by all dialects.
	qualifierDocumentDate = "137"

	// RFF reference types with interpreter-level meaning. All other types
	// are recorded on the line item but carry no scoping behavior.
	refTypeOrderNumber   = "ON"
	refTypeReleaseNumber = "AAN"

	// LIN component qualifier marking a buyer-internal part number.
	itemNumberQualifier = "IN"

	// Canonical date layouts of the output contract.
	layoutDate      = "02.01.2006"
	layoutDateTime  = "02.01.2006 15:04"
	layoutTimestamp = "02.01.2006 15:04:05"
)

// =============================================================================
// INTERPRETER
// =============================================================================

// Interpreter converts raw interchange text into a structured Result using
// one partner's dialect table. The zero value is not usable; construct with
// New.
type Interpreter struct {
	dialect dialect.Dialect
}

// New creates an interpreter for the given dialect.
func New(d dialect.Dialect) *Interpreter {
	return &Interpreter{dialect: d}
}

// Dialect returns the dialect table this interpreter runs.
func (itp *Interpreter) Dialect() dialect.Dialect {
	return itp.dialect
}

// Parse converts one interchange into its structured result. All state is
// rebuilt from scratch on every call; nothing persists across files.
func (itp *Interpreter) Parse(content string) types.Result {
	st := newWalkState(itp.dialect)

	for _, seg := range tokenizer.Tokenize(content) {
		st.handle(seg)
	}
	st.finish()

	return types.Result{
		Header:   st.header,
		Partners: st.partners,
		Entries:  st.entries,
	}
}

// =============================================================================
// WALK STATE
// =============================================================================

// pendingQuantity is one buffered (quantity, kind) pair awaiting its date.
type pendingQuantity struct {
	value string
	unit  string
	kind  types.QuantityKind
}

// entryDraft is the entry under construction for immediate dialects.
type entryDraft struct {
	date     string
	quantity string
	unit     string
	kind     types.QuantityKind
	hasQty   bool
	scc      string
}

// walkState carries the accumulators of one Parse call.
type walkState struct {
	d dialect.Dialect

	header   types.InterchangeHeader
	partners types.PartnerInfo
	entries  []types.DeliveryScheduleEntry

	// Current line-item context. nil until the first line-item segment.
	item *types.LineItem

	// Ordered buffer of quantities collected since the last flush
	// (buffered dialects only).
	pending []pendingQuantity

	// Scoping values persisting across quantity/date cycles until
	// explicitly replaced.
	sccCode  string // raw code, for backlog comparison
	sccLabel string // display value (decoded or raw, per dialect)
	release  string
	orderRef string

	// Entry under construction (immediate dialects only).
	draft entryDraft
}

func newWalkState(d dialect.Dialect) *walkState {
	return &walkState{d: d}
}

// handle dispatches one segment to its handler. Unrecognized tags are
// ignored, not rejected: this is a DELFOR subset decoder, not a general
// EDIFACT parser.
func (st *walkState) handle(seg types.Segment) {
	switch seg.Tag {
	case tagInterchangeHeader:
		st.handleInterchangeHeader(seg)
	case tagMessageHeader:
		st.header.MessageRef = seg.Component(0, 0)
	case tagBeginMessage:
		st.header.MessageNumber = seg.Component(1, 0)
	case tagDateTime:
		st.handleDateTime(seg)
	case tagPartyAddress:
		st.handleParty(seg)
	case tagLineItem:
		st.handleLineItem(seg)
	case tagProductID:
		st.handleProductID(seg)
	case tagItemDescription:
		st.handleDescription(seg)
	case tagLocation:
		st.handleLocation(seg)
	case tagReference:
		st.handleReference(seg)
	case tagSchedulingCond:
		st.handleSchedulingCondition(seg)
	case tagQuantity:
		st.handleQuantity(seg)
	}
}

// finish drains state that is still legitimate output at end of input:
// buffered quantities that never met a date segment become undated entries.
// An incomplete entry draft is an unfinished cycle and is discarded.
func (st *walkState) finish() {
	if st.d.BufferedQuantities {
		st.flush("")
	}
}

// =============================================================================
// HEADER AND PARTY HANDLERS
// =============================================================================

// handleInterchangeHeader populates sender, recipient code and the combined
// interchange date/time. Fields follow the EDIFACT UNB layout: syntax,
// sender, recipient, date:time.
func (st *walkState) handleInterchangeHeader(seg types.Segment) {
	if seg.FieldCount() < 4 {
		return
	}
	st.header.Sender = seg.Field(1)
	st.header.RecipientCode = seg.Field(2)
	st.header.Timestamp = formatInterchangeDateTime(
		seg.Component(3, 0), seg.Component(3, 1), seg.Field(3))
}

// handleDateTime routes a date/time segment by its qualifier. The composite
// is qualifier:value:format; format 102 is an 8-digit YYYYMMDD date, any
// other format code passes the raw value through unchanged.
func (st *walkState) handleDateTime(seg types.Segment) {
	qualifier := seg.Component(0, 0)
	value := seg.Component(0, 1)
	format := seg.Component(0, 2)
	if qualifier == "" || value == "" {
		return
	}

	date := formatDate(value, format)

	switch qualifier {
	case qualifierDocumentDate:
		st.header.DocumentDate = date

	case st.d.DueDateQualifier:
		if st.item != nil {
			st.item.DueDate = date
		} else {
			// A due date ahead of any line item still scopes the
			// entries that follow.
			st.item = st.newItem()
			st.item.DueDate = date
		}

	case st.d.FlushDateQualifier:
		if st.d.BufferedQuantities {
			st.flush(date)
		}

	case st.d.ScheduleDateQualifier:
		if !st.d.BufferedQuantities {
			st.draft.date = date
		}
	}
}

// handleParty retains buyer/seller/ship-to parties and ignores every other
// role. The display value is the party name (field index 4 of the raw
// segment, when present) joined with all further non-empty address fields,
// comma-separated. A party without a name falls back to its identifying
// code instead of being dropped.
func (st *walkState) handleParty(seg types.Segment) {
	roleCode := seg.Field(0)
	role, ok := st.d.PartyRoles[roleCode]
	if !ok || role == dialect.RoleIgnored {
		return
	}

	code := seg.Component(1, 0)
	name := seg.Field(3)
	if name == "" {
		name = code
	}

	var addressParts []string
	for i := 4; i < seg.FieldCount(); i++ {
		if f := seg.Field(i); f != "" {
			addressParts = append(addressParts, f)
		}
	}

	display := name
	if len(addressParts) > 0 {
		display = name + ", " + strings.Join(addressParts, ", ")
	}

	switch role {
	case dialect.RoleBuyer:
		st.partners.Buyer = display
	case dialect.RoleSeller:
		st.partners.Seller = display
		if st.d.SellerResolvesRecipient {
			if st.d.RecipientCodeHint == "" || strings.Contains(code, st.d.RecipientCodeHint) {
				st.header.RecipientName = name
			}
		}
	case dialect.RoleShipTo:
		st.partners.ShipTo = display
	}
}

// =============================================================================
// LINE ITEM HANDLERS
// =============================================================================

// newItem starts a line-item context carrying the active order and release
// scopes forward.
func (st *walkState) newItem() *types.LineItem {
	return &types.LineItem{
		OrderRef:   st.orderRef,
		Release:    st.release,
		References: make(map[string]string),
	}
}

// handleLineItem begins a new line-item context. In-flight pending
// quantities of the previous item are an incomplete cycle and are discarded;
// entries already flushed for it are retained. The scheduling-condition
// scope does not survive an item boundary; order and release scopes do.
func (st *walkState) handleLineItem(seg types.Segment) {
	st.pending = nil
	st.sccCode = ""
	st.sccLabel = ""
	st.draft = entryDraft{}

	item := st.newItem()
	item.PartNumber = extractPartNumber(seg)
	st.item = item
}

// extractPartNumber scans the trailing fields of a line-item segment for a
// component pair tagged with the internal-number qualifier. When none
// qualifies, the first component of the first trailing field is the
// fallback; when that is missing too, the part number stays empty rather
// than failing.
func extractPartNumber(seg types.Segment) string {
	for i := 2; i < seg.FieldCount(); i++ {
		comps := seg.Fields[i].Components
		if len(comps) >= 2 && comps[1] == itemNumberQualifier && comps[0] != "" {
			return comps[0]
		}
	}
	return seg.Component(2, 0)
}

// handleProductID fills the part number from a product-identification
// segment when the line-item segment yielded none.
func (st *walkState) handleProductID(seg types.Segment) {
	if st.item == nil {
		st.item = st.newItem()
	}
	if st.item.PartNumber == "" {
		st.item.PartNumber = seg.Component(1, 0)
	}
}

// handleDescription stores the item description. Whichever trailing field is
// present carries the text, preceded by 1-3 leading component separators
// depending on which qualifier slots were populated upstream; the leading
// run is stripped and any remaining separator characters are removed. The
// 1/2/3-delimiter cases are the full accepted contract.
func (st *walkState) handleDescription(seg types.Segment) {
	var raw string
	for i := 2; i < seg.FieldCount(); i++ {
		if f := seg.Field(i); f != "" {
			raw = f
		}
	}
	if raw == "" {
		return
	}

	desc := strings.TrimLeft(raw, ":")
	desc = strings.ReplaceAll(desc, ":", "")
	desc = strings.TrimSpace(desc)

	if st.item == nil {
		st.item = st.newItem()
	}
	st.item.Description = desc
}

// handleLocation stores the delivery location code on the current item.
func (st *walkState) handleLocation(seg types.Segment) {
	if st.item == nil {
		st.item = st.newItem()
	}
	st.item.Location = seg.Component(1, 0)
}

// handleReference processes a reference segment (type:value composite).
// An order-number reference sets the active order scope. A release-number
// reference sets the active release scope and clears the pending buffer so
// the new release starts a fresh accumulation cycle. Every reference is
// also recorded verbatim on the line item.
func (st *walkState) handleReference(seg types.Segment) {
	refType := seg.Component(0, 0)
	refValue := seg.Component(0, 1)
	if refType == "" {
		return
	}

	if st.item != nil {
		st.item.References[refType] = refValue
	}

	switch refType {
	case refTypeOrderNumber:
		st.orderRef = refValue
		if st.item != nil {
			st.item.OrderRef = refValue
		}
	case refTypeReleaseNumber:
		st.release = refValue
		st.pending = nil
		if st.item != nil {
			st.item.Release = refValue
		}
	}
}

// =============================================================================
// SCHEDULING CONDITION AND QUANTITY HANDLERS
// =============================================================================

// handleSchedulingCondition sets the active scheduling-condition scope.
//
// Buffered dialects decouple quantities from conditions: the new condition
// clears the pending buffer so quantities collected under the prior
// condition are never attributed to this one, and entering the backlog
// condition additionally clears the release scope.
//
// Immediate dialects use this segment as the flush trigger: an entry under
// construction that already has both a date and a quantity is emitted, and
// a new entry starts carrying forward only the new condition code. An
// incomplete entry is not discarded: it keeps its accumulated fields and
// only its condition is updated, so the segments still missing can arrive
// after the condition.
func (st *walkState) handleSchedulingCondition(seg types.Segment) {
	code := seg.Component(0, 0)
	if code == "" {
		return
	}

	if st.d.BufferedQuantities {
		st.sccCode = code
		st.sccLabel = st.d.SCCLabel(code)
		st.pending = nil
		if st.d.BacklogCode != "" && code == st.d.BacklogCode {
			st.release = ""
		}
		return
	}

	st.draft.scc = st.d.SCCLabel(code)
	if st.draft.date != "" && st.draft.hasQty {
		st.entries = append(st.entries, st.entryFromDraft())
		st.draft = entryDraft{scc: st.d.SCCLabel(code)}
	}
}

// handleQuantity parses a quantity composite (kind:value:unit). Buffered
// dialects append it to the pending buffer; immediate dialects write it
// directly onto the entry under construction.
func (st *walkState) handleQuantity(seg types.Segment) {
	kindCode := seg.Component(0, 0)
	value := seg.Component(0, 1)
	unit := seg.Component(0, 2)
	if kindCode == "" && value == "" {
		return
	}

	kind := st.d.QuantityKind(kindCode)

	if st.d.BufferedQuantities {
		st.pending = append(st.pending, pendingQuantity{value: value, unit: unit, kind: kind})
		return
	}

	st.draft.quantity = value
	st.draft.unit = unit
	st.draft.kind = kind
	st.draft.hasQty = value != ""
}

// =============================================================================
// ENTRY EMISSION
// =============================================================================

// flush converts the pending buffer into finalized entries stamped with the
// given date, the active scheduling condition, and the active release scope,
// then clears the buffer. An empty buffer produces no entries. Under the
// backlog condition only the first buffered quantity is authoritative; the
// rest are discarded.
func (st *walkState) flush(date string) {
	if len(st.pending) == 0 {
		return
	}

	pend := st.pending
	if st.d.BacklogCode != "" && st.sccCode == st.d.BacklogCode {
		pend = pend[:1]
	}

	for _, q := range pend {
		entry := st.baseEntry()
		entry.Date = date
		entry.Quantity = q.value
		entry.Unit = q.unit
		entry.Kind = q.kind
		st.entries = append(st.entries, entry)
	}

	st.pending = nil
}

// entryFromDraft finalizes the entry under construction (immediate dialects).
func (st *walkState) entryFromDraft() types.DeliveryScheduleEntry {
	entry := st.baseEntry()
	entry.Date = st.draft.date
	entry.Quantity = st.draft.quantity
	entry.Unit = st.draft.unit
	entry.Kind = st.draft.kind
	entry.SCC = st.draft.scc
	return entry
}

// baseEntry builds an entry skeleton from the item context and the active
// scopes. Missing item context degrades to empty fields, never to a failure.
func (st *walkState) baseEntry() types.DeliveryScheduleEntry {
	entry := types.DeliveryScheduleEntry{
		SCC:      st.sccLabel,
		Release:  st.release,
		OrderRef: st.orderRef,
	}
	if st.item != nil {
		entry.PartNumber = st.item.PartNumber
		entry.Description = st.item.Description
		entry.DueDate = st.item.DueDate
	}
	return entry
}

// =============================================================================
// DATE CONVERSIONS (parse-or-pass-through)
// =============================================================================

// formatDate reformats an EDI date value by its format code. Format 102 is
// an 8-digit YYYYMMDD date and 203 a 14-digit date/time; anything else, and
// any unparsable value, passes through verbatim. Never fails.
func formatDate(value, formatCode string) string {
	switch formatCode {
	case "102":
		t, err := time.Parse("20060102", value)
		if err != nil {
			return value
		}
		return t.Format(layoutDate)
	case "203":
		t, err := time.Parse("20060102150405", value)
		if err != nil {
			return value
		}
		return t.Format(layoutTimestamp)
	default:
		return value
	}
}

// formatInterchangeDateTime formats the UNB date/time composite: a 6-digit
// date assumed to be in the 2000s plus a 4-digit time, rendered as
// "DD.MM.YYYY HH:MM". Unparsable input returns the raw composite verbatim.
func formatInterchangeDateTime(date, clock, raw string) string {
	t, err := time.Parse("20060102 1504", "20"+date+" "+clock)
	if err != nil {
		return raw
	}
	return t.Format(layoutDateTime)
}
