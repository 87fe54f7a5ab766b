// =============================================================================
// EDI DELFOR Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - tokenizer
//   - interpreter
//   - schedule
//   - render
//   - xlsxwriter
//
// The original partner feeds carried their attributes as free-form key/value
// maps. Here every record type is a closed set of named fields; an empty
// string means the attribute was absent from the interchange, which is legal.
//
// =============================================================================

package types

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Field is one first-level subdivision of a segment. Both the raw text and
// the component split are kept: most handlers want components, but the
// item-description handler needs the raw field including its component
// separators.
type Field struct {
	// Raw is the field content with release characters already stripped.
	Raw string

	// Components are the sub-fields, split on the component separator.
	Components []string
}

// Segment represents one delimited record within an EDI interchange.
type Segment struct {
	// Tag is the 2-3 letter segment identifier (UNB, DTM, NAD, ...).
	Tag string

	// Fields are the ordered fields following the tag.
	Fields []Field
}

// Field returns the raw content of field i, or "" when the segment is too
// short. Handlers must never assume a field count.
func (s Segment) Field(i int) string {
	if i < 0 || i >= len(s.Fields) {
		return ""
	}
	return s.Fields[i].Raw
}

// Component returns component j of field i, or "" when either index is out
// of range.
func (s Segment) Component(i, j int) string {
	if i < 0 || i >= len(s.Fields) {
		return ""
	}
	comps := s.Fields[i].Components
	if j < 0 || j >= len(comps) {
		return ""
	}
	return comps[j]
}

// FieldCount returns the number of fields following the tag.
func (s Segment) FieldCount() int {
	return len(s.Fields)
}

// =============================================================================
// QUANTITY KIND
// =============================================================================

// QuantityKind classifies a scheduled quantity. Every entry carries exactly
// one of these values; quantity qualifier codes that are not in the dialect's
// code table map to KindUnknown, never to a passthrough string.
type QuantityKind int

const (
	KindUnknown QuantityKind = iota
	KindDelivery
	KindCumulative
	KindPlanned
	KindMinimum
	KindMaximum
)

// String returns the display label for the quantity kind.
func (k QuantityKind) String() string {
	switch k {
	case KindDelivery:
		return "Delivery"
	case KindCumulative:
		return "Cumulative"
	case KindPlanned:
		return "Planned"
	case KindMinimum:
		return "Minimum"
	case KindMaximum:
		return "Maximum"
	default:
		return "Unknown"
	}
}

// =============================================================================
// HEADER AND PARTNER TYPES
// =============================================================================

// InterchangeHeader holds the document-level attributes of one interchange.
// Which fields are populated depends on which segments occurred in the file.
type InterchangeHeader struct {
	// Sender is the interchange sender identification from the header segment.
	Sender string

	// RecipientCode is the recipient identification code from the header
	// segment. The display name, when resolvable from a party segment, goes
	// to RecipientName.
	RecipientCode string

	// RecipientName is the resolved recipient display name, if any party
	// segment identified it.
	RecipientName string

	// Timestamp is the interchange preparation date/time, formatted as
	// "DD.MM.YYYY HH:MM". Unparsable input is carried verbatim.
	Timestamp string

	// MessageRef is the message reference number (UNH).
	MessageRef string

	// MessageNumber is the document/message number (BGM).
	MessageNumber string

	// DocumentDate is the document date (DTM qualifier 137), formatted as
	// "DD.MM.YYYY".
	DocumentDate string
}

// Recipient returns the best available recipient display value: the resolved
// name when a party segment provided one, otherwise the raw code.
func (h InterchangeHeader) Recipient() string {
	if h.RecipientName != "" {
		return h.RecipientName
	}
	return h.RecipientCode
}

// PartnerInfo holds the trading-partner display strings, one per retained
// role. Each value is the party name joined with any non-empty trailing
// address fields, comma-separated.
type PartnerInfo struct {
	Buyer  string
	Seller string
	ShipTo string
}

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem is the per-item context accumulated while walking a message.
type LineItem struct {
	// PartNumber is the item identifier. Empty when undetectable.
	PartNumber string

	// Description is the item description text.
	Description string

	// OrderRef is the originating order reference, if any.
	OrderRef string

	// Location is the delivery location code, if any.
	Location string

	// Release is the active release reference, if any.
	Release string

	// DueDate is the item-level due date ("DD.MM.YYYY"), if any.
	DueDate string

	// References collects every reference segment seen for this item,
	// keyed by reference type. The key set is open.
	References map[string]string
}

// =============================================================================
// DELIVERY SCHEDULE ENTRY
// =============================================================================

// DeliveryScheduleEntry is one finalized schedule line. Entries are only
// emitted at well-defined trigger points; partial interpreter state is never
// surfaced as an entry.
type DeliveryScheduleEntry struct {
	// PartNumber identifies the scheduled part. May be empty.
	PartNumber string

	// Description is the part description at the time of emission.
	Description string

	// Date is the effective schedule date, "DD.MM.YYYY". Empty means the
	// entry is undated; undated entries sort after all dated ones.
	Date string

	// DueDate is the item-level due date in effect, "DD.MM.YYYY", or empty.
	DueDate string

	// Quantity is the scheduled quantity as received. It may be absent or
	// non-numeric; aggregate computations skip such values instead of
	// failing.
	Quantity string

	// Unit is the measure unit code, when the dialect carries one.
	Unit string

	// Kind is the semantic quantity classification.
	Kind QuantityKind

	// SCC is the scheduling-condition code scoping this entry; either the
	// raw code or a decoded label, depending on the dialect.
	SCC string

	// Release is the release reference in scope, or empty.
	Release string

	// OrderRef is the originating order reference in scope, or empty.
	OrderRef string
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// Result is the immutable outcome of interpreting one interchange.
type Result struct {
	// Header holds the interchange/document attributes.
	Header InterchangeHeader

	// Partners holds the retained trading-partner display strings.
	Partners PartnerInfo

	// Entries holds the finalized delivery-schedule entries in emission
	// order. Display ordering is a separate concern (see schedule package).
	Entries []DeliveryScheduleEntry
}
