package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

func TestHeaderOmitsAbsentAttributes(t *testing.T) {
	out := Header(types.InterchangeHeader{Sender: "SENDERID", DocumentDate: "15.01.2024"})

	assert.Contains(t, out, "Sender: SENDERID")
	assert.Contains(t, out, "Document date: 15.01.2024")
	assert.NotContains(t, out, "Recipient")
	assert.NotContains(t, out, "Message reference")
}

func TestHeaderPrefersRecipientName(t *testing.T) {
	out := Header(types.InterchangeHeader{RecipientCode: "RCODE", RecipientName: "SELLER GMBH"})
	assert.Contains(t, out, "Recipient: SELLER GMBH")
	assert.NotContains(t, out, "RCODE")
}

func TestPartnersBlock(t *testing.T) {
	out := Partners(types.PartnerInfo{Buyer: "BUYER CORP", ShipTo: "PLANT 7"})

	assert.Contains(t, out, "Buyer: BUYER CORP")
	assert.Contains(t, out, "Ship-to: PLANT 7")
	assert.NotContains(t, out, "Seller:")
}

func TestEntriesTable(t *testing.T) {
	out := Entries([]types.DeliveryScheduleEntry{
		{PartNumber: "P-1", Date: "01.03.2024", Quantity: "10", Unit: "PCE", Kind: types.KindDelivery, SCC: "Firm"},
	})

	assert.Contains(t, out, "=== DELIVERY SCHEDULE ===")
	assert.Contains(t, out, "P-1")
	assert.Contains(t, out, "01.03.2024")
	assert.Contains(t, out, "Delivery")
	assert.Contains(t, out, "Firm")
}

func TestTotalQuantitySkipsNonNumeric(t *testing.T) {
	entries := []types.DeliveryScheduleEntry{
		{Quantity: "100"},
		{Quantity: "abc"},
		{Quantity: ""},
		{Quantity: "50"},
	}

	assert.Equal(t, int64(150), TotalQuantity(entries))
}

func TestStatsGroupsByKind(t *testing.T) {
	entries := []types.DeliveryScheduleEntry{
		{Quantity: "10", Kind: types.KindDelivery},
		{Quantity: "20", Kind: types.KindDelivery},
		{Quantity: "500", Kind: types.KindCumulative},
		{Quantity: "x", Kind: types.KindUnknown},
	}

	out := Stats(entries)

	assert.Contains(t, out, "Total entries: 4")
	assert.Contains(t, out, "Total quantity: 530")
	assert.Contains(t, out, "Delivery: 2 entries, 30 pieces")
	assert.Contains(t, out, "Cumulative: 1 entries, 500 pieces")
	assert.Contains(t, out, "Unknown: 1 entries, 0 pieces")
	// Kinds with no entries are not reported.
	assert.NotContains(t, out, "Planned:")
}

func TestReportSortsScheduleByDate(t *testing.T) {
	result := types.Result{
		Entries: []types.DeliveryScheduleEntry{
			{PartNumber: "LATE", Date: "01.03.2024", Quantity: "1"},
			{PartNumber: "EARLY", Date: "15.01.2024", Quantity: "2"},
		},
	}

	out := Report(result)

	assert.Less(t, strings.Index(out, "EARLY"), strings.Index(out, "LATE"))
	assert.Contains(t, out, "=== DOCUMENT HEADER ===")
	assert.Contains(t, out, "=== STATISTICS ===")
}
