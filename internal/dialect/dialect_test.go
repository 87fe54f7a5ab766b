package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"cummins", "minebea", "trwkob"} {
		d, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, d.Name)
	}

	_, ok := ByName("unknown")
	assert.False(t, ok)
}

func TestAllIsStable(t *testing.T) {
	first := All()
	second := All()

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestQuantityKindUnmappedCodeIsUnknown(t *testing.T) {
	for _, d := range All() {
		assert.Equal(t, types.KindUnknown, d.QuantityKind("999"), d.Name)
		assert.Equal(t, types.KindUnknown, d.QuantityKind(""), d.Name)
	}
}

func TestCumminsTable(t *testing.T) {
	d := Cummins()

	assert.True(t, d.BufferedQuantities)
	assert.Equal(t, "2", d.FlushDateQualifier)
	assert.Equal(t, "10", d.BacklogCode)

	assert.Equal(t, types.KindDelivery, d.QuantityKind("1"))
	assert.Equal(t, types.KindCumulative, d.QuantityKind("3"))
	assert.Equal(t, types.KindPlanned, d.QuantityKind("48"))

	assert.Equal(t, "Firm", d.SCCLabel("1"))
	assert.Equal(t, "Forecast", d.SCCLabel("4"))
	assert.Equal(t, "Backlog", d.SCCLabel("10"))
	// Undecoded codes pass through raw.
	assert.Equal(t, "77", d.SCCLabel("77"))

	assert.Equal(t, RoleSeller, d.PartyRoles["SU"])
	assert.Equal(t, RoleShipTo, d.PartyRoles["ST"])
}

func TestImmediateDialectTables(t *testing.T) {
	for _, d := range []Dialect{Minebea(), Trwkob()} {
		assert.False(t, d.BufferedQuantities, d.Name)
		assert.Equal(t, "64", d.ScheduleDateQualifier, d.Name)
		assert.Equal(t, "63", d.DueDateQualifier, d.Name)
		assert.True(t, d.SellerResolvesRecipient, d.Name)

		assert.Equal(t, types.KindCumulative, d.QuantityKind("113"), d.Name)
		assert.Equal(t, types.KindMinimum, d.QuantityKind("70"), d.Name)
		assert.Equal(t, types.KindMaximum, d.QuantityKind("78"), d.Name)

		assert.Equal(t, RoleBuyer, d.PartyRoles["BY"], d.Name)
		assert.Equal(t, RoleSeller, d.PartyRoles["SE"], d.Name)
		assert.Equal(t, RoleShipTo, d.PartyRoles["CN"], d.Name)

		// No label table: codes are their own display value.
		assert.Equal(t, "1", d.SCCLabel("1"), d.Name)
	}

	assert.Equal(t, "1000500120", Minebea().RecipientCodeHint)
	assert.Equal(t, "", Trwkob().RecipientCodeHint)
}

func TestDetectByFileName(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"CMI_20240115.edi", "cummins"},
		{"CMI123.edi", "cummins"},
		{"/data/inbox/delfor_cummins_jan.txt", "cummins"},
		{"MBM_schedule.edi", "minebea"},
		{"minebea-minol_feed.edi", "minebea"},
		{"TRW-KOB_plan.edi", "trwkob"},
		{"kobalt_delfor.txt", "trwkob"},
	}

	for _, tc := range cases {
		d, ok := Detect(tc.fileName, "")
		require.True(t, ok, tc.fileName)
		assert.Equal(t, tc.want, d.Name, tc.fileName)
	}
}

func TestDetectByContent(t *testing.T) {
	d, ok := Detect("inbox-4711.edi", "UNB+UNOA:2+CUMMINS+US+240115:1030'")
	require.True(t, ok)
	assert.Equal(t, "cummins", d.Name)
}

func TestDetectInterchangePrefixFallsBackToMinebea(t *testing.T) {
	for _, content := range []string{
		"UNB+UNOA:2+S+R+240115:1030'",
		"UNA:+.? 'UNB+UNOA:2+S+R+240115:1030'",
		"\n  UNB+UNOA:2+S+R+240115:1030'",
	} {
		d, ok := Detect("anonymous.edi", content)
		require.True(t, ok, content)
		assert.Equal(t, "minebea", d.Name, content)
	}
}

func TestDetectRejectsUnidentifiableInput(t *testing.T) {
	_, ok := Detect("notes.txt", "just some text")
	assert.False(t, ok)
}

func TestMatchExtra(t *testing.T) {
	patterns := []string{"CMI-*.edi", "*_cummins.txt"}

	assert.True(t, MatchExtra("/inbox/CMI-0042.edi", patterns))
	assert.True(t, MatchExtra("plant7_cummins.txt", patterns))
	assert.False(t, MatchExtra("MBM_0042.edi", patterns))
	assert.False(t, MatchExtra("CMI-0042.edi", nil))
}

func TestMatchExtraSkipsInvalidPatterns(t *testing.T) {
	assert.True(t, MatchExtra("CMI-1.edi", []string{"[", "CMI-*.edi"}))
}
