package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sender() Vendor {
	return Vendor{
		ID: "sender", Name: "Sender", Category: EmailSending,
		Tiers: []Tier{
			{Name: "Large", MonthlyCost: 300, Emails: 500000},
			{Name: "Small", MonthlyCost: 40, Emails: 5000, Lowest: true},
			{Name: "Medium", MonthlyCost: 90, Emails: 100000},
		},
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vendors []Vendor
		wantErr string
	}{
		{"missing id", []Vendor{{Category: EmailFinding}}, "id is required"},
		{"duplicate", []Vendor{{ID: "a", Category: EmailFinding}, {ID: "a", Category: EmailFinding}}, "duplicate"},
		{"bad category", []Vendor{{ID: "a", Category: "fax"}}, "unknown category"},
		{"two lowest tiers", []Vendor{{ID: "a", Category: EmailFinding, Tiers: []Tier{{Lowest: true}, {Lowest: true}}}}, "lowest tiers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.vendors...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_VendorIsACopy(t *testing.T) {
	t.Parallel()
	c, err := New(sender())
	require.NoError(t, err)

	v, ok := c.Vendor("sender")
	require.True(t, ok)
	v.Tiers[0].MonthlyCost = 1
	v.Name = "changed"

	again, _ := c.Vendor("sender")
	assert.Equal(t, "Sender", again.Name)
	assert.InDelta(t, 300, again.Tiers[0].MonthlyCost, 0.001)

	_, ok = c.Vendor("missing")
	assert.False(t, ok)
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	t.Parallel()
	c := Default()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := c.Vendor("apollo")
			assert.True(t, ok)
			assert.NotEmpty(t, c.ByCategory(EmailSending))
		}()
	}
	wg.Wait()
}

func TestDefault(t *testing.T) {
	t.Parallel()
	c := Default()
	assert.Equal(t, 11, c.Len())

	apollo, ok := c.Vendor("apollo")
	require.True(t, ok)
	lowest, ok := apollo.LowestTier()
	require.True(t, ok)
	assert.True(t, lowest.Free())
	assert.Equal(t, 10000, lowest.Credits)
	assert.InDelta(t, 2, apollo.CreditsPerOp(), 0.001)

	sending := c.ByCategory(EmailSending)
	require.Len(t, sending, 2)
	assert.Equal(t, "instantly", sending[0].ID)

	ids := c.IDs()
	assert.Equal(t, "apollo", ids[0])
}

func TestTierForVolume(t *testing.T) {
	t.Parallel()
	v := sender()

	tests := []struct {
		name   string
		volume int
		want   string
	}{
		{"fits smallest", 4000, "Small"},
		{"exact ceiling", 5000, "Small"},
		{"middle", 5001, "Medium"},
		{"largest", 400000, "Large"},
		{"over every ceiling falls back to largest", 900000, "Large"},
		{"zero volume", 0, "Small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := TierForVolume(v, tt.volume, Emails)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestTierForVolume_NoTiers(t *testing.T) {
	t.Parallel()
	_, ok := TierForVolume(Vendor{ID: "x"}, 10, Emails)
	assert.False(t, ok)
}

func TestTierForVolume_CeilinglessTierSortsFirst(t *testing.T) {
	t.Parallel()
	v := Vendor{Tiers: []Tier{
		{Name: "Capped", Credits: 100},
		{Name: "NoCredits"},
	}}
	got, ok := TierForVolume(v, 50, Credits)
	require.True(t, ok)
	assert.Equal(t, "Capped", got.Name)
}

func TestVendor_CreditsPerOpDefault(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1, Vendor{}.CreditsPerOp(), 0.001)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	doc := `
vendors:
  - id: hunter
    name: Hunter
    category: email_finding
    pricing_url: https://hunter.io/pricing
    cost_per_unit:
      email_find: 0.03
      email_verify: 0.005
    tiers:
      - { name: Free, monthly_cost: 0, credits: 25, is_lowest_tier: true }
      - { name: Starter, monthly_cost: 49, credits: 500 }
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	v, ok := c.Vendor("hunter")
	require.True(t, ok)
	cost, ok := v.UnitCost(OpEmailFind)
	require.True(t, ok)
	assert.InDelta(t, 0.03, cost, 1e-9)
	assert.Len(t, v.Tiers, 2)
	assert.True(t, v.Tiers[0].Lowest)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("/nonexistent/catalog.yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("vendors: []"))
	assert.ErrorContains(t, err, "no vendors")

	_, err = Parse([]byte("vendors: [::"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	c, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())
}

func TestLookupFunc(t *testing.T) {
	t.Parallel()
	var l Lookup = LookupFunc(func(id string) (Vendor, bool) {
		return Vendor{ID: id}, id == "x"
	})
	v, ok := l.Vendor("x")
	assert.True(t, ok)
	assert.Equal(t, "x", v.ID)
}
