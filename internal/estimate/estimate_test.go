package estimate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/funnel"
	"github.com/sells-group/outbound-cli/internal/rates"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

func defaultInput() Input {
	return DefaultInput()
}

func TestEstimate_Defaults(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	res, err := e.Estimate(defaultInput())
	require.NoError(t, err)

	assert.Equal(t, funnel.Stages{
		LeadsToSource:            5034,
		ContactsWithEmails:       4279,
		ValidEmailsNeeded:        2140,
		EmailsToSend:             1819,
		ExpectedReplies:          100,
		ExpectedQualifiedReplies: 50,
		ExpectedMeetings:         10,
	}, res.Stages)

	require.Len(t, res.LineItems, 5)
	assert.InDelta(t, 410.8641, res.Summary.TotalCost, 1e-3)
	assert.InDelta(t, 47, res.Summary.MonthlyRecurring, 1e-9)
	assert.InDelta(t, res.Summary.TotalCost-47, res.Summary.SetupCosts, 1e-9)
	assert.InDelta(t, 41.08641, res.Summary.CostPerMeeting, 1e-4)
	assert.Nil(t, res.Summary.Headcount)
	assert.Empty(t, res.Waterfalls)
}

func TestEstimate_DomainsCountAsSetup(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	res, err := e.Estimate(defaultInput())
	require.NoError(t, err)

	var domains float64
	for _, it := range res.LineItems {
		if it.Kind == cost.KindDomains {
			domains = it.Total
		}
	}
	require.NotZero(t, domains)
	assert.InDelta(t, 4*13.0/12, domains, 1e-9)
	assert.GreaterOrEqual(t, res.Summary.SetupCosts, domains)
}

func TestEstimate_OwnedDomainsPriceAtZero(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	in := defaultInput()
	in.Infrastructure = cost.Infrastructure{DomainCostYearly: cost.Dollars(0)}
	res, err := e.Estimate(in)
	require.NoError(t, err)

	var found bool
	for _, it := range res.LineItems {
		if it.Kind == cost.KindDomains {
			found = true
			assert.Equal(t, 4, it.Quantity)
			assert.Zero(t, it.Total)
		}
	}
	assert.True(t, found)
	assert.InDelta(t, 410.8641-4*13.0/12, res.Summary.TotalCost, 1e-3)
}

func TestEstimate_ZeroRateRejected(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	tests := []struct {
		name string
		set  rates.Set
		rate string
	}{
		{"meeting set zero", rates.Set{
			QualifiedReplyRate: 0.5, ReplyRate: 0.05, DeliverabilityRate: 0.85,
			EmailFindRate: 0.5, PostEnrichmentValidRate: 0.85,
		}, rates.MeetingSet},
		{"empty set", rates.Set{}, rates.MeetingSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := defaultInput()
			in.Rates = tt.set
			res, err := e.Estimate(in)
			assert.Nil(t, res)
			require.ErrorIs(t, err, rates.ErrInvalidRate)

			var rateErr *rates.InvalidRateError
			require.True(t, errors.As(err, &rateErr))
			assert.Equal(t, tt.rate, rateErr.Rate)
		})
	}

	for _, r := range rates.Defaults().Named() {
		in := defaultInput()
		in.Rates, _ = in.Rates.With(r.ID, 0)
		_, err := e.Estimate(in)
		assert.ErrorIs(t, err, rates.ErrInvalidRate, r.ID)
	}
}

func TestEstimate_InvalidRate(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	in := defaultInput()
	in.Rates.ReplyRate = -0.1
	res, err := e.Estimate(in)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, rates.ErrInvalidRate)

	var rateErr *rates.InvalidRateError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, rates.Reply, rateErr.Rate)
}

func TestEstimate_InvalidTarget(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	in := defaultInput()
	in.MeetingsNeeded = 0
	_, err := e.Estimate(in)
	assert.ErrorIs(t, err, funnel.ErrInvalidTarget)
}

func TestEstimate_MissingVendors(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	t.Run("email finder is required", func(t *testing.T) {
		t.Parallel()
		in := defaultInput()
		in.Vendors.EmailFinding = "nope"
		_, err := e.Estimate(in)
		assert.ErrorIs(t, err, cost.ErrMissingVendor)

		var mv *cost.MissingVendorError
		require.True(t, errors.As(err, &mv))
		assert.Equal(t, catalog.EmailFinding, mv.Stage)
		assert.Equal(t, "nope", mv.VendorID)
	})

	t.Run("verifier is optional", func(t *testing.T) {
		t.Parallel()
		in := defaultInput()
		in.Vendors.EmailVerification = "nope"
		res, err := e.Estimate(in)
		require.NoError(t, err)
		for _, it := range res.LineItems {
			assert.NotEqual(t, cost.KindVerification, it.Kind)
		}
	})
}

func TestEstimate_Headcount(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	in := defaultInput()
	in.Headcount = cost.Headcount{SDRCount: 2, SDRMonthlyCost: 5000, Include: true}
	res, err := e.Estimate(in)
	require.NoError(t, err)

	require.NotNil(t, res.Summary.Headcount)
	assert.InDelta(t, 10000, res.Summary.Headcount.HeadcountCost, 1e-9)
	assert.InDelta(t, res.Summary.TotalCost+10000, res.Summary.Headcount.TotalCostWithHeadcount, 1e-9)
	assert.InDelta(t, (res.Summary.TotalCost+10000)/10, res.Summary.Headcount.CostPerMeetingWithHeadcount, 1e-9)
}

func TestEstimate_Waterfalls(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	wf := waterfall.NewConfig("emails", waterfall.EmailFinding).
		AddStep("leadmagic", 0.6).
		AddStep("icypeas", 0.5)
	off := waterfall.NewConfig("off", waterfall.PhoneFinding).Toggle()

	in := defaultInput()
	in.Waterfalls = []waterfall.Config{wf, off}
	res, err := e.Estimate(in)
	require.NoError(t, err)

	require.Len(t, res.Waterfalls, 1)
	got := res.Waterfalls[0]
	assert.Equal(t, 4279, got.TotalContacts)
	assert.Equal(t, 2568, got.Steps[0].SuccessfulFinds)
	assert.Equal(t, 1711, got.Steps[1].ContactsProcessed)
	assert.Same(t, e.Analyzer(), e.Analyzer())
}

func TestEstimate_Deterministic(t *testing.T) {
	t.Parallel()
	e := New(catalog.Default(), nil)

	a, err := e.Estimate(defaultInput())
	require.NoError(t, err)
	b, err := e.Estimate(defaultInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimate_CustomTierSelector(t *testing.T) {
	t.Parallel()
	largest := func(v catalog.Vendor, _ int, _ catalog.Capacity) (catalog.Tier, bool) {
		if len(v.Tiers) == 0 {
			return catalog.Tier{}, false
		}
		return v.Tiers[len(v.Tiers)-1], true
	}
	e := New(catalog.Default(), largest)

	res, err := e.Estimate(defaultInput())
	require.NoError(t, err)
	assert.InDelta(t, 358, res.Summary.MonthlyRecurring, 1e-9)
}

func TestLoadScenario(t *testing.T) {
	body := `
name: q3-push
meetings_needed: 25
conversion_rates:
  reply_rate: 0.04
providers:
  email_finding: icypeas
  email_sending: smartlead
enrichments:
  - id: phones
    name: Phone Finding
    provider_id: leadmagic_phone
    cost_per_unit: 0.12
    unit_type: phone
    apply_to_percentage: 50
    enabled: true
infrastructure:
  emails_per_domain: 1000
headcount:
  sdr_count: 1
  sdr_monthly_cost: 6000
  include_headcount_in_total: true
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "q3-push", s.Name)
	assert.InDelta(t, 25, s.MeetingsNeeded, 1e-9)
	assert.InDelta(t, 0.04, s.Rates.ReplyRate, 1e-9)
	assert.InDelta(t, 0.2, s.Rates.MeetingSetRate, 1e-9, "omitted rates keep their defaults")
	assert.Equal(t, "icypeas", s.Vendors.EmailFinding)
	assert.Empty(t, s.Vendors.ContactSourcing)
	require.Len(t, s.Enrichments, 1)
	assert.Equal(t, cost.UnitPhone, s.Enrichments[0].Unit)
	assert.Equal(t, 1000, s.Infrastructure.EmailsPerDomain)
	assert.True(t, s.Headcount.Include)

	res, err := New(catalog.Default(), nil).Estimate(s.Input)
	require.NoError(t, err)
	assert.NotNil(t, res.Summary.Headcount)
}

func TestParseScenario_ExplicitZeroRate(t *testing.T) {
	t.Parallel()
	s, err := ParseScenario([]byte(`
meetings_needed: 10
conversion_rates:
  meeting_set_rate: 0
`))
	require.NoError(t, err)
	assert.Zero(t, s.Rates.MeetingSetRate)
	assert.InDelta(t, 0.055, s.Rates.ReplyRate, 1e-9)

	_, err = New(catalog.Default(), nil).Estimate(s.Input)
	assert.ErrorIs(t, err, rates.ErrInvalidRate)
}

func TestParseScenario_DefaultSelection(t *testing.T) {
	t.Parallel()
	s, err := ParseScenario([]byte("meetings_needed: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSelection(), s.Vendors)
}

func TestLoadScenario_Errors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseScenario([]byte("meetings_needed: [oops"))
	assert.Error(t, err)
}
