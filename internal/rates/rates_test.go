package rates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	d := Defaults()
	assert.InDelta(t, 0.2, d.MeetingSetRate, 1e-9)
	assert.InDelta(t, 0.5, d.QualifiedReplyRate, 1e-9)
	assert.InDelta(t, 0.055, d.ReplyRate, 1e-9)
	assert.InDelta(t, 0.85, d.DeliverabilityRate, 1e-9)
	assert.InDelta(t, 0.5, d.EmailFindRate, 1e-9)
	assert.InDelta(t, 0.85, d.PostEnrichmentValidRate, 1e-9)
	assert.NoError(t, d.Validate())
}

func TestAssumptions_DefaultsWithinBounds(t *testing.T) {
	t.Parallel()
	for _, a := range Assumptions() {
		assert.GreaterOrEqual(t, a.Rate, a.Min, a.ID)
		assert.LessOrEqual(t, a.Rate, a.Max, a.ID)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Set)
		wantBad string
	}{
		{"zero meeting set", func(s *Set) { s.MeetingSetRate = 0 }, MeetingSet},
		{"negative reply", func(s *Set) { s.ReplyRate = -0.1 }, Reply},
		{"above one", func(s *Set) { s.DeliverabilityRate = 1.5 }, Deliverability},
		{"NaN email find", func(s *Set) { s.EmailFindRate = math.NaN() }, EmailFind},
		{"zero post enrichment", func(s *Set) { s.PostEnrichmentValidRate = 0 }, PostEnrichmentValid},
		{"exactly one is valid", func(s *Set) { s.QualifiedReplyRate = 1 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantBad == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRate)

			var rateErr *InvalidRateError
			require.ErrorAs(t, err, &rateErr)
			assert.Equal(t, tt.wantBad, rateErr.Rate)
			assert.Contains(t, err.Error(), tt.wantBad)
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	s := Defaults()
	s.ReplyRate = 0.5
	s.MeetingSetRate = 0.01

	got := Clamp(s)
	assert.InDelta(t, 0.10, got.ReplyRate, 1e-9)
	assert.InDelta(t, 0.15, got.MeetingSetRate, 1e-9)
	assert.InDelta(t, 0.85, got.DeliverabilityRate, 1e-9)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	a, ok := Lookup(Reply)
	require.True(t, ok)
	assert.Equal(t, "Reply Rate", a.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestWith(t *testing.T) {
	t.Parallel()
	base := Defaults()
	for _, r := range base.Named() {
		got, ok := base.With(r.ID, 0.42)
		require.True(t, ok, r.ID)
		for _, g := range got.Named() {
			if g.ID == r.ID {
				assert.InDelta(t, 0.42, g.Value, 1e-9)
			}
		}
	}

	got, ok := base.With("nope", 0.1)
	assert.False(t, ok)
	assert.Equal(t, base, got)
}
