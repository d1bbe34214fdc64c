// Package estimate combines the funnel, the cost pricer and the waterfall
// analyzer into one campaign estimate.
package estimate

import (
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/funnel"
	"github.com/sells-group/outbound-cli/internal/rates"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

// Input is everything a campaign estimate depends on. Rates are used as
// given; unset infrastructure fields fall back to cost.DefaultInfrastructure.
type Input struct {
	MeetingsNeeded float64             `json:"meetings_needed" yaml:"meetings_needed"`
	Rates          rates.Set           `json:"conversion_rates" yaml:"conversion_rates"`
	Vendors        cost.Selection      `json:"providers" yaml:"providers"`
	Enrichments    []cost.AddOn        `json:"enrichments,omitempty" yaml:"enrichments,omitempty"`
	Waterfalls     []waterfall.Config  `json:"waterfalls,omitempty" yaml:"waterfalls,omitempty"`
	Infrastructure cost.Infrastructure `json:"infrastructure,omitempty" yaml:"infrastructure,omitempty"`
	Headcount      cost.Headcount      `json:"headcount,omitempty" yaml:"headcount,omitempty"`
}

// Result is a complete campaign estimate.
type Result struct {
	Stages     funnel.Stages        `json:"stages"`
	Volumes    funnel.Volumes       `json:"volumes"`
	Rates      rates.Set            `json:"conversion_rates"`
	LineItems  []cost.LineItem      `json:"cost_breakdown"`
	Summary    cost.Summary         `json:"summary"`
	Waterfalls []waterfall.Analysis `json:"waterfall_analyses,omitempty"`
}

// Estimator runs estimates against one vendor lookup.
type Estimator struct {
	pricer   *cost.Pricer
	analyzer *waterfall.Analyzer
}

// New creates an Estimator. A nil selectTier uses catalog.TierForVolume.
func New(vendors catalog.Lookup, selectTier cost.TierSelector) *Estimator {
	return &Estimator{
		pricer:   cost.NewPricer(vendors, selectTier),
		analyzer: waterfall.NewAnalyzer(vendors),
	}
}

// Analyzer returns the waterfall analyzer sharing this estimator's lookup.
func (e *Estimator) Analyzer() *waterfall.Analyzer {
	return e.analyzer
}

// Estimate reverse-calculates the funnel for in, prices it and analyzes the
// enabled waterfalls. Invalid rates (including zero) and unresolvable
// required vendors abort with no partial result; the errors are returned as
// the engines produce them so callers can match them with errors.Is and
// errors.As.
func (e *Estimator) Estimate(in Input) (*Result, error) {
	set := in.Rates

	volumes, err := funnel.Reverse(in.MeetingsNeeded, set)
	if err != nil {
		return nil, err
	}

	items, err := e.pricer.Price(volumes, in.Vendors, in.Enrichments, in.Infrastructure)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Stages:    volumes.Rounded(),
		Volumes:   volumes,
		Rates:     set,
		LineItems: items,
		Summary:   cost.Summarize(items, in.MeetingsNeeded, in.Headcount),
	}

	// Waterfalls enrich the same contacts the email finding stage prices.
	if len(in.Waterfalls) > 0 {
		res.Waterfalls = e.analyzer.AnalyzeEnabled(in.Waterfalls, res.Stages.ContactsWithEmails)
	}

	zap.L().Debug("estimate: computed",
		zap.Float64("meetings", in.MeetingsNeeded),
		zap.Int("leads", res.Stages.LeadsToSource),
		zap.Int("line_items", len(items)),
		zap.Float64("total_cost", res.Summary.TotalCost),
	)
	return res, nil
}
