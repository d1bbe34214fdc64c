// Package waterfall simulates sequential multi-vendor enrichment, where
// each vendor only processes the contacts earlier vendors failed on.
package waterfall

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/funnel"
)

// ErrUnknownVendor is returned by Compare when the alternative vendor id
// does not resolve.
var ErrUnknownVendor = eris.New("waterfall: unknown vendor")

// defaultSingleCoverage stands in for the single vendor's coverage when
// the waterfall has no steps to borrow it from.
const defaultSingleCoverage = 0.6

// Analyzer prices waterfalls against a vendor lookup.
type Analyzer struct {
	vendors catalog.Lookup
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(vendors catalog.Lookup) *Analyzer {
	return &Analyzer{vendors: vendors}
}

// Analyze runs totalContacts through the steps of cfg in ascending order.
// Each step resolves ceil(remaining x coverage) contacts and is billed for
// every contact it attempts, found or not. Steps naming an unknown vendor
// are skipped and leave the remaining pool untouched.
func (a *Analyzer) Analyze(cfg Config, totalContacts int) Analysis {
	if totalContacts < 0 {
		totalContacts = 0
	}
	op, _ := cfg.Category.Operation()

	out := Analysis{
		Config:        cfg,
		TotalContacts: totalContacts,
		Steps:         []StepResult{},
	}
	remaining := totalContacts

	for _, step := range sortedSteps(cfg.Steps) {
		vendor, ok := a.vendors.Vendor(step.VendorID)
		if !ok {
			zap.L().Debug("waterfall: unknown vendor, step skipped",
				zap.String("waterfall", cfg.ID),
				zap.String("vendor", step.VendorID),
				zap.Int("order", step.Order),
			)
			out.SkippedSteps = append(out.SkippedSteps, step.VendorID)
			continue
		}

		found := funnel.Ceil(float64(remaining) * clampCoverage(step.ExpectedCoverage))
		if found > remaining {
			found = remaining
		}
		unit, _ := vendor.UnitCost(op)
		cost := float64(remaining) * unit

		out.Steps = append(out.Steps, StepResult{
			StepNumber:        step.Order,
			VendorID:          vendor.ID,
			VendorName:        vendor.Name,
			ContactsProcessed: remaining,
			SuccessfulFinds:   found,
			UnitCost:          unit,
			Cost:              cost,
		})

		remaining -= found
		out.TotalFound += found
		out.TotalCost += cost
	}

	out.Remaining = remaining
	if totalContacts > 0 {
		out.TotalCoverageRate = float64(out.TotalFound) / float64(totalContacts)
	}
	if out.TotalFound > 0 {
		out.CostPerSuccessfulFind = out.TotalCost / float64(out.TotalFound)
	}
	return out
}

// Compare estimates what a single vendor would have achieved on the same
// contacts. The single vendor's coverage is approximated by the first
// step's expected coverage (defaultSingleCoverage when there is no first
// step or its coverage is zero), so this is an illustration rather than a
// counterfactual.
func (a *Analyzer) Compare(analysis Analysis, vendorID string, totalContacts int) (Comparison, error) {
	vendor, ok := a.vendors.Vendor(vendorID)
	if !ok {
		return Comparison{}, eris.Wrapf(ErrUnknownVendor, "waterfall: compare against %q", vendorID)
	}
	op, _ := analysis.Config.Category.Operation()
	unit, _ := vendor.UnitCost(op)

	coverage := defaultSingleCoverage
	if steps := sortedSteps(analysis.Config.Steps); len(steps) > 0 && clampCoverage(steps[0].ExpectedCoverage) > 0 {
		coverage = clampCoverage(steps[0].ExpectedCoverage)
	}

	single := Outcome{
		Coverage: coverage,
		Cost:     float64(totalContacts) * unit,
	}
	if finds := float64(totalContacts) * coverage; finds > 0 {
		single.CostPerFind = single.Cost / finds
	}

	return Comparison{
		Waterfall: Outcome{
			Coverage:    analysis.TotalCoverageRate,
			Cost:        analysis.TotalCost,
			CostPerFind: analysis.CostPerSuccessfulFind,
		},
		Single:           single,
		CoverageIncrease: analysis.TotalCoverageRate - single.Coverage,
		CostIncrease:     analysis.TotalCost - single.Cost,
	}, nil
}

// AnalyzeEnabled analyzes every enabled config in order.
func (a *Analyzer) AnalyzeEnabled(cfgs []Config, totalContacts int) []Analysis {
	var out []Analysis
	for _, c := range cfgs {
		if !c.Enabled {
			continue
		}
		out = append(out, a.Analyze(c, totalContacts))
	}
	return out
}

func sortedSteps(steps []Step) []Step {
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

func clampCoverage(c float64) float64 {
	switch {
	case c < 0 || math.IsNaN(c):
		return 0
	case c > 1:
		return 1
	}
	return c
}
