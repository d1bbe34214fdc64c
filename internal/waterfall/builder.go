package waterfall

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// DefaultStepCoverage is the coverage given to a newly added step.
const DefaultStepCoverage = 0.6

// NewConfig returns an empty, enabled waterfall for category.
func NewConfig(name string, category Category) Config {
	if name == "" {
		name = strings.ReplaceAll(string(category), "_", " ") + " waterfall"
	}
	return Config{
		ID:       "waterfall-" + uuid.NewString(),
		Name:     name,
		Category: category,
		Enabled:  true,
		Steps:    []Step{},
	}
}

// AddStep returns a copy of c with vendorID appended as the last step. A
// negative coverage takes DefaultStepCoverage.
func (c Config) AddStep(vendorID string, coverage float64) Config {
	if coverage < 0 {
		coverage = DefaultStepCoverage
	}
	out := c.clone()
	out.Steps = append(out.Steps, Step{
		ID:               "step-" + uuid.NewString(),
		VendorID:         vendorID,
		Order:            len(out.Steps) + 1,
		ExpectedCoverage: coverage,
	})
	return out
}

// RemoveStep returns a copy of c without the step stepID, with the
// remaining steps renumbered 1..N in their current order.
func (c Config) RemoveStep(stepID string) Config {
	out := c.clone()
	kept := make([]Step, 0, len(out.Steps))
	for _, s := range sortedSteps(out.Steps) {
		if s.ID == stepID {
			continue
		}
		s.Order = len(kept) + 1
		kept = append(kept, s)
	}
	out.Steps = kept
	return out
}

// SetCoverage returns a copy of c with stepID's coverage set from a
// percentage in [0, 100].
func (c Config) SetCoverage(stepID string, percent float64) (Config, error) {
	if percent < 0 || percent > 100 {
		return c, eris.Errorf("waterfall: coverage %v%% out of range", percent)
	}
	out := c.clone()
	for i := range out.Steps {
		if out.Steps[i].ID == stepID {
			out.Steps[i].ExpectedCoverage = percent / 100
			return out, nil
		}
	}
	return c, eris.Errorf("waterfall: step %q not found", stepID)
}

// Toggle returns a copy of c with Enabled flipped.
func (c Config) Toggle() Config {
	out := c.clone()
	out.Enabled = !out.Enabled
	return out
}

// Validate checks the category, that coverages are within [0, 1], and that
// step orders are unique.
func (c Config) Validate() error {
	if _, ok := c.Category.Operation(); !ok {
		return eris.Errorf("waterfall: %q has unknown category %q", c.Name, c.Category)
	}
	seen := make(map[int]bool, len(c.Steps))
	for _, s := range c.Steps {
		if s.ExpectedCoverage < 0 || s.ExpectedCoverage > 1 {
			return eris.Errorf("waterfall: step %d coverage %v outside [0, 1]", s.Order, s.ExpectedCoverage)
		}
		if seen[s.Order] {
			return eris.Errorf("waterfall: duplicate step order %d", s.Order)
		}
		seen[s.Order] = true
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.Steps = append([]Step(nil), c.Steps...)
	return out
}
