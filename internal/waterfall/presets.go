package waterfall

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Presets are named waterfall configs.
type Presets map[string]Config

// Names returns the preset keys in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Ordered returns the configs sorted by preset key.
func (p Presets) Ordered() []Config {
	out := make([]Config, 0, len(p))
	for _, k := range p.Names() {
		out = append(out, p[k].clone())
	}
	return out
}

// DefaultPresets returns the built-in presets. Some steps name vendors
// that are not in the default catalog; the analyzer skips those.
func DefaultPresets() Presets {
	return Presets{
		"email_finding_max_coverage": {
			ID:       "preset-email-max",
			Name:     "Max Email Coverage",
			Category: EmailFinding,
			Enabled:  true,
			Steps: []Step{
				{ID: "step-1", VendorID: "apollo", Order: 1, ExpectedCoverage: 0.65},
				{ID: "step-2", VendorID: "hunter", Order: 2, ExpectedCoverage: 0.50},
				{ID: "step-3", VendorID: "prospeo", Order: 3, ExpectedCoverage: 0.40},
			},
		},
		"email_finding_cost_optimized": {
			ID:       "preset-email-cost",
			Name:     "Cost-Optimized Email",
			Category: EmailFinding,
			Enabled:  true,
			Steps: []Step{
				{ID: "step-1", VendorID: "apollo", Order: 1, ExpectedCoverage: 0.65},
				{ID: "step-2", VendorID: "findymail", Order: 2, ExpectedCoverage: 0.45},
			},
		},
		"phone_finding_standard": {
			ID:       "preset-phone-std",
			Name:     "Standard Phone Enrichment",
			Category: PhoneFinding,
			Enabled:  true,
			Steps: []Step{
				{ID: "step-1", VendorID: "bettercontact", Order: 1, ExpectedCoverage: 0.70},
				{ID: "step-2", VendorID: "lusha", Order: 2, ExpectedCoverage: 0.40},
			},
		},
	}
}

// LoadPresets reads presets from a YAML file with a top-level "waterfalls"
// map. Configs missing an id take their key; missing step orders take their
// position.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "waterfall: read presets %s", path)
	}

	var wrapper struct {
		Waterfalls Presets `yaml:"waterfalls"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "waterfall: parse presets")
	}
	if len(wrapper.Waterfalls) == 0 {
		return nil, eris.Errorf("waterfall: no presets in %s", path)
	}

	for key, cfg := range wrapper.Waterfalls {
		if cfg.ID == "" {
			cfg.ID = key
		}
		if cfg.Name == "" {
			cfg.Name = key
		}
		for i := range cfg.Steps {
			if cfg.Steps[i].Order == 0 {
				cfg.Steps[i].Order = i + 1
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, eris.Wrapf(err, "waterfall: preset %s", key)
		}
		wrapper.Waterfalls[key] = cfg
	}
	return wrapper.Waterfalls, nil
}

// ResolvePresets returns the presets at path, or the built-in ones when
// path is empty.
func ResolvePresets(path string) (Presets, error) {
	if path == "" {
		return DefaultPresets(), nil
	}
	return LoadPresets(path)
}
