package estimate

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/rates"
)

// DefaultSelection is the vendor selection used when a scenario names none.
func DefaultSelection() cost.Selection {
	return cost.Selection{
		ContactSourcing:   "apollo",
		EmailFinding:      "leadmagic",
		EmailVerification: "leadmagic_verify",
		EmailSending:      "instantly",
	}
}

// DefaultInput is the stock estimate: 10 meetings at the default rates
// through DefaultSelection.
func DefaultInput() Input {
	return Input{
		MeetingsNeeded: 10,
		Rates:          rates.Defaults(),
		Vendors:        DefaultSelection(),
	}
}

// Scenario is a named estimate input, as stored in a scenario file.
type Scenario struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Input `yaml:",inline"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, eris.Wrapf(err, "estimate: read scenario %s", path)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, eris.Wrapf(err, "estimate: scenario %s", path)
	}
	return s, nil
}

// ParseScenario decodes a YAML scenario. Rates the file leaves out keep
// their defaults; a rate written as 0 stays 0 and fails validation. A
// scenario without a providers block gets DefaultSelection; a partial block
// is kept as written so a missing required vendor still surfaces from
// Estimate.
func ParseScenario(data []byte) (Scenario, error) {
	s := Scenario{Input: Input{Rates: rates.Defaults()}}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, eris.Wrap(err, "estimate: parse scenario")
	}
	if s.Vendors == (cost.Selection{}) {
		s.Vendors = DefaultSelection()
	}
	return s, nil
}
