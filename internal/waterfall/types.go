package waterfall

import "github.com/sells-group/outbound-cli/internal/catalog"

// Category is the enrichment a waterfall performs. It selects which unit
// cost each step's vendor is billed at.
type Category string

// Waterfall categories.
const (
	EmailFinding      Category = "email_finding"
	PhoneFinding      Category = "phone_finding"
	EmailVerification Category = "email_verification"
)

// Operation returns the vendor cost field billed for this category.
func (c Category) Operation() (catalog.Operation, bool) {
	switch c {
	case EmailFinding:
		return catalog.OpEmailFind, true
	case PhoneFinding:
		return catalog.OpPhoneFind, true
	case EmailVerification:
		return catalog.OpEmailVerify, true
	}
	return "", false
}

// Step is one vendor in the fallback sequence. ExpectedCoverage is the
// share of the contacts reaching this step that it resolves.
type Step struct {
	ID               string  `json:"id" yaml:"id"`
	VendorID         string  `json:"provider_id" yaml:"provider_id"`
	Order            int     `json:"order" yaml:"order"`
	ExpectedCoverage float64 `json:"expected_coverage_rate" yaml:"expected_coverage_rate"`
}

// Config is a named, ordered vendor sequence.
type Config struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Steps    []Step   `json:"steps" yaml:"steps"`
}

// StepResult is the simulated outcome of one step.
type StepResult struct {
	StepNumber        int     `json:"step_number"`
	VendorID          string  `json:"provider_id"`
	VendorName        string  `json:"provider_name"`
	ContactsProcessed int     `json:"contacts_processed"`
	SuccessfulFinds   int     `json:"successful_finds"`
	UnitCost          float64 `json:"unit_cost"`
	Cost              float64 `json:"cost"`
}

// Analysis is the blended outcome of running a waterfall.
type Analysis struct {
	Config                Config       `json:"config"`
	TotalContacts         int          `json:"total_contacts"`
	TotalFound            int          `json:"total_found"`
	Remaining             int          `json:"remaining"`
	TotalCoverageRate     float64      `json:"total_coverage_rate"`
	TotalCost             float64      `json:"total_cost"`
	CostPerSuccessfulFind float64      `json:"cost_per_successful_find"`
	Steps                 []StepResult `json:"breakdown_by_step"`
	SkippedSteps          []string     `json:"skipped_steps,omitempty"`
}

// Outcome summarizes coverage and cost for one approach.
type Outcome struct {
	Coverage    float64 `json:"coverage"`
	Cost        float64 `json:"cost"`
	CostPerFind float64 `json:"cost_per_find"`
}

// Comparison sets a waterfall against a single vendor.
type Comparison struct {
	Waterfall Outcome `json:"waterfall"`
	Single    Outcome `json:"single"`
	// CoverageIncrease and CostIncrease are waterfall minus single vendor.
	CoverageIncrease float64 `json:"coverage_increase"`
	CostIncrease     float64 `json:"cost_increase"`
}
