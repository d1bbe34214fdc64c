package cost

// Kind tags a line item with the pricing rule that produced it.
type Kind string

// Line item kinds.
const (
	KindSourcing     Kind = "contact_sourcing"
	KindFinding      Kind = "email_finding"
	KindVerification Kind = "email_verification"
	KindSending      Kind = "email_sending"
	KindDomains      Kind = "domains"
	KindInboxes      Kind = "inboxes"
	KindEnrichment   Kind = "enrichment"
)

// Recurring reports whether the kind counts toward the monthly recurring
// subscription total. Domains are amortized monthly but are not counted
// here, so they land in setup costs.
func (k Kind) Recurring() bool {
	return k == KindSending || k == KindInboxes
}

// Display categories.
const (
	categorySourcing     = "Contact Sourcing"
	categoryFinding      = "Email Finding"
	categoryVerification = "Email Verification"
	categorySending      = "Email Sending Platform"
	categoryInfra        = "Infrastructure"
	categoryEnrichment   = "Additional Enrichment"
)

// LineItem is one priced entry of the breakdown.
type LineItem struct {
	Kind        Kind    `json:"kind"`
	Category    string  `json:"category"`
	Vendor      string  `json:"provider"`
	Operation   string  `json:"operation,omitempty"`
	UnitCost    float64 `json:"unit_cost"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
	CitationURL string  `json:"citation_url"`
	Note        string  `json:"notes,omitempty"`
}

// Headcount adds SDR salaries to the campaign total when Include is set.
type Headcount struct {
	SDRCount       int     `json:"sdr_count" yaml:"sdr_count" mapstructure:"sdr_count"`
	SDRMonthlyCost float64 `json:"sdr_monthly_cost" yaml:"sdr_monthly_cost" mapstructure:"sdr_monthly_cost"`
	Include        bool    `json:"include_headcount_in_total" yaml:"include_headcount_in_total" mapstructure:"include"`
}

// HeadcountSummary is the headcount-adjusted view of the totals.
type HeadcountSummary struct {
	HeadcountCost               float64 `json:"headcount_cost"`
	TotalCostWithHeadcount      float64 `json:"total_cost_with_headcount"`
	CostPerMeetingWithHeadcount float64 `json:"cost_per_meeting_with_headcount"`
}

// Summary aggregates a breakdown.
type Summary struct {
	TotalCost        float64           `json:"total_cost"`
	MonthlyRecurring float64           `json:"monthly_recurring"`
	SetupCosts       float64           `json:"setup_costs"`
	CostPerMeeting   float64           `json:"cost_per_meeting"`
	Headcount        *HeadcountSummary `json:"headcount,omitempty"`
}

// Summarize totals items. Setup costs are everything that is not a
// recurring subscription, which includes amortized domain registration.
func Summarize(items []LineItem, meetings float64, hc Headcount) Summary {
	var s Summary
	for _, it := range items {
		s.TotalCost += it.Total
		if it.Kind.Recurring() {
			s.MonthlyRecurring += it.Total
		}
	}
	s.SetupCosts = s.TotalCost - s.MonthlyRecurring
	if meetings > 0 {
		s.CostPerMeeting = s.TotalCost / meetings
	}

	if hc.Include {
		h := &HeadcountSummary{HeadcountCost: float64(hc.SDRCount) * hc.SDRMonthlyCost}
		h.TotalCostWithHeadcount = s.TotalCost + h.HeadcountCost
		if meetings > 0 {
			h.CostPerMeetingWithHeadcount = h.TotalCostWithHeadcount / meetings
		}
		s.Headcount = h
	}
	return s
}
