// Package catalog defines vendor pricing records and the read-only catalog
// the pricing engines look vendors up in.
package catalog

// Category groups vendors by the funnel stage they serve.
type Category string

// Vendor categories.
const (
	ContactSourcing   Category = "contact_sourcing"
	EmailFinding      Category = "email_finding"
	EmailVerification Category = "email_verification"
	PhoneFinding      Category = "phone_finding"
	EmailSending      Category = "email_sending"
	Infrastructure    Category = "infrastructure"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case ContactSourcing, EmailFinding, EmailVerification, PhoneFinding, EmailSending, Infrastructure:
		return true
	}
	return false
}

// Operation keys a vendor's per-unit cost.
type Operation string

// Priced operations.
const (
	OpEmailFind     Operation = "email_find"
	OpEmailVerify   Operation = "email_verify"
	OpPhoneFind     Operation = "phone_find"
	OpContactSearch Operation = "contact_search"
	OpContactExport Operation = "contact_export"
	OpCompanySearch Operation = "company_search"
	OpEmailSend1K   Operation = "email_send_1k"
	OpInboxMonthly  Operation = "inbox_monthly"
	OpDomainYearly  Operation = "domain_yearly"
)

// Capacity is the dimension a tier's ceiling is measured in.
type Capacity string

// Capacity dimensions.
const (
	Credits  Capacity = "credits"
	Emails   Capacity = "emails"
	Contacts Capacity = "contacts"
)

// Tier is a flat-rate subscription plan. A zero ceiling means the tier
// states no limit in that dimension.
type Tier struct {
	Name        string   `json:"name" yaml:"name"`
	MonthlyCost float64  `json:"monthly_cost" yaml:"monthly_cost"`
	Credits     int      `json:"credits,omitempty" yaml:"credits,omitempty"`
	Emails      int      `json:"emails,omitempty" yaml:"emails,omitempty"`
	Contacts    int      `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	Lowest      bool     `json:"is_lowest_tier" yaml:"is_lowest_tier"`
}

// Ceiling returns the tier's limit in dimension c.
func (t Tier) Ceiling(c Capacity) int {
	switch c {
	case Credits:
		return t.Credits
	case Emails:
		return t.Emails
	case Contacts:
		return t.Contacts
	}
	return 0
}

// Free reports whether the tier costs nothing.
func (t Tier) Free() bool {
	return t.MonthlyCost == 0
}

// Vendor is one provider's pricing metadata.
type Vendor struct {
	ID         string                `json:"id" yaml:"id"`
	Name       string                `json:"name" yaml:"name"`
	Category   Category              `json:"category" yaml:"category"`
	WebsiteURL string                `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	PricingURL string                `json:"pricing_url" yaml:"pricing_url"`
	Tiers      []Tier                `json:"tiers" yaml:"tiers"`
	UnitCosts  map[Operation]float64 `json:"cost_per_unit" yaml:"cost_per_unit"`
	Notes      []string              `json:"notes,omitempty" yaml:"notes,omitempty"`
	// CreditsPerOperation is the documented credit burn of one lookup.
	// Zero means one credit.
	CreditsPerOperation float64 `json:"credits_per_operation,omitempty" yaml:"credits_per_operation,omitempty"`
	UnlimitedInboxes    bool    `json:"unlimited_inboxes,omitempty" yaml:"unlimited_inboxes,omitempty"`
	// BillsInboxesSeparately marks senders whose inboxes cost extra even
	// though the plan advertises unlimited accounts.
	BillsInboxesSeparately bool   `json:"bills_inboxes_separately,omitempty" yaml:"bills_inboxes_separately,omitempty"`
	LastUpdated            string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// UnitCost returns the per-unit cost for op and whether the vendor defines it.
func (v Vendor) UnitCost(op Operation) (float64, bool) {
	c, ok := v.UnitCosts[op]
	return c, ok
}

// LowestTier returns the tier flagged as the entry plan.
func (v Vendor) LowestTier() (Tier, bool) {
	for _, t := range v.Tiers {
		if t.Lowest {
			return t, true
		}
	}
	return Tier{}, false
}

// CreditsPerOp returns CreditsPerOperation, defaulting to 1.
func (v Vendor) CreditsPerOp() float64 {
	if v.CreditsPerOperation <= 0 {
		return 1
	}
	return v.CreditsPerOperation
}

func (v Vendor) clone() Vendor {
	out := v
	out.Tiers = make([]Tier, len(v.Tiers))
	for i, t := range v.Tiers {
		t.Features = append([]string(nil), t.Features...)
		out.Tiers[i] = t
	}
	out.UnitCosts = make(map[Operation]float64, len(v.UnitCosts))
	for k, c := range v.UnitCosts {
		out.UnitCosts[k] = c
	}
	out.Notes = append([]string(nil), v.Notes...)
	return out
}
