package cost

import (
	"github.com/sells-group/outbound-cli/internal/funnel"
)

// Infrastructure holds sending-infrastructure parameters. Capacities of zero
// or less take the defaults from DefaultInfrastructure. Costs are pointers
// so that an explicit 0 (domains or inboxes already owned) is kept; only a
// nil or negative cost takes the default.
type Infrastructure struct {
	EmailsPerDomain        int      `json:"emails_per_domain,omitempty" yaml:"emails_per_domain,omitempty" mapstructure:"emails_per_domain"`
	EmailsPerInboxPerMonth int      `json:"emails_per_inbox_per_month,omitempty" yaml:"emails_per_inbox_per_month,omitempty" mapstructure:"emails_per_inbox_per_month"`
	InboxesPerDomain       int      `json:"inboxes_per_domain,omitempty" yaml:"inboxes_per_domain,omitempty" mapstructure:"inboxes_per_domain"`
	DomainCostYearly       *float64 `json:"domain_cost_yearly,omitempty" yaml:"domain_cost_yearly,omitempty" mapstructure:"domain_cost_yearly"`
	InboxCostMonthly       *float64 `json:"inbox_cost_monthly,omitempty" yaml:"inbox_cost_monthly,omitempty" mapstructure:"inbox_cost_monthly"`
}

// Dollars returns a pointer to v, for the optional cost fields.
func Dollars(v float64) *float64 {
	return &v
}

// DefaultInfrastructure returns the stock infrastructure assumptions.
func DefaultInfrastructure() Infrastructure {
	return Infrastructure{
		EmailsPerDomain:        500,
		EmailsPerInboxPerMonth: 200,
		InboxesPerDomain:       3,
		DomainCostYearly:       Dollars(13),
		InboxCostMonthly:       Dollars(6),
	}
}

// DomainYearly returns the yearly domain cost, or the default when unset.
func (i Infrastructure) DomainYearly() float64 {
	if i.DomainCostYearly == nil || *i.DomainCostYearly < 0 {
		return *DefaultInfrastructure().DomainCostYearly
	}
	return *i.DomainCostYearly
}

// InboxMonthly returns the monthly inbox cost, or the default when unset.
func (i Infrastructure) InboxMonthly() float64 {
	if i.InboxCostMonthly == nil || *i.InboxCostMonthly < 0 {
		return *DefaultInfrastructure().InboxCostMonthly
	}
	return *i.InboxCostMonthly
}

// WithDefaults fills unset fields from DefaultInfrastructure. The returned
// value never has nil costs.
func (i Infrastructure) WithDefaults() Infrastructure {
	d := DefaultInfrastructure()
	if i.EmailsPerDomain <= 0 {
		i.EmailsPerDomain = d.EmailsPerDomain
	}
	if i.EmailsPerInboxPerMonth <= 0 {
		i.EmailsPerInboxPerMonth = d.EmailsPerInboxPerMonth
	}
	if i.InboxesPerDomain <= 0 {
		i.InboxesPerDomain = d.InboxesPerDomain
	}
	i.DomainCostYearly = Dollars(i.DomainYearly())
	i.InboxCostMonthly = Dollars(i.InboxMonthly())
	return i
}

// Unit is the population an enrichment add-on is priced against.
type Unit string

// Add-on units.
const (
	UnitContact Unit = "contact"
	UnitEmail   Unit = "email"
	UnitPhone   Unit = "phone"
	UnitCompany Unit = "company"
)

// population returns the funnel volume the unit applies to: sourced leads
// for contacts and companies, contacts with emails for emails and phones.
func (u Unit) population(v funnel.Volumes) (float64, bool) {
	switch u {
	case UnitContact, UnitCompany:
		return v.LeadsToSource, true
	case UnitEmail, UnitPhone:
		return v.ContactsWithEmails, true
	}
	return 0, false
}

// AddOn is a one-off enrichment priced per unit on a share of the funnel.
type AddOn struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	VendorID    string  `json:"provider_id" yaml:"provider_id"`
	Operation   string  `json:"operation,omitempty" yaml:"operation,omitempty"`
	CostPerUnit float64 `json:"cost_per_unit" yaml:"cost_per_unit"`
	Unit        Unit    `json:"unit_type" yaml:"unit_type"`
	// ApplyToPercentage is 0-100; values outside are clamped.
	ApplyToPercentage float64 `json:"apply_to_percentage" yaml:"apply_to_percentage"`
	Enabled           bool    `json:"enabled" yaml:"enabled"`
}

func (a AddOn) percentage() float64 {
	switch {
	case a.ApplyToPercentage < 0:
		return 0
	case a.ApplyToPercentage > 100:
		return 100
	}
	return a.ApplyToPercentage
}
