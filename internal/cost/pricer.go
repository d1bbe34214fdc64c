// Package cost prices the stage volumes of an outbound campaign against
// vendor rate cards and subscription tiers.
package cost

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/funnel"
)

// ErrMissingVendor is matched by every MissingVendorError via errors.Is.
var ErrMissingVendor = eris.New("cost: missing vendor")

// MissingVendorError reports a required stage whose vendor id does not
// resolve.
type MissingVendorError struct {
	Stage    catalog.Category
	VendorID string
}

func (e *MissingVendorError) Error() string {
	if e.VendorID == "" {
		return fmt.Sprintf("cost: no vendor selected for required stage %s", e.Stage)
	}
	return fmt.Sprintf("cost: unknown vendor %q for required stage %s", e.VendorID, e.Stage)
}

// Is reports whether target is ErrMissingVendor.
func (e *MissingVendorError) Is(target error) bool {
	return target == ErrMissingVendor
}

// Selection names the vendor chosen for each stage. ContactSourcing and
// EmailVerification may be empty to skip the stage. PhoneFinding is the
// vendor for phone add-ons that name none.
type Selection struct {
	ContactSourcing   string `json:"contact_sourcing,omitempty" yaml:"contact_sourcing,omitempty"`
	EmailFinding      string `json:"email_finding" yaml:"email_finding"`
	EmailVerification string `json:"email_verification,omitempty" yaml:"email_verification,omitempty"`
	EmailSending      string `json:"email_sending" yaml:"email_sending"`
	PhoneFinding      string `json:"phone_finding,omitempty" yaml:"phone_finding,omitempty"`
}

// TierSelector picks the subscription tier of v that covers volume in
// dimension dim.
type TierSelector func(v catalog.Vendor, volume int, dim catalog.Capacity) (catalog.Tier, bool)

// Pricer turns funnel volumes into an itemized cost breakdown.
type Pricer struct {
	vendors    catalog.Lookup
	selectTier TierSelector
	printer    *message.Printer
}

// NewPricer creates a Pricer. A nil selectTier uses catalog.TierForVolume.
func NewPricer(vendors catalog.Lookup, selectTier TierSelector) *Pricer {
	if selectTier == nil {
		selectTier = catalog.TierForVolume
	}
	return &Pricer{
		vendors:    vendors,
		selectTier: selectTier,
		printer:    message.NewPrinter(language.English),
	}
}

// Price applies each pricing rule in turn. Unknown vendors for required
// stages (email finding, email sending, and contact sourcing when one is
// selected) return a *MissingVendorError; an unknown verification vendor
// disables that stage.
func (p *Pricer) Price(v funnel.Volumes, sel Selection, addOns []AddOn, infra Infrastructure) ([]LineItem, error) {
	infra = infra.WithDefaults()
	var items []LineItem

	if sel.ContactSourcing != "" {
		vendor, err := p.required(catalog.ContactSourcing, sel.ContactSourcing)
		if err != nil {
			return nil, err
		}
		items = append(items, p.sourcing(vendor, v))
	}

	finder, err := p.required(catalog.EmailFinding, sel.EmailFinding)
	if err != nil {
		return nil, err
	}
	if it, ok := p.finding(finder, v); ok {
		items = append(items, it)
	}

	if sel.EmailVerification != "" {
		if verifier, ok := p.vendors.Vendor(sel.EmailVerification); ok {
			if it, ok := p.verification(verifier, v); ok {
				items = append(items, it)
			}
		} else {
			zap.L().Debug("cost: verification vendor not found, stage disabled",
				zap.String("vendor", sel.EmailVerification),
			)
		}
	}

	sender, err := p.required(catalog.EmailSending, sel.EmailSending)
	if err != nil {
		return nil, err
	}
	items = append(items, p.sending(sender, v))
	items = append(items, p.domains(v, infra))
	if !sender.UnlimitedInboxes || sender.BillsInboxesSeparately {
		items = append(items, p.inboxes(v, infra))
	}

	for _, a := range addOns {
		if !a.Enabled {
			continue
		}
		if a.VendorID == "" && a.Unit == UnitPhone {
			a = p.selectedPhoneVendor(a, sel.PhoneFinding)
		}
		if it, ok := p.addOn(a, v); ok {
			items = append(items, it)
		}
	}

	return items, nil
}

func (p *Pricer) required(stage catalog.Category, id string) (catalog.Vendor, error) {
	if id == "" {
		return catalog.Vendor{}, &MissingVendorError{Stage: stage}
	}
	vendor, ok := p.vendors.Vendor(id)
	if !ok {
		return catalog.Vendor{}, &MissingVendorError{Stage: stage, VendorID: id}
	}
	return vendor, nil
}

func (p *Pricer) sourcing(vendor catalog.Vendor, v funnel.Volumes) LineItem {
	qty := funnel.Ceil(v.LeadsToSource)
	it := LineItem{
		Kind:        KindSourcing,
		Category:    categorySourcing,
		Vendor:      vendor.Name,
		Operation:   "Search/Export",
		Quantity:    qty,
		CitationURL: vendor.PricingURL,
	}

	if lowest, ok := vendor.LowestTier(); ok && lowest.Free() {
		needed := float64(qty) * vendor.CreditsPerOp()
		if needed <= float64(lowest.Credits) {
			it.Note = p.printer.Sprintf("Free tier covers %d credits/month", lowest.Credits)
			return it
		}
	}

	unit, ok := vendor.UnitCost(catalog.OpContactSearch)
	if !ok {
		unit, _ = vendor.UnitCost(catalog.OpContactExport)
	}
	it.UnitCost = unit
	it.Total = unit * float64(qty)
	return it
}

func (p *Pricer) finding(vendor catalog.Vendor, v funnel.Volumes) (LineItem, bool) {
	unit, ok := vendor.UnitCost(catalog.OpEmailFind)
	if !ok || unit == 0 {
		zap.L().Debug("cost: email finder has no find cost, line omitted", zap.String("vendor", vendor.ID))
		return LineItem{}, false
	}
	qty := funnel.Ceil(v.ContactsWithEmails)
	return LineItem{
		Kind:        KindFinding,
		Category:    categoryFinding,
		Vendor:      vendor.Name,
		UnitCost:    unit,
		Quantity:    qty,
		Total:       unit * float64(qty),
		CitationURL: vendor.PricingURL,
	}, true
}

func (p *Pricer) verification(vendor catalog.Vendor, v funnel.Volumes) (LineItem, bool) {
	unit, ok := vendor.UnitCost(catalog.OpEmailVerify)
	if !ok || unit == 0 {
		return LineItem{}, false
	}
	qty := funnel.Ceil(v.ContactsWithEmails)
	return LineItem{
		Kind:        KindVerification,
		Category:    categoryVerification,
		Vendor:      vendor.Name,
		UnitCost:    unit,
		Quantity:    qty,
		Total:       unit * float64(qty),
		CitationURL: vendor.PricingURL,
	}, true
}

func (p *Pricer) sending(vendor catalog.Vendor, v funnel.Volumes) LineItem {
	volume := funnel.Ceil(v.EmailsDelivered)
	tier, ok := p.selectTier(vendor, volume, catalog.Emails)
	if !ok && len(vendor.Tiers) > 0 {
		tier, ok = vendor.Tiers[len(vendor.Tiers)-1], true
	}

	it := LineItem{
		Kind:        KindSending,
		Category:    categorySending,
		Vendor:      vendor.Name,
		Operation:   "Subscription",
		Quantity:    1,
		CitationURL: vendor.PricingURL,
	}
	if !ok {
		return it
	}

	it.Operation = tier.Name
	it.UnitCost = tier.MonthlyCost
	it.Total = tier.MonthlyCost
	if tier.Emails > 0 {
		it.Note = p.printer.Sprintf("%s tier (up to %d emails/mo)", tier.Name, tier.Emails)
	} else {
		it.Note = fmt.Sprintf("%s tier (no stated email limit)", tier.Name)
	}
	return it
}

func (p *Pricer) domains(v funnel.Volumes, infra Infrastructure) LineItem {
	n := funnel.Ceil(v.EmailsDelivered / float64(infra.EmailsPerDomain))
	monthly := infra.DomainYearly() / 12
	return LineItem{
		Kind:        KindDomains,
		Category:    categoryInfra,
		Vendor:      "Domain Registration",
		Operation:   "Domains",
		UnitCost:    monthly,
		Quantity:    n,
		Total:       monthly * float64(n),
		CitationURL: "https://www.namecheap.com",
		Note:        fmt.Sprintf("%d domains @ $%.2f/mo each (%d inboxes/domain)", n, monthly, infra.InboxesPerDomain),
	}
}

func (p *Pricer) inboxes(v funnel.Volumes, infra Infrastructure) LineItem {
	n := funnel.Ceil(v.EmailsDelivered / float64(infra.EmailsPerInboxPerMonth))
	unit := infra.InboxMonthly()
	return LineItem{
		Kind:        KindInboxes,
		Category:    categoryInfra,
		Vendor:      "Email Inboxes",
		Operation:   "Inbox Setup",
		UnitCost:    unit,
		Quantity:    n,
		Total:       unit * float64(n),
		CitationURL: "https://workspace.google.com/pricing",
		Note:        fmt.Sprintf("%d inboxes @ $%g/mo each", n, unit),
	}
}

// selectedPhoneVendor points a vendorless phone add-on at the selected phone
// vendor. An add-on with no price of its own takes the vendor's phone_find
// cost.
func (p *Pricer) selectedPhoneVendor(a AddOn, vendorID string) AddOn {
	a.VendorID = vendorID
	if a.CostPerUnit != 0 {
		return a
	}
	if vendor, ok := p.vendors.Vendor(vendorID); ok {
		a.CostPerUnit, _ = vendor.UnitCost(catalog.OpPhoneFind)
	}
	return a
}

func (p *Pricer) addOn(a AddOn, v funnel.Volumes) (LineItem, bool) {
	vendor, ok := p.vendors.Vendor(a.VendorID)
	if !ok {
		zap.L().Debug("cost: add-on vendor not found, skipped",
			zap.String("add_on", a.ID),
			zap.String("vendor", a.VendorID),
		)
		return LineItem{}, false
	}
	base, ok := a.Unit.population(v)
	if !ok {
		zap.L().Warn("cost: add-on has unknown unit, skipped",
			zap.String("add_on", a.ID),
			zap.String("unit", string(a.Unit)),
		)
		return LineItem{}, false
	}

	pct := a.percentage()
	qty := funnel.Ceil(base * pct / 100)
	it := LineItem{
		Kind:        KindEnrichment,
		Category:    categoryEnrichment,
		Vendor:      vendor.Name,
		Operation:   a.Name,
		UnitCost:    a.CostPerUnit,
		Quantity:    qty,
		Total:       a.CostPerUnit * float64(qty),
		CitationURL: vendor.PricingURL,
	}
	if pct < 100 {
		it.Note = fmt.Sprintf("Applied to %g%% of %ss", pct, a.Unit)
	}
	return it, true
}
