package catalog

// Default returns the built-in vendor catalog. Prices were last checked
// 2026-02-07 against each vendor's public pricing page.
func Default() *Catalog {
	c, err := New(defaultVendors()...)
	if err != nil {
		// The built-in list is static; a failure here is a programming error.
		panic(err)
	}
	return c
}

func defaultVendors() []Vendor {
	const updated = "2026-02-07"
	return []Vendor{
		// Contact sourcing.
		{
			ID: "apollo", Name: "Apollo", Category: ContactSourcing,
			WebsiteURL: "https://www.apollo.io",
			PricingURL: "https://www.apollo.io/pricing",
			Tiers: []Tier{
				{Name: "Free", MonthlyCost: 0, Credits: 10000, Features: []string{"10K credits/month", "Basic search", "Limited exports"}, Lowest: true},
				{Name: "Basic", MonthlyCost: 49, Credits: 12000, Features: []string{"12K credits/month", "Advanced search", "CSV export"}},
				{Name: "Professional", MonthlyCost: 99, Credits: 24000, Features: []string{"24K credits/month", "API access", "CRM sync"}},
			},
			UnitCosts: map[Operation]float64{
				OpContactSearch: 0.05, // 2 credits at $0.025
				OpContactExport: 0.05,
			},
			CreditsPerOperation: 2,
			Notes:               []string{"Free tier: 10K credits/month", "Paid plans: $0.025 per credit", "All operations cost 2 credits"},
			LastUpdated:         updated,
		},
		{
			ID: "peopledatalabs", Name: "People Data Labs", Category: ContactSourcing,
			WebsiteURL: "https://www.peopledatalabs.com",
			PricingURL: "https://www.peopledatalabs.com/pricing",
			Tiers: []Tier{
				{Name: "Developer", MonthlyCost: 0, Credits: 1000, Features: []string{"1K credits/month", "API access"}, Lowest: true},
			},
			UnitCosts:           map[Operation]float64{OpContactSearch: 0.25},
			CreditsPerOperation: 5,
			Notes:               []string{"Pricing varies by volume", "Typical: ~$0.05/credit", "All operations cost 5 credits"},
			LastUpdated:         updated,
		},

		// Email finding.
		{
			ID: "leadmagic", Name: "LeadMagic", Category: EmailFinding,
			WebsiteURL: "https://leadmagic.io",
			PricingURL: "https://leadmagic.io/pricing",
			Tiers: []Tier{
				{Name: "Basic", MonthlyCost: 59.99, Credits: 2500, Features: []string{"Email Finder", "Validation", "Mobile Finder", "API Access"}, Lowest: true},
				{Name: "Essential", MonthlyCost: 99.99, Credits: 10000, Features: []string{"Email Finder", "Validation", "Mobile Finder", "API Access"}},
				{Name: "Growth", MonthlyCost: 179.99, Credits: 20000, Features: []string{"Email Finder", "Validation", "Mobile Finder", "API Access"}},
			},
			UnitCosts: map[Operation]float64{
				OpEmailFind:   0.024,
				OpEmailVerify: 0.0012, // 1/20 credit
				OpPhoneFind:   0.12,   // 5 credits
			},
			CreditsPerOperation: 1,
			Notes: []string{
				"1 credit per valid email found",
				"No charge for catch-all emails",
				"1 credit per 20 email validations",
				"5 credits per mobile number",
				"Credits roll over monthly",
			},
			LastUpdated: updated,
		},
		{
			ID: "icypeas", Name: "Icypeas", Category: EmailFinding,
			WebsiteURL: "https://icypeas.com",
			PricingURL: "https://icypeas.com/pricing",
			Tiers: []Tier{
				{Name: "Basic", MonthlyCost: 19, Credits: 1000, Features: []string{"Email Finder", "Email Verifier", "Domain Scan"}, Lowest: true},
				{Name: "Premium", MonthlyCost: 39, Credits: 4000, Features: []string{"Email Finder", "Email Verifier", "Domain Scan"}},
				{Name: "Advanced", MonthlyCost: 89, Credits: 10000, Features: []string{"Email Finder", "Email Verifier", "Domain Scan"}},
			},
			UnitCosts: map[Operation]float64{
				OpEmailFind:   0.019,
				OpEmailVerify: 0.0019,
			},
			Notes:       []string{"1 credit per email found", "0.1 credit per verification", "Credits roll over monthly"},
			LastUpdated: updated,
		},

		// Email verification.
		{
			ID: "leadmagic_verify", Name: "LeadMagic (Verification)", Category: EmailVerification,
			WebsiteURL: "https://leadmagic.io",
			PricingURL: "https://leadmagic.io/pricing",
			Tiers: []Tier{
				{Name: "Basic", MonthlyCost: 59.99, Credits: 2500, Features: []string{"Email Validation", "Catch-all verification included"}, Lowest: true},
			},
			UnitCosts:   map[Operation]float64{OpEmailVerify: 0.0012},
			Notes:       []string{"1 credit per 20 email validations", "Catch-all verification included"},
			LastUpdated: updated,
		},
		{
			ID: "icypeas_verify", Name: "Icypeas (Verification)", Category: EmailVerification,
			WebsiteURL: "https://icypeas.com",
			PricingURL: "https://icypeas.com/pricing",
			Tiers: []Tier{
				{Name: "Basic", MonthlyCost: 19, Credits: 1000, Features: []string{"Email Verifier"}, Lowest: true},
			},
			UnitCosts:   map[Operation]float64{OpEmailVerify: 0.0019},
			Notes:       []string{"0.1 credit per verification"},
			LastUpdated: updated,
		},

		// Email sending.
		{
			ID: "instantly", Name: "Instantly", Category: EmailSending,
			WebsiteURL: "https://instantly.ai",
			PricingURL: "https://instantly.ai/pricing",
			Tiers: []Tier{
				{Name: "Growth", MonthlyCost: 47, Emails: 5000, Features: []string{"Unlimited inboxes", "Unlimited warmup", "A/B testing"}, Lowest: true},
				{Name: "Hypergrowth", MonthlyCost: 97, Emails: 100000, Features: []string{"Unlimited inboxes", "Unlimited warmup", "A/B testing"}},
				{Name: "Light Speed", MonthlyCost: 358, Emails: 500000, Features: []string{"Unlimited inboxes", "Unlimited warmup", "A/B testing"}},
			},
			UnitCosts:        map[Operation]float64{},
			UnlimitedInboxes: true,
			Notes:            []string{"Unlimited email accounts", "Unlimited email warmup", "No per-email cost (subscription only)"},
			LastUpdated:      updated,
		},
		{
			ID: "smartlead", Name: "Smartlead", Category: EmailSending,
			WebsiteURL: "https://www.smartlead.ai",
			PricingURL: "https://www.smartlead.ai/pricing",
			Tiers: []Tier{
				{Name: "Base", MonthlyCost: 39, Emails: 6000, Features: []string{"Unlimited warmups", "Unlimited email accounts", "CRM integrations"}, Lowest: true},
				{Name: "Pro", MonthlyCost: 94, Emails: 90000, Features: []string{"Unlimited warmups", "Unlimited email accounts", "CRM integrations"}},
				{Name: "Smart", MonthlyCost: 174, Emails: 150000, Features: []string{"Unlimited warmups", "Unlimited email accounts", "CRM integrations"}},
			},
			UnitCosts:              map[Operation]float64{OpInboxMonthly: 4.5},
			UnlimitedInboxes:       true,
			BillsInboxesSeparately: true,
			Notes:                  []string{"Unlimited email warmups", "Unlimited email accounts", "SmartSenders: $4.50/mailbox/month (optional)"},
			LastUpdated:            updated,
		},

		// Infrastructure.
		{
			ID: "google_workspace", Name: "Google Workspace", Category: Infrastructure,
			WebsiteURL: "https://workspace.google.com",
			PricingURL: "https://workspace.google.com/pricing",
			Tiers: []Tier{
				{Name: "Business Starter", MonthlyCost: 6, Features: []string{"Custom email", "30GB storage", "Video meetings"}, Lowest: true},
			},
			UnitCosts:   map[Operation]float64{OpInboxMonthly: 6},
			Notes:       []string{"Per user/inbox", "Annual commitment recommended"},
			LastUpdated: updated,
		},
		{
			ID: "custom_domain", Name: "Domain Registration", Category: Infrastructure,
			WebsiteURL: "https://www.namecheap.com",
			PricingURL: "https://www.namecheap.com/domains/registration/",
			Tiers: []Tier{
				{Name: "Standard", MonthlyCost: 1.08, Features: []string{"Domain registration", "DNS management"}, Lowest: true},
			},
			UnitCosts:   map[Operation]float64{OpDomainYearly: 13},
			Notes:       []string{"Average $12-15/domain/year", "Industry standard"},
			LastUpdated: updated,
		},

		// Phone finding.
		{
			ID: "leadmagic_phone", Name: "LeadMagic (Phone)", Category: PhoneFinding,
			WebsiteURL: "https://leadmagic.io",
			PricingURL: "https://leadmagic.io/pricing",
			Tiers: []Tier{
				{Name: "Basic", MonthlyCost: 59.99, Credits: 2500, Features: []string{"Mobile Finder", "Waterfall enrichment"}, Lowest: true},
			},
			UnitCosts:   map[Operation]float64{OpPhoneFind: 0.12},
			Notes:       []string{"5 credits per valid mobile", "No charge if not found"},
			LastUpdated: updated,
		},
	}
}
