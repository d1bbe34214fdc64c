package rates

// Assumption documents one conversion rate: its default, the range the
// benchmark supports, and where the number comes from.
type Assumption struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Rate        float64 `json:"rate" yaml:"rate"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	Source      string  `json:"source" yaml:"source"`
	Adjustable  bool    `json:"adjustable" yaml:"adjustable"`
	Description string  `json:"description" yaml:"description"`
}

// Clamp bounds v into [Min, Max].
func (a Assumption) Clamp(v float64) float64 {
	if v < a.Min {
		return a.Min
	}
	if v > a.Max {
		return a.Max
	}
	return v
}

// Assumptions returns the documented rate assumptions in funnel order.
func Assumptions() []Assumption {
	return []Assumption{
		{
			ID: MeetingSet, Name: "Meeting Set Rate",
			Rate: 0.2, Min: 0.15, Max: 0.30,
			Source:      "Industry benchmark 2026",
			Adjustable:  true,
			Description: "Share of qualified replies that convert to booked meetings",
		},
		{
			ID: QualifiedReply, Name: "Qualified Reply Rate",
			Rate: 0.5, Min: 0.3, Max: 0.7,
			Source:      "GTM community data",
			Adjustable:  true,
			Description: "Share of replies that are qualified prospects",
		},
		{
			ID: Reply, Name: "Reply Rate",
			Rate: 0.055, Min: 0.01, Max: 0.10,
			Source:      "Cold outreach benchmark 2026: 5-6% average, 10% excellent",
			Adjustable:  true,
			Description: "Share of delivered emails that receive a response",
		},
		{
			ID: Deliverability, Name: "Email Deliverability Rate",
			Rate: 0.85, Min: 0.7, Max: 0.95,
			Source:      "Industry standard",
			Adjustable:  true,
			Description: "Share of sent emails that reach the inbox",
		},
		{
			ID: EmailFind, Name: "Email Find Success Rate",
			Rate: 0.5, Min: 0.3, Max: 0.8,
			Source:      "Provider average",
			Adjustable:  true,
			Description: "Share of contacts with a valid email found",
		},
		{
			ID: PostEnrichmentValid, Name: "Post-Enrichment Valid Rate",
			Rate: 0.85, Min: 0.7, Max: 0.95,
			Source:      "GTM community: 15% typical bounce rate",
			Adjustable:  true,
			Description: "Share of enriched contacts that remain valid",
		},
	}
}

// Lookup returns the assumption with the given id.
func Lookup(id string) (Assumption, bool) {
	for _, a := range Assumptions() {
		if a.ID == id {
			return a, true
		}
	}
	return Assumption{}, false
}

// Defaults returns the Set built from each assumption's default rate.
func Defaults() Set {
	byID := make(map[string]float64, 6)
	for _, a := range Assumptions() {
		byID[a.ID] = a.Rate
	}
	return Set{
		MeetingSetRate:          byID[MeetingSet],
		QualifiedReplyRate:      byID[QualifiedReply],
		ReplyRate:               byID[Reply],
		DeliverabilityRate:      byID[Deliverability],
		EmailFindRate:           byID[EmailFind],
		PostEnrichmentValidRate: byID[PostEnrichmentValid],
	}
}

// Clamp bounds every rate of s into its documented range.
func Clamp(s Set) Set {
	clamp := func(id string, v float64) float64 {
		a, ok := Lookup(id)
		if !ok {
			return v
		}
		return a.Clamp(v)
	}
	return Set{
		MeetingSetRate:          clamp(MeetingSet, s.MeetingSetRate),
		QualifiedReplyRate:      clamp(QualifiedReply, s.QualifiedReplyRate),
		ReplyRate:               clamp(Reply, s.ReplyRate),
		DeliverabilityRate:      clamp(Deliverability, s.DeliverabilityRate),
		EmailFindRate:           clamp(EmailFind, s.EmailFindRate),
		PostEnrichmentValidRate: clamp(PostEnrichmentValid, s.PostEnrichmentValidRate),
	}
}
