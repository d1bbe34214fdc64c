package report

import (
	"io"

	"github.com/osteele/liquid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-cli/internal/estimate"
)

// DefaultSummaryTemplate renders a short markdown brief of an estimate.
const DefaultSummaryTemplate = `# {{ name }}

To book **{{ stages.expected_meetings }}** meetings, source **{{ stages.leads_to_source | count }}** leads
and send **{{ stages.emails_to_send | count }}** emails.

| Item | Provider | Qty | Total |
|---|---|---:|---:|
{% for item in line_items %}| {{ item.category }} | {{ item.provider }} | {{ item.quantity | count }} | {{ item.total | money }} |
{% endfor %}
Total **{{ summary.total_cost | money }}** ({{ summary.monthly_recurring | money }} monthly, {{ summary.setup_costs | money }} setup),
**{{ summary.cost_per_meeting | money }}** per meeting.
{% if summary.headcount %}With headcount: {{ summary.headcount.total_cost_with_headcount | money }} ({{ summary.headcount.cost_per_meeting_with_headcount | money }} per meeting).
{% endif %}{% for w in waterfalls %}
Waterfall {{ w.name }}: {{ w.coverage | percent }} coverage for {{ w.total_cost | money }}.
{% endfor %}`

// Renderer renders estimates through Liquid templates.
type Renderer struct {
	engine *liquid.Engine
}

// NewRenderer creates a Renderer with the money, count and percent filters
// registered.
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()
	engine.RegisterFilter("money", func(v float64) string { return Money(v) })
	engine.RegisterFilter("count", func(n int) string { return Count(n) })
	engine.RegisterFilter("percent", func(v float64) string { return Percent(v) })
	return &Renderer{engine: engine}
}

// RenderSummary renders res through tmpl, or DefaultSummaryTemplate when
// tmpl is empty.
func (r *Renderer) RenderSummary(w io.Writer, tmpl, name string, res *estimate.Result) error {
	if tmpl == "" {
		tmpl = DefaultSummaryTemplate
	}
	if name == "" {
		name = "Outbound campaign"
	}
	tpl, err := r.engine.ParseString(tmpl)
	if err != nil {
		return eris.Wrap(err, "report: parse template")
	}
	out, err := tpl.RenderString(bindings(name, res))
	if err != nil {
		return eris.Wrap(err, "report: render template")
	}
	if _, err := io.WriteString(w, out); err != nil {
		return eris.Wrap(err, "report: write summary")
	}
	return nil
}

// bindings exposes res to templates under the same keys as its JSON form.
func bindings(name string, res *estimate.Result) map[string]any {
	s := res.Stages
	items := make([]map[string]any, 0, len(res.LineItems))
	for _, it := range res.LineItems {
		items = append(items, map[string]any{
			"kind":         string(it.Kind),
			"category":     it.Category,
			"provider":     it.Vendor,
			"operation":    it.Operation,
			"unit_cost":    it.UnitCost,
			"quantity":     it.Quantity,
			"total":        it.Total,
			"citation_url": it.CitationURL,
			"notes":        it.Note,
		})
	}

	summary := map[string]any{
		"total_cost":        res.Summary.TotalCost,
		"monthly_recurring": res.Summary.MonthlyRecurring,
		"setup_costs":       res.Summary.SetupCosts,
		"cost_per_meeting":  res.Summary.CostPerMeeting,
	}
	if h := res.Summary.Headcount; h != nil {
		summary["headcount"] = map[string]any{
			"headcount_cost":                  h.HeadcountCost,
			"total_cost_with_headcount":       h.TotalCostWithHeadcount,
			"cost_per_meeting_with_headcount": h.CostPerMeetingWithHeadcount,
		}
	}

	waterfalls := make([]map[string]any, 0, len(res.Waterfalls))
	for _, a := range res.Waterfalls {
		waterfalls = append(waterfalls, map[string]any{
			"name":          a.Config.Name,
			"category":      string(a.Config.Category),
			"coverage":      a.TotalCoverageRate,
			"total_found":   a.TotalFound,
			"total_cost":    a.TotalCost,
			"cost_per_find": a.CostPerSuccessfulFind,
		})
	}

	return map[string]any{
		"name": name,
		"stages": map[string]any{
			"leads_to_source":            s.LeadsToSource,
			"contacts_with_emails":       s.ContactsWithEmails,
			"valid_emails_needed":        s.ValidEmailsNeeded,
			"emails_to_send":             s.EmailsToSend,
			"expected_replies":           s.ExpectedReplies,
			"expected_qualified_replies": s.ExpectedQualifiedReplies,
			"expected_meetings":          s.ExpectedMeetings,
		},
		"line_items": items,
		"summary":    summary,
		"waterfalls": waterfalls,
	}
}
