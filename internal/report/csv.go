package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-cli/internal/estimate"
)

var lineItemHeader = []string{"kind", "category", "provider", "operation", "unit_cost", "quantity", "total", "citation_url", "notes"}

// WriteCSV writes the cost breakdown, one row per line item, followed by
// the summary totals as rows with an empty provider.
func WriteCSV(w io.Writer, res *estimate.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(lineItemHeader); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for _, it := range res.LineItems {
		row := []string{
			string(it.Kind),
			it.Category,
			it.Vendor,
			it.Operation,
			strconv.FormatFloat(it.UnitCost, 'f', -1, 64),
			strconv.Itoa(it.Quantity),
			cents(it.Total).StringFixed(2),
			it.CitationURL,
			it.Note,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}

	for _, t := range summaryRows(res) {
		row := []string{"summary", t.label, "", "", "", "", cents(t.value).StringFixed(2), "", ""}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV summary")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

// WriteSweepCSV writes one row per sweep point.
func WriteSweepCSV(w io.Writer, points []estimate.Point) error {
	cw := csv.NewWriter(w)
	header := []string{"meetings", "leads_to_source", "contacts_with_emails", "emails_to_send", "total_cost", "monthly_recurring", "setup_costs", "cost_per_meeting"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Meetings, 'f', -1, 64),
			strconv.Itoa(p.Stages.LeadsToSource),
			strconv.Itoa(p.Stages.ContactsWithEmails),
			strconv.Itoa(p.Stages.EmailsToSend),
			cents(p.Summary.TotalCost).StringFixed(2),
			cents(p.Summary.MonthlyRecurring).StringFixed(2),
			cents(p.Summary.SetupCosts).StringFixed(2),
			cents(p.Summary.CostPerMeeting).StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush CSV")
}

type total struct {
	label string
	value float64
}

func summaryRows(res *estimate.Result) []total {
	s := res.Summary
	rows := []total{
		{"Total cost", s.TotalCost},
		{"Monthly recurring", s.MonthlyRecurring},
		{"Setup", s.SetupCosts},
		{"Cost per meeting", s.CostPerMeeting},
	}
	if h := s.Headcount; h != nil {
		rows = append(rows,
			total{"Headcount", h.HeadcountCost},
			total{"Total with headcount", h.TotalCostWithHeadcount},
			total{"Cost per meeting with headcount", h.CostPerMeetingWithHeadcount},
		)
	}
	return rows
}
