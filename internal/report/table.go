package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

// lineWriter keeps the first write error so table rendering can stay
// linear.
type lineWriter struct {
	w   io.Writer
	err error
}

func (l *lineWriter) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format, args...)
}

func (l *lineWriter) rule(n int) {
	l.printf("%s\n", strings.Repeat("-", n))
}

// WriteTable writes the funnel, the cost breakdown, the totals and any
// waterfall analyses as fixed-width text.
func WriteTable(w io.Writer, res *estimate.Result) error {
	lw := &lineWriter{w: w}
	s := res.Stages

	lw.printf("Funnel\n")
	lw.rule(44)
	lw.printf("%-30s %13s\n", "Leads to source", Count(s.LeadsToSource))
	lw.printf("%-30s %13s\n", "Contacts with emails", Count(s.ContactsWithEmails))
	lw.printf("%-30s %13s\n", "Valid emails needed", Count(s.ValidEmailsNeeded))
	lw.printf("%-30s %13s\n", "Emails to send", Count(s.EmailsToSend))
	lw.printf("%-30s %13s\n", "Expected replies", Count(s.ExpectedReplies))
	lw.printf("%-30s %13s\n", "Expected qualified replies", Count(s.ExpectedQualifiedReplies))
	lw.printf("%-30s %13s\n", "Expected meetings", printer.Sprintf("%g", s.ExpectedMeetings))

	lw.printf("\nCost breakdown\n")
	lw.printf("%-24s %-26s %-16s %10s %8s %12s\n", "Category", "Vendor", "Operation", "Unit", "Qty", "Total")
	lw.rule(101)
	for _, it := range res.LineItems {
		lw.printf("%-24s %-26s %-16s %10s %8s %12s\n",
			truncate(it.Category, 24), truncate(it.Vendor, 26), truncate(it.Operation, 16),
			unitPrice(it.UnitCost), Count(it.Quantity), Money(it.Total))
		if it.Note != "" {
			lw.printf("  %s\n", it.Note)
		}
	}

	sum := res.Summary
	lw.printf("\nTotals\n")
	lw.rule(44)
	lw.printf("%-30s %13s\n", "Total cost", Money(sum.TotalCost))
	lw.printf("%-30s %13s\n", "Monthly recurring", Money(sum.MonthlyRecurring))
	lw.printf("%-30s %13s\n", "Setup", Money(sum.SetupCosts))
	lw.printf("%-30s %13s\n", "Cost per meeting", Money(sum.CostPerMeeting))
	if h := sum.Headcount; h != nil {
		lw.printf("%-30s %13s\n", "Headcount", Money(h.HeadcountCost))
		lw.printf("%-30s %13s\n", "Total with headcount", Money(h.TotalCostWithHeadcount))
		lw.printf("%-30s %13s\n", "Cost per meeting w/ headcount", Money(h.CostPerMeetingWithHeadcount))
	}
	if lw.err != nil {
		return eris.Wrap(lw.err, "report: write table")
	}

	for _, a := range res.Waterfalls {
		if _, err := fmt.Fprintln(w); err != nil {
			return eris.Wrap(err, "report: write table")
		}
		if err := WriteWaterfallTable(w, a); err != nil {
			return err
		}
	}
	return nil
}

// WriteWaterfallTable writes one waterfall analysis.
func WriteWaterfallTable(w io.Writer, a waterfall.Analysis) error {
	lw := &lineWriter{w: w}
	lw.printf("Waterfall: %s (%s)\n", a.Config.Name, a.Config.Category)
	lw.printf("%-5s %-26s %10s %10s %10s %12s\n", "Step", "Vendor", "Processed", "Found", "Unit", "Cost")
	lw.rule(78)
	for _, st := range a.Steps {
		lw.printf("%-5d %-26s %10s %10s %10s %12s\n",
			st.StepNumber, truncate(st.VendorName, 26), Count(st.ContactsProcessed),
			Count(st.SuccessfulFinds), unitPrice(st.UnitCost), Money(st.Cost))
	}
	lw.rule(78)
	lw.printf("Coverage %s (%s of %s found, %s remaining)\n",
		Percent(a.TotalCoverageRate), Count(a.TotalFound), Count(a.TotalContacts), Count(a.Remaining))
	lw.printf("Total %s, %s per find\n", Money(a.TotalCost), unitPrice(a.CostPerSuccessfulFind))
	if len(a.SkippedSteps) > 0 {
		lw.printf("Skipped unknown vendors: %s\n", strings.Join(a.SkippedSteps, ", "))
	}
	if lw.err != nil {
		return eris.Wrap(lw.err, "report: write waterfall table")
	}
	return nil
}

// WriteComparison writes a waterfall-vs-single-vendor comparison.
func WriteComparison(w io.Writer, vendorID string, c waterfall.Comparison) error {
	lw := &lineWriter{w: w}
	lw.printf("%-18s %10s %12s %12s\n", "", "Coverage", "Cost", "Per find")
	lw.rule(55)
	lw.printf("%-18s %10s %12s %12s\n", "Waterfall", Percent(c.Waterfall.Coverage), Money(c.Waterfall.Cost), unitPrice(c.Waterfall.CostPerFind))
	lw.printf("%-18s %10s %12s %12s\n", truncate(vendorID, 18), Percent(c.Single.Coverage), Money(c.Single.Cost), unitPrice(c.Single.CostPerFind))
	lw.rule(55)
	lw.printf("%-18s %10s %12s\n", "Difference", Percent(c.CoverageIncrease), Money(c.CostIncrease))
	lw.printf("Single-vendor coverage assumes the first step's expected rate.\n")
	if lw.err != nil {
		return eris.Wrap(lw.err, "report: write comparison")
	}
	return nil
}

// WriteSweepTable writes one row per sweep point.
func WriteSweepTable(w io.Writer, points []estimate.Point) error {
	lw := &lineWriter{w: w}
	lw.printf("%10s %10s %10s %12s %12s %12s\n", "Meetings", "Leads", "Emails", "Total", "Recurring", "Per meeting")
	lw.rule(71)
	for _, p := range points {
		lw.printf("%10s %10s %10s %12s %12s %12s\n",
			printer.Sprintf("%g", p.Meetings), Count(p.Stages.LeadsToSource), Count(p.Stages.EmailsToSend),
			Money(p.Summary.TotalCost), Money(p.Summary.MonthlyRecurring), Money(p.Summary.CostPerMeeting))
	}
	if lw.err != nil {
		return eris.Wrap(lw.err, "report: write sweep table")
	}
	return nil
}

// unitPrice keeps four places for per-unit costs under a dollar.
func unitPrice(v float64) string {
	if v > 0 && v < 1 {
		return fmt.Sprintf("$%.4f", v)
	}
	return Money(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
