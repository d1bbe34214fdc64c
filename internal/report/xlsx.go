package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

const moneyFormat = "#,##0.00"

// WriteXLSX saves res as a workbook at path with Funnel, Costs and Summary
// sheets plus one sheet per waterfall analysis.
func WriteXLSX(path string, res *estimate.Result) error {
	f := xlsx.NewFile()

	funnelSheet, err := f.AddSheet("Funnel")
	if err != nil {
		return eris.Wrap(err, "report: add funnel sheet")
	}
	addStrings(funnelSheet, "Stage", "Volume")
	s := res.Stages
	for _, st := range []struct {
		name string
		n    int
	}{
		{"Leads to source", s.LeadsToSource},
		{"Contacts with emails", s.ContactsWithEmails},
		{"Valid emails needed", s.ValidEmailsNeeded},
		{"Emails to send", s.EmailsToSend},
		{"Expected replies", s.ExpectedReplies},
		{"Expected qualified replies", s.ExpectedQualifiedReplies},
	} {
		row := funnelSheet.AddRow()
		row.AddCell().SetString(st.name)
		row.AddCell().SetInt(st.n)
	}
	row := funnelSheet.AddRow()
	row.AddCell().SetString("Expected meetings")
	row.AddCell().SetFloat(s.ExpectedMeetings)

	costs, err := f.AddSheet("Costs")
	if err != nil {
		return eris.Wrap(err, "report: add costs sheet")
	}
	addStrings(costs, "Category", "Provider", "Operation", "Unit cost", "Quantity", "Total", "Citation", "Notes")
	for _, it := range res.LineItems {
		row := costs.AddRow()
		row.AddCell().SetString(it.Category)
		row.AddCell().SetString(it.Vendor)
		row.AddCell().SetString(it.Operation)
		row.AddCell().SetFloat(it.UnitCost)
		row.AddCell().SetInt(it.Quantity)
		row.AddCell().SetFloatWithFormat(cents(it.Total).InexactFloat64(), moneyFormat)
		row.AddCell().SetString(it.CitationURL)
		row.AddCell().SetString(it.Note)
	}

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	for _, t := range summaryRows(res) {
		row := summary.AddRow()
		row.AddCell().SetString(t.label)
		row.AddCell().SetFloatWithFormat(cents(t.value).InexactFloat64(), moneyFormat)
	}

	for i, a := range res.Waterfalls {
		sheet, err := f.AddSheet(fmt.Sprintf("Waterfall %d", i+1))
		if err != nil {
			return eris.Wrapf(err, "report: add waterfall sheet %d", i+1)
		}
		addWaterfall(sheet, a)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addWaterfall(sheet *xlsx.Sheet, a waterfall.Analysis) {
	addStrings(sheet, a.Config.Name, string(a.Config.Category))
	addStrings(sheet, "Step", "Provider", "Processed", "Found", "Unit cost", "Cost")
	for _, st := range a.Steps {
		row := sheet.AddRow()
		row.AddCell().SetInt(st.StepNumber)
		row.AddCell().SetString(st.VendorName)
		row.AddCell().SetInt(st.ContactsProcessed)
		row.AddCell().SetInt(st.SuccessfulFinds)
		row.AddCell().SetFloat(st.UnitCost)
		row.AddCell().SetFloatWithFormat(cents(st.Cost).InexactFloat64(), moneyFormat)
	}
	row := sheet.AddRow()
	row.AddCell().SetString("Coverage")
	row.AddCell().SetFloat(a.TotalCoverageRate)
	row = sheet.AddRow()
	row.AddCell().SetString("Total cost")
	row.AddCell().SetFloatWithFormat(cents(a.TotalCost).InexactFloat64(), moneyFormat)
	row = sheet.AddRow()
	row.AddCell().SetString("Cost per find")
	row.AddCell().SetFloat(a.CostPerSuccessfulFind)
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
