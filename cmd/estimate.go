package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/funnel"
	"github.com/sells-group/outbound-cli/internal/rates"
	"github.com/sells-group/outbound-cli/internal/report"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the volumes and cost of a campaign",
	Long: `Works back from a meetings target through the funnel conversion rates to
the leads, emails and infrastructure required, then prices every stage
against the selected vendors.

Examples:
  # Defaults: 10 meetings, Apollo, LeadMagic, Instantly
  estimate

  # 25 meetings at a 4% reply rate, as CSV
  estimate --meetings 25 --reply-rate 0.04 --format csv

  # From a scenario file, with phone enrichment on half the contacts
  estimate --scenario q3.yaml --phones 50

  # Run the built-in max-coverage email waterfall alongside
  estimate --waterfall email_finding_max_coverage

  # Markdown brief through the default template
  estimate --format template`,
	RunE: runEstimate,
}

func init() {
	addScenarioFlags(estimateCmd)
	f := estimateCmd.Flags()
	f.String("format", "", "output format: table, csv, json, xlsx, template (default from config)")
	f.StringP("output", "o", "", "write output to file (required for xlsx)")
	f.String("template", "", "Liquid template file for --format template")
	f.Bool("explain", false, "print the forward projection from the rounded lead count")

	rootCmd.AddCommand(estimateCmd)
}

// addScenarioFlags registers the flags that shape an estimate input.
func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("scenario", "", "scenario YAML file")
	f.Float64("meetings", 10, "meetings to book")
	for _, a := range rates.Assumptions() {
		f.Float64(rateFlag(a.ID), 0, fmt.Sprintf("%s (default %g)", strings.ToLower(a.Name), a.Rate))
	}
	f.Bool("clamp", false, "clamp rates into their benchmark ranges")
	f.String("sourcing", "", "contact sourcing vendor id")
	f.String("finder", "", "email finding vendor id")
	f.String("verifier", "", "email verification vendor id")
	f.String("sender", "", "email sending vendor id")
	f.Float64("phones", 0, "percent of contacts to enrich with mobile numbers (0-100)")
	f.String("phone-vendor", "leadmagic_phone", "vendor for --phones")
	f.StringSlice("waterfall", nil, "waterfall presets to analyze alongside")
}

func rateFlag(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}

// buildScenario assembles an estimate input from the scenario file, the
// flags and the configured defaults, in increasing order of precedence:
// config, scenario, flags.
func buildScenario(cmd *cobra.Command, vendors *catalog.Catalog) (estimate.Scenario, error) {
	f := cmd.Flags()

	s := estimate.Scenario{Input: estimate.DefaultInput()}
	if path, _ := f.GetString("scenario"); path != "" {
		loaded, err := estimate.LoadScenario(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	if f.Changed("meetings") {
		s.MeetingsNeeded, _ = f.GetFloat64("meetings")
	}
	for _, a := range rates.Assumptions() {
		if name := rateFlag(a.ID); f.Changed(name) {
			v, _ := f.GetFloat64(name)
			s.Rates, _ = s.Rates.With(a.ID, v)
		}
	}
	if clamp, _ := f.GetBool("clamp"); clamp {
		s.Rates = rates.Clamp(s.Rates)
	}

	for flag, dst := range map[string]*string{
		"sourcing": &s.Vendors.ContactSourcing,
		"finder":   &s.Vendors.EmailFinding,
		"verifier": &s.Vendors.EmailVerification,
		"sender":   &s.Vendors.EmailSending,
	} {
		if f.Changed(flag) {
			*dst, _ = f.GetString(flag)
		}
	}

	if pct, _ := f.GetFloat64("phones"); pct > 0 {
		vendorID, _ := f.GetString("phone-vendor")
		v, ok := vendors.Vendor(vendorID)
		if !ok {
			return s, eris.Errorf("estimate: unknown phone vendor %q", vendorID)
		}
		s.Vendors.PhoneFinding = v.ID
		s.Enrichments = append(s.Enrichments, cost.AddOn{
			ID:                "phones",
			Name:              "Phone Finding",
			Operation:         string(catalog.OpPhoneFind),
			Unit:              cost.UnitPhone,
			ApplyToPercentage: pct,
			Enabled:           true,
		})
	}

	if names, _ := f.GetStringSlice("waterfall"); len(names) > 0 {
		presets, err := loadPresets(cmd)
		if err != nil {
			return s, err
		}
		for _, name := range names {
			p, ok := presets[name]
			if !ok {
				return s, eris.Errorf("estimate: unknown waterfall preset %q (have %s)", name, strings.Join(presets.Names(), ", "))
			}
			p.Enabled = true
			s.Waterfalls = append(s.Waterfalls, p)
		}
	}

	if s.Infrastructure == (cost.Infrastructure{}) {
		s.Infrastructure = cfg.Infrastructure
	}
	if s.Headcount == (cost.Headcount{}) {
		s.Headcount = cfg.Headcount
	}
	return s, nil
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate("estimate"); err != nil {
		return err
	}
	log := zap.L().With(zap.String("command", "estimate"))

	vendors, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	s, err := buildScenario(cmd, vendors)
	if err != nil {
		return err
	}

	res, err := estimate.New(vendors, nil).Estimate(s.Input)
	if err != nil {
		return err
	}
	log.Debug("estimate complete",
		zap.String("scenario", s.Name),
		zap.Float64("total_cost", res.Summary.TotalCost),
	)

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Report.Format
	}
	outPath, _ := cmd.Flags().GetString("output")
	if err := writeEstimate(cmd, res, s.Name, format, outPath); err != nil {
		return err
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		return writeExplain(cmd.OutOrStdout(), res)
	}
	return nil
}

func writeEstimate(cmd *cobra.Command, res *estimate.Result, name, format, outPath string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	if f == report.FormatXLSX {
		if outPath == "" {
			return eris.New("estimate: --output is required for xlsx")
		}
		return report.WriteXLSX(outPath, res)
	}

	w, closeFn, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if f == report.FormatTemplate {
		tmpl, err := readTemplate(cmd)
		if err != nil {
			return err
		}
		return report.NewRenderer().RenderSummary(w, tmpl, name, res)
	}
	return report.Write(w, f, res)
}

// readTemplate returns the --template file, then report.template, else
// empty for the default template.
func readTemplate(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("template")
	if path == "" {
		path = cfg.Report.Template
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "estimate: read template %s", path)
	}
	return string(data), nil
}

// writeExplain multiplies the rounded lead count back down the funnel.
func writeExplain(w io.Writer, res *estimate.Result) error {
	fwd := funnel.Forward(float64(res.Stages.LeadsToSource), res.Rates)
	_, err := fmt.Fprintf(w, "\nForward check from %s leads: %s contacts with emails, %s delivered, %s replies, %.2f meetings\n",
		report.Count(res.Stages.LeadsToSource),
		report.Count(int(fwd.ContactsWithEmails)),
		report.Count(int(fwd.EmailsDelivered)),
		report.Count(int(fwd.TotalReplies)),
		fwd.Meetings,
	)
	return eris.Wrap(err, "estimate: write explain")
}
