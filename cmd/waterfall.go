package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outbound-cli/internal/report"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

var waterfallCmd = &cobra.Command{
	Use:   "waterfall",
	Short: "Simulate multi-vendor enrichment waterfalls",
}

var waterfallAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Simulate a waterfall over a contact pool",
	Long: `Runs contacts through an ordered list of vendors, each trying only the
contacts the previous steps missed, and reports blended coverage and cost.

Examples:
  # A built-in preset over 1,000 contacts
  waterfall analyze --preset email_finding_max_coverage

  # An ad hoc sequence: Apollo at 65%, then LeadMagic at 50%
  waterfall analyze --category email_finding --step apollo:0.65 --step leadmagic:0.5`,
	RunE: runWaterfallAnalyze,
}

var waterfallCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a waterfall against a single vendor",
	Long: `Sets the waterfall's coverage and cost against running only --vendor over
the same contacts.

Examples:
  waterfall compare --preset email_finding_cost_optimized --vendor leadmagic`,
	RunE: runWaterfallCompare,
}

var waterfallPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available waterfall presets",
	RunE:  runWaterfallPresets,
}

func init() {
	for _, c := range []*cobra.Command{waterfallAnalyzeCmd, waterfallCompareCmd} {
		f := c.Flags()
		f.String("preset", "", "preset name")
		f.String("category", string(waterfall.EmailFinding), "category for --step sequences")
		f.String("name", "", "name for --step sequences")
		f.StringArray("step", nil, "vendor:coverage step, repeatable, in order")
		f.Int("contacts", 1000, "contacts entering the waterfall")
		f.String("format", "table", "output format: table, json")
	}
	waterfallCompareCmd.Flags().String("vendor", "", "single vendor to compare against")
	_ = waterfallCompareCmd.MarkFlagRequired("vendor")

	waterfallCmd.AddCommand(waterfallAnalyzeCmd, waterfallCompareCmd, waterfallPresetsCmd)
	rootCmd.AddCommand(waterfallCmd)
}

// waterfallConfig returns the --preset config, or one built from --step.
func waterfallConfig(cmd *cobra.Command) (waterfall.Config, error) {
	f := cmd.Flags()
	preset, _ := f.GetString("preset")
	steps, _ := f.GetStringArray("step")

	switch {
	case preset != "" && len(steps) > 0:
		return waterfall.Config{}, eris.New("waterfall: --preset and --step are mutually exclusive")
	case preset != "":
		presets, err := loadPresets(cmd)
		if err != nil {
			return waterfall.Config{}, err
		}
		c, ok := presets[preset]
		if !ok {
			return waterfall.Config{}, eris.Errorf("waterfall: unknown preset %q (have %s)", preset, strings.Join(presets.Names(), ", "))
		}
		return c, nil
	case len(steps) == 0:
		return waterfall.Config{}, eris.New("waterfall: --preset or at least one --step is required")
	}

	category, _ := f.GetString("category")
	name, _ := f.GetString("name")
	c := waterfall.NewConfig(name, waterfall.Category(category))
	for _, s := range steps {
		vendorID, coverage, err := parseStep(s)
		if err != nil {
			return waterfall.Config{}, err
		}
		c = c.AddStep(vendorID, coverage)
	}
	if err := c.Validate(); err != nil {
		return waterfall.Config{}, err
	}
	return c, nil
}

// parseStep splits "vendor:coverage". A bare vendor takes the default
// step coverage.
func parseStep(s string) (string, float64, error) {
	vendorID, raw, found := strings.Cut(s, ":")
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return "", 0, eris.Errorf("waterfall: step %q has no vendor", s)
	}
	if !found {
		return vendorID, waterfall.DefaultStepCoverage, nil
	}
	coverage, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, eris.Wrapf(err, "waterfall: step %q coverage", s)
	}
	return vendorID, coverage, nil
}

func waterfallFormat(cmd *cobra.Command) (report.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if format != report.FormatTable && format != report.FormatJSON {
		return "", eris.Errorf("waterfall: format %q not supported", name)
	}
	return format, nil
}

func runWaterfallAnalyze(cmd *cobra.Command, _ []string) error {
	format, err := waterfallFormat(cmd)
	if err != nil {
		return err
	}
	c, err := waterfallConfig(cmd)
	if err != nil {
		return err
	}
	vendors, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	contacts, _ := cmd.Flags().GetInt("contacts")
	a := waterfall.NewAnalyzer(vendors).Analyze(c, contacts)

	if format == report.FormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), a)
	}
	return report.WriteWaterfallTable(cmd.OutOrStdout(), a)
}

func runWaterfallCompare(cmd *cobra.Command, _ []string) error {
	format, err := waterfallFormat(cmd)
	if err != nil {
		return err
	}
	c, err := waterfallConfig(cmd)
	if err != nil {
		return err
	}
	vendors, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	contacts, _ := f.GetInt("contacts")
	vendorID, _ := f.GetString("vendor")

	analyzer := waterfall.NewAnalyzer(vendors)
	a := analyzer.Analyze(c, contacts)
	cmp, err := analyzer.Compare(a, vendorID, contacts)
	if err != nil {
		return err
	}

	if format == report.FormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), map[string]any{
			"analysis":   a,
			"comparison": cmp,
		})
	}
	if err := report.WriteWaterfallTable(cmd.OutOrStdout(), a); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return report.WriteComparison(cmd.OutOrStdout(), vendorID, cmp)
}

func runWaterfallPresets(cmd *cobra.Command, _ []string) error {
	presets, err := loadPresets(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-32s %-30s %-18s %s\n", "Preset", "Name", "Category", "Steps")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, key := range presets.Names() {
		c := presets[key]
		ids := make([]string, 0, len(c.Steps))
		for _, s := range c.Steps {
			ids = append(ids, fmt.Sprintf("%s (%.0f%%)", s.VendorID, s.ExpectedCoverage*100))
		}
		fmt.Fprintf(w, "%-32s %-30s %-18s %s\n", key, c.Name, c.Category, strings.Join(ids, " > "))
	}
	return nil
}
