package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/report"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the vendor pricing catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendors with their entry plan and unit costs",
	RunE: func(cmd *cobra.Command, args []string) error {
		vendors, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		list := vendors.Vendors()
		if name, _ := cmd.Flags().GetString("category"); name != "" {
			cat := catalog.Category(name)
			if !cat.Valid() {
				return eris.Errorf("catalog: unknown category %q", name)
			}
			list = vendors.ByCategory(cat)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteJSON(cmd.OutOrStdout(), list)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s %-26s %-19s %12s  %s\n", "ID", "Name", "Category", "Entry plan", "Unit costs")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, v := range list {
			entry := "-"
			if t, ok := v.LowestTier(); ok {
				entry = report.Money(t.MonthlyCost) + "/mo"
			}
			fmt.Fprintf(w, "%-20s %-26s %-19s %12s  %s\n", v.ID, v.Name, v.Category, entry, unitCosts(v))
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <vendor-id>",
	Short: "Show one vendor's tiers and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vendors, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		v, ok := vendors.Vendor(args[0])
		if !ok {
			return eris.Errorf("catalog: unknown vendor %q (have %s)", args[0], strings.Join(vendors.IDs(), ", "))
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.WriteJSON(cmd.OutOrStdout(), v)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%s)\n", v.Name, v.ID)
		fmt.Fprintf(w, "Category:  %s\n", v.Category)
		fmt.Fprintf(w, "Pricing:   %s\n", v.PricingURL)
		if v.LastUpdated != "" {
			fmt.Fprintf(w, "Updated:   %s\n", v.LastUpdated)
		}
		fmt.Fprintf(w, "Unit cost: %s\n", unitCosts(v))
		if len(v.Tiers) > 0 {
			fmt.Fprintln(w, "\nTiers:")
			for _, t := range v.Tiers {
				fmt.Fprintf(w, "  %-16s %12s/mo  %s\n", t.Name, report.Money(t.MonthlyCost), tierLimits(t))
			}
		}
		for _, n := range v.Notes {
			fmt.Fprintf(w, "  * %s\n", n)
		}
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().Bool("json", false, "print JSON")
	catalogListCmd.Flags().String("category", "", "only vendors in this category")
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

// unitCosts renders a vendor's per-unit costs sorted by operation.
func unitCosts(v catalog.Vendor) string {
	if len(v.UnitCosts) == 0 {
		return "-"
	}
	ops := make([]string, 0, len(v.UnitCosts))
	for op := range v.UnitCosts {
		ops = append(ops, string(op))
	}
	sort.Strings(ops)
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		parts = append(parts, fmt.Sprintf("%s=%g", op, v.UnitCosts[catalog.Operation(op)]))
	}
	return strings.Join(parts, " ")
}

func tierLimits(t catalog.Tier) string {
	var parts []string
	if t.Credits > 0 {
		parts = append(parts, report.Count(t.Credits)+" credits")
	}
	if t.Emails > 0 {
		parts = append(parts, report.Count(t.Emails)+" emails")
	}
	if t.Contacts > 0 {
		parts = append(parts, report.Count(t.Contacts)+" contacts")
	}
	if len(parts) == 0 {
		return "no stated limit"
	}
	return strings.Join(parts, ", ")
}
