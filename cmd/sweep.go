package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/report"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Estimate a range of meetings targets",
	Long: `Runs the estimate at every meetings target from --from to --to in steps of
--step and prints one row per target, so cost can be read against volume.

Examples:
  # 5 to 50 meetings in steps of 5
  sweep --from 5 --to 50 --step 5

  # Same, through a scenario, as CSV
  sweep --scenario q3.yaml --from 10 --to 100 --step 10 --format csv`,
	RunE: runSweep,
}

func init() {
	addScenarioFlags(sweepCmd)
	f := sweepCmd.Flags()
	f.Float64("from", 5, "first meetings target")
	f.Float64("to", 50, "last meetings target")
	f.Float64("step", 5, "meetings increment")
	f.Int("concurrency", 0, "estimates to run at once (default from config)")
	f.String("format", "table", "output format: table, csv, json")
	f.StringP("output", "o", "", "write output to file")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	if n, _ := f.GetInt("concurrency"); n != 0 {
		cfg.Sweep.Concurrency = n
	}
	if err := cfg.Validate("sweep"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	from, _ := f.GetFloat64("from")
	to, _ := f.GetFloat64("to")
	step, _ := f.GetFloat64("step")
	targets, err := estimate.Targets(from, to, step)
	if err != nil {
		return err
	}

	formatName, _ := f.GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	vendors, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	s, err := buildScenario(cmd, vendors)
	if err != nil {
		return err
	}

	points, err := estimate.New(vendors, nil).Sweep(ctx, s.Input, targets, cfg.Sweep.Concurrency)
	if err != nil {
		return err
	}
	zap.L().Debug("sweep complete",
		zap.Int("points", len(points)),
		zap.Int("concurrency", cfg.Sweep.Concurrency),
	)

	outPath, _ := f.GetString("output")
	w, closeFn, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case report.FormatTable:
		return report.WriteSweepTable(w, points)
	case report.FormatCSV:
		return report.WriteSweepCSV(w, points)
	case report.FormatJSON:
		return report.WriteJSON(w, points)
	default:
		return eris.Errorf("sweep: format %q not supported", format)
	}
}
