package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/config"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "outbound-cli",
	Short: "Outbound campaign cost estimator",
	Long: "Reverse-calculates the leads, emails and infrastructure an outbound campaign needs to book a target " +
		"number of meetings, prices them against vendor rate cards, and simulates multi-vendor enrichment waterfalls.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("catalog", "", "vendor catalog YAML (default from config, else built-in)")
	rootCmd.PersistentFlags().String("presets", "", "waterfall presets YAML (default from config, else built-in)")
}

// loadCatalog resolves the --catalog flag, then catalog.path.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.Catalog.Path
	}
	return catalog.Resolve(path)
}

// loadPresets resolves the --presets flag, then waterfall.presets_path.
func loadPresets(cmd *cobra.Command) (waterfall.Presets, error) {
	path, _ := cmd.Flags().GetString("presets")
	if path == "" {
		path = cfg.Waterfall.PresetsPath
	}
	return waterfall.ResolvePresets(path)
}

// openOutput returns stdout, or a created file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
