package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/outbound-cli/internal/cost"
)

// Config holds the full application configuration.
type Config struct {
	Log            LogConfig           `yaml:"log" mapstructure:"log"`
	Server         ServerConfig        `yaml:"server" mapstructure:"server"`
	Catalog        CatalogConfig       `yaml:"catalog" mapstructure:"catalog"`
	Waterfall      WaterfallConfig     `yaml:"waterfall" mapstructure:"waterfall"`
	Infrastructure cost.Infrastructure `yaml:"infrastructure" mapstructure:"infrastructure"`
	Headcount      cost.Headcount      `yaml:"headcount" mapstructure:"headcount"`
	Sweep          SweepConfig         `yaml:"sweep" mapstructure:"sweep"`
	Report         ReportConfig        `yaml:"report" mapstructure:"report"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// CatalogConfig points at a vendor catalog file. Empty uses the built-in
// catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// WaterfallConfig points at a waterfall presets file. Empty uses the
// built-in presets.
type WaterfallConfig struct {
	PresetsPath string `yaml:"presets_path" mapstructure:"presets_path"`
}

// SweepConfig configures the sweep command.
type SweepConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ReportConfig configures estimate output.
type ReportConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`
	Template string `yaml:"template" mapstructure:"template"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, the config file and the environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OUTBOUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	infra := cost.DefaultInfrastructure()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("catalog.path", "")
	v.SetDefault("waterfall.presets_path", "")
	v.SetDefault("infrastructure.emails_per_domain", infra.EmailsPerDomain)
	v.SetDefault("infrastructure.emails_per_inbox_per_month", infra.EmailsPerInboxPerMonth)
	v.SetDefault("infrastructure.inboxes_per_domain", infra.InboxesPerDomain)
	v.SetDefault("infrastructure.domain_cost_yearly", infra.DomainYearly())
	v.SetDefault("infrastructure.inbox_cost_monthly", infra.InboxMonthly())
	v.SetDefault("headcount.sdr_count", 0)
	v.SetDefault("headcount.sdr_monthly_cost", 0.0)
	v.SetDefault("headcount.include", false)
	v.SetDefault("sweep.concurrency", 4)
	v.SetDefault("report.format", "table")
	v.SetDefault("report.template", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var reportFormats = map[string]bool{"table": true, "csv": true, "json": true, "xlsx": true, "template": true}

// Validate checks the settings a command mode depends on. Modes are
// "estimate", "sweep" and "serve".
func (c *Config) Validate(mode string) error {
	var problems []string

	inf := c.Infrastructure
	if inf.EmailsPerDomain <= 0 || inf.EmailsPerInboxPerMonth <= 0 || inf.InboxesPerDomain <= 0 {
		problems = append(problems, "infrastructure capacities must be > 0")
	}
	if negative(inf.DomainCostYearly) || negative(inf.InboxCostMonthly) {
		problems = append(problems, "infrastructure costs must be >= 0")
	}
	if c.Headcount.SDRCount < 0 || c.Headcount.SDRMonthlyCost < 0 {
		problems = append(problems, "headcount values must be >= 0")
	}

	switch mode {
	case "estimate":
		if !reportFormats[c.Report.Format] {
			problems = append(problems, "report.format must be one of table, csv, json, xlsx, template")
		}
	case "sweep":
		if c.Sweep.Concurrency < 1 || c.Sweep.Concurrency > 64 {
			problems = append(problems, "sweep.concurrency must be between 1 and 64")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit <= 0 {
			problems = append(problems, "server.rate_limit must be > 0")
		}
		if c.Server.Burst < 1 {
			problems = append(problems, "server.burst must be >= 1")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid %s configuration: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
