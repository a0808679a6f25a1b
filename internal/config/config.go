package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Estimate EstimateConfig `yaml:"estimate" mapstructure:"estimate"`
	Tax      TaxConfig      `yaml:"tax" mapstructure:"tax"`
	Overhead AdjustConfig   `yaml:"overhead" mapstructure:"overhead"`
	Discount AdjustConfig   `yaml:"discount" mapstructure:"discount"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// EstimateConfig configures the estimator and its input tables.
type EstimateConfig struct {
	MaxConcurrentDocuments int     `yaml:"max_concurrent_documents" mapstructure:"max_concurrent_documents"`
	RoundTo                float64 `yaml:"round_to" mapstructure:"round_to"`
	Currency               string  `yaml:"currency" mapstructure:"currency"`
	ProjectType            string  `yaml:"project_type" mapstructure:"project_type"`
	ValidityDays           int     `yaml:"validity_days" mapstructure:"validity_days"`
	RulesFile              string  `yaml:"rules_file" mapstructure:"rules_file"`
	PricesFile             string  `yaml:"prices_file" mapstructure:"prices_file"`
	LaborFile              string  `yaml:"labor_file" mapstructure:"labor_file"`
}

// TaxConfig lists the tax rules applied to the pre-tax total.
type TaxConfig struct {
	Rates []TaxRate `yaml:"rates" mapstructure:"rates"`
}

// TaxRate is a named fractional rate, e.g. 0.17 for 17%.
type TaxRate struct {
	Name string  `yaml:"name" mapstructure:"name"`
	Rate float64 `yaml:"rate" mapstructure:"rate"`
}

// AdjustConfig is a percentage of materials plus labor and a fixed amount.
type AdjustConfig struct {
	Percent float64 `yaml:"percent" mapstructure:"percent"`
	Fixed   float64 `yaml:"fixed" mapstructure:"fixed"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TAKEOFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "takeoff.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("estimate.max_concurrent_documents", 4)
	v.SetDefault("estimate.round_to", 100)
	v.SetDefault("estimate.currency", "ILS")
	v.SetDefault("estimate.project_type", "residential")
	v.SetDefault("estimate.validity_days", 30)
	v.SetDefault("tax.rates", []map[string]any{{"name": "vat", "rate": 0.17}})
	v.SetDefault("overhead.percent", 0.0)
	v.SetDefault("overhead.fixed", 0.0)
	v.SetDefault("discount.percent", 0.0)
	v.SetDefault("discount.fixed", 0.0)

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

// Validate checks the settings a command mode depends on. Modes are
// "estimate" and "serve"; "serve" implies "estimate".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "estimate", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}
	if n := c.Estimate.MaxConcurrentDocuments; n < 1 || n > 64 {
		problems = append(problems, "estimate.max_concurrent_documents must be between 1 and 64")
	}
	if c.Estimate.RoundTo < 0 {
		problems = append(problems, "estimate.round_to must be >= 0")
	}
	if c.Estimate.ValidityDays < 0 {
		problems = append(problems, "estimate.validity_days must be >= 0")
	}
	for _, r := range c.Tax.Rates {
		if r.Rate < 0 {
			problems = append(problems, "tax.rates values must be >= 0")
			break
		}
	}
	if c.Overhead.Percent < 0 || c.Overhead.Fixed < 0 {
		problems = append(problems, "overhead values must be >= 0")
	}
	if c.Discount.Percent < 0 || c.Discount.Fixed < 0 {
		problems = append(problems, "discount values must be >= 0")
	}

	if mode == "serve" {
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
			problems = append(problems, "server.rate_limit and server.rate_burst must be > 0")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
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
