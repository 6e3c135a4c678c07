// Package config loads the engine configuration: the backend profile
// registry and the tunable knobs of the aggregation engine.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/ops-atlas/pkg/alerts"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CollectorConfig struct {
	DefaultTimeout time.Duration            `mapstructure:"default_timeout"`
	DomainTimeouts map[string]time.Duration `mapstructure:"domain_timeouts"`
}

type AlertsConfig struct {
	AttendanceMinPct  float64       `mapstructure:"attendance_min_pct"`
	OnTimeMinPct      float64       `mapstructure:"on_time_min_pct"`
	PendingOrdersMax  int           `mapstructure:"pending_orders_max"`
	UnpaidInvoicesMax int           `mapstructure:"unpaid_invoices_max"`
	Rules             []alerts.Rule `mapstructure:"rules"`
}

type ReportConfig struct {
	TopN        int           `mapstructure:"top_n"`
	WindowDays  int           `mapstructure:"window_days"`
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Collector CollectorConfig `mapstructure:"collector"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	Report    ReportConfig    `mapstructure:"report"`
}

// Thresholds maps the configured limits onto the alert rule table.
func (c *Config) Thresholds() alerts.Thresholds {
	return alerts.Thresholds{
		AttendanceMinPct:  c.Alerts.AttendanceMinPct,
		OnTimeMinPct:      c.Alerts.OnTimeMinPct,
		PendingOrdersMax:  c.Alerts.PendingOrdersMax,
		UnpaidInvoicesMax: c.Alerts.UnpaidInvoicesMax,
	}
}

// Rules returns the configured rule table, falling back to the built-in
// table when none is configured.
func (c *Config) Rules() []alerts.Rule {
	if len(c.Alerts.Rules) > 0 {
		return c.Alerts.Rules
	}
	return alerts.DefaultRules(c.Thresholds())
}

// DomainTimeouts converts the configured per-domain timeouts to their
// typed keys.
func (c *Config) DomainTimeouts() map[domain.Name]time.Duration {
	out := make(map[domain.Name]time.Duration, len(c.Collector.DomainTimeouts))
	for name, d := range c.Collector.DomainTimeouts {
		out[domain.Name(name)] = d
	}
	return out
}

// Load reads the engine config file. Every knob has a default, so a
// missing file yields a fully usable configuration.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("collector.default_timeout", 10*time.Second)
	v.SetDefault("alerts.attendance_min_pct", 75.0)
	v.SetDefault("alerts.on_time_min_pct", 80.0)
	v.SetDefault("alerts.pending_orders_max", 10)
	v.SetDefault("alerts.unpaid_invoices_max", 5)
	v.SetDefault("report.top_n", 5)
	v.SetDefault("report.window_days", 30)
	v.SetDefault("report.refresh_rate", 5*time.Minute)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Reject bad rule expressions at load time rather than at the first
	// fallback evaluation.
	if _, err := alerts.NewEngine(cfg.Rules()); err != nil {
		return nil, fmt.Errorf("invalid alert rules: %w", err)
	}

	return &cfg, nil
}
