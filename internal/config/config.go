package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hakim/reconscan/internal/engine"
)

// EnvPrefix prefixes environment overrides, e.g. RECONSCAN_ENGINE_THREADS.
const EnvPrefix = "RECONSCAN"

// Config represents the application configuration
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	Scope    ScopeConfig    `mapstructure:"scope" yaml:"scope"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-" yaml:"-"`
}

// EngineConfig tunes the native HTTP and DNS scanners
type EngineConfig struct {
	Threads         int     `mapstructure:"threads" yaml:"threads"`
	RateLimit       float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	UserAgent       string  `mapstructure:"user_agent" yaml:"user_agent"`
	Proxy           string  `mapstructure:"proxy" yaml:"proxy"`
	FollowRedirects bool    `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	InsecureTLS     bool    `mapstructure:"insecure_tls" yaml:"insecure_tls"`
}

// ResolverConfig selects the nameservers used for subdomain and base lookups
type ResolverConfig struct {
	Servers []string `mapstructure:"servers" yaml:"servers"`
	Timeout string   `mapstructure:"timeout" yaml:"timeout"`
}

// OutputConfig controls console rendering
type OutputConfig struct {
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// HistoryConfig controls the local run history database
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	DBPath  string `mapstructure:"db_path" yaml:"db_path"`
}

// NotifyConfig holds the optional completion webhook
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url"`
}

// ScopeConfig restricts which targets may be scanned. Empty lists allow all.
type ScopeConfig struct {
	AllowedHosts []string `mapstructure:"allowed_hosts" yaml:"allowed_hosts"`
	AllowedCIDRs []string `mapstructure:"allowed_cidrs" yaml:"allowed_cidrs"`
}

// Load reads configuration from a YAML file, environment and defaults.
// If path is empty, reconscan.yaml is searched in the current directory,
// ./configs and ~/.config/reconscan/; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("reconscan")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "reconscan"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("engine.threads", d.Engine.Threads)
	v.SetDefault("engine.rate_limit", d.Engine.RateLimit)
	v.SetDefault("engine.user_agent", d.Engine.UserAgent)
	v.SetDefault("engine.proxy", d.Engine.Proxy)
	v.SetDefault("engine.follow_redirects", d.Engine.FollowRedirects)
	v.SetDefault("engine.insecure_tls", d.Engine.InsecureTLS)
	v.SetDefault("resolver.servers", d.Resolver.Servers)
	v.SetDefault("resolver.timeout", d.Resolver.Timeout)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.db_path", d.History.DBPath)
	v.SetDefault("notify.webhook_url", d.Notify.WebhookURL)
	v.SetDefault("scope.allowed_hosts", d.Scope.AllowedHosts)
	v.SetDefault("scope.allowed_cidrs", d.Scope.AllowedCIDRs)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.Threads <= 0 {
		errs = append(errs, errors.New("engine.threads must be positive"))
	}

	if c.Engine.RateLimit < 0 {
		errs = append(errs, errors.New("engine.rate_limit cannot be negative"))
	}

	if c.Engine.Proxy != "" {
		if err := checkURL(c.Engine.Proxy); err != nil {
			errs = append(errs, fmt.Errorf("engine.proxy: %w", err))
		}
	}

	if d, err := time.ParseDuration(c.Resolver.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("resolver.timeout: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("resolver.timeout must be positive"))
	}

	if c.Notify.WebhookURL != "" {
		if err := checkURL(c.Notify.WebhookURL); err != nil {
			errs = append(errs, fmt.Errorf("notify.webhook_url: %w", err))
		}
	}

	for _, cidr := range c.Scope.AllowedCIDRs {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			errs = append(errs, fmt.Errorf("scope.allowed_cidrs: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EngineSettings converts the engine section into scanner settings.
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		Threads:         c.Engine.Threads,
		RateLimit:       c.Engine.RateLimit,
		UserAgent:       c.Engine.UserAgent,
		Proxy:           c.Engine.Proxy,
		FollowRedirects: c.Engine.FollowRedirects,
		InsecureTLS:     c.Engine.InsecureTLS,
	}
}

// ResolverTimeout returns the per-query DNS timeout. Call after Validate.
func (c *Config) ResolverTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Resolver.Timeout)
	return d
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q needs a scheme and host", raw)
	}
	return nil
}
