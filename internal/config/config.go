// Package config loads run settings from YAML, a .env file and the
// environment, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/selimozcann/SiteHunter/internal/check"
	"github.com/selimozcann/SiteHunter/internal/httpclient"
	"github.com/selimozcann/SiteHunter/internal/session"
	"github.com/selimozcann/SiteHunter/internal/telemetry"
)

// Environment overrides.
const (
	EnvTarget       = "SITEHUNTER_TARGET"
	EnvOutput       = "SITEHUNTER_OUTPUT"
	EnvChromePath   = "SITEHUNTER_CHROME_PATH"
	EnvOTLPEndpoint = "SITEHUNTER_OTLP_ENDPOINT"
	EnvLogLevel     = "SITEHUNTER_LOG_LEVEL"
)

const (
	DefaultTarget = "https://khagracharipratidin.com/"
	DefaultOutput = "Automation_Bug_Report.xlsx"
	dotEnvFile    = ".env"
)

// Config is the full run configuration.
type Config struct {
	Target    string          `yaml:"target"`
	LogLevel  string          `yaml:"log_level"`
	Browser   BrowserConfig   `yaml:"browser"`
	Viewports ViewportConfig  `yaml:"viewports"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	HTTP      HTTPConfig      `yaml:"http"`
	Checks    ChecksConfig    `yaml:"checks"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type BrowserConfig struct {
	Headless  bool   `yaml:"headless"`
	ExecPath  string `yaml:"exec_path"`
	NoSandbox bool   `yaml:"no_sandbox"`
	UserAgent string `yaml:"user_agent"`
	Proxy     string `yaml:"proxy"`
}

type ViewportConfig struct {
	Desktop session.Viewport `yaml:"desktop"`
	Mobile  session.Viewport `yaml:"mobile"`
}

type TimeoutConfig struct {
	Navigation time.Duration `yaml:"navigation"`
	Probe      time.Duration `yaml:"probe"`
	Action     time.Duration `yaml:"action"`
	Settle     time.Duration `yaml:"settle"`
}

type HTTPConfig struct {
	UserAgent string            `yaml:"user_agent"`
	Proxy     string            `yaml:"proxy"`
	Insecure  bool              `yaml:"insecure"`
	Headers   map[string]string `yaml:"headers"`
	MaxHops   int               `yaml:"max_hops"`
	// RateLimit caps probes per second; 0 disables pacing.
	RateLimit float64 `yaml:"rate_limit"`
}

type ChecksConfig struct {
	Links             int    `yaml:"links"`
	Thumbnails        int    `yaml:"thumbnails"`
	EmbeddedImages    int    `yaml:"embedded_images"`
	LargeImages       int    `yaml:"large_images"`
	ReadMore          int    `yaml:"read_more"`
	SameSiteLinksOnly bool   `yaml:"same_site_links_only"`
	SearchTerm        string `yaml:"search_term"`
}

// OutputConfig names the artifacts to write. Only XLSX is required.
type OutputConfig struct {
	XLSX        string `yaml:"xlsx"`
	HTML        string `yaml:"html"`
	JSONL       string `yaml:"jsonl"`
	PDF         string `yaml:"pdf"`
	Screenshots string `yaml:"screenshots"`
	Metrics     string `yaml:"metrics"`
	History     string `yaml:"history"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	co := check.DefaultOptions()
	return Config{
		Target:   DefaultTarget,
		LogLevel: "info",
		Browser:  BrowserConfig{Headless: true, NoSandbox: true},
		Viewports: ViewportConfig{
			Desktop: session.Desktop,
			Mobile:  session.Mobile,
		},
		Timeouts: TimeoutConfig{
			Navigation: session.DefaultNavigationTimeout,
			Probe:      session.DefaultProbeTimeout,
			Action:     session.DefaultActionTimeout,
			Settle:     session.DefaultSettleDelay,
		},
		HTTP: HTTPConfig{UserAgent: httpclient.DefaultUserAgent, MaxHops: 10},
		Checks: ChecksConfig{
			Links:          co.Links,
			Thumbnails:     co.Thumbnails,
			EmbeddedImages: co.EmbeddedImages,
			LargeImages:    co.LargeImages,
			ReadMore:       co.ReadMore,
			SearchTerm:     co.SearchTerm,
		},
		Output:    OutputConfig{XLSX: DefaultOutput},
		Telemetry: TelemetryConfig{Insecure: true, ServiceName: telemetry.DefaultServiceName},
	}
}

// Load reads path over the defaults (an empty path skips the file), then
// applies .env and environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	if err := loadDotEnv(dotEnvFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads path into the environment when it exists. Variables
// already set are kept.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvTarget, &c.Target)
	set(EnvOutput, &c.Output.XLSX)
	set(EnvChromePath, &c.Browser.ExecPath)
	set(EnvOTLPEndpoint, &c.Telemetry.OTLPEndpoint)
	set(EnvLogLevel, &c.LogLevel)
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("%w: target", ErrMissingRequired)
	}
	u, err := url.Parse(c.Target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: target %q is not an http(s) URL", ErrInvalidConfig, c.Target)
	}
	if strings.TrimSpace(c.Output.XLSX) == "" {
		return fmt.Errorf("%w: output.xlsx", ErrMissingRequired)
	}
	if c.Viewports.Desktop.Width <= 0 || c.Viewports.Mobile.Width <= 0 {
		return fmt.Errorf("%w: viewports must be positive", ErrInvalidConfig)
	}
	if c.Timeouts.Navigation < 0 || c.Timeouts.Probe < 0 || c.Timeouts.Action < 0 || c.Timeouts.Settle < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	}
	if c.HTTP.Proxy != "" {
		if p, err := url.Parse(c.HTTP.Proxy); err != nil || p.Host == "" {
			return fmt.Errorf("%w: http.proxy %q", ErrInvalidConfig, c.HTTP.Proxy)
		}
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("%w: http.rate_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s)
}

// CheckOptions maps the config onto the check battery settings.
func (c Config) CheckOptions() check.Options {
	o := check.DefaultOptions()
	o.Desktop = c.Viewports.Desktop
	o.Mobile = c.Viewports.Mobile
	o.Links = c.Checks.Links
	o.Thumbnails = c.Checks.Thumbnails
	o.EmbeddedImages = c.Checks.EmbeddedImages
	o.LargeImages = c.Checks.LargeImages
	o.ReadMore = c.Checks.ReadMore
	o.SameSiteLinksOnly = c.Checks.SameSiteLinksOnly
	o.SearchTerm = c.Checks.SearchTerm
	return o
}

// SessionOptions maps the config onto session timeouts.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		Target:            c.Target,
		NavigationTimeout: c.Timeouts.Navigation,
		ProbeTimeout:      c.Timeouts.Probe,
		ActionTimeout:     c.Timeouts.Action,
		SettleDelay:       c.Timeouts.Settle,
	}
}

// ChromeConfig maps the config onto the browser launcher.
func (c Config) ChromeConfig() session.ChromeConfig {
	return session.ChromeConfig{
		Headless:   c.Browser.Headless,
		ExecPath:   c.Browser.ExecPath,
		NoSandbox:  c.Browser.NoSandbox,
		UserAgent:  c.Browser.UserAgent,
		Proxy:      c.Browser.Proxy,
		WindowSize: c.Viewports.Desktop,
	}
}

// ProberConfig maps the config onto the HTTP prober. Validate has already
// checked the proxy URL.
func (c Config) ProberConfig() httpclient.ProberConfig {
	headers := make(http.Header, len(c.HTTP.Headers))
	for k, v := range c.HTTP.Headers {
		headers.Set(k, v)
	}
	var proxy func(*http.Request) (*url.URL, error)
	if p, err := url.Parse(c.HTTP.Proxy); c.HTTP.Proxy != "" && err == nil {
		proxy = http.ProxyURL(p)
	}
	return httpclient.ProberConfig{
		Client: httpclient.Config{
			Timeout:   c.Timeouts.Probe,
			Proxy:     proxy,
			Headers:   headers,
			UserAgent: c.HTTP.UserAgent,
			Insecure:  c.HTTP.Insecure,
		},
		MaxHops:   c.HTTP.MaxHops,
		RateLimit: c.HTTP.RateLimit,
	}
}

// TelemetryOptions maps the config onto the tracer setup.
func (c Config) TelemetryOptions(version string) telemetry.Options {
	return telemetry.Options{
		Endpoint:    c.Telemetry.OTLPEndpoint,
		ServiceName: c.Telemetry.ServiceName,
		Version:     version,
		Insecure:    c.Telemetry.Insecure,
	}
}
