package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/SiteHunter/internal/session"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTarget, EnvOutput, EnvChromePath, EnvOTLPEndpoint, EnvLogLevel} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, DefaultOutput, cfg.Output.XLSX)
	assert.Equal(t, session.Desktop, cfg.Viewports.Desktop)
	assert.Equal(t, session.Mobile, cfg.Viewports.Mobile)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Navigation)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "sitehunter.yaml", `
target: https://news.test/
log_level: debug
viewports:
  mobile: 375x667
timeouts:
  navigation: 45s
  settle: 500ms
http:
  rate_limit: 5
  headers:
    X-Probe: sitehunter
checks:
  links: 30
  same_site_links_only: true
output:
  xlsx: out/report.xlsx
  html: out/report.html
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://news.test/", cfg.Target)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, session.Viewport{Width: 375, Height: 667}, cfg.Viewports.Mobile)
	assert.Equal(t, session.Desktop, cfg.Viewports.Desktop)
	assert.Equal(t, 45*time.Second, cfg.Timeouts.Navigation)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeouts.Settle)
	assert.Equal(t, "out/report.html", cfg.Output.HTML)

	co := cfg.CheckOptions()
	assert.Equal(t, 30, co.Links)
	assert.True(t, co.SameSiteLinksOnly)
	assert.Equal(t, session.Viewport{Width: 375, Height: 667}, co.Mobile)

	pc := cfg.ProberConfig()
	assert.Equal(t, "sitehunter", pc.Client.Headers.Get("X-Probe"))
	assert.Equal(t, 5.0, pc.RateLimit)

	so := cfg.SessionOptions()
	assert.Equal(t, "https://news.test/", so.Target)
	assert.Equal(t, 500*time.Millisecond, so.SettleDelay)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTarget, "https://env.test/")
	t.Setenv(EnvOutput, "env.xlsx")
	t.Setenv(EnvChromePath, "/opt/chrome")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.test/", cfg.Target)
	assert.Equal(t, "env.xlsx", cfg.Output.XLSX)
	assert.Equal(t, "/opt/chrome", cfg.ChromeConfig().ExecPath)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvOTLPEndpoint)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeFile(t, wd, ".env", EnvOTLPEndpoint+"=collector:4317\n")
	t.Cleanup(func() { os.Unsetenv(EnvOTLPEndpoint) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "collector:4317", cfg.TelemetryOptions("dev").Endpoint)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty target", func(c *Config) { c.Target = "" }, ErrMissingRequired},
		{"bad scheme", func(c *Config) { c.Target = "ftp://site.test/" }, ErrInvalidConfig},
		{"no output", func(c *Config) { c.Output.XLSX = " " }, ErrMissingRequired},
		{"zero viewport", func(c *Config) { c.Viewports.Mobile = session.Viewport{} }, ErrInvalidConfig},
		{"negative timeout", func(c *Config) { c.Timeouts.Probe = -time.Second }, ErrInvalidConfig},
		{"bad proxy", func(c *Config) { c.HTTP.Proxy = "::nope" }, ErrInvalidConfig},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "bad.yaml", "viewports:\n  mobile: wide\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
