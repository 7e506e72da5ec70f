// SPDX-License-Identifier: MIT

// Package config loads the daemon configuration from defaults, an optional
// YAML file, a .env file and IPWWW_* environment variables.
package config

import (
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
	"github.com/ManuGH/ipwww-iptv/internal/epg"
	"github.com/ManuGH/ipwww-iptv/internal/jobs"
	"github.com/ManuGH/ipwww-iptv/internal/playlist"
	"github.com/ManuGH/ipwww-iptv/internal/settings"
	"github.com/ManuGH/ipwww-iptv/internal/telemetry"
)

// AppConfig is the fully resolved configuration.
type AppConfig struct {
	AddonID  string `yaml:"addonId,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`

	Upstream  UpstreamConfig  `yaml:"upstream"`
	Guide     GuideConfig     `yaml:"guide"`
	Settings  SettingsConfig  `yaml:"settings"`
	Delivery  DeliveryConfig  `yaml:"delivery"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// UpstreamConfig tunes the BBC schedule client.
type UpstreamConfig struct {
	IBLBaseURL       string        `yaml:"iblBaseUrl,omitempty"`
	SoundsBaseURL    string        `yaml:"soundsBaseUrl,omitempty"`
	BootstrapPath    string        `yaml:"bootstrapPath,omitempty"`
	UserAgent        string        `yaml:"userAgent,omitempty"`
	Timeout          time.Duration `yaml:"timeout,omitempty"`
	RateLimit        float64       `yaml:"rateLimit,omitempty"`
	Burst            int           `yaml:"burst,omitempty"`
	BreakerThreshold int           `yaml:"breakerThreshold,omitempty"`
	BreakerReset     time.Duration `yaml:"breakerReset,omitempty"`
}

// GuideConfig bounds the guide window and fetch parallelism.
type GuideConfig struct {
	PastDays       int    `yaml:"pastDays,omitempty"`
	FutureDays     int    `yaml:"futureDays,omitempty"`
	PageSize       int    `yaml:"pageSize,omitempty"`
	MaxPages       int    `yaml:"maxPages,omitempty"`
	MaxConcurrency int    `yaml:"maxConcurrency,omitempty"`
	ImageRecipe    string `yaml:"imageRecipe,omitempty"`
}

// SettingsConfig locates the add-on settings and names the keys to read.
type SettingsConfig struct {
	Path  string        `yaml:"path,omitempty"`
	Watch bool          `yaml:"watch,omitempty"`
	Keys  settings.Keys `yaml:"keys"`
}

// DeliveryConfig bounds a single push to IPTV Manager.
type DeliveryConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ServerConfig configures the optional HTTP trigger surface.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listenAddr,omitempty"`
	RateLimit       int           `yaml:"rateLimit,omitempty"` // requests per minute per client IP
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
}

// TelemetryConfig configures OTLP tracing.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled,omitempty"`
	Exporter     string  `yaml:"exporter,omitempty"`
	Endpoint     string  `yaml:"endpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty"`
	Environment  string  `yaml:"environment,omitempty"`
}

// Default returns the configuration used when nothing overrides it.
func Default() AppConfig {
	return AppConfig{
		AddonID:  playlist.DefaultAddonID,
		LogLevel: "info",
		Upstream: UpstreamConfig{
			IBLBaseURL:       bbc.DefaultIBLBaseURL,
			SoundsBaseURL:    bbc.DefaultSoundsBaseURL,
			BootstrapPath:    bbc.DefaultBootstrapPath,
			UserAgent:        bbc.DefaultUserAgent,
			Timeout:          15 * time.Second,
			RateLimit:        10,
			Burst:            5,
			BreakerThreshold: 5,
			BreakerReset:     30 * time.Second,
		},
		Guide: GuideConfig{
			PastDays:       jobs.DefaultPastDays,
			FutureDays:     jobs.DefaultFutureDays,
			PageSize:       jobs.DefaultPageSize,
			MaxPages:       jobs.DefaultMaxPages,
			MaxConcurrency: jobs.DefaultConcurrency,
			ImageRecipe:    epg.DefaultImageRecipe,
		},
		Settings: SettingsConfig{
			Path: "settings.yaml",
			Keys: settings.DefaultKeys,
		},
		Delivery: DeliveryConfig{Timeout: 30 * time.Second},
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:8089",
			RateLimit:       60,
			ShutdownTimeout: 10 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Exporter:     telemetry.ExporterGRPC,
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "production",
		},
	}
}

// ClientOptions maps the upstream section onto bbc client options.
func (c AppConfig) ClientOptions() bbc.Options {
	u := c.Upstream
	return bbc.Options{
		IBLBaseURL:       u.IBLBaseURL,
		SoundsBaseURL:    u.SoundsBaseURL,
		BootstrapPath:    u.BootstrapPath,
		UserAgent:        u.UserAgent,
		Timeout:          u.Timeout,
		RateLimit:        u.RateLimit,
		Burst:            u.Burst,
		BreakerThreshold: u.BreakerThreshold,
		BreakerReset:     u.BreakerReset,
	}
}

// Window maps the guide section onto the aggregator window.
func (c AppConfig) Window() jobs.Window {
	return jobs.Window{
		PastDays:   c.Guide.PastDays,
		FutureDays: c.Guide.FutureDays,
		PageSize:   c.Guide.PageSize,
		MaxPages:   c.Guide.MaxPages,
	}
}

// EPGOptions maps the config onto normaliser options.
func (c AppConfig) EPGOptions() epg.Options {
	return epg.Options{AddonID: c.AddonID, ImageRecipe: c.Guide.ImageRecipe}
}

// TelemetryProviderConfig maps the telemetry section onto the provider config.
func (c AppConfig) TelemetryProviderConfig(version string) telemetry.Config {
	t := c.Telemetry
	return telemetry.Config{
		Enabled:        t.Enabled,
		ServiceName:    "ipwww-iptv",
		ServiceVersion: version,
		Environment:    t.Environment,
		ExporterType:   t.Exporter,
		Endpoint:       t.Endpoint,
		SamplingRate:   t.SamplingRate,
	}
}
