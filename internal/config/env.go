// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "IPWWW_"

// envSource looks up a variable; os.LookupEnv in production.
type envSource func(key string) (string, bool)

type envReader struct {
	lookup envSource
	logger zerolog.Logger
}

func (r envReader) value(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r envReader) string(key string, dst *string) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	r.logger.Debug().Str("key", key).Str("source", "environment").Msg("using environment variable")
	*dst = v
}

func (r envReader) int(key string, dst *int) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.logger.Warn().Str("key", key).Str("value", v).Int("default", *dst).
			Msg("invalid integer in environment variable, using default")
		return
	}
	*dst = i
}

func (r envReader) float(key string, dst *float64) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		r.logger.Warn().Str("key", key).Str("value", v).Float64("default", *dst).
			Msg("invalid float in environment variable, using default")
		return
	}
	*dst = f
}

func (r envReader) duration(key string, dst *time.Duration) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		r.logger.Warn().Str("key", key).Str("value", v).Dur("default", *dst).
			Msg("invalid duration in environment variable, using default")
		return
	}
	*dst = d
}

// bool accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func (r envReader) bool(key string, dst *bool) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		r.logger.Warn().Str("key", key).Str("value", v).Bool("default", *dst).
			Msg("invalid boolean in environment variable, using default")
	}
}

// applyEnv overrides cfg with IPWWW_* variables.
func applyEnv(cfg *AppConfig, r envReader) {
	r.string(EnvPrefix+"ADDON_ID", &cfg.AddonID)
	r.string(EnvPrefix+"LOG_LEVEL", &cfg.LogLevel)

	r.string(EnvPrefix+"IBL_BASE_URL", &cfg.Upstream.IBLBaseURL)
	r.string(EnvPrefix+"SOUNDS_BASE_URL", &cfg.Upstream.SoundsBaseURL)
	r.string(EnvPrefix+"BOOTSTRAP_PATH", &cfg.Upstream.BootstrapPath)
	r.string(EnvPrefix+"USER_AGENT", &cfg.Upstream.UserAgent)
	r.duration(EnvPrefix+"UPSTREAM_TIMEOUT", &cfg.Upstream.Timeout)
	r.float(EnvPrefix+"UPSTREAM_RATE_LIMIT", &cfg.Upstream.RateLimit)
	r.int(EnvPrefix+"UPSTREAM_BURST", &cfg.Upstream.Burst)
	r.int(EnvPrefix+"BREAKER_THRESHOLD", &cfg.Upstream.BreakerThreshold)
	r.duration(EnvPrefix+"BREAKER_RESET", &cfg.Upstream.BreakerReset)

	r.int(EnvPrefix+"GUIDE_PAST_DAYS", &cfg.Guide.PastDays)
	r.int(EnvPrefix+"GUIDE_FUTURE_DAYS", &cfg.Guide.FutureDays)
	r.int(EnvPrefix+"GUIDE_PAGE_SIZE", &cfg.Guide.PageSize)
	r.int(EnvPrefix+"GUIDE_MAX_PAGES", &cfg.Guide.MaxPages)
	r.int(EnvPrefix+"GUIDE_MAX_CONCURRENCY", &cfg.Guide.MaxConcurrency)
	r.string(EnvPrefix+"IMAGE_RECIPE", &cfg.Guide.ImageRecipe)

	r.string(EnvPrefix+"SETTINGS_PATH", &cfg.Settings.Path)
	r.bool(EnvPrefix+"SETTINGS_WATCH", &cfg.Settings.Watch)
	r.string(EnvPrefix+"SETTINGS_KEY_TV", &cfg.Settings.Keys.TVChannels)
	r.string(EnvPrefix+"SETTINGS_KEY_RADIO", &cfg.Settings.Keys.RadioChannels)
	r.string(EnvPrefix+"SETTINGS_KEY_AUTOPLAY", &cfg.Settings.Keys.Autoplay)

	r.duration(EnvPrefix+"DELIVERY_TIMEOUT", &cfg.Delivery.Timeout)

	r.string(EnvPrefix+"LISTEN_ADDR", &cfg.Server.ListenAddr)
	r.int(EnvPrefix+"SERVER_RATE_LIMIT", &cfg.Server.RateLimit)
	r.duration(EnvPrefix+"SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	r.bool(EnvPrefix+"TELEMETRY_ENABLED", &cfg.Telemetry.Enabled)
	r.string(EnvPrefix+"TELEMETRY_EXPORTER", &cfg.Telemetry.Exporter)
	r.string(EnvPrefix+"TELEMETRY_ENDPOINT", &cfg.Telemetry.Endpoint)
	r.float(EnvPrefix+"TELEMETRY_SAMPLING_RATE", &cfg.Telemetry.SamplingRate)
	r.string(EnvPrefix+"TELEMETRY_ENVIRONMENT", &cfg.Telemetry.Environment)
}

func osLookup(key string) (string, bool) { return os.LookupEnv(key) }
