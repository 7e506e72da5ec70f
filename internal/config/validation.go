// SPDX-License-Identifier: MIT

package config

import (
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/telemetry"
	"github.com/ManuGH/ipwww-iptv/internal/validate"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate reports every invalid field at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("addonId", cfg.AddonID)
	v.OneOf("logLevel", cfg.LogLevel, logLevels)

	schemes := []string{"http", "https"}
	v.URL("upstream.iblBaseUrl", cfg.Upstream.IBLBaseURL, schemes)
	v.URL("upstream.soundsBaseUrl", cfg.Upstream.SoundsBaseURL, schemes)
	v.NotEmpty("upstream.bootstrapPath", cfg.Upstream.BootstrapPath)
	v.MinDuration("upstream.timeout", cfg.Upstream.Timeout, 100*time.Millisecond)
	v.FloatRange("upstream.rateLimit", cfg.Upstream.RateLimit, 0, 1000)
	v.Range("upstream.burst", cfg.Upstream.Burst, 1, 1000)
	v.Range("upstream.breakerThreshold", cfg.Upstream.BreakerThreshold, 1, 100)
	v.MinDuration("upstream.breakerReset", cfg.Upstream.BreakerReset, time.Second)

	v.Range("guide.pastDays", cfg.Guide.PastDays, 0, 30)
	v.Range("guide.futureDays", cfg.Guide.FutureDays, 0, 30)
	v.Range("guide.pageSize", cfg.Guide.PageSize, 1, 200)
	v.Range("guide.maxPages", cfg.Guide.MaxPages, 1, 100)
	v.Range("guide.maxConcurrency", cfg.Guide.MaxConcurrency, 1, 32)
	v.NotEmpty("guide.imageRecipe", cfg.Guide.ImageRecipe)

	v.Path("settings.path", cfg.Settings.Path)
	v.NotEmpty("settings.keys.tvChannels", cfg.Settings.Keys.TVChannels)
	v.NotEmpty("settings.keys.radioChannels", cfg.Settings.Keys.RadioChannels)
	v.NotEmpty("settings.keys.autoplay", cfg.Settings.Keys.Autoplay)

	v.MinDuration("delivery.timeout", cfg.Delivery.Timeout, 100*time.Millisecond)

	v.ListenAddr("server.listenAddr", cfg.Server.ListenAddr)
	v.Range("server.rateLimit", cfg.Server.RateLimit, 1, 100000)
	v.MinDuration("server.shutdownTimeout", cfg.Server.ShutdownTimeout, 0)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{telemetry.ExporterGRPC, telemetry.ExporterHTTP})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	return v.Err()
}
