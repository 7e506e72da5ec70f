// SPDX-License-Identifier: MIT
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_upstream_requests_total",
		Help: "Requests issued against the BBC schedule backends by outcome",
	}, []string{"backend", "outcome"}) // backend=ibl|sounds|bootstrap, outcome=success|failure

	schedulePagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_schedule_pages_total",
		Help: "Schedule pages (TV) or day snapshots (radio) fetched",
	}, []string{"kind"})

	schedulePageCapHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ipwww_schedule_page_cap_hits_total",
		Help: "TV schedules truncated because the page cap was reached",
	})

	guideChannelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_guide_channels_total",
		Help: "Channels processed while building the guide by kind and outcome",
	}, []string{"kind", "outcome"}) // outcome=success|failure

	guideEntriesLast = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ipwww_guide_entries",
		Help: "Number of guide entries produced by the last guide build",
	}, []string{"kind"})

	guideBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ipwww_guide_build_duration_seconds",
		Help:    "Wall time spent assembling the full guide",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	})

	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_iptv_deliveries_total",
		Help: "Documents pushed to IPTV Manager by operation and outcome",
	}, []string{"operation", "outcome"})

	settingsReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipwww_settings_reloads_total",
		Help: "Settings file reloads by outcome",
	}, []string{"outcome"})
)

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordUpstreamRequest counts a single backend request.
func RecordUpstreamRequest(backend string, ok bool) {
	upstreamRequestsTotal.WithLabelValues(backend, outcome(ok)).Inc()
}

// RecordSchedulePage counts a fetched TV page or radio day snapshot.
func RecordSchedulePage(kind string) {
	schedulePagesTotal.WithLabelValues(kind).Inc()
}

// RecordPageCapHit counts a TV schedule that stopped at the page cap.
func RecordPageCapHit() {
	schedulePageCapHits.Inc()
}

// RecordGuideChannel counts the outcome of one channel's schedule retrieval.
func RecordGuideChannel(kind string, ok bool) {
	guideChannelsTotal.WithLabelValues(kind, outcome(ok)).Inc()
}

// RecordGuideBuild records the duration and size of a finished guide build.
func RecordGuideBuild(d time.Duration, tvEntries, radioEntries int) {
	guideBuildDuration.Observe(d.Seconds())
	guideEntriesLast.WithLabelValues("tv").Set(float64(tvEntries))
	guideEntriesLast.WithLabelValues("radio").Set(float64(radioEntries))
}

// RecordDelivery counts a push to IPTV Manager.
func RecordDelivery(operation string, ok bool) {
	deliveriesTotal.WithLabelValues(operation, outcome(ok)).Inc()
}

// RecordSettingsReload counts a settings file reload attempt.
func RecordSettingsReload(ok bool) {
	settingsReloadsTotal.WithLabelValues(outcome(ok)).Inc()
}
