// SPDX-License-Identifier: MIT

// Package jobs fetches per-channel schedules and assembles the guide and
// stream list pushed to IPTV Manager.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
)

// ScheduleAPI is the subset of the BBC client the guide builder needs.
type ScheduleAPI interface {
	Broadcasts(ctx context.Context, scheduleID string, from time.Time, page, perPage int) (bbc.BroadcastPage, error)
	RevisionToken(ctx context.Context) (string, error)
	RadioDay(ctx context.Context, revision, channelID, day string) ([]bbc.RadioProgramme, error)
}

const (
	DefaultPageSize = 200
	DefaultMaxPages = 9

	hdSuffix = "_hd"
)

// scheduleOverrides lists HD channels whose schedule lives under a regional id.
var scheduleOverrides = map[string]string{
	"bbc_one_hd": "bbc_one_london",
}

// ScheduleChannelID maps a catalog channel id to the id the broadcasts API
// knows. It reports false for an empty id, which has no schedule.
func ScheduleChannelID(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if mapped, ok := scheduleOverrides[id]; ok {
		return mapped, true
	}
	return strings.TrimSuffix(id, hdSuffix), true
}

// FetchTVSchedule pages through a channel's broadcasts from the given start.
// It stops once the reported total is covered, on an empty page, or after
// maxPages requests; hitting the cap truncates silently.
func FetchTVSchedule(ctx context.Context, api ScheduleAPI, scheduleID string, from time.Time, pageSize, maxPages int) ([]bbc.Broadcast, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var out []bbc.Broadcast
	for page := 1; page <= maxPages; page++ {
		res, err := api.Broadcasts(ctx, scheduleID, from, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("broadcasts page %d of %s: %w", page, scheduleID, err)
		}
		metrics.RecordSchedulePage("tv")
		out = append(out, res.Elements...)

		if page*pageSize >= res.Count || len(res.Elements) == 0 {
			return out, nil
		}
		if page == maxPages {
			metrics.RecordPageCapHit()
		}
	}
	return out, nil
}

// FetchRadioSchedule fetches each day in order and concatenates the result.
// A programme spanning midnight appears at the end of one day and the start
// of the next; the second copy is dropped.
func FetchRadioSchedule(ctx context.Context, api ScheduleAPI, revision, channelID string, days []string) ([]bbc.RadioProgramme, error) {
	var (
		out       []bbc.RadioProgramme
		lastStart string
	)
	for _, day := range days {
		items, err := api.RadioDay(ctx, revision, channelID, day)
		if err != nil {
			return nil, fmt.Errorf("radio day %s of %s: %w", day, channelID, err)
		}
		metrics.RecordSchedulePage("radio")
		if len(items) == 0 {
			continue
		}
		if lastStart != "" && items[0].Start == lastStart {
			items = items[1:]
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, items...)
		lastStart = items[len(items)-1].Start
	}
	return out, nil
}

// DayLayout formats calendar days in radio snapshot paths.
const DayLayout = "2006-01-02"

// RadioDays lists the UTC calendar days from now-past to now+future inclusive.
func RadioDays(now time.Time, past, future int) []string {
	now = now.UTC()
	days := make([]string, 0, past+future+1)
	for i := -past; i <= future; i++ {
		days = append(days, now.AddDate(0, 0, i).Format(DayLayout))
	}
	return days
}
