// SPDX-License-Identifier: MIT
package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
	"github.com/ManuGH/ipwww-iptv/internal/catalog"
)

func TestScheduleChannelID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"bbc_one_hd", "bbc_one_london", true},
		{"bbc_two_hd", "bbc_two", true},
		{"bbc_four_hd", "bbc_four", true},
		{"bbc_one_scotland_hd", "bbc_one_scotland", true},
		{"bbc_news24", "bbc_news24", true},
		{"bbc_hd_extra", "bbc_hd_extra", true},
		{"bbc_two_england", "bbc_two_england", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ScheduleChannelID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestScheduleChannelIDCoversCatalog(t *testing.T) {
	for _, ch := range catalog.TV() {
		got, ok := ScheduleChannelID(ch.ID)
		assert.True(t, ok, ch.ID)
		assert.NotContains(t, got, hdSuffix, ch.ID)
	}
}

func TestFetchTVScheduleStopsAtCount(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_two"] = broadcasts(450)

	got, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 200, 9)
	require.NoError(t, err)
	assert.Len(t, got, 450)
	assert.Equal(t, []string{"tv:bbc_two:1", "tv:bbc_two:2", "tv:bbc_two:3"}, api.Calls())
}

func TestFetchTVScheduleExactMultiple(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_two"] = broadcasts(400)

	got, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 200, 9)
	require.NoError(t, err)
	assert.Len(t, got, 400)
	assert.Len(t, api.Calls(), 2)
}

func TestFetchTVScheduleHonoursPageCap(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_two"] = broadcasts(2000)
	api.counts["bbc_two"] = 1_000_000

	got, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 200, 9)
	require.NoError(t, err, "truncation at the cap is not an error")
	assert.Len(t, got, 1800)
	assert.Len(t, api.Calls(), 9)
}

func TestFetchTVScheduleStopsOnEmptyPage(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_two"] = broadcasts(150)
	api.counts["bbc_two"] = 5000

	got, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 100, 9)
	require.NoError(t, err)
	assert.Len(t, got, 150)
	assert.Len(t, api.Calls(), 3)
}

func TestFetchTVSchedulePreservesOrder(t *testing.T) {
	api := newFakeAPI()
	api.broadcasts["bbc_two"] = broadcasts(5)

	got, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 2, 9)
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, b := range got {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{"b0000", "b0001", "b0002", "b0003", "b0004"}, ids)
}

func TestFetchTVScheduleError(t *testing.T) {
	api := newFakeAPI()
	api.tvErr["bbc_two"] = bbc.ErrUpstreamError

	_, err := FetchTVSchedule(context.Background(), api, "bbc_two", time.Now(), 200, 9)
	assert.True(t, errors.Is(err, bbc.ErrUpstreamError))
}

func TestFetchRadioScheduleDeduplicatesMidnight(t *testing.T) {
	api := newFakeAPI()
	api.days["bbc_radio_two"] = map[string][]bbc.RadioProgramme{
		"2024-03-01": {
			programme("2024-03-01T22:00:00Z", "2024-03-01T23:00:00Z"),
			programme("2024-03-01T23:00:00Z", "2024-03-02T01:00:00Z"),
		},
		"2024-03-02": {
			programme("2024-03-01T23:00:00Z", "2024-03-02T01:00:00Z"),
			programme("2024-03-02T01:00:00Z", "2024-03-02T03:00:00Z"),
		},
	}

	got, err := FetchRadioSchedule(context.Background(), api, "rev", "bbc_radio_two", []string{"2024-03-01", "2024-03-02"})
	require.NoError(t, err)

	starts := make([]string, len(got))
	for i, p := range got {
		starts[i] = p.Start
	}
	want := []string{"2024-03-01T22:00:00Z", "2024-03-01T23:00:00Z", "2024-03-02T01:00:00Z"}
	if diff := cmp.Diff(want, starts); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchRadioScheduleSkipsEmptyDays(t *testing.T) {
	api := newFakeAPI()
	api.days["bbc_radio_two"] = map[string][]bbc.RadioProgramme{
		"2024-03-01": {programme("2024-03-01T23:00:00Z", "2024-03-02T01:00:00Z")},
		"2024-03-03": {
			programme("2024-03-01T23:00:00Z", "2024-03-02T01:00:00Z"),
			programme("2024-03-03T01:00:00Z", "2024-03-03T02:00:00Z"),
		},
	}

	got, err := FetchRadioSchedule(context.Background(), api, "rev", "bbc_radio_two",
		[]string{"2024-03-01", "2024-03-02", "2024-03-03"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, api.Calls(), 3)
}

func TestFetchRadioScheduleError(t *testing.T) {
	api := newFakeAPI()
	api.dayErr["bbc_radio_two"] = bbc.ErrBadResponse

	_, err := FetchRadioSchedule(context.Background(), api, "rev", "bbc_radio_two", []string{"2024-03-01"})
	assert.ErrorIs(t, err, bbc.ErrBadResponse)
}

func TestRadioDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	days := RadioDays(now, 7, 7)
	require.Len(t, days, 15)
	assert.Equal(t, "2024-02-24", days[0])
	assert.Equal(t, "2024-03-02", days[7])
	assert.Equal(t, "2024-03-09", days[14])
}
