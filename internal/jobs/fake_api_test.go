// SPDX-License-Identifier: MIT
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
)

// fakeAPI is an in-memory ScheduleAPI that records every call.
type fakeAPI struct {
	mu         sync.Mutex
	broadcasts map[string][]bbc.Broadcast
	counts     map[string]int
	tvErr      map[string]error
	revision   string
	revErr     error
	days       map[string]map[string][]bbc.RadioProgramme
	dayErr     map[string]error
	calls      []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		broadcasts: make(map[string][]bbc.Broadcast),
		counts:     make(map[string]int),
		tvErr:      make(map[string]error),
		revision:   "rev1",
		days:       make(map[string]map[string][]bbc.RadioProgramme),
		dayErr:     make(map[string]error),
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Broadcasts(_ context.Context, scheduleID string, _ time.Time, page, perPage int) (bbc.BroadcastPage, error) {
	f.record(fmt.Sprintf("tv:%s:%d", scheduleID, page))

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.tvErr[scheduleID]; err != nil {
		return bbc.BroadcastPage{}, err
	}
	all := f.broadcasts[scheduleID]
	count, ok := f.counts[scheduleID]
	if !ok {
		count = len(all)
	}
	start := (page - 1) * perPage
	var elems []bbc.Broadcast
	if start < len(all) {
		elems = all[start:min(start+perPage, len(all))]
	}
	return bbc.BroadcastPage{Count: count, Page: page, PerPage: perPage, Elements: elems}, nil
}

func (f *fakeAPI) RevisionToken(context.Context) (string, error) {
	f.record("revision")
	return f.revision, f.revErr
}

func (f *fakeAPI) RadioDay(_ context.Context, revision, channelID, day string) ([]bbc.RadioProgramme, error) {
	f.record(fmt.Sprintf("radio:%s:%s:%s", revision, channelID, day))

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dayErr[channelID]; err != nil {
		return nil, err
	}
	return f.days[channelID][day], nil
}

func broadcasts(n int) []bbc.Broadcast {
	out := make([]bbc.Broadcast, n)
	for i := range out {
		out[i] = bbc.Broadcast{
			ID:             fmt.Sprintf("b%04d", i),
			ScheduledStart: "2024-03-01T10:00:00Z",
			ScheduledEnd:   "2024-03-01T11:00:00Z",
			Episode:        &bbc.Episode{ID: fmt.Sprintf("e%04d", i), Title: "Programme"},
		}
	}
	return out
}

func programme(start, end string) bbc.RadioProgramme {
	return bbc.RadioProgramme{Start: start, End: end, Titles: bbc.Titles{Primary: "Show " + start}}
}
