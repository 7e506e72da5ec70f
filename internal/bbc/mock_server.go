// SPDX-License-Identifier: MIT
package bbc

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockServer serves canned iBL and Sounds responses for tests.
type MockServer struct {
	*httptest.Server
	mu         sync.RWMutex
	buildID    string
	broadcasts map[string][]Broadcast
	counts     map[string]int
	radioDays  map[string]map[string][]RadioProgramme
	failures   map[string]int // path prefix -> HTTP status
	requests   []string
}

const defaultMockBuildID = "mockbuild01"

var bootstrapPage = template.Must(template.New("bootstrap").Parse(`<!DOCTYPE html>
<html><head><title>BBC Radio 1 Schedule</title></head>
<body><div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">{"buildId":{{.}},"page":"/schedules/[network]"}</script>
</body></html>`))

// NewMockServer starts a mock serving both backends under /ibl/v1 and /sounds.
func NewMockServer() *MockServer {
	m := &MockServer{
		buildID:    defaultMockBuildID,
		broadcasts: make(map[string][]Broadcast),
		counts:     make(map[string]int),
		radioDays:  make(map[string]map[string][]RadioProgramme),
		failures:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ibl/v1/channels/{id}/broadcasts", m.handleBroadcasts)
	mux.HandleFunc("GET /sounds/schedules/bbc_radio_one", m.handleBootstrap)
	mux.HandleFunc("GET /sounds/_next/data/{build}/schedules/{channel}/{file}", m.handleRadioDay)

	m.Server = httptest.NewServer(m.intercept(mux))
	return m
}

// Options returns client options pointing at the mock.
func (m *MockServer) Options() Options {
	return Options{
		IBLBaseURL:    m.URL + "/ibl/v1",
		SoundsBaseURL: m.URL + "/sounds",
	}
}

// SetBuildID changes the revision token the bootstrap page advertises.
func (m *MockServer) SetBuildID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildID = id
}

// SetBroadcasts replaces the full broadcast list of a schedule id.
func (m *MockServer) SetBroadcasts(scheduleID string, items []Broadcast) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts[scheduleID] = items
}

// SetCount overrides the total count reported for a schedule id.
func (m *MockServer) SetCount(scheduleID string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[scheduleID] = count
}

// SetRadioDay sets the programmes of a station on day (YYYY-MM-DD).
func (m *MockServer) SetRadioDay(channelID, day string, items []RadioProgramme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.radioDays[channelID] == nil {
		m.radioDays[channelID] = make(map[string][]RadioProgramme)
	}
	m.radioDays[channelID][day] = items
}

// FailPath makes every request whose path starts with prefix answer status.
func (m *MockServer) FailPath(prefix string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[prefix] = status
}

// Requests returns the request URIs served so far, in arrival order.
func (m *MockServer) Requests() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsWithPrefix counts served requests whose path starts with prefix.
func (m *MockServer) RequestsWithPrefix(prefix string) int {
	n := 0
	for _, r := range m.Requests() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (m *MockServer) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.URL.RequestURI())
		status := 0
		for prefix, code := range m.failures {
			if strings.HasPrefix(r.URL.Path, prefix) {
				status = code
				break
			}
		}
		m.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *MockServer) handleBroadcasts(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 200
	}

	m.mu.RLock()
	all, ok := m.broadcasts[id]
	count, overridden := m.counts[id]
	m.mu.RUnlock()

	if !ok && !overridden {
		http.NotFound(w, r)
		return
	}
	if !overridden {
		count = len(all)
	}

	start := (page - 1) * perPage
	elements := []Broadcast{}
	if start < len(all) {
		end := min(start+perPage, len(all))
		elements = all[start:end]
	}

	writeJSON(w, map[string]any{
		"version": "1.0",
		"broadcasts": BroadcastPage{
			Count:    count,
			Page:     page,
			PerPage:  perPage,
			Elements: elements,
		},
	})
}

func (m *MockServer) handleBootstrap(w http.ResponseWriter, _ *http.Request) {
	m.mu.RLock()
	build := m.buildID
	m.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = bootstrapPage.Execute(w, build)
}

func (m *MockServer) handleRadioDay(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	build := m.buildID
	items := m.radioDays[r.PathValue("channel")][strings.TrimSuffix(r.PathValue("file"), ".json")]
	m.mu.RUnlock()

	if r.PathValue("build") != build {
		http.NotFound(w, r)
		return
	}
	if items == nil {
		items = []RadioProgramme{}
	}
	writeJSON(w, RadioDayEnvelope(items))
}

// RadioDayEnvelope wraps programmes in the page-props structure the Sounds
// front-end serves for a schedule day.
func RadioDayEnvelope(items []RadioProgramme) map[string]any {
	return map[string]any{
		"pageProps": map[string]any{
			"dehydratedState": map[string]any{
				"queries": []any{
					map[string]any{"queryKey": []string{"experiment"}, "state": map[string]any{"data": map[string]any{}}},
					map[string]any{
						"queryKey": []string{"schedule"},
						"state": map[string]any{
							"data": map[string]any{
								"data": []any{map[string]any{"id": "schedule_items", "data": items}},
							},
						},
					},
				},
			},
		},
		"__N_SSP": true,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode: %v", err), http.StatusInternalServerError)
	}
}
