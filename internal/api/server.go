// SPDX-License-Identifier: MIT

// Package api exposes the IPTV Manager triggers and the generated documents
// over HTTP. Triggers deliver to the loopback listener named by the port
// parameter, so they only reach an IPTV Manager on the daemon's own host.
// The streams.json and epg.json routes can be fetched from anywhere.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/ipwww-iptv/internal/api/middleware"
	"github.com/ManuGH/ipwww-iptv/internal/epg"
	"github.com/ManuGH/ipwww-iptv/internal/iptv"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
)

// ServiceName names the server spans.
const ServiceName = "ipwww-iptv"

// Server routes HTTP requests to an iptv.Manager.
type Server struct {
	manager   *iptv.Manager
	rateLimit int

	// deliveries tracks triggers still running after their request returned.
	deliveries sync.WaitGroup
}

// NewServer returns a server for m. rateLimit is requests per minute per
// client IP; zero or less disables limiting.
func NewServer(m *iptv.Manager, rateLimit int) *Server {
	return &Server{manager: m, rateLimit: rateLimit}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.OTelHTTP(ServiceName))
	r.Use(middleware.AccessLog)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/iptv", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestLimit: s.rateLimit,
				WindowSize:   time.Minute,
			}))
		}
		r.Get("/channels", s.trigger(iptv.OpChannels, s.manager.HandleChannels))
		r.Post("/channels", s.trigger(iptv.OpChannels, s.manager.HandleChannels))
		r.Get("/epg", s.trigger(iptv.OpEPG, s.manager.HandleEPG))
		r.Post("/epg", s.trigger(iptv.OpEPG, s.manager.HandleEPG))
		r.Get("/streams.json", s.handleStreams)
		r.Get("/epg.json", s.handleGuide)
	})
	return r
}

// Wait blocks until every accepted delivery has finished.
func (s *Server) Wait() {
	s.deliveries.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// trigger validates the port up front and runs the delivery detached from
// the request, so a slow guide build does not hold the connection open.
func (s *Server) trigger(op string, handle func(context.Context, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawPort := r.URL.Query().Get("port")
		if _, err := iptv.ParsePort(rawPort); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "invalid_port",
				"detail": err.Error(),
			})
			return
		}

		ctx := context.WithoutCancel(r.Context())
		s.deliveries.Add(1)
		go func() {
			defer s.deliveries.Done()
			handle(ctx, rawPort)
		}()

		logger := xglog.WithComponentFromContext(r.Context(), "api")
		logger.Debug().
			Str(xglog.FieldEvent, "trigger.accepted").
			Str(xglog.FieldOperation, op).
			Str(xglog.FieldPort, rawPort).
			Msg("trigger accepted")
		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":    "accepted",
			"operation": op,
		})
	}
}

func (s *Server) handleStreams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Builder.BuildStreams(s.manager.Selection()))
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	guide := s.manager.Builder.BuildGuide(r.Context(), s.manager.Selection())
	writeJSON(w, http.StatusOK, epg.NewDocument(guide))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
