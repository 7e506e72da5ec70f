// SPDX-License-Identifier: MIT
package iptv

import (
	"context"
	"fmt"
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/epg"
	"github.com/ManuGH/ipwww-iptv/internal/jobs"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
	"github.com/ManuGH/ipwww-iptv/internal/playlist"
	"github.com/ManuGH/ipwww-iptv/internal/settings"
	"github.com/ManuGH/ipwww-iptv/internal/telemetry"
)

// Operations reported in logs and metrics.
const (
	OpChannels = "channels"
	OpEPG      = "epg"
)

// Builder produces the two documents IPTV Manager asks for.
type Builder interface {
	BuildStreams(sel jobs.Selection) playlist.Document
	BuildGuide(ctx context.Context, sel jobs.Selection) epg.Guide
}

// Manager answers IPTV Manager requests from the current settings.
type Manager struct {
	Builder  Builder
	Settings settings.Reader
	Keys     settings.Keys
	Timeout  time.Duration
}

var tracer = telemetry.Tracer("github.com/ManuGH/ipwww-iptv/internal/iptv")

// Selection reads the enabled channels from settings.
func (m *Manager) Selection() jobs.Selection {
	return settings.SelectionFrom(m.Settings, m.Keys)
}

// SendChannels delivers the JSON-STREAMS document to port.
func (m *Manager) SendChannels(ctx context.Context, port int) error {
	doc := m.Builder.BuildStreams(m.Selection())
	return m.deliver(ctx, OpChannels, port, doc, len(doc.Streams))
}

// SendEPG builds the guide and delivers the JSON-EPG document to port.
func (m *Manager) SendEPG(ctx context.Context, port int) error {
	guide := m.Builder.BuildGuide(ctx, m.Selection())
	return m.deliver(ctx, OpEPG, port, epg.NewDocument(guide), guide.Entries())
}

func (m *Manager) deliver(ctx context.Context, op string, port int, payload any, items int) error {
	if xglog.OperationFromContext(ctx) == "" {
		ctx = xglog.ContextWithOperation(ctx, op)
	}
	ctx, span := tracer.Start(ctx, "iptv.deliver")
	defer span.End()
	span.SetAttributes(telemetry.DeliveryAttributes(op, port)...)

	err := Deliver(ctx, port, payload, m.Timeout)
	metrics.RecordDelivery(op, err == nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("send %s: %w", op, err)
	}

	logger := xglog.WithComponentFromContext(ctx, "iptv")
	logger.Info().
		Str(xglog.FieldEvent, "iptv.delivered").
		Int(xglog.FieldPort, port).
		Int(xglog.FieldEntries, items).
		Msg("delivered to IPTV Manager")
	return nil
}

// HandleChannels is the entry point for the "channels" trigger. Every
// failure, including a panic, is logged and swallowed.
func (m *Manager) HandleChannels(ctx context.Context, rawPort string) {
	m.handle(ctx, OpChannels, rawPort, m.SendChannels)
}

// HandleEPG is the entry point for the "epg" trigger. Every failure,
// including a panic, is logged and swallowed.
func (m *Manager) HandleEPG(ctx context.Context, rawPort string) {
	m.handle(ctx, OpEPG, rawPort, m.SendEPG)
}

func (m *Manager) handle(ctx context.Context, op, rawPort string, send func(context.Context, int) error) {
	ctx = xglog.ContextWithOperation(ctx, op)
	logger := xglog.WithComponentFromContext(ctx, "iptv")
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordDelivery(op, false)
			logger.Error().
				Str(xglog.FieldEvent, "iptv.panic").
				Interface("panic", r).
				Msg("trigger panicked")
		}
	}()

	port, err := ParsePort(rawPort)
	if err != nil {
		metrics.RecordDelivery(op, false)
		logger.Error().Err(err).
			Str(xglog.FieldEvent, "iptv.bad_port").
			Msg("invalid port")
		return
	}
	if err := send(ctx, port); err != nil {
		logger.Error().Err(err).
			Str(xglog.FieldEvent, "iptv.delivery_failed").
			Int(xglog.FieldPort, port).
			Msg("delivery to IPTV Manager failed")
	}
}
