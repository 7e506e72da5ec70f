// SPDX-License-Identifier: MIT
package jobs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/ipwww-iptv/internal/catalog"
	"github.com/ManuGH/ipwww-iptv/internal/epg"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
	"github.com/ManuGH/ipwww-iptv/internal/playlist"
	"github.com/ManuGH/ipwww-iptv/internal/telemetry"
)

const (
	DefaultPastDays    = 7
	DefaultFutureDays  = 7
	DefaultConcurrency = 4
)

var tracer = telemetry.Tracer("github.com/ManuGH/ipwww-iptv/internal/jobs")

// Selection is the set of channels the user enabled, as raw catalog ids.
type Selection struct {
	TV       []string
	Radio    []string
	Autoplay bool
}

// Window bounds the guide in days around now and the TV paging limits.
type Window struct {
	PastDays   int
	FutureDays int
	PageSize   int
	MaxPages   int
}

// Aggregator builds the guide and stream list for a selection. Catalog
// tables are passed in; nothing is looked up globally.
type Aggregator struct {
	API          ScheduleAPI
	TVCatalog    []catalog.Channel
	RadioCatalog []catalog.Channel
	Opts         epg.Options
	Window       Window
	Concurrency  int
	Clock        func() time.Time
}

// NewAggregator returns an aggregator over the built-in catalog with
// default window and concurrency.
func NewAggregator(api ScheduleAPI, opts epg.Options) *Aggregator {
	return &Aggregator{
		API:          api,
		TVCatalog:    catalog.TV(),
		RadioCatalog: catalog.Radio(),
		Opts:         opts,
	}
}

func (a *Aggregator) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *Aggregator) window() Window {
	w := a.Window
	if w.PastDays <= 0 {
		w.PastDays = DefaultPastDays
	}
	if w.FutureDays <= 0 {
		w.FutureDays = DefaultFutureDays
	}
	if w.PageSize <= 0 {
		w.PageSize = DefaultPageSize
	}
	if w.MaxPages <= 0 {
		w.MaxPages = DefaultMaxPages
	}
	return w
}

func (a *Aggregator) concurrency() int {
	if a.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return a.Concurrency
}

// BuildStreams returns the stream list for the enabled channels, TV first.
func (a *Aggregator) BuildStreams(sel Selection) playlist.Document {
	return playlist.NewDocument(playlist.Streams(a.Opts.AddonID, a.Channels(sel), sel.Autoplay))
}

// Channels returns the enabled catalog channels, TV first.
func (a *Aggregator) Channels(sel Selection) []catalog.Channel {
	return append(catalog.Select(sel.TV, a.TVCatalog), catalog.Select(sel.Radio, a.RadioCatalog)...)
}

// enabledChannels turns a selection list into guide channels in list order.
func enabledChannels(ids []string, kind catalog.Kind) []catalog.Channel {
	seen := make(map[string]struct{}, len(ids))
	out := make([]catalog.Channel, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, catalog.Channel{ID: id, Kind: kind})
	}
	return out
}

// BuildGuide fetches and normalises every enabled channel's schedule.
//
// Failures are isolated per channel: a channel whose fetch or normalisation
// fails is logged and appears with an empty programme list. If the radio
// revision token cannot be fetched, every enabled radio channel is empty.
// Ids are taken from the selection as-is, so channels missing from the
// catalog are still fetched. Empty ids produce no key and duplicates are
// fetched once.
func (a *Aggregator) BuildGuide(ctx context.Context, sel Selection) epg.Guide {
	started := time.Now()
	logger := xglog.WithComponentFromContext(ctx, "guide")

	tv := enabledChannels(sel.TV, catalog.KindTV)
	radio := enabledChannels(sel.Radio, catalog.KindRadio)
	now := a.now().UTC()
	w := a.window()

	ctx, span := tracer.Start(ctx, "guide.build")
	defer span.End()
	span.SetAttributes(telemetry.GuideAttributes(len(tv), len(radio), a.concurrency())...)

	logger.Info().
		Str(xglog.FieldEvent, "guide.start").
		Int("tv_channels", len(tv)).
		Int("radio_channels", len(radio)).
		Msg("building guide")

	var (
		mu    sync.Mutex
		guide = make(epg.Guide, len(tv)+len(radio))
	)
	put := func(ch catalog.Channel, entries []epg.Entry) {
		if entries == nil {
			entries = []epg.Entry{}
		}
		mu.Lock()
		guide[catalog.NamespacedID(ch.ID)] = entries
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(a.concurrency())

	from := now.AddDate(0, 0, -w.PastDays)
	for _, ch := range tv {
		scheduleID, ok := ScheduleChannelID(ch.ID)
		if !ok {
			continue
		}
		g.Go(func() error {
			entries, err := a.channelGuide(ctx, ch, func(ctx context.Context) ([]epg.Entry, error) {
				return a.tvEntries(ctx, scheduleID, from, w)
			})
			if err != nil {
				logChannelFailure(logger, ch, err)
			}
			put(ch, entries)
			return nil
		})
	}

	if len(radio) > 0 {
		revision, err := a.API.RevisionToken(ctx)
		if err != nil {
			logger.Warn().Err(err).
				Str(xglog.FieldEvent, "guide.revision_failed").
				Msg("radio schedules unavailable")
			span.RecordError(err)
			for _, ch := range radio {
				metrics.RecordGuideChannel(ch.Kind.String(), false)
				put(ch, nil)
			}
		} else {
			span.SetAttributes(attribute.String(telemetry.RevisionKey, revision))
			days := RadioDays(now, w.PastDays, w.FutureDays)
			for _, ch := range radio {
				g.Go(func() error {
					entries, err := a.channelGuide(ctx, ch, func(ctx context.Context) ([]epg.Entry, error) {
						return a.radioEntries(ctx, revision, ch.ID, days)
					})
					if err != nil {
						logChannelFailure(logger, ch, err)
					}
					put(ch, entries)
					return nil
				})
			}
		}
	}

	_ = g.Wait()

	tvEntries, radioEntries := 0, 0
	for _, ch := range tv {
		tvEntries += len(guide[catalog.NamespacedID(ch.ID)])
	}
	for _, ch := range radio {
		radioEntries += len(guide[catalog.NamespacedID(ch.ID)])
	}
	metrics.RecordGuideBuild(time.Since(started), tvEntries, radioEntries)
	span.SetAttributes(attribute.Int(telemetry.EntriesKey, tvEntries+radioEntries))

	logger.Info().
		Str(xglog.FieldEvent, "guide.done").
		Int("channels", len(guide)).
		Int(xglog.FieldEntries, tvEntries+radioEntries).
		Dur("duration", time.Since(started)).
		Msg("guide built")
	return guide
}

// channelGuide runs one channel's fetch inside its own span and records the outcome.
func (a *Aggregator) channelGuide(ctx context.Context, ch catalog.Channel, fetch func(context.Context) ([]epg.Entry, error)) ([]epg.Entry, error) {
	ctx, span := tracer.Start(ctx, "guide.channel")
	defer span.End()
	span.SetAttributes(telemetry.ChannelAttributes(ch.ID, ch.Kind.String())...)

	entries, err := fetch(ctx)
	metrics.RecordGuideChannel(ch.Kind.String(), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "channel fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int(telemetry.EntriesKey, len(entries)))
	return entries, nil
}

func (a *Aggregator) tvEntries(ctx context.Context, scheduleID string, from time.Time, w Window) ([]epg.Entry, error) {
	raw, err := FetchTVSchedule(ctx, a.API, scheduleID, from, w.PageSize, w.MaxPages)
	if err != nil {
		return nil, err
	}
	entries := make([]epg.Entry, 0, len(raw))
	for i, b := range raw {
		e, err := epg.FromTVBroadcast(b, a.Opts)
		if err != nil {
			return nil, fmt.Errorf("broadcast %d of %s: %w", i, scheduleID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (a *Aggregator) radioEntries(ctx context.Context, revision, channelID string, days []string) ([]epg.Entry, error) {
	raw, err := FetchRadioSchedule(ctx, a.API, revision, channelID, days)
	if err != nil {
		return nil, err
	}
	entries := make([]epg.Entry, 0, len(raw))
	for i, p := range raw {
		e, err := epg.FromRadioProgramme(p, a.Opts)
		if err != nil {
			return nil, fmt.Errorf("programme %d of %s: %w", i, channelID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func logChannelFailure(logger zerolog.Logger, ch catalog.Channel, err error) {
	logger.Warn().Err(err).
		Str(xglog.FieldEvent, "guide.channel_failed").
		Str(xglog.FieldChannelID, ch.ID).
		Str(xglog.FieldKind, ch.Kind.String()).
		Msg("channel schedule unavailable, publishing empty guide")
}
