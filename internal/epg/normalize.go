// SPDX-License-Identifier: MIT
package epg

import (
	"fmt"
	"strings"

	unorm "golang.org/x/text/unicode/norm"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
	"github.com/ManuGH/ipwww-iptv/internal/catalog"
	"github.com/ManuGH/ipwww-iptv/internal/playlist"
)

const recipePlaceholder = "{recipe}"

// FromTVBroadcast maps an iBL broadcast to a guide entry. A stream URL is
// only set when the episode is available to play.
func FromTVBroadcast(b bbc.Broadcast, opts Options) (Entry, error) {
	if b.ScheduledStart == "" || b.ScheduledEnd == "" {
		return Entry{}, fmt.Errorf("%w: broadcast %q has no schedule times", ErrMissingField, b.ID)
	}
	ep := b.Episode
	if ep == nil {
		return Entry{}, fmt.Errorf("%w: broadcast %q has no episode", ErrMissingField, b.ID)
	}

	e := Entry{
		Start:       b.ScheduledStart,
		Stop:        b.ScheduledEnd,
		Title:       text(ep.Title),
		Description: text(selectSynopsis(ep.Synopses)),
		Subtitle:    text(firstOf(ep.EditorialSubtitle, ep.Subtitle)),
		Image:       text(selectImage(ep.Images, opts.recipe())),
		Date:        text(ep.ReleaseDateTime),
	}
	if len(ep.Categories) > 0 {
		e.Genre = text(ep.Categories[0])
	}
	if ep.Status == bbc.StatusAvailable {
		if ep.ID == "" {
			return Entry{}, fmt.Errorf("%w: available episode in broadcast %q has no id", ErrMissingField, b.ID)
		}
		u := playlist.EpisodeURL(opts.AddonID, ep.ID, catalog.KindTV)
		e.Stream = &u
	}
	return e, nil
}

// FromRadioProgramme maps a Sounds schedule item to a guide entry. Radio
// entries never carry a genre.
func FromRadioProgramme(p bbc.RadioProgramme, opts Options) (Entry, error) {
	if p.Start == "" || p.End == "" {
		return Entry{}, fmt.Errorf("%w: programme has no start or end", ErrMissingField)
	}

	e := Entry{
		Start:       p.Start,
		Stop:        p.End,
		Title:       text(firstOf(p.Titles.Primary, p.Titles.Secondary, p.Titles.Tertiary)),
		Description: text(selectSynopsis(p.Synopses)),
		Subtitle:    text(firstOf(p.EditorialSubtitle, p.Subtitle)),
		Image:       text(strings.ReplaceAll(p.ImageURL, recipePlaceholder, opts.recipe())),
	}
	if item := p.PlayableItem; item != nil {
		id := urnID(item.URN)
		if id == "" {
			return Entry{}, fmt.Errorf("%w: playable item of programme at %s has no urn", ErrMissingField, p.Start)
		}
		u := playlist.EpisodeURL(opts.AddonID, id, catalog.KindRadio)
		e.Stream = &u
		if item.Release != nil {
			e.Date = text(item.Release.Date)
		}
	}
	return e, nil
}

// urnID returns the last colon-delimited segment of a resource name.
func urnID(urn string) string {
	if i := strings.LastIndexByte(urn, ':'); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

// selectSynopsis prefers the longest text on offer.
func selectSynopsis(s bbc.Synopses) string {
	return firstOf(s.Large, s.Long, s.Medium, s.Small, s.Short, s.Editorial)
}

func selectImage(img bbc.Images, recipe string) string {
	tmpl := firstOf(img.Standard, img.Promotional)
	return strings.ReplaceAll(tmpl, recipePlaceholder, recipe)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// text normalises to NFC and trims; blank becomes nil so it encodes as null.
func text(s string) *string {
	s = strings.TrimSpace(unorm.NFC.String(s))
	if s == "" {
		return nil
	}
	return &s
}
