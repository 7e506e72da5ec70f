// SPDX-License-Identifier: MIT

// Package playlist builds the JSON-STREAMS channel list for IPTV Manager and
// the launch URLs that point back into the iPlayer add-on.
package playlist

import "github.com/ManuGH/ipwww-iptv/internal/catalog"

// FormatVersion is the JSON-STREAMS / JSON-EPG schema version.
const FormatVersion = 1

// Stream is one playable channel as published to IPTV Manager.
type Stream struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Stream string `json:"stream"`
	Radio  bool   `json:"radio,omitempty"`
}

// Document is the top-level JSON-STREAMS payload.
type Document struct {
	Version int      `json:"version"`
	Streams []Stream `json:"streams"`
}

// Streams converts selected channels into stream descriptors, in order.
func Streams(addonID string, channels []catalog.Channel, autoplay bool) []Stream {
	out := make([]Stream, 0, len(channels))
	for _, ch := range channels {
		out = append(out, Stream{
			ID:     catalog.NamespacedID(ch.ID),
			Name:   ch.Name,
			Logo:   catalog.IconURL(ch.ID),
			Stream: ChannelURL(addonID, ch, autoplay),
			Radio:  ch.Kind == catalog.KindRadio,
		})
	}
	return out
}

// NewDocument wraps streams in a versioned document. A nil slice is encoded
// as an empty list.
func NewDocument(streams []Stream) Document {
	if streams == nil {
		streams = []Stream{}
	}
	return Document{Version: FormatVersion, Streams: streams}
}
