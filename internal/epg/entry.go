// SPDX-License-Identifier: MIT

// Package epg turns raw BBC schedule records into JSON-EPG guide entries.
package epg

import (
	"errors"

	"github.com/ManuGH/ipwww-iptv/internal/playlist"
)

// ErrMissingField reports a raw record lacking a field every entry needs.
var ErrMissingField = errors.New("epg: required field missing")

// DefaultImageRecipe is the resolution substituted into image URL templates.
const DefaultImageRecipe = "832x468"

// Entry is one programme in the guide. Optional values encode as null.
type Entry struct {
	Start       string  `json:"start"`
	Stop        string  `json:"stop"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subtitle    *string `json:"subtitle"`
	Genre       *string `json:"genre"`
	Image       *string `json:"image"`
	Date        *string `json:"date"`
	Stream      *string `json:"stream"`
}

// Guide maps a namespaced channel id to its programmes in start order.
type Guide map[string][]Entry

// Document is the top-level JSON-EPG payload.
type Document struct {
	Version int   `json:"version"`
	EPG     Guide `json:"epg"`
}

// NewDocument wraps a guide; a nil guide encodes as an empty object.
func NewDocument(g Guide) Document {
	if g == nil {
		g = Guide{}
	}
	return Document{Version: playlist.FormatVersion, EPG: g}
}

// Options controls how launch URLs and images are rendered.
type Options struct {
	AddonID     string
	ImageRecipe string
}

func (o Options) recipe() string {
	if o.ImageRecipe == "" {
		return DefaultImageRecipe
	}
	return o.ImageRecipe
}

// Entries returns the total number of programmes across all channels.
func (g Guide) Entries() int {
	n := 0
	for _, entries := range g {
		n += len(entries)
	}
	return n
}
