// SPDX-License-Identifier: MIT
package settings

import (
	"strings"

	"github.com/ManuGH/ipwww-iptv/internal/jobs"
)

// Keys names the settings that hold the channel selection.
type Keys struct {
	TVChannels    string `yaml:"tvChannels"`
	RadioChannels string `yaml:"radioChannels"`
	Autoplay      string `yaml:"autoplay"`
}

// DefaultKeys are the names used by the iPlayer add-on.
var DefaultKeys = Keys{
	TVChannels:    "iptv.tv_channels",
	RadioChannels: "iptv.radio_channels",
	Autoplay:      "streams_autoplay",
}

// ParseIDs splits a semicolon-separated id list, trimming blanks.
func ParseIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// SelectionFrom reads the enabled channels and autoplay flag.
func SelectionFrom(r Reader, keys Keys) jobs.Selection {
	tv, _ := r.Get(keys.TVChannels)
	radio, _ := r.Get(keys.RadioChannels)
	autoplay, _ := r.Get(keys.Autoplay)
	return jobs.Selection{
		TV:       ParseIDs(tv),
		Radio:    ParseIDs(radio),
		Autoplay: parseBool(autoplay),
	}
}
