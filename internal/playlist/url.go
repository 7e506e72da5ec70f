// SPDX-License-Identifier: MIT
package playlist

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ManuGH/ipwww-iptv/internal/catalog"
)

// DefaultAddonID is the Kodi add-on that plays the synthesized launch URLs.
const DefaultAddonID = "plugin.video.iplayerwww"

// Mode selects the add-on route that handles a launch URL.
type Mode int

const (
	ModeTVLive         Mode = 123 // live TV, opens the channel menu
	ModeTVLiveAutoplay Mode = 203 // live TV, starts playback immediately
	ModeTVEpisode      Mode = 202 // iPlayer episode replay
	ModeRadioLive      Mode = 213 // live radio
	ModeRadioEpisode   Mode = 212 // Sounds episode replay
)

func (m Mode) String() string { return strconv.Itoa(int(m)) }

// ModeFor is the lookup table behind every launch URL. Autoplay only applies
// to live television; radio always starts playing.
func ModeFor(live bool, kind catalog.Kind, autoplay bool) Mode {
	switch {
	case live && kind == catalog.KindRadio:
		return ModeRadioLive
	case live && autoplay:
		return ModeTVLiveAutoplay
	case live:
		return ModeTVLive
	case kind == catalog.KindRadio:
		return ModeRadioEpisode
	default:
		return ModeTVEpisode
	}
}

const (
	iplayerEpisodeBase = "https://www.bbc.co.uk/iplayer/episode/"
	soundsPlayBase     = "https://www.bbc.co.uk/sounds/play/"
)

// ChannelURL builds the launch URL of a live channel.
func ChannelURL(addonID string, ch catalog.Channel, autoplay bool) string {
	mode := ModeFor(true, ch.Kind, autoplay)
	return pluginURL(addonID, [][2]string{
		{"url", ch.ID},
		{"mode", mode.String()},
		{"name", ch.Name},
		{"iconimage", catalog.IconURL(ch.ID)},
	})
}

// EpisodeURL builds the launch URL of an on-demand TV episode or radio programme.
func EpisodeURL(addonID, episodeID string, kind catalog.Kind) string {
	page := iplayerEpisodeBase + episodeID
	if kind == catalog.KindRadio {
		page = soundsPlayBase + episodeID
	}
	return pluginURL(addonID, [][2]string{
		{"url", page},
		{"mode", ModeFor(false, kind, false).String()},
	})
}

// pluginURL keeps parameter order stable; url.Values would sort the keys.
func pluginURL(addonID string, params [][2]string) string {
	if addonID == "" {
		addonID = DefaultAddonID
	}
	var b strings.Builder
	b.WriteString("plugin://")
	b.WriteString(addonID)
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
