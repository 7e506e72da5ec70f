// SPDX-License-Identifier: MIT

// Package catalog holds the static BBC channel tables and the selection of
// the channels a user enabled for IPTV Manager.
package catalog

// Kind is the media kind of a channel.
type Kind int

const (
	KindTV Kind = iota
	KindRadio
)

func (k Kind) String() string {
	if k == KindRadio {
		return "radio"
	}
	return "tv"
}

// Channel is one entry of the static catalog.
type Channel struct {
	ID   string // stable id shared by catalog, settings and the iPlayer/Sounds APIs
	Name string
	Kind Kind
}

// Namespace prefixes every channel id handed to IPTV Manager so ids from this
// adapter cannot collide with other sources feeding the same host.
const Namespace = "ipwww."

// NamespacedID returns the id under which the channel is published.
func NamespacedID(id string) string {
	return Namespace + id
}

// IconURL returns the Kodi resource URL of a channel logo.
func IconURL(id string) string {
	return "resource://resource.images.iplayerwww/media/" + id + ".png"
}
