// SPDX-License-Identifier: MIT
package bbc

// BroadcastPage is one page of the iBL channel broadcasts listing.
type BroadcastPage struct {
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	PerPage  int         `json:"per_page"`
	Elements []Broadcast `json:"elements"`
}

// Broadcast is a scheduled TV slot and the episode shown in it.
type Broadcast struct {
	ID             string   `json:"id"`
	ScheduledStart string   `json:"scheduled_start"`
	ScheduledEnd   string   `json:"scheduled_end"`
	Episode        *Episode `json:"episode"`
}

// Episode carries the editorial metadata of a broadcast.
type Episode struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle"`
	EditorialSubtitle string   `json:"editorial_subtitle"`
	Synopses          Synopses `json:"synopses"`
	Images            Images   `json:"images"`
	Categories        []string `json:"categories"`
	ReleaseDateTime   string   `json:"release_date_time"`
	Status            string   `json:"status"`
}

// StatusAvailable marks an episode that can be streamed right now.
const StatusAvailable = "available"

// Synopses covers both the iBL (small/medium/large) and the Sounds
// (short/medium/long) naming.
type Synopses struct {
	Small     string `json:"small"`
	Short     string `json:"short"`
	Medium    string `json:"medium"`
	Large     string `json:"large"`
	Long      string `json:"long"`
	Editorial string `json:"editorial"`
}

// Images holds image URL templates containing a {recipe} placeholder.
type Images struct {
	Standard    string `json:"standard"`
	Promotional string `json:"promotional"`
}

// RadioProgramme is one entry of a Sounds day schedule.
type RadioProgramme struct {
	Start             string        `json:"start"`
	End               string        `json:"end"`
	Titles            Titles        `json:"titles"`
	Synopses          Synopses      `json:"synopses"`
	Subtitle          string        `json:"subtitle"`
	EditorialSubtitle string        `json:"editorial_subtitle"`
	ImageURL          string        `json:"image_url"`
	PlayableItem      *PlayableItem `json:"playable_item"`
}

// Titles are ordered from most to least specific.
type Titles struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

// PlayableItem is present when the programme can be played on demand.
type PlayableItem struct {
	URN     string   `json:"urn"`
	Release *Release `json:"release"`
}

type Release struct {
	Date string `json:"date"`
}
