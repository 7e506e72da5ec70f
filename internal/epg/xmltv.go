// SPDX-License-Identifier: MIT
package epg

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/catalog"
)

// XMLTVGenerator is written into the generator-info-name attribute.
const XMLTVGenerator = "ipwww-iptv"

const xmltvTimeLayout = "20060102150405 -0700"

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
	Icon        *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

type Programme struct {
	Start    string `xml:"start,attr"`
	Stop     string `xml:"stop,attr"`
	Channel  string `xml:"channel,attr"`
	Title    Title  `xml:"title"`
	SubTitle string `xml:"sub-title,omitempty"`
	Desc     string `xml:"desc,omitempty"`
	Category string `xml:"category,omitempty"`
	Date     string `xml:"date,omitempty"`
	Icon     *Icon  `xml:"icon,omitempty"`
}

type Title struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// BuildXMLTV converts a guide into an XMLTV document. Channels appear in the
// given order; entries whose times cannot be parsed are left out.
func BuildXMLTV(g Guide, channels []catalog.Channel) *TV {
	tv := &TV{Generator: XMLTVGenerator, Programs: []Programme{}}
	for _, ch := range channels {
		id := catalog.NamespacedID(ch.ID)
		tv.Channels = append(tv.Channels, Channel{
			ID:          id,
			DisplayName: []string{ch.Name},
			Icon:        &Icon{Src: catalog.IconURL(ch.ID)},
		})
		for _, e := range g[id] {
			p, ok := toProgramme(id, e)
			if ok {
				tv.Programs = append(tv.Programs, p)
			}
		}
	}
	return tv
}

func toProgramme(channelID string, e Entry) (Programme, bool) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return Programme{}, false
	}
	stop, err := time.Parse(time.RFC3339, e.Stop)
	if err != nil {
		return Programme{}, false
	}

	p := Programme{
		Start:    start.Format(xmltvTimeLayout),
		Stop:     stop.Format(xmltvTimeLayout),
		Channel:  channelID,
		Title:    Title{Lang: "en", Value: deref(e.Title)},
		SubTitle: deref(e.Subtitle),
		Desc:     deref(e.Description),
		Category: deref(e.Genre),
	}
	if d := deref(e.Date); len(d) >= 10 && d[4] == '-' && d[7] == '-' {
		// XMLTV dates are YYYYMMDD.
		p.Date = d[0:4] + d[5:7] + d[8:10]
	}
	if img := deref(e.Image); img != "" {
		p.Icon = &Icon{Src: img}
	}
	return p, true
}

// WriteXMLTV encodes the guide as XMLTV, header included.
func WriteXMLTV(w io.Writer, g Guide, channels []catalog.Channel) error {
	out, err := xml.MarshalIndent(BuildXMLTV(g, channels), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal xmltv: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
