// SPDX-License-Identifier: MIT
package bbc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// nextDataScriptID is the id of the script element in which the Next.js
// front-end embeds its page state, including the build id.
const nextDataScriptID = "__NEXT_DATA__"

// RevisionToken scrapes the current front-end build id from a schedule page.
// Day snapshots are only served under the build id that is currently live.
func (c *Client) RevisionToken(ctx context.Context) (string, error) {
	const op = "revision"
	u := c.opts.SoundsBaseURL + c.opts.BootstrapPath

	body, err := c.fetch(ctx, "sounds", op, http.MethodGet, u)
	if err != nil {
		return "", err
	}

	raw, err := extractNextData(body)
	if err != nil {
		return "", badResponse(op, u, err)
	}
	var data struct {
		BuildID string `json:"buildId"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", badResponse(op, u, err)
	}
	if data.BuildID == "" {
		return "", badResponse(op, u, fmt.Errorf("empty buildId"))
	}
	return data.BuildID, nil
}

func extractNextData(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == nextDataScriptID {
					found = n
					return
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if found == nil || found.FirstChild == nil {
		return nil, fmt.Errorf("%s script not found", nextDataScriptID)
	}
	return []byte(strings.TrimSpace(found.FirstChild.Data)), nil
}

// RadioDayURL returns the URL of the day snapshot of a station's schedule.
func (c *Client) RadioDayURL(revision, channelID, day string) string {
	return fmt.Sprintf("%s/_next/data/%s/schedules/%s/%s.json",
		c.opts.SoundsBaseURL, url.PathEscape(revision), url.PathEscape(channelID), url.PathEscape(day))
}

// soundsDay mirrors the part of the snapshot envelope leading to the
// programme list: pageProps.dehydratedState.queries[1].state.data.data[0].data.
type soundsDay struct {
	PageProps struct {
		DehydratedState struct {
			Queries []json.RawMessage `json:"queries"`
		} `json:"dehydratedState"`
	} `json:"pageProps"`
}

type scheduleQuery struct {
	State struct {
		Data *struct {
			Data []struct {
				Data []RadioProgramme `json:"data"`
			} `json:"data"`
		} `json:"data"`
	} `json:"state"`
}

// scheduleQueryIndex is the position of the schedule query among the
// dehydrated react-query states of a schedule page.
const scheduleQueryIndex = 1

// RadioDay fetches the programmes of one calendar day (YYYY-MM-DD).
func (c *Client) RadioDay(ctx context.Context, revision, channelID, day string) ([]RadioProgramme, error) {
	const op = "radio_day"
	u := c.RadioDayURL(revision, channelID, day)

	body, err := c.fetch(ctx, "sounds", op, http.MethodGet, u)
	if err != nil {
		return nil, err
	}
	return decodeRadioDay(op, u, body)
}

func decodeRadioDay(op, u string, body []byte) ([]RadioProgramme, error) {
	var env soundsDay
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, badResponse(op, u, err)
	}
	queries := env.PageProps.DehydratedState.Queries
	if len(queries) <= scheduleQueryIndex {
		return nil, badResponse(op, u, fmt.Errorf("expected at least %d queries, got %d", scheduleQueryIndex+1, len(queries)))
	}

	var q scheduleQuery
	if err := json.Unmarshal(queries[scheduleQueryIndex], &q); err != nil {
		return nil, badResponse(op, u, err)
	}
	if q.State.Data == nil || len(q.State.Data.Data) == 0 {
		return nil, badResponse(op, u, fmt.Errorf("schedule query carries no data"))
	}
	return q.State.Data.Data[0].Data, nil
}
