// SPDX-License-Identifier: MIT
package bbc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// FromDateLayout is the minute-precision timestamp the broadcasts API accepts.
const FromDateLayout = "2006-01-02T15:04"

type broadcastsEnvelope struct {
	Broadcasts *BroadcastPage `json:"broadcasts"`
}

// BroadcastsURL returns the URL of one page of a channel's broadcast schedule.
func (c *Client) BroadcastsURL(scheduleID string, from time.Time, page, perPage int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("from_date", from.UTC().Format(FromDateLayout))
	return fmt.Sprintf("%s/channels/%s/broadcasts?%s", c.opts.IBLBaseURL, url.PathEscape(scheduleID), q.Encode())
}

// Broadcasts fetches one page (1-indexed) of broadcasts starting at from.
func (c *Client) Broadcasts(ctx context.Context, scheduleID string, from time.Time, page, perPage int) (BroadcastPage, error) {
	const op = "broadcasts"
	u := c.BroadcastsURL(scheduleID, from, page, perPage)

	body, err := c.fetch(ctx, "ibl", op, http.MethodGet, u)
	if err != nil {
		return BroadcastPage{}, err
	}

	var env broadcastsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return BroadcastPage{}, badResponse(op, u, err)
	}
	if env.Broadcasts == nil {
		return BroadcastPage{}, badResponse(op, u, fmt.Errorf("missing broadcasts object"))
	}
	return *env.Broadcasts, nil
}
