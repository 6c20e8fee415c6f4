package policy

import (
	"context"
	"fmt"
	"net/url"

	"github.com/snapcore/prompting-client/prompt"
)

type rawNotice struct {
	Key          prompt.ID `json:"key"`
	LastOccurred string    `json:"last-occurred"`
	LastData     *struct {
		Resolved string `json:"resolved"`
	} `json:"last-data"`
}

// PendingNotices long-polls for prompt notices newer than the client's
// cursor, advances the cursor to the last-occurred time of the final
// notice in the batch, and maps the batch into the Update/Resolved
// outcomes the Worker consumes. An empty batch leaves the cursor
// unchanged.
func (c *Client) PendingNotices(ctx context.Context) ([]prompt.Notice, error) {
	path := fmt.Sprintf(
		"notices?types=%s&timeout=%s&after=%s",
		noticeTypes, longPollTimeout, url.QueryEscape(c.noticesAfter),
	)

	var raw []rawNotice
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	c.noticesAfter = raw[len(raw)-1].LastOccurred

	notices := make([]prompt.Notice, 0, len(raw))
	for _, n := range raw {
		kind := prompt.NoticeUpdate
		if n.LastData != nil && n.LastData.Resolved == "replied" {
			kind = prompt.NoticeResolved
		}
		notices = append(notices, prompt.Notice{Kind: kind, ID: n.Key})
	}
	return notices, nil
}

// NoticesAfter returns the current notice cursor, exposed for tests that
// assert cursor monotonicity.
func (c *Client) NoticesAfter() string { return c.noticesAfter }
