package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/snapcore/prompting-client/prompt"
)

type snapDetailsResult struct {
	InstallDate string `json:"install-date"`
	Publisher   struct {
		DisplayName string `json:"display-name"`
	} `json:"publisher"`
}

// SnapMetadata fetches display metadata for a snap, for rendering
// prompts. It is best-effort: any failure (transport, decode, or the
// rate limiter's context being cancelled) yields ok=false rather than an
// error, since a missing snap name or publisher is never worth failing
// the prompt over.
func (c *Client) SnapMetadata(ctx context.Context, name string) (meta prompt.SnapMeta, ok bool) {
	if err := c.notifierLim.Wait(ctx); err != nil {
		return prompt.SnapMeta{}, false
	}

	var res snapDetailsResult
	path := fmt.Sprintf("snaps/%s", name)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return prompt.SnapMeta{}, false
	}

	return prompt.SnapMeta{
		Name:      name,
		UpdatedAt: dateOnly(res.InstallDate),
		StoreURL:  "snap://" + name,
		Publisher: res.Publisher.DisplayName,
	}, true
}

// dateOnly returns the substring of an ISO-8601 timestamp preceding the
// first "T", falling back to the full string if there is no "T".
func dateOnly(installDate string) string {
	if i := strings.IndexByte(installDate, 'T'); i >= 0 {
		return installDate[:i]
	}
	return installDate
}
