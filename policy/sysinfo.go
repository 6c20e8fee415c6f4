package policy

import (
	"context"

	"github.com/snapcore/prompting-client/perrors"
)

type feature struct {
	Enabled           bool   `json:"enabled"`
	Supported         bool   `json:"supported"`
	UnsupportedReason string `json:"unsupported-reason"`
}

type sysInfoResult struct {
	Features map[string]feature `json:"features"`
}

// FeatureEnabled reports whether the apparmor-prompting feature is both
// supported and enabled on this system.
func (c *Client) FeatureEnabled(ctx context.Context) (bool, error) {
	var res sysInfoResult
	if err := c.getJSON(ctx, "system-info", &res); err != nil {
		return false, err
	}

	f, ok := res.Features[featureName]
	if !ok {
		return false, perrors.NotAvailable
	}
	if f.UnsupportedReason != "" {
		return false, &perrors.NotSupported{Reason: f.UnsupportedReason}
	}
	return f.Supported && f.Enabled, nil
}

// ExitIfNotEnabled returns perrors.NotEnabled when the feature is not
// currently enabled, so the caller can exit non-zero at startup: the
// supervisor should not restart the daemon until the feature is
// reconfigured.
func (c *Client) ExitIfNotEnabled(ctx context.Context) error {
	enabled, err := c.FeatureEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return perrors.NotEnabled
	}
	return nil
}
