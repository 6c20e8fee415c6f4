package policy

import (
	"context"

	"github.com/snapcore/prompting-client/prompt"
)

// PolicyClient is the capability set the Worker and RPC Service need
// from the policy client, so that tests can substitute a fake one.
type PolicyClient interface {
	FeatureEnabled(ctx context.Context) (bool, error)
	PendingNotices(ctx context.Context) ([]prompt.Notice, error)
	PromptDetails(ctx context.Context, id prompt.ID) (prompt.TypedPrompt, error)
	AllPendingPrompts(ctx context.Context) ([]prompt.TypedPrompt, error)
	Reply(ctx context.Context, id prompt.ID, reply prompt.TypedPromptReply) ([]prompt.ID, error)
	SnapMetadata(ctx context.Context, name string) (prompt.SnapMeta, bool)
}

var _ PolicyClient = (*Client)(nil)
