package policy

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/prompt"
)

// AllPendingPrompts fetches every prompt currently pending, used only at
// Worker startup to seed the queue. A prompt that fails to decode (an
// interface this core doesn't support, or a malformed constraints body)
// is logged and dropped rather than sinking the whole batch.
func (c *Client) AllPendingPrompts(ctx context.Context) ([]prompt.TypedPrompt, error) {
	var raw []prompt.RawPrompt
	if err := c.getJSON(ctx, "interfaces/requests/prompts", &raw); err != nil {
		return nil, err
	}
	return c.decodeAll(raw), nil
}

// PromptDetails fetches a single prompt by ID.
func (c *Client) PromptDetails(ctx context.Context, id prompt.ID) (prompt.TypedPrompt, error) {
	var raw prompt.RawPrompt
	path := fmt.Sprintf("interfaces/requests/prompts/%s", id)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return prompt.TypedPrompt{}, err
	}
	return raw.Decode()
}

// Reply submits a decision for a prompt and returns the IDs of any other
// prompts that the policy service also resolved as a side effect. A null
// or missing result is treated as an empty list. A 404 status comes back
// as a *perrors.PolicyServiceError so callers can tell NotFound() apart
// from every other failure.
func (c *Client) Reply(ctx context.Context, id prompt.ID, reply prompt.TypedPromptReply) ([]prompt.ID, error) {
	var others []prompt.ID
	path := fmt.Sprintf("interfaces/requests/prompts/%s", id)
	if err := c.postJSON(ctx, path, reply, &others); err != nil {
		return nil, err
	}
	return others, nil
}

func (c *Client) decodeAll(raw []prompt.RawPrompt) []prompt.TypedPrompt {
	out := make([]prompt.TypedPrompt, 0, len(raw))
	for _, r := range raw {
		tp, err := r.Decode()
		if err != nil {
			c.log.Warn("dropping undecodable pending prompt", zap.String("id", string(r.ID)), zap.Error(err))
			continue
		}
		out = append(out, tp)
	}
	return out
}

// IsNotFound reports whether err represents a 404 from the policy
// service, used by the Worker to distinguish a notice that raced with a
// resolution from a real failure, and by the RPC service to map a reply
// failure onto PromptNotFound.
func IsNotFound(err error) bool {
	var pse *perrors.PolicyServiceError
	return errors.As(err, &pse) && pse.Status == http.StatusNotFound
}
