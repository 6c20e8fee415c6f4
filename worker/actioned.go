package worker

import "github.com/snapcore/prompting-client/prompt"

// ActionedPrompt is posted by the RPC Service to the Worker after a
// reply has been forwarded to the policy service, telling the Worker
// which IDs to dequeue.
type ActionedPrompt struct {
	// ID is always set.
	ID prompt.ID
	// Others holds the additional IDs the policy service resolved as a
	// side effect of replying to ID. Empty for NotFound.
	Others []prompt.ID
	// NotFound is true when the policy service reported that ID no
	// longer exists (a 404 on reply).
	NotFound bool
}

// Actioned builds the success case: id and every id in others are
// dequeued.
func Actioned(id prompt.ID, others []prompt.ID) ActionedPrompt {
	return ActionedPrompt{ID: id, Others: others}
}

// NotFoundPrompt builds the not-found case: only id is dequeued.
func NotFoundPrompt(id prompt.ID) ActionedPrompt {
	return ActionedPrompt{ID: id, NotFound: true}
}
