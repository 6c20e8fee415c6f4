// Package worker owns the pending-prompt queue and the single
// active-prompt cell, drives ingestion from the policy service's notice
// stream, and applies the dequeue side effects of a reply once the RPC
// Service has forwarded it.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gopkg.in/retry.v1"
	"gopkg.in/tomb.v2"

	"github.com/snapcore/prompting-client/perrors"
	"github.com/snapcore/prompting-client/policy"
	"github.com/snapcore/prompting-client/prompt"
)

// notifyStrategy backs off the notice long-poll loop on transport
// errors (the socket dropped, the daemon isn't up yet) instead of
// spinning; a successful poll resets it for next time.
var notifyStrategy = retry.LimitCount(10, retry.Exponential{
	Initial:  100 * time.Millisecond,
	Factor:   2,
	MaxDelay: 30 * time.Second,
})

// noticeBatch is what the background poller hands to the event loop.
type noticeBatch struct {
	notices []prompt.Notice
	err     error
}

// Worker runs its event loop inside a gopkg.in/tomb.v2 Tomb, the same
// supervised-goroutine lifecycle the rest of this daemon's long-running
// components use.
type Worker struct {
	tomb tomb.Tomb

	client  policy.PolicyClient
	homeDir string
	log     *zap.Logger

	q    *queue
	cell activeCell

	actioned chan ActionedPrompt
	batches  chan noticeBatch
}

// New constructs a Worker. client is the southbound policy client
// handle; homeDir is this user session's home directory, used to
// project every incoming home-interface prompt.
func New(client policy.PolicyClient, homeDir string, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		client:   client,
		homeDir:  homeDir,
		log:      log,
		q:        newQueue(),
		actioned: make(chan ActionedPrompt),
		batches:  make(chan noticeBatch),
	}
}

// Start seeds the queue from the policy service's current pending
// prompts and launches the event loop and notice poller under the
// Tomb.
func (w *Worker) Start(ctx context.Context) error {
	prompts, err := w.client.AllPendingPrompts(ctx)
	if err != nil {
		return &perrors.TransportError{Op: "seed pending prompts", Err: err}
	}
	for _, p := range prompts {
		w.q.append(p)
	}
	w.republish(ctx)

	// Cancel ctx once the tomb is dying, so a long-poll in flight is
	// abandoned and Stop does not wait for it to return on its own.
	ctx, cancel := context.WithCancel(ctx)
	w.tomb.Go(func() error {
		<-w.tomb.Dying()
		cancel()
		return nil
	})
	w.tomb.Go(func() error { return w.pollNotices(ctx) })
	w.tomb.Go(func() error { return w.loop(ctx) })
	return nil
}

// Stop requests the event loop to terminate and waits for it.
func (w *Worker) Stop() error {
	w.tomb.Kill(nil)
	return w.tomb.Wait()
}

// Dying returns a channel closed once the Worker has begun shutting
// down, the same idiom tomb.Tomb exposes to its owner.
func (w *Worker) Dying() <-chan struct{} { return w.tomb.Dying() }

// Current reads the active-prompt cell. Never blocks on the event
// loop.
func (w *Worker) Current() *prompt.UiInput { return w.cell.Get() }

// Actioned returns the send endpoint the RPC Service posts to after
// forwarding a reply. A send failure (the loop has already exited)
// must be treated as a daemon-wide fatal condition by the caller,
// which should select on Dying() alongside the send.
func (w *Worker) Actioned() chan<- ActionedPrompt { return w.actioned }

func (w *Worker) loop(ctx context.Context) error {
	for {
		select {
		case <-w.tomb.Dying():
			return tomb.ErrDying
		case ev := <-w.actioned:
			w.applyActioned(ev)
			w.republish(ctx)
		case batch := <-w.batches:
			if batch.err != nil {
				w.log.Warn("pending_notices failed", zap.Error(batch.err))
				continue
			}
			for _, n := range batch.notices {
				w.apply(ctx, n)
			}
			if len(batch.notices) > 0 {
				w.republish(ctx)
			}
		}
	}
}

// pollNotices long-polls the policy client in a loop, retrying with
// backoff on transport errors, and hands each batch to loop via
// w.batches. It exits when the tomb is dying.
func (w *Worker) pollNotices(ctx context.Context) error {
	for {
		select {
		case <-w.tomb.Dying():
			return tomb.ErrDying
		default:
		}

		var notices []prompt.Notice
		var err error
		for a := retry.Start(notifyStrategy, w.tomb.Dying()); a.Next(); {
			notices, err = w.client.PendingNotices(ctx)
			if err == nil {
				break
			}
			select {
			case <-ctx.Done():
				return nil
			case <-w.tomb.Dying():
				return tomb.ErrDying
			default:
			}
		}

		select {
		case w.batches <- noticeBatch{notices: notices, err: err}:
		case <-w.tomb.Dying():
			return tomb.ErrDying
		}
	}
}

func (w *Worker) apply(ctx context.Context, n prompt.Notice) {
	switch n.Kind {
	case prompt.NoticeResolved:
		w.q.remove(n.ID)
	case prompt.NoticeUpdate:
		if w.q.contains(n.ID) {
			return
		}
		tp, err := w.client.PromptDetails(ctx, n.ID)
		if err != nil {
			if policy.IsNotFound(err) {
				w.log.Debug("prompt vanished before details fetch", zap.String("id", string(n.ID)))
				return
			}
			w.log.Warn("prompt_details failed, dropping notice", zap.String("id", string(n.ID)), zap.Error(err))
			return
		}
		w.q.append(tp)
	}
}

func (w *Worker) applyActioned(ev ActionedPrompt) {
	w.q.remove(ev.ID)
	for _, id := range ev.Others {
		w.q.remove(id)
	}
}

func (w *Worker) republish(ctx context.Context) {
	head, ok := w.q.head()
	if !ok {
		w.cell.Set(nil)
		return
	}
	meta, _ := w.client.SnapMetadata(ctx, head.Snap)
	ui, err := prompt.Project(head, meta, w.homeDir)
	if err != nil {
		w.log.Warn("failed to project head prompt", zap.String("id", string(head.ID)), zap.Error(err))
		w.cell.Set(nil)
		return
	}
	w.cell.Set(&ui)
}
