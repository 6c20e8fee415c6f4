// Package prompt holds the typed prompt/reply/notice model shared by the
// policy client, worker and RPC service: the internal representation the
// wire protocols on both sides of the daemon are translated into and out
// of.
package prompt

// ID is the opaque identifier the policy service assigns to a prompt.
// Equality is by byte string, which a defined string type gives for
// free.
type ID string
