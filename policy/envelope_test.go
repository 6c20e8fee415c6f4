// -*- Mode: Go; indent-tabs-mode: t -*-
package policy_test

import (
	"context"

	. "gopkg.in/check.v1"
)

// TestEnvelopeErrorDiscrimination exercises envelope decoding: a
// response yields an error iff its result object contains a "message"
// key, even for an endpoint whose success payload happens to be a bare
// scalar or array.
func (s *policySuite) TestEnvelopeErrorDiscrimination(c *C) {
	// A legitimate list result: no "message" key anywhere, so this must
	// decode successfully even though result is an array, not an object.
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":["a","b"]}`)
	others, err := s.cli.Reply(context.Background(), "1", emptyHomeReply())
	c.Assert(err, IsNil)
	c.Check(others, HasLen, 2)

	// An error result: presence of "message" always wins.
	s.queue(400, `{"type":"error","status-code":400,"status":"Bad Request","result":{"message":"bad"}}`)
	_, err = s.cli.Reply(context.Background(), "1", emptyHomeReply())
	c.Assert(err, NotNil)

	// Presence of the "message" key wins even when its value is empty.
	s.queue(400, `{"type":"error","status-code":400,"status":"Bad Request","result":{"message":""}}`)
	_, err = s.cli.Reply(context.Background(), "1", emptyHomeReply())
	c.Assert(err, NotNil)
}
