// -*- Mode: Go; indent-tabs-mode: t -*-
package policy_test

import (
	"context"

	. "gopkg.in/check.v1"

	"github.com/snapcore/prompting-client/prompt"
)

func (s *policySuite) TestPendingNoticesMapsUpdateAndResolved(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[
		{"key":"1","last-occurred":"2024-08-15T13:28:17.000000001Z"},
		{"key":"2","last-occurred":"2024-08-15T13:28:18.000000002Z","last-data":{"resolved":"replied"}}
	]}`)

	notices, err := s.cli.PendingNotices(context.Background())
	c.Assert(err, IsNil)
	c.Assert(notices, HasLen, 2)
	c.Check(notices[0], Equals, prompt.Notice{Kind: prompt.NoticeUpdate, ID: "1"})
	c.Check(notices[1], Equals, prompt.Notice{Kind: prompt.NoticeResolved, ID: "2"})

	c.Check(s.cli.NoticesAfter(), Equals, "2024-08-15T13:28:18.000000002Z")
	c.Check(s.fake.lastRequest().URL.Path, Equals, "/v2/notices")
	c.Check(s.fake.lastRequest().URL.RawQuery, Matches, `.*types=interfaces-requests-prompt.*`)
	c.Check(s.fake.lastRequest().URL.RawQuery, Matches, `.*timeout=1h.*`)
}

func (s *policySuite) TestPendingNoticesEmptyBatchLeavesCursorUnchanged(c *C) {
	before := s.cli.NoticesAfter()
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[]}`)

	notices, err := s.cli.PendingNotices(context.Background())
	c.Assert(err, IsNil)
	c.Check(notices, HasLen, 0)
	c.Check(s.cli.NoticesAfter(), Equals, before)
}

func (s *policySuite) TestPendingNoticesCursorMonotonicityAcrossCalls(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[
		{"key":"1","last-occurred":"2024-08-15T13:28:17.000000001Z"}
	]}`)
	_, err := s.cli.PendingNotices(context.Background())
	c.Assert(err, IsNil)
	first := s.cli.NoticesAfter()

	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[]}`)
	_, err = s.cli.PendingNotices(context.Background())
	c.Assert(err, IsNil)
	c.Check(s.cli.NoticesAfter(), Equals, first)
}
