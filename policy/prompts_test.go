// -*- Mode: Go; indent-tabs-mode: t -*-
package policy_test

import (
	"context"

	. "gopkg.in/check.v1"

	"github.com/snapcore/prompting-client/policy"
	"github.com/snapcore/prompting-client/prompt"
)

const rawHomePromptJSON = `{"type":"sync","status-code":200,"status":"OK","result":
	{
		"id": "00000000000000BE",
		"timestamp": "2024-08-15T13:28:17.077016791Z",
		"snap": "aa-prompting-test",
		"interface": "home",
		"constraints": {
			"path": "/home/ubuntu/test/test-2.txt",
			"requested-permissions": ["write"],
			"available-permissions": ["read", "write", "execute"]
		}
	}}`

func (s *policySuite) TestPromptDetails(c *C) {
	s.queue(200, rawHomePromptJSON)

	tp, err := s.cli.PromptDetails(context.Background(), "00000000000000BE")
	c.Assert(err, IsNil)
	c.Check(tp.ID, Equals, prompt.ID("00000000000000BE"))
	c.Check(tp.Snap, Equals, "aa-prompting-test")
	c.Check(tp.Home.Path, Equals, "/home/ubuntu/test/test-2.txt")
	c.Check(s.fake.lastRequest().URL.Path, Equals, "/v2/interfaces/requests/prompts/00000000000000BE")
}

func (s *policySuite) TestPromptDetailsUnsupportedInterface(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"id":"1","timestamp":"t","snap":"s","interface":"network","constraints":{}}}`)

	_, err := s.cli.PromptDetails(context.Background(), "1")
	c.Assert(err, NotNil)
}

func (s *policySuite) TestAllPendingPromptsSkipsUndecodableEntries(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[
		{"id":"1","timestamp":"t","snap":"s","interface":"home","constraints":{"path":"/home/u/a","requested-permissions":["read"]}},
		{"id":"2","timestamp":"t","snap":"s","interface":"network","constraints":{}},
		{"id":"3","timestamp":"t","snap":"s","interface":"home","constraints":{"path":"/home/u/b","requested-permissions":["write"]}}
	]}`)

	prompts, err := s.cli.AllPendingPrompts(context.Background())
	c.Assert(err, IsNil)
	c.Assert(prompts, HasLen, 2)
	c.Check(prompts[0].ID, Equals, prompt.ID("1"))
	c.Check(prompts[1].ID, Equals, prompt.ID("3"))
}

func (s *policySuite) TestAllPendingPrompts(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":[
		{"id":"1","timestamp":"t","snap":"s","interface":"home","constraints":{"path":"/home/u/a","requested-permissions":["read"]}},
		{"id":"2","timestamp":"t","snap":"s","interface":"home","constraints":{"path":"/home/u/b","requested-permissions":["write"]}}
	]}`)

	prompts, err := s.cli.AllPendingPrompts(context.Background())
	c.Assert(err, IsNil)
	c.Assert(prompts, HasLen, 2)
	c.Check(prompts[0].ID, Equals, prompt.ID("1"))
	c.Check(prompts[1].ID, Equals, prompt.ID("2"))
	c.Check(s.fake.lastRequest().URL.Path, Equals, "/v2/interfaces/requests/prompts")
}

func (s *policySuite) TestReplySuccessEmptyOthers(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":null}`)

	reply := prompt.TypedPromptReply{Action: prompt.ActionAllow, Lifespan: prompt.LifespanSingle, Variant: prompt.VariantHome}
	others, err := s.cli.Reply(context.Background(), "1", reply)
	c.Assert(err, IsNil)
	c.Check(others, HasLen, 0)
	c.Check(s.fake.lastRequest().Method, Equals, "POST")
	c.Check(s.fake.lastRequest().URL.Path, Equals, "/v2/interfaces/requests/prompts/1")
}

func (s *policySuite) TestReplySuccessWithOthers(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":["2","3"]}`)

	reply := prompt.TypedPromptReply{Action: prompt.ActionAllow, Lifespan: prompt.LifespanSingle, Variant: prompt.VariantHome}
	others, err := s.cli.Reply(context.Background(), "1", reply)
	c.Assert(err, IsNil)
	c.Check(others, DeepEquals, []prompt.ID{"2", "3"})
}

func (s *policySuite) TestReplyNotFound(c *C) {
	s.queue(404, `{"type":"error","status-code":404,"status":"Not Found","result":{"message":"cannot find prompt"}}`)

	reply := prompt.TypedPromptReply{Action: prompt.ActionAllow, Lifespan: prompt.LifespanSingle, Variant: prompt.VariantHome}
	_, err := s.cli.Reply(context.Background(), "1", reply)
	c.Assert(err, NotNil)
	c.Check(policy.IsNotFound(err), Equals, true)
}

func (s *policySuite) TestReplyOtherError(c *C) {
	s.queue(500, `{"type":"error","status-code":500,"status":"Internal Server Error","result":{"message":"boom"}}`)

	reply := prompt.TypedPromptReply{Action: prompt.ActionAllow, Lifespan: prompt.LifespanSingle, Variant: prompt.VariantHome}
	_, err := s.cli.Reply(context.Background(), "1", reply)
	c.Assert(err, NotNil)
	c.Check(policy.IsNotFound(err), Equals, false)
}
