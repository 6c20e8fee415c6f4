// -*- Mode: Go; indent-tabs-mode: t -*-
package prompt_test

import (
	"encoding/json"

	. "gopkg.in/check.v1"

	"github.com/snapcore/prompting-client/prompt"
	"github.com/snapcore/prompting-client/prompt/home"
)

type replySuite struct{}

var _ = Suite(&replySuite{})

func (s *replySuite) TestMarshalHomeReply(c *C) {
	r := prompt.TypedPromptReply{
		Action:   prompt.ActionAllow,
		Lifespan: prompt.LifespanSingle,
		Variant:  prompt.VariantHome,
		Home: home.ReplyConstraints{
			PathPattern: "/home/ubuntu/**",
			Permissions: []string{"read", "write"},
		},
	}

	b, err := json.Marshal(r)
	c.Assert(err, IsNil)

	var m map[string]any
	c.Assert(json.Unmarshal(b, &m), IsNil)
	c.Check(m["action"], Equals, "allow")
	c.Check(m["lifespan"], Equals, "single")
	c.Check(m["duration"], IsNil)

	constraints, ok := m["constraints"].(map[string]any)
	c.Assert(ok, Equals, true)
	c.Check(constraints["path-pattern"], Equals, "/home/ubuntu/**")
	c.Check(constraints["permissions"], DeepEquals, []any{"read", "write"})
	c.Check(constraints["available-permissions"], DeepEquals, []any{})
}
