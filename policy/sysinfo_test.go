// -*- Mode: Go; indent-tabs-mode: t -*-
package policy_test

import (
	"context"

	. "gopkg.in/check.v1"

	"github.com/snapcore/prompting-client/perrors"
)

func (s *policySuite) TestFeatureEnabledSupportedAndEnabled(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"features":{"apparmor-prompting":{"enabled":true,"supported":true}}}}`)

	enabled, err := s.cli.FeatureEnabled(context.Background())
	c.Assert(err, IsNil)
	c.Check(enabled, Equals, true)
	c.Check(s.fake.lastRequest().URL.Path, Equals, "/v2/system-info")
}

func (s *policySuite) TestFeatureEnabledSupportedNotEnabled(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"features":{"apparmor-prompting":{"enabled":false,"supported":true}}}}`)

	enabled, err := s.cli.FeatureEnabled(context.Background())
	c.Assert(err, IsNil)
	c.Check(enabled, Equals, false)
}

func (s *policySuite) TestFeatureEnabledMissing(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":{"features":{}}}`)

	_, err := s.cli.FeatureEnabled(context.Background())
	c.Check(err, Equals, perrors.NotAvailable)
}

func (s *policySuite) TestFeatureEnabledUnsupported(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"features":{"apparmor-prompting":{"enabled":true,"supported":false,"unsupported-reason":"no kernel support"}}}}`)

	_, err := s.cli.FeatureEnabled(context.Background())
	var ns *perrors.NotSupported
	c.Assert(err, FitsTypeOf, ns)
	c.Check(err.(*perrors.NotSupported).Reason, Equals, "no kernel support")
}

func (s *policySuite) TestExitIfNotEnabled(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"features":{"apparmor-prompting":{"enabled":false,"supported":true}}}}`)

	err := s.cli.ExitIfNotEnabled(context.Background())
	c.Check(err, Equals, perrors.NotEnabled)
}
