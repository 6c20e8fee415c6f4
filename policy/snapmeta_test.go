// -*- Mode: Go; indent-tabs-mode: t -*-
package policy_test

import (
	"context"

	. "gopkg.in/check.v1"
)

func (s *policySuite) TestSnapMetadataSuccess(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"install-date":"2024-08-01T12:00:00Z","publisher":{"display-name":"Mozilla"}}}`)

	meta, ok := s.cli.SnapMetadata(context.Background(), "firefox")
	c.Assert(ok, Equals, true)
	c.Check(meta.Name, Equals, "firefox")
	c.Check(meta.UpdatedAt, Equals, "2024-08-01")
	c.Check(meta.StoreURL, Equals, "snap://firefox")
	c.Check(meta.Publisher, Equals, "Mozilla")
}

func (s *policySuite) TestSnapMetadataNoTInInstallDate(c *C) {
	s.queue(200, `{"type":"sync","status-code":200,"status":"OK","result":
		{"install-date":"unknown","publisher":{"display-name":"Mozilla"}}}`)

	meta, ok := s.cli.SnapMetadata(context.Background(), "firefox")
	c.Assert(ok, Equals, true)
	c.Check(meta.UpdatedAt, Equals, "unknown")
}

func (s *policySuite) TestSnapMetadataFailureIsBestEffort(c *C) {
	s.queue(404, `{"type":"error","status-code":404,"status":"Not Found","result":{"message":"no such snap"}}`)

	_, ok := s.cli.SnapMetadata(context.Background(), "nonexistent")
	c.Check(ok, Equals, false)
}
