package rpcapi

import (
	"net"
	"time"

	"github.com/juju/ratelimit"
)

// acceptRate and acceptBurst bound how fast the RPC accept loop hands off new
// connections. A single UI process only ever opens a handful of
// short-lived connections, so this exists to bound a misbehaving or
// compromised peer rather than to shape normal traffic.
const (
	acceptRate  = 50 // per second
	acceptBurst = 10
)

// throttledListener wraps a net.Listener so that Accept blocks on a
// token-bucket bucket before handing back a new connection, the same
// rate-limiting primitive the teacher's dependency set carries for
// exactly this purpose.
type throttledListener struct {
	net.Listener
	bucket *ratelimit.Bucket
}

func newThrottledListener(ln net.Listener) *throttledListener {
	return &throttledListener{
		Listener: ln,
		bucket:   ratelimit.NewBucketWithRate(float64(acceptRate), acceptBurst),
	}
}

func (t *throttledListener) Accept() (net.Conn, error) {
	conn, err := t.Listener.Accept()
	if err != nil {
		return nil, err
	}
	if d := t.bucket.Take(1); d > 0 {
		time.Sleep(d)
	}
	return conn, nil
}
