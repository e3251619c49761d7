package scanner

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"nexrecon/port"
)

// probe attempts a single TCP connect and classifies the outcome:
// success -> open, active refusal -> closed, timeout or any other transport
// error -> filtered. A filtered port and a dropped packet are
// indistinguishable at this layer, so filtered is the conservative default.
func (e *Engine) probe(ctx context.Context, addr string, p int) port.Result {
	target := net.JoinHostPort(addr, strconv.Itoa(p))

	dctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := e.Dial(dctx, "tcp", target)
	res := port.Result{
		Port:    p,
		State:   port.StateFiltered,
		Latency: time.Since(start),
	}

	if err == nil {
		_ = conn.Close()
		res.State = port.StateOpen
		return res
	}
	if isRefused(err) {
		res.State = port.StateClosed
		return res
	}
	logrus.Debugf("probe %s: %v", target, err)
	return res
}

// isRefused reports whether err carries connection-refused semantics.
// errors.Is walks the net.OpError/os.SyscallError chain; the string check
// covers platforms that surface the condition differently.
func isRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}
