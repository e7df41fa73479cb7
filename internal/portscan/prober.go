package portscan

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// ─── prober ───────────────────────────────────────────────────────────────────

// Prober checks whether a single TCP port accepts connections. All failure
// modes are captured in the Result; a probe never returns an error, so a
// scan of many ports cannot abort on the first unreachable one.
type Prober interface {
	Probe(ctx context.Context, host string, port int, timeout time.Duration) Result
}

// DialProber probes with a plain TCP connect. No data is exchanged; a
// successful connection is closed immediately.
type DialProber struct{}

func (DialProber) Probe(ctx context.Context, host string, port int, timeout time.Duration) Result {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	start := time.Now()

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start).Seconds()

	if err == nil {
		conn.Close()
		return Result{Port: port, Open: true, ResponseTime: elapsed}
	}

	return Result{Port: port, ResponseTime: elapsed, Err: classify(err)}
}

// ─── classification ───────────────────────────────────────────────────────────

// classify maps a dial error onto the probe error taxonomy.
func classify(err error) *ProbeError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ProbeError{Kind: KindDNS, Detail: dnsErr.Err + ": " + dnsErr.Name}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED {
		return &ProbeError{Kind: KindRefused, Code: int(errno)}
	}

	// The dial timeout error also satisfies errors.Is(err,
	// context.DeadlineExceeded), so the timeout check must come first.
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return &ProbeError{Kind: KindTimeout}
	}

	if errors.Is(err, context.Canceled) {
		return &ProbeError{Kind: KindCancelled, Detail: err.Error()}
	}

	return &ProbeError{Kind: KindOther, Detail: err.Error()}
}
