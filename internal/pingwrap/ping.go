// Package pingwrap shells out to the OS ping and traceroute tools and
// parses their text output into structured results.
package pingwrap

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"time"

	neterrors "github.com/ambicuity/nettools/internal/errors"
	"github.com/ambicuity/nettools/internal/platform"
)

// ─── runner ───────────────────────────────────────────────────────────────────

// runner executes an external command with a hard deadline and returns its
// stdout and stderr. Tests substitute a fake to avoid spawning processes.
type runner func(ctx context.Context, budget time.Duration, name string, args ...string) (stdout, stderr string, err error)

func execRun(ctx context.Context, budget time.Duration, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		err = context.DeadlineExceeded
	}
	return outBuf.String(), errBuf.String(), err
}

// ─── pinger ───────────────────────────────────────────────────────────────────

type Pinger struct {
	windows bool
	run     runner
}

func New() *Pinger {
	return &Pinger{windows: platform.IsWindows(), run: execRun}
}

// Options control a single ping invocation.
type Options struct {
	Count      int
	Timeout    time.Duration // per-packet timeout
	PacketSize int           // bytes; 0 means tool default
}

func DefaultOptions() Options {
	return Options{Count: 4, Timeout: 5 * time.Second}
}

// Result holds parsed ping statistics. Operational failures (timeouts,
// unreachable hosts) land in Error rather than aborting the call; times
// are in milliseconds.
type Result struct {
	Host            string    `json:"host"`
	PacketsSent     int       `json:"packets_sent"`
	PacketsReceived int       `json:"packets_received"`
	PacketLoss      float64   `json:"packet_loss"`
	Times           []float64 `json:"times"`
	MinTime         *float64  `json:"min_time"`
	MaxTime         *float64  `json:"max_time"`
	AvgTime         *float64  `json:"avg_time"`
	RawOutput       string    `json:"raw_output,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// Ping sends opts.Count ICMP echo requests to host via the OS ping tool.
// A missing binary is a hard error; everything else is reported in the
// Result.
func (p *Pinger) Ping(ctx context.Context, host string, opts Options) (*Result, error) {
	if host == "" {
		return nil, neterrors.Input("host", "must not be empty")
	}
	if opts.Count <= 0 {
		opts.Count = DefaultOptions().Count
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}

	args := p.buildArgs(host, opts)
	// budget covers all packets plus slack for name resolution
	budget := opts.Timeout*time.Duration(opts.Count) + 10*time.Second

	result := &Result{
		Host:        host,
		PacketsSent: opts.Count,
		PacketLoss:  100.0,
		Times:       []float64{},
	}

	stdout, stderr, err := p.run(ctx, budget, "ping", args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, neterrors.Exec("ping", err.Error())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			result.Error = "timeout expired"
			return result, nil
		}
		// ping exits non-zero on packet loss; the stdout is still
		// parseable, so fall through unless there is no output at all
		if stdout == "" {
			result.Error = firstNonEmpty(stderr, err.Error())
			return result, nil
		}
	}

	result.RawOutput = stdout
	if p.windows {
		parseWindows(stdout, result)
	} else {
		parseUnix(stdout, result)
	}
	return result, nil
}

// buildArgs assembles the platform-specific ping arguments. Windows takes
// the per-packet timeout in milliseconds.
func (p *Pinger) buildArgs(host string, opts Options) []string {
	var args []string
	if p.windows {
		args = []string{"-n", strconv.Itoa(opts.Count), "-w", strconv.Itoa(int(opts.Timeout.Milliseconds()))}
		if opts.PacketSize > 0 {
			args = append(args, "-l", strconv.Itoa(opts.PacketSize))
		}
	} else {
		// -W takes whole seconds; 0 means wait forever on Linux, so a
		// sub-second timeout must round up, not truncate away
		secs := int(opts.Timeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		args = []string{"-c", strconv.Itoa(opts.Count), "-W", strconv.Itoa(secs)}
		if opts.PacketSize > 0 {
			args = append(args, "-s", strconv.Itoa(opts.PacketSize))
		}
	}
	return append(args, host)
}

// ─── traceroute ───────────────────────────────────────────────────────────────

// TracerouteResult holds the raw output of a traceroute run; hop output is
// too locale- and version-dependent to parse reliably.
type TracerouteResult struct {
	Host      string `json:"host"`
	MaxHops   int    `json:"max_hops"`
	Success   bool   `json:"success"`
	RawOutput string `json:"raw_output,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Traceroute runs the OS traceroute tool (tracert on Windows).
func (p *Pinger) Traceroute(ctx context.Context, host string, maxHops int) (*TracerouteResult, error) {
	if host == "" {
		return nil, neterrors.Input("host", "must not be empty")
	}
	if maxHops <= 0 {
		maxHops = 30
	}

	name := "traceroute"
	args := []string{"-m", strconv.Itoa(maxHops), host}
	if p.windows {
		name = "tracert"
		args = []string{"-h", strconv.Itoa(maxHops), host}
	}

	result := &TracerouteResult{Host: host, MaxHops: maxHops}

	budget := time.Duration(maxHops)*5*time.Second + 30*time.Second
	stdout, stderr, err := p.run(ctx, budget, name, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, neterrors.Exec(name, err.Error())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			result.Error = "timeout expired"
			return result, nil
		}
		result.RawOutput = stdout
		result.Error = firstNonEmpty(stderr, err.Error())
		return result, nil
	}

	result.Success = true
	result.RawOutput = stdout
	if stderr != "" {
		result.Error = stderr
	}
	return result, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
