// Package iperf shells out to the iperf3 binary for bandwidth tests and
// parses its JSON report.
package iperf

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	neterrors "github.com/ambicuity/nettools/internal/errors"
)

// ─── runner ───────────────────────────────────────────────────────────────────

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

// ─── wrapper ──────────────────────────────────────────────────────────────────

type Runner struct {
	run runner
}

func New() *Runner {
	return &Runner{run: execRun}
}

// CheckAvailable verifies the iperf3 binary can be executed.
func (r *Runner) CheckAvailable(ctx context.Context) error {
	_, _, err := r.run(ctx, 10*time.Second, "iperf3", "--version")
	if err != nil {
		return neterrors.Exec("iperf3", "not installed or not in PATH")
	}
	return nil
}

// ClientOptions configure a client-mode bandwidth test.
type ClientOptions struct {
	Port     int
	Duration int // seconds
	Parallel int
	Reverse  bool
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{Port: 5201, Duration: 10, Parallel: 1}
}

// RunClient runs a client-mode test against host and returns the parsed
// result.
func (r *Runner) RunClient(ctx context.Context, host string, opts ClientOptions) (*ClientResult, error) {
	if host == "" {
		return nil, neterrors.Input("host", "must not be empty")
	}
	if opts.Port <= 0 {
		opts.Port = 5201
	}
	if opts.Duration <= 0 {
		opts.Duration = 10
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}

	args := []string{
		"--client", host,
		"--port", strconv.Itoa(opts.Port),
		"--time", strconv.Itoa(opts.Duration),
		"--parallel", strconv.Itoa(opts.Parallel),
		"--json",
	}
	if opts.Reverse {
		args = append(args, "--reverse")
	}

	budget := time.Duration(opts.Duration)*time.Second + 30*time.Second
	stdout, stderr, err := r.run(ctx, budget, "iperf3", args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, neterrors.Exec("iperf3", err.Error())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, neterrors.Network(host, "iperf3 client test timed out")
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return nil, neterrors.Network(host, "iperf3 client failed: "+msg)
	}

	result, perr := parseClientJSON([]byte(stdout))
	if perr != nil {
		// fall back to scraping the text report
		return parseClientText(stdout), nil
	}
	return result, nil
}

// ServerInfo describes a started server process.
type ServerInfo struct {
	Mode        string `json:"mode"`
	Port        int    `json:"port"`
	BindAddress string `json:"bind_address,omitempty"`
	Status      string `json:"status"`
	PID         int    `json:"pid"`
}

// RunServer starts iperf3 in server mode and leaves it running; the caller
// owns the lifetime of the process.
func (r *Runner) RunServer(ctx context.Context, port int, bindAddress string) (*ServerInfo, error) {
	if port <= 0 {
		port = 5201
	}

	args := []string{"--server", "--port", strconv.Itoa(port)}
	if bindAddress != "" {
		args = append(args, "--bind", bindAddress)
	}

	cmd := exec.CommandContext(ctx, "iperf3", args...)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, neterrors.Exec("iperf3", err.Error())
		}
		return nil, neterrors.Exec("iperf3", "failed to start server: "+err.Error())
	}

	return &ServerInfo{
		Mode:        "server",
		Port:        port,
		BindAddress: bindAddress,
		Status:      "running",
		PID:         cmd.Process.Pid,
	}, nil
}
