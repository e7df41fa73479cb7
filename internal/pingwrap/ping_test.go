package pingwrap

import (
	"context"
	"os/exec"
	"reflect"
	"testing"
	"time"

	neterrors "github.com/ambicuity/nettools/internal/errors"
)

func fakeRunner(stdout, stderr string, err error) (runner, *[][]string) {
	var calls [][]string
	return func(_ context.Context, _ time.Duration, name string, args ...string) (string, string, error) {
		calls = append(calls, append([]string{name}, args...))
		return stdout, stderr, err
	}, &calls
}

func TestPing_UnixArgs(t *testing.T) {
	run, calls := fakeRunner(unixOutput, "", nil)
	p := &Pinger{windows: false, run: run}

	result, err := p.Ping(context.Background(), "google.com", Options{Count: 4, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ping", "-c", "4", "-W", "5", "google.com"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Errorf("command = %v, want %v", (*calls)[0], want)
	}
	if result.PacketsReceived != 4 || result.PacketLoss != 0 {
		t.Errorf("parse failed: %+v", result)
	}
}

func TestPing_WindowsArgs(t *testing.T) {
	run, calls := fakeRunner(windowsOutput, "", nil)
	p := &Pinger{windows: true, run: run}

	_, err := p.Ping(context.Background(), "google.com", Options{Count: 2, Timeout: 3 * time.Second, PacketSize: 64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ping", "-n", "2", "-w", "3000", "-l", "64", "google.com"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Errorf("command = %v, want %v", (*calls)[0], want)
	}
}

func TestPing_SubSecondTimeoutRoundsUp(t *testing.T) {
	// ping -W 0 waits forever on Linux; a 500ms budget must not become that
	run, calls := fakeRunner(unixOutput, "", nil)
	p := &Pinger{windows: false, run: run}

	if _, err := p.Ping(context.Background(), "google.com", Options{Count: 1, Timeout: 500 * time.Millisecond}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ping", "-c", "1", "-W", "1", "google.com"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Errorf("command = %v, want %v", (*calls)[0], want)
	}
}

func TestPing_BinaryMissing(t *testing.T) {
	run, _ := fakeRunner("", "", exec.ErrNotFound)
	p := &Pinger{run: run}

	_, err := p.Ping(context.Background(), "google.com", DefaultOptions())
	if err == nil {
		t.Fatal("expected hard error for missing binary")
	}
	if _, ok := err.(*neterrors.ExecError); !ok {
		t.Fatalf("error type = %T, want *errors.ExecError", err)
	}
}

func TestPing_DeadlineBecomesResultError(t *testing.T) {
	run, _ := fakeRunner("", "", context.DeadlineExceeded)
	p := &Pinger{run: run}

	result, err := p.Ping(context.Background(), "10.255.255.1", DefaultOptions())
	if err != nil {
		t.Fatalf("deadline must not be a hard error: %v", err)
	}
	if result.Error != "timeout expired" {
		t.Errorf("result.Error = %q", result.Error)
	}
	if result.PacketLoss != 100 {
		t.Errorf("loss = %v, want 100", result.PacketLoss)
	}
}

func TestPing_NonZeroExitStillParsed(t *testing.T) {
	// ping exits 1 when packets are lost but stdout is complete
	run, _ := fakeRunner(unixLossyOutput, "", &exec.ExitError{})
	p := &Pinger{run: run}

	result, err := p.Ping(context.Background(), "10.0.0.99", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PacketLoss != 75 {
		t.Errorf("loss = %v, want 75", result.PacketLoss)
	}
	if result.Error != "" {
		t.Errorf("result.Error = %q, want empty", result.Error)
	}
}

func TestPing_EmptyHost(t *testing.T) {
	run, calls := fakeRunner("", "", nil)
	p := &Pinger{run: run}

	if _, err := p.Ping(context.Background(), "", DefaultOptions()); err == nil {
		t.Fatal("expected input error")
	}
	if len(*calls) != 0 {
		t.Error("empty host must not invoke ping")
	}
}

func TestTraceroute(t *testing.T) {
	run, calls := fakeRunner("traceroute to example.com, 30 hops max\n 1 router 1ms\n", "", nil)
	p := &Pinger{windows: false, run: run}

	result, err := p.Traceroute(context.Background(), "example.com", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	want := []string{"traceroute", "-m", "30", "example.com"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Errorf("command = %v, want %v", (*calls)[0], want)
	}
}

func TestTraceroute_WindowsUsesTracert(t *testing.T) {
	run, calls := fakeRunner("Tracing route to example.com\n", "", nil)
	p := &Pinger{windows: true, run: run}

	if _, err := p.Traceroute(context.Background(), "example.com", 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"tracert", "-h", "15", "example.com"}
	if !reflect.DeepEqual((*calls)[0], want) {
		t.Errorf("command = %v, want %v", (*calls)[0], want)
	}
}
