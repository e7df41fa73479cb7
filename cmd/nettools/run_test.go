package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ambicuity/nettools/config"
	"github.com/ambicuity/nettools/internal/errors"
)

func TestParsePorts(t *testing.T) {
	cases := map[string][]int{
		"22":           {22},
		"22,80,443":    {22, 80, 443},
		"8000-8003":    {8000, 8001, 8002, 8003},
		"22,8000-8002": {22, 8000, 8001, 8002},
		"80,80":        {80, 80}, // duplicates are preserved
		" 80 , 443 ":   {80, 443},
	}
	for spec, want := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := parsePorts(spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestFailExitCodes(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"bad input":      {errors.Input("ports", "must not be empty"), 2},
		"missing binary": {errors.Exec("iperf3", "not installed"), 1},
		"network":        {errors.Network("example.com", "unreachable"), 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := fail(tc.err); got != tc.want {
				t.Fatalf("fail(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if got := run([]string{"bogus"}); got != 2 {
		t.Fatalf("run(bogus) = %d, want 2", got)
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"--version"}} {
		if got := run(args); got != 0 {
			t.Fatalf("run(%v) = %d, want 0", args, got)
		}
	}
}

func TestRunScan_RecordFailureStillRendersReport(t *testing.T) {
	// grab a free port and close the listener; the probe stays local
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	dir := t.TempDir()
	outFile := filepath.Join(dir, "report.csv")
	badDB := filepath.Join(dir, "no-such-dir", "scans.db")

	cfg := config.Default()
	cfg.Output = "csv"

	code := runScan(context.Background(), "127.0.0.1", []int{port}, cfg, true, badDB, outFile)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (recording is best-effort)", code)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Fatalf("report not rendered after failed record: %v", err)
	}
}

func TestParsePorts_Invalid(t *testing.T) {
	cases := []string{
		"",
		"0",
		"65536",
		"abc",
		"80,",
		"100-1",
		"1-70000",
		"-5",
	}
	for _, spec := range cases {
		t.Run(spec, func(t *testing.T) {
			if _, err := parsePorts(spec); err == nil {
				t.Fatalf("expected error for %q", spec)
			}
		})
	}
}
