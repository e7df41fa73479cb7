package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ambicuity/nettools/internal/portscan"
)

func TestWriteCSV(t *testing.T) {
	report := &portscan.Report{
		Host: "example.com",
		Ports: []portscan.Result{
			{Port: 80, Open: true, ResponseTime: 0.012},
			{Port: 81, ResponseTime: 0.001, Err: &portscan.ProbeError{Kind: portscan.KindRefused, Code: 111}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, report); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "host,port,open,response_time,error" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "example.com,80,true,") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "connection refused") {
		t.Errorf("closed row should carry error text: %q", lines[2])
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[uint64]string{
		512:        "512 B",
		2048:       "2.00 KB",
		3 << 20:    "3.00 MB",
		5 << 30:    "5.00 GB",
		1<<40 + 12: "1.00 TB",
	}
	for n, want := range cases {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
