package portscan

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestDialProber_Open(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	r := DialProber{}.Probe(context.Background(), "127.0.0.1", port, time.Second)
	if !r.Open {
		t.Fatalf("expected open, got %+v", r.Err)
	}
	if r.Err != nil {
		t.Errorf("open result carries error: %v", r.Err)
	}
	if r.Port != port {
		t.Errorf("port = %d, want %d", r.Port, port)
	}
	if r.ResponseTime <= 0 {
		t.Errorf("response time not populated: %v", r.ResponseTime)
	}
}

func TestDialProber_Refused(t *testing.T) {
	// grab a free port, then close the listener so the connect is refused
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	r := DialProber{}.Probe(context.Background(), "127.0.0.1", port, time.Second)
	if r.Open {
		t.Fatal("expected closed port")
	}
	if r.Err == nil {
		t.Fatal("closed result must carry an error")
	}
	if r.Err.Kind != KindRefused {
		t.Fatalf("kind = %s, want refused (detail: %s)", r.Err.Kind, r.Err.Detail)
	}
	if r.Err.Code == 0 {
		t.Error("refused error should carry the OS error code")
	}
	if r.ResponseTime <= 0 {
		t.Errorf("response time not populated: %v", r.ResponseTime)
	}
}

func TestDialProber_DNSFailure(t *testing.T) {
	// .invalid is reserved and never resolves (RFC 2606)
	r := DialProber{}.Probe(context.Background(), "no-such-host.invalid", 80, 2*time.Second)
	if r.Open {
		t.Fatal("expected failure")
	}
	if r.Err == nil || r.Err.Kind != KindDNS {
		t.Fatalf("kind = %+v, want dns", r.Err)
	}
	if r.Err.Detail == "" {
		t.Error("dns error should carry detail")
	}
}

// timeoutErr implements net.Error for classification tests.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err  error
		want ErrorKind
	}{
		"dns": {
			&net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "x.invalid"}},
			KindDNS,
		},
		"refused syscall": {
			&net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			KindRefused,
		},
		"refused errno": {
			&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			KindRefused,
		},
		"timeout": {
			&net.OpError{Op: "dial", Err: timeoutErr{}},
			KindTimeout,
		},
		"cancelled": {
			&net.OpError{Op: "dial", Err: context.Canceled},
			KindCancelled,
		},
		"other": {
			errors.New("network is unreachable"),
			KindOther,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := classify(tc.err)
			if got.Kind != tc.want {
				t.Fatalf("classify(%v) = %s, want %s", tc.err, got.Kind, tc.want)
			}
		})
	}
}

func TestClassify_RefusedCarriesCode(t *testing.T) {
	pe := classify(&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED})
	if pe.Code != int(syscall.ECONNREFUSED) {
		t.Errorf("code = %d, want %d", pe.Code, int(syscall.ECONNREFUSED))
	}
}
