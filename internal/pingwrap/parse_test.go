package pingwrap

import (
	"math"
	"testing"
)

const unixOutput = `PING google.com (142.250.74.206) 56(84) bytes of data.
64 bytes from 142.250.74.206: icmp_seq=1 ttl=115 time=19.6 ms
64 bytes from 142.250.74.206: icmp_seq=2 ttl=115 time=20.1 ms
64 bytes from 142.250.74.206: icmp_seq=3 ttl=115 time=18.9 ms
64 bytes from 142.250.74.206: icmp_seq=4 ttl=115 time=21.4 ms

--- google.com ping statistics ---
4 packets transmitted, 4 received, 0% packet loss, time 3004ms
rtt min/avg/max/mdev = 18.900/20.000/21.400/0.901 ms
`

const unixLossyOutput = `PING 10.0.0.99 (10.0.0.99) 56(84) bytes of data.
64 bytes from 10.0.0.99: icmp_seq=1 ttl=64 time=1.2 ms

--- 10.0.0.99 ping statistics ---
4 packets transmitted, 1 received, 75% packet loss, time 3050ms
`

const windowsOutput = `Pinging google.com [142.250.74.206] with 32 bytes of data:
Reply from 142.250.74.206: bytes=32 time=20ms TTL=115
Reply from 142.250.74.206: bytes=32 time=19ms TTL=115
Reply from 142.250.74.206: bytes=32 time=22ms TTL=115
Reply from 142.250.74.206: bytes=32 time=21ms TTL=115

Ping statistics for 142.250.74.206:
    Packets: Sent = 4, Received = 4, Lost = 0 (0% loss),
Approximate round trip times in milli-seconds:
    Minimum = 19ms, Maximum = 22ms, Average = 20ms
`

func newResult(sent int) *Result {
	return &Result{PacketsSent: sent, PacketLoss: 100.0, Times: []float64{}}
}

func TestParseUnix(t *testing.T) {
	r := newResult(4)
	parseUnix(unixOutput, r)

	if r.PacketsReceived != 4 {
		t.Errorf("received = %d, want 4", r.PacketsReceived)
	}
	if r.PacketLoss != 0 {
		t.Errorf("loss = %v, want 0", r.PacketLoss)
	}
	if len(r.Times) != 4 {
		t.Fatalf("times = %v, want 4 entries", r.Times)
	}
	if *r.MinTime != 18.9 || *r.MaxTime != 21.4 {
		t.Errorf("min/max = %v/%v, want 18.9/21.4", *r.MinTime, *r.MaxTime)
	}
	if math.Abs(*r.AvgTime-20.0) > 0.001 {
		t.Errorf("avg = %v, want 20.0", *r.AvgTime)
	}
}

func TestParseUnix_PacketLoss(t *testing.T) {
	r := newResult(4)
	parseUnix(unixLossyOutput, r)

	if r.PacketsReceived != 1 {
		t.Errorf("received = %d, want 1", r.PacketsReceived)
	}
	if r.PacketLoss != 75 {
		t.Errorf("loss = %v, want 75", r.PacketLoss)
	}
}

func TestParseUnix_NoReplies(t *testing.T) {
	r := newResult(4)
	parseUnix("--- 10.0.0.1 ping statistics ---\n4 packets transmitted, 0 received, 100% packet loss\n", r)

	if r.PacketsReceived != 0 {
		t.Errorf("received = %d, want 0", r.PacketsReceived)
	}
	if r.PacketLoss != 100 {
		t.Errorf("loss = %v, want 100", r.PacketLoss)
	}
	if r.MinTime != nil || r.AvgTime != nil || r.MaxTime != nil {
		t.Error("rtt stats must stay nil with no replies")
	}
}

func TestParseWindows(t *testing.T) {
	r := newResult(4)
	parseWindows(windowsOutput, r)

	if r.PacketsReceived != 4 {
		t.Errorf("received = %d, want 4", r.PacketsReceived)
	}
	if r.PacketLoss != 0 {
		t.Errorf("loss = %v, want 0", r.PacketLoss)
	}
	if *r.MinTime != 19 || *r.MaxTime != 22 {
		t.Errorf("min/max = %v/%v, want 19/22", *r.MinTime, *r.MaxTime)
	}
}

func TestParseWindows_LossLineMissing(t *testing.T) {
	r := newResult(4)
	parseWindows("Reply from 1.2.3.4: bytes=32 time=20ms TTL=56\n", r)

	if r.PacketsReceived != 1 {
		t.Errorf("received = %d, want 1", r.PacketsReceived)
	}
	if r.PacketLoss != 75 {
		t.Errorf("loss = %v, want 75 (derived from counts)", r.PacketLoss)
	}
}
