package portscan

import (
	"encoding/json"
	"fmt"
)

// ─── error kinds ──────────────────────────────────────────────────────────────

// ErrorKind classifies why a single port probe did not succeed.
type ErrorKind string

const (
	KindRefused   ErrorKind = "refused"
	KindTimeout   ErrorKind = "timeout"
	KindDNS       ErrorKind = "dns"
	KindCancelled ErrorKind = "cancelled"
	KindOther     ErrorKind = "other"
)

// ProbeError describes a failed probe. A nil *ProbeError means the port
// was open.
type ProbeError struct {
	Kind   ErrorKind
	Code   int // OS error code for refused connections, when known
	Detail string
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case KindRefused:
		if e.Code != 0 {
			return fmt.Sprintf("connection refused (error code: %d)", e.Code)
		}
		return "connection refused"
	case KindTimeout:
		return "connection timeout"
	case KindDNS:
		return fmt.Sprintf("DNS resolution failed: %s", e.Detail)
	case KindCancelled:
		return "scan cancelled"
	}
	return e.Detail
}

// MarshalJSON renders the error as its message string, so a Result
// serializes with "error": string|null.
func (e *ProbeError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Error())
}

// ─── result ───────────────────────────────────────────────────────────────────

// Result is the outcome of probing one TCP port.
type Result struct {
	Port         int         `json:"port"`
	Open         bool        `json:"open"`
	ResponseTime float64     `json:"response_time"` // seconds
	Err          *ProbeError `json:"error"`
}

// ─── report ───────────────────────────────────────────────────────────────────

// Summary is the derived view of a Report. Errors holds only non-timeout
// failures; timeouts are the expected outcome for filtered ports and would
// drown out real problems.
type Summary struct {
	Open   []int    `json:"open"`
	Closed []int    `json:"closed"`
	Errors []Result `json:"errors"`
}

// Report aggregates the results of one scan. Ports is always sorted by
// port number ascending, regardless of probe completion order.
type Report struct {
	Host        string   `json:"host"`
	TotalPorts  int      `json:"total_ports"`
	OpenPorts   int      `json:"open_ports"`
	ClosedPorts int      `json:"closed_ports"`
	ScanTime    float64  `json:"scan_time"` // seconds
	Ports       []Result `json:"ports"`
	Summary     Summary  `json:"summary"`
}
