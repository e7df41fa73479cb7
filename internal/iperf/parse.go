package iperf

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ─── result ───────────────────────────────────────────────────────────────────

// ClientResult is the normalized outcome of a client-mode test. Bandwidth
// is in Mbits/sec.
type ClientResult struct {
	Mode             string  `json:"mode"`
	Host             string  `json:"host,omitempty"`
	Port             int     `json:"port,omitempty"`
	Duration         float64 `json:"duration"`
	BytesTransferred int64   `json:"bytes_transferred"`
	BitsPerSecond    float64 `json:"bits_per_second"`
	Bandwidth        float64 `json:"bandwidth"`
	Retransmits      int64   `json:"retransmits"`
	CPULocal         float64 `json:"cpu_local"`
	CPURemote        float64 `json:"cpu_remote"`
	Error            string  `json:"error,omitempty"`
}

// ─── json schema ──────────────────────────────────────────────────────────────

// report mirrors the subset of the iperf3 --json output we consume.
type report struct {
	Start struct {
		ConnectingTo struct {
			Host string `json:"host"`
			Port int    `json:"port"`
		} `json:"connecting_to"`
	} `json:"start"`
	End struct {
		SumSent     sum `json:"sum_sent"`
		SumReceived sum `json:"sum_received"`
		CPU         struct {
			HostTotal   float64 `json:"host_total"`
			RemoteTotal float64 `json:"remote_total"`
		} `json:"cpu_utilization_percent"`
	} `json:"end"`
	Error string `json:"error"`
}

type sum struct {
	Seconds       float64 `json:"seconds"`
	Bytes         int64   `json:"bytes"`
	BitsPerSecond float64 `json:"bits_per_second"`
	Retransmits   int64   `json:"retransmits"`
}

// parseClientJSON converts the iperf3 JSON report into a ClientResult.
// Received totals are preferred; sent totals cover reverse mode.
func parseClientJSON(data []byte) (*ClientResult, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, err
	}

	primary := rep.End.SumReceived
	if primary.Bytes == 0 && rep.End.SumSent.Bytes != 0 {
		primary = rep.End.SumSent
	}

	return &ClientResult{
		Mode:             "client",
		Host:             rep.Start.ConnectingTo.Host,
		Port:             rep.Start.ConnectingTo.Port,
		Duration:         primary.Seconds,
		BytesTransferred: primary.Bytes,
		BitsPerSecond:    primary.BitsPerSecond,
		Bandwidth:        primary.BitsPerSecond / 1_000_000,
		Retransmits:      rep.End.SumSent.Retransmits,
		CPULocal:         rep.End.CPU.HostTotal,
		CPURemote:        rep.End.CPU.RemoteTotal,
		Error:            rep.Error,
	}, nil
}

// parseClientText scrapes the sender bandwidth out of plain-text output.
// It is a best-effort fallback for builds of iperf3 that emit broken JSON.
func parseClientText(output string) *ClientResult {
	result := &ClientResult{
		Mode:  "client",
		Error: "JSON parsing failed, using text parsing",
	}

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Mbits/sec") || !strings.Contains(line, "sender") {
			continue
		}
		fields := strings.Fields(line)
		for i, f := range fields {
			if strings.Contains(f, "Mbits/sec") && i > 0 {
				if bw, err := strconv.ParseFloat(fields[i-1], 64); err == nil {
					result.Bandwidth = bw
					result.BitsPerSecond = bw * 1_000_000
				}
				break
			}
		}
	}
	return result
}
