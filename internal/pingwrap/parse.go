package pingwrap

import (
	"regexp"
	"strconv"
	"strings"
)

// ─── patterns ─────────────────────────────────────────────────────────────────

var (
	// "64 bytes from 8.8.8.8: icmp_seq=1 ttl=56 time=19.6 ms"
	unixTimeRe = regexp.MustCompile(`time=(\d+\.?\d*)`)
	// "4 packets transmitted, 4 received, 0% packet loss"
	unixLossRe = regexp.MustCompile(`(\d+(?:\.\d+)?)% packet loss`)

	// "Reply from 8.8.8.8: bytes=32 time=20ms TTL=56"
	winTimeRe = regexp.MustCompile(`time[<=](\d+)ms`)
	// "Packets: Sent = 4, Received = 4, Lost = 0 (0% loss)"
	winLossRe = regexp.MustCompile(`Lost = \d+ \((\d+)% loss\)`)
)

// ─── parsers ──────────────────────────────────────────────────────────────────

// parseUnix fills result from Linux/macOS ping output.
func parseUnix(output string, result *Result) {
	parseTimes(output, unixTimeRe, result)

	if m := unixLossRe.FindStringSubmatch(output); m != nil {
		if loss, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.PacketLoss = loss
			return
		}
	}
	result.PacketLoss = lossFromCounts(result.PacketsSent, result.PacketsReceived)
}

// parseWindows fills result from Windows ping output.
func parseWindows(output string, result *Result) {
	parseTimes(output, winTimeRe, result)

	if m := winLossRe.FindStringSubmatch(output); m != nil {
		if loss, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.PacketLoss = loss
			return
		}
	}
	result.PacketLoss = lossFromCounts(result.PacketsSent, result.PacketsReceived)
}

// parseTimes extracts per-packet round-trip times line by line and derives
// min/avg/max.
func parseTimes(output string, re *regexp.Regexp, result *Result) {
	for _, line := range strings.Split(output, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		t, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		result.Times = append(result.Times, t)
	}

	result.PacketsReceived = len(result.Times)
	if len(result.Times) == 0 {
		return
	}

	min, max, sum := result.Times[0], result.Times[0], 0.0
	for _, t := range result.Times {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
		sum += t
	}
	avg := sum / float64(len(result.Times))
	result.MinTime = &min
	result.MaxTime = &max
	result.AvgTime = &avg
}

func lossFromCounts(sent, received int) float64 {
	if sent <= 0 {
		return 100.0
	}
	return float64(sent-received) / float64(sent) * 100.0
}
