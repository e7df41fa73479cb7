package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/ambicuity/nettools/internal/history"
	"github.com/ambicuity/nettools/internal/iperf"
	"github.com/ambicuity/nettools/internal/pingwrap"
	"github.com/ambicuity/nettools/internal/portscan"
	"github.com/ambicuity/nettools/internal/sysinfo"
)

// ─── colors ───────────────────────────────────────────────────────────────────

var (
	colorOpen   = color.New(color.FgGreen, color.Bold)
	colorClosed = color.New(color.FgRed)
	colorWarn   = color.New(color.FgYellow)
	colorMuted  = color.New(color.FgHiBlack)
	colorBold   = color.New(color.Bold)
	colorValue  = color.New(color.FgCyan)
)

// IsTTY reports whether stdout is a terminal rather than a pipe.
// fatih/color disables itself automatically when output is not a TTY.
func IsTTY() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// ─── scan ─────────────────────────────────────────────────────────────────────

// PrintScanHeader prints the scan banner with target info and column labels.
func PrintScanHeader(host, version string) {
	fmt.Printf("\n")
	colorBold.Printf("nettools v%s", version)
	colorMuted.Printf(" — port check: ")
	colorBold.Printf("%s", host)
	fmt.Printf("\n\n")
	colorMuted.Printf("%-8s %-10s %s\n", "PORT", "STATUS", "RESPONSE TIME")
	colorMuted.Printf("%-8s %-10s %s\n", "────", "──────", "─────────────")
}

// PrintPortReport prints each port row followed by the scan summary.
func PrintPortReport(report *portscan.Report) {
	for _, r := range report.Ports {
		if r.Open {
			colorOpen.Printf("%-8d ● open     %.3fs\n", r.Port, r.ResponseTime)
			continue
		}
		colorClosed.Printf("%-8d ● closed   ", r.Port)
		if r.Err != nil && r.Err.Kind != portscan.KindTimeout && r.Err.Kind != portscan.KindRefused {
			colorWarn.Printf("%s\n", r.Err.Error())
		} else {
			fmt.Printf("%.3fs\n", r.ResponseTime)
		}
	}
	printScanSummary(report)
}

// PrintServiceStatus prints the result of a named service probe.
func PrintServiceStatus(s *portscan.ServiceStatus) {
	fmt.Printf("\n")
	colorMuted.Printf("service : ")
	colorBold.Printf("%s (%s:%d)\n", s.Service, s.Host, s.Port)
	colorMuted.Printf("status  : ")
	if s.Available {
		colorOpen.Printf("available (%.3fs)\n", s.ResponseTime)
	} else {
		colorClosed.Printf("unavailable")
		if s.Err != nil {
			colorMuted.Printf(" — %s", s.Err.Error())
		}
		fmt.Println()
	}
}

// ─── ping ─────────────────────────────────────────────────────────────────────

// PrintPingResult prints ping statistics as a metric table.
func PrintPingResult(r *pingwrap.Result, hostname string) {
	fmt.Printf("\n")
	colorBold.Printf("ping %s", r.Host)
	if hostname != "" {
		colorMuted.Printf(" (%s)", hostname)
	}
	fmt.Printf("\n\n")

	printMetric("packets sent", fmt.Sprintf("%d", r.PacketsSent))
	printMetric("packets received", fmt.Sprintf("%d", r.PacketsReceived))
	printMetric("packet loss", fmt.Sprintf("%.1f%%", r.PacketLoss))
	if r.AvgTime != nil {
		printMetric("avg time", fmt.Sprintf("%.2f ms", *r.AvgTime))
	}
	if r.MinTime != nil {
		printMetric("min time", fmt.Sprintf("%.2f ms", *r.MinTime))
	}
	if r.MaxTime != nil {
		printMetric("max time", fmt.Sprintf("%.2f ms", *r.MaxTime))
	}
	if r.Error != "" {
		colorClosed.Printf("  error: %s\n", r.Error)
	}
	fmt.Println()
}

// PrintTraceroute prints the raw traceroute output with a status line.
func PrintTraceroute(r *pingwrap.TracerouteResult) {
	fmt.Printf("\n")
	colorBold.Printf("traceroute %s", r.Host)
	colorMuted.Printf(" (max %d hops)\n\n", r.MaxHops)
	if r.RawOutput != "" {
		fmt.Println(r.RawOutput)
	}
	if r.Error != "" {
		colorClosed.Printf("error: %s\n", r.Error)
	}
}

// ─── iperf ────────────────────────────────────────────────────────────────────

// PrintIperfResult prints client-mode bandwidth results.
func PrintIperfResult(r *iperf.ClientResult) {
	fmt.Printf("\n")
	colorBold.Printf("iperf3 %s:%d\n\n", r.Host, r.Port)
	printMetric("bandwidth", fmt.Sprintf("%.2f Mbits/sec", r.Bandwidth))
	printMetric("duration", fmt.Sprintf("%.1f seconds", r.Duration))
	printMetric("transferred", fmt.Sprintf("%d bytes", r.BytesTransferred))
	printMetric("retransmits", fmt.Sprintf("%d", r.Retransmits))
	printMetric("cpu local/remote", fmt.Sprintf("%.1f%% / %.1f%%", r.CPULocal, r.CPURemote))
	if r.Error != "" {
		colorWarn.Printf("  note: %s\n", r.Error)
	}
	fmt.Println()
}

// PrintIperfServer prints the started-server notice.
func PrintIperfServer(info *iperf.ServerInfo) {
	fmt.Printf("\n")
	colorOpen.Printf("iperf3 server running")
	colorMuted.Printf(" — port %d, pid %d\n", info.Port, info.PID)
	colorWarn.Println("press Ctrl+C to stop")
}

// ─── sysinfo ──────────────────────────────────────────────────────────────────

// PrintSysinfo prints the host snapshot section by section.
func PrintSysinfo(s *sysinfo.Snapshot) {
	fmt.Printf("\n")
	colorBold.Println("system")
	printMetric("hostname", s.Platform.Hostname)
	printMetric("platform", fmt.Sprintf("%s %s", s.Platform.Platform, s.Platform.Version))
	printMetric("kernel", s.Platform.KernelVersion)
	printMetric("architecture", s.Platform.Architecture)
	printMetric("uptime", s.Uptime)

	fmt.Printf("\n")
	colorBold.Println("cpu")
	if s.CPU.Error != "" {
		colorClosed.Printf("  error: %s\n", s.CPU.Error)
	} else {
		printMetric("cores", fmt.Sprintf("%d logical / %d physical", s.CPU.Count, s.CPU.PhysicalCount))
		printMetric("usage", fmt.Sprintf("%.1f%%", s.CPU.UsagePercent))
		if s.CPU.LoadAvg != nil {
			printMetric("load avg", fmt.Sprintf("%.2f %.2f %.2f",
				s.CPU.LoadAvg.Load1, s.CPU.LoadAvg.Load5, s.CPU.LoadAvg.Load15))
		}
	}

	fmt.Printf("\n")
	colorBold.Println("memory")
	if s.Memory.Error != "" {
		colorClosed.Printf("  error: %s\n", s.Memory.Error)
	} else {
		printMetric("total", formatBytes(s.Memory.Virtual.Total))
		printMetric("available", formatBytes(s.Memory.Virtual.Available))
		printMetric("used", fmt.Sprintf("%s (%.1f%%)",
			formatBytes(s.Memory.Virtual.Used), s.Memory.Virtual.UsedPercent))
		printMetric("swap", fmt.Sprintf("%s / %s",
			formatBytes(s.Memory.Swap.Used), formatBytes(s.Memory.Swap.Total)))
	}

	fmt.Printf("\n")
	colorBold.Println("disk")
	if s.Disk.Error != "" {
		colorClosed.Printf("  error: %s\n", s.Disk.Error)
	} else {
		for _, p := range s.Disk.Partitions {
			printMetric(p.Mountpoint, fmt.Sprintf("%s / %s (%.1f%%)",
				formatBytes(p.Used), formatBytes(p.Total), p.UsedPercent))
		}
	}

	fmt.Printf("\n")
	colorBold.Println("network")
	if s.Network.Error != "" {
		colorClosed.Printf("  error: %s\n", s.Network.Error)
	} else {
		for _, iface := range s.Network.Interfaces {
			if len(iface.Addresses) == 0 {
				continue
			}
			printMetric(iface.Name, fmt.Sprintf("%v", iface.Addresses))
		}
		if s.Network.IOCounters != nil {
			printMetric("io", fmt.Sprintf("%s sent / %s received",
				formatBytes(s.Network.IOCounters.BytesSent),
				formatBytes(s.Network.IOCounters.BytesRecv)))
		}
	}
	fmt.Println()
}

// ─── history ──────────────────────────────────────────────────────────────────

// PrintHistory prints persisted scan records, newest first.
func PrintHistory(records []history.Record) {
	if len(records) == 0 {
		colorMuted.Println("no scan history")
		return
	}
	fmt.Printf("\n")
	colorMuted.Printf("%-20s %-8s %-8s %-10s %s\n", "SCANNED AT", "PORT", "STATUS", "TIME", "HOST")
	for _, rec := range records {
		status := colorClosed.Sprint("closed")
		if rec.Open {
			status = colorOpen.Sprint("open")
		}
		fmt.Printf("%-20s %-8d %-17s %-10s %s\n",
			rec.ScannedAt.Format("2006-01-02 15:04:05"),
			rec.Port, status,
			fmt.Sprintf("%.3fs", rec.ResponseTime),
			rec.Host)
	}
	fmt.Println()
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func printMetric(name, value string) {
	fmt.Printf("  ")
	colorMuted.Printf("%-18s ", name)
	colorValue.Printf("%s\n", value)
}

// formatBytes renders a byte count in the largest sensible unit.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
