package output

import (
	"fmt"

	"github.com/ambicuity/nettools/internal/portscan"
)

// ─── summary ──────────────────────────────────────────────────────────────────

// printScanSummary prints the aggregate block under the port table.
func printScanSummary(report *portscan.Report) {
	fmt.Printf("\n")
	colorMuted.Println("─────────────────────────────")
	fmt.Printf("  ")
	colorMuted.Printf("scanned : ")
	colorBold.Printf("%d ports\n", report.TotalPorts)
	fmt.Printf("  ")
	colorMuted.Printf("open    : ")
	colorOpen.Printf("%d\n", report.OpenPorts)
	fmt.Printf("  ")
	colorMuted.Printf("closed  : ")
	colorClosed.Printf("%d\n", report.ClosedPorts)
	fmt.Printf("  ")
	colorMuted.Printf("time    : ")
	fmt.Printf("%.2fs\n", report.ScanTime)
	colorMuted.Println("─────────────────────────────")

	// non-timeout failures deserve attention; timeouts are routine
	if len(report.Summary.Errors) > 0 {
		fmt.Printf("\n")
		colorWarn.Printf("unexpected errors:\n")
		for _, r := range report.Summary.Errors {
			fmt.Printf("  port %d: %s\n", r.Port, r.Err.Error())
		}
	}
	fmt.Println()
}
