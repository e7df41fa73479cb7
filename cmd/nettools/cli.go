package main

import "fmt"

const version = "0.1.0"

// ─── help ─────────────────────────────────────────────────────────────────────

// printHelp prints the full usage message to stdout.
func printHelp() {
	fmt.Printf(`nettools v%s — cross-platform network and system diagnostics

USAGE:
  nettools <command> [flags]

COMMANDS:
  check-ports    check specific TCP ports on a host
  scan-common    scan the well-known service ports
  check-service  probe a named service's default port
  ping           ping a host via the OS ping tool
  traceroute     trace the route to a host
  iperf          run an iperf3 bandwidth test
  sysinfo        show host system information
  history        show recorded scan results

CHECK-PORTS:
  nettools check-ports -host example.com -p 22,80,8000-8100
  -host         target host (default: localhost)
  -p            ports: 80,443 or ranges 8000-8100
  -timeout      per-port connect timeout (default: 5s)
  -concurrency  max simultaneous probes (default: 50)
  -record       save results to the history database

PING / TRACEROUTE:
  nettools ping -count 4 example.com
  nettools traceroute -hops 30 example.com

IPERF:
  nettools iperf -c 10.0.0.2 -port 5201 -duration 10
  nettools iperf -s -port 5201

OUTPUT:
  -o            format: human, json, csv (default: human)
  -f            save output to file
  -config       config file (default: ~/.nettools.yaml)
  -debug        debug mode

EXAMPLES:
  nettools check-ports -host example.com -p 22,80,443 -o json
  nettools scan-common -host 10.0.0.1 -record
  nettools check-service -host db.internal postgresql
  nettools history -host example.com -limit 20
`, version)
}
