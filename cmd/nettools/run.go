package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ambicuity/nettools/config"
	"github.com/ambicuity/nettools/internal/errors"
	"github.com/ambicuity/nettools/internal/history"
	histsqlite "github.com/ambicuity/nettools/internal/history/sqlite"
	"github.com/ambicuity/nettools/internal/iperf"
	"github.com/ambicuity/nettools/internal/output"
	"github.com/ambicuity/nettools/internal/pingwrap"
	"github.com/ambicuity/nettools/internal/portscan"
	"github.com/ambicuity/nettools/internal/rdns"
	"github.com/ambicuity/nettools/internal/sysinfo"
)

var flagDebug bool

// ─── run ──────────────────────────────────────────────────────────────────────

// run dispatches the subcommand and returns the process exit code:
// 0 success (a scan with zero open ports is still a success), 2 bad input,
// 1 operational failure.
func run(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 0
	}

	cmd, rest := args[0], args[1:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "check-ports":
		return cmdCheckPorts(ctx, rest)
	case "scan-common":
		return cmdScanCommon(ctx, rest)
	case "check-service":
		return cmdCheckService(ctx, rest)
	case "ping":
		return cmdPing(ctx, rest)
	case "traceroute":
		return cmdTraceroute(ctx, rest)
	case "iperf":
		return cmdIperf(ctx, rest)
	case "sysinfo":
		return cmdSysinfo(ctx, rest)
	case "history":
		return cmdHistory(ctx, rest)
	case "version", "-version", "--version":
		fmt.Printf("nettools v%s\n", version)
		return 0
	case "help", "-h", "--help":
		printHelp()
		return 0
	}

	fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", cmd)
	printHelp()
	return 2
}

// ─── port scanning ────────────────────────────────────────────────────────────

func cmdCheckPorts(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("check-ports", flag.ExitOnError)
	host := fs.String("host", "localhost", "host to check")
	portSpec := fs.String("p", "", "ports: 80,443 or ranges 8000-8100")
	timeout := fs.String("timeout", "5s", "per-port connect timeout")
	concurrency := fs.Int("concurrency", 50, "max simultaneous probes")
	record := fs.Bool("record", false, "save results to the history database")
	db := fs.String("db", "", "history database path")
	out := fs.String("o", "human", "output format: human, json, csv")
	file := fs.String("f", "", "save output to file")
	cfgPath := fs.String("config", "", "config file")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	if *portSpec == "" {
		fmt.Fprintln(os.Stderr, "error: -p is required (e.g. -p 22,80,443)")
		return 2
	}
	ports, err := parsePorts(*portSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 2
	}

	cfg := loadConfig(*cfgPath)
	cfg = mergeScanConfig(cfg, fs, timeout, concurrency, out)

	return runScan(ctx, *host, ports, cfg, *record, *db, *file)
}

func cmdScanCommon(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("scan-common", flag.ExitOnError)
	host := fs.String("host", "localhost", "host to check")
	timeout := fs.String("timeout", "5s", "per-port connect timeout")
	concurrency := fs.Int("concurrency", 50, "max simultaneous probes")
	record := fs.Bool("record", false, "save results to the history database")
	db := fs.String("db", "", "history database path")
	out := fs.String("o", "human", "output format: human, json, csv")
	file := fs.String("f", "", "save output to file")
	cfgPath := fs.String("config", "", "config file")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	cfg = mergeScanConfig(cfg, fs, timeout, concurrency, out)

	return runScan(ctx, *host, portscan.WellKnownPorts(), cfg, *record, *db, *file)
}

// runScan executes a scan and renders or records the report.
func runScan(ctx context.Context, host string, ports []int, cfg config.Config, record bool, dbPath, file string) int {
	if flagDebug {
		fmt.Fprintf(os.Stderr, "[debug] host: %s | ports: %d | timeout: %s | concurrency: %d\n",
			host, len(ports), cfg.Timeout, cfg.Concurrency)
	}

	scanner := portscan.New(portscan.Config{
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
	})

	if cfg.Output == "human" && output.IsTTY() {
		output.PrintScanHeader(host, version)
	}

	report, err := scanner.Scan(ctx, host, ports)
	if err != nil {
		return fail(err)
	}

	// recording is best-effort: the scan succeeded, so a failed write must
	// not cost the user the report or the exit code
	if record {
		if err := recordReport(ctx, report, dbPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot record scan: %s\n", err)
		}
	}

	switch cfg.Output {
	case "json":
		if file != "" {
			if err := output.WriteJSON(file, report); err != nil {
				return fail(err)
			}
		} else if err := output.PrintJSON(report); err != nil {
			return fail(err)
		}
	case "csv":
		if file != "" {
			if err := output.WriteCSV(file, report); err != nil {
				return fail(err)
			}
		} else if err := output.PrintCSV(report); err != nil {
			return fail(err)
		}
	default:
		output.PrintPortReport(report)
	}
	return 0
}

func cmdCheckService(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("check-service", flag.ExitOnError)
	host := fs.String("host", "localhost", "host to check")
	timeout := fs.String("timeout", "5s", "connect timeout")
	out := fs.String("o", "human", "output format: human, json")
	cfgPath := fs.String("config", "", "config file")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "error: exactly one service name required (known: %s)\n",
			strings.Join(portscan.KnownServices(), ", "))
		return 2
	}

	cfg := loadConfig(*cfgPath)
	if isFlagSet(fs, "timeout") {
		if d, err := time.ParseDuration(*timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if isFlagSet(fs, "o") {
		cfg.Output = *out
	}

	scanner := portscan.New(portscan.Config{Timeout: cfg.Timeout, Concurrency: cfg.Concurrency})
	status, err := scanner.CheckService(ctx, *host, fs.Arg(0))
	if err != nil {
		return fail(err)
	}

	if cfg.Output == "json" {
		if err := output.PrintJSON(status); err != nil {
			return fail(err)
		}
		return 0
	}
	output.PrintServiceStatus(status)
	return 0
}

// ─── ping / traceroute ────────────────────────────────────────────────────────

func cmdPing(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	count := fs.Int("count", 4, "number of ping packets")
	timeout := fs.String("timeout", "5s", "per-packet timeout")
	size := fs.Int("size", 0, "packet size in bytes")
	out := fs.String("o", "human", "output format: human, json")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "error: exactly one host required")
		return 2
	}
	host := fs.Arg(0)

	d, err := time.ParseDuration(*timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid timeout: %s\n", *timeout)
		return 2
	}

	pinger := pingwrap.New()
	result, err := pinger.Ping(ctx, host, pingwrap.Options{Count: *count, Timeout: d, PacketSize: *size})
	if err != nil {
		return fail(err)
	}

	if *out == "json" {
		if err := output.PrintJSON(result); err != nil {
			return fail(err)
		}
		return 0
	}

	// annotate literal IP targets with their reverse DNS name
	var hostname string
	if net.ParseIP(host) != nil {
		if res, err := rdns.Lookup(ctx, host); err == nil && res != nil {
			hostname = res.Hostname
		}
	}
	output.PrintPingResult(result, hostname)
	return 0
}

func cmdTraceroute(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("traceroute", flag.ExitOnError)
	hops := fs.Int("hops", 30, "maximum number of hops")
	out := fs.String("o", "human", "output format: human, json")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "error: exactly one host required")
		return 2
	}

	pinger := pingwrap.New()
	result, err := pinger.Traceroute(ctx, fs.Arg(0), *hops)
	if err != nil {
		return fail(err)
	}

	if *out == "json" {
		if err := output.PrintJSON(result); err != nil {
			return fail(err)
		}
		return 0
	}
	output.PrintTraceroute(result)
	return 0
}

// ─── iperf ────────────────────────────────────────────────────────────────────

func cmdIperf(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("iperf", flag.ExitOnError)
	server := fs.Bool("s", false, "run in server mode")
	client := fs.String("c", "", "connect to server at address")
	port := fs.Int("port", 5201, "port to use")
	duration := fs.Int("duration", 10, "test duration in seconds")
	parallel := fs.Int("parallel", 1, "number of parallel streams")
	reverse := fs.Bool("reverse", false, "server sends, client receives")
	bind := fs.String("bind", "", "server bind address")
	out := fs.String("o", "human", "output format: human, json")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	runner := iperf.New()
	if err := runner.CheckAvailable(ctx); err != nil {
		return fail(err)
	}

	if *server {
		info, err := runner.RunServer(ctx, *port, *bind)
		if err != nil {
			return fail(err)
		}
		if *out == "json" {
			if err := output.PrintJSON(info); err != nil {
				return fail(err)
			}
			return 0
		}
		output.PrintIperfServer(info)
		// keep the foreground process alive until interrupted
		<-ctx.Done()
		return 0
	}

	if *client == "" {
		fmt.Fprintln(os.Stderr, "error: must specify either -s or -c <host>")
		return 2
	}

	result, err := runner.RunClient(ctx, *client, iperf.ClientOptions{
		Port:     *port,
		Duration: *duration,
		Parallel: *parallel,
		Reverse:  *reverse,
	})
	if err != nil {
		return fail(err)
	}

	if *out == "json" {
		if err := output.PrintJSON(result); err != nil {
			return fail(err)
		}
		return 0
	}
	output.PrintIperfResult(result)
	return 0
}

// ─── sysinfo ──────────────────────────────────────────────────────────────────

func cmdSysinfo(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("sysinfo", flag.ExitOnError)
	out := fs.String("o", "human", "output format: human, json")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	snap := sysinfo.Collect(ctx)

	if *out == "json" {
		if err := output.PrintJSON(snap); err != nil {
			return fail(err)
		}
		return 0
	}
	output.PrintSysinfo(snap)
	return 0
}

// ─── history ──────────────────────────────────────────────────────────────────

func cmdHistory(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	host := fs.String("host", "", "filter by host")
	limit := fs.Int("limit", 50, "maximum records to show")
	db := fs.String("db", "", "history database path")
	out := fs.String("o", "human", "output format: human, json")
	cfgPath := fs.String("config", "", "config file")
	fs.BoolVar(&flagDebug, "debug", false, "debug mode")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	repo, err := openHistory(*db, cfg)
	if err != nil {
		return fail(err)
	}
	defer repo.Close()

	records, err := repo.RecentScans(ctx, *host, *limit)
	if err != nil {
		return fail(err)
	}

	if *out == "json" {
		if records == nil {
			records = []history.Record{}
		}
		if err := output.PrintJSON(records); err != nil {
			return fail(err)
		}
		return 0
	}
	output.PrintHistory(records)
	return 0
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// parsePorts parses a port list with ranges, e.g. "22,80,8000-8100".
// Duplicates are preserved; each entry produces its own probe.
func parsePorts(spec string) ([]int, error) {
	var ports []int
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("invalid port spec: empty token")
		}

		if strings.Contains(tok, "-") {
			bounds := strings.SplitN(tok, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid range: %s", tok)
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid range: %s", tok)
			}
			if start < 1 || end > 65535 || start > end {
				return nil, fmt.Errorf("invalid range: %s (ports must be 1-65535)", tok)
			}
			for p := start; p <= end; p++ {
				ports = append(ports, p)
			}
			continue
		}

		p, err := strconv.Atoi(tok)
		if err != nil || p < 1 || p > 65535 {
			return nil, fmt.Errorf("invalid port: %s", tok)
		}
		ports = append(ports, p)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("empty port spec")
	}
	return ports, nil
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot load config: %s\n", err)
	}
	return cfg
}

func recordReport(ctx context.Context, report *portscan.Report, dbPath string, cfg config.Config) error {
	repo, err := openHistory(dbPath, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()
	return repo.SaveReport(ctx, report)
}

func openHistory(dbPath string, cfg config.Config) (history.Repository, error) {
	if dbPath == "" {
		dbPath = cfg.HistoryDB
	}
	if dbPath == "" {
		dbPath = config.DefaultHistoryDB()
	}
	if flagDebug {
		fmt.Fprintf(os.Stderr, "[debug] history db: %s\n", dbPath)
	}
	return histsqlite.NewRepository(dbPath)
}

// fail prints err and maps it to an exit code.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
	if _, ok := err.(*errors.InputError); ok {
		return 2
	}
	return 1
}
