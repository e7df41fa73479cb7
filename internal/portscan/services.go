package portscan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ambicuity/nettools/internal/errors"
)

// ─── well-known ports ─────────────────────────────────────────────────────────

// wellKnownPorts are the commonly used service ports probed by ScanWellKnown.
var wellKnownPorts = []int{
	21,    // FTP
	22,    // SSH
	23,    // Telnet
	25,    // SMTP
	53,    // DNS
	80,    // HTTP
	110,   // POP3
	143,   // IMAP
	443,   // HTTPS
	993,   // IMAPS
	995,   // POP3S
	1433,  // MSSQL
	3306,  // MySQL
	3389,  // RDP
	5432,  // PostgreSQL
	5672,  // RabbitMQ
	6379,  // Redis
	8080,  // HTTP alt
	9200,  // Elasticsearch
	27017, // MongoDB
}

// WellKnownPorts returns a copy of the curated port list.
func WellKnownPorts() []int {
	out := make([]int, len(wellKnownPorts))
	copy(out, wellKnownPorts)
	return out
}

// ─── service table ────────────────────────────────────────────────────────────

// servicePorts maps service names to their default ports. The table is
// fixed at build time; there is no dynamic registration.
var servicePorts = map[string]int{
	"http":          80,
	"https":         443,
	"ssh":           22,
	"ftp":           21,
	"smtp":          25,
	"dns":           53,
	"pop3":          110,
	"imap":          143,
	"telnet":        23,
	"rdp":           3389,
	"mysql":         3306,
	"postgresql":    5432,
	"redis":         6379,
	"mongodb":       27017,
	"rabbitmq":      5672,
	"elasticsearch": 9200,
}

// KnownServices returns the service names in the lookup table, sorted.
func KnownServices() []string {
	names := make([]string, 0, len(servicePorts))
	for name := range servicePorts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ─── service check ────────────────────────────────────────────────────────────

// ServiceStatus is the outcome of probing a named service's default port.
type ServiceStatus struct {
	Service      string      `json:"service"`
	Host         string      `json:"host"`
	Port         int         `json:"port"`
	Available    bool        `json:"available"`
	ResponseTime float64     `json:"response_time"`
	Err          *ProbeError `json:"error"`
}

// CheckService probes the default port of the named service. The lookup is
// case-insensitive; an unknown name fails without any network I/O.
func (s *Scanner) CheckService(ctx context.Context, host, service string) (*ServiceStatus, error) {
	port, ok := servicePorts[strings.ToLower(service)]
	if !ok {
		return nil, errors.Input("service",
			fmt.Sprintf("unknown service %q, known services: %s", service, strings.Join(KnownServices(), ", ")))
	}

	r := s.prober.Probe(ctx, host, port, s.cfg.Timeout)
	return &ServiceStatus{
		Service:      service,
		Host:         host,
		Port:         port,
		Available:    r.Open,
		ResponseTime: r.ResponseTime,
		Err:          r.Err,
	}, nil
}
