// Package rdns resolves IP addresses back to hostnames, used to annotate
// ping targets given as literal IPs.
package rdns

import (
	"context"
	"net"
	"strings"
)

// ─── result ───────────────────────────────────────────────────────────────────

type Result struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

// ─── lookup ───────────────────────────────────────────────────────────────────

// resolver is the subset of net.Resolver the lookup needs.
type resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

var defaultResolver resolver = net.DefaultResolver

// Lookup performs a reverse DNS lookup for the given IP. A name that does
// not resolve is not an error; it returns nil, nil.
func Lookup(ctx context.Context, ip string) (*Result, error) {
	return lookupWith(ctx, defaultResolver, ip)
}

func lookupWith(ctx context.Context, r resolver, ip string) (*Result, error) {
	hostnames, err := r.LookupAddr(ctx, ip)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return fromNames(ip, hostnames), nil
}

// fromNames picks the first hostname and strips the trailing root dot.
func fromNames(ip string, hostnames []string) *Result {
	if len(hostnames) == 0 {
		return nil
	}
	return &Result{
		IP:       ip,
		Hostname: strings.TrimSuffix(hostnames[0], "."),
	}
}

// isNotFound reports whether err is a DNS "not found" error.
func isNotFound(err error) bool {
	if dnsErr, ok := err.(*net.DNSError); ok {
		return dnsErr.IsNotFound
	}
	return false
}
