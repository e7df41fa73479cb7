// Package sysinfo snapshots host state (CPU, memory, disk, network) via
// gopsutil.
package sysinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"golang.org/x/sync/errgroup"
)

// ─── types ────────────────────────────────────────────────────────────────────

type Snapshot struct {
	Platform  Platform `json:"platform"`
	CPU       CPU      `json:"cpu"`
	Memory    Memory   `json:"memory"`
	Disk      Disk     `json:"disk"`
	Network   Network  `json:"network"`
	Uptime    string   `json:"uptime"`
	Timestamp string   `json:"timestamp"`
}

type Platform struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	Version       string `json:"version"`
	KernelVersion string `json:"kernel_version"`
	Architecture  string `json:"architecture"`
	Error         string `json:"error,omitempty"`
}

type LoadAvg struct {
	Load1  float64 `json:"1min"`
	Load5  float64 `json:"5min"`
	Load15 float64 `json:"15min"`
}

type CPU struct {
	Count         int      `json:"count"`
	PhysicalCount int      `json:"physical_count"`
	UsagePercent  float64  `json:"usage"`
	LoadAvg       *LoadAvg `json:"load_avg,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type MemUsage struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available,omitempty"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"percent"`
}

type Memory struct {
	Virtual MemUsage `json:"virtual"`
	Swap    MemUsage `json:"swap"`
	Error   string   `json:"error,omitempty"`
}

type Partition struct {
	Device      string  `json:"device"`
	Mountpoint  string  `json:"mountpoint"`
	Fstype      string  `json:"fstype"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"percent"`
}

type Disk struct {
	Partitions []Partition `json:"partitions"`
	Summary    *Partition  `json:"summary,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type Interface struct {
	Name      string   `json:"name"`
	MTU       int      `json:"mtu"`
	Addresses []string `json:"addresses"`
	Flags     []string `json:"flags"`
}

type IOCounters struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrIn       uint64 `json:"errin"`
	ErrOut      uint64 `json:"errout"`
	DropIn      uint64 `json:"dropin"`
	DropOut     uint64 `json:"dropout"`
}

type Network struct {
	Interfaces []Interface `json:"interfaces"`
	IOCounters *IOCounters `json:"io_counters,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// ─── collection ───────────────────────────────────────────────────────────────

// Collect gathers all sections concurrently. A failing section degrades to
// an inline error note; the snapshot itself always comes back.
func Collect(ctx context.Context) *Snapshot {
	snap := &Snapshot{Timestamp: time.Now().Format(time.RFC3339)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { snap.collectPlatform(ctx); return nil })
	g.Go(func() error { snap.collectCPU(ctx); return nil })
	g.Go(func() error { snap.collectMemory(ctx); return nil })
	g.Go(func() error { snap.collectDisk(ctx); return nil })
	g.Go(func() error { snap.collectNetwork(ctx); return nil })
	g.Wait()

	return snap
}

func (s *Snapshot) collectPlatform(ctx context.Context) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		s.Platform.Error = err.Error()
		return
	}
	s.Platform = Platform{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Platform:      info.Platform,
		Version:       info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		Architecture:  info.KernelArch,
	}
	s.Uptime = FormatUptime(time.Duration(info.Uptime) * time.Second)
}

func (s *Snapshot) collectCPU(ctx context.Context) {
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		s.CPU.Error = err.Error()
		return
	}
	s.CPU.Count = logical

	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		s.CPU.PhysicalCount = physical
	}

	// sampled over one second, like the rest of the ecosystem does it
	if usage, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(usage) > 0 {
		s.CPU.UsagePercent = usage[0]
	}

	// load averages are unavailable on Windows; skip silently
	if avg, err := load.AvgWithContext(ctx); err == nil {
		s.CPU.LoadAvg = &LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}
}

func (s *Snapshot) collectMemory(ctx context.Context) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.Memory.Error = err.Error()
		return
	}
	s.Memory.Virtual = MemUsage{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		Free:        vm.Free,
		UsedPercent: vm.UsedPercent,
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		s.Memory.Swap = MemUsage{
			Total:       swap.Total,
			Used:        swap.Used,
			Free:        swap.Free,
			UsedPercent: swap.UsedPercent,
		}
	}
}

func (s *Snapshot) collectDisk(ctx context.Context) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		s.Disk.Error = err.Error()
		return
	}

	s.Disk.Partitions = []Partition{}
	for _, part := range parts {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			// pseudo filesystems and restricted mounts
			continue
		}
		s.Disk.Partitions = append(s.Disk.Partitions, Partition{
			Device:      part.Device,
			Mountpoint:  part.Mountpoint,
			Fstype:      part.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}
	s.Disk.Summary = summarizePartitions(s.Disk.Partitions)
}

func (s *Snapshot) collectNetwork(ctx context.Context) {
	ifaces, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil {
		s.Network.Error = err.Error()
		return
	}

	s.Network.Interfaces = []Interface{}
	for _, iface := range ifaces {
		addrs := make([]string, 0, len(iface.Addrs))
		for _, a := range iface.Addrs {
			addrs = append(addrs, a.Addr)
		}
		s.Network.Interfaces = append(s.Network.Interfaces, Interface{
			Name:      iface.Name,
			MTU:       iface.MTU,
			Addresses: addrs,
			Flags:     iface.Flags,
		})
	}

	if counters, err := gopsnet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		c := counters[0]
		s.Network.IOCounters = &IOCounters{
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
			ErrIn:       c.Errin,
			ErrOut:      c.Errout,
			DropIn:      c.Dropin,
			DropOut:     c.Dropout,
		}
	}
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func summarizePartitions(parts []Partition) *Partition {
	if len(parts) == 0 {
		return nil
	}
	var total, used, free uint64
	for _, p := range parts {
		total += p.Total
		used += p.Used
		free += p.Free
	}
	summary := &Partition{Total: total, Used: used, Free: free}
	if total > 0 {
		summary.UsedPercent = float64(used) / float64(total) * 100
	}
	return summary
}

// FormatUptime renders an uptime duration as "X days, Y hours, Z minutes".
func FormatUptime(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d day%s", days, plural(days)))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour%s", hours, plural(hours)))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute%s", minutes, plural(minutes)))
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
