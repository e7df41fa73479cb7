package portscan

import "time"

// ─── config ───────────────────────────────────────────────────────────────────

type Config struct {
	Timeout     time.Duration
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		Timeout:     5 * time.Second,
		Concurrency: 50,
	}
}
