package main

import (
	"flag"
	"time"

	"github.com/ambicuity/nettools/config"
)

// mergeScanConfig builds the final scan config by merging flag values into
// cfg. Priority: flag > config file > default.
func mergeScanConfig(cfg config.Config, fs *flag.FlagSet, timeout *string, concurrency *int, out *string) config.Config {
	if isFlagSet(fs, "timeout") {
		if d, err := time.ParseDuration(*timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if isFlagSet(fs, "concurrency") {
		cfg.Concurrency = *concurrency
	}
	if isFlagSet(fs, "o") {
		cfg.Output = *out
	}
	return cfg
}

// isFlagSet reports whether the named flag was explicitly set by the user.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
