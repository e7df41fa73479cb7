// Package platform identifies the host OS so external tool invocations
// (ping, traceroute) can use the right flags.
package platform

import "runtime"

// ─── types ────────────────────────────────────────────────────────────────────

type Type string

const (
	Linux   Type = "linux"
	MacOS   Type = "macos"
	Windows Type = "windows"
	Unknown Type = "unknown"
)

// ─── detection ────────────────────────────────────────────────────────────────

// Current returns the platform the binary is running on.
func Current() Type {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Type {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	}
	return Unknown
}

func IsWindows() bool { return Current() == Windows }

func IsLinux() bool { return Current() == Linux }

func IsMacOS() bool { return Current() == MacOS }
