// Package history persists scan reports so past results can be reviewed
// with the history command.
package history

import (
	"context"
	"time"

	"github.com/ambicuity/nettools/internal/portscan"
)

// Record is one persisted port result.
type Record struct {
	ID           int64     `json:"id"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	Open         bool      `json:"open"`
	ResponseTime float64   `json:"response_time"`
	Error        string    `json:"error,omitempty"`
	ScannedAt    time.Time `json:"scanned_at"`
}

// Repository stores and retrieves scan records.
type Repository interface {
	SaveReport(ctx context.Context, report *portscan.Report) error
	RecentScans(ctx context.Context, host string, limit int) ([]Record, error)
	Close() error
}
