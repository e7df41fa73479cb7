package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ambicuity/nettools/internal/portscan"
)

// ─── csv ──────────────────────────────────────────────────────────────────────

var csvHeader = []string{"host", "port", "open", "response_time", "error"}

// PrintCSV writes the port results of a report to stdout as CSV.
func PrintCSV(report *portscan.Report) error {
	return writeCSV(os.Stdout, report)
}

// WriteCSV writes the port results of a report to path as CSV.
func WriteCSV(path string, report *portscan.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %s", path)
	}
	defer f.Close()
	return writeCSV(f, report)
}

func writeCSV(dst io.Writer, report *portscan.Report) error {
	w := csv.NewWriter(dst)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range report.Ports {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		row := []string{
			report.Host,
			strconv.Itoa(r.Port),
			strconv.FormatBool(r.Open),
			strconv.FormatFloat(r.ResponseTime, 'f', 6, 64),
			errText,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
