// Package cli provides CLI output formatting for pairbench.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/4zj9/pairbench/internal/models"
	"github.com/4zj9/pairbench/internal/report"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat converts a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteRun writes one benchmark run to w in the given format.
func WriteRun(w io.Writer, run *models.Run, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	default:
		report.WriteText(w, run)
		return nil
	}
}

// WriteRunList writes a run-history listing to w in the given format.
func WriteRunList(w io.Writer, runs []*models.Run, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"runs": runs})
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-19s  %-8s  %s\n", "ID", "CREATED", "VARIANTS", "TRAINING SOURCE")
	for _, run := range runs {
		variants := 0
		if run.Table != nil {
			variants = len(run.Table.Results)
		}
		fmt.Fprintf(w, "%-36s  %-19s  %8d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), variants, Truncate(run.TrainSource, 60))
	}
	return nil
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
