// Package report renders a benchmark comparison table as text or as an XLSX
// workbook with comparison charts.
package report

import (
	"fmt"
	"io"

	"github.com/4zj9/pairbench/internal/models"
)

// WriteText writes a human-readable comparison table to w.
// Failed variants are listed with their error instead of metrics.
func WriteText(w io.Writer, run *models.Run) {
	fmt.Fprintf(w, "\nBenchmark run %s\n", run.ID)
	fmt.Fprintf(w, "Training:   %s (%d records, %s)\n", run.TrainSource, run.TrainCount, run.TrainProvenance)
	fmt.Fprintf(w, "Evaluation: %s (%d records, %s)\n\n", run.EvalSource, run.EvalCount, run.EvalProvenance)

	fmt.Fprintf(w, "%-20s %10s %10s %10s %10s %12s\n", "MODEL", "ACCURACY", "PRECISION", "RECALL", "F1", "TRAIN TIME")
	for _, r := range run.Table.Results {
		if r.Failed {
			fmt.Fprintf(w, "%-20s failed: %s\n", r.Variant, r.Error)
			continue
		}
		m := r.Metrics
		fmt.Fprintf(w, "%-20s %10.4f %10.4f %10.4f %10.4f %11.2fs\n",
			r.Variant, m.Accuracy, m.Precision, m.Recall, m.F1, m.TrainingTimeSeconds)
	}
	if run.TrainProvenance == models.ProvenanceFallback || run.EvalProvenance == models.ProvenanceFallback {
		fmt.Fprintln(w, "\nwarning: fallback sample data was used; metrics are not representative")
	}
}
