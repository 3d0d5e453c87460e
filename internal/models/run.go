package models

import "time"

// Metrics holds the evaluation scores for one model variant.
// Precision, recall, and F1 are weighted averages over the classes present in
// the evaluation labels (weight = class support).
type Metrics struct {
	Model               string  `json:"model"`
	Accuracy            float64 `json:"accuracy"`
	Precision           float64 `json:"precision"`
	Recall              float64 `json:"recall"`
	F1                  float64 `json:"f1"`
	TrainingTimeSeconds float64 `json:"training_time_seconds"`
}

// VariantResult is one comparison-table entry: either the metrics of a
// successful variant or the error that made it fail. A failed variant never
// removes or alters entries recorded before it.
type VariantResult struct {
	Variant string   `json:"variant"`
	Metrics *Metrics `json:"metrics,omitempty"`
	Failed  bool     `json:"failed,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ComparisonTable is the ordered sequence of per-variant results for one
// benchmark run. Entries appear in evaluation order and only the benchmark
// runner appends to it; consumers treat it as read-only.
type ComparisonTable struct {
	Results []VariantResult `json:"results"`
}

// Append records a variant result. Returns the table for chaining.
func (t *ComparisonTable) Append(r VariantResult) *ComparisonTable {
	t.Results = append(t.Results, r)
	return t
}

// Succeeded returns the successful entries in table order.
func (t *ComparisonTable) Succeeded() []VariantResult {
	var out []VariantResult
	for _, r := range t.Results {
		if !r.Failed {
			out = append(out, r)
		}
	}
	return out
}

// Run is a persisted benchmark run: the comparison table plus the context it
// was produced in.
type Run struct {
	ID              string           `json:"id"`
	TrainSource     string           `json:"train_source"`
	EvalSource      string           `json:"eval_source"`
	TrainCount      int              `json:"train_count"`
	EvalCount       int              `json:"eval_count"`
	TrainProvenance Provenance       `json:"train_provenance"`
	EvalProvenance  Provenance       `json:"eval_provenance"`
	Table           *ComparisonTable `json:"table"`
	CreatedAt       time.Time        `json:"created_at"`
}
