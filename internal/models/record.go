// Package models defines core data structures for datasets, metrics, and benchmark runs.
package models

// Separator joins the two questions of a pair into a single text field.
const Separator = " [SEP] "

// Record is a normalized (text, label) unit used for training and evaluation.
// For training records the label is exactly 0.0 or 1.0; evaluation records
// loaded without ground truth carry a placeholder label of 0.0.
type Record struct {
	Text  string  `json:"text"`
	Label float64 `json:"label"`
}

// Provenance tells whether a dataset came from the configured source or from
// the built-in fallback sample.
type Provenance string

const (
	// ProvenanceReal means the dataset was read from the configured source.
	ProvenanceReal Provenance = "real"
	// ProvenanceFallback means the source was unreadable and the built-in
	// sample was substituted. Metrics computed on fallback data are not
	// representative of the source.
	ProvenanceFallback Provenance = "fallback"
)

// Dataset is a collection of records. Order is irrelevant to the pipeline.
type Dataset struct {
	Records []Record `json:"records"`
}

// Count returns the number of records.
func (d *Dataset) Count() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Texts returns the record texts in dataset order.
func (d *Dataset) Texts() []string {
	texts := make([]string, len(d.Records))
	for i, r := range d.Records {
		texts[i] = r.Text
	}
	return texts
}

// Labels returns the record labels in dataset order.
func (d *Dataset) Labels() []float64 {
	labels := make([]float64, len(d.Records))
	for i, r := range d.Records {
		labels[i] = r.Label
	}
	return labels
}

// LabelDistribution returns how many records carry each label.
func (d *Dataset) LabelDistribution() map[float64]int {
	dist := make(map[float64]int)
	for _, r := range d.Records {
		dist[r.Label]++
	}
	return dist
}
