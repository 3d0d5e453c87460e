// Package metrics scores predictions against held-out labels.
package metrics

import (
	"errors"
	"sort"

	"github.com/4zj9/pairbench/internal/models"
)

// ErrInvalidInput is returned when predictions and labels are empty or their
// lengths disagree.
var ErrInvalidInput = errors.New("metrics: predictions and labels must be non-empty and the same length")

// Evaluate scores predictions against labels and returns a Metrics record
// tagged with the model name. Accuracy is the exact-match fraction.
// Precision, recall, and F1 are weighted averages over the classes present in
// labels, with class support as weight, so an imbalanced label distribution
// does not over-penalize the minority class. Pure function: inputs are not
// mutated, and the metric kind is not carried as hidden state.
func Evaluate(model string, predictions, labels []float64) (*models.Metrics, error) {
	if len(predictions) == 0 || len(predictions) != len(labels) {
		return nil, ErrInvalidInput
	}

	total := float64(len(labels))
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}

	var precision, recall, f1 float64
	for _, class := range classesOf(labels) {
		var tp, fp, fn float64
		for i, p := range predictions {
			switch {
			case p == class && labels[i] == class:
				tp++
			case p == class && labels[i] != class:
				fp++
			case p != class && labels[i] == class:
				fn++
			}
		}
		var classPrecision, classRecall, classF1 float64
		if tp+fp > 0 {
			classPrecision = tp / (tp + fp)
		}
		if tp+fn > 0 {
			classRecall = tp / (tp + fn)
		}
		if classPrecision+classRecall > 0 {
			classF1 = 2 * classPrecision * classRecall / (classPrecision + classRecall)
		}
		weight := (tp + fn) / total
		precision += weight * classPrecision
		recall += weight * classRecall
		f1 += weight * classF1
	}

	return &models.Metrics{
		Model:     model,
		Accuracy:  float64(correct) / total,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
	}, nil
}

// classesOf returns the distinct label values in ascending order.
func classesOf(labels []float64) []float64 {
	seen := make(map[float64]bool)
	var classes []float64
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Float64s(classes)
	return classes
}
