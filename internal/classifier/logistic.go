// Package classifier provides the linear probabilistic classifier fitted on
// feature vectors during a benchmark run.
package classifier

import (
	"errors"
	"math"
)

// ErrInvalidInput is returned when features and labels are empty or their
// lengths disagree.
var ErrInvalidInput = errors.New("classifier: features and labels must be non-empty and the same length")

// convergenceTolerance stops gradient descent early once the largest weight
// update falls below it.
const convergenceTolerance = 1e-6

// Options configure fitting. Zero values take defaults.
type Options struct {
	MaxIterations int     // gradient-descent iteration cap (default 100)
	LearningRate  float64 // step size (default 0.1)
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = 100
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.1
	}
	return o
}

// LogisticRegression is a fitted binary logistic-regression model.
type LogisticRegression struct {
	weights    []float64
	bias       float64
	dimensions int
}

// Fit trains logistic regression by batch gradient descent until convergence
// or the iteration cap, whichever comes first. One fixed configuration, no
// hyperparameter search.
func Fit(features [][]float32, labels []float64, opts Options) (*LogisticRegression, error) {
	if len(features) == 0 || len(features) != len(labels) {
		return nil, ErrInvalidInput
	}
	dims := len(features[0])
	if dims == 0 {
		return nil, ErrInvalidInput
	}
	for _, x := range features {
		if len(x) != dims {
			return nil, ErrInvalidInput
		}
	}
	opts = opts.withDefaults()

	m := &LogisticRegression{
		weights:    make([]float64, dims),
		dimensions: dims,
	}
	n := float64(len(features))
	gradW := make([]float64, dims)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		for d := range gradW {
			gradW[d] = 0
		}
		gradB := 0.0
		for i, x := range features {
			err := m.Proba(x) - labels[i]
			for d, v := range x {
				gradW[d] += err * float64(v)
			}
			gradB += err
		}
		maxStep := 0.0
		for d := range m.weights {
			step := opts.LearningRate * gradW[d] / n
			m.weights[d] -= step
			if s := math.Abs(step); s > maxStep {
				maxStep = s
			}
		}
		step := opts.LearningRate * gradB / n
		m.bias -= step
		if s := math.Abs(step); s > maxStep {
			maxStep = s
		}
		if maxStep < convergenceTolerance {
			break
		}
	}
	return m, nil
}

// Dimensions returns the feature dimension the model was fitted on.
func (m *LogisticRegression) Dimensions() int {
	return m.dimensions
}

// Proba returns the predicted probability of label 1.0.
func (m *LogisticRegression) Proba(x []float32) float64 {
	z := m.bias
	for d, v := range x {
		z += m.weights[d] * float64(v)
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// Predict returns the predicted label (0.0 or 1.0) for one feature vector.
func (m *LogisticRegression) Predict(x []float32) float64 {
	if m.Proba(x) >= 0.5 {
		return 1.0
	}
	return 0.0
}

// PredictBatch predicts labels for a set of feature vectors. The model and
// inputs are not mutated.
func (m *LogisticRegression) PredictBatch(features [][]float32) ([]float64, error) {
	if len(features) == 0 {
		return nil, ErrInvalidInput
	}
	out := make([]float64, len(features))
	for i, x := range features {
		if len(x) != m.dimensions {
			return nil, ErrInvalidInput
		}
		out[i] = m.Predict(x)
	}
	return out, nil
}
