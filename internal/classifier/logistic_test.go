package classifier

import "testing"

func TestFit_SeparableData(t *testing.T) {
	// Label 1 when the first feature dominates.
	features := [][]float32{
		{1, 0}, {0.9, 0.1}, {0.8, 0.2},
		{0, 1}, {0.1, 0.9}, {0.2, 0.8},
	}
	labels := []float64{1, 1, 1, 0, 0, 0}
	m, err := Fit(features, labels, Options{MaxIterations: 500, LearningRate: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range features {
		if got := m.Predict(x); got != labels[i] {
			t.Errorf("Predict(%v) = %v, want %v", x, got, labels[i])
		}
	}
}

func TestFit_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		features [][]float32
		labels   []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", [][]float32{{1}}, []float64{1, 0}},
		{"zero-dimension features", [][]float32{{}}, []float64{1}},
		{"ragged features", [][]float32{{1, 2}, {1}}, []float64{1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Fit(tc.features, tc.labels, Options{}); err != ErrInvalidInput {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestProba_Bounds(t *testing.T) {
	m, err := Fit([][]float32{{1}, {0}}, []float64{1, 0}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range [][]float32{{-100}, {0}, {100}} {
		p := m.Proba(x)
		if p < 0 || p > 1 {
			t.Errorf("Proba(%v) = %v, out of [0,1]", x, p)
		}
	}
}

func TestPredictBatch(t *testing.T) {
	m, err := Fit([][]float32{{1, 0}, {0, 1}}, []float64{1, 0}, Options{MaxIterations: 200, LearningRate: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	preds, err := m.PredictBatch([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 2 {
		t.Fatalf("len = %d", len(preds))
	}
	for _, p := range preds {
		if p != 0.0 && p != 1.0 {
			t.Errorf("prediction %v is not a hard label", p)
		}
	}

	if _, err := m.PredictBatch(nil); err != ErrInvalidInput {
		t.Errorf("empty batch: err = %v, want ErrInvalidInput", err)
	}
	if _, err := m.PredictBatch([][]float32{{1}}); err != ErrInvalidInput {
		t.Errorf("dimension mismatch: err = %v, want ErrInvalidInput", err)
	}
}
