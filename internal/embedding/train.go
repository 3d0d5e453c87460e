package embedding

import (
	"errors"
	"math"
	"math/rand"
)

// ErrEmptyCorpus is returned when training sees no token that satisfies the
// minimum count.
var ErrEmptyCorpus = errors.New("embedding: no tokens above min count in training corpus")

// Options configure embedding training. Zero values take defaults.
type Options struct {
	Dimensions      int     // vector dimension (default 100)
	Window          int     // context window to each side (default 5)
	MinCount        int     // minimum token frequency (default 1)
	Epochs          int     // passes over the corpus (default 3)
	NegativeSamples int     // negative samples per context pair (default 5)
	LearningRate    float64 // SGD step size (default 0.025)
	Seed            int64   // RNG seed; fixed seed gives a reproducible model (default 1)
}

func (o Options) withDefaults() Options {
	if o.Dimensions <= 0 {
		o.Dimensions = 100
	}
	if o.Window <= 0 {
		o.Window = 5
	}
	if o.MinCount <= 0 {
		o.MinCount = 1
	}
	if o.Epochs <= 0 {
		o.Epochs = 3
	}
	if o.NegativeSamples <= 0 {
		o.NegativeSamples = 5
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.025
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Train fits a skip-gram embedding model with negative sampling on the given
// texts. Only these texts influence the model: tokens, counts, and vectors
// are all derived here, so mutating the inputs afterwards cannot change the
// trained model. Training is deterministic for a fixed seed.
func Train(texts []string, opts Options) (*Model, error) {
	opts = opts.withDefaults()

	// Vocabulary in first-appearance order, so iteration is reproducible.
	counts := make(map[string]int)
	var order []string
	sentences := make([][]string, 0, len(texts))
	for _, text := range texts {
		tokens := Tokenize(text)
		if len(tokens) == 0 {
			continue
		}
		sentences = append(sentences, tokens)
		for _, tok := range tokens {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	var vocab []string
	index := make(map[string]int)
	for _, tok := range order {
		if counts[tok] >= opts.MinCount {
			index[tok] = len(vocab)
			vocab = append(vocab, tok)
		}
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyCorpus
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	in := randomMatrix(rng, len(vocab), opts.Dimensions)
	out := zeroMatrix(len(vocab), opts.Dimensions)
	table := negativeSamplingTable(vocab, counts)

	work := make([]float32, opts.Dimensions)
	lr := float32(opts.LearningRate)
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for _, sent := range sentences {
			ids := make([]int, 0, len(sent))
			for _, tok := range sent {
				if id, ok := index[tok]; ok {
					ids = append(ids, id)
				}
			}
			for i, center := range ids {
				lo := i - opts.Window
				if lo < 0 {
					lo = 0
				}
				hi := i + opts.Window
				if hi >= len(ids) {
					hi = len(ids) - 1
				}
				for j := lo; j <= hi; j++ {
					if j == i {
						continue
					}
					trainPair(in, out, center, ids[j], opts.NegativeSamples, lr, table, rng, work)
				}
			}
		}
	}

	vectors := make(map[string][]float32, len(vocab))
	for tok, id := range index {
		vectors[tok] = in[id]
	}
	return &Model{
		dimensions: opts.Dimensions,
		vectors:    vectors,
		vocabulary: vocab,
	}, nil
}

// trainPair applies one SGD step for a (center, context) pair: one positive
// update plus k sampled negatives.
func trainPair(in, out [][]float32, center, target, negatives int, lr float32, table []int, rng *rand.Rand, work []float32) {
	for d := range work {
		work[d] = 0
	}
	for k := 0; k <= negatives; k++ {
		tgt := target
		var label float32 = 1
		if k > 0 {
			tgt = table[rng.Intn(len(table))]
			if tgt == target {
				continue
			}
			label = 0
		}
		var dot float64
		for d := range in[center] {
			dot += float64(in[center][d] * out[tgt][d])
		}
		g := (label - sigmoid(dot)) * lr
		for d := range in[center] {
			work[d] += g * out[tgt][d]
			out[tgt][d] += g * in[center][d]
		}
	}
	for d := range in[center] {
		in[center][d] += work[d]
	}
}

func sigmoid(x float64) float32 {
	return float32(1.0 / (1.0 + math.Exp(-x)))
}

// negativeSamplingTable draws negatives proportionally to count^0.75, the
// usual smoothed unigram distribution.
func negativeSamplingTable(vocab []string, counts map[string]int) []int {
	const tableSize = 1 << 16
	weights := make([]float64, len(vocab))
	var total float64
	for i, tok := range vocab {
		weights[i] = math.Pow(float64(counts[tok]), 0.75)
		total += weights[i]
	}
	table := make([]int, 0, tableSize)
	for i := range vocab {
		n := int(weights[i] / total * tableSize)
		if n < 1 {
			n = 1
		}
		for j := 0; j < n; j++ {
			table = append(table, i)
		}
	}
	return table
}

func randomMatrix(rng *rand.Rand, rows, cols int) [][]float32 {
	m := make([][]float32, rows)
	for i := range m {
		m[i] = make([]float32, cols)
		for j := range m[i] {
			m[i][j] = (rng.Float32() - 0.5) / float32(cols)
		}
	}
	return m
}

func zeroMatrix(rows, cols int) [][]float32 {
	m := make([][]float32, rows)
	for i := range m {
		m[i] = make([]float32, cols)
	}
	return m
}
