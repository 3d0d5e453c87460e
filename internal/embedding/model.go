package embedding

// Model maps vocabulary tokens to dense vectors of a fixed dimension.
// It is immutable after training and safe for concurrent lookups; it must not
// be retrained mid-benchmark, or features vectorized earlier would no longer
// match the model.
type Model struct {
	dimensions int
	vectors    map[string][]float32
	vocabulary []string // training-corpus order
}

// Dimensions returns the vector dimension.
func (m *Model) Dimensions() int {
	return m.dimensions
}

// VocabularySize returns the number of tokens in the vocabulary.
func (m *Model) VocabularySize() int {
	return len(m.vocabulary)
}

// Vocabulary returns the vocabulary tokens in training-corpus order.
func (m *Model) Vocabulary() []string {
	return append([]string(nil), m.vocabulary...)
}

// InVocabulary reports whether token has a vector.
func (m *Model) InVocabulary(token string) bool {
	_, ok := m.vectors[token]
	return ok
}

// Vector returns a copy of the vector for token, or false if out of vocabulary.
func (m *Model) Vector(token string) ([]float32, bool) {
	v, ok := m.vectors[token]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), v...), true
}

// Vectorize tokenizes text and returns the element-wise mean of the vectors
// of in-vocabulary tokens. Out-of-vocabulary tokens are ignored; when no
// token is in vocabulary (or the text is empty) the zero vector of the model
// dimension is returned. Deterministic for a fixed model.
func (m *Model) Vectorize(text string) []float32 {
	out := make([]float32, m.dimensions)
	found := 0
	for _, token := range Tokenize(text) {
		vec, ok := m.vectors[token]
		if !ok {
			continue
		}
		for i, v := range vec {
			out[i] += v
		}
		found++
	}
	if found > 0 {
		inv := 1.0 / float32(found)
		for i := range out {
			out[i] *= inv
		}
	}
	return out
}
