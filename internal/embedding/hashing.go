package embedding

import "github.com/4zj9/pairbench/pkg/utils"

// HashingVectorizer maps texts to fixed-dimension bag-of-words vectors by
// feature hashing. Unlike a trained Model it needs no fitting pass, which
// makes it a cheap baseline to compare trained embeddings against.
type HashingVectorizer struct {
	dimensions int
}

// NewHashingVectorizer creates a vectorizer with the given dimension.
func NewHashingVectorizer(dimensions int) *HashingVectorizer {
	if dimensions <= 0 {
		dimensions = 100
	}
	return &HashingVectorizer{dimensions: dimensions}
}

// Dimensions returns the vector dimension.
func (h *HashingVectorizer) Dimensions() int {
	return h.dimensions
}

// Vectorize hashes each token into a bucket and L2-normalizes the counts.
// Empty text yields the zero vector.
func (h *HashingVectorizer) Vectorize(text string) []float32 {
	out := make([]float32, h.dimensions)
	for _, token := range Tokenize(text) {
		out[HashToken(token)%h.dimensions]++
	}
	utils.NormalizeL2(out)
	return out
}
