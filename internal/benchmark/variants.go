// Package benchmark sequences load → vectorize → fit → evaluate for each
// configured model variant and accumulates a comparison table.
package benchmark

import (
	"fmt"

	"github.com/4zj9/pairbench/internal/classifier"
	"github.com/4zj9/pairbench/internal/embedding"
)

// Variant identifies one vectorizer + classifier pairing.
type Variant string

const (
	// VariantEmbeddingLinear trains a skip-gram embedding model on the
	// training texts, mean-pools token vectors, and fits logistic regression.
	VariantEmbeddingLinear Variant = "embedding-linear"
	// VariantHashingLinear hashes bag-of-words features and fits logistic
	// regression. No vectorizer training pass; serves as the baseline.
	VariantHashingLinear Variant = "hashing-linear"
)

// ParseVariant converts a config name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case VariantEmbeddingLinear, VariantHashingLinear:
		return Variant(name), nil
	}
	return "", fmt.Errorf("unknown variant %q", name)
}

// VariantConfig is the full configuration of one variant. Each variant run
// gets its own config; nothing is shared or reconfigured between variants.
type VariantConfig struct {
	Variant    Variant
	Embedding  embedding.Options
	Classifier classifier.Options
}
