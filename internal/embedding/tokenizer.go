// Package embedding trains word-embedding models on a tokenized corpus and
// turns texts into fixed-dimension feature vectors by mean pooling.
package embedding

import "strings"

// Tokenize lower-cases text and splits it on whitespace. No stemming or
// stopword removal happens here; the embedding model learns token statistics
// from the raw stream.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// HashToken returns a deterministic non-negative hash of a token, used by the
// hashing vectorizer to map tokens to feature indices.
func HashToken(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
