package cohere

import (
	"math"
	"strings"
)

// LocalEmbedding produces a deterministic pseudo-embedding from text. Each
// word is run through three independent multiplicative hashes, each hash
// selects a vector slot, and the contributions are weighted by trigonometric
// functions of the hash so different words land on distinct directions. The
// result is L2-normalized so cosine scoring behaves the same as with real
// provider vectors.
//
// It is purely computational: same input, same output, and it never fails.
func LocalEmbedding(text string, dim int) []float32 {
	if dim <= 0 {
		return nil
	}

	acc := make([]float64, dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h1, h2, h3 := wordHashes(word)

		acc[int(h1%uint32(dim))] += math.Sin(float64(h1%1000)) * 0.5
		acc[int(h2%uint32(dim))] += math.Cos(float64(h2%1000)) * 0.5
		// Keep the tangent argument under pi/2 so the contribution stays bounded.
		acc[int(h3%uint32(dim))] += math.Tan(float64(h3%150)/100.0) * 0.25
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, dim)
	if norm == 0 {
		// Empty or degenerate input: no direction to normalize.
		return vec
	}
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// wordHashes computes three multiplicative hashes over the word's bytes with
// distinct seeds and multipliers.
func wordHashes(word string) (uint32, uint32, uint32) {
	var h1 uint32 = 17
	var h2 uint32 = 101
	var h3 uint32 = 5381

	for i := 0; i < len(word); i++ {
		c := uint32(word[i])
		h1 = h1*31 + c
		h2 = h2*37 + c
		h3 = h3*41 + c
	}
	return h1, h2, h3
}
