package embedding

import (
	"hash/fnv"
	"math"
)

const fakeDimensions = 768

// FakeProvider produces deterministic pseudo-embeddings without network
// access. Identical inputs map to identical vectors, so similarity search
// remains stable across test runs.
type FakeProvider struct{}

func NewFakeProvider() EmbeddingProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	values := make([]float32, fakeDimensions)
	var norm float64
	for i := range values {
		// xorshift64 keeps the sequence reproducible per seed
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		v := float64(int64(seed%2000)-1000) / 1000.0
		values[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] = float32(float64(values[i]) / norm)
		}
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: values},
	}, nil
}
