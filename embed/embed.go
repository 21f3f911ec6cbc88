// Package embed provides the text-embedding interface used for suggestion
// ranking and chatbot matching, plus cosine similarity over the resulting
// vectors. The model itself runs out of process behind an HTTP endpoint.
package embed

import (
	"context"
	"errors"
	"math"
)

// ErrUnavailable is returned when no embedding backend is configured or the
// backend cannot be reached.
var ErrUnavailable = errors.New("embedding model unavailable")

// Embedder turns text into fixed-length vectors.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Cosine returns the cosine similarity of two equal-length vectors.
// Mismatched lengths or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
