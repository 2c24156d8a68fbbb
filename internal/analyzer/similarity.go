package analyzer

import (
	"math"
	"strings"
)

// Similarity scores how semantically close two texts are, on a 0-1 scale.
// The production path may plug in an embedding-backed implementation; the
// default keeps the core offline and deterministic.
type Similarity interface {
	Score(a, b string) (float64, error)
}

// LexicalSimilarity is the default Similarity: cosine similarity over token
// frequency vectors. Crude next to an embedding model, but it never needs a
// network and behaves sensibly for the last-resort fallback it serves.
type LexicalSimilarity struct{}

func (LexicalSimilarity) Score(a, b string) (float64, error) {
	va := tokenFrequencies(a)
	vb := tokenFrequencies(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil
	}

	var dot, normA, normB float64
	for tok, na := range va {
		normA += float64(na * na)
		if nb, ok := vb[tok]; ok {
			dot += float64(na * nb)
		}
	}
	for _, nb := range vb {
		normB += float64(nb * nb)
	}

	if dot == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func tokenFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?()[]{}'\"")
		if tok == "" {
			continue
		}
		freq[tok]++
	}
	return freq
}
