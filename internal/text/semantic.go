package text

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Chunk is a contiguous semantic unit of the input text. A slice of Chunks
// preserves original document order.
type Chunk struct {
	Content string
	Index   int
	Tokens  int
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticSplitter cuts text where adjacent sentence embeddings diverge.
// Boundaries land on cosine-distance outliers above the configured
// percentile, so chunk sizes follow topic shifts rather than a fixed width.
type SemanticSplitter struct {
	embedder             Embedder
	breakpointPercentile float64
	maxChunkTokens       int
	countTokens          func(string) int
}

type SplitterOption func(*SemanticSplitter)

func WithBreakpointPercentile(p float64) SplitterOption {
	return func(s *SemanticSplitter) { s.breakpointPercentile = p }
}

func WithMaxChunkTokens(n int) SplitterOption {
	return func(s *SemanticSplitter) { s.maxChunkTokens = n }
}

// WithTokenCounter overrides the cl100k_base tokenizer, mainly for tests.
func WithTokenCounter(f func(string) int) SplitterOption {
	return func(s *SemanticSplitter) { s.countTokens = f }
}

func NewSemanticSplitter(embedder Embedder, opts ...SplitterOption) (*SemanticSplitter, error) {
	s := &SemanticSplitter{
		embedder:             embedder,
		breakpointPercentile: 95,
		maxChunkTokens:       2000,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.countTokens == nil {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("load tokenizer: %w", err)
		}
		s.countTokens = func(text string) int {
			return len(enc.Encode(text, nil, nil))
		}
	}
	return s, nil
}

// Split produces ordered, non-empty chunks covering the input without
// reordering. Inputs with a single sentence skip embedding entirely.
func (s *SemanticSplitter) Split(ctx context.Context, text string) ([]Chunk, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty input text")
	}

	sentences := SplitSentences(trimmed)
	if len(sentences) <= 1 {
		return []Chunk{{Content: trimmed, Index: 0, Tokens: s.countTokens(trimmed)}}, nil
	}

	embeddings := make([][]float32, len(sentences))
	for i, sentence := range sentences {
		vec, err := s.embedder.Embed(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("embed sentence %d: %w", i, err)
		}
		embeddings[i] = vec
	}

	distances := make([]float64, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		sim, err := CosineSimilarity(embeddings[i], embeddings[i+1])
		if err != nil {
			return nil, fmt.Errorf("distance at sentence %d: %w", i, err)
		}
		distances[i] = 1 - sim
	}

	threshold := percentile(distances, s.breakpointPercentile)

	var chunks []Chunk
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		content := strings.Join(current, " ")
		chunks = append(chunks, Chunk{Content: content, Index: len(chunks), Tokens: currentTokens})
		current = current[:0]
		currentTokens = 0
	}

	for i, sentence := range sentences {
		tokens := s.countTokens(sentence)
		if currentTokens > 0 && currentTokens+tokens > s.maxChunkTokens {
			flush()
		}
		current = append(current, sentence)
		currentTokens += tokens

		if i < len(distances) && distances[i] > threshold {
			flush()
		}
	}
	flush()

	return chunks, nil
}

// percentile returns the p-th percentile of values with linear
// interpolation between ranks, so an outlier distance still clears a high
// threshold.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, errors.New("mismatched vector lengths")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
