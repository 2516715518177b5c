package graph

import (
	"fmt"
	"strings"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// BuilderConfig controls graph construction.
type BuilderConfig struct {
	// SimilarityThreshold is the edge admission cutoff: an edge exists iff
	// pairwise similarity exceeds it.
	SimilarityThreshold float64

	// PreviewChars is the length of the text preview stored on each node.
	PreviewChars int
}

// DefaultBuilderConfig provides the default construction parameters.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		SimilarityThreshold: 0.3,
		PreviewChars:        100,
	}
}

// Builder constructs knowledge graphs over chunk sets. Construction is
// deterministic: the same chunk list always yields the same edge set.
type Builder struct {
	cfg BuilderConfig
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultBuilderConfig())
}

// NewBuilderWithConfig creates a Builder with explicit configuration.
func NewBuilderWithConfig(cfg BuilderConfig) *Builder {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.3
	}
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = 100
	}
	return &Builder{cfg: cfg}
}

// Build creates a graph with one node per chunk and an edge between every
// chunk pair whose similarity exceeds the threshold. Pairwise comparison
// is O(n²) in chunk count; callers should cap document size upstream.
func (b *Builder) Build(chunks []domain.Chunk) (*Graph, error) {
	g := newGraph()

	for i := range chunks {
		if err := domain.ValidateChunk(&chunks[i]); err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		if _, exists := g.nodes[chunks[i].ID]; exists {
			return nil, fmt.Errorf("duplicate chunk ID: %s", chunks[i].ID)
		}
		g.addNode(&Node{
			id:        int64(i),
			ChunkID:   chunks[i].ID,
			Preview:   chunks[i].Preview(b.cfg.PreviewChars),
			ChunkType: chunks[i].Type,
			Entities:  chunks[i].EntityTexts(),
			Keywords:  append([]string(nil), chunks[i].Keywords...),
		})
	}

	for i := range chunks {
		for j := i + 1; j < len(chunks); j++ {
			sim := Similarity(chunks[i], chunks[j])
			if sim > b.cfg.SimilarityThreshold {
				g.addEdge(chunks[i].ID, chunks[j].ID, sim)
			}
		}
	}

	return g, nil
}

// Similarity scores two chunks as the unweighted mean of their entity-text
// overlap and keyword overlap, each a Jaccard coefficient on lower-cased
// sets. It is symmetric and deterministic.
func Similarity(a, b domain.Chunk) float64 {
	entityOverlap := jaccard(lowerSet(a.EntityTexts()), lowerSet(b.EntityTexts()))
	keywordOverlap := jaccard(lowerSet(a.Keywords), lowerSet(b.Keywords))
	return (entityOverlap + keywordOverlap) / 2
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
