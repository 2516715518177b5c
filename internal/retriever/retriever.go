// Package retriever implements multi-level retrieval over a chunk set:
// direct similarity search, graph-neighbor expansion and hierarchical
// context augmentation, in that order.
package retriever

import (
	"context"
	"sort"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/graph"
)

// Scored pairs a chunk with its query similarity.
type Scored struct {
	Chunk domain.Chunk
	Score float64
}

// DirectSearcher scores chunks against a query for the direct-search
// stage, returning up to limit results ordered by score descending; a
// negative limit returns every chunk scored. The default is lexical word
// overlap; production deployments substitute an embedding-backed searcher.
type DirectSearcher interface {
	Search(ctx context.Context, query string, chunks []domain.Chunk, limit int) ([]Scored, error)
}

// Config controls retrieval behavior.
type Config struct {
	// TopK is the default result size when the caller passes topK <= 0.
	TopK int

	// NeighborsPerSeed caps how many graph neighbors each seed chunk may
	// pull into the candidate set.
	NeighborsPerSeed int
}

// DefaultConfig returns the default retrieval configuration.
func DefaultConfig() Config {
	return Config{
		TopK:             5,
		NeighborsPerSeed: 2,
	}
}

// Retriever performs multi-level retrieval. It holds no per-call state and
// is safe for concurrent use across documents.
type Retriever struct {
	searcher DirectSearcher
	cfg      Config
}

// New creates a Retriever using the lexical word-overlap baseline.
func New() *Retriever {
	return NewWithSearcher(LexicalSearcher{}, DefaultConfig())
}

// NewWithSearcher creates a Retriever with an explicit direct-search stage
// and configuration.
func NewWithSearcher(searcher DirectSearcher, cfg Config) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.NeighborsPerSeed <= 0 {
		cfg.NeighborsPerSeed = 2
	}
	return &Retriever{searcher: searcher, cfg: cfg}
}

// candidate tracks a chunk through the three stages. Score starts at the
// chunk's direct query similarity and can only be raised by later stages.
type candidate struct {
	chunk domain.Chunk
	score float64
	pos   int
}

// Retrieve returns up to topK chunks for the query in three stages:
//
//  1. Direct search seeds the candidate set with the topK most similar
//     chunks.
//  2. For each seed, up to NeighborsPerSeed highest-weight graph
//     neighbors join the candidates, scored by edge weight times the seed
//     score when that beats their own direct score. This recovers content
//     direct search missed through vocabulary mismatch.
//  3. The parent section of any candidate paragraph joins at its child's
//     score, so a retrieved paragraph carries its section's framing.
//     Parent-ward only; sections do not pull in their children.
//
// The final ranking is truncated to topK, so expansion can displace
// weaker direct matches but the caller never receives more than topK
// chunks. An empty chunk list yields an empty result; a nil graph skips
// expansion.
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []domain.Chunk, g *graph.Graph, topK int) ([]domain.Chunk, error) {
	if topK <= 0 {
		topK = r.cfg.TopK
	}
	if len(chunks) == 0 {
		return []domain.Chunk{}, nil
	}

	ranked, err := r.searcher.Search(ctx, query, chunks, -1)
	if err != nil {
		return nil, err
	}

	directScore := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		directScore[s.Chunk.ID] = s.Score
	}

	seeds := ranked
	if len(seeds) > topK {
		seeds = seeds[:topK]
	}

	candidates := make(map[string]*candidate, len(seeds)*2)
	order := 0
	add := func(c domain.Chunk, score float64) bool {
		if existing, ok := candidates[c.ID]; ok {
			if score > existing.score {
				existing.score = score
			}
			return false
		}
		candidates[c.ID] = &candidate{chunk: c, score: score, pos: order}
		order++
		return true
	}

	for _, s := range seeds {
		add(s.Chunk, s.Score)
	}

	if g != nil {
		byID := make(map[string]domain.Chunk, len(chunks))
		for _, c := range chunks {
			byID[c.ID] = c
		}
		for _, s := range seeds {
			added := 0
			for _, nb := range g.Neighbors(s.Chunk.ID) {
				if added >= r.cfg.NeighborsPerSeed {
					break
				}
				c, ok := byID[nb.ChunkID]
				if !ok {
					continue
				}
				score := nb.Weight * s.Score
				if direct := directScore[c.ID]; direct > score {
					score = direct
				}
				if add(c, score) {
					added++
				}
			}
		}
	}

	sections := make(map[string]domain.Chunk)
	for _, c := range chunks {
		if c.Type == domain.ChunkTypeHierarchicalSection {
			sections[c.ID] = c
		}
	}
	for _, cand := range snapshot(candidates) {
		if cand.chunk.Type != domain.ChunkTypeHierarchicalParagraph || cand.chunk.ParentID == "" {
			continue
		}
		if parent, ok := sections[cand.chunk.ParentID]; ok {
			add(parent, cand.score)
		}
	}

	final := snapshot(candidates)
	sort.Slice(final, func(i, j int) bool {
		if final[i].score != final[j].score {
			return final[i].score > final[j].score
		}
		return final[i].pos < final[j].pos
	})
	if len(final) > topK {
		final = final[:topK]
	}

	out := make([]domain.Chunk, len(final))
	for i, cand := range final {
		out[i] = cand.chunk
	}
	return out, nil
}

// snapshot returns the candidate set ordered by insertion.
func snapshot(candidates map[string]*candidate) []*candidate {
	out := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}
