// Package index provides an in-memory vector index over a document's
// chunks, used as the embedding-backed direct-search stage of retrieval.
package index

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/philippgille/chromem-go"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/retriever"
)

// Index holds one document's chunk embeddings. Like the knowledge graph,
// it is built once per chunk-set snapshot and rebuilt wholesale when the
// chunk set changes.
type Index struct {
	coll  *chromem.Collection
	count int
}

// New embeds the chunks into a fresh collection. The embedding function is
// typically openai.Client.EmbeddingFunc, but any chromem.EmbeddingFunc
// works.
func New(ctx context.Context, documentID string, chunks []domain.Chunk, embed chromem.EmbeddingFunc) (*Index, error) {
	db := chromem.NewDB()
	coll, err := db.CreateCollection("chunks-"+documentID, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, chromem.Document{
			ID:      c.ID,
			Content: c.Text,
			Metadata: map[string]string{
				"chunk_type": string(c.Type),
			},
		})
	}

	if len(docs) > 0 {
		if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
	}

	return &Index{coll: coll, count: len(docs)}, nil
}

// Search implements retriever.DirectSearcher. Chunks absent from the
// index score zero, so the retriever can re-rank candidate subsets that
// were produced by graph expansion.
func (ix *Index) Search(ctx context.Context, query string, chunks []domain.Chunk, limit int) ([]retriever.Scored, error) {
	if len(chunks) == 0 {
		return []retriever.Scored{}, nil
	}
	if ix.count == 0 {
		return []retriever.Scored{}, nil
	}

	results, err := ix.coll.Query(ctx, query, ix.count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	similarity := make(map[string]float64, len(results))
	for _, r := range results {
		similarity[r.ID] = float64(r.Similarity)
	}

	scored := make([]retriever.Scored, len(chunks))
	for i, c := range chunks {
		scored[i] = retriever.Scored{Chunk: c, Score: similarity[c.ID]}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
