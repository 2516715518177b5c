package retriever

import (
	"context"
	"sort"
	"strings"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// LexicalSearcher is the baseline direct-search stage: word-overlap
// Jaccard on lower-cased whitespace-tokenized word sets. It needs no
// embedding index and is the fallback contract when none is available.
type LexicalSearcher struct{}

// Search implements DirectSearcher.
func (LexicalSearcher) Search(_ context.Context, query string, chunks []domain.Chunk, limit int) ([]Scored, error) {
	queryWords := wordSet(query)

	scored := make([]Scored, len(chunks))
	for i, c := range chunks {
		scored[i] = Scored{Chunk: c, Score: wordJaccard(queryWords, wordSet(c.Text))}
	}

	// Stable sort keeps source order on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func wordJaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
