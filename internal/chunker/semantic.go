package chunker

import (
	"strings"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// chunkSemantic splits the document into sentences and greedily
// accumulates them into chunks under the token budget. A chunk is
// finalized when adding the next sentence would push it over the budget,
// so a single over-budget sentence still becomes its own chunk.
func (c *Chunker) chunkSemantic(text string) ([]domain.Chunk, error) {
	sentences, err := c.extractor.SplitSentences(text)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return []domain.Chunk{}, nil
	}

	chunks := make([]domain.Chunk, 0, 4)
	var current []string
	currentTokens := 0

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		chunk, err := c.newChunk(strings.Join(current, " "), domain.ChunkTypeSemantic)
		if err != nil {
			return err
		}
		chunks = append(chunks, chunk)
		current = nil
		currentTokens = 0
		return nil
	}

	for _, sentence := range sentences {
		tokens := CountTokens(sentence)
		if currentTokens+tokens > c.cfg.MaxChunkTokens && len(current) > 0 {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		current = append(current, sentence)
		currentTokens += tokens
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return chunks, nil
}
