// Package chunker segments documents into retrieval chunks under one of
// four strategies: semantic, hierarchical, topic-based and sliding-window.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/extract"
)

// Strategy selects how a document is segmented.
type Strategy string

const (
	StrategySemantic      Strategy = "semantic"
	StrategyHierarchical  Strategy = "hierarchical"
	StrategyTopicBased    Strategy = "topic_based"
	StrategySlidingWindow Strategy = "sliding_window"
)

// Config controls chunking behavior.
type Config struct {
	// MaxChunkTokens is the token budget for semantic chunks. A single
	// sentence over the budget still becomes its own chunk; sentences are
	// never split mid-way.
	MaxChunkTokens int

	// MinParagraphChars drops hierarchical paragraphs below this length
	// as noise.
	MinParagraphChars int

	// MinTopicSentences is the sentence count below which topic-based
	// chunking downgrades to semantic.
	MinTopicSentences int

	Window WindowConfig
}

// DefaultConfig provides sane defaults for chunking.
func DefaultConfig() Config {
	return Config{
		MaxChunkTokens:    500,
		MinParagraphChars: 50,
		MinTopicSentences: 10,
		Window:            DefaultWindowConfig(),
	}
}

// Chunker segments documents. It holds no per-call state and is safe to
// use concurrently across documents.
type Chunker struct {
	extractor *extract.Extractor
	cfg       Config
}

// New creates a Chunker with default configuration.
func New(extractor *extract.Extractor) *Chunker {
	return NewWithConfig(extractor, DefaultConfig())
}

// NewWithConfig creates a Chunker with explicit configuration.
func NewWithConfig(extractor *extract.Extractor, cfg Config) *Chunker {
	if cfg.MaxChunkTokens <= 0 {
		cfg.MaxChunkTokens = 500
	}
	if cfg.MinParagraphChars <= 0 {
		cfg.MinParagraphChars = 50
	}
	if cfg.MinTopicSentences <= 0 {
		cfg.MinTopicSentences = 10
	}
	return &Chunker{extractor: extractor, cfg: cfg}
}

// Chunk segments a document under the given strategy. An unknown strategy
// falls back to the sliding window so ingestion always gets a usable
// result. Empty documents yield an empty chunk list, not an error; errors
// from the NLP pipeline propagate unmodified.
func (c *Chunker) Chunk(text string, strategy Strategy) ([]domain.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Chunk{}, nil
	}

	switch strategy {
	case StrategySemantic:
		return c.chunkSemantic(text)
	case StrategyHierarchical:
		return c.chunkHierarchical(text)
	case StrategyTopicBased:
		return c.chunkTopicBased(text)
	case StrategySlidingWindow:
		return c.chunkSlidingWindow(text)
	default:
		return c.chunkSlidingWindow(text)
	}
}

// newChunk allocates a chunk and annotates it with entities, keywords and
// size metrics over its full text.
func (c *Chunker) newChunk(text string, chunkType domain.ChunkType) (domain.Chunk, error) {
	chunk := domain.NewChunk(uuid.NewString(), text, chunkType)

	entities, err := c.extractor.ExtractEntities(text)
	if err != nil {
		return domain.Chunk{}, err
	}
	keywords, err := c.extractor.ExtractKeywords(text, extract.DefaultMaxKeywords)
	if err != nil {
		return domain.Chunk{}, err
	}
	sentences, err := c.extractor.SplitSentences(text)
	if err != nil {
		return domain.Chunk{}, err
	}

	chunk.Entities = entities
	chunk.Keywords = keywords
	chunk.TokenCount = CountTokens(text)
	chunk.SentenceCount = len(sentences)
	return chunk, nil
}
