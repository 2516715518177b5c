package domain

import "fmt"

// ChunkType identifies the segmentation strategy that produced a chunk.
type ChunkType string

const (
	ChunkTypeSemantic              ChunkType = "semantic"
	ChunkTypeHierarchicalSection   ChunkType = "hierarchical_section"
	ChunkTypeHierarchicalParagraph ChunkType = "hierarchical_paragraph"
	ChunkTypeTopicBased            ChunkType = "topic_based"
	ChunkTypeSlidingWindow         ChunkType = "sliding_window"
)

// Hierarchy levels for hierarchical chunk types.
const (
	LevelSection   = 1
	LevelParagraph = 2
)

// Entity is a named entity extracted from a chunk's text.
type Entity struct {
	Text        string
	Label       string
	Description string
}

// Chunk represents a contiguous span of a source document after segmentation.
// It is the unit of graph construction and retrieval. Chunks are immutable
// after the chunker returns them.
type Chunk struct {
	ID            string
	Text          string
	Type          ChunkType
	Level         int    // LevelSection or LevelParagraph for hierarchical types, 0 otherwise
	ParentID      string // ID of the owning section chunk for paragraph chunks
	TokenCount    int
	SentenceCount int
	Entities      []Entity
	Keywords      []string
	TopicID       *int     // cluster id, topic-based chunks only
	TopicKeywords []string // cluster-level terms, topic-based chunks only
}

// NewChunk creates a Chunk with non-nil entity and keyword lists.
// Graph construction and retrieval rely on these fields being present.
func NewChunk(id, text string, chunkType ChunkType) Chunk {
	return Chunk{
		ID:       id,
		Text:     text,
		Type:     chunkType,
		Entities: []Entity{},
		Keywords: []string{},
	}
}

// Preview returns the first n runes of the chunk text.
func (c Chunk) Preview(n int) string {
	runes := []rune(c.Text)
	if len(runes) <= n {
		return c.Text
	}
	return string(runes[:n])
}

// EntityTexts returns the entity surface texts used for similarity.
func (c Chunk) EntityTexts() []string {
	out := make([]string, 0, len(c.Entities))
	for _, e := range c.Entities {
		out = append(out, e.Text)
	}
	return out
}

// ValidateChunk validates a Chunk instance.
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}

	if !isValidChunkType(c.Type) {
		return fmt.Errorf("chunk Type is invalid: %s", c.Type)
	}

	if c.Entities == nil {
		return fmt.Errorf("chunk Entities must not be nil")
	}

	if c.Keywords == nil {
		return fmt.Errorf("chunk Keywords must not be nil")
	}

	if c.Type == ChunkTypeHierarchicalParagraph {
		if c.Level != LevelParagraph {
			return fmt.Errorf("paragraph chunk must have level %d, got %d", LevelParagraph, c.Level)
		}
		if c.ParentID == "" {
			return fmt.Errorf("paragraph chunk must reference a parent section")
		}
	}

	if c.Type == ChunkTypeHierarchicalSection && c.Level != LevelSection {
		return fmt.Errorf("section chunk must have level %d, got %d", LevelSection, c.Level)
	}

	if c.ParentID != "" && c.Type != ChunkTypeHierarchicalParagraph {
		return fmt.Errorf("only paragraph chunks may reference a parent section")
	}

	return nil
}

// isValidChunkType checks if a ChunkType is valid
func isValidChunkType(t ChunkType) bool {
	switch t {
	case ChunkTypeSemantic, ChunkTypeHierarchicalSection,
		ChunkTypeHierarchicalParagraph, ChunkTypeTopicBased,
		ChunkTypeSlidingWindow:
		return true
	}
	return false
}
