package chunker

import (
	"strings"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// section is one `#`-headed span of the document before chunk allocation.
type section struct {
	title string
	body  string
}

// chunkHierarchical splits the document into sections on `#`-style header
// lines; each section becomes a level-1 chunk. Section bodies split on
// blank lines into level-2 paragraph chunks carrying a back-reference to
// their section. Paragraphs below the configured minimum length are
// dropped as noise.
func (c *Chunker) chunkHierarchical(text string) ([]domain.Chunk, error) {
	sections := splitSections(text)

	var chunks []domain.Chunk
	for _, sec := range sections {
		sectionText := sec.title
		if sec.body != "" {
			if sectionText != "" {
				sectionText += "\n\n"
			}
			sectionText += sec.body
		}
		if sectionText == "" {
			continue
		}

		secChunk, err := c.newChunk(sectionText, domain.ChunkTypeHierarchicalSection)
		if err != nil {
			return nil, err
		}
		secChunk.Level = domain.LevelSection
		chunks = append(chunks, secChunk)

		for _, para := range splitParagraphs(sec.body) {
			if len(para) < c.cfg.MinParagraphChars {
				continue
			}
			paraChunk, err := c.newChunk(para, domain.ChunkTypeHierarchicalParagraph)
			if err != nil {
				return nil, err
			}
			paraChunk.Level = domain.LevelParagraph
			paraChunk.ParentID = secChunk.ID
			chunks = append(chunks, paraChunk)
		}
	}

	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	return chunks, nil
}

// splitSections splits on leading `#` header lines. Content before the
// first header becomes a headerless section when non-empty.
func splitSections(text string) []section {
	var sections []section
	current := section{}
	var body []string

	finalize := func() {
		current.body = strings.TrimSpace(strings.Join(body, "\n"))
		if current.title != "" || current.body != "" {
			sections = append(sections, current)
		}
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			finalize()
			current = section{title: strings.TrimSpace(strings.TrimLeft(trimmed, "#"))}
			continue
		}
		body = append(body, line)
	}
	finalize()

	return sections
}

// splitParagraphs splits a section body on blank-line boundaries.
func splitParagraphs(body string) []string {
	var paragraphs []string
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}
