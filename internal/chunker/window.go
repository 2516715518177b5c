package chunker

import (
	"strings"
	"unicode"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// WindowConfig controls the sliding-window fallback strategy.
type WindowConfig struct {
	MaxChars  int
	MinChars  int
	Overlap   int
	MaxChunks int
}

// DefaultWindowConfig provides sane defaults for window chunking.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		MaxChars:  1200,
		MinChars:  400,
		Overlap:   200,
		MaxChunks: 40,
	}
}

// chunkSlidingWindow is the fallback strategy: fixed-size overlapping
// windows over raw text, backing off to word boundaries where possible.
func (c *Chunker) chunkSlidingWindow(text string) ([]domain.Chunk, error) {
	pieces := slideWindows(text, c.cfg.Window)

	chunks := make([]domain.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunk, err := c.newChunk(piece, domain.ChunkTypeSlidingWindow)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func slideWindows(text string, cfg WindowConfig) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultWindowConfig()
	}
	runes := []rune(clean)
	if len(runes) <= cfg.MaxChars {
		return []string{clean}
	}

	windows := make([]string, 0, 8)
	start := 0
	for start < len(runes) {
		if cfg.MaxChunks > 0 && len(windows) >= cfg.MaxChunks {
			break
		}

		end := start + cfg.MaxChars
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			cut := end
			minCut := start + cfg.MinChars
			if minCut > end {
				minCut = start
			}
			for i := end; i > minCut; i-- {
				if unicode.IsSpace(runes[i-1]) {
					cut = i
					break
				}
			}
			end = cut
		}

		if end <= start {
			break
		}

		window := strings.TrimSpace(string(runes[start:end]))
		if window != "" {
			windows = append(windows, window)
		}

		if end >= len(runes) {
			break
		}

		nextStart := end
		if cfg.Overlap > 0 && end-start > cfg.Overlap {
			nextStart = end - cfg.Overlap
		}
		if nextStart <= start {
			nextStart = end
		}
		start = nextStart
	}

	return windows
}
