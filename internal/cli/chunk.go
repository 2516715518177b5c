package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/textgraph/internal/chunker"
	"github.com/cloo-solutions/textgraph/internal/domain"
)

// chunkView is the JSON presentation of a chunk.
type chunkView struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Level         int      `json:"level,omitempty"`
	ParentID      string   `json:"parent_id,omitempty"`
	TokenCount    int      `json:"token_count"`
	SentenceCount int      `json:"sentence_count"`
	Keywords      []string `json:"keywords"`
	Entities      []string `json:"entities"`
	TopicID       *int     `json:"topic_id,omitempty"`
	TopicKeywords []string `json:"topic_keywords,omitempty"`
	Text          string   `json:"text"`
}

func toChunkView(c domain.Chunk) chunkView {
	return chunkView{
		ID:            c.ID,
		Type:          string(c.Type),
		Level:         c.Level,
		ParentID:      c.ParentID,
		TokenCount:    c.TokenCount,
		SentenceCount: c.SentenceCount,
		Keywords:      c.Keywords,
		Entities:      c.EntityTexts(),
		TopicID:       c.TopicID,
		TopicKeywords: c.TopicKeywords,
		Text:          c.Text,
	}
}

// ChunkCmd creates the chunk command.
func ChunkCmd() *cobra.Command {
	var (
		strategy   string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "chunk <file>",
		Short: "Chunk a document",
		Long:  "Segments a document into chunks under the selected strategy and prints them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunk(cmd.Context(), args[0], strategy, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Chunking strategy (semantic, hierarchical, topic_based, sliding_window)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output JSON")

	return cmd
}

func runChunk(ctx context.Context, path, strategy string, outputJSON bool) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.shutdown()

	if strategy == "" {
		strategy = p.cfg.Strategy
	}

	src, err := loadDocument(path)
	if err != nil {
		return err
	}

	doc, err := p.docs.Process(ctx, src, chunker.Strategy(strategy))
	if err != nil {
		return fmt.Errorf("process document: %w", err)
	}

	if outputJSON {
		views := make([]chunkView, len(doc.Chunks))
		for i, c := range doc.Chunks {
			views[i] = toChunkView(c)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	for i, c := range doc.Chunks {
		fmt.Printf("--- chunk %d (%s", i+1, c.Type)
		if c.Level > 0 {
			fmt.Printf(", level %d", c.Level)
		}
		fmt.Printf(", %d tokens)\n%s\n\n", c.TokenCount, c.Text)
	}
	fmt.Printf("%d chunks\n", len(doc.Chunks))
	return nil
}
