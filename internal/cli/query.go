package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/textgraph/internal/chunker"
)

// queryResultView is the JSON presentation of a query result.
type queryResultView struct {
	Chunks  []chunkView `json:"chunks"`
	Context string      `json:"context"`
}

// QueryCmd creates the query command.
func QueryCmd() *cobra.Command {
	var (
		strategy   string
		topK       int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query <file> <query>",
		Short: "Query a document",
		Long:  "Chunks a document, builds its knowledge graph and runs multi-level retrieval for the query.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), args[0], args[1], strategy, topK, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Chunking strategy")
	cmd.Flags().IntVarP(&topK, "top-k", "n", 0, "Maximum number of results")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output JSON")

	return cmd
}

func runQuery(ctx context.Context, path, query, strategy string, topK int, outputJSON bool) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.shutdown()

	if strategy == "" {
		strategy = p.cfg.Strategy
	}
	if topK > 0 {
		p.cfg.TopK = topK
	}

	src, err := loadDocument(path)
	if err != nil {
		return err
	}

	doc, err := p.docs.Process(ctx, src, chunker.Strategy(strategy))
	if err != nil {
		return fmt.Errorf("process document: %w", err)
	}

	out, err := p.queryService(doc).Query(ctx, query, doc)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if outputJSON {
		view := queryResultView{
			Chunks:  make([]chunkView, len(out.Chunks)),
			Context: out.Context,
		}
		for i, c := range out.Chunks {
			view.Chunks[i] = toChunkView(c)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if len(out.Chunks) == 0 {
		fmt.Println("no relevant context found")
		return nil
	}

	for i, c := range out.Chunks {
		fmt.Printf("--- result %d (%s)\n%s\n\n", i+1, c.Type, c.Text)
	}
	return nil
}
