package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/textgraph/internal/chunker"
)

// edgeView is the JSON presentation of a graph edge.
type edgeView struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// GraphCmd creates the graph command.
func GraphCmd() *cobra.Command {
	var (
		strategy   string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Build the knowledge graph for a document",
		Long:  "Chunks a document, builds the chunk knowledge graph and prints its edges.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), args[0], strategy, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Chunking strategy")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output JSON")

	return cmd
}

func runGraph(ctx context.Context, path, strategy string, outputJSON bool) error {
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

	edges := doc.Graph.Edges()

	if outputJSON {
		views := make([]edgeView, len(edges))
		for i, e := range edges {
			views[i] = edgeView{A: e.A, B: e.B, Weight: e.Weight}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	fmt.Printf("%d nodes, %d edges\n", doc.Graph.Order(), doc.Graph.Size())
	for _, e := range edges {
		a, _ := doc.Graph.Node(e.A)
		b, _ := doc.Graph.Node(e.B)
		fmt.Printf("%.3f  %q <-> %q\n", e.Weight, a.Preview, b.Preview)
	}
	return nil
}
