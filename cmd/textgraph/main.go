package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/textgraph/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "textgraph",
		Short: "Hierarchical chunking and knowledge-graph retrieval",
		Long:  "textgraph segments documents into chunks, links them in a knowledge graph and answers queries with multi-level retrieval.",
	}

	rootCmd.AddCommand(cli.ChunkCmd())
	rootCmd.AddCommand(cli.GraphCmd())
	rootCmd.AddCommand(cli.QueryCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
