package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/textgraph/internal/chunker"
	"github.com/cloo-solutions/textgraph/internal/jobs"
	"github.com/cloo-solutions/textgraph/internal/service"
)

// WatchCmd creates the watch command.
func WatchCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and re-process changed documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], strategy)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Chunking strategy")

	return cmd
}

func runWatch(ctx context.Context, dir, strategy string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.shutdown()

	if strategy == "" {
		strategy = p.cfg.Strategy
	}

	processor := &fileProcessor{
		docs:     p.docs,
		strategy: chunker.Strategy(strategy),
	}

	watcher, err := jobs.NewWatcher(dir, processor)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher.Start(ctx)
	return nil
}

// fileProcessor adapts the document pipeline to the watcher.
type fileProcessor struct {
	docs     *service.DocumentService
	strategy chunker.Strategy
}

func (f *fileProcessor) ProcessFile(ctx context.Context, path string) error {
	src, err := loadDocument(path)
	if err != nil {
		return err
	}

	doc, err := f.docs.Process(ctx, src, f.strategy)
	if err != nil {
		return err
	}

	log.Printf("reprocessed %s: %d chunks", path, len(doc.Chunks))
	return nil
}
