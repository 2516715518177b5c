// Package cli implements the textgraph command set.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cloo-solutions/textgraph/internal/chunker"
	"github.com/cloo-solutions/textgraph/internal/config"
	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/extract"
	"github.com/cloo-solutions/textgraph/internal/graph"
	"github.com/cloo-solutions/textgraph/internal/openai"
	"github.com/cloo-solutions/textgraph/internal/parser"
	"github.com/cloo-solutions/textgraph/internal/retriever"
	"github.com/cloo-solutions/textgraph/internal/service"
	"github.com/cloo-solutions/textgraph/internal/telemetry"
)

// pipeline bundles the assembled services a command needs.
type pipeline struct {
	cfg      *config.Config
	docs     *service.DocumentService
	shutdown func()
}

// newPipeline assembles the document pipeline from configuration.
// The extractor is constructed once here and shared by reference.
func newPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(telemetry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Debug:       cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	extractor := extract.NewExtractor()

	chunkCfg := chunker.DefaultConfig()
	chunkCfg.MaxChunkTokens = cfg.MaxChunkTokens
	chunkCfg.MinParagraphChars = cfg.MinParagraphChars
	chk := chunker.NewWithConfig(extractor, chunkCfg)

	builder := graph.NewBuilderWithConfig(graph.BuilderConfig{
		SimilarityThreshold: cfg.SimilarityThreshold,
	})

	var docs *service.DocumentService
	if cfg.HasOpenAI() {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		docs = service.NewDocumentServiceWithEmbeddings(chk, builder, client.EmbeddingFunc())
	} else {
		docs = service.NewDocumentService(chk, builder)
	}

	return &pipeline{cfg: cfg, docs: docs, shutdown: shutdown}, nil
}

// loadDocument parses a file into a Document ready for processing.
func loadDocument(path string) (domain.Document, error) {
	text, err := parser.Load(path)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Name:      filepath.Base(path),
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// queryService builds the retrieval side for a processed document,
// preferring the vector index when one was built.
func (p *pipeline) queryService(doc *service.ProcessedDocument) *service.QueryService {
	retrCfg := retriever.Config{
		TopK:             p.cfg.TopK,
		NeighborsPerSeed: p.cfg.NeighborsPerSeed,
	}

	var r *retriever.Retriever
	if doc.Index != nil {
		r = retriever.NewWithSearcher(doc.Index, retrCfg)
	} else {
		r = retriever.NewWithSearcher(retriever.LexicalSearcher{}, retrCfg)
	}

	return service.NewQueryServiceWithConfig(r, service.QueryServiceConfig{
		TopK:            p.cfg.TopK,
		MaxContextChars: p.cfg.MaxContextChars,
	})
}
