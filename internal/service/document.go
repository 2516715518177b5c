package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"

	"github.com/cloo-solutions/textgraph/internal/chunker"
	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/graph"
	"github.com/cloo-solutions/textgraph/internal/index"
	"github.com/cloo-solutions/textgraph/internal/telemetry"
)

// ChunkerInterface defines the chunking dependency.
type ChunkerInterface interface {
	Chunk(text string, strategy chunker.Strategy) ([]domain.Chunk, error)
}

// GraphBuilderInterface defines the graph construction dependency.
type GraphBuilderInterface interface {
	Build(chunks []domain.Chunk) (*graph.Graph, error)
}

// ProcessedDocument is a chunk-set snapshot with its matched graph and,
// when embeddings are configured, its vector index. Chunks, graph and
// index belong together: regenerating the chunks means rebuilding all
// three, never mixing snapshots.
type ProcessedDocument struct {
	Document domain.Document
	Strategy chunker.Strategy
	Chunks   []domain.Chunk
	Graph    *graph.Graph
	Index    *index.Index
}

// DocumentService runs the document pipeline: chunk, build the knowledge
// graph, and optionally embed the chunks into a vector index.
type DocumentService struct {
	chunker ChunkerInterface
	builder GraphBuilderInterface
	embed   chromem.EmbeddingFunc
}

// NewDocumentService creates a DocumentService without an embedding path;
// retrieval over its output uses the lexical baseline.
func NewDocumentService(c ChunkerInterface, b GraphBuilderInterface) *DocumentService {
	return &DocumentService{chunker: c, builder: b}
}

// NewDocumentServiceWithEmbeddings additionally embeds chunks into a
// vector index after graph construction.
func NewDocumentServiceWithEmbeddings(c ChunkerInterface, b GraphBuilderInterface, embed chromem.EmbeddingFunc) *DocumentService {
	return &DocumentService{chunker: c, builder: b, embed: embed}
}

// Process chunks the document text, builds the knowledge graph over the
// chunk set and, when configured, the vector index. Documents arriving
// without an ID get one assigned. A document that produces zero chunks
// is not an error; it yields an empty snapshot.
func (s *DocumentService) Process(ctx context.Context, doc domain.Document, strategy chunker.Strategy) (*ProcessedDocument, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	ctx, span := telemetry.StartSpan(ctx, "DocumentService.Process", telemetry.SpanAttributes{
		DocumentID: doc.ID,
		Strategy:   string(strategy),
		Operation:  "process",
	})
	defer span.End()

	chunks, err := s.chunker.Chunk(doc.Text, strategy)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("chunk document: %w", err)
	}

	g, err := s.builder.Build(chunks)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("build graph: %w", err)
	}

	processed := &ProcessedDocument{
		Document: doc,
		Strategy: strategy,
		Chunks:   chunks,
		Graph:    g,
	}

	if s.embed != nil {
		ix, err := index.New(ctx, doc.ID, chunks, s.embed)
		if err != nil {
			span.SetError(err)
			return nil, fmt.Errorf("index chunks: %w", err)
		}
		processed.Index = ix
	}

	log.Printf("processed document %s: strategy=%s chunks=%d edges=%d",
		doc.ID, strategy, len(chunks), g.Size())

	return processed, nil
}
