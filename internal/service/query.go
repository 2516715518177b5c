package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/graph"
	"github.com/cloo-solutions/textgraph/internal/telemetry"
)

// RetrieverInterface defines the retrieval dependency.
type RetrieverInterface interface {
	Retrieve(ctx context.Context, query string, chunks []domain.Chunk, g *graph.Graph, topK int) ([]domain.Chunk, error)
}

// QueryServiceConfig controls query behavior.
type QueryServiceConfig struct {
	TopK            int
	MaxContextChars int
}

// DefaultQueryServiceConfig returns the default query configuration.
func DefaultQueryServiceConfig() QueryServiceConfig {
	return QueryServiceConfig{
		TopK:            5,
		MaxContextChars: 8000,
	}
}

// QueryOutput is a ranked retrieval result plus the assembled context
// block handed to answer generation.
type QueryOutput struct {
	Chunks  []domain.Chunk
	Context string
}

// QueryService retrieves ranked chunks for a query and assembles them
// into an LLM prompt context. The LLM call itself happens elsewhere.
type QueryService struct {
	retriever RetrieverInterface
	cfg       QueryServiceConfig
}

// NewQueryService creates a QueryService with default configuration.
func NewQueryService(r RetrieverInterface) *QueryService {
	return NewQueryServiceWithConfig(r, DefaultQueryServiceConfig())
}

// NewQueryServiceWithConfig creates a QueryService with explicit configuration.
func NewQueryServiceWithConfig(r RetrieverInterface, cfg QueryServiceConfig) *QueryService {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = 8000
	}
	return &QueryService{retriever: r, cfg: cfg}
}

// Query retrieves up to TopK chunks for the query against a processed
// document and assembles the context block. An empty result is not an
// error; the caller renders it as "no relevant context found".
func (s *QueryService) Query(ctx context.Context, query string, doc *ProcessedDocument) (*QueryOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "QueryService.Query", telemetry.SpanAttributes{
		DocumentID: doc.Document.ID,
		Operation:  "query",
	})
	defer span.End()

	chunks, err := s.retriever.Retrieve(ctx, query, doc.Chunks, doc.Graph, s.cfg.TopK)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	return &QueryOutput{
		Chunks:  chunks,
		Context: BuildContext(chunks, s.cfg.MaxContextChars),
	}, nil
}

// BuildContext assembles ranked chunk texts into a single context block
// with source markers. Truncation happens at chunk boundaries: a chunk
// that would push the block over maxChars is skipped along with the rest.
func BuildContext(chunks []domain.Chunk, maxChars int) string {
	var b strings.Builder
	for i, c := range chunks {
		entry := fmt.Sprintf("[Source %d, %s]\n%s", i+1, c.Type, c.Text)
		if b.Len() > 0 {
			if b.Len()+len(entry)+2 > maxChars {
				break
			}
			b.WriteString("\n\n")
		} else if len(entry) > maxChars {
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}
