package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/graph"
)

// MockRetriever is a mock implementation of RetrieverInterface.
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, chunks []domain.Chunk, g *graph.Graph, topK int) ([]domain.Chunk, error) {
	args := m.Called(ctx, query, chunks, g, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chunk), args.Error(1)
}

func TestQueryService_Query_Success(t *testing.T) {
	retrieved := []domain.Chunk{
		domain.NewChunk("c1", "alpha content", domain.ChunkTypeSemantic),
	}
	doc := &ProcessedDocument{
		Document: domain.Document{ID: "doc-1"},
		Chunks:   retrieved,
	}

	mockRetriever := new(MockRetriever)
	mockRetriever.On("Retrieve", mock.Anything, "what is alpha", doc.Chunks, doc.Graph, 5).
		Return(retrieved, nil)

	svc := NewQueryService(mockRetriever)
	out, err := svc.Query(context.Background(), "what is alpha", doc)
	require.NoError(t, err)

	assert.Equal(t, retrieved, out.Chunks)
	assert.Contains(t, out.Context, "[Source 1, semantic]")
	assert.Contains(t, out.Context, "alpha content")

	mockRetriever.AssertExpectations(t)
}

func TestQueryService_Query_RetrieverError(t *testing.T) {
	mockRetriever := new(MockRetriever)
	mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("searcher unavailable"))

	svc := NewQueryService(mockRetriever)
	_, err := svc.Query(context.Background(), "query", &ProcessedDocument{Document: domain.Document{ID: "doc-1"}})

	assert.ErrorContains(t, err, "retrieve")
}

func TestQueryService_Query_EmptyResult(t *testing.T) {
	mockRetriever := new(MockRetriever)
	mockRetriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Chunk{}, nil)

	svc := NewQueryService(mockRetriever)
	out, err := svc.Query(context.Background(), "query", &ProcessedDocument{Document: domain.Document{ID: "doc-1"}})
	require.NoError(t, err)

	assert.Empty(t, out.Chunks)
	assert.Equal(t, "", out.Context)
}

func TestBuildContext(t *testing.T) {
	chunks := []domain.Chunk{
		domain.NewChunk("c1", "first chunk text", domain.ChunkTypeSemantic),
		domain.NewChunk("c2", "second chunk text", domain.ChunkTypeHierarchicalSection),
	}

	out := BuildContext(chunks, 8000)

	assert.Contains(t, out, "[Source 1, semantic]\nfirst chunk text")
	assert.Contains(t, out, "[Source 2, hierarchical_section]\nsecond chunk text")
}

func TestBuildContext_TruncatesAtChunkBoundary(t *testing.T) {
	var chunks []domain.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, domain.NewChunk(
			fmt.Sprintf("c%d", i),
			fmt.Sprintf("chunk number %d with a reasonably long body of text", i),
			domain.ChunkTypeSemantic,
		))
	}

	full := BuildContext(chunks, 100000)
	truncated := BuildContext(chunks, len(full)/2)

	assert.Less(t, len(truncated), len(full))
	assert.Contains(t, truncated, "[Source 1, semantic]")
	// Truncation never cuts inside a chunk entry.
	assert.True(t, strings.HasSuffix(truncated, "long body of text"))
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, 8000))
}

func TestBuildContext_FirstChunkOverBudget(t *testing.T) {
	chunks := []domain.Chunk{
		domain.NewChunk("c1", "this text alone exceeds the tiny budget", domain.ChunkTypeSemantic),
	}

	assert.Equal(t, "", BuildContext(chunks, 10))
}
