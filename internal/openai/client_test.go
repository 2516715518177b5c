package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmbeddingAPI is a mock implementation of EmbeddingAPI.
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func newTestClient(api EmbeddingAPI, dimensions int) *Client {
	return &Client{api: api, dimensions: dimensions}
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	embedding := make([]float32, 4)
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, "some text").Return(embedding, nil)

	client := newTestClient(mockAPI, 4)
	got, err := client.GenerateEmbedding(context.Background(), "some text")
	require.NoError(t, err)

	assert.Equal(t, embedding, got)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := newTestClient(new(MockEmbeddingAPI), 4)

	_, err := client.GenerateEmbedding(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).Return(make([]float32, 3), nil)

	client := newTestClient(mockAPI, 4)
	_, err := client.GenerateEmbedding(context.Background(), "text")
	assert.ErrorIs(t, err, ErrWrongDimensions)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	client := newTestClient(mockAPI, 4)
	_, err := client.GenerateEmbedding(context.Background(), "text")
	assert.ErrorContains(t, err, "failed to create embedding")
}

func TestClient_EmbeddingFunc(t *testing.T) {
	embedding := make([]float32, 4)
	mockAPI := new(MockEmbeddingAPI)
	mockAPI.On("CreateEmbeddings", mock.Anything, "chunk text").Return(embedding, nil)

	fn := newTestClient(mockAPI, 4).EmbeddingFunc()
	got, err := fn(context.Background(), "chunk text")
	require.NoError(t, err)

	assert.Equal(t, embedding, got)
}

func TestNewClientFromEnv_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClientFromEnv()
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
