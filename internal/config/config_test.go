package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "semantic", cfg.Strategy)
	assert.Equal(t, 500, cfg.MaxChunkTokens)
	assert.Equal(t, 50, cfg.MinParagraphChars)
	assert.Equal(t, 0.3, cfg.SimilarityThreshold)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 2, cfg.NeighborsPerSeed)
	assert.Equal(t, 8000, cfg.MaxContextChars)
	assert.False(t, cfg.HasOpenAI())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEXTGRAPH_STRATEGY", "hierarchical")
	t.Setenv("TEXTGRAPH_TOP_K", "9")
	t.Setenv("TEXTGRAPH_SIMILARITY_THRESHOLD", "0.45")
	t.Setenv("TEXTGRAPH_OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hierarchical", cfg.Strategy)
	assert.Equal(t, 9, cfg.TopK)
	assert.Equal(t, 0.45, cfg.SimilarityThreshold)
	assert.True(t, cfg.HasOpenAI())
}
