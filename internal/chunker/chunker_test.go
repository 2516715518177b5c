package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/extract"
)

func newTestChunker(cfg Config) *Chunker {
	return NewWithConfig(extract.NewExtractor(), cfg)
}

func TestChunker_Chunk_EmptyDocument(t *testing.T) {
	c := New(extract.NewExtractor())

	for _, strategy := range []Strategy{StrategySemantic, StrategyHierarchical, StrategyTopicBased, StrategySlidingWindow} {
		chunks, err := c.Chunk("   \n  ", strategy)
		require.NoError(t, err)
		assert.Empty(t, chunks)
		assert.NotNil(t, chunks)
	}
}

func TestChunker_Chunk_UnknownStrategyFallsBack(t *testing.T) {
	c := New(extract.NewExtractor())

	chunks, err := c.Chunk("Some ordinary document text for the fallback path.", Strategy("bogus"))
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, domain.ChunkTypeSlidingWindow, chunk.Type)
	}
}

func TestChunker_Semantic_RespectsTokenBudget(t *testing.T) {
	c := newTestChunker(Config{MaxChunkTokens: 6})

	sentences := []string{
		"Alpha beta gamma delta.",
		"Epsilon zeta eta theta.",
		"Iota kappa lambda mu.",
	}
	text := strings.Join(sentences, " ")

	chunks, err := c.Chunk(text, StrategySemantic)
	require.NoError(t, err)

	// Each sentence is 4 tokens, so no two fit in a 6 token budget.
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, domain.ChunkTypeSemantic, chunk.Type)
		assert.Equal(t, sentences[i], chunk.Text)
		assert.Equal(t, 4, chunk.TokenCount)
		assert.Equal(t, 1, chunk.SentenceCount)
	}
}

func TestChunker_Semantic_AccumulatesUnderBudget(t *testing.T) {
	c := newTestChunker(Config{MaxChunkTokens: 10})

	sentences := []string{
		"Alpha beta gamma delta.",
		"Epsilon zeta eta theta.",
		"Iota kappa lambda mu.",
	}
	text := strings.Join(sentences, " ")

	chunks, err := c.Chunk(text, StrategySemantic)
	require.NoError(t, err)

	// First two sentences fit (8 tokens), the third would overflow.
	require.Len(t, chunks, 2)
	assert.Equal(t, sentences[0]+" "+sentences[1], chunks[0].Text)
	assert.Equal(t, sentences[2], chunks[1].Text)

	// Concatenating all chunks reconstructs the document.
	assert.Equal(t, text, strings.Join([]string{chunks[0].Text, chunks[1].Text}, " "))
}

func TestChunker_Semantic_OversizedSentenceBecomesOwnChunk(t *testing.T) {
	c := newTestChunker(Config{MaxChunkTokens: 3})

	chunks, err := c.Chunk("This single sentence runs well past the configured token budget entirely.", StrategySemantic)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Greater(t, chunks[0].TokenCount, 3)
}

func TestChunker_Semantic_UniqueIDs(t *testing.T) {
	c := newTestChunker(Config{MaxChunkTokens: 6})

	chunks, err := c.Chunk("Alpha beta gamma delta. Epsilon zeta eta theta.", StrategySemantic)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.NotEmpty(t, chunks[0].ID)
	assert.NotEmpty(t, chunks[1].ID)
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
}

func TestChunker_Hierarchical_SectionsAndParagraphs(t *testing.T) {
	c := New(extract.NewExtractor())

	text := strings.Join([]string{
		"# Introduction",
		"",
		"Feline companions have lived alongside humans for thousands of years.",
		"",
		"# Biology",
		"",
		"Dogs are mammals too and they share most core anatomy with other canids.",
		"",
		"Retractable claws distinguish most felines from their canine counterparts.",
	}, "\n")

	chunks, err := c.Chunk(text, StrategyHierarchical)
	require.NoError(t, err)

	var sections, paragraphs []domain.Chunk
	for _, chunk := range chunks {
		switch chunk.Type {
		case domain.ChunkTypeHierarchicalSection:
			sections = append(sections, chunk)
		case domain.ChunkTypeHierarchicalParagraph:
			paragraphs = append(paragraphs, chunk)
		default:
			t.Fatalf("unexpected chunk type %s", chunk.Type)
		}
	}

	require.Len(t, sections, 2)
	require.Len(t, paragraphs, 3)

	assert.True(t, strings.HasPrefix(sections[0].Text, "Introduction"))
	assert.True(t, strings.HasPrefix(sections[1].Text, "Biology"))

	sectionIDs := map[string]int{sections[0].ID: domain.LevelSection, sections[1].ID: domain.LevelSection}
	for _, p := range paragraphs {
		assert.Equal(t, domain.LevelParagraph, p.Level)
		assert.Contains(t, sectionIDs, p.ParentID, "paragraph must resolve to an emitted section")
	}

	assert.Equal(t, sections[0].ID, paragraphs[0].ParentID)
	assert.Equal(t, sections[1].ID, paragraphs[1].ParentID)
	assert.Equal(t, sections[1].ID, paragraphs[2].ParentID)
}

func TestChunker_Hierarchical_DropsShortParagraphs(t *testing.T) {
	c := New(extract.NewExtractor())

	text := strings.Join([]string{
		"# Notes",
		"",
		"Short line.",
		"",
		"This paragraph is comfortably long enough to survive the minimum length filter.",
	}, "\n")

	chunks, err := c.Chunk(text, StrategyHierarchical)
	require.NoError(t, err)

	var paragraphs []domain.Chunk
	for _, chunk := range chunks {
		if chunk.Type == domain.ChunkTypeHierarchicalParagraph {
			paragraphs = append(paragraphs, chunk)
		}
	}

	require.Len(t, paragraphs, 1)
	assert.Contains(t, paragraphs[0].Text, "comfortably long enough")
}

func TestChunker_Hierarchical_PreambleBecomesHeaderlessSection(t *testing.T) {
	c := New(extract.NewExtractor())

	text := strings.Join([]string{
		"Material before any header still deserves a place in the hierarchy.",
		"",
		"# First Header",
		"",
		"The body of the first named section follows its header immediately.",
	}, "\n")

	chunks, err := c.Chunk(text, StrategyHierarchical)
	require.NoError(t, err)

	var sections []domain.Chunk
	for _, chunk := range chunks {
		if chunk.Type == domain.ChunkTypeHierarchicalSection {
			sections = append(sections, chunk)
		}
	}

	require.Len(t, sections, 2)
	assert.True(t, strings.HasPrefix(sections[0].Text, "Material before any header"))
}

func TestChunker_TopicBased_DowngradesShortDocuments(t *testing.T) {
	c := New(extract.NewExtractor())

	chunks, err := c.Chunk("One short sentence here. Another short sentence follows. A third closes it.", StrategyTopicBased)
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, domain.ChunkTypeSemantic, chunk.Type)
		assert.Nil(t, chunk.TopicID)
	}
}

func TestChunker_TopicBased_ClustersLongDocuments(t *testing.T) {
	c := New(extract.NewExtractor())

	storage := []string{
		"Databases persist structured records durably.",
		"Storage engines flush memtables to disk segments.",
		"Compaction merges disk segments into larger files.",
		"Write ahead logs protect records against crashes.",
		"Indexes accelerate lookups across disk segments.",
	}
	cooking := []string{
		"Sourdough bread needs a lively fermented starter.",
		"Kneading dough develops gluten structure gradually.",
		"Ovens bake loaves at high steady temperatures.",
		"Crust color deepens as sugars caramelize slowly.",
		"Resting baked loaves improves crumb texture noticeably.",
	}
	sentences := append(append([]string{}, storage...), cooking...)
	text := strings.Join(sentences, " ")

	chunks, err := c.Chunk(text, StrategyTopicBased)
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	assert.LessOrEqual(t, len(chunks), 2)

	var combined strings.Builder
	for _, chunk := range chunks {
		assert.Equal(t, domain.ChunkTypeTopicBased, chunk.Type)
		require.NotNil(t, chunk.TopicID)
		combined.WriteString(chunk.Text)
		combined.WriteString(" ")
	}

	// Every sentence survives clustering exactly once.
	for _, s := range sentences {
		assert.Equal(t, 1, strings.Count(combined.String(), s))
	}
}

func TestChunker_TopicBased_Deterministic(t *testing.T) {
	c := New(extract.NewExtractor())

	text := strings.Join([]string{
		"Compilers translate source programs into machine code.",
		"Parsers build syntax trees from token streams.",
		"Optimizers rewrite intermediate code for speed.",
		"Linkers combine object files into executables.",
		"Gardens flourish with regular watering schedules.",
		"Roses require pruning in the early spring.",
		"Compost enriches soil with organic nutrients.",
		"Mulch retains moisture around plant roots.",
		"Debuggers inspect running program state interactively.",
		"Seedlings harden off before outdoor transplanting.",
	}, " ")

	first, err := c.Chunk(text, StrategyTopicBased)
	require.NoError(t, err)
	second, err := c.Chunk(text, StrategyTopicBased)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].TopicID, second[i].TopicID)
		assert.Equal(t, first[i].TopicKeywords, second[i].TopicKeywords)
	}
}

func TestTopicClusterCount(t *testing.T) {
	assert.Equal(t, 2, topicClusterCount(5))
	assert.Equal(t, 2, topicClusterCount(20))
	assert.Equal(t, 3, topicClusterCount(35))
	assert.Equal(t, 10, topicClusterCount(500))
}

func TestChunker_SlidingWindow_SmallTextSingleChunk(t *testing.T) {
	c := New(extract.NewExtractor())

	chunks, err := c.Chunk("A short document fits into one window.", StrategySlidingWindow)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, domain.ChunkTypeSlidingWindow, chunks[0].Type)
	assert.Equal(t, "A short document fits into one window.", chunks[0].Text)
}

func TestSlideWindows(t *testing.T) {
	words := make([]string, 0, 400)
	for i := 0; i < 400; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ")

	cfg := WindowConfig{MaxChars: 500, MinChars: 200, Overlap: 100, MaxChunks: 40}
	windows := slideWindows(text, cfg)

	require.Greater(t, len(windows), 1)
	for _, w := range windows {
		assert.LessOrEqual(t, len([]rune(w)), cfg.MaxChars)
		assert.NotEmpty(t, w)
	}
	assert.True(t, strings.HasPrefix(text, windows[0]))
	assert.True(t, strings.HasSuffix(text, windows[len(windows)-1]))
}

func TestSlideWindows_MaxChunksCap(t *testing.T) {
	text := strings.Repeat("word ", 2000)

	cfg := WindowConfig{MaxChars: 100, MinChars: 40, Overlap: 20, MaxChunks: 5}
	windows := slideWindows(text, cfg)

	assert.Len(t, windows, 5)
}
