package chunker

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cloo-solutions/textgraph/internal/domain"
	"github.com/cloo-solutions/textgraph/internal/extract"
)

const (
	minTopicClusters = 2
	maxTopicClusters = 10
)

// chunkTopicBased vectorizes sentences with TF-IDF and clusters them with
// k-means; sentences sharing a cluster are concatenated in original order
// into one chunk per cluster. Documents below the sentence minimum
// downgrade to semantic chunking, where clustering is not meaningful.
func (c *Chunker) chunkTopicBased(text string) ([]domain.Chunk, error) {
	sentences, err := c.extractor.SplitSentences(text)
	if err != nil {
		return nil, err
	}
	if len(sentences) < c.cfg.MinTopicSentences {
		return c.chunkSemantic(text)
	}

	vectors, terms, err := c.extractor.VectoriseTfidf(sentences)
	if err != nil {
		return nil, err
	}

	k := topicClusterCount(len(sentences))
	assign := extract.Cluster(vectors, k)

	// Clusters emit in order of first sentence occurrence so chunk order
	// still tracks the source document.
	order := make([]int, 0, k)
	members := make(map[int][]int, k)
	for i, cluster := range assign {
		if _, ok := members[cluster]; !ok {
			order = append(order, cluster)
		}
		members[cluster] = append(members[cluster], i)
	}

	chunks := make([]domain.Chunk, 0, len(order))
	for _, cluster := range order {
		idxs := members[cluster]
		parts := make([]string, len(idxs))
		for i, idx := range idxs {
			parts[i] = sentences[idx]
		}

		chunk, err := c.newChunk(strings.Join(parts, " "), domain.ChunkTypeTopicBased)
		if err != nil {
			return nil, err
		}
		topicID := cluster
		chunk.TopicID = &topicID
		chunk.TopicKeywords = clusterKeywords(vectors, idxs, terms)
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// topicClusterCount scales cluster count with document length: roughly one
// cluster per 10 sentences, floored at 2 and capped at 10.
func topicClusterCount(sentenceCount int) int {
	k := sentenceCount / 10
	if k < minTopicClusters {
		k = minTopicClusters
	}
	if k > maxTopicClusters {
		k = maxTopicClusters
	}
	return k
}

// clusterKeywords returns the cluster's representative terms: the top
// entries of the mean TF-IDF vector across its member sentences.
func clusterKeywords(vectors [][]float64, idxs []int, terms []string) []string {
	if len(idxs) == 0 || len(terms) == 0 {
		return nil
	}

	mean := make([]float64, len(vectors[idxs[0]]))
	for _, idx := range idxs {
		floats.Add(mean, vectors[idx])
	}
	floats.Scale(1/float64(len(idxs)), mean)

	return extract.TopTerms(mean, terms, extract.DefaultMaxKeywords)
}
