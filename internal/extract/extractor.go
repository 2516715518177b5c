// Package extract wraps the NLP pipeline used by the chunker: named-entity
// recognition, TF-IDF keyword extraction and sentence segmentation.
package extract

import (
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"github.com/jdkato/prose/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// DefaultMaxKeywords is the keyword list size attached to each chunk.
const DefaultMaxKeywords = 5

// entityLabelDescriptions expands NER labels into human-readable form.
var entityLabelDescriptions = map[string]string{
	"PERSON": "People, including fictional",
	"GPE":    "Countries, cities, states",
	"ORG":    "Companies, agencies, institutions",
	"LOC":    "Non-GPE locations, mountain ranges, bodies of water",
	"FAC":    "Buildings, airports, highways, bridges",
	"EVENT":  "Named hurricanes, battles, wars, sports events",
	"DATE":   "Absolute or relative dates or periods",
	"TIME":   "Times smaller than a day",
	"MONEY":  "Monetary values, including unit",
}

// Extractor runs NER, keyword extraction and sentence segmentation over
// text spans. Construct one at startup and share it by reference; it holds
// no per-call state and is safe for concurrent use across documents.
type Extractor struct {
	stopWords []string
}

// NewExtractor creates an Extractor with the default English stop word list.
func NewExtractor() *Extractor {
	return &Extractor{stopWords: englishStopWords}
}

// ExtractEntities runs a named-entity-recognition pass over the text.
// A text with no recognizable entities yields an empty list, not an error;
// errors from the underlying pipeline propagate unmodified.
func (e *Extractor) ExtractEntities(text string) ([]domain.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Entity{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	ents := doc.Entities()
	out := make([]domain.Entity, 0, len(ents))
	for _, ent := range ents {
		out = append(out, domain.Entity{
			Text:        ent.Text,
			Label:       ent.Label,
			Description: describeLabel(ent.Label),
		})
	}
	return out, nil
}

// ExtractKeywords returns the top maxKeywords terms of the span by
// frequency after stop word removal. Within a single span inverse document
// frequency is constant, so term counts give the same ranking. Spans that
// are empty after stop word removal yield an empty list rather than an
// error.
func (e *Extractor) ExtractKeywords(text string, maxKeywords int) ([]string, error) {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	vectoriser := nlp.NewCountVectoriser(e.stopWords...)
	m, err := vectoriser.FitTransform(text)
	if err != nil {
		return nil, err
	}

	terms := vocabularyTerms(vectoriser.Vocabulary)
	if len(terms) == 0 {
		return []string{}, nil
	}

	scores := mat.Col(nil, 0, m)
	return TopTerms(scores, terms, maxKeywords), nil
}

// SplitSentences segments text into sentences, preserving document order.
func (e *Extractor) SplitSentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// VectoriseTfidf fits a TF-IDF vectoriser over the documents and returns
// one dense vector per document plus the vocabulary term for each vector
// component. Documents that are all stop words produce zero-length vectors.
func (e *Extractor) VectoriseTfidf(docs []string) ([][]float64, []string, error) {
	m, terms, err := e.tfidfMatrix(docs...)
	if err != nil {
		return nil, nil, err
	}

	_, cols := m.Dims()
	vectors := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		vectors[j] = mat.Col(nil, j, m)
	}
	return vectors, terms, nil
}

// tfidfMatrix returns a terms x documents TF-IDF matrix and the vocabulary
// indexed by row.
func (e *Extractor) tfidfMatrix(docs ...string) (mat.Matrix, []string, error) {
	vectoriser := nlp.NewCountVectoriser(e.stopWords...)
	transformer := nlp.NewTfidfTransformer()
	pipeline := nlp.NewPipeline(vectoriser, transformer)

	m, err := pipeline.FitTransform(docs...)
	if err != nil {
		return nil, nil, err
	}

	return m, vocabularyTerms(vectoriser.Vocabulary), nil
}

// vocabularyTerms inverts a vectoriser vocabulary into a term list indexed
// by matrix row.
func vocabularyTerms(vocabulary map[string]int) []string {
	terms := make([]string, len(vocabulary))
	for term, idx := range vocabulary {
		terms[idx] = term
	}
	return terms
}

// TopTerms ranks terms by score descending and returns up to max of them.
// Ties break alphabetically so results are stable across runs.
func TopTerms(scores []float64, terms []string, max int) []string {
	type scored struct {
		term  string
		score float64
	}

	ranked := make([]scored, 0, len(terms))
	for i, term := range terms {
		if i >= len(scores) || scores[i] <= 0 {
			continue
		}
		ranked = append(ranked, scored{term: term, score: scores[i]})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.term
	}
	return out
}

func describeLabel(label string) string {
	if desc, ok := entityLabelDescriptions[label]; ok {
		return desc
	}
	return "Named entity"
}
