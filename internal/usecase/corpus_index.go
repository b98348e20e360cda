package usecase

import (
	"math"
	"sort"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// SparseVector is a term-weight vector with columns in ascending order
type SparseVector struct {
	cols []int
	vals []float64
}

// Len returns the number of non-zero entries
func (v SparseVector) Len() int {
	return len(v.cols)
}

// Norm returns the L2 norm of the vector
func (v SparseVector) Norm() float64 {
	sum := 0.0
	for _, w := range v.vals {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// dot computes the inner product by merging the sorted columns
func (v SparseVector) dot(o SparseVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v.cols) && j < len(o.cols) {
		switch {
		case v.cols[i] == o.cols[j]:
			sum += v.vals[i] * o.vals[j]
			i++
			j++
		case v.cols[i] < o.cols[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// CorpusIndex is a TF-IDF term-weight matrix over normalized item names.
// Row i always describes item i of the corpus it was built from.
type CorpusIndex struct {
	vocabulary map[string]int
	idf        []float64
	rows       []SparseVector
}

// VocabularySize returns the number of distinct terms in the index
func (ix *CorpusIndex) VocabularySize() int {
	return len(ix.vocabulary)
}

// Rows returns the number of indexed documents
func (ix *CorpusIndex) Rows() int {
	return len(ix.rows)
}

// Corpus bundles the catalog items with their fitted index.
// It is built once at startup and is safe for concurrent readers.
type Corpus struct {
	items []domain.CatalogItem
	index *CorpusIndex
}

// BuildCorpus normalizes every item name and fits the TF-IDF index.
// Returns domain.ErrEmptyCorpus when items is empty.
func BuildCorpus(items []domain.CatalogItem) (*Corpus, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	owned := make([]domain.CatalogItem, len(items))
	docs := make([]string, len(items))
	for i, item := range items {
		item.NormalizedName = Normalize(item.Name)
		owned[i] = item
		docs[i] = item.NormalizedName
	}

	return &Corpus{
		items: owned,
		index: buildIndex(docs),
	}, nil
}

// buildIndex fits vocabulary and smoothed IDF weights, then vectorizes docs
func buildIndex(docs []string) *CorpusIndex {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Columns are assigned in lexicographic term order
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	ix := &CorpusIndex{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		rows:       make([]SparseVector, len(docs)),
	}

	n := float64(len(docs))
	for col, term := range terms {
		ix.vocabulary[term] = col
		ix.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	for i, tokens := range tokenized {
		ix.rows[i] = ix.vectorize(tokens)
	}

	return ix
}

// vectorize weights raw term counts by IDF and L2-normalizes the result.
// Terms outside the vocabulary are ignored.
func (ix *CorpusIndex) vectorize(tokens []string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if col, ok := ix.vocabulary[tok]; ok {
			counts[col]++
		}
	}

	vec := SparseVector{
		cols: make([]int, 0, len(counts)),
		vals: make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.cols = append(vec.cols, col)
	}
	sort.Ints(vec.cols)
	for _, col := range vec.cols {
		vec.vals = append(vec.vals, counts[col]*ix.idf[col])
	}

	if norm := vec.Norm(); norm > 0 {
		for i := range vec.vals {
			vec.vals[i] /= norm
		}
	}

	return vec
}

// Transform projects an already-normalized query into the index space
func (ix *CorpusIndex) Transform(normalizedQuery string) SparseVector {
	return ix.vectorize(tokenize(normalizedQuery))
}

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero vector on either side yields 0.
func CosineSimilarity(a, b SparseVector) float64 {
	normA := a.Norm()
	normB := b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return a.dot(b) / (normA * normB)
}

// Row returns the weight vector of document i
func (ix *CorpusIndex) Row(i int) SparseVector {
	return ix.rows[i]
}

// Items returns the catalog items in load order. Callers must not modify them.
func (c *Corpus) Items() []domain.CatalogItem {
	return c.items
}

// Index returns the fitted TF-IDF index
func (c *Corpus) Index() *CorpusIndex {
	return c.index
}

// Size returns the number of catalog items
func (c *Corpus) Size() int {
	return len(c.items)
}
