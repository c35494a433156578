// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into terms of at least two word
// characters (letters, digits, underscore). Stop words are removed.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	runes := 0

	flush := func() {
		if runes >= 2 {
			term := b.String()
			if !IsStopWord(term) {
				tokens = append(tokens, term)
			}
		}
		b.Reset()
		runes = 0
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// sparseVector is an L2-normalised term vector with ascending term indices.
type sparseVector struct {
	idx []int
	val []float64
}

func (v sparseVector) empty() bool {
	return len(v.idx) == 0
}

func (v sparseVector) equal(o sparseVector) bool {
	if len(v.idx) != len(o.idx) {
		return false
	}
	for i := range v.idx {
		if v.idx[i] != o.idx[i] || v.val[i] != o.val[i] {
			return false
		}
	}
	return true
}

func (v sparseVector) dot(o sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.idx) && j < len(o.idx) {
		switch {
		case v.idx[i] == o.idx[j]:
			sum += v.val[i] * o.val[j]
			i++
			j++
		case v.idx[i] < o.idx[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// TFIDF is a term-frequency / inverse-document-frequency model fitted over a
// fixed corpus. Weights use raw term counts and the smoothed idf
// ln((1+n)/(1+df)) + 1; every document vector is L2-normalised.
type TFIDF struct {
	vocab   map[string]int
	idf     []float64
	vectors []sparseVector
}

// FitTFIDF fits a model over docs. Vocabulary indices follow sorted term
// order so the model is deterministic.
func FitTFIDF(docs []string) *TFIDF {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, term := range tokenized[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m := &TFIDF{
		vocab:   make(map[string]int, len(terms)),
		idf:     make([]float64, len(terms)),
		vectors: make([]sparseVector, len(docs)),
	}
	for i, term := range terms {
		m.vocab[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for d, tokens := range tokenized {
		m.vectors[d] = m.vectorize(tokens)
	}
	return m
}

func (m *TFIDF) vectorize(tokens []string) sparseVector {
	if len(tokens) == 0 {
		return sparseVector{}
	}

	counts := make(map[int]int, len(tokens))
	for _, term := range tokens {
		if idx, ok := m.vocab[term]; ok {
			counts[idx]++
		}
	}

	v := sparseVector{
		idx: make([]int, 0, len(counts)),
		val: make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.idx = append(v.idx, idx)
	}
	sort.Ints(v.idx)

	var norm float64
	for _, idx := range v.idx {
		w := float64(counts[idx]) * m.idf[idx]
		v.val = append(v.val, w)
		norm += w * w
	}
	if norm == 0 {
		return sparseVector{}
	}
	norm = math.Sqrt(norm)
	for i := range v.val {
		v.val[i] /= norm
	}
	return v
}

// VocabularySize returns the number of distinct terms.
func (m *TFIDF) VocabularySize() int {
	return len(m.vocab)
}

// Cosine returns the cosine similarity of documents i and j, in [0,1].
// A document with no terms has similarity 0 to everything.
func (m *TFIDF) Cosine(i, j int) float64 {
	a, b := m.vectors[i], m.vectors[j]
	if a.empty() || b.empty() {
		return 0
	}
	if a.equal(b) {
		return 1
	}
	return clamp01(a.dot(b))
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// ScorePlots returns, indexed by catalog position, each item's maximum
// description similarity to any liked item. Missing descriptions count as
// empty text. With no liked items the model is not fitted and every score
// is 0.
func ScorePlots(catalog Catalog, liked LikedSet) []float64 {
	scores := make([]float64, len(catalog))

	likedPos := catalog.LikedPositions(liked)
	if len(likedPos) == 0 {
		return scores
	}

	docs := make([]string, len(catalog))
	for i := range catalog {
		docs[i] = catalog[i].Description
	}
	model := FitTFIDF(docs)
	if model.VocabularySize() == 0 {
		return scores
	}

	for i := range catalog {
		best := 0.0
		for _, l := range likedPos {
			if s := model.Cosine(i, l); s > best {
				best = s
			}
		}
		scores[i] = best
	}
	return scores
}
