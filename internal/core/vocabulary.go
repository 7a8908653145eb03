package core

import (
	"fmt"
	"sort"
)

// Vocabulary is the frozen, ordered feature schema of a trained pipeline.
// Token i of the vocabulary is feature i of every FeatureVector built from it.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// BuildVocabulary collects the distinct tokens of all documents in sorted order.
//
// When maxSize is positive only the maxSize tokens with the highest document
// frequency are kept (ties broken by token order) before sorting.
func BuildVocabulary(docs []Document, maxSize int) (*Vocabulary, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, token := range Tokenize(doc.Text) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	tokens := make([]string, 0, len(docFreq))
	for token := range docFreq {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	if maxSize > 0 && len(tokens) > maxSize {
		sort.SliceStable(tokens, func(i, j int) bool {
			return docFreq[tokens[i]] > docFreq[tokens[j]]
		})
		tokens = tokens[:maxSize]
		sort.Strings(tokens)
	}

	return newVocabulary(tokens), nil
}

// NewVocabulary restores a vocabulary from its ordered token list, as
// produced by Tokens. Tokens must be unique.
func NewVocabulary(tokens []string) (*Vocabulary, error) {
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			return nil, fmt.Errorf("duplicate vocabulary token %q", token)
		}
		seen[token] = struct{}{}
	}

	owned := make([]string, len(tokens))
	copy(owned, tokens)
	return newVocabulary(owned), nil
}

func newVocabulary(tokens []string) *Vocabulary {
	index := make(map[string]int, len(tokens))
	for i, token := range tokens {
		index[token] = i
	}
	return &Vocabulary{tokens: tokens, index: index}
}

// Len returns the number of features
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.tokens)
}

// Index returns the feature index of a normalized token
func (v *Vocabulary) Index(token string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[token]
	return i, ok
}

// Token returns the token of feature i
func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

// Tokens returns a copy of the ordered token list
func (v *Vocabulary) Tokens() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}
