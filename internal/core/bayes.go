package core

import (
	"fmt"
	"math"
	"sort"
)

// DefaultSmoothing is the Laplace smoothing constant
const DefaultSmoothing = 1.0

// Trainer fits a model over a training matrix
type Trainer interface {
	Fit(matrix *TrainingMatrix) (*Model, error)
}

// NaiveBayesTrainer fits multinomial naive Bayes models over binary presence features
type NaiveBayesTrainer struct {
	Smoothing float64
}

// NewNaiveBayesTrainer creates a trainer with the given additive smoothing constant
func NewNaiveBayesTrainer(smoothing float64) *NaiveBayesTrainer {
	return &NaiveBayesTrainer{Smoothing: smoothing}
}

// Fit estimates class priors from label frequencies and per-class feature
// likelihoods with additive smoothing:
//
//	P(w|c) = (n(w,c) + alpha) / (sum_w n(w,c) + alpha*|V|)
func (t *NaiveBayesTrainer) Fit(matrix *TrainingMatrix) (*Model, error) {
	if matrix.Len() == 0 {
		return nil, ErrEmptyTrainingSet
	}

	state := ModelState{
		Smoothing: t.Smoothing,
		Width:     matrix.Width,
	}
	for c := range state.FeatureCounts {
		state.FeatureCounts[c] = make([]int, matrix.Width)
	}

	for i, row := range matrix.Rows {
		if len(row.Features) != matrix.Width {
			return nil, fmt.Errorf("%w: row %d has %d features, matrix has %d",
				ErrVocabularyMismatch, i, len(row.Features), matrix.Width)
		}
		c := row.Label.Index()
		state.ClassCounts[c]++
		counts := state.FeatureCounts[c]
		for f, v := range row.Features {
			if v != 0 {
				counts[f]++
			}
		}
	}

	return NewModel(state)
}

// ModelState is the complete set of sufficient statistics of a model. It is
// what gets persisted; everything else is derived from it.
type ModelState struct {
	Smoothing     float64           `json:"smoothing"`
	Width         int               `json:"width"`
	ClassCounts   [NumClasses]int   `json:"class_counts"`
	FeatureCounts [NumClasses][]int `json:"feature_counts"`
}

// Model is a fitted naive Bayes model. It is read-only once created.
type Model struct {
	state          ModelState
	logPriors      [NumClasses]float64
	logLikelihoods [NumClasses][]float64
}

// NewModel derives a model from its sufficient statistics
func NewModel(state ModelState) (*Model, error) {
	if !(state.Smoothing > 0) || math.IsInf(state.Smoothing, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSmoothing, state.Smoothing)
	}

	total := 0
	for _, n := range state.ClassCounts {
		total += n
	}
	if total == 0 {
		return nil, ErrEmptyTrainingSet
	}

	m := &Model{state: state}
	for c := 0; c < NumClasses; c++ {
		if len(state.FeatureCounts[c]) != state.Width {
			return nil, fmt.Errorf("%w: class %s has %d feature counts, width is %d",
				ErrVocabularyMismatch, Label(c), len(state.FeatureCounts[c]), state.Width)
		}

		// An unseen class gets log(0) = -Inf and can never win.
		m.logPriors[c] = math.Log(float64(state.ClassCounts[c]) / float64(total))

		sum := 0
		for _, n := range state.FeatureCounts[c] {
			sum += n
		}
		denom := float64(sum) + state.Smoothing*float64(state.Width)
		m.logLikelihoods[c] = make([]float64, state.Width)
		for f, n := range state.FeatureCounts[c] {
			m.logLikelihoods[c][f] = math.Log((float64(n) + state.Smoothing) / denom)
		}
	}
	return m, nil
}

// State returns a copy of the model's sufficient statistics
func (m *Model) State() ModelState {
	out := m.state
	for c := range out.FeatureCounts {
		out.FeatureCounts[c] = append([]int(nil), m.state.FeatureCounts[c]...)
	}
	return out
}

// Width returns the number of features the model was fit on
func (m *Model) Width() int {
	return m.state.Width
}

// Smoothing returns the additive smoothing constant
func (m *Model) Smoothing() float64 {
	return m.state.Smoothing
}

// ClassCount returns the number of training rows of a class
func (m *Model) ClassCount(l Label) int {
	return m.state.ClassCounts[l.Index()]
}

// Posterior returns P(class|features) for each class, indexed by class index
func (m *Model) Posterior(fv FeatureVector) [NumClasses]float64 {
	var logp [NumClasses]float64
	for c := 0; c < NumClasses; c++ {
		logp[c] = m.logPriors[c]
		if math.IsInf(logp[c], -1) {
			continue
		}
		for f, v := range fv {
			if v != 0 {
				logp[c] += m.logLikelihoods[c][f]
			}
		}
	}

	best := math.Inf(-1)
	for _, lp := range logp {
		if lp > best {
			best = lp
		}
	}

	var p [NumClasses]float64
	sum := 0.0
	for c, lp := range logp {
		p[c] = math.Exp(lp - best)
		sum += p[c]
	}
	for c := range p {
		p[c] /= sum
	}
	return p
}

// TokenScore describes how strongly a token indicates a class
type TokenScore struct {
	Token     string  `json:"token" yaml:"token"`
	Score     float64 `json:"score" yaml:"score"`
	SpamCount int     `json:"spam_count" yaml:"spam_count"`
	HamCount  int     `json:"ham_count" yaml:"ham_count"`
}

// TopTokens returns the n tokens with the highest log-likelihood ratio
// log P(w|class) - log P(w|other), seen at least once in class.
func (m *Model) TopTokens(vocab *Vocabulary, class Label, n int) []TokenScore {
	c := class.Index()
	other := 1 - c

	var scores []TokenScore
	for f := 0; f < m.state.Width && f < vocab.Len(); f++ {
		if m.state.FeatureCounts[c][f] == 0 {
			continue
		}
		scores = append(scores, TokenScore{
			Token:     vocab.Token(f),
			Score:     m.logLikelihoods[c][f] - m.logLikelihoods[other][f],
			SpamCount: m.state.FeatureCounts[Spam][f],
			HamCount:  m.state.FeatureCounts[Ham][f],
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}
