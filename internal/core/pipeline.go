package core

import (
	"fmt"
	"time"
)

// Confidence holds the posterior probability of each class. Spam + Ham is 1.
type Confidence struct {
	Spam float64 `json:"spam" yaml:"spam"`
	Ham  float64 `json:"ham" yaml:"ham"`
}

// Prediction is the outcome of classifying one message
type Prediction struct {
	Label      Label         `json:"label" yaml:"label"`
	Confidence Confidence    `json:"confidence" yaml:"confidence"`
	Features   FeatureVector `json:"-" yaml:"-"`
}

// Predict classifies text with a fitted model. The text is vectorized against
// the training vocabulary only. Ties go to Ham.
func Predict(model *Model, vocab *Vocabulary, text string) (*Prediction, error) {
	if model == nil || vocab == nil {
		return nil, ErrModelNotTrained
	}
	if vocab.Len() != model.Width() {
		return nil, fmt.Errorf("%w: vocabulary has %d tokens, model has %d features",
			ErrVocabularyMismatch, vocab.Len(), model.Width())
	}

	fv := Vectorize(vocab, text)
	p := model.Posterior(fv)

	label := Ham
	if p[Spam] > p[Ham] {
		label = Spam
	}
	return &Prediction{
		Label:      label,
		Confidence: Confidence{Spam: p[Spam], Ham: p[Ham]},
		Features:   fv,
	}, nil
}

// TrainOptions configures Train
type TrainOptions struct {
	Smoothing         float64
	MaxVocabularySize int
}

// DefaultTrainOptions returns Laplace smoothing and an uncapped vocabulary
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{Smoothing: DefaultSmoothing}
}

// Pipeline pairs a fitted model with the vocabulary it was trained on.
// Only Train and NewPipeline create one, so holding a Pipeline means
// holding a trained model.
type Pipeline struct {
	Vocabulary *Vocabulary
	Model      *Model
	TrainedAt  time.Time
}

// NewPipeline assembles a pipeline from a restored vocabulary and model
func NewPipeline(vocab *Vocabulary, model *Model, trainedAt time.Time) (*Pipeline, error) {
	if vocab == nil || model == nil {
		return nil, ErrModelNotTrained
	}
	if vocab.Len() != model.Width() {
		return nil, fmt.Errorf("%w: vocabulary has %d tokens, model has %d features",
			ErrVocabularyMismatch, vocab.Len(), model.Width())
	}
	return &Pipeline{Vocabulary: vocab, Model: model, TrainedAt: trainedAt}, nil
}

// Train builds the vocabulary, vectorizes the corpus and fits a model.
// The training matrix is returned as well so it can be cross-validated.
func Train(docs []Document, opts TrainOptions) (*Pipeline, *TrainingMatrix, error) {
	vocab, err := BuildVocabulary(docs, opts.MaxVocabularySize)
	if err != nil {
		return nil, nil, err
	}

	matrix := BuildMatrix(vocab, docs)
	model, err := NewNaiveBayesTrainer(opts.Smoothing).Fit(matrix)
	if err != nil {
		return nil, nil, err
	}

	return &Pipeline{Vocabulary: vocab, Model: model, TrainedAt: time.Now().UTC()}, matrix, nil
}

// Predict classifies text with the pipeline's model and vocabulary
func (p *Pipeline) Predict(text string) (*Prediction, error) {
	if p == nil {
		return nil, ErrModelNotTrained
	}
	return Predict(p.Model, p.Vocabulary, text)
}
