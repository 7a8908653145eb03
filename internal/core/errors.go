package core

import "errors"

var (
	// ErrEmptyCorpus is returned when a vocabulary is built from zero documents
	ErrEmptyCorpus = errors.New("core: empty corpus")
	// ErrUnknownLabel is returned when a label is neither spam nor ham
	ErrUnknownLabel = errors.New("core: unknown label")
	// ErrEmptyTrainingSet is returned when fitting a model on zero rows
	ErrEmptyTrainingSet = errors.New("core: empty training set")
	// ErrInvalidFoldCount is returned when k < 2 or k exceeds the number of rows
	ErrInvalidFoldCount = errors.New("core: invalid fold count")
	// ErrModelNotTrained is returned when predicting without a fitted model
	ErrModelNotTrained = errors.New("core: model not trained")
	// ErrInvalidSmoothing is returned when the additive smoothing constant is not positive
	ErrInvalidSmoothing = errors.New("core: smoothing must be positive")
	// ErrVocabularyMismatch is returned when a model and a vocabulary disagree on feature count
	ErrVocabularyMismatch = errors.New("core: vocabulary does not match model")
)
