package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassifierService is the core service for training, evaluating and
// applying the spam classifier
type ClassifierService struct {
	loader     CorpusLoader
	repository ModelRepository
	logger     *zap.Logger
	modelName  string
	options    TrainOptions
	workers    int
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	loader CorpusLoader,
	repository ModelRepository,
	logger *zap.Logger,
	modelName string,
	options TrainOptions,
	workers int,
) *ClassifierService {
	return &ClassifierService{
		loader:     loader,
		repository: repository,
		logger:     logger,
		modelName:  modelName,
		options:    options,
		workers:    workers,
	}
}

// ModelName returns the name pipelines are persisted under
func (s *ClassifierService) ModelName() string {
	return s.modelName
}

// loadCorpus reads the dataset at path
func (s *ClassifierService) loadCorpus(ctx context.Context, path string) ([]Document, error) {
	docs, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	spam := countLabel(docs, Spam)
	s.logger.Info("Loaded corpus",
		zap.String("path", path),
		zap.Int("documents", len(docs)),
		zap.Int("spam", spam),
		zap.Int("ham", len(docs)-spam))
	return docs, nil
}

// Train fits a pipeline on the corpus at path and persists it
func (s *ClassifierService) Train(ctx context.Context, path string) (*TrainingResult, error) {
	docs, err := s.loadCorpus(ctx, path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pipeline, matrix, err := Train(docs, s.options)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}
	s.logger.Info("Trained model",
		zap.String("model", s.modelName),
		zap.Int("vocabulary_size", pipeline.Vocabulary.Len()),
		zap.Float64("smoothing", pipeline.Model.Smoothing()),
		zap.Duration("duration", time.Since(start)))

	if err := s.repository.Save(ctx, s.modelName, pipeline); err != nil {
		return nil, fmt.Errorf("failed to save model: %w", err)
	}
	s.logger.Debug("Saved model", zap.String("model", s.modelName))

	return &TrainingResult{
		ModelName:      s.modelName,
		Documents:      len(docs),
		SpamDocuments:  pipeline.Model.ClassCount(Spam),
		HamDocuments:   pipeline.Model.ClassCount(Ham),
		VocabularySize: pipeline.Vocabulary.Len(),
		TrainedAt:      pipeline.TrainedAt,
		Pipeline:       pipeline,
		Matrix:         matrix,
	}, nil
}

// Evaluate cross-validates a training matrix with k folds
func (s *ClassifierService) Evaluate(ctx context.Context, matrix *TrainingMatrix, k int, seed int64) (*Metrics, error) {
	start := time.Now()
	metrics, err := CrossValidate(ctx, matrix, NewNaiveBayesTrainer(s.options.Smoothing), k, seed, s.workers)
	if err != nil {
		return nil, fmt.Errorf("cross-validation failed: %w", err)
	}

	for _, fold := range metrics.FoldResults {
		s.logger.Debug("Fold evaluated",
			zap.Int("fold", fold.Fold),
			zap.Int("train_rows", fold.TrainRows),
			zap.Int("test_rows", fold.TestRows),
			zap.Int("correct", fold.Confusion.Correct()))
	}
	s.logger.Info("Cross-validation complete",
		zap.Int("folds", k),
		zap.Int64("seed", seed),
		zap.Float64("accuracy", metrics.Accuracy),
		zap.Duration("duration", time.Since(start)))
	return metrics, nil
}

// EvaluateCorpus builds a training matrix from the corpus at path and
// cross-validates it without persisting anything
func (s *ClassifierService) EvaluateCorpus(ctx context.Context, path string, k int, seed int64) (*Metrics, error) {
	docs, err := s.loadCorpus(ctx, path)
	if err != nil {
		return nil, err
	}

	vocab, err := BuildVocabulary(docs, s.options.MaxVocabularySize)
	if err != nil {
		return nil, fmt.Errorf("failed to build vocabulary: %w", err)
	}
	s.logger.Debug("Built vocabulary", zap.Int("vocabulary_size", vocab.Len()))

	return s.Evaluate(ctx, BuildMatrix(vocab, docs), k, seed)
}

// LoadPipeline retrieves the persisted pipeline
func (s *ClassifierService) LoadPipeline(ctx context.Context) (*Pipeline, error) {
	pipeline, err := s.repository.Load(ctx, s.modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %q: %w", s.modelName, err)
	}
	s.logger.Debug("Loaded model",
		zap.String("model", s.modelName),
		zap.Int("vocabulary_size", pipeline.Vocabulary.Len()),
		zap.Time("trained_at", pipeline.TrainedAt))
	return pipeline, nil
}

// Classify predicts the label of one message
func (s *ClassifierService) Classify(ctx context.Context, pipeline *Pipeline, text string) (*ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prediction, err := pipeline.Predict(text)
	if err != nil {
		return nil, err
	}

	result := &ClassificationResult{
		Message:      text,
		Label:        prediction.Label,
		Confidence:   prediction.Confidence,
		KnownTokens:  len(prediction.Features.Active()),
		AnalyzedAt:   time.Now(),
		ModelUsed:    s.modelName,
		ProcessingID: uuid.NewString(),
	}

	s.logger.Debug("Classified message",
		zap.String("processing_id", result.ProcessingID),
		zap.Stringer("label", result.Label),
		zap.Float64("p_spam", result.Confidence.Spam),
		zap.Int("known_tokens", result.KnownTokens))
	return result, nil
}

// Inspect describes the persisted pipeline with its n most indicative tokens per class
func (s *ClassifierService) Inspect(ctx context.Context, n int) (*ModelInfo, error) {
	pipeline, err := s.LoadPipeline(ctx)
	if err != nil {
		return nil, err
	}

	return &ModelInfo{
		ModelName:      s.modelName,
		VocabularySize: pipeline.Vocabulary.Len(),
		SpamDocuments:  pipeline.Model.ClassCount(Spam),
		HamDocuments:   pipeline.Model.ClassCount(Ham),
		Smoothing:      pipeline.Model.Smoothing(),
		TrainedAt:      pipeline.TrainedAt,
		TopSpamTokens:  pipeline.Model.TopTokens(pipeline.Vocabulary, Spam, n),
		TopHamTokens:   pipeline.Model.TopTokens(pipeline.Vocabulary, Ham, n),
	}, nil
}

func countLabel(docs []Document, label Label) int {
	n := 0
	for _, doc := range docs {
		if doc.Label == label {
			n++
		}
	}
	return n
}
