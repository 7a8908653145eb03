package core

import (
	"time"
)

// ClassificationResult represents the result of classifying one message
type ClassificationResult struct {
	Message      string     `json:"message" yaml:"message"`
	Label        Label      `json:"label" yaml:"label"`
	Confidence   Confidence `json:"confidence" yaml:"confidence"`
	KnownTokens  int        `json:"known_tokens" yaml:"known_tokens"`
	AnalyzedAt   time.Time  `json:"analyzed_at" yaml:"analyzed_at"`
	ModelUsed    string     `json:"model_used" yaml:"model_used"`
	ProcessingID string     `json:"processing_id" yaml:"processing_id"`
}

// IsSpam reports whether the message was classified as spam
func (r *ClassificationResult) IsSpam() bool {
	return r.Label == Spam
}

// TrainingResult summarizes a training run
type TrainingResult struct {
	ModelName      string    `json:"model_name" yaml:"model_name"`
	Documents      int       `json:"documents" yaml:"documents"`
	SpamDocuments  int       `json:"spam_documents" yaml:"spam_documents"`
	HamDocuments   int       `json:"ham_documents" yaml:"ham_documents"`
	VocabularySize int       `json:"vocabulary_size" yaml:"vocabulary_size"`
	TrainedAt      time.Time `json:"trained_at" yaml:"trained_at"`

	Pipeline *Pipeline       `json:"-" yaml:"-"`
	Matrix   *TrainingMatrix `json:"-" yaml:"-"`
}

// ModelInfo describes a persisted pipeline
type ModelInfo struct {
	ModelName      string       `json:"model_name" yaml:"model_name"`
	VocabularySize int          `json:"vocabulary_size" yaml:"vocabulary_size"`
	SpamDocuments  int          `json:"spam_documents" yaml:"spam_documents"`
	HamDocuments   int          `json:"ham_documents" yaml:"ham_documents"`
	Smoothing      float64      `json:"smoothing" yaml:"smoothing"`
	TrainedAt      time.Time    `json:"trained_at" yaml:"trained_at"`
	TopSpamTokens  []TokenScore `json:"top_spam_tokens" yaml:"top_spam_tokens"`
	TopHamTokens   []TokenScore `json:"top_ham_tokens" yaml:"top_ham_tokens"`
}
