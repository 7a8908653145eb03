package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mikey/sms-spam-filter/internal/core"
)

var (
	// ErrNotFound is returned when no model is stored under a name
	ErrNotFound = errors.New("model not found")
	// ErrUnsupportedVersion is returned when a stored model has an unknown format version
	ErrUnsupportedVersion = errors.New("unsupported model format version")
)

// FormatVersion is the version of the persisted model document
const FormatVersion = 1

// document is the persisted form of a pipeline
type document struct {
	Version    int             `json:"version"`
	TrainedAt  time.Time       `json:"trained_at"`
	Vocabulary []string        `json:"vocabulary"`
	Model      core.ModelState `json:"model"`
}

// Encode serializes a pipeline to its versioned JSON document
func Encode(pipeline *core.Pipeline) ([]byte, error) {
	if pipeline == nil || pipeline.Model == nil || pipeline.Vocabulary == nil {
		return nil, core.ErrModelNotTrained
	}

	data, err := json.Marshal(document{
		Version:    FormatVersion,
		TrainedAt:  pipeline.TrainedAt,
		Vocabulary: pipeline.Vocabulary.Tokens(),
		Model:      pipeline.Model.State(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	return data, nil
}

// Decode restores a pipeline from its JSON document
func Decode(data []byte) (*core.Pipeline, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	vocab, err := core.NewVocabulary(doc.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("failed to restore vocabulary: %w", err)
	}
	model, err := core.NewModel(doc.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to restore model: %w", err)
	}
	return core.NewPipeline(vocab, model, doc.TrainedAt)
}
