package core

import (
	"context"
)

// CorpusLoader reads labeled documents from a dataset
type CorpusLoader interface {
	// Load reads every document of the dataset at path
	Load(ctx context.Context, path string) ([]Document, error)
}

// ModelRepository persists trained pipelines by name
type ModelRepository interface {
	// Save stores a pipeline, replacing any previous one with the same name
	Save(ctx context.Context, name string, pipeline *Pipeline) error

	// Load retrieves a pipeline
	Load(ctx context.Context, name string) (*Pipeline, error)

	// Delete removes a pipeline
	Delete(ctx context.Context, name string) error
}
