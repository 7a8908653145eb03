package store

import (
	"context"
	"sync"

	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// MemoryStore keeps encoded models in process memory. Models are stored
// encoded so callers never share state with the store.
type MemoryStore struct {
	models map[string][]byte
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory model store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		models: make(map[string][]byte),
		logger: logger,
	}
}

// Save stores a pipeline under name
func (s *MemoryStore) Save(ctx context.Context, name string, pipeline *core.Pipeline) error {
	data, err := Encode(pipeline)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[name] = data
	s.logger.Debug("Stored model in memory", zap.String("model", name), zap.Int("bytes", len(data)))
	return nil
}

// Load retrieves the pipeline stored under name
func (s *MemoryStore) Load(ctx context.Context, name string) (*core.Pipeline, error) {
	s.mu.RLock()
	data, ok := s.models[name]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

// Delete removes the pipeline stored under name
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[name]; !ok {
		return ErrNotFound
	}
	delete(s.models, name)
	return nil
}

// Close releases nothing; it exists so every store can be closed alike
func (s *MemoryStore) Close() error {
	return nil
}

var _ core.ModelRepository = (*MemoryStore)(nil)
