package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore keeps models in a SQLite database
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens the database at dbPath and creates the models table
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS models (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			vocabulary_size INTEGER NOT NULL,
			trained_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save stores a pipeline under name
func (s *SQLiteStore) Save(ctx context.Context, name string, pipeline *core.Pipeline) error {
	data, err := Encode(pipeline)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO models (name, payload, vocabulary_size, trained_at)
		VALUES (?, ?, ?, ?)
	`, name, data, pipeline.Vocabulary.Len(), pipeline.TrainedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert model: %w", err)
	}

	s.logger.Debug("Stored model in SQLite", zap.String("model", name), zap.Int("bytes", len(data)))
	return nil
}

// Load retrieves the pipeline stored under name
func (s *SQLiteStore) Load(ctx context.Context, name string) (*core.Pipeline, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM models WHERE name = ?
	`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query model: %w", err)
	}
	return Decode(data)
}

// Delete removes the pipeline stored under name
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM models WHERE name = ?
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during delete", zap.Error(err))
		return nil
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}

var _ core.ModelRepository = (*SQLiteStore)(nil)
