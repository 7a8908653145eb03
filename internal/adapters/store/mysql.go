package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// MySQLStore keeps models in a MySQL database
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to dsn and creates the models table
func NewMySQLStore(ctx context.Context, dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS models (
			name VARCHAR(255) PRIMARY KEY,
			payload LONGBLOB NOT NULL,
			vocabulary_size INT NOT NULL,
			trained_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Save stores a pipeline under name
func (s *MySQLStore) Save(ctx context.Context, name string, pipeline *core.Pipeline) error {
	data, err := Encode(pipeline)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO models (name, payload, vocabulary_size, trained_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			vocabulary_size = VALUES(vocabulary_size),
			trained_at = VALUES(trained_at)
	`, name, data, pipeline.Vocabulary.Len(), pipeline.TrainedAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to insert model: %w", err)
	}

	s.logger.Debug("Stored model in MySQL", zap.String("model", name), zap.Int("bytes", len(data)))
	return nil
}

// Load retrieves the pipeline stored under name
func (s *MySQLStore) Load(ctx context.Context, name string) (*core.Pipeline, error) {
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
func (s *MySQLStore) Delete(ctx context.Context, name string) error {
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
func (s *MySQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close MySQL database: %w", err)
	}
	return nil
}

var _ core.ModelRepository = (*MySQLStore)(nil)
