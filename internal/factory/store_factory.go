package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/sms-spam-filter/internal/adapters/store"
	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/ports"
	"go.uber.org/zap"
)

// StoreFactory creates model stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateModelStore creates a model store based on the configuration
func (f *StoreFactory) CreateModelStore(ctx context.Context) (ports.ModelStore, error) {
	storeCfg := f.cfg.GetStore()
	logger := f.logger.Named("store").With(zap.String("type", storeCfg.Type))

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(logger), nil
	case "file":
		return store.NewFileStore(storeCfg.FileDir, logger)
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, logger)
	case "mysql":
		return store.NewMySQLStore(ctx, storeCfg.MySQLDSN, logger)
	case "redis":
		return store.NewRedisStore(ctx, storeCfg.RedisURL, storeCfg.RedisKeyPrefix, logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
