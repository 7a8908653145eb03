package factory

import (
	"github.com/mikey/sms-spam-filter/internal/adapters/corpus"
	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// CorpusFactory creates corpus loaders based on configuration
type CorpusFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCorpusFactory creates a new corpus factory
func NewCorpusFactory(cfg *config.Config, logger *zap.Logger) *CorpusFactory {
	return &CorpusFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCorpusLoader creates the loader for the configured corpus format
func (f *CorpusFactory) CreateCorpusLoader() (core.CorpusLoader, error) {
	format, err := corpus.ParseFormat(f.cfg.GetCorpus().Format)
	if err != nil {
		return nil, err
	}

	logger := f.logger.Named("corpus")
	switch format {
	case corpus.FormatARFF:
		return corpus.NewARFFLoader(logger), nil
	case corpus.FormatTSV:
		return corpus.NewTSVLoader(logger), nil
	default:
		return corpus.NewAutoLoader(logger), nil
	}
}
