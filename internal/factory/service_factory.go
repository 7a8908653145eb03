package factory

import (
	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// NewClassifierService creates the classifier service from configuration
func NewClassifierService(
	cfg *config.Config,
	loader core.CorpusLoader,
	repository core.ModelRepository,
	logger *zap.Logger,
) *core.ClassifierService {
	model := cfg.GetModel()
	return core.NewClassifierService(
		loader,
		repository,
		logger.Named("classifier"),
		model.Name,
		core.TrainOptions{
			Smoothing:         model.Smoothing,
			MaxVocabularySize: model.MaxVocabularySize,
		},
		cfg.GetEvaluation().Workers,
	)
}
