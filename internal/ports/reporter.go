package ports

import (
	"github.com/mikey/sms-spam-filter/internal/core"
)

// Reporter renders the outcome of each command
type Reporter interface {
	// ReportTraining renders a completed training run
	ReportTraining(result *core.TrainingResult) error

	// ReportMetrics renders a cross-validation summary
	ReportMetrics(metrics *core.Metrics) error

	// ReportClassification renders the prediction for one message
	ReportClassification(result *core.ClassificationResult) error

	// ReportModelInfo renders a description of a stored model
	ReportModelInfo(info *core.ModelInfo) error
}
