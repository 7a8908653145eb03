package factory

import (
	"fmt"
	"io"

	"github.com/mikey/sms-spam-filter/internal/adapters/report"
	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/ports"
	"github.com/mikey/sms-spam-filter/internal/utils"
)

// ReportFactory creates reporters based on configuration
type ReportFactory struct {
	cfg           *config.Config
	textProcessor *utils.TextProcessor
}

// NewReportFactory creates a new report factory
func NewReportFactory(cfg *config.Config, textProcessor *utils.TextProcessor) *ReportFactory {
	return &ReportFactory{
		cfg:           cfg,
		textProcessor: textProcessor,
	}
}

// CreateReporter creates a reporter for the configured format writing to out
func (f *ReportFactory) CreateReporter(out io.Writer, verbose bool) (ports.Reporter, error) {
	reportCfg := f.cfg.GetReport()

	switch reportCfg.Format {
	case "text", "":
		return report.NewConsoleReporter(out, f.textProcessor, verbose, reportCfg.MaxMessageSize), nil
	case "json":
		return report.NewStructuredReporter(out, report.EncodingJSON)
	case "yaml":
		return report.NewStructuredReporter(out, report.EncodingYAML)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", reportCfg.Format)
	}
}
