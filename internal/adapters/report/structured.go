package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/ports"
	"gopkg.in/yaml.v3"
)

// Encoding selects the serialization of a StructuredReporter
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// StructuredReporter writes each report as one JSON or YAML document
type StructuredReporter struct {
	out      io.Writer
	encoding Encoding
}

// NewStructuredReporter creates a reporter for the given encoding
func NewStructuredReporter(out io.Writer, encoding Encoding) (*StructuredReporter, error) {
	switch encoding {
	case EncodingJSON, EncodingYAML:
	default:
		return nil, fmt.Errorf("unsupported report encoding: %s", encoding)
	}
	return &StructuredReporter{out: out, encoding: encoding}, nil
}

// ReportTraining encodes the training result
func (r *StructuredReporter) ReportTraining(result *core.TrainingResult) error {
	return r.encode(result)
}

// ReportMetrics encodes the cross-validation metrics
func (r *StructuredReporter) ReportMetrics(metrics *core.Metrics) error {
	return r.encode(metrics)
}

// ReportClassification encodes one classification
func (r *StructuredReporter) ReportClassification(result *core.ClassificationResult) error {
	return r.encode(result)
}

// ReportModelInfo encodes the model description
func (r *StructuredReporter) ReportModelInfo(info *core.ModelInfo) error {
	return r.encode(info)
}

func (r *StructuredReporter) encode(v interface{}) error {
	switch r.encoding {
	case EncodingYAML:
		// One document per report.
		if _, err := io.WriteString(r.out, "---\n"); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	}
}

var _ ports.Reporter = (*StructuredReporter)(nil)
