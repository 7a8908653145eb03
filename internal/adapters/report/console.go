package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/ports"
	"github.com/mikey/sms-spam-filter/internal/utils"
)

// ConsoleReporter writes human-readable reports
type ConsoleReporter struct {
	out            io.Writer
	textProcessor  *utils.TextProcessor
	verbose        bool
	maxMessageSize int
}

// NewConsoleReporter creates a reporter writing to out. Echoed messages are
// cut to maxMessageSize bytes; verbose adds per-fold and per-class detail.
func NewConsoleReporter(out io.Writer, textProcessor *utils.TextProcessor, verbose bool, maxMessageSize int) *ConsoleReporter {
	return &ConsoleReporter{
		out:            out,
		textProcessor:  textProcessor,
		verbose:        verbose,
		maxMessageSize: maxMessageSize,
	}
}

// ReportTraining prints the size of the trained model
func (r *ConsoleReporter) ReportTraining(result *core.TrainingResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Training ===\n")
	fmt.Fprintf(&b, "Model: %s\n", result.ModelName)
	fmt.Fprintf(&b, "Documents: %d (spam %d, ham %d)\n", result.Documents, result.SpamDocuments, result.HamDocuments)
	fmt.Fprintf(&b, "Vocabulary size: %d\n", result.VocabularySize)
	fmt.Fprintf(&b, "Trained at: %s\n", result.TrainedAt.Format(time.RFC3339))
	return r.write(b.String())
}

// ReportMetrics prints a cross-validation summary with its confusion matrix
func (r *ConsoleReporter) ReportMetrics(metrics *core.Metrics) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Cross-validation ===\n")
	fmt.Fprintf(&b, "Folds: %d, seed: %d\n\n", metrics.Folds, metrics.Seed)
	b.WriteString(Summary(metrics))
	b.WriteString("\n")
	b.WriteString(ConfusionTable(metrics.Confusion))

	if r.verbose {
		fmt.Fprintf(&b, "\n=== Detailed Accuracy By Class ===\n\n")
		fmt.Fprintf(&b, "%10s %10s %10s %10s\n", "Precision", "Recall", "F-Measure", "Class")
		for _, label := range core.Labels {
			m := metrics.PerClass[label]
			fmt.Fprintf(&b, "%10.3f %10.3f %10.3f %10s\n", m.Precision, m.Recall, m.F1, label)
		}

		fmt.Fprintf(&b, "\n=== Folds ===\n\n")
		for _, fold := range metrics.FoldResults {
			fmt.Fprintf(&b, "Fold %2d: train %d, test %d, correct %d\n",
				fold.Fold, fold.TrainRows, fold.TestRows, fold.Confusion.Correct())
		}
	}
	return r.write(b.String())
}

// ReportClassification prints the predicted class and both confidences
func (r *ConsoleReporter) ReportClassification(result *core.ClassificationResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Predicting class for message: %q\n", r.textProcessor.ProcessText(result.Message, r.maxMessageSize))
	fmt.Fprintf(&b, "Predicted class: %s\n", result.Label)
	fmt.Fprintf(&b, "Confidence level for spam: %.2f%%\n", result.Confidence.Spam*100)
	fmt.Fprintf(&b, "Confidence level for ham: %.2f%%\n", result.Confidence.Ham*100)
	if r.verbose {
		fmt.Fprintf(&b, "Known tokens: %d\n", result.KnownTokens)
		fmt.Fprintf(&b, "Model used: %s\n", result.ModelUsed)
		fmt.Fprintf(&b, "Processing ID: %s\n", result.ProcessingID)
	}
	return r.write(b.String())
}

// ReportModelInfo prints model statistics and its most indicative tokens
func (r *ConsoleReporter) ReportModelInfo(info *core.ModelInfo) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Model ===\n")
	fmt.Fprintf(&b, "Name: %s\n", info.ModelName)
	fmt.Fprintf(&b, "Trained at: %s\n", info.TrainedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Documents: spam %d, ham %d\n", info.SpamDocuments, info.HamDocuments)
	fmt.Fprintf(&b, "Vocabulary size: %d\n", info.VocabularySize)
	fmt.Fprintf(&b, "Smoothing: %g\n", info.Smoothing)

	writeTokens(&b, "Top spam tokens", info.TopSpamTokens)
	writeTokens(&b, "Top ham tokens", info.TopHamTokens)
	return r.write(b.String())
}

func writeTokens(b *strings.Builder, title string, tokens []core.TokenScore) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(tokens) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, t := range tokens {
		fmt.Fprintf(b, "  %-20s %8.4f  spam %d, ham %d\n", t.Token, t.Score, t.SpamCount, t.HamCount)
	}
}

func (r *ConsoleReporter) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Summary formats metrics the way classic evaluation summaries lay them out
func Summary(metrics *core.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-40s%6d%19.4f %%\n", "Correctly Classified Instances", metrics.Correct, metrics.Accuracy*100)
	fmt.Fprintf(&b, "%-40s%6d%19.4f %%\n", "Incorrectly Classified Instances", metrics.Incorrect, errorRate(metrics)*100)
	fmt.Fprintf(&b, "%-40s%11.4f\n", "Kappa statistic", metrics.Kappa)
	fmt.Fprintf(&b, "%-40s%11.4f\n", "Mean absolute error", metrics.MeanAbsoluteError)
	fmt.Fprintf(&b, "%-40s%11.4f\n", "Root mean squared error", metrics.RootMeanSquaredError)
	fmt.Fprintf(&b, "%-40s%6d\n", "Total Number of Instances", metrics.Total)
	return b.String()
}

func errorRate(metrics *core.Metrics) float64 {
	if metrics.Total == 0 {
		return 0
	}
	return float64(metrics.Incorrect) / float64(metrics.Total)
}

// ConfusionTable formats a confusion matrix with one row per actual class
func ConfusionTable(cm core.ConfusionMatrix) string {
	var b strings.Builder
	b.WriteString("=== Confusion Matrix ===\n\n")
	fmt.Fprintf(&b, "%6s %6s   <-- classified as\n", "a", "b")
	letters := [core.NumClasses]string{"a", "b"}
	for _, actual := range core.Labels {
		fmt.Fprintf(&b, "%6d %6d |   %s = %s\n",
			cm[actual][core.Ham], cm[actual][core.Spam], letters[actual], actual)
	}
	return b.String()
}

var _ ports.Reporter = (*ConsoleReporter)(nil)
