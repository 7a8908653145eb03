package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// TSVLoader reads the SMS Spam Collection layout: one message per line,
// label and text separated by a tab. Messages are taken verbatim, quotes included.
type TSVLoader struct {
	logger *zap.Logger
}

// NewTSVLoader creates a new tab-separated corpus loader
func NewTSVLoader(logger *zap.Logger) *TSVLoader {
	return &TSVLoader{logger: logger}
}

// Load reads every document of the file at path
func (l *TSVLoader) Load(ctx context.Context, path string) ([]core.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	docs, err := l.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Parsed TSV corpus", zap.String("path", path), zap.Int("documents", len(docs)))
	return docs, nil
}

// Parse reads documents from r. Blank lines are skipped.
func (l *TSVLoader) Parse(ctx context.Context, r io.Reader) ([]core.Document, error) {
	var docs []core.Document

	scanner := newScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		label, message, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected label and text separated by a tab", ErrMalformed, line)
		}

		doc, err := core.NewDocument(label, message)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return docs, nil
}

var _ core.CorpusLoader = (*TSVLoader)(nil)
