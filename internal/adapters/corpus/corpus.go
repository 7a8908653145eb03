package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikey/sms-spam-filter/internal/core"
	"go.uber.org/zap"
)

// ErrMalformed is returned when a dataset cannot be parsed
var ErrMalformed = errors.New("corpus: malformed dataset")

// Format identifies a dataset file format
type Format string

const (
	FormatAuto Format = "auto"
	FormatARFF Format = "arff"
	FormatTSV  Format = "tsv"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, FormatARFF, FormatTSV:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unsupported corpus format: %s", name)
	}
}

// maxLineSize bounds a single dataset line
const maxLineSize = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// DetectFormat guesses the format of the dataset at path, first by
// extension and then by looking for an ARFF @relation header
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".arff":
		return FormatARFF, nil
	case ".tsv":
		return FormatTSV, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	scanner := newScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "@relation") {
			return FormatARFF, nil
		}
		return FormatTSV, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read corpus: %w", err)
	}
	return FormatTSV, nil
}

// AutoLoader picks the ARFF or TSV loader per file
type AutoLoader struct {
	arff   *ARFFLoader
	tsv    *TSVLoader
	logger *zap.Logger
}

// NewAutoLoader creates a new format-detecting loader
func NewAutoLoader(logger *zap.Logger) *AutoLoader {
	return &AutoLoader{
		arff:   NewARFFLoader(logger),
		tsv:    NewTSVLoader(logger),
		logger: logger,
	}
}

// Load detects the dataset format and reads its documents
func (l *AutoLoader) Load(ctx context.Context, path string) ([]core.Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Detected corpus format", zap.String("path", path), zap.String("format", string(format)))

	if format == FormatARFF {
		return l.arff.Load(ctx, path)
	}
	return l.tsv.Load(ctx, path)
}

var _ core.CorpusLoader = (*AutoLoader)(nil)
