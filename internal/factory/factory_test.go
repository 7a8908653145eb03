package factory

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-filter/internal/adapters/corpus"
	"github.com/mikey/sms-spam-filter/internal/adapters/report"
	"github.com/mikey/sms-spam-filter/internal/adapters/store"
	"github.com/mikey/sms-spam-filter/internal/config"
)

func newConfig() *config.Config {
	return config.NewFromViper(config.NewEmptyViper())
}

func TestCreateCorpusLoader(t *testing.T) {
	tests := []struct {
		format   string
		expected interface{}
	}{
		{format: "auto", expected: &corpus.AutoLoader{}},
		{format: "arff", expected: &corpus.ARFFLoader{}},
		{format: "tsv", expected: &corpus.TSVLoader{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := newConfig()
			cfg.Set("corpus.format", tt.format)

			loader, err := NewCorpusFactory(cfg, zap.NewNop()).CreateCorpusLoader()
			require.NoError(t, err)
			assert.IsType(t, tt.expected, loader)
		})
	}

	cfg := newConfig()
	cfg.Set("corpus.format", "xlsx")
	_, err := NewCorpusFactory(cfg, zap.NewNop()).CreateCorpusLoader()
	assert.Error(t, err)
}

func TestCreateModelStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := newConfig()
	cfg.Set("store.type", "memory")
	s, err := NewStoreFactory(cfg, zap.NewNop()).CreateModelStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)

	cfg.Set("store.type", "file")
	cfg.Set("store.file_dir", filepath.Join(dir, "models"))
	s, err = NewStoreFactory(cfg, zap.NewNop()).CreateModelStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, s)
	assert.DirExists(t, filepath.Join(dir, "models"))

	cfg.Set("store.type", "redis")
	cfg.Set("store.redis_url", "::not a url")
	_, err = NewStoreFactory(cfg, zap.NewNop()).CreateModelStore(ctx)
	assert.Error(t, err)

	cfg.Set("store.type", "tape")
	_, err = NewStoreFactory(cfg, zap.NewNop()).CreateModelStore(ctx)
	assert.ErrorContains(t, err, "unsupported store type: tape")
}

func TestCreateReporter(t *testing.T) {
	textProcessor := NewTextProcessorFactory(zap.NewNop()).CreateTextProcessor()
	var out bytes.Buffer

	cfg := newConfig()
	r, err := NewReportFactory(cfg, textProcessor).CreateReporter(&out, false)
	require.NoError(t, err)
	assert.IsType(t, &report.ConsoleReporter{}, r)

	for _, format := range []string{"json", "yaml"} {
		cfg.Set("report.format", format)
		r, err = NewReportFactory(cfg, textProcessor).CreateReporter(&out, false)
		require.NoError(t, err)
		assert.IsType(t, &report.StructuredReporter{}, r)
	}

	cfg.Set("report.format", "pdf")
	_, err = NewReportFactory(cfg, textProcessor).CreateReporter(&out, false)
	assert.Error(t, err)
}

func TestNewClassifierService(t *testing.T) {
	cfg := newConfig()
	cfg.Set("model.name", "sms")

	svc := NewClassifierService(cfg, corpus.NewTSVLoader(zap.NewNop()), store.NewMemoryStore(zap.NewNop()), zap.NewNop())
	assert.Equal(t, "sms", svc.ModelName())
}
