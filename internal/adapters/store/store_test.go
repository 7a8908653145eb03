package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func trainedPipeline(t *testing.T) *core.Pipeline {
	t.Helper()
	docs := []core.Document{
		{Text: "win money now", Label: core.Spam},
		{Text: "win a prize now", Label: core.Spam},
		{Text: "see you at lunch", Label: core.Ham},
		{Text: "lunch at noon", Label: core.Ham},
	}
	pipeline, _, err := core.Train(docs, core.DefaultTrainOptions())
	require.NoError(t, err)
	pipeline.TrainedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return pipeline
}

func assertSamePipeline(t *testing.T, want, got *core.Pipeline) {
	t.Helper()
	assert.Equal(t, want.Vocabulary.Tokens(), got.Vocabulary.Tokens())
	assert.Equal(t, want.Model.State(), got.Model.State())
	assert.True(t, want.TrainedAt.Equal(got.TrainedAt))

	for _, text := range []string{"win money", "lunch today", "unseen words only"} {
		wp, err := want.Predict(text)
		require.NoError(t, err)
		gp, err := got.Predict(text)
		require.NoError(t, err)
		assert.Equal(t, wp.Label, gp.Label, text)
		assert.InDelta(t, wp.Confidence.Spam, gp.Confidence.Spam, 1e-12, text)
	}
}

func TestCodecRestoresPredictions(t *testing.T) {
	pipeline := trainedPipeline(t)

	data, err := Encode(pipeline)
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)
	assertSamePipeline(t, pipeline, restored)
}

func TestCodecErrors(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, core.ErrModelNotTrained)

	_, err = Decode([]byte(`{"version":99}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)

	mismatched := `{"version":1,"vocabulary":["a","b"],"model":{"smoothing":1,"width":1,"class_counts":[1,1],"feature_counts":[[1],[0]]}}`
	_, err = Decode([]byte(mismatched))
	assert.ErrorIs(t, err, core.ErrVocabularyMismatch)

	duplicate := `{"version":1,"vocabulary":["a","a"],"model":{"smoothing":1,"width":2,"class_counts":[1,1],"feature_counts":[[1,0],[0,1]]}}`
	_, err = Decode([]byte(duplicate))
	assert.Error(t, err)
}

type closingRepository interface {
	core.ModelRepository
	Close() error
}

func exerciseRepository(t *testing.T, repo closingRepository) {
	t.Helper()
	ctx := context.Background()
	pipeline := trainedPipeline(t)

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, "sms", pipeline))
	loaded, err := repo.Load(ctx, "sms")
	require.NoError(t, err)
	assertSamePipeline(t, pipeline, loaded)

	// Saving again replaces the stored model.
	other := trainedPipeline(t)
	other.TrainedAt = other.TrainedAt.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, "sms", other))
	loaded, err = repo.Load(ctx, "sms")
	require.NoError(t, err)
	assert.True(t, other.TrainedAt.Equal(loaded.TrainedAt))

	require.NoError(t, repo.Delete(ctx, "sms"))
	_, err = repo.Load(ctx, "sms")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "sms"), ErrNotFound)

	assert.NoError(t, repo.Close())
}

func TestMemoryStore(t *testing.T) {
	exerciseRepository(t, NewMemoryStore(zap.NewNop()))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	repo, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	exerciseRepository(t, repo)

	require.NoError(t, repo.Save(context.Background(), "kept", trainedPipeline(t)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept.json", entries[0].Name())
}

func TestFileStoreRejectsPathNames(t *testing.T) {
	repo, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, repo.Save(context.Background(), name, trainedPipeline(t)), name)
	}
}

func TestSQLiteStore(t *testing.T) {
	repo, err := NewSQLiteStore(filepath.Join(t.TempDir(), "models.db"), zap.NewNop())
	if err != nil {
		t.Skipf("SQLite not available: %v", err)
	}
	exerciseRepository(t, repo)
}
