package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticMatrix(t *testing.T, n int) *TrainingMatrix {
	t.Helper()
	spamWords := []string{"win", "free", "prize", "claim", "urgent", "cash", "txt"}
	hamWords := []string{"lunch", "see", "later", "home", "love", "tomorrow", "ok"}

	docs := make([]Document, 0, n)
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			text := fmt.Sprintf("%s %s %s now", spamWords[i%7], spamWords[(i+2)%7], spamWords[(i+4)%7])
			docs = append(docs, Document{Text: text, Label: Spam})
		} else {
			text := fmt.Sprintf("%s %s %s now", hamWords[i%7], hamWords[(i+3)%7], hamWords[(i+5)%7])
			docs = append(docs, Document{Text: text, Label: Ham})
		}
	}

	vocab, err := BuildVocabulary(docs, 0)
	require.NoError(t, err)
	return BuildMatrix(vocab, docs)
}

func TestCrossValidateInvalidFoldCount(t *testing.T) {
	matrix := syntheticMatrix(t, 5)
	trainer := NewNaiveBayesTrainer(DefaultSmoothing)

	for _, k := range []int{-1, 0, 1, 6} {
		_, err := CrossValidate(context.Background(), matrix, trainer, k, 1, 1)
		assert.ErrorIs(t, err, ErrInvalidFoldCount, "k=%d", k)
	}
}

func TestCrossValidateScenarioKOne(t *testing.T) {
	vocab, err := BuildVocabulary(scenarioCorpus(), 0)
	require.NoError(t, err)

	_, err = CrossValidate(context.Background(), BuildMatrix(vocab, scenarioCorpus()), NewNaiveBayesTrainer(1), 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidFoldCount)
}

func TestCrossValidateMetrics(t *testing.T) {
	matrix := syntheticMatrix(t, 60)

	metrics, err := CrossValidate(context.Background(), matrix, NewNaiveBayesTrainer(DefaultSmoothing), 10, 1, 4)
	require.NoError(t, err)

	assert.Equal(t, 10, metrics.Folds)
	assert.Equal(t, int64(1), metrics.Seed)
	assert.Equal(t, 60, metrics.Total)
	assert.Equal(t, 60, metrics.Confusion.Total())
	assert.Equal(t, metrics.Total, metrics.Correct+metrics.Incorrect)
	assert.GreaterOrEqual(t, metrics.Accuracy, 0.0)
	assert.LessOrEqual(t, metrics.Accuracy, 1.0)
	assert.Greater(t, metrics.Accuracy, 0.9)
	assert.LessOrEqual(t, metrics.MeanAbsoluteError, metrics.RootMeanSquaredError+1e-12)

	// 20 spam, 40 ham
	assert.Equal(t, 20, metrics.Confusion.actual(Spam.Index()))
	assert.Equal(t, 40, metrics.Confusion.actual(Ham.Index()))

	testRows := 0
	for _, fold := range metrics.FoldResults {
		assert.Equal(t, 6, fold.TestRows)
		assert.Equal(t, 54, fold.TrainRows)
		testRows += fold.Confusion.Total()
	}
	assert.Equal(t, 60, testRows)

	for _, l := range Labels {
		cls, ok := metrics.PerClass[l]
		require.True(t, ok)
		assert.GreaterOrEqual(t, cls.Precision, 0.0)
		assert.LessOrEqual(t, cls.Precision, 1.0)
		assert.GreaterOrEqual(t, cls.Recall, 0.0)
		assert.LessOrEqual(t, cls.Recall, 1.0)
	}
}

func TestCrossValidateDeterministicAcrossWorkers(t *testing.T) {
	matrix := syntheticMatrix(t, 47)
	trainer := NewNaiveBayesTrainer(DefaultSmoothing)

	sequential, err := CrossValidate(context.Background(), matrix, trainer, 5, 42, 1)
	require.NoError(t, err)
	parallel, err := CrossValidate(context.Background(), matrix, trainer, 5, 42, 8)
	require.NoError(t, err)

	assert.Equal(t, sequential.Confusion, parallel.Confusion)
	assert.Equal(t, sequential.Accuracy, parallel.Accuracy)
	assert.InDelta(t, sequential.MeanAbsoluteError, parallel.MeanAbsoluteError, 1e-12)
}

func TestCrossValidateDoesNotMutateMatrix(t *testing.T) {
	matrix := syntheticMatrix(t, 20)
	before := make([]Label, matrix.Len())
	for i, row := range matrix.Rows {
		before[i] = row.Label
	}

	_, err := CrossValidate(context.Background(), matrix, NewNaiveBayesTrainer(DefaultSmoothing), 4, 7, 2)
	require.NoError(t, err)

	for i, row := range matrix.Rows {
		assert.Equal(t, before[i], row.Label)
	}
}

func TestCrossValidateLeaveOneOut(t *testing.T) {
	matrix := syntheticMatrix(t, 9)

	metrics, err := CrossValidate(context.Background(), matrix, NewNaiveBayesTrainer(DefaultSmoothing), 9, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, metrics.Total)
	for _, fold := range metrics.FoldResults {
		assert.Equal(t, 1, fold.TestRows)
	}
}

type failingTrainer struct {
	calls atomic.Int32
}

func (f *failingTrainer) Fit(matrix *TrainingMatrix) (*Model, error) {
	if f.calls.Add(1) == 2 {
		return nil, errors.New("boom")
	}
	return NewNaiveBayesTrainer(DefaultSmoothing).Fit(matrix)
}

func TestCrossValidateFoldFailureAborts(t *testing.T) {
	matrix := syntheticMatrix(t, 30)

	metrics, err := CrossValidate(context.Background(), matrix, &failingTrainer{}, 5, 1, 1)
	assert.Nil(t, metrics)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCrossValidateCanceledContext(t *testing.T) {
	matrix := syntheticMatrix(t, 30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CrossValidate(ctx, matrix, NewNaiveBayesTrainer(DefaultSmoothing), 5, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFoldBounds(t *testing.T) {
	var sizes []int
	prevEnd := 0
	for fold := 0; fold < 3; fold++ {
		start, end := foldBounds(10, 3, fold)
		assert.Equal(t, prevEnd, start)
		sizes = append(sizes, end-start)
		prevEnd = end
	}
	assert.Equal(t, []int{4, 3, 3}, sizes)
	assert.Equal(t, 10, prevEnd)
}

func TestKappa(t *testing.T) {
	perfect := ConfusionMatrix{{5, 0}, {0, 5}}
	assert.InDelta(t, 1.0, kappa(perfect), 1e-12)

	// Always predicting ham on a balanced set agrees only by chance.
	chance := ConfusionMatrix{{5, 0}, {5, 0}}
	assert.InDelta(t, 0.0, kappa(chance), 1e-12)
}

func TestConfusionMatrixAdd(t *testing.T) {
	a := ConfusionMatrix{{1, 2}, {3, 4}}
	b := ConfusionMatrix{{4, 3}, {2, 1}}
	sum := a.Add(b)
	assert.Equal(t, ConfusionMatrix{{5, 5}, {5, 5}}, sum)
	assert.Equal(t, ConfusionMatrix{{1, 2}, {3, 4}}, a)
	assert.Equal(t, 20, sum.Total())
	assert.Equal(t, 10, sum.Correct())
}
