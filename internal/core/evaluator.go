package core

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// DefaultFolds and DefaultSeed reproduce the classic 10-fold, seed 1 evaluation
const (
	DefaultFolds = 10
	DefaultSeed  = 1
)

// ConfusionMatrix counts rows by [actual][predicted] class index
type ConfusionMatrix [NumClasses][NumClasses]int

// Total returns the number of counted rows
func (cm ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// Correct returns the number of rows on the diagonal
func (cm ConfusionMatrix) Correct() int {
	correct := 0
	for c := range cm {
		correct += cm[c][c]
	}
	return correct
}

// Add returns the element-wise sum of two matrices
func (cm ConfusionMatrix) Add(other ConfusionMatrix) ConfusionMatrix {
	for a := range cm {
		for p := range cm[a] {
			cm[a][p] += other[a][p]
		}
	}
	return cm
}

func (cm ConfusionMatrix) actual(c int) int {
	return cm[c][Ham] + cm[c][Spam]
}

func (cm ConfusionMatrix) predicted(c int) int {
	return cm[Ham][c] + cm[Spam][c]
}

// ClassMetrics holds per-class retrieval metrics
type ClassMetrics struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

// FoldResult holds the raw outcome of one fold
type FoldResult struct {
	Fold      int             `json:"fold" yaml:"fold"`
	TrainRows int             `json:"train_rows" yaml:"train_rows"`
	TestRows  int             `json:"test_rows" yaml:"test_rows"`
	Confusion ConfusionMatrix `json:"confusion" yaml:"confusion"`

	absError float64
	sqError  float64
}

// Metrics aggregates all folds of a cross-validation run
type Metrics struct {
	Folds                int                    `json:"folds" yaml:"folds"`
	Seed                 int64                  `json:"seed" yaml:"seed"`
	Total                int                    `json:"total" yaml:"total"`
	Correct              int                    `json:"correct" yaml:"correct"`
	Incorrect            int                    `json:"incorrect" yaml:"incorrect"`
	Accuracy             float64                `json:"accuracy" yaml:"accuracy"`
	Kappa                float64                `json:"kappa" yaml:"kappa"`
	MeanAbsoluteError    float64                `json:"mean_absolute_error" yaml:"mean_absolute_error"`
	RootMeanSquaredError float64                `json:"root_mean_squared_error" yaml:"root_mean_squared_error"`
	Confusion            ConfusionMatrix        `json:"confusion" yaml:"confusion"`
	PerClass             map[Label]ClassMetrics `json:"per_class" yaml:"per_class"`
	FoldResults          []FoldResult           `json:"fold_results" yaml:"fold_results"`
}

// CrossValidate estimates generalization with k-fold cross-validation.
//
// Rows are shuffled with seed and split into k contiguous folds; the first
// n mod k folds hold one extra row. Folds run on up to workers goroutines,
// each fitting an isolated model. The first failing fold cancels the rest
// and its error is returned. The matrix is not modified.
func CrossValidate(ctx context.Context, matrix *TrainingMatrix, trainer Trainer, k int, seed int64, workers int) (*Metrics, error) {
	n := matrix.Len()
	if k < 2 || k > n {
		return nil, fmt.Errorf("%w: k=%d with %d rows", ErrInvalidFoldCount, k, n)
	}
	if workers < 1 {
		workers = 1
	}

	order := rand.New(rand.NewSource(seed)).Perm(n)
	results := make([]FoldResult, k)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for fold := 0; fold < k; fold++ {
		fold := fold // per-iteration copy; preserves Go 1.22+ loopvar semantics under go 1.21
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start, end := foldBounds(n, k, fold)
			res, err := runFold(matrix, trainer, order, start, end)
			if err != nil {
				return fmt.Errorf("fold %d: %w", fold+1, err)
			}
			res.Fold = fold + 1
			results[fold] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(results, k, seed), nil
}

// foldBounds returns the [start, end) range of a fold in the shuffled order
func foldBounds(n, k, fold int) (int, int) {
	size := n / k
	extra := n % k
	start := fold*size + min(fold, extra)
	end := start + size
	if fold < extra {
		end++
	}
	return start, end
}

func runFold(matrix *TrainingMatrix, trainer Trainer, order []int, start, end int) (FoldResult, error) {
	trainIdx := make([]int, 0, len(order)-(end-start))
	trainIdx = append(trainIdx, order[:start]...)
	trainIdx = append(trainIdx, order[end:]...)

	model, err := trainer.Fit(matrix.subset(trainIdx))
	if err != nil {
		return FoldResult{}, err
	}

	res := FoldResult{TrainRows: len(trainIdx), TestRows: end - start}
	for _, idx := range order[start:end] {
		row := matrix.Rows[idx]
		if len(row.Features) != model.Width() {
			return FoldResult{}, fmt.Errorf("%w: row %d", ErrVocabularyMismatch, idx)
		}
		p := model.Posterior(row.Features)
		predicted := Ham
		if p[Spam] > p[Ham] {
			predicted = Spam
		}
		res.Confusion[row.Label][predicted]++

		truth := 0.0
		if row.Label == Spam {
			truth = 1.0
		}
		diff := truth - p[Spam]
		res.absError += math.Abs(diff)
		res.sqError += diff * diff
	}
	return res, nil
}

// aggregate sums fold results in fold order
func aggregate(results []FoldResult, k int, seed int64) *Metrics {
	var cm ConfusionMatrix
	var absError, sqError float64
	for _, res := range results {
		cm = cm.Add(res.Confusion)
		absError += res.absError
		sqError += res.sqError
	}

	total := cm.Total()
	correct := cm.Correct()
	m := &Metrics{
		Folds:       k,
		Seed:        seed,
		Total:       total,
		Correct:     correct,
		Incorrect:   total - correct,
		Confusion:   cm,
		PerClass:    make(map[Label]ClassMetrics, NumClasses),
		FoldResults: results,
	}
	if total == 0 {
		return m
	}

	m.Accuracy = float64(correct) / float64(total)
	m.MeanAbsoluteError = absError / float64(total)
	m.RootMeanSquaredError = math.Sqrt(sqError / float64(total))
	m.Kappa = kappa(cm)

	for _, l := range Labels {
		c := l.Index()
		var cls ClassMetrics
		if p := cm.predicted(c); p > 0 {
			cls.Precision = float64(cm[c][c]) / float64(p)
		}
		if a := cm.actual(c); a > 0 {
			cls.Recall = float64(cm[c][c]) / float64(a)
		}
		if cls.Precision+cls.Recall > 0 {
			cls.F1 = 2 * cls.Precision * cls.Recall / (cls.Precision + cls.Recall)
		}
		m.PerClass[l] = cls
	}
	return m
}

// kappa computes Cohen's kappa of a confusion matrix
func kappa(cm ConfusionMatrix) float64 {
	total := float64(cm.Total())
	observed := float64(cm.Correct()) / total
	expected := 0.0
	for c := 0; c < NumClasses; c++ {
		expected += float64(cm.actual(c)) * float64(cm.predicted(c))
	}
	expected /= total * total
	if expected == 1 {
		return 1
	}
	return (observed - expected) / (1 - expected)
}
