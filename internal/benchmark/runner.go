package benchmark

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/classifier"
	"github.com/4zj9/pairbench/internal/embedding"
	"github.com/4zj9/pairbench/internal/metrics"
	"github.com/4zj9/pairbench/internal/models"
)

// Runner evaluates model variants sequentially against a training and an
// evaluation dataset. Only the runner writes to the comparison table; a
// variant that fails is recorded as a failed entry and never disturbs entries
// already recorded.
type Runner struct {
	logger *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a logger for per-variant progress and failures.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every configured variant in order and returns the comparison
// table. The call blocks until all variants finish; callers wanting a timeout
// wrap the invocation externally.
func (r *Runner) Run(train, eval *models.Dataset, variants []VariantConfig) *models.ComparisonTable {
	table := &models.ComparisonTable{}
	for _, cfg := range variants {
		m, err := r.runVariant(train, eval, cfg)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("variant failed",
					zap.String("variant", string(cfg.Variant)), zap.Error(err))
			}
			table.Append(models.VariantResult{
				Variant: string(cfg.Variant),
				Failed:  true,
				Error:   err.Error(),
			})
			continue
		}
		if r.logger != nil {
			r.logger.Info("variant evaluated",
				zap.String("variant", string(cfg.Variant)),
				zap.Float64("accuracy", m.Accuracy),
				zap.Float64("f1", m.F1),
				zap.Float64("training_time_seconds", m.TrainingTimeSeconds))
		}
		table.Append(models.VariantResult{Variant: string(cfg.Variant), Metrics: m})
	}
	return table
}

// runVariant walks one variant through feature construction, fitting, and
// evaluation. The training timer spans feature construction through fit
// completion; evaluation time is excluded.
func (r *Runner) runVariant(train, eval *models.Dataset, cfg VariantConfig) (*models.Metrics, error) {
	start := time.Now()

	trainX, evalX, err := buildFeatures(train, eval, cfg)
	if err != nil {
		return nil, err
	}
	fitted, err := classifier.Fit(trainX, train.Labels(), cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	trainingTime := time.Since(start).Seconds()

	predictions, err := fitted.PredictBatch(evalX)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	m, err := metrics.Evaluate(string(cfg.Variant), predictions, eval.Labels())
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	m.TrainingTimeSeconds = trainingTime
	return m, nil
}

// buildFeatures vectorizes both datasets for the variant. Vectorizer training
// consumes training texts only; evaluation texts never reach it.
func buildFeatures(train, eval *models.Dataset, cfg VariantConfig) (trainX, evalX [][]float32, err error) {
	switch cfg.Variant {
	case VariantEmbeddingLinear:
		model, err := embedding.Train(train.Texts(), cfg.Embedding)
		if err != nil {
			return nil, nil, fmt.Errorf("train embedding: %w", err)
		}
		return vectorizeAll(train, model.Vectorize), vectorizeAll(eval, model.Vectorize), nil
	case VariantHashingLinear:
		vec := embedding.NewHashingVectorizer(cfg.Embedding.Dimensions)
		return vectorizeAll(train, vec.Vectorize), vectorizeAll(eval, vec.Vectorize), nil
	}
	return nil, nil, fmt.Errorf("unknown variant %q", cfg.Variant)
}

func vectorizeAll(ds *models.Dataset, vectorize func(string) []float32) [][]float32 {
	out := make([][]float32, ds.Count())
	for i, rec := range ds.Records {
		out[i] = vectorize(rec.Text)
	}
	return out
}
