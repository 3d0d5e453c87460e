// Package integration exercises the full benchmark pipeline: load datasets
// from disk, run every variant, persist the run, and read it back.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/4zj9/pairbench/internal/benchmark"
	"github.com/4zj9/pairbench/internal/classifier"
	"github.com/4zj9/pairbench/internal/dataset"
	"github.com/4zj9/pairbench/internal/embedding"
	"github.com/4zj9/pairbench/internal/models"
	"github.com/4zj9/pairbench/internal/report"
	"github.com/4zj9/pairbench/internal/storage"
)

const trainTSV = `question1	question2	is_duplicate
How do I learn Go?	What is the best way to learn Go?	1
How do I learn Go?	Where is Paris?	0
What is your age?	How old are you?	1
Who wrote Hamlet?	How old are you?	0
How can I lose weight fast?	What are good ways to lose weight quickly?	1
Where is Paris?	Who wrote Hamlet?	0
`

func variantConfigs() []benchmark.VariantConfig {
	embOpts := embedding.Options{Dimensions: 8, Window: 3, Epochs: 2, Seed: 1}
	clsOpts := classifier.Options{MaxIterations: 30, LearningRate: 0.5}
	return []benchmark.VariantConfig{
		{Variant: benchmark.VariantEmbeddingLinear, Embedding: embOpts, Classifier: clsOpts},
		{Variant: benchmark.VariantHashingLinear, Embedding: embOpts, Classifier: clsOpts},
	}
}

func TestPipeline_LoadRunPersistReload(t *testing.T) {
	dir := t.TempDir()
	trainPath := filepath.Join(dir, "train.tsv")
	if err := os.WriteFile(trainPath, []byte(trainTSV), 0644); err != nil {
		t.Fatal(err)
	}

	loader := dataset.NewLoader()
	trainRes, err := loader.Load(trainPath, false)
	if err != nil {
		t.Fatal(err)
	}
	if trainRes.Provenance != models.ProvenanceReal || trainRes.Dataset.Count() != 6 {
		t.Fatalf("load: provenance=%s count=%d", trainRes.Provenance, trainRes.Dataset.Count())
	}

	table := benchmark.NewRunner().Run(trainRes.Dataset, trainRes.Dataset, variantConfigs())
	if len(table.Results) != 2 {
		t.Fatalf("table entries = %d", len(table.Results))
	}
	for _, r := range table.Results {
		if r.Failed {
			t.Fatalf("variant %s failed: %s", r.Variant, r.Error)
		}
		if r.Metrics.Accuracy < 0 || r.Metrics.Accuracy > 1 {
			t.Errorf("accuracy out of range: %v", r.Metrics.Accuracy)
		}
	}

	run := &models.Run{
		ID:              "integration-run",
		TrainSource:     trainPath,
		EvalSource:      trainPath,
		TrainCount:      trainRes.Dataset.Count(),
		EvalCount:       trainRes.Dataset.Count(),
		TrainProvenance: trainRes.Provenance,
		EvalProvenance:  trainRes.Provenance,
		Table:           table,
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "pairbench.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRun(ctx, "integration-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Table.Results) != len(table.Results) {
		t.Fatalf("reloaded table entries = %d", len(got.Table.Results))
	}
	for i, r := range got.Table.Results {
		want := table.Results[i]
		if r.Variant != want.Variant {
			t.Errorf("entry %d: variant %q, want %q", i, r.Variant, want.Variant)
		}
		if r.Metrics.F1 != want.Metrics.F1 {
			t.Errorf("entry %d: f1 %v, want %v", i, r.Metrics.F1, want.Metrics.F1)
		}
	}

	xlsxPath := filepath.Join(dir, "comparison.xlsx")
	if err := report.WriteWorkbook(xlsxPath, got); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(xlsxPath); err != nil {
		t.Fatal(err)
	}
}

func TestPipeline_FallbackKeepsBenchmarkRunnable(t *testing.T) {
	loader := dataset.NewLoader()
	res, err := loader.Load(filepath.Join(t.TempDir(), "missing.tsv"), false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Provenance != models.ProvenanceFallback {
		t.Fatalf("provenance = %s", res.Provenance)
	}

	table := benchmark.NewRunner().Run(res.Dataset, res.Dataset, variantConfigs())
	for _, r := range table.Results {
		if r.Failed {
			t.Errorf("variant %s failed on fallback sample: %s", r.Variant, r.Error)
		}
	}
}
