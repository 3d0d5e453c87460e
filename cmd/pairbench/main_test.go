package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/benchmark"
	"github.com/4zj9/pairbench/internal/config"
	"github.com/4zj9/pairbench/internal/models"
)

func TestVariantConfigs(t *testing.T) {
	cfg := config.Default()
	variants, err := variantConfigs(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Fatalf("variants = %d", len(variants))
	}
	if variants[0].Variant != benchmark.VariantEmbeddingLinear {
		t.Errorf("first variant = %s", variants[0].Variant)
	}
	if variants[0].Embedding.Dimensions != 100 || variants[0].Embedding.Window != 5 {
		t.Errorf("embedding options = %+v", variants[0].Embedding)
	}
	if variants[0].Classifier.MaxIterations != 100 {
		t.Errorf("classifier options = %+v", variants[0].Classifier)
	}
}

func TestVariantConfigs_UnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Benchmark.Variants = []string{"word2vec"}
	if _, err := variantConfigs(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadConfig_MissingDefaultUsesBuiltins(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.TrainPath != "data/train.tsv" {
		t.Errorf("train path = %q", cfg.Data.TrainPath)
	}
}

func TestLoadConfig_MissingExplicitPathFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "custom.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestExecuteBenchmark_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	tsv := "question1\tquestion2\tis_duplicate\n" +
		"How do I learn Go?\tWhat is the best way to learn Go?\t1\n" +
		"How do I learn Go?\tWhere is Paris?\t0\n" +
		"What is your age?\tHow old are you?\t1\n" +
		"Who wrote Hamlet?\tHow old are you?\t0\n"
	trainPath := filepath.Join(dir, "train.tsv")
	if err := os.WriteFile(trainPath, []byte(tsv), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Data.TrainPath = trainPath
	cfg.Data.EvalPath = trainPath
	cfg.Embedding.Dimensions = 8
	cfg.Embedding.Epochs = 1
	cfg.Classifier.MaxIterations = 20

	run, err := executeBenchmark(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Error("run has no ID")
	}
	if run.TrainCount != 4 || run.EvalCount != 4 {
		t.Errorf("counts = %d/%d", run.TrainCount, run.EvalCount)
	}
	if run.TrainProvenance != models.ProvenanceReal {
		t.Errorf("train provenance = %s", run.TrainProvenance)
	}
	if len(run.Table.Results) != 2 {
		t.Fatalf("table entries = %d", len(run.Table.Results))
	}
	for _, r := range run.Table.Results {
		if r.Failed {
			t.Errorf("variant %s failed: %s", r.Variant, r.Error)
		}
	}
}

func TestExecuteBenchmark_FallbackSources(t *testing.T) {
	cfg := config.Default()
	cfg.Data.TrainPath = filepath.Join(t.TempDir(), "missing.tsv")
	cfg.Data.EvalPath = cfg.Data.TrainPath
	cfg.Embedding.Dimensions = 8
	cfg.Embedding.Epochs = 1

	run, err := executeBenchmark(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if run.TrainProvenance != models.ProvenanceFallback || run.EvalProvenance != models.ProvenanceFallback {
		t.Errorf("provenance = %s/%s", run.TrainProvenance, run.EvalProvenance)
	}
	if run.TrainCount != 3 {
		t.Errorf("fallback sample count = %d", run.TrainCount)
	}
}
