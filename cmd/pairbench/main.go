// Package main is the pairbench CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/benchmark"
	"github.com/4zj9/pairbench/internal/classifier"
	"github.com/4zj9/pairbench/internal/cli"
	"github.com/4zj9/pairbench/internal/config"
	"github.com/4zj9/pairbench/internal/dataset"
	"github.com/4zj9/pairbench/internal/embedding"
	"github.com/4zj9/pairbench/internal/models"
	"github.com/4zj9/pairbench/internal/report"
	"github.com/4zj9/pairbench/internal/server"
	"github.com/4zj9/pairbench/internal/storage"
	"github.com/4zj9/pairbench/internal/watcher"
	"github.com/4zj9/pairbench/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "config.yaml"

// loadConfig loads config from path. A missing file at the default path is
// not an error: the built-in defaults are used so "pairbench run" works from
// any directory with a data/ folder.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "run":
		runBenchmark()
	case "runs":
		runList()
	case "report":
		runReport()
	case "serve":
		runServe()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("pairbench version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runBenchmark() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	trainPath := fs.String("train", "", "training dataset path (overrides config)")
	evalPath := fs.String("eval", "", "evaluation dataset path (overrides config)")
	outputPath := fs.String("output", "", "XLSX report path (overrides config; \"none\" disables)")
	outputFormat := fs.String("format", "text", "stdout format: text or json")
	save := fs.Bool("save", true, "persist the run to the history database")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *trainPath != "" {
		cfg.Data.TrainPath = *trainPath
	}
	if *evalPath != "" {
		cfg.Data.EvalPath = *evalPath
	}
	switch *outputPath {
	case "":
	case "none":
		cfg.Report.OutputPath = ""
	default:
		cfg.Report.OutputPath = *outputPath
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	run, err := executeBenchmark(cfg, logger)
	if err != nil {
		logger.Fatal("Benchmark failed", zap.Error(err))
	}

	if *save {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Fatal("Failed to open run history", zap.Error(err))
		}
		defer store.Close()
		if err := store.SaveRun(context.Background(), run); err != nil {
			logger.Fatal("Failed to save run", zap.Error(err))
		}
	}

	if err := cli.WriteRun(os.Stdout, run, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Report.OutputPath != "" {
		if err := report.WriteWorkbook(cfg.Report.OutputPath, run); err != nil {
			logger.Fatal("Failed to write report workbook", zap.Error(err))
		}
		fmt.Printf("Report written to %s\n", cfg.Report.OutputPath)
	}
}

// executeBenchmark loads both datasets, runs every configured variant, and
// returns the assembled run. It does not persist or render anything.
func executeBenchmark(cfg *config.Config, logger *zap.Logger) (*models.Run, error) {
	loader := dataset.NewLoader(dataset.WithLogger(logger))

	trainRes, err := loader.Load(cfg.Data.TrainPath, false)
	if err != nil {
		return nil, fmt.Errorf("load training set: %w", err)
	}
	evalRes, err := loader.Load(cfg.Data.EvalPath, !cfg.Data.EvalHasLabelsOrDefault())
	if err != nil {
		return nil, fmt.Errorf("load evaluation set: %w", err)
	}

	logger.Info("datasets loaded",
		zap.Int("train_count", trainRes.Dataset.Count()),
		zap.Int("eval_count", evalRes.Dataset.Count()),
		zap.String("train_provenance", string(trainRes.Provenance)),
		zap.String("eval_provenance", string(evalRes.Provenance)))
	for label, count := range trainRes.Dataset.LabelDistribution() {
		logger.Info("training label distribution", zap.Float64("label", label), zap.Int("count", count))
	}
	for i, rec := range trainRes.Dataset.Records {
		if i >= 5 {
			break
		}
		logger.Debug("training sample",
			zap.String("text", cli.Truncate(rec.Text, 120)), zap.Float64("label", rec.Label))
	}

	variants, err := variantConfigs(cfg)
	if err != nil {
		return nil, err
	}
	runner := benchmark.NewRunner(benchmark.WithLogger(logger))
	table := runner.Run(trainRes.Dataset, evalRes.Dataset, variants)

	return &models.Run{
		ID:              uuid.NewString(),
		TrainSource:     cfg.Data.TrainPath,
		EvalSource:      cfg.Data.EvalPath,
		TrainCount:      trainRes.Dataset.Count(),
		EvalCount:       evalRes.Dataset.Count(),
		TrainProvenance: trainRes.Provenance,
		EvalProvenance:  evalRes.Provenance,
		Table:           table,
		CreatedAt:       time.Now(),
	}, nil
}

// variantConfigs expands the configured variant names into full configs.
func variantConfigs(cfg *config.Config) ([]benchmark.VariantConfig, error) {
	out := make([]benchmark.VariantConfig, 0, len(cfg.Benchmark.Variants))
	for _, name := range cfg.Benchmark.Variants {
		variant, err := benchmark.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, benchmark.VariantConfig{
			Variant:    variant,
			Embedding:  embeddingOptions(cfg),
			Classifier: classifierOptions(cfg),
		})
	}
	return out, nil
}

func embeddingOptions(cfg *config.Config) embedding.Options {
	return embedding.Options{
		Dimensions: cfg.Embedding.Dimensions,
		Window:     cfg.Embedding.Window,
		MinCount:   cfg.Embedding.MinCount,
		Epochs:     cfg.Embedding.Epochs,
		Seed:       cfg.Embedding.Seed,
	}
}

func classifierOptions(cfg *config.Config) classifier.Options {
	return classifier.Options{
		MaxIterations: cfg.Classifier.MaxIterations,
		LearningRate:  cfg.Classifier.LearningRate,
	}
}

func runList() {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 20, "number of runs to list")
	outputFormat := fs.String("format", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 0, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteRunList(os.Stdout, runs, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	runID := fs.String("run", "", "run ID to report (default: most recent run)")
	outputPath := fs.String("output", "", "XLSX report path (empty = text only)")
	outputFormat := fs.String("format", "text", "stdout format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	ctx := context.Background()

	var run *models.Run
	if *runID != "" {
		run, err = store.GetRun(ctx, *runID)
	} else {
		var latest []*models.Run
		latest, err = store.ListRuns(ctx, 0, 1)
		if err == nil {
			if len(latest) == 0 {
				fmt.Fprintln(os.Stderr, "No runs recorded; use \"pairbench run\" first")
				os.Exit(1)
			}
			run = latest[0]
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load run: %v\n", err)
		os.Exit(1)
	}

	if err := cli.WriteRun(os.Stdout, run, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if *outputPath != "" {
		if err := report.WriteWorkbook(*outputPath, run); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputPath)
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open run history", zap.Error(err))
	}
	defer store.Close()

	runFn := func(ctx context.Context) (*models.Run, error) {
		run, err := executeBenchmark(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return nil, err
		}
		return run, nil
	}

	srv := server.NewServer(store, runFn, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open run history", zap.Error(err))
	}
	defer store.Close()

	paths := cfg.Watch.Paths
	if len(paths) == 0 {
		paths = []string{cfg.Data.TrainPath, cfg.Data.EvalPath}
	}
	rerun := func(path string) {
		logger.Info("dataset changed, re-running benchmark", zap.String("path", path))
		run, err := executeBenchmark(cfg, logger)
		if err != nil {
			logger.Warn("benchmark failed", zap.Error(err))
			return
		}
		if err := store.SaveRun(context.Background(), run); err != nil {
			logger.Warn("failed to save run", zap.Error(err))
			return
		}
		_ = cli.WriteRun(os.Stdout, run, cli.OutputText)
	}

	watchOpts := []watcher.WatcherOption{}
	if cfg.Debug || *debug {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(paths, rerun, watchOpts...)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	logger.Info("watching dataset files", zap.Strings("paths", watchSvc.Paths()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	watchSvc.Stop()
}

func printUsage() {
	fmt.Println(`pairbench - duplicate-question model benchmark

Usage:
  pairbench run [flags]       Load datasets, evaluate configured variants, print the comparison
  pairbench runs [flags]      List recorded benchmark runs
  pairbench report [flags]    Re-render a recorded run (text, json, or XLSX)
  pairbench serve [flags]     Serve run history and benchmark triggering over HTTP
  pairbench watch [flags]     Re-run the benchmark whenever a dataset file changes
  pairbench version           Show version
  pairbench help              Show this help

Run Flags:
  --config string    Config file path (default: config.yaml; built-in defaults if absent)
  --train string     Training dataset path (overrides config)
  --eval string      Evaluation dataset path (overrides config)
  --output string    XLSX report path (overrides config; "none" disables)
  --format string    Stdout format: text or json (default: text)
  --save             Persist the run to the history database (default: true)
  --debug            Enable debug logging

Report Flags:
  --run string       Run ID (default: most recent)
  --output string    XLSX report path (empty = text only)
  --format string    Stdout format: text or json

Examples:
  pairbench run --train data/train.tsv --eval data/dev.tsv
  pairbench run --format json --output none
  pairbench runs --limit 10
  pairbench report --run 6a1f... --output comparison.xlsx
  pairbench serve
  pairbench watch`)
}
