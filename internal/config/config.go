// Package config provides configuration loading and structs for pairbench.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Data       DataConfig       `yaml:"data"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Benchmark  BenchmarkConfig  `yaml:"benchmark"`
	Report     ReportConfig     `yaml:"report"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Watch      WatchConfig      `yaml:"watch"`
}

// DataConfig holds dataset source locators.
type DataConfig struct {
	TrainPath string `yaml:"train_path"`
	EvalPath  string `yaml:"eval_path"`
	// EvalHasLabels controls whether the evaluation source is loaded with its
	// is_duplicate labels (true, metrics are meaningful) or with placeholder
	// labels (false, metrics are structural only). Defaults to true when unset.
	EvalHasLabels *bool `yaml:"eval_has_labels"`
}

// EvalHasLabelsOrDefault returns whether evaluation labels are real; defaults to true when unset.
func (d *DataConfig) EvalHasLabelsOrDefault() bool {
	if d.EvalHasLabels != nil {
		return *d.EvalHasLabels
	}
	return true
}

// EmbeddingConfig holds embedding-training settings.
type EmbeddingConfig struct {
	Dimensions int   `yaml:"dimensions"`
	Window     int   `yaml:"window"`
	MinCount   int   `yaml:"min_count"`
	Epochs     int   `yaml:"epochs"`
	Seed       int64 `yaml:"seed"`
}

// ClassifierConfig holds logistic-regression settings.
type ClassifierConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	LearningRate  float64 `yaml:"learning_rate"`
}

// BenchmarkConfig holds which model variants to evaluate, in order.
type BenchmarkConfig struct {
	Variants []string `yaml:"variants"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	OutputPath string `yaml:"output_path"`
}

// StorageConfig holds the run-history database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WatchConfig holds dataset files to watch for re-running the benchmark.
type WatchConfig struct {
	Paths []string `yaml:"paths"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Data.TrainPath = expandPath(cfg.Data.TrainPath, configDir)
	cfg.Data.EvalPath = expandPath(cfg.Data.EvalPath, configDir)
	cfg.Report.OutputPath = expandPath(cfg.Report.OutputPath, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	for i := range cfg.Watch.Paths {
		cfg.Watch.Paths[i] = expandPath(cfg.Watch.Paths[i], configDir)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
// Paths stay relative to the working directory.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are left as-is (resolved against the working directory).
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
