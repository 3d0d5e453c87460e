package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Data.TrainPath == "" {
		cfg.Data.TrainPath = "data/train.tsv"
	}
	if cfg.Data.EvalPath == "" {
		cfg.Data.EvalPath = "data/dev.tsv"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 100
	}
	if cfg.Embedding.Window == 0 {
		cfg.Embedding.Window = 5
	}
	if cfg.Embedding.MinCount == 0 {
		cfg.Embedding.MinCount = 1
	}
	if cfg.Embedding.Epochs == 0 {
		cfg.Embedding.Epochs = 3
	}
	if cfg.Embedding.Seed == 0 {
		cfg.Embedding.Seed = 1
	}
	if cfg.Classifier.MaxIterations == 0 {
		cfg.Classifier.MaxIterations = 100
	}
	if cfg.Classifier.LearningRate == 0 {
		cfg.Classifier.LearningRate = 0.1
	}
	if len(cfg.Benchmark.Variants) == 0 {
		cfg.Benchmark.Variants = []string{"embedding-linear", "hashing-linear"}
	}
	if cfg.Report.OutputPath == "" {
		cfg.Report.OutputPath = "pairbench_comparison.xlsx"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "pairbench.db"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}
