package config

// CorpusConfig locates the training dataset
type CorpusConfig struct {
	Path   string
	Format string
}

// ModelConfig names the persisted model and its training options
type ModelConfig struct {
	Name              string
	Smoothing         float64
	MaxVocabularySize int
}

// EvaluationConfig configures cross-validation
type EvaluationConfig struct {
	Folds   int
	Seed    int64
	Workers int
}

// StoreConfig selects and configures the model store
type StoreConfig struct {
	Type           string
	FileDir        string
	SQLitePath     string
	MySQLDSN       string
	RedisURL       string
	RedisKeyPrefix string
}

// ReportConfig selects the output format
type ReportConfig struct {
	Format         string
	MaxMessageSize int
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level  string
	Format string
}

// GetCorpus returns the corpus configuration
func (c *Config) GetCorpus() CorpusConfig {
	return CorpusConfig{
		Path:   c.GetString("corpus.path"),
		Format: c.GetString("corpus.format"),
	}
}

// GetModel returns the model configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Name:              c.GetString("model.name"),
		Smoothing:         c.GetFloat64("model.smoothing"),
		MaxVocabularySize: c.GetInt("model.max_vocabulary_size"),
	}
}

// GetEvaluation returns the cross-validation configuration
func (c *Config) GetEvaluation() EvaluationConfig {
	return EvaluationConfig{
		Folds:   c.GetInt("evaluation.folds"),
		Seed:    c.GetInt64("evaluation.seed"),
		Workers: c.GetInt("evaluation.workers"),
	}
}

// GetStore returns the model store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:           c.GetString("store.type"),
		FileDir:        c.GetString("store.file_dir"),
		SQLitePath:     c.GetString("store.sqlite_path"),
		MySQLDSN:       c.GetString("store.mysql_dsn"),
		RedisURL:       c.GetString("store.redis_url"),
		RedisKeyPrefix: c.GetString("store.redis_key_prefix"),
	}
}

// GetReport returns the report configuration
func (c *Config) GetReport() ReportConfig {
	return ReportConfig{
		Format:         c.GetString("report.format"),
		MaxMessageSize: c.GetInt("report.max_message_size"),
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
