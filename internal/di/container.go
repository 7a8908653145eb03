package di

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/factory"
	"github.com/mikey/sms-spam-filter/internal/logging"
	"github.com/mikey/sms-spam-filter/internal/ports"
	"github.com/mikey/sms-spam-filter/internal/utils"
)

// connectTimeout bounds connecting to a networked model store
const connectTimeout = 10 * time.Second

// CLIFlags contains the command line flags shared by every command
type CLIFlags struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool

	// Overrides of configuration values; empty keeps the configured value
	Store     string
	Format    string
	ModelName string

	// Output receives reports; nil means stdout
	Output io.Writer
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags) (*config.Config, error) {
		cfg, err := config.New(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		applyOverrides(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags, cfg *config.Config) (*zap.Logger, error) {
		if flags.ConfigFile != "" && !flags.Verbose && !flags.JSONLog {
			logger, err := logging.InitLogger(cfg)
			if err != nil {
				return nil, err
			}
			logger.Debug("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return logger, nil
		}
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCorpusFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReportFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register corpus loader
	if err := container.Provide(func(f *factory.CorpusFactory) (core.CorpusLoader, error) {
		return f.CreateCorpusLoader()
	}); err != nil {
		return nil, err
	}

	// Register model store
	if err := container.Provide(func(f *factory.StoreFactory) (ports.ModelStore, error) {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return f.CreateModelStore(ctx)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s ports.ModelStore) core.ModelRepository {
		return s
	}); err != nil {
		return nil, err
	}

	// Register reporter
	if err := container.Provide(func(f *factory.ReportFactory, flags *CLIFlags) (ports.Reporter, error) {
		out := flags.Output
		if out == nil {
			out = os.Stdout
		}
		return f.CreateReporter(out, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(factory.NewClassifierService); err != nil {
		return nil, err
	}

	return container, nil
}

func applyOverrides(cfg *config.Config, flags *CLIFlags) {
	if flags.Store != "" {
		cfg.Set("store.type", flags.Store)
	}
	if flags.Format != "" {
		cfg.Set("report.format", flags.Format)
	}
	if flags.ModelName != "" {
		cfg.Set("model.name", flags.ModelName)
	}
	if flags.Verbose {
		cfg.Set("logging.level", "debug")
	}
}
