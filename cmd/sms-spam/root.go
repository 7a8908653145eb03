package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-filter/internal/di"
	"github.com/mikey/sms-spam-filter/internal/ports"
)

func newRootCmd() *cobra.Command {
	flags := &di.CLIFlags{}

	rootCmd := &cobra.Command{
		Use:   "sms-spam",
		Short: "Naive Bayes spam filter for SMS messages",
		Long: `sms-spam trains a bag-of-words naive Bayes classifier on a labeled SMS
corpus, estimates its accuracy with k-fold cross-validation, and classifies
new messages as spam or ham.

Corpora are read as ARFF (text attribute plus a {ham,spam} class) or as the
tab-separated SMS Spam Collection layout (label<TAB>text).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to config file")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging and detailed reports")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	pf.StringVar(&flags.Store, "store", "", "Model store (file, memory, sqlite, mysql, redis)")
	pf.StringVar(&flags.Format, "format", "", "Report format (text, json, yaml)")
	pf.StringVar(&flags.ModelName, "model", "", "Name the model is stored under")

	rootCmd.AddCommand(newTrainCmd(flags))
	rootCmd.AddCommand(newEvaluateCmd(flags))
	rootCmd.AddCommand(newPredictCmd(flags))
	rootCmd.AddCommand(newInspectCmd(flags))

	return rootCmd
}

// run builds the dependency container for one command invocation and
// invokes fn with its dependencies. The model store is closed afterwards.
func run(cmd *cobra.Command, flags *di.CLIFlags, fn interface{}) error {
	flags.Output = cmd.OutOrStdout()

	container, err := di.BuildContainer(flags)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	var (
		store  ports.ModelStore
		logger *zap.Logger
	)
	if err := container.Invoke(func(s ports.ModelStore, l *zap.Logger) {
		store, logger = s, l
	}); err != nil {
		return dig.RootCause(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close model store", zap.Error(err))
		}
		_ = logger.Sync()
	}()

	if err := container.Invoke(fn); err != nil {
		return dig.RootCause(err)
	}
	return nil
}
