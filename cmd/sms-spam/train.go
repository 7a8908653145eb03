package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/di"
	"github.com/mikey/sms-spam-filter/internal/ports"
)

// corpusFlags are shared by the commands that read a corpus
type corpusFlags struct {
	path  string
	folds int
	seed  int64
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "corpus", "c", "", "Path to the labeled corpus (default from config)")
	cmd.Flags().IntVarP(&f.folds, "folds", "k", 0, "Number of cross-validation folds (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Shuffle seed for cross-validation (default from config)")
}

// resolve fills unset flags from configuration
func (f *corpusFlags) resolve(cmd *cobra.Command, cfg *config.Config) (string, int, int64) {
	path, folds, seed := f.path, f.folds, f.seed
	if path == "" {
		path = cfg.GetCorpus().Path
	}
	eval := cfg.GetEvaluation()
	if !cmd.Flags().Changed("folds") {
		folds = eval.Folds
	}
	if !cmd.Flags().Changed("seed") {
		seed = eval.Seed
	}
	return path, folds, seed
}

func newTrainCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		corpus   corpusFlags
		evaluate bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model on a labeled corpus and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(cfg *config.Config, svc *core.ClassifierService, reporter ports.Reporter) error {
				path, folds, seed := corpus.resolve(cmd, cfg)

				result, err := svc.Train(cmd.Context(), path)
				if err != nil {
					return err
				}
				if err := reporter.ReportTraining(result); err != nil {
					return err
				}

				if !evaluate {
					return nil
				}
				metrics, err := svc.Evaluate(cmd.Context(), result.Matrix, folds, seed)
				if err != nil {
					return err
				}
				return reporter.ReportMetrics(metrics)
			})
		},
	}

	corpus.register(cmd)
	cmd.Flags().BoolVarP(&evaluate, "evaluate", "e", false, "Cross-validate on the training corpus after training")
	return cmd
}
