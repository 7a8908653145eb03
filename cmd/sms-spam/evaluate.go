package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/sms-spam-filter/internal/config"
	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/di"
	"github.com/mikey/sms-spam-filter/internal/ports"
)

func newEvaluateCmd(flags *di.CLIFlags) *cobra.Command {
	var corpus corpusFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Estimate accuracy with k-fold cross-validation",
		Long: `Cross-validate a model on a labeled corpus without storing anything.

Rows are shuffled with the seed and split into k folds. Every fold is held
out once while a fresh model is trained on the others; the summary covers
all folds together.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(cfg *config.Config, svc *core.ClassifierService, reporter ports.Reporter) error {
				path, folds, seed := corpus.resolve(cmd, cfg)

				metrics, err := svc.EvaluateCorpus(cmd.Context(), path, folds, seed)
				if err != nil {
					return err
				}
				return reporter.ReportMetrics(metrics)
			})
		},
	}

	corpus.register(cmd)
	return cmd
}
