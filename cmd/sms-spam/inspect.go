package main

import (
	"github.com/spf13/cobra"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/di"
	"github.com/mikey/sms-spam-filter/internal/ports"
)

func newInspectCmd(flags *di.CLIFlags) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe a stored model and its most indicative tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(svc *core.ClassifierService, reporter ports.Reporter) error {
				info, err := svc.Inspect(cmd.Context(), top)
				if err != nil {
					return err
				}
				return reporter.ReportModelInfo(info)
			})
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of tokens to list per class")
	return cmd
}
