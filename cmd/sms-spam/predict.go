package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/mikey/sms-spam-filter/internal/di"
	"github.com/mikey/sms-spam-filter/internal/ports"
)

func newPredictCmd(flags *di.CLIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [message...]",
		Short: "Classify messages with a stored model",
		Long: `Classify each message given as an argument. Without arguments, every
non-empty line of standard input is classified as one message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(svc *core.ClassifierService, reporter ports.Reporter) error {
				pipeline, err := svc.LoadPipeline(cmd.Context())
				if err != nil {
					return err
				}

				classify := func(text string) error {
					result, err := svc.Classify(cmd.Context(), pipeline, text)
					if err != nil {
						return err
					}
					return reporter.ReportClassification(result)
				}

				if len(args) > 0 {
					for _, text := range args {
						if err := classify(text); err != nil {
							return err
						}
					}
					return nil
				}
				return eachLine(cmd.InOrStdin(), classify)
			})
		},
	}
	return cmd
}

// eachLine calls fn with every non-empty line of r
func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}
	return nil
}
