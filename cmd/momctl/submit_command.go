package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

type submitReport struct {
	Session        string             `json:"session"`
	TaskSource     extraction.Source  `json:"task_source"`
	ConflictSource extraction.Source  `json:"conflict_source"`
	Submission     submission.Summary `json:"submission"`
}

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		meetingID   string
		concurrency int
		attempts    int
	)

	cmd := &cobra.Command{
		Use:   "submit [file|-]",
		Short: "Extract an analysis locally and create its records through the API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			result := extraction.Extract(text)
			if result.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), "no tasks or conflicts found")
				return printJSON(cmd, submitReport{
					TaskSource:     result.TaskSource,
					ConflictSource: result.ConflictSource,
				})
			}

			client, err := ctx.client(cmd.Context())
			if err != nil {
				return err
			}

			submitter := submission.NewSubmitter(client, client, submission.Options{
				Concurrency: concurrency,
				MaxAttempts: attempts,
			}, nil)
			session := submission.NewSession(submission.SessionKey(meetingID, text), nil)

			summary, err := submitter.Submit(cmd.Context(), session, meetingID, result)
			if err != nil {
				return err
			}

			if err := printJSON(cmd, submitReport{
				Session:        session.Key(),
				TaskSource:     result.TaskSource,
				ConflictSource: result.ConflictSource,
				Submission:     summary,
			}); err != nil {
				return err
			}

			if failed := summary.Tasks.Failed() + summary.Conflicts.Failed(); failed > 0 {
				return fmt.Errorf("%d record(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meetingID, "meeting", "", "meeting ID to attach the records to")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "parallel create calls")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "attempts per record")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if concurrency < 1 || attempts < 1 {
			return errors.New("--concurrency and --attempts must be at least 1")
		}
		return nil
	}
	return cmd
}
