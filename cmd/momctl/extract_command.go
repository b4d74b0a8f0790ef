package main

import (
	"github.com/spf13/cobra"

	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Print the tasks and conflicts found in an analysis as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd, extraction.Extract(text))
		},
	}
}
