package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/applytrail/applytrail/internal/chronology"
	"github.com/applytrail/applytrail/internal/world"
)

func newCheckStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-stages <file|->",
		Short: "Check a list of {type, date} stages against the chronology rules",
		Long:  "Reads a YAML or JSON list of stages and prints ok or the violated rule's code.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			events, err := parseStageFile(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var violation *chronology.Violation
			if err := chronology.Validate(events); errors.As(err, &violation) {
				fmt.Fprintln(out, violation.Code)
				cmd.SilenceErrors = true
				return errViolation
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func newWorldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "world <file|->",
		Short: "Build a world graph from {application_id, type, date} rows",
		Long: "Reads a YAML or JSON list of stage rows, grouped by application id descending\n" +
			"with dates ascending inside each application, and prints the graph as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			rows, err := parseWorldFile(data)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), world.Build(rows))
		},
	}
}
