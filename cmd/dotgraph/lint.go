package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pydot/pydot-ng/dotparser"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file.dot...]",
	Short: "Check DOT files for common mistakes",
	Long:  "Parse DOT files (or standard input) and report diagnostics. Exits non-zero when an error-severity diagnostic is found.",
	RunE:  runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	graphs, err := readGraphs(cmd, args)
	if err != nil {
		return err
	}

	failed := 0
	for _, g := range graphs {
		diags, err := dotparser.ValidateOrError(g)
		for _, d := range diags {
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
		}
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d graph(s) failed validation", failed, len(graphs))
	}
	return nil
}
