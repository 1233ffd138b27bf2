package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pydot/pydot-ng/dot"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file.dot...]",
	Short: "Rewrite DOT files in canonical form",
	Long:  "Parse DOT files (or standard input) and write every graph back in canonical form to standard output.",
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("suppress-disconnected", false, "Omit nodes that no edge refers to")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	suppress, _ := cmd.Flags().GetBool("suppress-disconnected")

	graphs, err := readGraphs(cmd, args)
	if err != nil {
		return err
	}
	for _, g := range graphs {
		g.SetSuppressDisconnected(suppress)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), dot.Concat(graphs))
	return err
}
