package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pydot/pydot-ng/discover"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the Graphviz programs that would be used",
	Long:  "Print the program name to path map, read from --programs or discovered in --path directories and $PATH.",
	Args:  cobra.NoArgs,
	RunE:  runPrograms,
}

func init() {
	rootCmd.AddCommand(programsCmd)
}

func runPrograms(cmd *cobra.Command, args []string) error {
	progs, err := loadPrograms()
	if err != nil {
		return err
	}
	for _, name := range progs.Sorted() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, progs[name])
	}
	return nil
}

// loadPrograms reads the programs file when one is configured and falls back
// to discovery otherwise.
func loadPrograms() (discover.Programs, error) {
	if file := viper.GetString("programs"); file != "" {
		return discover.LoadFile(file)
	}
	return discover.Discover(viper.GetStringSlice("path")...)
}
