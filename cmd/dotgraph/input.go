package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pydot/pydot-ng/dot"
	"github.com/pydot/pydot-ng/dotparser"
)

// readGraphs parses every file named in args, in order. No arguments, or
// "-", reads standard input.
func readGraphs(cmd *cobra.Command, args []string) ([]*dot.Graph, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	logger := loggerFromContext(cmd.Context())

	var graphs []*dot.Graph
	for _, name := range args {
		var (
			src []byte
			err error
		)
		if name == "-" {
			src, err = io.ReadAll(cmd.InOrStdin())
		} else {
			src, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		parsed, err := dotparser.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		logger.Debug("parsed input", "file", name, "graphs", len(parsed))
		graphs = append(graphs, parsed...)
	}
	return graphs, nil
}
