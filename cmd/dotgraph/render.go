package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pydot/pydot-ng/dot"
	"github.com/pydot/pydot-ng/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [file.dot...]",
	Short: "Render DOT files through Graphviz",
	Long: `Parse DOT files (or standard input) and render every graph.

With a single graph, -o names the output file. With several graphs, -o names
a directory and each graph is written to <name>.<format> inside it. Without
-o the rendered bytes go to standard output, one graph after another.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("format", "T", "svg", "Output format (png, svg, pdf, raw, ...)")
	renderCmd.Flags().StringP("output", "o", "", "Output file, or directory when rendering several graphs")
	renderCmd.Flags().StringP("prog", "K", "", "Layout program (dot, neato, fdp, ...)")
	renderCmd.Flags().String("engine", "exec", "Renderer: exec runs Graphviz programs, graphviz renders in-process")
	renderCmd.Flags().String("charset", "", "Charset label passed to the renderer")
	renderCmd.Flags().StringSlice("shapefile", nil, "Image files the graph refers to by base name")
	renderCmd.Flags().IntP("jobs", "j", 4, "Graphs rendered concurrently")

	_ = viper.BindPFlag("engine", renderCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("format", renderCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format := viper.GetString("format")
	engine := viper.GetString("engine")
	output, _ := cmd.Flags().GetString("output")
	prog, _ := cmd.Flags().GetString("prog")
	charset, _ := cmd.Flags().GetString("charset")
	shapeFiles, _ := cmd.Flags().GetStringSlice("shapefile")
	jobs, _ := cmd.Flags().GetInt("jobs")

	if err := render.CheckFormat(format); err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())

	graphs, err := readGraphs(cmd, args)
	if err != nil {
		return err
	}
	if len(graphs) == 0 {
		return errors.New("no graphs to render")
	}

	var (
		renderer render.Renderer
		programs map[string]string
	)
	switch engine {
	case "exec":
		renderer = &render.Exec{Logger: logger}
		if format != render.FormatRaw {
			found, err := loadPrograms()
			if err != nil {
				return fmt.Errorf("locating graphviz: %w", err)
			}
			programs = found
		}
	case "graphviz":
		renderer = &render.Graphviz{Logger: logger}
		// Layout engines are built in; map every name onto itself.
		programs = make(map[string]string)
		for _, name := range []string{"dot", "neato", "fdp", "sfdp", "twopi", "circo", "osage", "patchwork"} {
			programs[name] = name
		}
	default:
		return fmt.Errorf("unknown engine %q (want exec or graphviz)", engine)
	}

	for _, g := range graphs {
		g.SetPrograms(programs)
		if prog != "" {
			g.SetProgram(prog)
		}
		if charset != "" {
			g.SetCharset(charset)
		}
		if len(shapeFiles) > 0 {
			g.SetShapeFiles(shapeFiles)
		}
	}

	results := make([][]byte, len(graphs))
	eg, ctx := errgroup.WithContext(cmd.Context())
	if jobs > 0 {
		eg.SetLimit(jobs)
	}
	for i, g := range graphs {
		eg.Go(func() error {
			out, err := g.Create(ctx, renderer, "", format)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", graphLabel(g, i), err)
			}
			logger.Debug("rendered graph", "graph", graphLabel(g, i), "bytes", len(out))
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return writeResults(cmd, graphs, results, output, format)
}

func writeResults(cmd *cobra.Command, graphs []*dot.Graph, results [][]byte, output, format string) error {
	switch {
	case output == "":
		for _, out := range results {
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
		return nil
	case len(results) == 1:
		return os.WriteFile(output, results[0], 0o644)
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	ext, _, _ := strings.Cut(format, ":")
	if ext == render.FormatRaw {
		ext = "dot"
	}
	used := make(map[string]bool, len(results))
	for i, out := range results {
		label := graphLabel(graphs[i], i)
		if used[label] {
			label += "-" + strconv.Itoa(i+1)
		}
		used[label] = true
		path := filepath.Join(output, label+"."+ext)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// graphLabel returns a file-name friendly label for the i-th graph.
func graphLabel(g *dot.Graph, i int) string {
	name := dot.Unquote(g.Name())
	if name == "" {
		return "graph" + strconv.Itoa(i+1)
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}
