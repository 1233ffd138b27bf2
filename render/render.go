// Package render turns serialized DOT text into rendered artifacts.
//
// A [Renderer] receives a [Request] carrying the DOT text, the output format
// and the program to run. Two implementations are provided:
//
//   - [Exec] pipes the text to an external Graphviz executable.
//   - [Graphviz] renders in-process through github.com/goccy/go-graphviz.
//
// Failures are reported through [ErrNotFound] (the program cannot be run at
// all), [*InvocationError] (the program ran and complained) and
// [ErrUnsupportedFormat]. The raw format returns the DOT text untouched.
package render

import (
	"context"
	"fmt"
	"strings"
)

// Renderer renders DOT text.
type Renderer interface {
	Render(ctx context.Context, req Request) ([]byte, error)
}

// Request describes one rendering.
type Request struct {
	Text       []byte   // serialized DOT text
	Format     string   // output format, e.g. "png" or "svg:cairo"
	Program    string   // executable path or layout program name
	Charset    string   // declared charset label, passed to the program
	ShapeFiles []string // auxiliary files the graph refers to by base name
}

// FormatRaw returns the DOT text without running anything.
const FormatRaw = "raw"

// Formats lists the output formats accepted by CheckFormat.
var Formats = []string{
	"canon", "cmap", "cmapx", "cmapx_np", "dia", "dot", "fig", "gd", "gd2",
	"gif", "hpgl", "imap", "imap_np", "ismap", "jpe", "jpeg", "jpg", "mif",
	"mp", "pcl", "pdf", "pic", "plain", "plain-ext", "png", "ps", "ps2",
	"svg", "svgz", "vml", "vmlz", "vrml", "vtx", "wbmp", "xdot", "xlib",
	FormatRaw,
}

var knownFormats = func() map[string]bool {
	m := make(map[string]bool, len(Formats))
	for _, f := range Formats {
		m[f] = true
	}
	return m
}()

// CheckFormat validates format. A renderer suffix such as "png:cairo" is
// allowed; only the part before the first colon is checked.
func CheckFormat(format string) error {
	base, _, _ := strings.Cut(format, ":")
	if !knownFormats[base] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}
