package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
)

// Graphviz renders in-process with the WebAssembly build of Graphviz shipped
// by github.com/goccy/go-graphviz. No executable is needed; Request.Program
// only selects the layout engine by base name ("neato", "/usr/bin/fdp", ...)
// and defaults to dot.
type Graphviz struct {
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

var _ Renderer = (*Graphviz)(nil)

// graphvizFormats maps accepted format names to the library's formats.
// graphviz.XDOT is the laid-out "dot" output; real xdot is not available.
var graphvizFormats = map[string]graphviz.Format{
	"dot":  graphviz.XDOT,
	"svg":  graphviz.SVG,
	"png":  graphviz.PNG,
	"jpg":  graphviz.JPG,
	"jpeg": graphviz.JPG,
	"jpe":  graphviz.JPG,
}

var layouts = map[string]bool{
	"circo": true, "dot": true, "fdp": true, "neato": true,
	"osage": true, "patchwork": true, "sfdp": true, "twopi": true,
}

func (r *Graphviz) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

// Render implements Renderer.
func (r *Graphviz) Render(ctx context.Context, req Request) ([]byte, error) {
	if err := CheckFormat(req.Format); err != nil {
		return nil, err
	}
	if req.Format == FormatRaw {
		return bytes.Clone(req.Text), nil
	}
	format, ok := graphvizFormats[req.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not available in-process", ErrUnsupportedFormat, req.Format)
	}
	layout, err := layoutFor(req.Program)
	if err != nil {
		return nil, err
	}

	logger := r.logger()
	if len(req.ShapeFiles) > 0 {
		logger.Warn("shape files are ignored by the in-process renderer", "count", len(req.ShapeFiles))
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, &InvocationError{Program: "graphviz", ExitCode: -1, Cause: fmt.Errorf("init graphviz: %w", err)}
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(layout))

	g, err := graphviz.ParseBytes(req.Text)
	if err != nil {
		return nil, &InvocationError{Program: layout, ExitCode: -1, Stderr: err.Error(), Cause: err}
	}
	defer g.Close()

	logger.Debug("rendering in-process", "layout", layout, "format", req.Format)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, &InvocationError{Program: layout, ExitCode: -1, Stderr: err.Error(), Cause: err}
	}
	return buf.Bytes(), nil
}

func layoutFor(program string) (string, error) {
	if program == "" {
		return "dot", nil
	}
	name := strings.Trim(strings.TrimSpace(program), `"`)
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if !layouts[name] {
		return "", &NotFoundError{Program: program, Cause: fmt.Errorf("unknown layout engine %q", name)}
	}
	return name, nil
}
