package dot

import (
	"context"

	"github.com/pydot/pydot-ng/render"
)

// Create serializes g and hands it to r for rendering with the named program
// (the graph's default program when empty) in the given output format.
//
// The program is resolved through the map set with SetPrograms; a missing
// entry fails with an error matching render.ErrNotFound. Rendering blocks
// until the renderer returns; g adds no timeout of its own.
func (g *Graph) Create(ctx context.Context, r render.Renderer, program, format string) ([]byte, error) {
	if g.role != RoleRoot {
		return nil, &ArgumentTypeError{Op: "Create", Got: g.role.String()}
	}
	if r == nil {
		return nil, &ArgumentTypeError{Op: "Create", Got: "nil renderer"}
	}
	if program == "" {
		program = g.Program()
	}
	path, ok := g.programs[program]
	if !ok && format != render.FormatRaw {
		return nil, &render.NotFoundError{Program: program}
	}
	return r.Render(ctx, render.Request{
		Text:       []byte(g.String()),
		Format:     format,
		Program:    path,
		Charset:    g.charset,
		ShapeFiles: g.ShapeFiles(),
	})
}
