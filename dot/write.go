package dot

import (
	"io"
	"strings"
)

// String returns the DOT text of g, terminated by a newline.
func (g *Graph) String() string {
	var b strings.Builder
	g.write(&b)
	return b.String()
}

// WriteTo writes the DOT text of g to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// Concat serializes several graphs back to back, as they would appear in a
// single file.
func Concat(graphs []*Graph) string {
	var b strings.Builder
	for _, g := range graphs {
		g.write(&b)
	}
	return b.String()
}

func (g *Graph) write(b *strings.Builder) {
	g.writeHeader(b)

	for _, attr := range g.attrs.Pairs() {
		b.WriteString(Quote(attr.Key))
		b.WriteByte('=')
		// An assignment always needs a value.
		b.WriteString(Quote(attr.Value))
		b.WriteString(";\n")
	}

	writeDefaults(b, "graph", &g.graphDefaults)
	writeDefaults(b, "node", &g.nodeDefaults)
	writeDefaults(b, "edge", &g.edgeDefaults)

	referenced := g.endpointNames()
	for _, n := range g.nodes {
		used := referenced[CanonicalID(n.name)]
		if g.suppressDisconnected && !used {
			continue
		}
		// The edge statement already declares it.
		if used && n.attrs.Len() == 0 {
			continue
		}
		if stmt := n.String(); stmt != "" {
			b.WriteString(stmt)
			b.WriteByte('\n')
		}
	}

	for _, e := range g.edges {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	for _, s := range g.subgraphs {
		s.write(b)
	}

	b.WriteString("}\n")
}

func (g *Graph) writeHeader(b *strings.Builder) {
	if g.role == RoleRoot {
		if g.strict {
			b.WriteString("strict ")
		}
		b.WriteString(string(g.kind))
	} else {
		b.WriteString("subgraph")
	}
	if g.name != "" {
		b.WriteByte(' ')
		b.WriteString(Quote(g.name))
	}
	b.WriteString(" {\n")
}

func writeDefaults(b *strings.Builder, scope string, a *Attrs) {
	if a.Len() == 0 {
		return
	}
	b.WriteString(scope)
	b.WriteString(" [")
	b.WriteString(a.String())
	b.WriteString("];\n")
}

// endpointNames collects the canonical identifiers that edges of g refer to
// directly.
func (g *Graph) endpointNames() map[string]bool {
	names := make(map[string]bool, 2*len(g.edges))
	for _, e := range g.edges {
		for _, ep := range []Endpoint{e.src, e.dst} {
			if ep.Subgraph == nil {
				names[CanonicalID(ep.ID)] = true
			}
		}
	}
	return names
}
