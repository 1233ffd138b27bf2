package dot

import "strings"

// Endpoint is one side of an edge: either a node identifier or an inline
// subgraph.
type Endpoint struct {
	ID       string
	Subgraph *Graph
}

// ID returns an endpoint naming a node.
func ID(name string) Endpoint { return Endpoint{ID: name} }

// Sub returns an endpoint referring to a subgraph.
func Sub(g *Graph) Endpoint { return Endpoint{Subgraph: g} }

// IsSubgraph reports whether the endpoint refers to a subgraph.
func (ep Endpoint) IsSubgraph() bool { return ep.Subgraph != nil }

// String returns the endpoint as it appears in an edge statement.
func (ep Endpoint) String() string {
	if ep.Subgraph != nil {
		return strings.TrimSuffix(ep.Subgraph.String(), "\n")
	}
	return Quote(ep.ID)
}

// Edge connects two endpoints. Edges between the same endpoints are
// distinct values and are never merged.
type Edge struct {
	attributed
	src, dst Endpoint
	seq      int
	owner    *Graph
}

// NewEdge returns a detached edge between two node identifiers.
func NewEdge(src, dst string) *Edge {
	return &Edge{src: ID(src), dst: ID(dst), seq: -1}
}

// NewEdgeBetween returns a detached edge between arbitrary endpoints.
func NewEdgeBetween(src, dst Endpoint) *Edge {
	return &Edge{src: src, dst: dst, seq: -1}
}

// Source returns the tail endpoint.
func (e *Edge) Source() Endpoint { return e.src }

// Destination returns the head endpoint.
func (e *Edge) Destination() Endpoint { return e.dst }

// Seq returns the declaration position of the edge within its graph, or -1
// while the edge is detached.
func (e *Edge) Seq() int { return e.seq }

// Owner returns the graph the edge was added to, or nil.
func (e *Edge) Owner() *Graph { return e.owner }

// String returns the edge statement. The operator follows the kind of the
// owning root graph; detached edges use "--".
func (e *Edge) String() string {
	op := "--"
	if e.owner != nil && e.owner.Directed() {
		op = "->"
	}
	s := e.src.String() + " " + op + " " + e.dst.String()
	if e.attrs.Len() > 0 {
		s += " [" + e.attrs.String() + "]"
	}
	return s + ";"
}
