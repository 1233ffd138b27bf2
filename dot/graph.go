package dot

import "strings"

// Kind is the graph keyword.
type Kind string

const (
	KindGraph   Kind = "graph"
	KindDigraph Kind = "digraph"
)

// Role distinguishes root graphs from nested subgraphs and clusters.
type Role int

const (
	RoleRoot Role = iota
	RoleSubgraph
	RoleCluster
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root graph"
	case RoleSubgraph:
		return "subgraph"
	case RoleCluster:
		return "cluster"
	default:
		return "unknown role"
	}
}

// ClusterPrefix marks subgraphs that renderers draw as a grouped region.
const ClusterPrefix = "cluster"

// DefaultProgram is the renderer program used when none is configured.
const DefaultProgram = "dot"

// Graph is a root graph, a subgraph or a cluster. It owns its nodes, edges
// and child subgraphs, kept in insertion order.
type Graph struct {
	attributed

	name   string
	kind   Kind
	strict bool
	role   Role
	parent *Graph

	nodes     []*Node
	edges     []*Edge
	subgraphs []*Graph

	graphDefaults Attrs
	nodeDefaults  Attrs
	edgeDefaults  Attrs

	suppressDisconnected bool

	// Render parameters, only meaningful on a root graph.
	charset    string
	shapeFiles []string
	program    string
	programs   map[string]string
}

// NewGraph returns an empty root graph. Any kind other than KindDigraph is
// treated as KindGraph.
func NewGraph(name string, kind Kind) *Graph {
	if kind != KindDigraph {
		kind = KindGraph
	}
	return &Graph{name: name, kind: kind, role: RoleRoot}
}

// NewSubgraph returns a detached subgraph. An empty name makes it anonymous.
func NewSubgraph(name string) *Graph {
	return &Graph{name: name, kind: KindGraph, role: RoleSubgraph}
}

// NewCluster returns a detached cluster, prefixing name with "cluster_"
// unless it already starts with the cluster prefix.
func NewCluster(name string) *Graph {
	if !HasClusterPrefix(name) {
		if IsQuoted(name) {
			name = `"` + ClusterPrefix + "_" + name[1:]
		} else {
			name = ClusterPrefix + "_" + name
		}
	}
	return &Graph{name: name, kind: KindGraph, role: RoleCluster}
}

// HasClusterPrefix reports whether a subgraph name designates a cluster.
func HasClusterPrefix(name string) bool {
	return strings.HasPrefix(Unquote(name), ClusterPrefix)
}

// Name returns the graph name as given.
func (g *Graph) Name() string { return g.name }

// Role returns whether g is a root graph, subgraph or cluster.
func (g *Graph) Role() Role { return g.role }

// Parent returns the graph that owns g, or nil.
func (g *Graph) Parent() *Graph { return g.parent }

// Root returns the outermost graph of the tree g belongs to.
func (g *Graph) Root() *Graph {
	r := g
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Kind returns the kind of the root graph.
func (g *Graph) Kind() Kind { return g.Root().kind }

// SetKind changes the graph keyword. It has no visible effect on a
// subgraph attached to a root.
func (g *Graph) SetKind(kind Kind) {
	if kind != KindDigraph {
		kind = KindGraph
	}
	g.kind = kind
}

// Directed reports whether edges in g are written with "->".
func (g *Graph) Directed() bool { return g.Kind() == KindDigraph }

// Strict reports whether the strict flag is set.
func (g *Graph) Strict() bool { return g.strict }

// SetStrict sets the strict flag. Only root graphs write it.
func (g *Graph) SetStrict(strict bool) { g.strict = strict }

// SetSuppressDisconnected omits nodes that no edge of g refers to when
// serializing.
func (g *Graph) SetSuppressDisconnected(v bool) { g.suppressDisconnected = v }

// GraphDefaults returns the bucket written as "graph [...]".
func (g *Graph) GraphDefaults() *Attrs { return &g.graphDefaults }

// NodeDefaults returns the bucket written as "node [...]".
func (g *Graph) NodeDefaults() *Attrs { return &g.nodeDefaults }

// EdgeDefaults returns the bucket written as "edge [...]".
func (g *Graph) EdgeDefaults() *Attrs { return &g.edgeDefaults }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node { return append([]*Node(nil), g.nodes...) }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge { return append([]*Edge(nil), g.edges...) }

// Subgraphs returns the child subgraphs and clusters in insertion order.
func (g *Graph) Subgraphs() []*Graph { return append([]*Graph(nil), g.subgraphs...) }

// AddNode appends n to g.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return &ArgumentTypeError{Op: "AddNode", Got: "nil node"}
	}
	if n.owner != nil {
		return attached("AddNode", n.name)
	}
	g.appendNode(n)
	return nil
}

func (g *Graph) appendNode(n *Node) {
	n.owner = g
	g.nodes = append(g.nodes, n)
}

// AddEdge appends e to g. Subgraph endpoints become owned by g.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return &ArgumentTypeError{Op: "AddEdge", Got: "nil edge"}
	}
	if e.owner != nil {
		return attached("AddEdge", e.src.ID+" "+e.dst.ID)
	}
	for _, ep := range []Endpoint{e.src, e.dst} {
		if ep.Subgraph == nil {
			continue
		}
		if err := g.checkChild("AddEdge", ep.Subgraph); err != nil {
			return err
		}
	}
	if e.src.Subgraph != nil && e.src.Subgraph == e.dst.Subgraph {
		return &ArgumentTypeError{Op: "AddEdge", Got: "subgraph used as both endpoints"}
	}
	g.appendEdge(e)
	return nil
}

func (g *Graph) appendEdge(e *Edge) {
	for _, ep := range []Endpoint{e.src, e.dst} {
		if ep.Subgraph != nil {
			ep.Subgraph.parent = g
		}
	}
	e.owner = g
	e.seq = len(g.edges)
	g.edges = append(g.edges, e)
}

// AddSubgraph appends s as a child of g.
func (g *Graph) AddSubgraph(s *Graph) error {
	if err := g.checkChild("AddSubgraph", s); err != nil {
		return err
	}
	s.parent = g
	g.subgraphs = append(g.subgraphs, s)
	return nil
}

func (g *Graph) checkChild(op string, s *Graph) error {
	if s == nil {
		return &ArgumentTypeError{Op: op, Got: "nil subgraph"}
	}
	if s.role == RoleRoot {
		return &ArgumentTypeError{Op: op, Got: s.role.String()}
	}
	for a := g; a != nil; a = a.parent {
		if a == s {
			return &ArgumentTypeError{Op: op, Got: "subgraph that contains the receiver"}
		}
	}
	if s.parent != nil {
		return attached(op, s.name)
	}
	return nil
}

// Node returns the first node whose name refers to the same identifier as
// name, or nil.
func (g *Graph) Node(name string) *Node {
	q := CanonicalID(name)
	for _, n := range g.nodes {
		if CanonicalID(n.name) == q {
			return n
		}
	}
	return nil
}

// EdgesBetween returns the edges from src to dst between node identifiers.
func (g *Graph) EdgesBetween(src, dst string) []*Edge {
	qs, qd := CanonicalID(src), CanonicalID(dst)
	var out []*Edge
	for _, e := range g.edges {
		if e.src.Subgraph != nil || e.dst.Subgraph != nil {
			continue
		}
		if CanonicalID(e.src.ID) == qs && CanonicalID(e.dst.ID) == qd {
			out = append(out, e)
		}
	}
	return out
}

// Subgraph returns the first direct child with the given name, or nil.
func (g *Graph) Subgraph(name string) *Graph {
	q := CanonicalID(name)
	for _, s := range g.subgraphs {
		if CanonicalID(s.name) == q {
			return s
		}
	}
	return nil
}

// RemoveNode detaches every node named name and returns how many were
// removed. Edges are left untouched.
func (g *Graph) RemoveNode(name string) int {
	q := CanonicalID(name)
	kept := g.nodes[:0]
	removed := 0
	for _, n := range g.nodes {
		if CanonicalID(n.name) == q {
			n.owner = nil
			removed++
			continue
		}
		kept = append(kept, n)
	}
	clear(g.nodes[len(kept):])
	g.nodes = kept
	return removed
}

// RemoveEdges detaches every edge from src to dst and returns how many were
// removed. Remaining edges are renumbered.
func (g *Graph) RemoveEdges(src, dst string) int {
	doomed := make(map[*Edge]bool)
	for _, e := range g.EdgesBetween(src, dst) {
		doomed[e] = true
	}
	if len(doomed) == 0 {
		return 0
	}
	kept := g.edges[:0]
	for _, e := range g.edges {
		if doomed[e] {
			e.owner = nil
			e.seq = -1
			continue
		}
		e.seq = len(kept)
		kept = append(kept, e)
	}
	clear(g.edges[len(kept):])
	g.edges = kept
	return len(doomed)
}

// Clone returns a deep, detached copy of g. A cloned root stays a root;
// cloned subgraphs have no parent.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		name:                 g.name,
		kind:                 g.kind,
		strict:               g.strict,
		role:                 g.role,
		graphDefaults:        g.graphDefaults.Clone(),
		nodeDefaults:         g.nodeDefaults.Clone(),
		edgeDefaults:         g.edgeDefaults.Clone(),
		suppressDisconnected: g.suppressDisconnected,
		charset:              g.charset,
		shapeFiles:           append([]string(nil), g.shapeFiles...),
		program:              g.program,
	}
	c.attrs = g.attrs.Clone()
	if g.programs != nil {
		c.programs = make(map[string]string, len(g.programs))
		for k, v := range g.programs {
			c.programs[k] = v
		}
	}
	for _, n := range g.nodes {
		cn := NewNode(n.name)
		cn.attrs = n.attrs.Clone()
		c.appendNode(cn)
	}
	for _, e := range g.edges {
		ce := NewEdgeBetween(cloneEndpoint(e.src), cloneEndpoint(e.dst))
		ce.attrs = e.attrs.Clone()
		c.appendEdge(ce)
	}
	for _, s := range g.subgraphs {
		cs := s.Clone()
		cs.parent = c
		c.subgraphs = append(c.subgraphs, cs)
	}
	return c
}

func cloneEndpoint(ep Endpoint) Endpoint {
	if ep.Subgraph == nil {
		return ep
	}
	return Sub(ep.Subgraph.Clone())
}

// Charset returns the declared charset label.
func (g *Graph) Charset() string { return g.charset }

// SetCharset declares the charset label handed to the renderer. The
// serialized text is not transcoded.
func (g *Graph) SetCharset(label string) { g.charset = label }

// ShapeFiles returns the auxiliary files made available to the renderer.
func (g *Graph) ShapeFiles() []string { return append([]string(nil), g.shapeFiles...) }

// SetShapeFiles sets the auxiliary files made available to the renderer.
func (g *Graph) SetShapeFiles(paths []string) {
	g.shapeFiles = append([]string(nil), paths...)
}

// Program returns the default renderer program name.
func (g *Graph) Program() string {
	if g.program == "" {
		return DefaultProgram
	}
	return g.program
}

// SetProgram sets the default renderer program name.
func (g *Graph) SetProgram(name string) { g.program = name }

// Programs returns a copy of the program name to executable path map.
func (g *Graph) Programs() map[string]string {
	out := make(map[string]string, len(g.programs))
	for k, v := range g.programs {
		out[k] = v
	}
	return out
}

// SetPrograms replaces the program name to executable path map.
func (g *Graph) SetPrograms(programs map[string]string) {
	g.programs = make(map[string]string, len(programs))
	for k, v := range programs {
		g.programs[k] = v
	}
}
