package dot

// DefaultName is the name given to graphs built by the helpers below.
const DefaultName = "G"

// edgeBuilder creates nodes lazily, once per distinct quoted identifier.
type edgeBuilder struct {
	g      *Graph
	prefix string
	seen   map[string]bool
}

func newEdgeBuilder(directed bool, prefix string) *edgeBuilder {
	kind := KindGraph
	if directed {
		kind = KindDigraph
	}
	return &edgeBuilder{
		g:      NewGraph(DefaultName, kind),
		prefix: prefix,
		seen:   make(map[string]bool),
	}
}

func (b *edgeBuilder) node(v any) string {
	name := Quote(b.prefix + Stringify(v))
	if !b.seen[name] {
		b.seen[name] = true
		b.g.appendNode(NewNode(name))
	}
	return name
}

func (b *edgeBuilder) connect(src, dst any) {
	s := b.node(src)
	d := b.node(dst)
	b.g.appendEdge(NewEdge(s, d))
}

// FromEdges builds a graph named G with one edge per pair, in order. Each
// endpoint is stringified, prefixed with nodePrefix and quoted; one node is
// created per distinct endpoint on first use.
func FromEdges(pairs [][2]any, directed bool, nodePrefix string) *Graph {
	b := newEdgeBuilder(directed, nodePrefix)
	for _, p := range pairs {
		b.connect(p[0], p[1])
	}
	return b.g
}

// FromAdjacencyMatrix builds a graph from a square adjacency matrix. Nodes
// are numbered from 1. Undirected graphs only read the upper triangle,
// diagonal included.
func FromAdjacencyMatrix(matrix [][]int, directed bool, nodePrefix string) *Graph {
	b := newEdgeBuilder(directed, nodePrefix)
	for i, row := range matrix {
		start := 0
		if !directed {
			start = i
		}
		for j := start; j < len(row); j++ {
			if row[j] != 0 {
				b.connect(i+1, j+1)
			}
		}
	}
	return b.g
}

// FromIncidenceMatrix builds a graph from an incidence matrix where each row
// is an edge and each column a node, numbered from 1. Rows with exactly two
// non-zero entries become an edge from the negative entry to the positive
// one; with equal signs the lower column comes first.
func FromIncidenceMatrix(matrix [][]int, directed bool, nodePrefix string) *Graph {
	b := newEdgeBuilder(directed, nodePrefix)
	for _, row := range matrix {
		var cols, signs []int
		for j, v := range row {
			if v != 0 {
				cols = append(cols, j+1)
				signs = append(signs, v)
			}
		}
		if len(cols) != 2 {
			continue
		}
		if signs[0] > 0 && signs[1] < 0 {
			cols[0], cols[1] = cols[1], cols[0]
		}
		b.connect(cols[0], cols[1])
	}
	return b.g
}
