package dot

// Node is a named vertex. The name is kept exactly as given, quoted or not.
type Node struct {
	attributed
	name  string
	owner *Graph
}

// NewNode returns a detached node.
func NewNode(name string) *Node {
	return &Node{name: name}
}

// Name returns the node identifier as it was given.
func (n *Node) Name() string { return n.name }

// Owner returns the graph the node was added to, or nil.
func (n *Node) Owner() *Graph { return n.owner }

// String returns the node statement. A keyword-named node without
// attributes would be read back as something else, so it yields "".
func (n *Node) String() string {
	if n.attrs.Len() == 0 {
		if IsKeyword(n.name) {
			return ""
		}
		return Quote(n.name) + ";"
	}
	return Quote(n.name) + " [" + n.attrs.String() + "];"
}
