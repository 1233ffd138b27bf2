// Package dot models attributed graphs written in the Graphviz DOT language.
//
// The model is a parent-owned tree: a root Graph owns its nodes, edges and
// child subgraphs, and every element carries an ordered attribute set.
// Insertion order is preserved everywhere, so serialization is deterministic:
//
//	g := dot.NewGraph("G", dot.KindDigraph)
//	n := dot.NewNode("legend")
//	n.Set("shape", "box")
//	_ = g.AddNode(n)
//	fmt.Print(g.String())
//	// digraph G {
//	// legend [shape=box];
//	// }
//
// Identifiers are stored exactly as given and quoted only when written out,
// following the rules of [Quote]. Parsing DOT text into this model lives in
// package dotparser; rendering is delegated to a [render.Renderer] through
// [Graph.Create].
package dot
