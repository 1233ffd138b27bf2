// Package dotparser parses Graphviz DOT text into dot.Graph trees.
//
// The full DOT grammar is accepted: strict graphs and digraphs, several
// graphs per document, nested and anonymous subgraphs, subgraphs as edge
// endpoints, node ports, HTML strings, quoted string concatenation and bare
// attributes without a value. Line (//, #) and block (/* */) comments are
// stripped before parsing.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// two layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments and
//     whitespace. Literals keep their exact source text.
//   - Parser: consumes tokens according to the grammar and builds the model
//     directly.
//
// Usage:
//
//	graphs, err := dotparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range graphs {
//	    fmt.Print(g.String())
//	}
//
// Statements are recorded as written rather than evaluated: default
// attribute statements fill the scope's default buckets instead of being
// copied onto later nodes, so writing the graph back reproduces the source
// structure. Repeating a node statement merges its attributes into the
// existing node of the same scope; an edge chain yields one edge per hop,
// each carrying the chain's attribute list.
//
// Validate runs lint rules over a parsed graph and returns diagnostics;
// ValidateOrError additionally fails when any diagnostic is an error.
package dotparser
