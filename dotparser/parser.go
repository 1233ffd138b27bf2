package dotparser

import (
	"fmt"

	"github.com/pydot/pydot-ng/dot"
)

// Parse parses DOT source text and returns every graph it defines, in
// source order. Returns a *SyntaxError or *LexError on failure, in which
// case no graph is returned.
func Parse(src []byte) ([]*dot.Graph, error) {
	p := &parser{lex: NewLexer(src)}
	graphs, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	return graphs, nil
}

// ParseOne parses source text that must define exactly one graph.
func ParseOne(src []byte) (*dot.Graph, error) {
	graphs, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if len(graphs) != 1 {
		return nil, &ParseError{Message: fmt.Sprintf("expected exactly one graph, found %d", len(graphs))}
	}
	return graphs[0], nil
}

type parser struct {
	lex *Lexer
}

// scope is the graph or subgraph whose statements are being consumed.
type scope struct {
	g     *dot.Graph
	nodes map[string]*dot.Node // merge target for repeated node statements
}

func newScope(g *dot.Graph) *scope {
	return &scope{g: g, nodes: make(map[string]*dot.Node)}
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, unexpected(tok, kind.String())
	}
	return tok, nil
}

// accept consumes the next token if it has the given kind.
func (p *parser) accept(kind TokenKind) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != kind {
		return false, nil
	}
	_, _ = p.next()
	return true, nil
}

func (p *parser) consumeOptionalSemicolon() error {
	_, err := p.accept(TokenSemicolon)
	return err
}

func (p *parser) parseDocument() ([]*dot.Graph, error) {
	var graphs []*dot.Graph
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenEOF:
			return graphs, nil
		case TokenSemicolon:
			_, _ = p.next()
			continue
		}
		g, err := p.parseGraph()
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
}

func (p *parser) parseGraph() (*dot.Graph, error) {
	strict, err := p.accept(TokenStrict)
	if err != nil {
		return nil, err
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	var kind dot.Kind
	switch tok.Kind {
	case TokenGraph:
		kind = dot.KindGraph
	case TokenDigraph:
		kind = dot.KindDigraph
	default:
		return nil, unexpected(tok, "'graph' or 'digraph'")
	}

	var name string
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Kind.IsID() {
		if name, err = p.parseID(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	g := dot.NewGraph(name, kind)
	g.SetStrict(strict)
	if err := p.parseStatements(newScope(g)); err != nil {
		return nil, err
	}
	return g, nil
}

// parseStatements consumes statements up to and including the closing brace.
func (p *parser) parseStatements(sc *scope) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case TokenRBrace:
			_, _ = p.next()
			return nil
		case TokenEOF:
			return unexpected(tok, "'}'")
		case TokenSemicolon:
			_, _ = p.next()
			continue
		}
		if err := p.parseStatement(sc); err != nil {
			return err
		}
		if err := p.consumeOptionalSemicolon(); err != nil {
			return err
		}
	}
}

func (p *parser) parseStatement(sc *scope) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	switch {
	case tok.Kind == TokenGraph:
		return p.parseAttrStmt(sc.g.GraphDefaults())
	case tok.Kind == TokenNode:
		return p.parseAttrStmt(sc.g.NodeDefaults())
	case tok.Kind == TokenEdge:
		return p.parseAttrStmt(sc.g.EdgeDefaults())
	case tok.Kind == TokenSubgraph || tok.Kind == TokenLBrace:
		return p.parseSubgraphStatement(sc)
	case tok.Kind.IsID():
		return p.parseIdentifierStatement(sc)
	default:
		return unexpected(tok, "statement")
	}
}

// parseAttrStmt handles graph [...], node [...] and edge [...].
func (p *parser) parseAttrStmt(bucket *dot.Attrs) error {
	_, _ = p.next() // consume keyword

	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != TokenLBracket {
		return unexpected(tok, "'['")
	}
	attrs, err := p.parseAttrLists()
	if err != nil {
		return err
	}
	bucket.Merge(attrs)
	return nil
}

// parseSubgraphStatement handles a subgraph that is either a child of the
// current scope or the first endpoint of an edge chain.
func (p *parser) parseSubgraphStatement(sc *scope) error {
	sub, err := p.parseSubgraph()
	if err != nil {
		return err
	}

	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenEdgeOp {
		return p.parseEdgeChain(sc, dot.Sub(sub))
	}
	return sc.g.AddSubgraph(sub)
}

// parseIdentifierStatement disambiguates between an assignment, an edge
// chain and a node statement.
func (p *parser) parseIdentifierStatement(sc *scope) error {
	id, err := p.parseID()
	if err != nil {
		return err
	}

	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenEquals {
		_, _ = p.next()
		value, err := p.parseAssignedValue()
		if err != nil {
			return err
		}
		sc.g.Set(id, value)
		return nil
	}

	nodeID, err := p.parsePort(id)
	if err != nil {
		return err
	}

	tok, err = p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenEdgeOp {
		return p.parseEdgeChain(sc, dot.ID(nodeID))
	}
	return p.parseNodeBody(sc, nodeID)
}

// parseNodeBody parses the optional attribute lists of a node statement and
// merges them into an earlier node of the same name in this scope.
func (p *parser) parseNodeBody(sc *scope, id string) error {
	var attrs *dot.Attrs
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenLBracket {
		if attrs, err = p.parseAttrLists(); err != nil {
			return err
		}
	}

	key := dot.CanonicalID(id)
	if existing, ok := sc.nodes[key]; ok {
		existing.Attrs().Merge(attrs)
		return nil
	}
	n := dot.NewNode(id)
	n.Attrs().Merge(attrs)
	if err := sc.g.AddNode(n); err != nil {
		return err
	}
	sc.nodes[key] = n
	return nil
}

// parseEdgeChain parses (edge_op endpoint)+ attr_list? after the first
// endpoint and emits one edge per consecutive pair, each carrying the whole
// attribute list.
func (p *parser) parseEdgeChain(sc *scope, first dot.Endpoint) error {
	endpoints := []dot.Endpoint{first}

	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind != TokenEdgeOp {
			break
		}
		_, _ = p.next() // consume -> or --

		ep, err := p.parseEndpoint()
		if err != nil {
			return err
		}
		endpoints = append(endpoints, ep)
	}

	var attrs *dot.Attrs
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenLBracket {
		if attrs, err = p.parseAttrLists(); err != nil {
			return err
		}
	}

	for i := 0; i < len(endpoints)-1; i++ {
		src, dst := endpoints[i], endpoints[i+1]
		// A subgraph in the middle of a chain belongs to two edges.
		if i > 0 && src.Subgraph != nil {
			src = dot.Sub(src.Subgraph.Clone())
		}
		e := dot.NewEdgeBetween(src, dst)
		e.Attrs().Merge(attrs)
		if err := sc.g.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseEndpoint() (dot.Endpoint, error) {
	tok, err := p.peek()
	if err != nil {
		return dot.Endpoint{}, err
	}
	if tok.Kind == TokenSubgraph || tok.Kind == TokenLBrace {
		sub, err := p.parseSubgraph()
		if err != nil {
			return dot.Endpoint{}, err
		}
		return dot.Sub(sub), nil
	}
	if !tok.Kind.IsID() {
		_, _ = p.next()
		return dot.Endpoint{}, unexpected(tok, "node identifier or subgraph")
	}
	id, err := p.parseID()
	if err != nil {
		return dot.Endpoint{}, err
	}
	nodeID, err := p.parsePort(id)
	if err != nil {
		return dot.Endpoint{}, err
	}
	return dot.ID(nodeID), nil
}

// parseSubgraph parses ["subgraph" [id]] "{" stmt* "}" into a detached
// subgraph with its own scope.
func (p *parser) parseSubgraph() (*dot.Graph, error) {
	var name string
	isKeyword, err := p.accept(TokenSubgraph)
	if err != nil {
		return nil, err
	}
	if isKeyword {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind.IsID() {
			if name, err = p.parseID(); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	var sub *dot.Graph
	if name != "" && dot.HasClusterPrefix(name) {
		sub = dot.NewCluster(name)
	} else {
		sub = dot.NewSubgraph(name)
	}
	if err := p.parseStatements(newScope(sub)); err != nil {
		return nil, err
	}
	return sub, nil
}

// parsePort extends a node identifier with :port and :compass parts.
func (p *parser) parsePort(id string) (string, error) {
	for i := 0; i < 2; i++ {
		ok, err := p.accept(TokenColon)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		part, err := p.parseValue()
		if err != nil {
			return "", err
		}
		id += ":" + part
	}
	return id, nil
}

// parseAttrLists parses one or more consecutive [ ... ] blocks.
func (p *parser) parseAttrLists() (*dot.Attrs, error) {
	attrs := &dot.Attrs{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenLBracket {
			return attrs, nil
		}
		_, _ = p.next() // consume [
		if err := p.parseAttrListBody(attrs); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseAttrListBody(attrs *dot.Attrs) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokenRBracket {
			_, _ = p.next()
			return nil
		}

		key, err := p.parseValue()
		if err != nil {
			return err
		}

		hasValue, err := p.accept(TokenEquals)
		if err != nil {
			return err
		}
		if hasValue {
			value, err := p.parseAssignedValue()
			if err != nil {
				return err
			}
			attrs.Set(key, value)
		} else {
			attrs.SetFlag(key)
		}

		tok, err = p.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokenComma || tok.Kind == TokenSemicolon {
			_, _ = p.next()
		}
	}
}

// parseValue parses an ID in attribute position, where keywords are
// tolerated as plain words.
func (p *parser) parseValue() (string, error) {
	tok, err := p.peek()
	if err != nil {
		return "", err
	}
	if tok.Kind.IsKeyword() {
		_, _ = p.next()
		return tok.Literal, nil
	}
	return p.parseID()
}

// parseAssignedValue parses the right-hand side of key=value, which may be a
// port reference such as A:B.
func (p *parser) parseAssignedValue() (string, error) {
	v, err := p.parseValue()
	if err != nil {
		return "", err
	}
	return p.parsePort(v)
}

// parseID parses identifier | numeral | html | quoted ("+"? quoted)*.
// Numerals keep their source text and quoted literals keep their quotes;
// adjacent or "+"-joined quoted literals become one literal.
func (p *parser) parseID() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case TokenIdentifier, TokenNumeral, TokenHTML:
		return tok.Literal, nil
	case TokenString:
	default:
		return "", unexpected(tok, "identifier")
	}

	literal := tok.Literal
	for {
		next, err := p.peek()
		if err != nil {
			return "", err
		}
		switch next.Kind {
		case TokenPlus:
			_, _ = p.next()
			more, err := p.expect(TokenString)
			if err != nil {
				return "", err
			}
			literal = concatQuoted(literal, more.Literal)
		case TokenString:
			_, _ = p.next()
			literal = concatQuoted(literal, next.Literal)
		default:
			return literal, nil
		}
	}
}

// concatQuoted joins two quoted literals: "a" + "b" becomes "ab".
func concatQuoted(a, b string) string {
	return a[:len(a)-1] + b[1:]
}
