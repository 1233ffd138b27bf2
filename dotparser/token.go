package dotparser

import "strings"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // [A-Za-z_\x80-\xff][A-Za-z0-9_\x80-\xff]*
	TokenNumeral              // -?(\.[0-9]+|[0-9]+(\.[0-9]*)?)
	TokenString               // "..." kept verbatim, quotes included
	TokenHTML                 // <...> kept verbatim, brackets included
	TokenEdgeOp               // -> or --
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenEquals               // =
	TokenComma                // ,
	TokenSemicolon            // ;
	TokenColon                // :
	TokenPlus                 // +

	// Keywords (identifier text checked case-insensitively against keywords)
	TokenStrict   // strict
	TokenGraph    // graph
	TokenDigraph  // digraph
	TokenNode     // node
	TokenEdge     // edge
	TokenSubgraph // subgraph
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenNumeral:    "numeral",
	TokenString:     "string",
	TokenHTML:       "HTML string",
	TokenEdgeOp:     "edge operator",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenEquals:     "'='",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenColon:      "':'",
	TokenPlus:       "'+'",
	TokenStrict:     "'strict'",
	TokenGraph:      "'graph'",
	TokenDigraph:    "'digraph'",
	TokenNode:       "'node'",
	TokenEdge:       "'edge'",
	TokenSubgraph:   "'subgraph'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsID reports whether the token can stand for an identifier.
func (k TokenKind) IsID() bool {
	switch k {
	case TokenIdentifier, TokenNumeral, TokenString, TokenHTML:
		return true
	}
	return false
}

// IsKeyword reports whether the token is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenStrict && k <= TokenSubgraph
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // source text, verbatim
	Pos     Position
}

// keywords maps lower-cased keyword strings to their token kinds.
var keywords = map[string]TokenKind{
	"strict":   TokenStrict,
	"graph":    TokenGraph,
	"digraph":  TokenDigraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
	"subgraph": TokenSubgraph,
}

func lookupKeyword(literal string) (TokenKind, bool) {
	kind, ok := keywords[strings.ToLower(literal)]
	return kind, ok
}
