package dotparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "{ } [ ] = , ; : +")
	expected := []TokenKind{
		TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenEquals, TokenComma, TokenSemicolon, TokenColon, TokenPlus, TokenEOF,
	}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerEdgeOps(t *testing.T) {
	tokens := collectTokens(t, "a -> b -- c")
	require.Len(t, tokens, 6)
	assert.Equal(t, TokenEdgeOp, tokens[1].Kind)
	assert.Equal(t, "->", tokens[1].Literal)
	assert.Equal(t, TokenEdgeOp, tokens[3].Kind)
	assert.Equal(t, "--", tokens[3].Literal)
}

func TestLexerIdentifiers(t *testing.T) {
	cases := []string{"foo", "_bar", "Plan123", "A_b_C", "ąę", "żółw_1"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id) // identifier + EOF
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"strict", TokenStrict},
		{"digraph", TokenDigraph},
		{"graph", TokenGraph},
		{"node", TokenNode},
		{"edge", TokenEdge},
		{"subgraph", TokenSubgraph},
		{"DiGraph", TokenDigraph},
		{"NODE", TokenNode},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, tt.kind, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.input, tokens[0].Literal, "input: %s", tt.input)
	}
}

func TestLexerStringsKeepSourceText(t *testing.T) {
	tests := []string{
		`"hello"`,
		`""`,
		`"with \"escaped\" quotes"`,
		`"multi
line"`,
		`"back\\slash"`,
		`"ünïcödé"`,
	}
	for _, input := range tests {
		tokens := collectTokens(t, input)
		require.Len(t, tokens, 2, "input: %s", input)
		assert.Equal(t, TokenString, tokens[0].Kind, "input: %s", input)
		assert.Equal(t, input, tokens[0].Literal, "input: %s", input)
	}
}

func TestLexerNumerals(t *testing.T) {
	tests := []string{"0", "42", "-7", "3.14", ".5", "-.5", "1.", "-2.25"}
	for _, input := range tests {
		tokens := collectTokens(t, input)
		require.Len(t, tokens, 2, "input: %s", input)
		assert.Equal(t, TokenNumeral, tokens[0].Kind, "input: %s", input)
		assert.Equal(t, input, tokens[0].Literal, "input: %s", input)
	}
}

func TestLexerHTMLStrings(t *testing.T) {
	tests := []string{
		`<b>bold</b>`,
		`<<table><tr><td>x</td></tr></table>>`,
		`<>`,
	}
	for _, input := range tests {
		tokens := collectTokens(t, input)
		require.Len(t, tokens, 2, "input: %s", input)
		assert.Equal(t, TokenHTML, tokens[0].Kind, "input: %s", input)
		assert.Equal(t, input, tokens[0].Literal, "input: %s", input)
	}
}

func TestLexerComments(t *testing.T) {
	src := `// line comment
# preprocessor line
a /* block
comment */ b
c // trailing`
	tokens := collectTokens(t, src)
	require.Len(t, tokens, 4)
	assert.Equal(t, "a", tokens[0].Literal)
	assert.Equal(t, "b", tokens[1].Literal)
	assert.Equal(t, "c", tokens[2].Literal)
	assert.Equal(t, TokenEOF, tokens[3].Kind)
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens(t, "graph {\n  a\n}")
	require.Len(t, tokens, 5)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 7, Offset: 6}, tokens[1].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 10}, tokens[2].Pos)
	assert.Equal(t, Position{Line: 3, Column: 1, Offset: 12}, tokens[3].Pos)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer([]byte("a b"))

	tok, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Literal)

	tok, err = lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Literal)

	tok, err = lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Literal)

	tok, err = lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok.Literal)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"unterminated string", `"abc`, "unterminated string"},
		{"unterminated block comment", "a /* never closed", "unterminated block comment"},
		{"unterminated HTML", "<<b>open", "unterminated HTML string"},
		{"digit-led identifier", "2abc", "identifier cannot start with a digit"},
		{"stray character", "@", "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := NewLexer([]byte(tt.input))
			var err error
			for i := 0; i < 5 && err == nil; i++ {
				var tok Token
				tok, err = lex.Next()
				if tok.Kind == TokenEOF && err == nil {
					break
				}
			}
			require.Error(t, err)
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Contains(t, lexErr.Error(), tt.msg)
			assert.Equal(t, 1, lexErr.Pos.Line)
		})
	}
}

func TestLexerErrorSpan(t *testing.T) {
	lex := NewLexer([]byte(`a "unterminated`))
	_, err := lex.Next()
	require.NoError(t, err)

	_, err = lex.Next()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, `"unterminated`, lexErr.Span)
	assert.Equal(t, 3, lexErr.Pos.Column)
}
