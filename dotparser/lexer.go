package dotparser

import "fmt"

// Lexer tokenizes DOT source text into a stream of tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipLine() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v':
			l.advance()
		case ch == '#':
			// Preprocessor output line
			l.skipLine()
		case ch == '/' && l.peekAt(1) == '/':
			l.skipLine()
		case ch == '/' && l.peekAt(1) == '*':
			startPos := l.currentPos()
			l.advance() // consume /
			l.advance() // consume *
			for {
				if l.atEnd() {
					return &LexError{ParseError{
						Message: "unterminated block comment",
						Pos:     startPos,
						Span:    string(l.src[startPos.Offset:]),
					}}
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance() // consume *
					l.advance() // consume /
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) single(kind TokenKind, pos Position) (Token, error) {
	ch := l.advance()
	return Token{Kind: kind, Literal: string(ch), Pos: pos}, nil
}

func (l *Lexer) scan() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '{':
		return l.single(TokenLBrace, pos)
	case '}':
		return l.single(TokenRBrace, pos)
	case '[':
		return l.single(TokenLBracket, pos)
	case ']':
		return l.single(TokenRBracket, pos)
	case '=':
		return l.single(TokenEquals, pos)
	case ',':
		return l.single(TokenComma, pos)
	case ';':
		return l.single(TokenSemicolon, pos)
	case ':':
		return l.single(TokenColon, pos)
	case '+':
		return l.single(TokenPlus, pos)
	case '"':
		return l.scanString()
	case '<':
		return l.scanHTML()
	case '-':
		if next := l.peekAt(1); next == '>' || next == '-' {
			l.advance()
			l.advance()
			return Token{Kind: TokenEdgeOp, Literal: "-" + string(next), Pos: pos}, nil
		}
		if isDigit(l.peekAt(1)) || (l.peekAt(1) == '.' && isDigit(l.peekAt(2))) {
			return l.scanNumeral()
		}
	case '.':
		if isDigit(l.peekAt(1)) {
			return l.scanNumeral()
		}
	}

	if isDigit(ch) {
		return l.scanNumeral()
	}

	if isIdentStart(ch) {
		return l.scanIdentifier()
	}

	l.advance()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
		Span:    string(ch),
	}}
}

// scanString keeps the literal verbatim, quotes and escapes included, so it
// can be written back unchanged.
func (l *Lexer) scanString() (Token, error) {
	pos := l.currentPos()
	start := l.pos
	l.advance() // consume opening "

	for {
		if l.atEnd() {
			return Token{}, &LexError{ParseError{
				Message: "unterminated string",
				Pos:     pos,
				Span:    string(l.src[start:]),
			}}
		}
		ch := l.advance()
		if ch == '"' {
			return Token{Kind: TokenString, Literal: string(l.src[start:l.pos]), Pos: pos}, nil
		}
		if ch == '\\' && !l.atEnd() {
			l.advance()
		}
	}
}

// scanHTML reads an angle-bracket literal with balanced nested brackets.
func (l *Lexer) scanHTML() (Token, error) {
	pos := l.currentPos()
	start := l.pos
	depth := 0

	for !l.atEnd() {
		switch l.advance() {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return Token{Kind: TokenHTML, Literal: string(l.src[start:l.pos]), Pos: pos}, nil
			}
		}
	}
	return Token{}, &LexError{ParseError{
		Message: "unterminated HTML string",
		Pos:     pos,
		Span:    string(l.src[start:]),
	}}
}

func (l *Lexer) scanNumeral() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	if l.peek() == '-' {
		l.advance()
	}
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	// 2abc is not a valid ID; reject rather than split it silently.
	if !l.atEnd() && isIdentStart(l.peek()) {
		for !l.atEnd() && isIdentPart(l.peek()) {
			l.advance()
		}
		return Token{}, &LexError{ParseError{
			Message: "identifier cannot start with a digit",
			Pos:     pos,
			Span:    string(l.src[start:l.pos]),
		}}
	}

	return Token{Kind: TokenNumeral, Literal: string(l.src[start:l.pos]), Pos: pos}, nil
}

func (l *Lexer) scanIdentifier() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	literal := string(l.src[start:l.pos])

	if kind, ok := lookupKeyword(literal); ok {
		return Token{Kind: kind, Literal: literal, Pos: pos}, nil
	}

	return Token{Kind: TokenIdentifier, Literal: literal, Pos: pos}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart accepts any byte of a multi-byte UTF-8 sequence, matching
// Graphviz's treatment of \200-\377 as letters.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
