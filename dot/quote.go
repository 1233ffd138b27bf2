package dot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywords are the reserved words of the DOT grammar. They match
// case-insensitively.
var keywords = map[string]bool{
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"node":     true,
	"edge":     true,
	"strict":   true,
}

// IsKeyword reports whether s is a DOT keyword.
func IsKeyword(s string) bool {
	return keywords[strings.ToLower(s)]
}

// IsQuoted reports whether s is already a well-formed double-quoted
// literal: inner quotes are escaped and the closing quote is not.
func IsQuoted(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	i := 1
	for ; i < len(s)-1; i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return false
		}
	}
	return i == len(s)-1
}

// isHTML reports whether s reads back as a single HTML-like literal: the
// angle brackets balance and close for the first time on the last byte.
func isHTML(s string) bool {
	if len(s) < 2 || s[0] != '<' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

// Quote returns s in a form that can be written as a DOT identifier.
//
// Already quoted literals and HTML-like literals are returned unchanged, as
// are plain identifiers, unsigned integers and port references built from
// them (A:B). Anything else, including the empty string, is wrapped in
// double quotes with inner quotes escaped. Other escapes such as \n are kept
// for the renderer; only backslashes that would swallow a quote are doubled.
func Quote(s string) string {
	if IsQuoted(s) || isHTML(s) {
		return s
	}
	if isPlain(s) || isPort(s) {
		return s
	}
	return `"` + escape(s) + `"`
}

func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			j := i
			for j < len(s) && s[j] == '\\' {
				j++
			}
			run := s[i:j]
			b.WriteString(run)
			if j == len(s) || s[j] == '"' {
				b.WriteString(run)
			}
			i = j - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Unquote reverses Quote for quoted literals. Other values are returned as is.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}
	return unescape(s[1 : len(s)-1])
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		j := i
		for j < len(s) && s[j] == '\\' {
			j++
		}
		run := s[i:j]
		switch {
		case j < len(s) && s[j] == '"':
			// 2k+1 backslashes before a quote: k literal backslashes and the quote.
			b.WriteString(run[:len(run)/2])
			b.WriteByte('"')
			j++
		case j == len(s) && len(run)%2 == 0:
			b.WriteString(run[:len(run)/2])
		default:
			b.WriteString(run)
		}
		i = j - 1
	}
	return b.String()
}

// CanonicalID returns the form used to compare identifiers: "a" and a name
// the same node, as do "a b" and a b.
func CanonicalID(s string) string {
	return Quote(Unquote(s))
}

// QuoteValue stringifies v and quotes the result.
func QuoteValue(v any) string {
	return Quote(Stringify(v))
}

// Stringify renders a scalar as DOT source text. Booleans become the
// barewords True and False; floats always carry a decimal point or an
// exponent.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	var s string
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, bits)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, bits)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func isPlain(s string) bool {
	return isIdentifier(s) || isInteger(s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if first != '_' && !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s[size:] {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isPort matches node:port and node:port:compass references.
func isPort(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	for _, p := range parts {
		if !isPlain(p) {
			return false
		}
	}
	return true
}
