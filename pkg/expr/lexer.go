package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a logic expression string.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize is shorthand for NewLexer(input).Tokenize().
func Tokenize(input string) []Token {
	return NewLexer(input).Tokenize()
}

// Tokenize scans the entire input and returns all tokens. It never fails:
// characters it does not recognize come out as TokenIllegal and are left for
// the validator to reject.
func (l *Lexer) Tokenize() []Token {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return l.tokens
		}
		l.tokens = append(l.tokens, l.next())
	}
}

// next returns the token at the current position.
func (l *Lexer) next() Token {
	start := l.pos
	for _, kw := range keywords {
		end := start + len(kw.text)
		if end <= len(l.input) && strings.EqualFold(l.input[start:end], kw.text) {
			l.pos = end
			return Token{Type: kw.typ, Value: kw.text, Pos: start}
		}
	}

	ch, size := utf8.DecodeRuneInString(l.input[start:])
	l.pos += size
	switch {
	case ch == '(':
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ch == ')':
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case ch >= 'a' && ch <= 'z':
		return Token{Type: TokenVar, Value: string(ch), Pos: start}
	default:
		return Token{Type: TokenIllegal, Value: string(ch), Pos: start}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}
