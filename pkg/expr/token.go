// Package expr implements the propositional-logic expression language: lexer,
// syntax validator, tree builder, printer and truth-table evaluator.
package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenVar     TokenType = iota // single lowercase letter
	TokenLParen                   // (
	TokenRParen                   // )
	TokenAnd                      // AND
	TokenOr                       // OR
	TokenImplies                  // ->
	TokenNot                      // NOT
	TokenIllegal                  // any other character
)

// Token represents a single lexical token.
type Token struct {
	Type  TokenType
	Value string // canonical keyword or the raw character
	Pos   int    // byte offset in source
}

// keyword pairs the canonical spelling with its token type. Order matters:
// the lexer tries them in this order at each position.
type keyword struct {
	text string
	typ  TokenType
}

var keywords = []keyword{
	{"AND", TokenAnd},
	{"OR", TokenOr},
	{"->", TokenImplies},
	{"NOT", TokenNot},
}

// binaryKeywords and unaryKeywords are the operator spellings the validator
// scans for.
var (
	binaryKeywords = []string{"AND", "OR", "->"}
	unaryKeywords  = []string{"NOT"}
)

// IsBinary reports whether the token is a binary operator.
func (t Token) IsBinary() bool {
	return t.Type == TokenAnd || t.Type == TokenOr || t.Type == TokenImplies
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenVar:
		return "VAR"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenImplies:
		return "IMPLIES"
	case TokenNot:
		return "NOT"
	case TokenIllegal:
		return "ILLEGAL"
	default:
		return "UNKNOWN"
	}
}
