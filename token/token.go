// Package token defines the tokens produced when lexing a calc expression.
package token

// Type describes the type of a token as a string.
type Type string

// Token represents one token lexed from a calc expression. The Column records
// the 0-indexed offset of the token's first character in the input, which is
// used to point at the offending token in error messages.
type Token struct {
	Type    Type
	Literal string
	Column  int
}

// Token types
const (
	INT     = "INT"
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"

	PLUS      = "+"
	MINUS     = "-"
	ASTERISK  = "*"
	SLASH     = "/"
	MOD       = "%"
	AMPERSAND = "&"
	PIPE      = "|"
	CARET     = "^"
	BANG      = "!"
	TILDE     = "~"
	INPUT     = "x"
	LT_LT     = "<<"
	GT_GT     = ">>"
	GT_GT_GT  = ">>>"
	LT_LT_LT  = "<<<"
	GT_GT_LT  = ">><"
)

// operators maps each operator spelling to its token type. Multi-character
// spellings are matched longest-first by the lexer.
var operators = map[string]Type{
	"+":   PLUS,
	"-":   MINUS,
	"*":   ASTERISK,
	"/":   SLASH,
	"%":   MOD,
	"&":   AMPERSAND,
	"|":   PIPE,
	"^":   CARET,
	"!":   BANG,
	"~":   TILDE,
	"x":   INPUT,
	"<<":  LT_LT,
	">>":  GT_GT,
	">>>": GT_GT_GT,
	"<<<": LT_LT_LT,
	">><": GT_GT_LT,
}

// LookupOperator returns the token type for an operator spelling, or ILLEGAL
// if the spelling is not a known operator.
func LookupOperator(literal string) Type {
	if tok, ok := operators[literal]; ok {
		return tok
	}
	return ILLEGAL
}

// IsShift returns true for the shift and rotate token types, which support a
// shift-by-constant form when immediately followed by an integer literal.
func IsShift(t Type) bool {
	switch t {
	case LT_LT, GT_GT, GT_GT_GT, LT_LT_LT, GT_GT_LT:
		return true
	}
	return false
}
