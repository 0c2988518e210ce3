// Package lexer splits a calc expression into tokens.
//
// Expressions are whitespace-insignificant: operators and integer literals
// are self-delimiting, so "x2*" lexes the same as "x 2 *". Integer literals
// are decimal by default, with explicit "0x" (hexadecimal) and "0b" (binary)
// prefixes. There is no octal form; a leading zero is just a decimal zero.
package lexer

import (
	"strconv"
	"strings"

	"github.com/cloudcmds/eks/errz"
	"github.com/cloudcmds/eks/token"
)

// Lexer scans one calc expression.
type Lexer struct {
	input string
	pos   int
}

// New creates a Lexer for the given expression text.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize lexes the entire expression, returning the token sequence
// terminated by an EOF token. It fails with a syntax error on the first
// unrecognized character or malformed integer literal.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token in the expression.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Column: l.pos}, nil
	}
	start := l.pos
	ch := l.input[l.pos]

	if isDigit(ch) {
		return l.readInt()
	}

	if ch == '<' || ch == '>' {
		for _, spelling := range []string{
			token.LT_LT_LT, token.GT_GT_GT, token.GT_GT_LT,
			token.LT_LT, token.GT_GT,
		} {
			if strings.HasPrefix(l.input[l.pos:], spelling) {
				l.pos += len(spelling)
				return token.Token{
					Type:    token.Type(spelling),
					Literal: spelling,
					Column:  start,
				}, nil
			}
		}
		return token.Token{}, errz.Syntax(start, nil,
			"unrecognized shift operator at %q", l.input[start:])
	}

	literal := string(ch)
	if typ := token.LookupOperator(literal); typ != token.ILLEGAL {
		l.pos++
		return token.Token{Type: typ, Literal: literal, Column: start}, nil
	}
	return token.Token{}, errz.Syntax(start, nil,
		"unrecognized character %q", rune(ch))
}

// readInt lexes one integer literal. The literal is validated here so that
// malformed text fails at tokenize time; the compiler re-parses the literal
// with ParseIntLiteral, which cannot fail on a token this function produced.
func (l *Lexer) readInt() (token.Token, error) {
	start := l.pos
	// Consume the whole alphanumeric run so that "0xq" and "9z" are
	// reported as one bad literal rather than a literal and a stray operator.
	for l.pos < len(l.input) && isAlphanumeric(l.input[l.pos]) {
		l.pos++
	}
	literal := l.input[start:l.pos]
	if _, err := ParseIntLiteral(literal); err != nil {
		return token.Token{}, errz.Syntax(start, errz.ErrInvalidLiteral,
			"invalid numeric literal %q", literal)
	}
	return token.Token{Type: token.INT, Literal: literal, Column: start}, nil
}

// ParseIntLiteral parses a decimal, 0x-prefixed hexadecimal, or 0b-prefixed
// binary integer literal into a uint64.
func ParseIntLiteral(literal string) (uint64, error) {
	radix := 10
	digits := literal
	if rest, ok := strings.CutPrefix(literal, "0x"); ok {
		radix, digits = 16, rest
	} else if rest, ok := strings.CutPrefix(literal, "0b"); ok {
		radix, digits = 2, rest
	}
	return strconv.ParseUint(digits, radix, 64)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphanumeric(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
