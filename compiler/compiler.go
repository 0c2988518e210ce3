// Package compiler turns a calc token stream into an executable Program.
//
// Compilation is a single pass over the tokens. Each token maps to one
// instruction, with one peephole rule: a shift or rotate operator that is
// immediately followed by an integer literal compiles to a single
// shift-by-constant instruction, so ">>>7" means "arithmetic shift the top
// of stack right by 7". A shift or rotate with no trailing literal is the
// binary form, taking its amount from the stack.
//
// The compiler checks only that the token stream is non-empty. Stack-depth
// correctness is deliberately left to the evaluator: re-checking arity at
// runtime is cheap, and it keeps compile-time and run-time error domains
// cleanly separated.
package compiler

import (
	"github.com/cloudcmds/eks/errz"
	"github.com/cloudcmds/eks/lexer"
	"github.com/cloudcmds/eks/op"
	"github.com/cloudcmds/eks/token"
)

// binaryOps maps operator token types to their opcodes.
var binaryOps = map[token.Type]op.Code{
	token.PLUS:      op.Add,
	token.MINUS:     op.Sub,
	token.ASTERISK:  op.Mul,
	token.SLASH:     op.Div,
	token.MOD:       op.Rem,
	token.AMPERSAND: op.And,
	token.PIPE:      op.Or,
	token.CARET:     op.Xor,
	token.LT_LT:     op.Shl,
	token.GT_GT:     op.Shr,
	token.GT_GT_GT:  op.Sar,
	token.LT_LT_LT:  op.Rol,
	token.GT_GT_LT:  op.Ror,
}

// unaryOps maps the unary operator token types to their opcodes.
var unaryOps = map[token.Type]op.Code{
	token.BANG:  op.Not,
	token.TILDE: op.Neg,
}

// Compile compiles a token sequence into an immutable Program. It fails with
// a compile error when the expression is empty or a token is not part of the
// operator vocabulary.
func Compile(tokens []token.Token) (*Program, error) {
	var instructions []Instruction
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Type == token.EOF:
			continue
		case tok.Type == token.INT:
			value, err := lexer.ParseIntLiteral(tok.Literal)
			if err != nil {
				// The lexer validates literals, so this token did not
				// come from the lexer.
				return nil, errz.Compile(tok.Column, errz.ErrInvalidLiteral,
					"invalid numeric literal %q", tok.Literal)
			}
			instructions = append(instructions, Instruction{
				Op:      op.LoadConst,
				Operand: value,
			})
		case tok.Type == token.INPUT:
			instructions = append(instructions, Instruction{Op: op.LoadInput})
		case token.IsShift(tok.Type) && i+1 < len(tokens) && tokens[i+1].Type == token.INT:
			amount, err := lexer.ParseIntLiteral(tokens[i+1].Literal)
			if err != nil {
				return nil, errz.Compile(tokens[i+1].Column, errz.ErrInvalidLiteral,
					"invalid numeric literal %q", tokens[i+1].Literal)
			}
			instructions = append(instructions, Instruction{
				Op:      op.ConstVariant(binaryOps[tok.Type]),
				Operand: amount,
			})
			i++
		default:
			code, ok := unaryOps[tok.Type]
			if !ok {
				code, ok = binaryOps[tok.Type]
			}
			if !ok {
				return nil, errz.Compile(tok.Column, errz.ErrUnknownOperator,
					"unknown operator %q", tok.Literal)
			}
			instructions = append(instructions, Instruction{Op: code})
		}
	}
	if len(instructions) == 0 {
		return nil, errz.Compile(0, errz.ErrEmptyExpression, "empty expression")
	}
	return &Program{instructions: instructions}, nil
}

// CompileString tokenizes and compiles an expression in one step.
func CompileString(source string) (*Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	program, err := Compile(tokens)
	if err != nil {
		return nil, err
	}
	program.source = source
	return program, nil
}
