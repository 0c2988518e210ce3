package compiler

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/eks/op"
)

// Instruction is one operation in a compiled program. Operand carries the
// immediate value for LOAD_CONST and the shift-by-constant opcodes and is
// zero otherwise.
type Instruction struct {
	Op      op.Code
	Operand uint64
}

// Program is an immutable sequence of instructions produced by Compile. A
// Program is never empty, is never mutated after compilation, and may be
// shared by reference across any number of concurrent evaluations.
type Program struct {
	instructions []Instruction
	source       string
}

// Instructions returns the program's instruction sequence. The returned slice
// is shared and must be treated as read-only.
func (p *Program) Instructions() []Instruction {
	return p.instructions
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.instructions)
}

// Source returns the expression text the program was compiled from, when
// known.
func (p *Program) Source() string {
	return p.source
}

// String returns a disassembly-style listing of the program.
func (p *Program) String() string {
	var b strings.Builder
	for i, instr := range p.instructions {
		info := op.GetInfo(instr.Op)
		if info.HasOperand {
			fmt.Fprintf(&b, "%4d %s %d\n", i, info.Name, instr.Operand)
		} else {
			fmt.Fprintf(&b, "%4d %s\n", i, info.Name)
		}
	}
	return b.String()
}
