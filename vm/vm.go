// Package vm provides a stack machine that evaluates compiled calc programs.
//
// One Machine is evaluated against one input value at a time. The input is
// pushed onto the stack before the program runs; the program's instructions
// then pop their operands in last-pushed-first order and push exactly one
// result each. A successful evaluation leaves the result on top of the stack,
// with at most the untouched input seed beneath it.
//
// Values live in a 64-bit unsigned accumulator and are masked to the
// configured bit width after every operation, so add and subtract wrap
// modulo 2^width. The arithmetic right shift interprets the accumulator as a
// 64-bit signed integer; masked values are non-negative, which makes ">>>7"
// on a byte extract its top bit into bit 0. Rotates act within the
// configured width. Shifting by an amount greater than or equal to the width
// is defined, not an error.
package vm

import (
	"github.com/cloudcmds/eks/compiler"
	"github.com/cloudcmds/eks/errz"
	"github.com/cloudcmds/eks/op"
)

// MaxStackDepth is the maximum number of values a program may stack up.
const MaxStackDepth = 1024

// Machine evaluates compiled programs. The zero value is ready to use. A
// Machine reuses its stack across evaluations and must not be shared by
// concurrent goroutines; programs themselves are immutable and may be shared
// freely.
type Machine struct {
	stack      [MaxStackDepth]uint64
	sp         int
	seedPopped bool
}

// New creates a new Machine.
func New() *Machine {
	return &Machine{sp: -1}
}

// Eval executes the program against one input value at the given bit width
// (1 through 64) and returns the single result value. It fails with a
// runtime error on stack underflow, a stack imbalance at program end, or
// division by zero.
func Eval(program *compiler.Program, input uint64, width uint) (uint64, error) {
	return New().Eval(program, input, width)
}

// Eval executes the program against one input value at the given bit width.
func (m *Machine) Eval(program *compiler.Program, input uint64, width uint) (uint64, error) {
	if width == 0 || width > 64 {
		width = 64
	}
	mask := widthMask(width)
	m.sp = -1
	m.seedPopped = false
	m.stack[0] = input & mask
	m.sp = 0

	for _, instr := range program.Instructions() {
		var result uint64
		switch instr.Op {
		case op.LoadConst:
			result = instr.Operand & mask
		case op.LoadInput:
			result = input & mask
		case op.Not:
			a, err := m.pop()
			if err != nil {
				return 0, err
			}
			result = ^a & mask
		case op.Neg:
			a, err := m.pop()
			if err != nil {
				return 0, err
			}
			result = -a & mask
		case op.ShlConst, op.ShrConst, op.SarConst, op.RolConst, op.RorConst:
			a, err := m.pop()
			if err != nil {
				return 0, err
			}
			result = shift(instr.Op, a, instr.Operand, width, mask)
		case op.Shl, op.Shr, op.Sar, op.Rol, op.Ror:
			amount, err := m.pop()
			if err != nil {
				return 0, err
			}
			a, err := m.pop()
			if err != nil {
				return 0, err
			}
			result = shift(instr.Op, a, amount, width, mask)
		case op.Add, op.Sub, op.Mul, op.Div, op.Rem, op.And, op.Or, op.Xor:
			a, err := m.pop()
			if err != nil {
				return 0, err
			}
			b, err := m.pop()
			if err != nil {
				return 0, err
			}
			result, err = binary(instr.Op, b, a, mask)
			if err != nil {
				return 0, err
			}
		default:
			return 0, errz.Runtime(nil, "invalid opcode %d", instr.Op)
		}
		if err := m.push(result); err != nil {
			return 0, err
		}
	}

	switch {
	case m.sp == 0:
		return m.stack[0], nil
	case m.sp == 1 && !m.seedPopped:
		// The program never consumed the implicit input seed; the seed is
		// not counted against the single-result rule.
		return m.stack[1], nil
	case m.sp < 0:
		return 0, errz.Runtime(errz.ErrStackImbalance,
			"program left no value on the stack")
	default:
		return 0, errz.Runtime(errz.ErrStackImbalance,
			"program left %d values on the stack", m.sp+1)
	}
}

func (m *Machine) push(v uint64) error {
	if m.sp+1 >= MaxStackDepth {
		return errz.Runtime(errz.ErrStackOverflow,
			"program exceeded the maximum stack depth of %d", MaxStackDepth)
	}
	m.sp++
	m.stack[m.sp] = v
	return nil
}

func (m *Machine) pop() (uint64, error) {
	if m.sp < 0 {
		return 0, errz.Runtime(errz.ErrStackUnderflow,
			"operator requires more operands than are on the stack")
	}
	if m.sp == 0 {
		m.seedPopped = true
	}
	v := m.stack[m.sp]
	m.sp--
	return v, nil
}

// binary computes b OP a for the fixed-arity arithmetic and bitwise opcodes.
func binary(code op.Code, b, a, mask uint64) (uint64, error) {
	switch code {
	case op.Add:
		return (b + a) & mask, nil
	case op.Sub:
		return (b - a) & mask, nil
	case op.Mul:
		return (b * a) & mask, nil
	case op.Div:
		if a == 0 {
			return 0, errz.Runtime(errz.ErrDivisionByZero, "division by zero")
		}
		return (b / a) & mask, nil
	case op.Rem:
		if a == 0 {
			return 0, errz.Runtime(errz.ErrDivisionByZero, "remainder by zero")
		}
		return (b % a) & mask, nil
	case op.And:
		return b & a, nil
	case op.Or:
		return b | a, nil
	case op.Xor:
		return b ^ a, nil
	}
	return 0, errz.Runtime(nil, "invalid opcode %d", code)
}

// shift computes the shift and rotate opcodes, in both their binary and
// shift-by-constant forms.
func shift(code op.Code, a, amount uint64, width uint, mask uint64) uint64 {
	switch code {
	case op.Shl, op.ShlConst:
		if amount >= 64 {
			return 0
		}
		return (a << amount) & mask
	case op.Shr, op.ShrConst:
		if amount >= 64 {
			return 0
		}
		return (a >> amount) & mask
	case op.Sar, op.SarConst:
		if amount > 63 {
			amount = 63
		}
		return uint64(int64(a)>>amount) & mask
	case op.Rol, op.RolConst:
		return rotate(a, amount%uint64(width), width, mask)
	case op.Ror, op.RorConst:
		r := amount % uint64(width)
		return rotate(a, uint64(width)-r, width, mask)
	}
	return 0
}

// rotate rotates a left by r bits within the given width. r must already be
// reduced modulo width.
func rotate(a, r uint64, width uint, mask uint64) uint64 {
	if r == 0 {
		return a & mask
	}
	return ((a << r) | (a >> (uint64(width) - r))) & mask
}

func widthMask(width uint) uint64 {
	if width == 0 || width >= 64 {
		return ^uint64(0)
	}
	return (1 << width) - 1
}
