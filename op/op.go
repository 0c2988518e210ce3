// Package op defines opcodes used by the eks calc compiler and evaluator.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Stack
	LoadConst Code = 1 // Push the instruction's immediate operand
	LoadInput Code = 2 // Push the input value being evaluated

	// Binary: pop a (last pushed) then b, push b OP a
	Add    Code = 10
	Sub    Code = 11
	Mul    Code = 12
	Div    Code = 13
	Rem    Code = 14
	And    Code = 15
	Or     Code = 16
	Xor    Code = 17
	Shl    Code = 18 // Logical shift left
	Shr    Code = 19 // Logical shift right
	Sar    Code = 20 // Arithmetic shift right
	Rol    Code = 21 // Rotate left within the configured bit width
	Ror    Code = 22 // Rotate right within the configured bit width

	// Unary: pop a, push OP a. The shift variants carry the shift amount
	// as an immediate operand.
	Not      Code = 30 // One's complement
	Neg      Code = 31 // Two's complement
	ShlConst Code = 32
	ShrConst Code = 33
	SarConst Code = 34
	RolConst Code = 35
	RorConst Code = 36
)

// Info contains information about an opcode.
type Info struct {
	Code       Code
	Name       string
	Arity      int  // Number of stack operands consumed
	HasOperand bool // Whether the instruction carries an immediate operand
}

var infos = make([]Info, 64)

func init() {
	type opInfo struct {
		op      Code
		name    string
		arity   int
		operand bool
	}
	ops := []opInfo{
		{LoadConst, "LOAD_CONST", 0, true},
		{LoadInput, "LOAD_INPUT", 0, false},
		{Add, "ADD", 2, false},
		{Sub, "SUB", 2, false},
		{Mul, "MUL", 2, false},
		{Div, "DIV", 2, false},
		{Rem, "REM", 2, false},
		{And, "AND", 2, false},
		{Or, "OR", 2, false},
		{Xor, "XOR", 2, false},
		{Shl, "SHL", 2, false},
		{Shr, "SHR", 2, false},
		{Sar, "SAR", 2, false},
		{Rol, "ROL", 2, false},
		{Ror, "ROR", 2, false},
		{Not, "NOT", 1, false},
		{Neg, "NEG", 1, false},
		{ShlConst, "SHL_CONST", 1, true},
		{ShrConst, "SHR_CONST", 1, true},
		{SarConst, "SAR_CONST", 1, true},
		{RolConst, "ROL_CONST", 1, true},
		{RorConst, "ROR_CONST", 1, true},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:       o.op,
			Name:       o.name,
			Arity:      o.arity,
			HasOperand: o.operand,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(code Code) Info {
	return infos[code]
}

// ConstVariant returns the shift-by-constant variant of a binary shift or
// rotate opcode, or Invalid if the opcode has no such variant.
func ConstVariant(code Code) Code {
	switch code {
	case Shl:
		return ShlConst
	case Shr:
		return ShrConst
	case Sar:
		return SarConst
	case Rol:
		return RolConst
	case Ror:
		return RorConst
	}
	return Invalid
}
