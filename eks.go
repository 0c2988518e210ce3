// Package eks reads raw bytes and renders them as a colorized textual dump.
//
// The coloring pipeline is driven by a small stack-based RPN expression (the
// "calc") compiled once per run and evaluated against every chunk of input,
// and by a color gradient queried with the evaluated result. This package is
// a convenience facade over the lexer, compiler, vm, and gradient packages.
package eks

import (
	"github.com/cloudcmds/eks/compiler"
	"github.com/cloudcmds/eks/gradient"
	"github.com/cloudcmds/eks/vm"
)

// Compile compiles a calc expression into an immutable program that can be
// shared across any number of evaluations.
func Compile(expression string) (*compiler.Program, error) {
	return compiler.CompileString(expression)
}

// Eval compiles and evaluates an expression against a single input value at
// the given bit width. When evaluating many inputs, compile once and reuse a
// vm.Machine instead.
func Eval(expression string, input uint64, width uint) (uint64, error) {
	program, err := Compile(expression)
	if err != nil {
		return 0, err
	}
	return vm.Eval(program, input, width)
}

// BuildGradient builds a gradient from a comma-separated list of color
// specifications (named colors or hex literals) or a preset palette name.
func BuildGradient(spec string) (*gradient.Gradient, error) {
	if colors, ok := gradient.Preset(spec); ok {
		return gradient.Build(colors)
	}
	colors, err := gradient.ParseList(spec)
	if err != nil {
		return nil, err
	}
	return gradient.Build(colors)
}
