// Package eval provides a pure Go interpreter for parsed expression trees,
// independent of the machine code the code generator emits. It exists to
// check the code generator against: an equation's compiled bytes and this
// package's Eval must agree on every input, since spec scenario 3's
// register-collision repair and the Sum/Product spill rules are exactly
// the kind of peephole logic that silently breaks under a fresh tree
// shape. This package's tests check Eval against the parser's tree shapes
// and plain integer arithmetic; they do not run the generated machine code.
package eval

import "github.com/lcox74/minicomp/internal/lang"

// RuntimeError reports a failure evaluating an expression tree, mirroring
// the fact that this compiler's emitted code has no handling for the same
// conditions (divide-by-zero, an unbound parameter) — they are compiler
// or caller bugs, not user errors, so this package surfaces them as a Go
// error rather than panicking.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

// Eval walks node and computes its integer value using the same uint64
// arithmetic the generated machine code uses: unsigned 64-bit add,
// multiply (high bits of mul discarded, matching MulRcx/compileProduct),
// and truncating divide. args maps a parameter letter to the value it is
// bound to, the same role the equation's stack slots play at runtime.
func Eval(node *lang.Expr, args map[byte]uint64) (uint64, error) {
	switch node.Kind {
	case lang.ExprNumber:
		return node.Num, nil

	case lang.ExprArg:
		v, ok := args[node.Arg]
		if !ok {
			return 0, &RuntimeError{Msg: "unbound parameter: " + string(node.Arg)}
		}
		return v, nil

	case lang.ExprParen:
		return Eval(node.Left, args)

	case lang.ExprSum:
		l, err := Eval(node.Left, args)
		if err != nil {
			return 0, err
		}
		r, err := Eval(node.Right, args)
		if err != nil {
			return 0, err
		}
		return l + r, nil

	case lang.ExprProduct:
		l, err := Eval(node.Left, args)
		if err != nil {
			return 0, err
		}
		r, err := Eval(node.Right, args)
		if err != nil {
			return 0, err
		}
		return l * r, nil

	case lang.ExprDiv:
		l, err := Eval(node.Left, args)
		if err != nil {
			return 0, err
		}
		r, err := Eval(node.Right, args)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &RuntimeError{Msg: "division by zero"}
		}
		return l / r, nil

	default:
		return 0, &RuntimeError{Msg: "invalid expression node"}
	}
}

// EvalEquation evaluates eq.Body with args supplied positionally in
// eq.Params order, the same order the code generator assigns stack slots
// in — args[i] is bound to eq.Params[i].
func EvalEquation(eq lang.Equation, args []uint64) (uint64, error) {
	bound := make(map[byte]uint64, len(eq.Params))
	for i, p := range eq.Params {
		if i < len(args) {
			bound[p] = args[i]
		}
	}
	return Eval(eq.Body, bound)
}
