package lang

import "fmt"

// ExprKind identifies the shape of an Expr node.
type ExprKind int

const (
	ExprNumber  ExprKind = iota // leaf: literal value
	ExprArg                     // leaf: parameter reference
	ExprParen                   // one child, transparent grouping
	ExprSum                     // two children, left + right
	ExprProduct                 // two children, left * right
	ExprDiv                     // two children, left / right
)

// Expr is an expression tree node. Number and Arg are leaves; Paren has
// exactly one child; Sum, Product and Div each have exactly two children
// (Left, Right). Trees are finite, acyclic and owned solely by their root.
type Expr struct {
	Kind  ExprKind
	Num   uint64
	Arg   byte
	Left  *Expr
	Right *Expr // nil for Paren, which stores its single child in Left
}

// IsLeaf reports whether the node is a Number or Arg leaf. Every other kind
// (Paren, Sum, Product, Div) is composite, regardless of what its own
// children turn out to be — the classification is on the node's own tag,
// not a recursive structural property.
func (e *Expr) IsLeaf() bool {
	return e.Kind == ExprNumber || e.Kind == ExprArg
}

// String renders the tree the way the definition extractor's debug dump
// prints it, matching the tag(children...) notation used throughout the
// worked examples.
func (e *Expr) String() string {
	switch e.Kind {
	case ExprNumber:
		return fmt.Sprintf("Number(%d)", e.Num)
	case ExprArg:
		return fmt.Sprintf("Arg(%c)", e.Arg)
	case ExprParen:
		return fmt.Sprintf("Paren(%s)", e.Left)
	case ExprSum:
		return fmt.Sprintf("Sum(%s,%s)", e.Left, e.Right)
	case ExprProduct:
		return fmt.Sprintf("Product(%s,%s)", e.Left, e.Right)
	case ExprDiv:
		return fmt.Sprintf("Div(%s,%s)", e.Left, e.Right)
	default:
		return "<invalid>"
	}
}
