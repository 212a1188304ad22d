// Package expr parses and evaluates integer arithmetic expressions.
//
// Supported syntax: decimal integers, binary + - * /, unary minus and plus,
// and parentheses. Multiplication and division bind tighter than addition
// and subtraction; operators of equal precedence associate to the left.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidExpression is returned for text that does not parse.
	ErrInvalidExpression = errors.New("expr: invalid expression")

	// ErrUndefinedResult is returned when evaluation has no integer value,
	// such as division by zero or int64 overflow.
	ErrUndefinedResult = errors.New("expr: undefined result")
)

// Precedence describes how tightly a node holds together.
// "3+2*3" has AddPrecedence while "(3+2)*3" has MulPrecedence.
type Precedence int

const (
	AddPrecedence Precedence = iota
	MulPrecedence
	NegPrecedence
	AtomicPrecedence
)

// A Node is a sub-expression in a parsed tree.
type Node interface {
	Eval() (int64, error)
	Precedence() Precedence
	String() string
}

// Number is an integer literal.
type Number struct {
	Value int64
}

func (n Number) Eval() (int64, error)   { return n.Value, nil }
func (n Number) Precedence() Precedence { return AtomicPrecedence }
func (n Number) String() string         { return strconv.FormatInt(n.Value, 10) }

// Negation is unary minus.
type Negation struct {
	Operand Node
}

func (n Negation) Eval() (int64, error) {
	v, err := n.Operand.Eval()
	if err != nil {
		return 0, err
	}
	if v == math.MinInt64 {
		return 0, fmt.Errorf("%w: overflow negating %d", ErrUndefinedResult, v)
	}
	return -v, nil
}

func (n Negation) Precedence() Precedence { return NegPrecedence }

func (n Negation) String() string {
	if n.Operand.Precedence() < NegPrecedence {
		return "-(" + n.Operand.String() + ")"
	}
	return "-" + n.Operand.String()
}

// Group is a parenthesized sub-expression. It is kept in the tree so that
// String reproduces the parentheses the author wrote.
type Group struct {
	Inner Node
}

func (g Group) Eval() (int64, error)   { return g.Inner.Eval() }
func (g Group) Precedence() Precedence { return AtomicPrecedence }
func (g Group) String() string         { return "(" + g.Inner.String() + ")" }

// BinaryOp applies one of + - * / to two operands.
type BinaryOp struct {
	Op          byte
	Left, Right Node
}

func (b BinaryOp) Precedence() Precedence {
	if b.Op == '*' || b.Op == '/' {
		return MulPrecedence
	}
	return AddPrecedence
}

func (b BinaryOp) String() string {
	left := b.Left.String()
	if b.Left.Precedence() < b.Precedence() {
		left = "(" + left + ")"
	}
	right := b.Right.String()
	if b.Right.Precedence() <= b.Precedence() && b.Right.Precedence() != AtomicPrecedence {
		right = "(" + right + ")"
	}
	return left + " " + string(b.Op) + " " + right
}

func (b BinaryOp) Eval() (int64, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case '+':
		s := l + r
		if (l > 0 && r > 0 && s < 0) || (l < 0 && r < 0 && s >= 0) {
			return 0, fmt.Errorf("%w: overflow in %d + %d", ErrUndefinedResult, l, r)
		}
		return s, nil
	case '-':
		s := l - r
		if (l >= 0 && r < 0 && s < 0) || (l < 0 && r > 0 && s >= 0) {
			return 0, fmt.Errorf("%w: overflow in %d - %d", ErrUndefinedResult, l, r)
		}
		return s, nil
	case '*':
		if l == 0 || r == 0 {
			return 0, nil
		}
		p := l * r
		if p/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
			return 0, fmt.Errorf("%w: overflow in %d * %d", ErrUndefinedResult, l, r)
		}
		return p, nil
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrUndefinedResult)
		}
		if l == math.MinInt64 && r == -1 {
			return 0, fmt.Errorf("%w: overflow in %d / %d", ErrUndefinedResult, l, r)
		}
		// Truncates toward zero.
		return l / r, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidExpression, b.Op)
}
