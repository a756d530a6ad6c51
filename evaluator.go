package main

import "math"

// Fold rewrites a checked stylesheet into one that contains only style
// rules whose bodies are declarations with literal values. Variable
// assignments are consumed, references and operations are replaced by
// their values and if-clauses by the body of the selected branch.
//
// Fold builds a new tree and leaves sheet untouched.
//
// On a tree that did not pass Check, Fold skips whatever it cannot fold:
// a declaration whose value cannot be computed (or does not suit its
// property) is dropped, an assignment that cannot be computed binds
// nothing and an if-clause whose condition is not a bool contributes
// nothing. Fold never panics on such input.
//
// Arithmetic that overflows an int is not folded either; use an Evaluator
// to have it reported.
func Fold(sheet *Stylesheet) *Stylesheet {
	return NewEvaluator().Fold(sheet)
}

// Evaluator holds the state of one folding pass. It records arithmetic
// overflow, the only fault a checked tree can still contain.
type Evaluator struct {
	Errors *ErrorCollection
}

func NewEvaluator() *Evaluator {
	return &Evaluator{Errors: NewErrorCollection()}
}

func (ev *Evaluator) Fold(sheet *Stylesheet) *Stylesheet {
	out := &Stylesheet{nodeInfo: nodeInfo{Pos: sheet.Pos}}
	var scope Scope[*Literal]
	for _, item := range sheet.Items {
		switch n := item.(type) {
		case *VariableAssignment:
			scope = ev.foldAssignment(n, scope)
		case *Stylerule:
			out.Items = append(out.Items, &Stylerule{
				nodeInfo:  nodeInfo{Pos: n.Pos},
				Selectors: cloneSelectors(n.Selectors),
				Body:      ev.foldBody(n.Body, scope),
			})
		}
	}
	return out
}

func cloneSelectors(selectors []*Selector) []*Selector {
	out := make([]*Selector, len(selectors))
	for i, sel := range selectors {
		out[i] = &Selector{nodeInfo: nodeInfo{Pos: sel.Pos}, Kind: sel.Kind, Name: sel.Name}
	}
	return out
}

// foldBody returns a fresh item list: declarations in order, if-clauses
// replaced by the folded items of their selected branch.
func (ev *Evaluator) foldBody(body []Item, scope Scope[*Literal]) []Item {
	var out []Item
	for _, item := range body {
		switch n := item.(type) {
		case *VariableAssignment:
			scope = ev.foldAssignment(n, scope)

		case *Declaration:
			lit, ok := ev.FoldExpression(n.Expr, scope)
			if !ok || !PropertyAccepts(n.Property, LiteralType(lit)) {
				continue
			}
			out = append(out, &Declaration{
				nodeInfo: nodeInfo{Pos: n.Pos},
				Property: n.Property,
				Expr:     lit,
			})

		case *IfClause:
			cond, ok := ev.FoldExpression(n.Condition, scope)
			if !ok || cond.Kind != LiteralBool {
				continue
			}
			if cond.Bool {
				out = append(out, ev.foldBody(n.Body, scope)...)
			} else if n.Else != nil {
				out = append(out, ev.foldBody(n.Else.Body, scope)...)
			}
		}
	}
	return out
}

func (ev *Evaluator) foldAssignment(a *VariableAssignment, scope Scope[*Literal]) Scope[*Literal] {
	lit, ok := ev.FoldExpression(a.Expr, scope)
	if !ok {
		return scope
	}
	return scope.Push(a.Name, lit)
}

// FoldExpression computes the literal value of expr. The result is always
// a new node. ok is false when the value cannot be computed.
func FoldExpression(expr Expression, scope Scope[*Literal]) (*Literal, bool) {
	return NewEvaluator().FoldExpression(expr, scope)
}

func (ev *Evaluator) FoldExpression(expr Expression, scope Scope[*Literal]) (*Literal, bool) {
	switch n := expr.(type) {
	case *Literal:
		return cloneLiteral(n, n.Pos), true

	case *VariableReference:
		// Bound values are already folded, so chains of references
		// resolve in one step.
		bound, found := scope.Lookup(n.Name)
		if !found {
			return nil, false
		}
		return cloneLiteral(bound, n.Pos), true

	case *Operation:
		left, ok := ev.FoldExpression(n.Left, scope)
		if !ok {
			return nil, false
		}
		right, ok := ev.FoldExpression(n.Right, scope)
		if !ok {
			return nil, false
		}
		return ev.foldOperation(n, left, right)

	default:
		return nil, false
	}
}

func (ev *Evaluator) foldOperation(op *Operation, left, right *Literal) (*Literal, bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return nil, false
	}

	result := &Literal{nodeInfo: nodeInfo{Pos: op.Pos}}
	var fits bool
	switch op.Op {
	case OpAdd, OpSubtract:
		if left.Kind != right.Kind {
			return nil, false
		}
		result.Kind = left.Kind
		if op.Op == OpAdd {
			result.Value, fits = addInt(left.Value, right.Value)
		} else {
			result.Value, fits = subInt(left.Value, right.Value)
		}

	case OpMultiply:
		switch {
		case left.Kind == LiteralScalar:
			result.Kind = right.Kind
		case right.Kind == LiteralScalar:
			result.Kind = left.Kind
		default:
			return nil, false
		}
		result.Value, fits = mulInt(left.Value, right.Value)

	default:
		return nil, false
	}

	if !fits {
		ev.Errors.AddAt(ArithmeticOverflow, op.Pos, "result of %s %s %s does not fit in an integer",
			LiteralText(left), op.Op, LiteralText(right))
		return nil, false
	}
	return result, true
}

func addInt(a, b int) (int, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int) (int, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return c, false
	}
	return c, true
}

func cloneLiteral(lit *Literal, pos Pos) *Literal {
	return &Literal{
		nodeInfo: nodeInfo{Pos: pos},
		Kind:     lit.Kind,
		Value:    lit.Value,
		Color:    lit.Color,
		Bool:     lit.Bool,
	}
}
