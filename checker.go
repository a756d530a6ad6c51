package main

// TypeChecker holds the state of one checking pass. The scope chain is
// threaded through the walk as a value; the checker itself only collects
// diagnostics.
type TypeChecker struct {
	Errors *ErrorCollection
}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{Errors: NewErrorCollection()}
}

// Check validates the whole stylesheet, annotating every offending node,
// and returns the diagnostics. It never stops at the first error.
func Check(sheet *Stylesheet) *ErrorCollection {
	tc := NewTypeChecker()
	tc.CheckStylesheet(sheet)
	return tc.Errors
}

func (tc *TypeChecker) CheckStylesheet(sheet *Stylesheet) {
	var scope Scope[Type]
	for _, item := range sheet.Items {
		switch n := item.(type) {
		case *VariableAssignment:
			scope = tc.checkAssignment(n, scope)
		case *Stylerule:
			// Each rule starts from the top-level bindings seen so far;
			// its own bindings end with the rule.
			tc.checkBody(n.Body, scope)
		}
	}
}

// checkBody checks items in order. Assignments extend the chain for the
// items after them; nothing escapes the body.
func (tc *TypeChecker) checkBody(body []Item, scope Scope[Type]) {
	for _, item := range body {
		switch n := item.(type) {
		case *VariableAssignment:
			scope = tc.checkAssignment(n, scope)
		case *Declaration:
			tc.checkDeclaration(n, scope)
		case *IfClause:
			tc.checkIfClause(n, scope)
		}
	}
}

func (tc *TypeChecker) checkAssignment(a *VariableAssignment, scope Scope[Type]) Scope[Type] {
	t := tc.CheckExpression(a.Expr, scope)
	return scope.Push(a.Name, t)
}

func (tc *TypeChecker) checkDeclaration(d *Declaration, scope Scope[Type]) {
	t := tc.CheckExpression(d.Expr, scope)

	if !IsKnownProperty(d.Property) {
		tc.Errors.Add(InvalidProperty, d, "unknown property '%s'", d.Property)
		return
	}
	if !PropertyAccepts(d.Property, t) {
		tc.Errors.Add(TypeMismatch, d, "property '%s' expects %s, got %s",
			d.Property, describeTypes(d.Property), t)
	}
}

func (tc *TypeChecker) checkIfClause(clause *IfClause, scope Scope[Type]) {
	t := tc.CheckExpression(clause.Condition, scope)
	if t != TypeBool {
		tc.Errors.Add(NonBooleanCondition, clause, "if-condition must be bool, got %s", t)
	}

	// Both branches start from the same snapshot.
	elseScope := scope.Snapshot()
	tc.checkBody(clause.Body, scope)
	if clause.Else != nil {
		tc.checkBody(clause.Else.Body, elseScope)
	}
}

// CheckExpression computes the type of expr bottom-up, annotating every
// faulty sub-expression. Faulty expressions type as TypeUndefined.
func (tc *TypeChecker) CheckExpression(expr Expression, scope Scope[Type]) Type {
	switch n := expr.(type) {
	case *Literal:
		return LiteralType(n)

	case *VariableReference:
		t, ok := scope.Lookup(n.Name)
		if !ok {
			tc.Errors.Add(UnresolvedVariable, n, "variable '%s' is not defined in this scope", n.Name)
			return TypeUndefined
		}
		return t

	case *Operation:
		left := tc.CheckExpression(n.Left, scope)
		right := tc.CheckExpression(n.Right, scope)
		return tc.checkOperation(n, left, right)

	default:
		return TypeUndefined
	}
}

func (tc *TypeChecker) checkOperation(op *Operation, left, right Type) Type {
	if left == TypeColor || right == TypeColor {
		tc.Errors.Add(IllegalColorArithmetic, op, "color used as operand of '%s'", op.Op)
		return TypeUndefined
	}
	// The cause is already reported on the operand.
	if left == TypeUndefined || right == TypeUndefined {
		return TypeUndefined
	}
	if left == TypeBool || right == TypeBool {
		tc.Errors.Add(TypeMismatch, op, "bool used as operand of '%s'", op.Op)
		return TypeUndefined
	}

	switch op.Op {
	case OpMultiply:
		switch {
		case left == TypeScalar:
			return right
		case right == TypeScalar:
			return left
		}
		tc.Errors.Add(TypeMismatch, op, "cannot multiply %s by %s: one operand must be scalar", left, right)
		return TypeUndefined

	case OpAdd, OpSubtract:
		if left != right {
			tc.Errors.Add(TypeMismatch, op, "operands of '%s' must have the same type, got %s and %s", op.Op, left, right)
			return TypeUndefined
		}
		return left

	default:
		tc.Errors.Add(TypeMismatch, op, "unknown operator '%s'", op.Op)
		return TypeUndefined
	}
}
