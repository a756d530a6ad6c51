package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func checkSource(t *testing.T, src string) (*Stylesheet, *ErrorCollection) {
	t.Helper()
	sheet := mustParse(t, src)
	return sheet, Check(sheet)
}

func TestCheckExpressionTypes(t *testing.T) {
	scope := Scope[Type]{}.
		Push("Px", TypePixel).
		Push("Pct", TypePercentage).
		Push("N", TypeScalar).
		Push("C", TypeColor).
		Push("B", TypeBool)

	tests := []struct {
		expr string
		want Type
	}{
		{"10px", TypePixel},
		{"10%", TypePercentage},
		{"10", TypeScalar},
		{"#fff", TypeColor},
		{"red", TypeColor},
		{"FALSE", TypeBool},
		{"Px", TypePixel},
		{"B", TypeBool},
		{"Px + 1px", TypePixel},
		{"Pct - 1%", TypePercentage},
		{"N + 1", TypeScalar},
		{"N * Px", TypePixel},
		{"Pct * N", TypePercentage},
		{"N * N", TypeScalar},
		{"(1px + Px) * (N + 2)", TypePixel},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			tc := NewTypeChecker()
			got := tc.CheckExpression(parseExpr(t, tt.expr), scope)
			be.Equal(t, got, tt.want)
			be.Equal(t, tc.Errors.Len(), 0)
		})
	}
}

func TestCheckExpressionErrors(t *testing.T) {
	scope := Scope[Type]{}.Push("C", TypeColor).Push("B", TypeBool)

	tests := []struct {
		expr string
		kind ErrorKind
	}{
		{"Missing", UnresolvedVariable},
		{"10px + 5%", TypeMismatch},
		{"10px - 1", TypeMismatch},
		{"10px * 20%", TypeMismatch},
		{"2px * 3px", TypeMismatch},
		{"red + red", IllegalColorArithmetic},
		{"C - 1px", IllegalColorArithmetic},
		{"2 * C", IllegalColorArithmetic},
		{"B + 1", TypeMismatch},
		{"TRUE * 2", TypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			tc := NewTypeChecker()
			got := tc.CheckExpression(parseExpr(t, tt.expr), scope)
			be.Equal(t, got, TypeUndefined)
			be.Equal(t, tc.Errors.Kinds(), []ErrorKind{tt.kind})
		})
	}
}

func TestCheckUndefinedPropagatesSilently(t *testing.T) {
	tc := NewTypeChecker()
	expr := parseExpr(t, "(Missing + 1px) * 2")
	be.Equal(t, tc.CheckExpression(expr, Scope[Type]{}), TypeUndefined)

	// Only the reference is at fault; the enclosing operations are not.
	be.Equal(t, tc.Errors.Kinds(), []ErrorKind{UnresolvedVariable})
	op := expr.(*Operation)
	be.Equal(t, op.Annotation(), "")
	be.Equal(t, op.Left.(*Operation).Annotation(), "")
	be.Equal(t, op.Left.(*Operation).Left.Annotation(), "error: variable 'Missing' is not defined in this scope")
}

func TestCheckColorWinsOverUndefined(t *testing.T) {
	tc := NewTypeChecker()
	tc.CheckExpression(parseExpr(t, "Missing + red"), Scope[Type]{})
	be.Equal(t, tc.Errors.Kinds(), []ErrorKind{UnresolvedVariable, IllegalColorArithmetic})
}

func TestCheckValidStylesheet(t *testing.T) {
	sheet, errs := checkSource(t, `
		Base := 8px;
		Accent := #336699;
		Compact := FALSE;
		.card {
			Pad := Base * 2;
			width: Pad + 4px;
			height: 50%;
			color: Accent;
			if [Compact] {
				width: Base;
			} else {
				Wide := 100%;
				width: Wide;
			}
		}
	`)
	be.Equal(t, errs.String(), "")
	be.Equal(t, len(Annotated(sheet)), 0)
}

func TestCheckDiagnosticsKeyedByNode(t *testing.T) {
	sheet, errs := checkSource(t, ".a { width: red; height: 1px; margin: 2px; }")
	body := sheet.Rules()[0].Body

	width := body[0].(*Declaration)
	height := body[1].(*Declaration)
	margin := body[2].(*Declaration)

	be.Equal(t, errs.For(width).Kind, TypeMismatch)
	be.True(t, errs.For(height) == nil)
	be.Equal(t, errs.For(margin).Kind, InvalidProperty)

	be.Equal(t, width.Annotation(), "error: property 'width' expects pixel or percentage, got color")
	be.Equal(t, height.Annotation(), "")
	be.Equal(t, margin.Annotation(), "error: unknown property 'margin'")

	annotated := Annotated(sheet)
	be.Equal(t, len(annotated), 2)
	be.True(t, annotated[0] == Node(width))
	be.True(t, annotated[1] == Node(margin))
}

func TestCheckFirstErrorWinsPerNode(t *testing.T) {
	sheet := mustParse(t, ".a { width: red; }")
	decl := sheet.Rules()[0].Body[0].(*Declaration)

	errs := Check(sheet)
	be.Equal(t, errs.Len(), 1)

	// A second fault on a node already reported in this pass is dropped.
	errs.Add(InvalidProperty, decl, "something else")
	be.Equal(t, errs.Len(), 1)
	be.Equal(t, decl.Annotation(), "error: property 'width' expects pixel or percentage, got color")
}

func TestCheckTwiceReportsSameFaults(t *testing.T) {
	sheet := mustParse(t, ".a { width: red; margin: 1px; }")

	first := Check(sheet)
	second := Check(sheet)
	be.Equal(t, first.Kinds(), []ErrorKind{TypeMismatch, InvalidProperty})
	be.Equal(t, second.Kinds(), first.Kinds())
	be.Equal(t, second.String(), first.String())
	be.True(t, second.HasErrors())
	be.Equal(t, len(Annotated(sheet)), 2)
}

func TestAddKeepsEarlierAnnotation(t *testing.T) {
	decl := &Declaration{Property: "width"}

	earlier := NewErrorCollection()
	earlier.Add(TypeMismatch, decl, "first")

	later := NewErrorCollection()
	later.Add(InvalidProperty, decl, "second")
	be.Equal(t, later.Kinds(), []ErrorKind{InvalidProperty})
	be.True(t, later.For(decl) != nil)
	be.Equal(t, decl.Annotation(), "error: first")
}

func TestCheckConditions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []ErrorKind
	}{
		{"bool literal", ".a { if TRUE { } }", nil},
		{"bool variable", "F := FALSE; .a { if [F] { } }", nil},
		{"chain of references", "A := TRUE; B := A; C := B; .a { if C { } }", nil},
		{"pixel", ".a { if 1px { } }", []ErrorKind{NonBooleanCondition}},
		{"color variable", "C := red; .a { if [C] { } }", []ErrorKind{NonBooleanCondition}},
		{"chain to scalar", "A := 1; B := A; .a { if B { } }", []ErrorKind{NonBooleanCondition}},
		{"unresolved", ".a { if [X] { } }", []ErrorKind{UnresolvedVariable, NonBooleanCondition}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := checkSource(t, tt.src)
			be.Equal(t, errs.Kinds(), tt.want)
		})
	}
}

func TestCheckContinuesIntoBranchesOfFaultyCondition(t *testing.T) {
	_, errs := checkSource(t, ".a { if [1px] { width: red; } else { margin: 0; } }")
	be.Equal(t, errs.Kinds(), []ErrorKind{NonBooleanCondition, TypeMismatch, InvalidProperty})
}

func TestCheckBranchIsolation(t *testing.T) {
	_, errs := checkSource(t, `.a {
		if TRUE { OnlyIf := 1px; } else { width: OnlyIf; }
		if FALSE { width: OnlyElse; } else { OnlyElse := 1px; }
	}`)
	be.Equal(t, errs.Kinds(), []ErrorKind{
		UnresolvedVariable, TypeMismatch,
		UnresolvedVariable, TypeMismatch,
	})
}

func TestCheckBindingTypeIsFixedAtAssignment(t *testing.T) {
	// A is rebound to a colour after B captured it, so B stays a pixel.
	_, errs := checkSource(t, `
		A := 1px;
		B := A;
		A := red;
		.a { width: B; color: A; }
	`)
	be.Equal(t, errs.String(), "")
}

func TestCheckOrderOfDiagnostics(t *testing.T) {
	_, errs := checkSource(t, ".a { width: 1px + red; }\n.b { height: Missing; }")
	be.Equal(t, errs.Kinds(), []ErrorKind{
		IllegalColorArithmetic, TypeMismatch,
		UnresolvedVariable, TypeMismatch,
	})
	be.Equal(t, errs.Errors()[2].Pos, Pos{Line: 2, Col: 14})
}
