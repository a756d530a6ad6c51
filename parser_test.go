package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func parseExpr(t *testing.T, input string) Expression {
	t.Helper()
	l := NewLexer([]byte(input))
	l.NextToken()
	expr := ParseExpression(l)
	be.Equal(t, l.Errors.String(), "")
	return expr
}

func mustParse(t *testing.T, input string) *Stylesheet {
	t.Helper()
	sheet, errs := ParseSource([]byte(input))
	be.Equal(t, errs.String(), "")
	return sheet
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10px", "(px 10)"},
		{"50%", "(percent 50)"},
		{"3", "(scalar 3)"},
		{"TRUE", "(bool true)"},
		{"#abc", `(color "#abc")`},
		{"red", `(color "red")`},
		{"Width", `(var "Width")`},
		{"1 + 2 * 3", `(binary "+" (scalar 1) (binary "*" (scalar 2) (scalar 3)))`},
		{"1 * 2 + 3", `(binary "+" (binary "*" (scalar 1) (scalar 2)) (scalar 3))`},
		{"1 - 2 + 3", `(binary "+" (binary "-" (scalar 1) (scalar 2)) (scalar 3))`},
		{"2 * (A - 1px)", `(binary "*" (scalar 2) (binary "-" (var "A") (px 1)))`},
		{"((5%))", "(percent 5)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.want)
		})
	}
}

func TestParseExpressionPositions(t *testing.T) {
	expr := parseExpr(t, "A + 2 * 3px")
	op, ok := expr.(*Operation)
	be.True(t, ok)
	be.Equal(t, op.Position(), Pos{Line: 1, Col: 3})
	be.Equal(t, op.Left.Position(), Pos{Line: 1, Col: 1})

	inner, ok := op.Right.(*Operation)
	be.True(t, ok)
	be.Equal(t, inner.Op, OpMultiply)
	be.Equal(t, inner.Position(), Pos{Line: 1, Col: 7})
	be.Equal(t, inner.Right.Position(), Pos{Line: 1, Col: 9})
}

func TestParseStylesheetItems(t *testing.T) {
	sheet := mustParse(t, `
		Base := 4px;
		.a { width: Base; }
		#b, p { color: red; }
	`)

	be.Equal(t, len(sheet.Items), 3)
	assign, ok := sheet.Items[0].(*VariableAssignment)
	be.True(t, ok)
	be.Equal(t, assign.Name, "Base")

	rules := sheet.Rules()
	be.Equal(t, len(rules), 2)
	be.Equal(t, rules[0].Selectors[0].String(), ".a")
	be.Equal(t, rules[1].Selectors[0].String(), "#b")
	be.Equal(t, rules[1].Selectors[1].String(), "p")
	be.Equal(t, rules[1].Selectors[1].Kind, SelectorTag)
}

func TestParseIfClause(t *testing.T) {
	sheet := mustParse(t, `.a {
		if [Flag] { width: 1px; } else { width: 2px; Inner := 3; }
	}`)

	rule := sheet.Rules()[0]
	be.Equal(t, len(rule.Body), 1)
	clause, ok := rule.Body[0].(*IfClause)
	be.True(t, ok)
	be.Equal(t, ToSExpr(clause.Condition), `(var "Flag")`)
	be.Equal(t, len(clause.Body), 1)
	be.True(t, clause.Else != nil)
	be.Equal(t, len(clause.Else.Body), 2)
	be.Equal(t, clause.Position(), Pos{Line: 2, Col: 3})
}

func TestParseIfWithoutElse(t *testing.T) {
	sheet := mustParse(t, ".a { if TRUE { width: 1px; } height: 2px; }")
	body := sheet.Rules()[0].Body
	be.Equal(t, len(body), 2)
	clause := body[0].(*IfClause)
	be.True(t, clause.Else == nil)
	_, ok := body[1].(*Declaration)
	be.True(t, ok)
}

func TestParseNestedIf(t *testing.T) {
	sheet := mustParse(t, ".a { if A { if [B] { width: 1px; } } }")
	outer := sheet.Rules()[0].Body[0].(*IfClause)
	inner, ok := outer.Body[0].(*IfClause)
	be.True(t, ok)
	be.Equal(t, ToSExpr(inner), `(if (var "B") (then (decl "width" (px 1))))`)
}

func TestParseErrorRecovery(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errors string
		items  int
	}{
		{
			name:   "missing colon",
			input:  ".a { width 1px; height: 2px; }",
			errors: "1:12: error: expected ':' but got '1px'",
			items:  1,
		},
		{
			name:   "missing assign",
			input:  "A = 1px; .a { }",
			errors: "1:3: error: unexpected character '='\n1:3: error: expected ':=' but got '='",
			items:  1,
		},
		{
			name:   "stray closing brace",
			input:  "} .a { }",
			errors: "1:1: error: expected variable assignment or style rule but got '}'",
			items:  1,
		},
		{
			name:   "stray token at top level",
			input:  "10px; .a { }",
			errors: "1:1: error: expected variable assignment or style rule but got '10px'",
			items:  1,
		},
		{
			name:   "missing class name",
			input:  ". { width: 1px; } .b { }",
			errors: "1:3: error: expected class name but got '{'",
			items:  1,
		},
		{
			name:   "unclosed rule",
			input:  ".a { width: 1px;",
			errors: "1:17: error: expected '}' but got end of input",
			items:  1,
		},
		{
			name:   "unclosed bracket",
			input:  ".a { if [TRUE { width: 1px; } }",
			errors: "1:15: error: expected ']' but got '{'\n" +
				"1:31: error: expected variable assignment or style rule but got '}'",
			items:  1,
		},
		{
			name:   "operator without right operand",
			input:  ".a { width: 1px +; }",
			errors: "1:18: error: expected expression but got ';'",
			items:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, errs := ParseSource([]byte(tt.input))
			be.Equal(t, errs.String(), tt.errors)
			be.Equal(t, len(sheet.Items), tt.items)
		})
	}
}

func TestParseDropsBrokenItems(t *testing.T) {
	sheet, errs := ParseSource([]byte(".a { width: ; height: 2px; }"))
	be.Equal(t, errs.Len(), 1)

	body := sheet.Rules()[0].Body
	be.Equal(t, len(body), 1)
	be.Equal(t, body[0].(*Declaration).Property, "height")
}
