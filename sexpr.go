package main

import (
	"strconv"
	"strings"
)

// ToSExpr converts an AST node to its s-expression representation, e.g.
//
//	(rule (selectors (class "box")) (decl "width" (binary "+" (px 1) (var "W"))))
func ToSExpr(node Node) string {
	switch n := node.(type) {
	case *Stylesheet:
		return list("stylesheet", itemsSExpr(n.Items)...)
	case *Stylerule:
		var sels []string
		for _, sel := range n.Selectors {
			sels = append(sels, ToSExpr(sel))
		}
		return list("rule", append([]string{list("selectors", sels...)}, itemsSExpr(n.Body)...)...)
	case *Selector:
		return list(string(n.Kind), quote(n.Name))
	case *Declaration:
		return list("decl", quote(n.Property), exprSExpr(n.Expr))
	case *VariableAssignment:
		return list("assign", quote(n.Name), exprSExpr(n.Expr))
	case *IfClause:
		parts := []string{exprSExpr(n.Condition), list("then", itemsSExpr(n.Body)...)}
		if n.Else != nil {
			parts = append(parts, ToSExpr(n.Else))
		}
		return list("if", parts...)
	case *ElseClause:
		return list("else", itemsSExpr(n.Body)...)
	case *VariableReference:
		return list("var", quote(n.Name))
	case *Operation:
		return list("binary", quote(string(n.Op)), exprSExpr(n.Left), exprSExpr(n.Right))
	case *Literal:
		switch n.Kind {
		case LiteralPixel:
			return list("px", strconv.Itoa(n.Value))
		case LiteralPercentage:
			return list("percent", strconv.Itoa(n.Value))
		case LiteralScalar:
			return list("scalar", strconv.Itoa(n.Value))
		case LiteralColor:
			return list("color", quote(n.Color))
		case LiteralBool:
			return list("bool", strconv.FormatBool(n.Bool))
		}
	}
	return ""
}

func exprSExpr(expr Expression) string {
	if expr == nil {
		return "nil"
	}
	return ToSExpr(expr)
}

func itemsSExpr(items []Item) []string {
	var parts []string
	for _, item := range items {
		parts = append(parts, ToSExpr(item))
	}
	return parts
}

func list(head string, items ...string) string {
	if len(items) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + strings.Join(items, " ") + ")"
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
