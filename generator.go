package main

import (
	"io"
	"strconv"
	"strings"
)

// DefaultIndent is the declaration indent used by Generate.
const DefaultIndent = "  "

// Printer serializes a folded stylesheet as CSS.
type Printer struct {
	Indent string // defaults to DefaultIndent
	Banner string // emitted as a /* comment */ before the first rule
}

// Print writes sheet to w. Only style rules and the declarations in their
// bodies are printed; anything else in a folded tree is ignored.
func (p *Printer) Print(w io.Writer, sheet *Stylesheet) error {
	_, err := io.WriteString(w, p.render(sheet))
	return err
}

func (p *Printer) render(sheet *Stylesheet) string {
	indent := p.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	var sb strings.Builder
	if p.Banner != "" {
		sb.WriteString("/* " + p.Banner + " */\n\n")
	}
	for i, rule := range sheet.Rules() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeRule(&sb, rule, indent)
	}
	return strings.TrimSpace(sb.String())
}

func writeRule(sb *strings.Builder, rule *Stylerule, indent string) {
	if len(rule.Selectors) > 0 {
		sb.WriteString(rule.Selectors[0].String())
	}
	sb.WriteString(" {\n")
	for _, item := range rule.Body {
		d, ok := item.(*Declaration)
		if !ok {
			continue
		}
		lit, ok := d.Expr.(*Literal)
		if !ok {
			continue
		}
		sb.WriteString(indent + d.Property + ": " + LiteralText(lit) + ";\n")
	}
	sb.WriteString("}")
}

// Generate renders a folded stylesheet with the default printer.
func Generate(sheet *Stylesheet) string {
	var p Printer
	return p.render(sheet)
}

// LiteralText renders a literal the way it appears in CSS.
func LiteralText(lit *Literal) string {
	switch lit.Kind {
	case LiteralPixel:
		return strconv.Itoa(lit.Value) + "px"
	case LiteralPercentage:
		return strconv.Itoa(lit.Value) + "%"
	case LiteralScalar:
		return strconv.Itoa(lit.Value)
	case LiteralColor:
		return lit.Color
	case LiteralBool:
		if lit.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}
