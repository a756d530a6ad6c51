package main

import "strings"

// Result is the output of a successful compile.
type Result struct {
	AST    *Stylesheet // as parsed, carrying no annotations
	Folded *Stylesheet
	CSS    string
}

// ParseSource lexes and parses src. Syntax errors are returned in the
// collection rather than as a Go error.
func ParseSource(src []byte) (*Stylesheet, *ErrorCollection) {
	l := NewLexer(src)
	l.NextToken()
	sheet := ParseStylesheet(l)
	return sheet, l.Errors
}

// Compile runs the whole pipeline. Every diagnostic of the failing stage
// is reported in the returned *CompileError; nothing is folded or
// generated once a diagnostic exists.
func Compile(src []byte) (*Result, error) {
	return CompileWith(src, &Printer{})
}

// CompileWith is Compile with a custom printer.
func CompileWith(src []byte, p *Printer) (*Result, error) {
	sheet, syntaxErrors := ParseSource(src)
	if syntaxErrors.HasErrors() {
		return nil, &CompileError{Stage: "parse", Errors: syntaxErrors}
	}

	if typeErrors := Check(sheet); typeErrors.HasErrors() {
		return nil, &CompileError{Stage: "check", Errors: typeErrors}
	}

	ev := NewEvaluator()
	folded := ev.Fold(sheet)
	if ev.Errors.HasErrors() {
		return nil, &CompileError{Stage: "fold", Errors: ev.Errors}
	}

	var sb strings.Builder
	if err := p.Print(&sb, folded); err != nil {
		return nil, err
	}
	return &Result{AST: sheet, Folded: folded, CSS: sb.String()}, nil
}
