package main

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a diagnostic.
type ErrorKind string

const (
	SyntaxError            ErrorKind = "SyntaxError"
	UnresolvedVariable     ErrorKind = "UnresolvedVariable"
	TypeMismatch           ErrorKind = "TypeMismatch"
	IllegalColorArithmetic ErrorKind = "IllegalColorArithmetic"
	InvalidProperty        ErrorKind = "InvalidProperty"
	NonBooleanCondition    ErrorKind = "NonBooleanCondition"
	ArithmeticOverflow     ErrorKind = "ArithmeticOverflow"
)

// Diagnostic is one reported fault. Node is nil for syntax errors.
type Diagnostic struct {
	Kind    ErrorKind
	Node    Node
	Pos     Pos
	Message string
}

func (d *Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s", d.Pos.Line, d.Pos.Col, d.Message)
	}
	return d.Message
}

// ErrorCollection accumulates diagnostics in report order.
type ErrorCollection struct {
	errors   []*Diagnostic
	reported map[Node]bool
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

// Add records a diagnostic for node unless this collection already holds
// one for it. The node is annotated only if it carries no annotation yet,
// so an annotation left by an earlier pass is kept.
func (ec *ErrorCollection) Add(kind ErrorKind, node Node, format string, args ...any) {
	msg := "error: " + fmt.Sprintf(format, args...)
	d := &Diagnostic{Kind: kind, Node: node, Message: msg}
	if node != nil {
		if ec.reported[node] {
			return
		}
		if ec.reported == nil {
			ec.reported = make(map[Node]bool)
		}
		ec.reported[node] = true
		node.annotate(msg)
		d.Pos = node.Position()
	}
	ec.errors = append(ec.errors, d)
}

// AddAt records a diagnostic that has a position but no node.
func (ec *ErrorCollection) AddAt(kind ErrorKind, pos Pos, format string, args ...any) {
	ec.errors = append(ec.errors, &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Message: "error: " + fmt.Sprintf(format, args...),
	})
}

func (ec *ErrorCollection) HasErrors() bool {
	return ec != nil && len(ec.errors) > 0
}

func (ec *ErrorCollection) Len() int {
	if ec == nil {
		return 0
	}
	return len(ec.errors)
}

func (ec *ErrorCollection) Errors() []*Diagnostic {
	if ec == nil {
		return nil
	}
	return ec.errors
}

// For returns the diagnostic recorded against node, or nil.
func (ec *ErrorCollection) For(node Node) *Diagnostic {
	for _, d := range ec.Errors() {
		if d.Node == node {
			return d
		}
	}
	return nil
}

// Kinds lists the kind of each diagnostic in report order.
func (ec *ErrorCollection) Kinds() []ErrorKind {
	var kinds []ErrorKind
	for _, d := range ec.Errors() {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

// String renders one diagnostic per line.
func (ec *ErrorCollection) String() string {
	var lines []string
	for _, d := range ec.Errors() {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

// CompileError is returned by Compile when parsing or checking failed.
type CompileError struct {
	Stage  string // "parse", "check" or "fold"
	Errors *ErrorCollection
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s errors:\n%s", e.Stage, e.Errors.String())
}
