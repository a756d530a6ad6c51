package main

// Pos is a 1-based source position. The zero Pos means the node was built
// by hand rather than by the parser.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Node is implemented by every AST node.
type Node interface {
	Position() Pos
	// Annotation returns the error message attached by the checker, or "".
	Annotation() string
	annotate(msg string) bool
}

// nodeInfo is embedded in every node: position plus error annotation.
type nodeInfo struct {
	Pos   Pos
	Error string
}

func (n *nodeInfo) Position() Pos      { return n.Pos }
func (n *nodeInfo) Annotation() string { return n.Error }

// annotate records msg unless the node already carries an error.
// First error wins.
func (n *nodeInfo) annotate(msg string) bool {
	if n.Error != "" {
		return false
	}
	n.Error = msg
	return true
}

// Item is anything that can appear in a stylesheet or in a rule body:
// *Stylerule, *Declaration, *VariableAssignment, *IfClause.
type Item interface {
	Node
	isItem()
}

// Expression is *Literal, *VariableReference or *Operation.
type Expression interface {
	Node
	isExpression()
}

// Stylesheet is the root of the tree.
type Stylesheet struct {
	nodeInfo
	Items []Item
}

// Rules returns the top-level style rules in order.
func (s *Stylesheet) Rules() []*Stylerule {
	var rules []*Stylerule
	for _, item := range s.Items {
		if r, ok := item.(*Stylerule); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// SelectorKind distinguishes the three selector forms.
type SelectorKind string

const (
	SelectorTag   SelectorKind = "tag"
	SelectorClass SelectorKind = "class"
	SelectorID    SelectorKind = "id"
)

// Selector holds the bare name; String adds the '.' or '#' prefix.
type Selector struct {
	nodeInfo
	Kind SelectorKind
	Name string
}

func (s *Selector) String() string {
	switch s.Kind {
	case SelectorClass:
		return "." + s.Name
	case SelectorID:
		return "#" + s.Name
	default:
		return s.Name
	}
}

type Stylerule struct {
	nodeInfo
	Selectors []*Selector
	Body      []Item
}

// Recognised declaration properties.
const (
	PropertyColor           = "color"
	PropertyBackgroundColor = "background-color"
	PropertyWidth           = "width"
	PropertyHeight          = "height"
)

type Declaration struct {
	nodeInfo
	Property string
	Expr     Expression
}

type VariableAssignment struct {
	nodeInfo
	Name string
	Expr Expression
}

type IfClause struct {
	nodeInfo
	Condition Expression
	Body      []Item
	Else      *ElseClause // nil when there is no else branch
}

type ElseClause struct {
	nodeInfo
	Body []Item
}

type VariableReference struct {
	nodeInfo
	Name string
}

// OperationKind is the binary operator of an Operation.
type OperationKind string

const (
	OpAdd      OperationKind = "+"
	OpSubtract OperationKind = "-"
	OpMultiply OperationKind = "*"
)

type Operation struct {
	nodeInfo
	Op    OperationKind
	Left  Expression
	Right Expression
}

// LiteralKind is the closed set of literal value kinds.
type LiteralKind string

const (
	LiteralPixel      LiteralKind = "pixel"
	LiteralPercentage LiteralKind = "percentage"
	LiteralScalar     LiteralKind = "scalar"
	LiteralColor      LiteralKind = "color"
	LiteralBool       LiteralKind = "bool"
)

// Literal is the only expression kind without children.
type Literal struct {
	nodeInfo
	Kind LiteralKind
	// LiteralPixel, LiteralPercentage, LiteralScalar:
	Value int
	// LiteralColor:
	Color string
	// LiteralBool:
	Bool bool
}

func (*Stylerule) isItem()          {}
func (*Declaration) isItem()        {}
func (*VariableAssignment) isItem() {}
func (*IfClause) isItem()           {}

func (*Literal) isExpression()           {}
func (*VariableReference) isExpression() {}
func (*Operation) isExpression()         {}

// Literal constructors, mostly for tests and the evaluator.

func Pixel(v int) *Literal {
	return &Literal{Kind: LiteralPixel, Value: v}
}

func Percentage(v int) *Literal {
	return &Literal{Kind: LiteralPercentage, Value: v}
}

func Scalar(v int) *Literal {
	return &Literal{Kind: LiteralScalar, Value: v}
}

func Color(c string) *Literal {
	return &Literal{Kind: LiteralColor, Color: c}
}

func Bool(b bool) *Literal {
	return &Literal{Kind: LiteralBool, Bool: b}
}

// IsNumeric reports whether the literal carries an integer payload.
func (l *Literal) IsNumeric() bool {
	switch l.Kind {
	case LiteralPixel, LiteralPercentage, LiteralScalar:
		return true
	}
	return false
}

// Walk visits node and all of its descendants depth-first in source order.
// Returning false from fn skips the node's children.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Stylesheet:
		for _, item := range n.Items {
			Walk(item, fn)
		}
	case *Stylerule:
		for _, sel := range n.Selectors {
			Walk(sel, fn)
		}
		walkItems(n.Body, fn)
	case *Declaration:
		Walk(n.Expr, fn)
	case *VariableAssignment:
		Walk(n.Expr, fn)
	case *IfClause:
		Walk(n.Condition, fn)
		walkItems(n.Body, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *ElseClause:
		walkItems(n.Body, fn)
	case *Operation:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Selector, *Literal, *VariableReference:
	}
}

func walkItems(items []Item, fn func(Node) bool) {
	for _, item := range items {
		Walk(item, fn)
	}
}

// Annotated returns every node under root that carries an error
// annotation, in source order.
func Annotated(root Node) []Node {
	var nodes []Node
	Walk(root, func(n Node) bool {
		if n.Annotation() != "" {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}
