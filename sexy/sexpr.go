package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota + 1
	NodeString
	NodeInteger
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum: an atom or a list.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

// String prints the node in canonical form: single spaces, no comments.
// Two documents that differ only in layout print identically.
func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// Head returns the symbol at the front of a list, or "".
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

// Parse reads exactly one datum from input. ';' starts a comment that runs
// to the end of the line.
func Parse(input string) (*Node, error) {
	p := &parser{input: input}
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("empty input")
	}
	node, err := p.parseDatum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("offset %d: expected EOF but got '%c'", p.pos, p.input[p.pos])
	}
	return node, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.input[p.pos]
		if c == ';' {
			for !p.eof() && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if !unicode.IsSpace(rune(c)) {
			return
		}
		p.pos++
	}
}

func (p *parser) parseDatum() (*Node, error) {
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("unexpected EOF")
	}

	c := p.input[p.pos]
	switch {
	case c == '(':
		return p.parseList()
	case c == ')':
		return nil, fmt.Errorf("offset %d: unexpected ')'", p.pos)
	case c == '"':
		return p.parseString()
	case isDigit(c) || ((c == '-' || c == '+') && p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1])):
		return p.parseInteger(), nil
	case isSymbolChar(c):
		return p.parseSymbol(), nil
	default:
		return nil, fmt.Errorf("offset %d: unexpected character '%c'", p.pos, c)
	}
}

func (p *parser) parseList() (*Node, error) {
	start := p.pos
	p.pos++ // consume '('

	list := NewList()
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("offset %d: unterminated list", start)
		}
		if p.input[p.pos] == ')' {
			p.pos++
			return list, nil
		}
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
}

func (p *parser) parseString() (*Node, error) {
	start := p.pos
	p.pos++ // skip opening quote

	var sb strings.Builder
	for !p.eof() && p.input[p.pos] != '"' {
		c := p.input[p.pos]
		if c == '\\' {
			p.pos++
			if p.eof() {
				break
			}
			switch p.input[p.pos] {
			case '"', '\\':
				sb.WriteByte(p.input[p.pos])
			default:
				return nil, fmt.Errorf("offset %d: invalid escape sequence: \\%c", p.pos-1, p.input[p.pos])
			}
		} else {
			sb.WriteByte(c)
		}
		p.pos++
	}

	if p.eof() {
		return nil, fmt.Errorf("offset %d: unterminated string", start)
	}
	p.pos++ // skip closing quote
	return NewString(sb.String()), nil
}

func (p *parser) parseInteger() *Node {
	start := p.pos
	p.pos++ // sign or first digit
	for !p.eof() && isDigit(p.input[p.pos]) {
		p.pos++
	}
	return NewInteger(p.input[start:p.pos])
}

func (p *parser) parseSymbol() *Node {
	start := p.pos
	for !p.eof() && isSymbolChar(p.input[p.pos]) {
		p.pos++
	}
	return NewSymbol(p.input[start:p.pos])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSymbolChar(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || isDigit(c) ||
		c == '-' || c == '_' || c == '+' || c == '*' || c == '#' || c == '%'
}
