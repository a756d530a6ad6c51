package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"stylesheet", "stylesheet"},
		{"background-color", "background-color"},
		{"test_var", "test_var"},
		{"true", "true"},
		{"+", "+"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"box"`, "box", `"box"`},
		{`"#fff"`, "#fff", `"#fff"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseInteger(t *testing.T) {
	for _, input := range []string{"42", "0", "-123", "+456"} {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeInteger)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseList(t *testing.T) {
	result, err := Parse(`(decl "width" (px 10))`)
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeList)
	be.Equal(t, len(result.Items), 3)
	be.Equal(t, result.Head(), "decl")
	be.Equal(t, result.Items[1].Type, NodeString)
	be.Equal(t, result.Items[2].Head(), "px")
	be.Equal(t, result.Items[2].Items[1].Text, "10")
}

func TestParseEmptyList(t *testing.T) {
	result, err := Parse("(then)")
	be.Err(t, err, nil)
	be.Equal(t, result.String(), "(then)")

	result, err = Parse("()")
	be.Err(t, err, nil)
	be.Equal(t, len(result.Items), 0)
	be.Equal(t, result.Head(), "")
}

func TestStringIsLayoutIndependent(t *testing.T) {
	a, err := Parse(`(rule (selectors (class "box")) (decl "width" (px 10)))`)
	be.Err(t, err, nil)

	b, err := Parse(`
		(rule
		  (selectors (class "box"))   ; one selector
		  (decl "width"
		        (px 10)))
	`)
	be.Err(t, err, nil)

	be.Equal(t, a.String(), b.String())
}

func TestConstructors(t *testing.T) {
	node := NewList(NewSymbol("color"), NewString("#fff"))
	be.Equal(t, node.String(), `(color "#fff")`)

	node = NewList(NewSymbol("scalar"), NewInteger("-3"))
	be.Equal(t, node.String(), "(scalar -3)")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"", "empty input"},
		{"   ; only a comment", "empty input"},
		{"(px 10", "unterminated list"},
		{")", "unexpected ')'"},
		{`"open`, "unterminated string"},
		{`"bad\n"`, "invalid escape sequence"},
		{"(a) (b)", "expected EOF"},
		{"@", "unexpected character '@'"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Parse(test.input)
			be.Err(t, err, test.err)
		})
	}
}

func TestNodeTypeString(t *testing.T) {
	be.Equal(t, NodeSymbol.String(), "symbol")
	be.Equal(t, NodeList.String(), "list")
	be.Equal(t, NodeType(99).String(), "NodeType(99)")
}
