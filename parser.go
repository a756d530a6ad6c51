package main

// The parser is a recursive-descent parser over the Lexer's current token.
// Syntax errors go to l.Errors; after an error the parser skips to the end
// of the current statement and keeps going, so one run reports every
// independent mistake. Items that failed to parse are left out of the tree.

// ParseStylesheet parses a whole ICSS document. The lexer must already be
// positioned on the first token (call l.NextToken() once).
func ParseStylesheet(l *Lexer) *Stylesheet {
	sheet := &Stylesheet{nodeInfo: nodeInfo{Pos: l.CurrPos}}
	for l.CurrTokenType != EOF {
		var item Item
		switch l.CurrTokenType {
		case IDENT:
			if isUpper(l.CurrLiteral[0]) {
				if a := parseAssignment(l); a != nil {
					item = a
				}
			} else if r := parseStylerule(l); r != nil {
				item = r
			}
		case DOT, HASH:
			if r := parseStylerule(l); r != nil {
				item = r
			}
		case RBRACE:
			l.unexpected("variable assignment or style rule")
			l.NextToken()
			continue
		default:
			l.unexpected("variable assignment or style rule")
			l.sync()
			continue
		}
		if item != nil {
			sheet.Items = append(sheet.Items, item)
		}
	}
	return sheet
}

// describe renders the current token for error messages.
func (l *Lexer) describe() string {
	if l.CurrTokenType == EOF {
		return "end of input"
	}
	if l.CurrTokenType == HASH {
		return "'#" + l.CurrLiteral + "'"
	}
	return "'" + l.CurrLiteral + "'"
}

func (l *Lexer) unexpected(want string) {
	l.Errors.AddAt(SyntaxError, l.CurrPos, "expected %s but got %s", want, l.describe())
}

// SkipToken advances past the current token if it has the expected type.
// Otherwise it records a syntax error and leaves the token in place.
func (l *Lexer) SkipToken(expectedType TokenType) bool {
	if l.CurrTokenType != expectedType {
		l.unexpected("'" + string(expectedType) + "'")
		return false
	}
	l.NextToken()
	return true
}

// sync skips tokens up to and including the next ';', or up to (not
// including) the next '}'.
func (l *Lexer) sync() {
	for l.CurrTokenType != EOF {
		switch l.CurrTokenType {
		case SEMICOLON:
			l.NextToken()
			return
		case RBRACE:
			return
		}
		l.NextToken()
	}
}

func parseStylerule(l *Lexer) *Stylerule {
	rule := &Stylerule{nodeInfo: nodeInfo{Pos: l.CurrPos}}
	for {
		sel := parseSelector(l)
		if sel == nil {
			l.sync()
			if l.CurrTokenType == RBRACE {
				l.NextToken()
			}
			return nil
		}
		rule.Selectors = append(rule.Selectors, sel)
		if l.CurrTokenType != COMMA {
			break
		}
		l.NextToken()
	}
	if !l.SkipToken(LBRACE) {
		l.sync()
		return nil
	}
	rule.Body = parseBody(l)
	l.SkipToken(RBRACE)
	return rule
}

func parseSelector(l *Lexer) *Selector {
	pos := l.CurrPos
	switch l.CurrTokenType {
	case IDENT:
		sel := &Selector{nodeInfo: nodeInfo{Pos: pos}, Kind: SelectorTag, Name: l.CurrLiteral}
		l.NextToken()
		return sel
	case DOT:
		l.NextToken()
		if l.CurrTokenType != IDENT {
			l.unexpected("class name")
			return nil
		}
		sel := &Selector{nodeInfo: nodeInfo{Pos: pos}, Kind: SelectorClass, Name: l.CurrLiteral}
		l.NextToken()
		return sel
	case HASH:
		sel := &Selector{nodeInfo: nodeInfo{Pos: pos}, Kind: SelectorID, Name: l.CurrLiteral}
		l.NextToken()
		return sel
	default:
		l.unexpected("selector")
		return nil
	}
}

// parseBody parses items until '}' or end of input. The closing brace is
// left for the caller.
func parseBody(l *Lexer) []Item {
	var items []Item
	for l.CurrTokenType != RBRACE && l.CurrTokenType != EOF {
		var item Item
		switch l.CurrTokenType {
		case IF:
			if clause := parseIfClause(l); clause != nil {
				item = clause
			}
		case IDENT:
			if isUpper(l.CurrLiteral[0]) {
				if a := parseAssignment(l); a != nil {
					item = a
				}
			} else if d := parseDeclaration(l); d != nil {
				item = d
			}
		default:
			l.unexpected("declaration, variable assignment or if-clause")
			l.sync()
		}
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}

func parseAssignment(l *Lexer) *VariableAssignment {
	a := &VariableAssignment{nodeInfo: nodeInfo{Pos: l.CurrPos}, Name: l.CurrLiteral}
	l.NextToken()
	if !l.SkipToken(ASSIGN) {
		l.sync()
		return nil
	}
	a.Expr = ParseExpression(l)
	if a.Expr == nil || !l.SkipToken(SEMICOLON) {
		l.sync()
		return nil
	}
	return a
}

func parseDeclaration(l *Lexer) *Declaration {
	d := &Declaration{nodeInfo: nodeInfo{Pos: l.CurrPos}, Property: l.CurrLiteral}
	l.NextToken()
	if !l.SkipToken(COLON) {
		l.sync()
		return nil
	}
	d.Expr = ParseExpression(l)
	if d.Expr == nil || !l.SkipToken(SEMICOLON) {
		l.sync()
		return nil
	}
	return d
}

func parseIfClause(l *Lexer) *IfClause {
	clause := &IfClause{nodeInfo: nodeInfo{Pos: l.CurrPos}}
	l.SkipToken(IF)

	if l.CurrTokenType == LBRACKET {
		l.NextToken()
		clause.Condition = ParseExpression(l)
		if clause.Condition == nil || !l.SkipToken(RBRACKET) {
			l.sync()
			return nil
		}
	} else {
		clause.Condition = ParseExpression(l)
		if clause.Condition == nil {
			l.sync()
			return nil
		}
	}

	if !l.SkipToken(LBRACE) {
		l.sync()
		return nil
	}
	clause.Body = parseBody(l)
	if !l.SkipToken(RBRACE) {
		return nil
	}

	if l.CurrTokenType == ELSE {
		elseClause := &ElseClause{nodeInfo: nodeInfo{Pos: l.CurrPos}}
		l.NextToken()
		if !l.SkipToken(LBRACE) {
			l.sync()
			return nil
		}
		elseClause.Body = parseBody(l)
		if !l.SkipToken(RBRACE) {
			return nil
		}
		clause.Else = elseClause
	}
	return clause
}

// precedence returns the binding power of a binary operator token, or 0.
func precedence(tokenType TokenType) int {
	switch tokenType {
	case PLUS, MINUS:
		return 1
	case ASTERISK:
		return 2
	default:
		return 0
	}
}

// ParseExpression parses an expression. It returns nil after reporting a
// syntax error.
func ParseExpression(l *Lexer) Expression {
	return parseExpressionWithPrecedence(l, 1)
}

// parseExpressionWithPrecedence implements precedence climbing; all
// operators are left-associative.
func parseExpressionWithPrecedence(l *Lexer, minPrec int) Expression {
	left := parsePrimary(l)
	if left == nil {
		return nil
	}

	for precedence(l.CurrTokenType) >= minPrec && precedence(l.CurrTokenType) > 0 {
		pos := l.CurrPos
		op := OperationKind(l.CurrLiteral)
		prec := precedence(l.CurrTokenType)
		l.NextToken()

		right := parseExpressionWithPrecedence(l, prec+1)
		if right == nil {
			return nil
		}
		left = &Operation{
			nodeInfo: nodeInfo{Pos: pos},
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parsePrimary handles literals, variable references and parentheses.
func parsePrimary(l *Lexer) Expression {
	info := nodeInfo{Pos: l.CurrPos}
	switch l.CurrTokenType {
	case PIXEL:
		lit := &Literal{nodeInfo: info, Kind: LiteralPixel, Value: l.CurrIntValue}
		l.NextToken()
		return lit

	case PERCENT:
		lit := &Literal{nodeInfo: info, Kind: LiteralPercentage, Value: l.CurrIntValue}
		l.NextToken()
		return lit

	case SCALAR:
		lit := &Literal{nodeInfo: info, Kind: LiteralScalar, Value: l.CurrIntValue}
		l.NextToken()
		return lit

	case TRUE, FALSE:
		lit := &Literal{nodeInfo: info, Kind: LiteralBool, Bool: l.CurrTokenType == TRUE}
		l.NextToken()
		return lit

	case HASH:
		if !IsHexColor(l.CurrLiteral) {
			l.Errors.AddAt(SyntaxError, l.CurrPos, "invalid color '#%s'", l.CurrLiteral)
			return nil
		}
		lit := &Literal{nodeInfo: info, Kind: LiteralColor, Color: "#" + l.CurrLiteral}
		l.NextToken()
		return lit

	case IDENT:
		var expr Expression
		if isUpper(l.CurrLiteral[0]) {
			expr = &VariableReference{nodeInfo: info, Name: l.CurrLiteral}
		} else {
			// Lowercase words in value position are named colours.
			expr = &Literal{nodeInfo: info, Kind: LiteralColor, Color: l.CurrLiteral}
		}
		l.NextToken()
		return expr

	case LPAREN:
		l.NextToken()
		expr := parseExpressionWithPrecedence(l, 1)
		if expr == nil {
			return nil
		}
		if !l.SkipToken(RPAREN) {
			return nil
		}
		return expr

	default:
		l.unexpected("expression")
		return nil
	}
}
