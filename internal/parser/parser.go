// Package parser implements a Pratt (precedence-climbing) parser that turns
// a token stream from internal/lexer into an internal/ast.Program.
//
// Key patterns: a two-token lookahead buffer (curToken/peekToken), per-token
// prefix/infix parse function tables, and a precedence ladder that resolves
// operator binding without backtracking except where the grammar is
// genuinely ambiguous (a `Name { field: expr }` struct literal vs. an
// identifier followed by a block, disambiguated with
// Lexer.SaveState/RestoreState).
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lagoon-lang/lagoon/internal/ast"
	"github.com/lagoon-lang/lagoon/internal/lexer"
	"github.com/lagoon-lang/lagoon/internal/token"
)

const (
	_ int = iota
	LOWEST
	ASSIGN
	OR
	AND
	IN
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	POWER
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[token.Type]int{
	token.ASSIGN:   ASSIGN,
	token.OR:       OR,
	token.AND:      AND,
	token.IN:       IN,
	token.NOT:      IN,
	token.EQ:       EQUALS,
	token.NEQ:      EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.POW:      POWER,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
	token.DOT:      MEMBER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser builds an ast.Program from a token stream.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []string

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:         p.parseIdentifier,
		token.REQUIRE:       p.parseIdentifier,
		token.NUMBER:        p.parseNumberLiteral,
		token.STRING:        p.parseStringLiteral,
		token.INTERP_STRING: p.parseInterpolatedString,
		token.TRUE:          p.parseBoolean,
		token.FALSE:         p.parseBoolean,
		token.NULL:          p.parseNull,
		token.BANG:          p.parsePrefixExpression,
		token.MINUS:         p.parsePrefixExpression,
		token.NOT:           p.parsePrefixExpression,
		token.LPAREN:        p.parseGroupedExpression,
		token.LBRACKET:      p.parseListLiteral,
		token.FN:            p.parseClosureLiteral,
		token.PIPE:          p.parseShortClosureLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.STAR:     p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.POW:      p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NEQ:      p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.OR:       p.parseInfixExpression,
		token.IN:       p.parseInfixExpression,
		token.NOT:      p.parseNotInExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parseGetExpression,
		token.ASSIGN:   p.parseAssignExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...)+fmt.Sprintf(" at line %d, column %d", p.curToken.Pos.Line, p.curToken.Pos.Column))
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.addError("expected next token to be %s, got %s", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.CONST:
		return p.parseConstStatement()
	case token.FN:
		if p.peekToken.Type == token.IDENT {
			return p.parseFunctionDeclaration()
		}
	case token.STRUCT:
		return p.parseStructDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SEMI:
		return nil
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.ASSIGN) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekToken.Type == token.SEMI {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseConstStatement() *ast.ConstStatement {
	stmt := &ast.ConstStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.ASSIGN) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekToken.Type == token.SEMI {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	stmt := &ast.FunctionDeclaration{Token: p.curToken}
	p.nextToken()
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	stmt.Params = p.parseParameterList()
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseStructDeclaration() *ast.StructDeclaration {
	stmt := &ast.StructDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	p.nextToken()
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if p.curToken.Type == token.IDENT {
			stmt.Fields = append(stmt.Fields, p.curToken.Literal)
		}
		p.nextToken()
		if p.curToken.Type == token.COMMA {
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	if p.curToken.Type != token.SEMI {
		stmt.Value = p.parseExpression(LOWEST)
	}
	if p.peekToken.Type == token.SEMI {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Consequence = p.parseBlockStatement()
	if p.peekToken.Type == token.ELSE {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		stmt.Alternative = p.parseBlockStatement()
	}
	return stmt
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Binding = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekToken.Type == token.COMMA {
		p.nextToken() // ,
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		stmt.IndexBinding = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	if !p.expectPeek(token.IN) {
		return stmt
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.peekToken.Type == token.SEMI {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for p.peekToken.Type != token.SEMI && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	if p.peekToken.Type == token.LBRACE && looksLikeStructLiteral(p) {
		return p.parseStructLiteral()
	}
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// looksLikeStructLiteral disambiguates `Name { field: expr }` from a
// trailing block by requiring the token after `{` to be `}` (empty struct)
// or `ident :` (first field assignment).
func looksLikeStructLiteral(p *Parser) bool {
	state := p.l.SaveState()
	savedCur, savedPeek := p.curToken, p.peekToken
	p.nextToken() // cur = {
	p.nextToken() // cur = first token inside braces
	ok := p.curToken.Type == token.RBRACE || (p.curToken.Type == token.IDENT && p.peekToken.Type == token.COLON)
	p.l.RestoreState(state)
	p.curToken, p.peekToken = savedCur, savedPeek
	return ok
}

func (p *Parser) parseStructLiteral() ast.Expression {
	lit := &ast.StructLiteral{
		Token:  p.curToken,
		Name:   &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		Fields: map[string]ast.Expression{},
	}
	p.nextToken() // {
	p.nextToken() // first field name or }
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		name := p.curToken.Literal
		if !p.expectPeek(token.COLON) {
			return lit
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		lit.Fields[name] = value
		lit.Order = append(lit.Order, name)
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
		}
		p.nextToken()
	}
	return lit
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := &ast.NumberLiteral{Token: p.curToken}
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as a number", p.curToken.Literal)
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

// parseInterpolatedString splits the raw `{expr}` spans recorded by the
// lexer and re-parses each span as a nested expression, using a fresh
// lexer/parser pair over the captured text.
func (p *Parser) parseInterpolatedString() ast.Expression {
	raw := p.curToken.Literal
	lit := &ast.InterpolatedStringLiteral{Token: p.curToken}

	var text strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '{' {
			if text.Len() > 0 {
				lit.Parts = append(lit.Parts, ast.InterpolationPart{Text: text.String()})
				text.Reset()
			}
			depth := 1
			j := i + 1
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			inner := raw[i+1 : j]
			subLexer := lexer.New(inner)
			subParser := New(subLexer)
			expr := subParser.parseExpression(LOWEST)
			p.errors = append(p.errors, subParser.errors...)
			lit.Parts = append(lit.Parts, ast.InterpolationPart{Expr: expr})
			i = j + 1
			continue
		}
		text.WriteByte(raw[i])
		i++
	}
	if text.Len() > 0 {
		lit.Parts = append(lit.Parts, ast.InterpolationPart{Text: text.String()})
	}
	return lit
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNull() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseListLiteral() ast.Expression {
	lit := &ast.ListLiteral{Token: p.curToken}
	lit.Elements = p.parseExpressionList(token.RBRACKET)
	return lit
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekToken.Type == end {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseClosureLiteral() ast.Expression {
	lit := &ast.ClosureLiteral{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return lit
	}
	lit.Params = p.parseParameterList()
	if !p.expectPeek(token.LBRACE) {
		return lit
	}
	lit.Body = p.parseBlockStatement()
	return lit
}

// parseShortClosureLiteral parses `|a, b| expr` into the same ClosureLiteral
// shape, wrapping the trailing expression in an implicit return.
func (p *Parser) parseShortClosureLiteral() ast.Expression {
	lit := &ast.ClosureLiteral{Token: p.curToken}
	p.nextToken()
	for p.curToken.Type != token.PIPE && p.curToken.Type != token.EOF {
		if p.curToken.Type == token.IDENT {
			lit.Params = append(lit.Params, &ast.Parameter{Name: p.curToken.Literal})
		}
		p.nextToken()
		if p.curToken.Type == token.COMMA {
			p.nextToken()
		}
	}
	p.nextToken() // consume second |
	body := p.parseExpression(LOWEST)
	lit.Body = &ast.BlockStatement{
		Token: lit.Token,
		Statements: []ast.Statement{
			&ast.ReturnStatement{Token: lit.Token, Value: body},
		},
	}
	return lit
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	var params []*ast.Parameter
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Parameter{Name: p.curToken.Literal})
	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Parameter{Name: p.curToken.Literal})
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

// parseNotInExpression handles `not in` as a two-token membership operator.
func (p *Parser) parseNotInExpression(left ast.Expression) ast.Expression {
	if p.peekToken.Type != token.IN {
		p.addError("expected 'in' after 'not' in membership expression")
		return left
	}
	expr := &ast.InfixExpression{Token: p.curToken, Operator: "not in", Left: left}
	p.nextToken() // consume 'in'
	precedence := IN
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Callee: callee}
	expr.Args = p.parseExpressionList(token.RPAREN)
	return expr
}

// parseIndexExpression parses `target[index]` or the empty form
// `target[]`, used only as an assignment target meaning "append".
func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Target: left}
	if p.peekToken.Type == token.RBRACKET {
		p.nextToken()
		return expr
	}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return expr
	}
	return expr
}

func (p *Parser) parseGetExpression(left ast.Expression) ast.Expression {
	expr := &ast.GetExpression{Token: p.curToken, Target: left}
	if !p.expectPeek(token.IDENT) {
		return expr
	}
	expr.Name = p.curToken.Literal
	return expr
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	expr := &ast.AssignExpression{Token: p.curToken, Target: left}
	p.nextToken()
	expr.Value = p.parseExpression(ASSIGN - 1)
	return expr
}
