package parser

import (
	"strconv"

	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/internal/token"
)

// Literal parsing methods for the Parser:
// - Numbers, strings, booleans, nil
// - List literals and expression lists
// - Function literals

func (p *Parser) parseInt() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 0, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid integer: %s", tok.Literal)
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid float: %s", tok.Literal)
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseBoolean() ast.Node {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNil() ast.Node {
	return &ast.Nil{ValuePos: p.curToken.StartPosition}
}

func (p *Parser) parseString() ast.Node {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		EndPos:   p.curToken.EndPosition,
		Value:    p.curToken.Literal,
	}
}

func (p *Parser) parseList() ast.Node {
	lbracket := p.curToken.StartPosition
	items := p.parseExprList(token.RBRACKET)
	if p.hadNewError() {
		return nil
	}
	return &ast.List{
		Lbracket: lbracket,
		Items:    items,
		Rbracket: p.curToken.StartPosition,
	}
}

// parseExprList parses a comma-separated expression list ending at the given
// token type. The current token should be the list opener; on success the
// current token is the end token. Newlines are allowed after commas.
func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	var items []ast.Expr
	if err := p.nextToken(); err != nil { // move past the opener
		return nil
	}
	p.eatNewlines()
	if p.curTokenIs(end) {
		return items
	}
	item := p.parseExpression(LOWEST)
	if item == nil {
		return nil
	}
	items = append(items, item)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to the ","
		if err := p.nextToken(); err != nil {
			return nil
		}
		p.eatNewlines()
		if p.curTokenIs(end) { // trailing comma
			return items
		}
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil
		}
		items = append(items, item)
	}
	p.eatNewlines()
	if !p.expectPeek("an expression list", end) {
		return nil
	}
	return items
}

func (p *Parser) parseFunc() ast.Node {
	funcPos := p.curToken.StartPosition
	var name *ast.Ident
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		name = p.newIdent(p.curToken)
	}
	if !p.expectPeek("a function", token.LPAREN) {
		return nil
	}
	params := p.parseFuncParams()
	if p.hadNewError() {
		return nil
	}
	if !p.expectPeek("a function", token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.Func{
		Func:   funcPos,
		Name:   name,
		Params: params,
		Body:   body,
	}
}

// parseFuncParams parses a function's parameter list. The current token
// should be the "("; on success the current token is the ")".
func (p *Parser) parseFuncParams() []*ast.Ident {
	var params []*ast.Ident
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	if !p.expectPeek("function parameters", token.IDENT) {
		return nil
	}
	params = append(params, p.newIdent(p.curToken))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to the ","
		if !p.expectPeek("function parameters", token.IDENT) {
			return nil
		}
		params = append(params, p.newIdent(p.curToken))
	}
	if !p.expectPeek("function parameters", token.RPAREN) {
		return nil
	}
	return params
}
