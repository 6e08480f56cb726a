package parser

import (
	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/internal/token"
)

// Statement parsing methods for the Parser:
// - var declarations
// - assignment statements (including index and attribute targets)
// - return, while, and block parsing

func (p *Parser) parseVar() ast.Node {
	varPos := p.curToken.StartPosition
	if !p.expectPeek("a var statement", token.IDENT) {
		return nil
	}
	name := p.newIdent(p.curToken)
	if !p.expectPeek("a var statement", token.ASSIGN) {
		return nil
	}
	if err := p.nextToken(); err != nil { // move past the "="
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Var{VarPos: varPos, Name: name, Value: value}
}

// parseAssign builds an assignment statement. The current token is the
// assignment operator and the target expression has already been parsed.
func (p *Parser) parseAssign(target ast.Node) ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil { // move past the operator
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	switch target := target.(type) {
	case *ast.Ident:
		return &ast.Assign{Name: target, OpPos: opPos, Op: op, Value: value}
	case *ast.Index:
		if op != "=" {
			return p.setTokenError(p.curToken,
				"operator %q is not supported for index assignment", op)
		}
		return &ast.Assign{Index: target, OpPos: opPos, Op: op, Value: value}
	case *ast.GetAttr:
		return &ast.SetAttr{
			X:     target.X,
			Attr:  target.Attr,
			OpPos: opPos,
			Op:    op,
			Value: value,
		}
	default:
		return p.setTokenError(p.curToken, "invalid assignment target")
	}
}

func (p *Parser) parseReturn() ast.Node {
	returnPos := p.curToken.StartPosition
	// A bare return is allowed
	if statementTerminators[p.peekToken.Type] {
		return &ast.Return{Return: returnPos}
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Return{Return: returnPos, Value: value}
}

func (p *Parser) parseWhile() ast.Node {
	whilePos := p.curToken.StartPosition
	if !p.expectPeek("a while statement", token.LPAREN) {
		return nil
	}
	p.nextToken() // move past the "("
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("a while statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("a while statement", token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.While{While: whilePos, Cond: cond, Body: body}
}

func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.curToken.StartPosition
	statements := []ast.Node{}
	if err := p.nextToken(); err != nil { // move past the "{"
		return nil
	}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		stmt := p.parseStatementStrict()
		if stmt != nil {
			statements = append(statements, stmt)
		} else if p.hadNewError() {
			return nil
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
	}
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.curToken, "unterminated block statement")
		return nil
	}
	rbrace := p.curToken.StartPosition
	return &ast.Block{Lbrace: lbrace, Stmts: statements, Rbrace: rbrace}
}
