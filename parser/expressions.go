package parser

import (
	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/internal/token"
)

// Expression parsing methods for the Parser:
// - Identifiers and prefix/infix expressions
// - Grouped expressions
// - If expressions
// - Index and call expressions
// - Attribute access and method calls

func (p *Parser) parseIdent() ast.Node {
	if p.curToken.Literal == "" {
		return p.setTokenError(p.curToken, "invalid identifier")
	}
	return p.newIdent(p.curToken)
}

func (p *Parser) parsePrefixExpr() ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		return p.setTokenError(p.curToken, "invalid prefix expression")
	}
	// Unary minus binds looser than ** on its left: -2**2 is -(2**2).
	// Loop to handle chains like -2 ** 2 ** 3.
	for op == "-" && p.peekTokenIs(token.POW) {
		p.nextToken() // move to the "**"
		powNode := p.parseInfixExpr(right)
		if powNode == nil {
			return nil
		}
		right, _ = powNode.(ast.Expr)
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid expression")
	}
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	// The power operator ** is right-associative: 2**2**3 is 2**(2**3)
	if p.curTokenIs(token.POW) {
		precedence--
	}
	p.nextToken()
	p.eatNewlines()
	right := p.parseExpression(precedence)
	if right == nil {
		return p.setTokenError(p.curToken, "invalid expression")
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

func (p *Parser) parseGroupedExpr() ast.Node {
	p.nextToken() // move past the "("
	p.eatNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("a grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIf() ast.Node {
	ifPos := p.curToken.StartPosition
	if !p.expectPeek("an if expression", token.LPAREN) {
		return nil
	}
	p.nextToken() // move past the "("
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek("an if expression", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("an if expression", token.LBRACE) {
		return nil
	}
	consequence := p.parseBlock()
	if consequence == nil {
		return nil
	}
	var alternative *ast.Block
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()                // move to the "else"
		if p.peekTokenIs(token.IF) { // this is an "else if"
			p.nextToken() // move to the "if"
			nestedIfPos := p.curToken.StartPosition
			nestedIf := p.parseIf()
			if nestedIf == nil {
				return nil
			}
			alternative = &ast.Block{
				Lbrace: nestedIfPos,
				Stmts:  []ast.Node{nestedIf},
				Rbrace: nestedIfPos,
			}
			return &ast.If{
				If:          ifPos,
				Cond:        cond,
				Consequence: consequence,
				Alternative: alternative,
			}
		}
		if !p.expectPeek("an if expression", token.LBRACE) {
			return nil
		}
		alternative = p.parseBlock()
		if alternative == nil {
			return nil
		}
	}
	return &ast.If{
		If:          ifPos,
		Cond:        cond,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (p *Parser) parseIndex(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid index expression")
	}
	lbracket := p.curToken.StartPosition
	p.nextToken() // move past the "["
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("an index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{
		X:        left,
		Lbracket: lbracket,
		Index:    index,
		Rbracket: p.curToken.StartPosition,
	}
}

func (p *Parser) parseCall(functionNode ast.Node) ast.Node {
	function, ok := functionNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid call expression")
	}
	lparen := p.curToken.StartPosition
	args := p.parseExprList(token.RPAREN)
	if p.hadNewError() {
		return nil
	}
	return &ast.Call{
		Fun:    function,
		Lparen: lparen,
		Args:   args,
		Rparen: p.curToken.StartPosition,
	}
}

// parseGetAttr handles attribute access and method calls, e.g. obj.attr and
// math.sqrt(2).
func (p *Parser) parseGetAttr(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid attribute access")
	}
	period := p.curToken.StartPosition
	if !p.expectPeek("an attribute access", token.IDENT) {
		return nil
	}
	attr := p.newIdent(p.curToken)
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // move to the "("
		lparen := p.curToken.StartPosition
		args := p.parseExprList(token.RPAREN)
		if p.hadNewError() {
			return nil
		}
		return &ast.ObjectCall{
			X:      obj,
			Period: period,
			Call: &ast.Call{
				Fun:    attr,
				Lparen: lparen,
				Args:   args,
				Rparen: p.curToken.StartPosition,
			},
		}
	}
	return &ast.GetAttr{X: obj, Period: period, Attr: attr}
}
