package parser

import (
	"strconv"
	"strings"

	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/internal/token"
)

// World command parsing. Command words are not reserved: "speed" is a
// command at statement start in "speed is 10" but an ordinary identifier in
// "speed = 10" or "speed * 2". Each command desugars into an ast.Command
// with a canonical argument list matching the registered builtin:
//
//	create3d cube at 20, 2.5, 0 size 1 color "#ff0000"
//	  -> create3d("cube", 20, 2.5, 0, 1, "#ff0000")
//
// Commands that create an object (create3d, platform, spawn) set the last3d
// cursor, which the compiler handles via SetsCursor.

// commandSetsCursor maps each command word to whether the command stores
// its result in last3d.
var commandSetsCursor = map[string]bool{
	"create3d":    true,
	"platform":    true,
	"spawn":       true,
	"scale3d":     false,
	"color3d":     false,
	"collision3d": false,
	"physics3d":   false,
	"velocity3d":  false,
	"ground":      false,
	"move":        false,
	"rotate":      false,
	"destroy":     false,
	"npc":         false,
	"dialogue":    false,
	"talk":        false,
	"player":      false,
	"speed":       false,
	"health":      false,
	"jump":        false,
	"camera":      false,
	"lookat":      false,
}

// atCommand reports whether the current token starts a world command. The
// current token must be a command word and the next token must plausibly
// start a command argument, so that "speed = 10" still parses as an
// ordinary assignment.
func (p *Parser) atCommand() bool {
	if _, ok := commandSetsCursor[p.curToken.Literal]; !ok {
		return false
	}
	switch p.peekToken.Type {
	case token.IDENT, token.STRING, token.INT, token.FLOAT,
		token.MINUS, token.LPAREN, token.TRUE, token.FALSE:
		return true
	}
	// jump is valid with no arguments at all.
	if p.curToken.Literal == "jump" {
		switch p.peekToken.Type {
		case token.NEWLINE, token.SEMICOLON, token.EOF, token.RBRACE:
			return true
		}
	}
	return false
}

func (p *Parser) parseCommand() ast.Node {
	tok := p.curToken
	name := tok.Literal
	var args []ast.Expr
	switch name {
	case "create3d":
		args = p.parseCreate3d()
	case "scale3d":
		args = p.parseObjVec("a scale3d command", "to")
	case "color3d":
		args = p.parseColor3d()
	case "collision3d":
		args = p.parseCollision3d()
	case "physics3d":
		args = p.parsePhysics3d()
	case "velocity3d":
		args = p.parseObjVec("a velocity3d command", "to")
	case "ground":
		args = p.parseGround()
	case "platform":
		args = p.parsePlatform()
	case "spawn":
		args = p.parseSpawn()
	case "move":
		args = p.parseObjVec("a move command", "to")
	case "rotate":
		args = p.parseObjVec("a rotate command", "by")
	case "destroy":
		args = p.parseDestroy()
	case "npc":
		args = p.parseNpc()
	case "dialogue":
		args = p.parseDialogue()
	case "talk":
		args = p.parseTalk()
	case "player":
		args = p.parseAtVec("a player command")
	case "speed":
		args = p.parseSpeed()
	case "health":
		args = p.parseHealth()
	case "jump":
		args = p.parseJump()
	case "camera":
		args = p.parseAtVec("a camera command")
	case "lookat":
		args = p.parseLookat()
	}
	if args == nil {
		return nil
	}
	endPos := p.curToken.EndPosition
	if n := len(args); n > 0 {
		endPos = args[n-1].End()
	}
	// An npc declaration also binds the NPC object to a variable named
	// after it, so scripts can refer to the NPC directly afterwards:
	//
	//	npc "Guard" at 5, 0, 5
	//	move guard to 6, 0, 5
	var bindsName string
	if name == "npc" && len(args) > 0 {
		if nameLit, ok := args[0].(*ast.String); ok {
			bindsName = strings.ToLower(nameLit.Value)
		}
	}
	return &ast.Command{
		NamePos:    tok.StartPosition,
		Name:       name,
		Args:       args,
		EndPos:     endPos,
		SetsCursor: commandSetsCursor[name],
		BindsName:  bindsName,
	}
}

// expectWord advances past the next token if it is the given connective
// word, storing an error otherwise.
func (p *Parser) expectWord(context, word string) bool {
	if p.peekTokenIs(token.IDENT) && p.peekToken.Literal == word {
		p.nextToken()
		return true
	}
	p.addError(NewParserError(ErrorOpts{
		ErrType: "parse error",
		Message: "unexpected " + tokenDescription(p.peekToken) +
			" while parsing " + context + " (expected " + `"` + word + `"` + ")",
		File:          p.l.Filename(),
		StartPosition: p.peekToken.StartPosition,
		EndPosition:   p.peekToken.EndPosition,
		SourceCode:    p.l.GetLineText(p.peekToken),
	}))
	return false
}

// acceptWord advances past the next token if it is the given connective
// word.
func (p *Parser) acceptWord(word string) bool {
	if p.peekTokenIs(token.IDENT) && p.peekToken.Literal == word {
		p.nextToken()
		return true
	}
	return false
}

// parseCommandArg advances and parses one command argument expression.
func (p *Parser) parseCommandArg() ast.Expr {
	if err := p.nextToken(); err != nil {
		return nil
	}
	return p.parseExpression(LOWEST)
}

// parseVecArgs parses "x, y, z" as three expressions, appending to args.
func (p *Parser) parseVecArgs(context string, args []ast.Expr) []ast.Expr {
	for i := 0; i < 3; i++ {
		if i > 0 && !p.expectPeek(context, token.COMMA) {
			return nil
		}
		arg := p.parseCommandArg()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	return args
}

// parseName parses an identifier or string as a string literal, used for
// object kinds ("create3d cube ...") and NPC names.
func (p *Parser) parseName(context string) ast.Expr {
	switch p.peekToken.Type {
	case token.IDENT, token.STRING:
		p.nextToken()
		return &ast.String{
			ValuePos: p.curToken.StartPosition,
			EndPos:   p.curToken.EndPosition,
			Value:    p.curToken.Literal,
		}
	default:
		p.peekError(context, token.IDENT, p.peekToken)
		return nil
	}
}

// literalInt synthesizes an integer literal for a default argument value.
func (p *Parser) literalInt(value int64, pos token.Position) ast.Expr {
	return &ast.Int{
		ValuePos: pos,
		Literal:  strconv.FormatInt(value, 10),
		Value:    value,
	}
}

// literalString synthesizes a string literal for a default argument value.
func (p *Parser) literalString(value string, pos token.Position) ast.Expr {
	return &ast.String{ValuePos: pos, EndPos: pos, Value: value}
}

// create3d <kind> at x, y, z [size s] [color "c"]
func (p *Parser) parseCreate3d() []ast.Expr {
	const context = "a create3d command"
	kind := p.parseName(context)
	if kind == nil {
		return nil
	}
	if !p.expectWord(context, "at") {
		return nil
	}
	args := p.parseVecArgs(context, []ast.Expr{kind})
	if args == nil {
		return nil
	}
	size := p.literalInt(1, p.curToken.EndPosition)
	if p.acceptWord("size") {
		if size = p.parseCommandArg(); size == nil {
			return nil
		}
	}
	color := p.literalString("", p.curToken.EndPosition)
	if p.acceptWord("color") {
		if color = p.parseCommandArg(); color == nil {
			return nil
		}
	}
	return append(args, size, color)
}

// scale3d <obj> to sx, sy, sz / move <obj> to x, y, z /
// rotate <obj> by rx, ry, rz
func (p *Parser) parseObjVec(context, word string) []ast.Expr {
	obj := p.parseCommandArg()
	if obj == nil {
		return nil
	}
	if !p.expectWord(context, word) {
		return nil
	}
	return p.parseVecArgs(context, []ast.Expr{obj})
}

// color3d <obj> to "color"
func (p *Parser) parseColor3d() []ast.Expr {
	const context = "a color3d command"
	obj := p.parseCommandArg()
	if obj == nil {
		return nil
	}
	if !p.expectWord(context, "to") {
		return nil
	}
	color := p.parseCommandArg()
	if color == nil {
		return nil
	}
	return []ast.Expr{obj, color}
}

// collision3d on <obj> / collision3d off <obj>
func (p *Parser) parseCollision3d() []ast.Expr {
	const context = "a collision3d command"
	var enabled bool
	switch {
	case p.acceptWord("on"):
		enabled = true
	case p.acceptWord("off"):
		enabled = false
	default:
		p.setTokenError(p.peekToken, `expected "on" or "off" in collision3d command`)
		return nil
	}
	flagPos := p.curToken.StartPosition
	obj := p.parseCommandArg()
	if obj == nil {
		return nil
	}
	return []ast.Expr{obj, &ast.Bool{ValuePos: flagPos, Value: enabled}}
}

// physics3d on <obj> / physics3d off <obj>
func (p *Parser) parsePhysics3d() []ast.Expr {
	const context = "a physics3d command"
	var enabled bool
	switch {
	case p.acceptWord("on"):
		enabled = true
	case p.acceptWord("off"):
		enabled = false
	default:
		p.setTokenError(p.peekToken, `expected "on" or "off" in physics3d command`)
		return nil
	}
	flagPos := p.curToken.StartPosition
	obj := p.parseCommandArg()
	if obj == nil {
		return nil
	}
	return []ast.Expr{obj, &ast.Bool{ValuePos: flagPos, Value: enabled}}
}

// ground at y [color "c"] [size s]
func (p *Parser) parseGround() []ast.Expr {
	const context = "a ground command"
	if !p.expectWord(context, "at") {
		return nil
	}
	y := p.parseCommandArg()
	if y == nil {
		return nil
	}
	color := p.literalString("", p.curToken.EndPosition)
	if p.acceptWord("color") {
		if color = p.parseCommandArg(); color == nil {
			return nil
		}
	}
	size := p.literalInt(0, p.curToken.EndPosition)
	if p.acceptWord("size") {
		if size = p.parseCommandArg(); size == nil {
			return nil
		}
	}
	return []ast.Expr{y, color, size}
}

// platform at x, y, z size w, h, d
func (p *Parser) parsePlatform() []ast.Expr {
	const context = "a platform command"
	if !p.expectWord(context, "at") {
		return nil
	}
	args := p.parseVecArgs(context, nil)
	if args == nil {
		return nil
	}
	if !p.expectWord(context, "size") {
		return nil
	}
	return p.parseVecArgs(context, args)
}

// spawn <kind> at x, y, z
func (p *Parser) parseSpawn() []ast.Expr {
	const context = "a spawn command"
	kind := p.parseName(context)
	if kind == nil {
		return nil
	}
	if !p.expectWord(context, "at") {
		return nil
	}
	return p.parseVecArgs(context, []ast.Expr{kind})
}

// destroy <obj>
func (p *Parser) parseDestroy() []ast.Expr {
	obj := p.parseCommandArg()
	if obj == nil {
		return nil
	}
	return []ast.Expr{obj}
}

// npc "Name" at x, y, z [color "c"]
func (p *Parser) parseNpc() []ast.Expr {
	const context = "an npc command"
	name := p.parseName(context)
	if name == nil {
		return nil
	}
	if !p.expectWord(context, "at") {
		return nil
	}
	args := p.parseVecArgs(context, []ast.Expr{name})
	if args == nil {
		return nil
	}
	color := p.literalString("", p.curToken.EndPosition)
	if p.acceptWord("color") {
		if color = p.parseCommandArg(); color == nil {
			return nil
		}
	}
	return append(args, color)
}

// dialogue "Name" says "text"
func (p *Parser) parseDialogue() []ast.Expr {
	const context = "a dialogue command"
	name := p.parseName(context)
	if name == nil {
		return nil
	}
	if !p.expectWord(context, "says") {
		return nil
	}
	text := p.parseCommandArg()
	if text == nil {
		return nil
	}
	return []ast.Expr{name, text}
}

// talk to "Name"
func (p *Parser) parseTalk() []ast.Expr {
	const context = "a talk command"
	if !p.expectWord(context, "to") {
		return nil
	}
	name := p.parseName(context)
	if name == nil {
		return nil
	}
	return []ast.Expr{name}
}

// player at x, y, z / camera at x, y, z
func (p *Parser) parseAtVec(context string) []ast.Expr {
	if !p.expectWord(context, "at") {
		return nil
	}
	return p.parseVecArgs(context, nil)
}

// speed is v
func (p *Parser) parseSpeed() []ast.Expr {
	const context = "a speed command"
	if !p.expectWord(context, "is") {
		return nil
	}
	value := p.parseCommandArg()
	if value == nil {
		return nil
	}
	return []ast.Expr{value}
}

// health is v / health add v / health subtract v
func (p *Parser) parseHealth() []ast.Expr {
	var mode string
	switch {
	case p.acceptWord("is"):
		mode = "is"
	case p.acceptWord("add"):
		mode = "add"
	case p.acceptWord("subtract"):
		mode = "subtract"
	default:
		p.setTokenError(p.peekToken,
			`expected "is", "add" or "subtract" in health command`)
		return nil
	}
	modeExpr := p.literalString(mode, p.curToken.StartPosition)
	value := p.parseCommandArg()
	if value == nil {
		return nil
	}
	return []ast.Expr{modeExpr, value}
}

// jump / jump force f
func (p *Parser) parseJump() []ast.Expr {
	force := p.literalInt(10, p.curToken.EndPosition)
	if p.acceptWord("force") {
		if force = p.parseCommandArg(); force == nil {
			return nil
		}
	}
	return []ast.Expr{force}
}

// lookat x, y, z
func (p *Parser) parseLookat() []ast.Expr {
	return p.parseVecArgs("a lookat command", nil)
}
