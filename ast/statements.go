package ast

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/internal/token"
)

// Block is a braced sequence of statements.
type Block struct {
	Lbrace token.Position
	Stmts  []Node
	Rbrace token.Position
}

func (x *Block) stmtNode() {}

func (x *Block) Pos() token.Position { return x.Lbrace }
func (x *Block) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Block) String() string {
	stmts := make([]string, 0, len(x.Stmts))
	for _, stmt := range x.Stmts {
		stmts = append(stmts, stmt.String())
	}
	return "{ " + strings.Join(stmts, "; ") + " }"
}

// Var is a variable declaration, e.g. var x = 1.
type Var struct {
	VarPos token.Position
	Name   *Ident
	Value  Expr
}

func (x *Var) stmtNode() {}

func (x *Var) Pos() token.Position { return x.VarPos }
func (x *Var) End() token.Position { return x.Value.End() }

func (x *Var) String() string {
	return fmt.Sprintf("var %s = %s", x.Name.Name, x.Value.String())
}

// Assign updates a variable or a list element. Exactly one of Name and
// Index is set. Op is "=" or a compound operator like "+=".
type Assign struct {
	Name  *Ident
	Index *Index
	OpPos token.Position
	Op    string
	Value Expr
}

func (x *Assign) stmtNode() {}

func (x *Assign) Pos() token.Position {
	if x.Name != nil {
		return x.Name.Pos()
	}
	return x.Index.Pos()
}

func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	if x.Name != nil {
		return fmt.Sprintf("%s %s %s", x.Name.Name, x.Op, x.Value.String())
	}
	return fmt.Sprintf("%s %s %s", x.Index.String(), x.Op, x.Value.String())
}

// SetAttr assigns to an object attribute, e.g. player.armor = 50.
type SetAttr struct {
	X     Expr
	Attr  *Ident
	OpPos token.Position
	Op    string
	Value Expr
}

func (x *SetAttr) stmtNode() {}

func (x *SetAttr) Pos() token.Position { return x.X.Pos() }
func (x *SetAttr) End() token.Position { return x.Value.End() }

func (x *SetAttr) String() string {
	return fmt.Sprintf("%s.%s %s %s", x.X.String(), x.Attr.Name, x.Op, x.Value.String())
}

// Return exits the enclosing function. Value may be nil for a bare return.
type Return struct {
	Return token.Position
	Value  Expr
}

func (x *Return) stmtNode() {}

func (x *Return) Pos() token.Position { return x.Return }

func (x *Return) End() token.Position {
	if x.Value != nil {
		return x.Value.End()
	}
	return x.Return.Advance(len("return"))
}

func (x *Return) String() string {
	if x.Value == nil {
		return "return"
	}
	return "return " + x.Value.String()
}

// While is a condition-guarded loop.
type While struct {
	While token.Position
	Cond  Expr
	Body  *Block
}

func (x *While) stmtNode() {}

func (x *While) Pos() token.Position { return x.While }
func (x *While) End() token.Position { return x.Body.End() }

func (x *While) String() string {
	return fmt.Sprintf("while (%s) %s", x.Cond.String(), x.Body.String())
}

// Break exits the innermost enclosing loop.
type Break struct {
	Break token.Position
}

func (x *Break) stmtNode() {}

func (x *Break) Pos() token.Position { return x.Break }
func (x *Break) End() token.Position { return x.Break.Advance(len("break")) }
func (x *Break) String() string      { return "break" }

// Continue jumps to the condition of the innermost enclosing loop.
type Continue struct {
	Continue token.Position
}

func (x *Continue) stmtNode() {}

func (x *Continue) Pos() token.Position { return x.Continue }
func (x *Continue) End() token.Position { return x.Continue.Advance(len("continue")) }
func (x *Continue) String() string      { return "continue" }

// Command is a world-mutating statement such as
//
//	create3d cube at 20, 2.5, 0 size 1
//
// The parser desugars the command grammar into a canonical argument list;
// the compiler emits the command as a call to the builtin named by Name.
// SetsCursor marks commands whose result is stored into the last3d global.
// BindsName, when non-empty, is a global variable name the command's
// result is bound to (npc declarations bind the NPC by its lowercased
// name).
type Command struct {
	NamePos    token.Position
	Name       string
	Args       []Expr
	EndPos     token.Position
	SetsCursor bool
	BindsName  string
}

func (x *Command) stmtNode() {}

func (x *Command) Pos() token.Position { return x.NamePos }
func (x *Command) End() token.Position { return x.EndPos }

func (x *Command) String() string {
	args := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s %s", x.Name, strings.Join(args, ", "))
}
