package ast

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/internal/token"
)

// Ident is an identifier, e.g. a variable name.
type Ident struct {
	NamePos token.Position
	Name    string
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }
func (x *Ident) String() string      { return x.Name }

// Prefix is a unary operator expression, e.g. -x or !ok.
type Prefix struct {
	OpPos token.Position
	Op    string
	X     Expr
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }
func (x *Prefix) String() string      { return fmt.Sprintf("(%s%s)", x.Op, x.X.String()) }

// Infix is a binary operator expression, e.g. a + b.
type Infix struct {
	X     Expr
	OpPos token.Position
	Op    string
	Y     Expr
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	return fmt.Sprintf("(%s %s %s)", x.X.String(), x.Op, x.Y.String())
}

// If is a conditional. It is usable as an expression: the value of the
// executed branch is the value of the If, and nil when the condition is
// false and no alternative exists.
type If struct {
	If          token.Position
	Cond        Expr
	Consequence *Block
	Alternative *Block
}

func (x *If) exprNode() {}

func (x *If) Pos() token.Position { return x.If }

func (x *If) End() token.Position {
	if x.Alternative != nil {
		return x.Alternative.End()
	}
	return x.Consequence.End()
}

func (x *If) String() string {
	var sb strings.Builder
	sb.WriteString("if (")
	sb.WriteString(x.Cond.String())
	sb.WriteString(") ")
	sb.WriteString(x.Consequence.String())
	if x.Alternative != nil {
		sb.WriteString(" else ")
		sb.WriteString(x.Alternative.String())
	}
	return sb.String()
}

// Call is a function invocation, e.g. sqrt(2).
type Call struct {
	Fun    Expr
	Lparen token.Position
	Args   []Expr
	Rparen token.Position
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", x.Fun.String(), strings.Join(args, ", "))
}

// Index is a subscript expression, e.g. xs[0].
type Index struct {
	X        Expr
	Lbracket token.Position
	Index    Expr
	Rbracket token.Position
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbracket.Advance(1) }

func (x *Index) String() string {
	return fmt.Sprintf("%s[%s]", x.X.String(), x.Index.String())
}

// GetAttr is an attribute access, e.g. player.health.
type GetAttr struct {
	X      Expr
	Period token.Position
	Attr   *Ident
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Pos() token.Position { return x.X.Pos() }
func (x *GetAttr) End() token.Position { return x.Attr.End() }
func (x *GetAttr) String() string      { return x.X.String() + "." + x.Attr.Name }

// ObjectCall is a method invocation on an object, e.g. math.sqrt(2).
type ObjectCall struct {
	X      Expr
	Period token.Position
	Call   *Call
}

func (x *ObjectCall) exprNode() {}

func (x *ObjectCall) Pos() token.Position { return x.X.Pos() }
func (x *ObjectCall) End() token.Position { return x.Call.End() }
func (x *ObjectCall) String() string      { return x.X.String() + "." + x.Call.String() }
