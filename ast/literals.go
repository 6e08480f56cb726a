package ast

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/internal/token"
)

// Int is an integer literal.
type Int struct {
	ValuePos token.Position
	Literal  string
	Value    int64
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *Int) String() string      { return x.Literal }

// Float is a floating point literal.
type Float struct {
	ValuePos token.Position
	Literal  string
	Value    float64
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *Float) String() string      { return x.Literal }

// String is a double-quoted string literal. Value holds the unescaped text.
type String struct {
	ValuePos token.Position
	EndPos   token.Position
	Value    string
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.EndPos.Advance(1) }
func (x *String) String() string      { return fmt.Sprintf("%q", x.Value) }

// Bool is the literal true or false.
type Bool struct {
	ValuePos token.Position
	Value    bool
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }

func (x *Bool) End() token.Position {
	return x.ValuePos.Advance(len(x.String()))
}

func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Nil is the literal nil.
type Nil struct {
	ValuePos token.Position
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Position { return x.ValuePos }
func (x *Nil) End() token.Position { return x.ValuePos.Advance(3) }
func (x *Nil) String() string      { return "nil" }

// List is a list literal, e.g. [1, 2, 3].
type List struct {
	Lbracket token.Position
	Items    []Expr
	Rbracket token.Position
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbracket }
func (x *List) End() token.Position { return x.Rbracket.Advance(1) }

func (x *List) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// Func is a function declaration or an anonymous function expression.
// A Func with a nil Name is anonymous.
type Func struct {
	Func   token.Position
	Name   *Ident
	Lparen token.Position
	Params []*Ident
	Rparen token.Position
	Body   *Block
}

func (x *Func) exprNode() {}

func (x *Func) Pos() token.Position { return x.Func }
func (x *Func) End() token.Position { return x.Body.End() }

func (x *Func) String() string {
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.Name)
	}
	name := ""
	if x.Name != nil {
		name = " " + x.Name.Name
	}
	return fmt.Sprintf("func%s(%s) %s", name, strings.Join(params, ", "), x.Body.String())
}
