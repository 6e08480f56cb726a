package parser

import "github.com/tcc-lang/tcc/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	COND        // || or &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	POWER       // **
	MOD         // %
	PREFIX      // -x or !x
	CALL        // fn(x)
	INDEX       // xs[i], obj.attr
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.SLASH:     PRODUCT,
	token.ASTERISK:  PRODUCT,
	token.POW:       POWER,
	token.MOD:       MOD,
	token.AND:       COND,
	token.OR:        COND,
	token.LPAREN:    CALL,
	token.PERIOD:    INDEX,
	token.LBRACKET:  INDEX,
}
