package parser

import "github.com/suji-lang/suji/internal/lexer"

// Precedence levels, lowest to highest (spec §4.2). LOWEST is the
// sentinel passed as the initial precedence argument to parseExpression —
// it binds every operator below it, including assignment.
//
// The relative order of apply/stream-pipe/composition is the one place the
// spec's own precedence list and its worked example disagree (see
// DESIGN.md's Open Question resolution): we follow the explicit example
// ("stream pipe binds tighter than apply") and place these operators below
// the conventional arithmetic/comparison bands, matching how pipe-style
// operators read in scripts.
const (
	LOWEST = iota
	ASSIGN         // =, +=, -=, *=, /=, %= (right-assoc)
	APPLY          // |>, <|
	STREAM_PIPE    // |
	COMPOSE        // >>, <<
	LOGIC_OR       // ||
	LOGIC_AND      // &&
	REGEX_MATCH    // ~, !~
	EQUALITY       // ==, !=
	RELATIONAL     // <, <=, >, >=
	RANGE          // .., ..=
	ADDITIVE       // +, -
	MULTIPLICATIVE // *, /, %
	EXPONENT       // ^
	UNARY          // -, ! (prefix)
	POSTFIX        // ++, --, call, index, slice, field, method
)

var precedences = map[lexer.TokenKind]int{
	lexer.ASSIGN:         ASSIGN,
	lexer.PLUS_ASSIGN:    ASSIGN,
	lexer.MINUS_ASSIGN:   ASSIGN,
	lexer.STAR_ASSIGN:    ASSIGN,
	lexer.SLASH_ASSIGN:   ASSIGN,
	lexer.PERCENT_ASSIGN: ASSIGN,
	lexer.PIPE_FORWARD:   APPLY,
	lexer.PIPE_BACKWARD:  APPLY,
	lexer.PIPE:           STREAM_PIPE,
	lexer.COMPOSE_RIGHT:  COMPOSE,
	lexer.COMPOSE_LEFT:   COMPOSE,
	lexer.OR_OR:          LOGIC_OR,
	lexer.AND_AND:        LOGIC_AND,
	lexer.TILDE:          REGEX_MATCH,
	lexer.NOT_TILDE:      REGEX_MATCH,
	lexer.EQ:             EQUALITY,
	lexer.NEQ:            EQUALITY,
	lexer.LT:             RELATIONAL,
	lexer.LTE:            RELATIONAL,
	lexer.GT:             RELATIONAL,
	lexer.GTE:            RELATIONAL,
	lexer.RANGE_EXCL:     RANGE,
	lexer.RANGE_INCL:     RANGE,
	lexer.PLUS:           ADDITIVE,
	lexer.MINUS:          ADDITIVE,
	lexer.STAR:           MULTIPLICATIVE,
	lexer.SLASH:          MULTIPLICATIVE,
	lexer.PERCENT:        MULTIPLICATIVE,
	lexer.CARET:          EXPONENT,
}

// rightAssoc lists the infix operators that associate right-to-left
// (spec §4.2: "Right-associative: =, ^, <|. Otherwise left."). Compound
// assignment follows plain `=`.
var rightAssoc = map[lexer.TokenKind]bool{
	lexer.ASSIGN:         true,
	lexer.PLUS_ASSIGN:    true,
	lexer.MINUS_ASSIGN:   true,
	lexer.STAR_ASSIGN:    true,
	lexer.SLASH_ASSIGN:   true,
	lexer.PERCENT_ASSIGN: true,
	lexer.CARET:          true,
	lexer.PIPE_BACKWARD:  true,
}

func getPrecedence(k lexer.TokenKind) int {
	if p, ok := precedences[k]; ok {
		return p
	}
	return LOWEST
}

var assignOps = map[lexer.TokenKind]bool{
	lexer.ASSIGN:         true,
	lexer.PLUS_ASSIGN:    true,
	lexer.MINUS_ASSIGN:   true,
	lexer.STAR_ASSIGN:    true,
	lexer.SLASH_ASSIGN:   true,
	lexer.PERCENT_ASSIGN: true,
}
