package token

import "text/scanner"

type Token struct {
	TokenType
	Lexeme string
	scanner.Position
}

type TokenType int

const (
	IDENTIFIER TokenType = iota
	INTEGER
	FLOAT
	STRING
	COMMA
	L_PAREN
	R_PAREN
	CREATE
	DROP
	STACK
	STACKS
	FROM
	PUSH
	POP
	TOP
	CLEAR
	FILL
	CHECK
	WHERE
	SHOW
	SCAN
	REVERSE
	COPY
	TO
	COMPARE
	DESCRIBE
	TRUE
	FALSE
	ASTERISK
	PLUS
	MINUS
	DIVIDE
	MODULO
	EQUAL
	NOT_EQUAL
	GT
	GTE
	LT
	LTE
	BANG
	AND
	OR
	NOT
	EOF
)

func (t TokenType) String() string {
	return [...]string{
		"IDENTIFIER",
		"INTEGER",
		"FLOAT",
		"STRING",
		"COMMA",
		"L_PAREN",
		"R_PAREN",
		"CREATE",
		"DROP",
		"STACK",
		"STACKS",
		"FROM",
		"PUSH",
		"POP",
		"TOP",
		"CLEAR",
		"FILL",
		"CHECK",
		"WHERE",
		"SHOW",
		"SCAN",
		"REVERSE",
		"COPY",
		"TO",
		"COMPARE",
		"DESCRIBE",
		"TRUE",
		"FALSE",
		"ASTERISK",
		"PLUS",
		"MINUS",
		"DIVIDE",
		"MODULO",
		"EQUAL",
		"NOT_EQUAL",
		"GT",
		"GTE",
		"LT",
		"LTE",
		"BANG",
		"AND",
		"OR",
		"NOT",
		"EOF"}[t]
}
