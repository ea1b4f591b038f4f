package parser

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/engine/ast"
	"github.com/aleph-zero/flutterstack/engine/token"
	"strconv"
)

/*
   command                  -> create_statement | drop_statement
                            | push_statement | pop_statement | top_statement
                            | clear_statement | fill_statement | check_statement
                            | show_statement | scan_statement
                            | copy_statement | compare_statement | describe_statement
   create_statement         -> 'CREATE' 'STACK' IDENTIFIER ( '(' disjunction ')' | 'FROM' '(' expressions ')' )?
   drop_statement           -> 'DROP' 'STACK' IDENTIFIER
   push_statement           -> 'PUSH' IDENTIFIER disjunction
   pop_statement            -> 'POP' IDENTIFIER
   top_statement            -> 'TOP' IDENTIFIER
   clear_statement          -> 'CLEAR' IDENTIFIER
   fill_statement           -> 'FILL' IDENTIFIER '(' expressions? ')'
   check_statement          -> 'CHECK' IDENTIFIER 'WHERE' disjunction
   show_statement           -> 'SHOW' ( 'STACKS' | IDENTIFIER )
   scan_statement           -> 'SCAN' IDENTIFIER ('REVERSE')?
   copy_statement           -> 'COPY' IDENTIFIER 'TO' IDENTIFIER
   compare_statement        -> 'COMPARE' IDENTIFIER IDENTIFIER
   describe_statement       -> 'DESCRIBE' IDENTIFIER
   expressions              -> disjunction (',' disjunction)*
   disjunction              -> conjunction ('OR' conjunction)*
   conjunction              -> negation ('AND' negation)*
   negation                 -> ('NOT' | '!')* equality
   equality                 -> comparison (('!=' | '=') comparison)*
   comparison               -> term (('>' | '>=' | '<' | '<=') term)*
   term                     -> factor (('-' | '+') factor)*
   factor                   -> unary (('/' | '*' | '%') unary)*
   unary                    -> ('-')? unary
                            | primary ;
   primary                  -> INTEGER|FLOAT|STRING|'TRUE'|'FALSE'|IDENTIFIER|'TOP'
                            | '(' disjunction ')' ;
*/

type Parser struct {
	tokens []token.Token
	index  int
}

func New(tokens []token.Token) *Parser {
	return &Parser{
		tokens: tokens,
		index:  0,
	}
}

// Parse returns an abstract syntax tree representing the logical structure of
// the provided command.
func (p *Parser) Parse() (ast.StatementNode, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, ParseError{
			Expected: []token.TokenType{token.EOF},
			Received: p.peek(),
		}
	}
	return stmt, nil
}

// ParseExpression parses a single standalone expression.
func (p *Parser) ParseExpression() (ast.ExpressionNode, error) {
	expr, err := p.disjunction()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, ParseError{
			Expected: []token.TokenType{token.EOF},
			Received: p.peek(),
		}
	}
	return expr, nil
}

func (p *Parser) statement() (ast.StatementNode, error) {
	switch {
	case p.match(token.CREATE):
		if err := p.expect(token.STACK); err != nil {
			return nil, err
		}
		return p.createStatement()
	case p.match(token.DROP):
		if err := p.expect(token.STACK); err != nil {
			return nil, err
		}
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewDropStackStatementNode(name), nil
	case p.match(token.PUSH):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		value, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		return ast.NewPushStatementNode(name, value), nil
	case p.match(token.POP):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewPopStatementNode(name), nil
	case p.match(token.TOP):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewTopStatementNode(name), nil
	case p.match(token.CLEAR):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewClearStatementNode(name), nil
	case p.match(token.FILL):
		return p.fillStatement()
	case p.match(token.CHECK):
		return p.checkStatement()
	case p.match(token.SHOW):
		if p.match(token.STACKS) {
			return ast.NewShowStacksStatementNode(), nil
		}
		name, err := p.stackName()
		if err != nil {
			return nil, ParseError{
				Expected: []token.TokenType{token.STACKS, token.IDENTIFIER},
				Received: p.peek(),
			}
		}
		return ast.NewShowStatementNode(name), nil
	case p.match(token.SCAN):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewScanStatementNode(name, p.match(token.REVERSE)), nil
	case p.match(token.COPY):
		source, err := p.stackName()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.TO); err != nil {
			return nil, err
		}
		destination, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewCopyStatementNode(source, destination), nil
	case p.match(token.COMPARE):
		left, err := p.stackName()
		if err != nil {
			return nil, err
		}
		right, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewCompareStatementNode(left, right), nil
	case p.match(token.DESCRIBE):
		name, err := p.stackName()
		if err != nil {
			return nil, err
		}
		return ast.NewDescribeStatementNode(name), nil
	default:
		return nil, ParseError{
			Expected: []token.TokenType{
				token.CREATE, token.DROP, token.PUSH, token.POP, token.TOP, token.CLEAR, token.FILL,
				token.CHECK, token.SHOW, token.SCAN, token.COPY, token.COMPARE, token.DESCRIBE,
			},
			Received: p.peek(),
		}
	}
}

func (p *Parser) createStatement() (ast.StatementNode, error) {
	name, err := p.stackName()
	if err != nil {
		return nil, err
	}

	stmt := ast.NewCreateStackStatementNode(name)
	switch {
	case p.match(token.L_PAREN):
		capacity, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.R_PAREN); err != nil {
			return nil, err
		}
		stmt.Capacity = capacity
	case p.match(token.FROM):
		if err := p.expect(token.L_PAREN); err != nil {
			return nil, err
		}
		values, err := p.expressions()
		if err != nil {
			return nil, err
		}
		stmt.Values = values
		stmt.FromSeq = true
	}

	return stmt, nil
}

func (p *Parser) fillStatement() (ast.StatementNode, error) {
	name, err := p.stackName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.L_PAREN); err != nil {
		return nil, err
	}
	values, err := p.expressions()
	if err != nil {
		return nil, err
	}
	return ast.NewFillStatementNode(name, values), nil
}

func (p *Parser) checkStatement() (ast.StatementNode, error) {
	name, err := p.stackName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.WHERE); err != nil {
		return nil, err
	}
	predicate, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	return ast.NewCheckStatementNode(name, ast.NewPredicateNode(predicate)), nil
}

// expressions parses a comma separated list terminated by ')'. The opening
// parenthesis has already been consumed.
func (p *Parser) expressions() ([]ast.ExpressionNode, error) {
	values := make([]ast.ExpressionNode, 0)
	if p.match(token.R_PAREN) {
		return values, nil
	}

	for ok := true; ok; ok = p.match(token.COMMA) {
		expr, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		values = append(values, expr)
	}

	if err := p.expect(token.R_PAREN); err != nil {
		return nil, err
	}
	return values, nil
}

func (p *Parser) stackName() (string, error) {
	if !p.match(token.IDENTIFIER) {
		return "", ParseError{
			Expected: []token.TokenType{token.IDENTIFIER},
			Received: p.peek(),
		}
	}
	return p.previous().Lexeme, nil
}

func (p *Parser) disjunction() (ast.ExpressionNode, error) {
	expr, err := p.conjunction()
	if err != nil {
		return nil, err
	}

	for p.match(token.OR) {
		op := p.previous()
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) conjunction() (ast.ExpressionNode, error) {
	expr, err := p.negation()
	if err != nil {
		return nil, err
	}

	for p.match(token.AND) {
		op := p.previous()
		right, err := p.negation()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) negation() (ast.ExpressionNode, error) {
	if p.match(token.NOT, token.BANG) {
		op := p.previous()
		node, err := p.negation()
		if err != nil {
			return nil, err
		}
		return ast.NewLogicalNegationNode(op, node), nil
	}

	return p.equality()
}

func (p *Parser) equality() (ast.ExpressionNode, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(token.EQUAL, token.NOT_EQUAL) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) comparison() (ast.ExpressionNode, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(token.GT, token.GTE, token.LT, token.LTE) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) term() (ast.ExpressionNode, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) factor() (ast.ExpressionNode, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.match(token.DIVIDE, token.ASTERISK, token.MODULO) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpressionNode(op, expr, right)
	}

	return expr, nil
}

func (p *Parser) unary() (ast.ExpressionNode, error) {
	if p.match(token.MINUS) {
		op := p.previous()
		node, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpressionNode(op, node), nil
	}

	return p.primary()
}

func (p *Parser) primary() (ast.ExpressionNode, error) {
	switch {
	case p.match(token.INTEGER):
		return p.integer()
	case p.match(token.FLOAT):
		return p.float()
	case p.match(token.STRING):
		return ast.NewStringLiteralNode(p.previous().Lexeme), nil
	case p.match(token.TRUE):
		return ast.NewBooleanLiteralNode(true), nil
	case p.match(token.FALSE):
		return ast.NewBooleanLiteralNode(false), nil
	case p.match(token.IDENTIFIER, token.TOP):
		return ast.NewIdentifierNode(p.previous().Lexeme), nil
	case p.match(token.L_PAREN):
		expr, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if !p.check(token.R_PAREN) {
			return nil, ParseError{
				Expected: []token.TokenType{token.R_PAREN},
				Received: p.peek(),
			}
		}
		p.advance()
		return ast.NewParenthesizedExpressionNode(expr), nil
	default:
		return nil, ParseError{
			Expected: []token.TokenType{token.INTEGER, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.IDENTIFIER},
			Received: p.peek(),
		}
	}
}

func (p *Parser) integer() (ast.ExpressionNode, error) {
	tok := p.previous()
	value, err := strconv.ParseInt(tok.Lexeme, 0, 64)
	if err != nil {
		return nil, ConversionError{
			Value: tok,
			err:   err,
		}
	}
	return ast.NewIntegerLiteralNode(value), nil
}

func (p *Parser) float() (ast.ExpressionNode, error) {
	tok := p.previous()
	value, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return nil, ConversionError{
			Value: tok,
			err:   err,
		}
	}
	return ast.NewFloatLiteralNode(value), nil
}

/** Helper Methods **/

func (p *Parser) expect(tokenType token.TokenType) error {
	if !p.match(tokenType) {
		return ParseError{
			Expected: []token.TokenType{tokenType},
			Received: p.peek(),
		}
	}
	return nil
}

func (p *Parser) match(tokenTypes ...token.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tokenType token.TokenType) bool {
	if p.eof() {
		return false
	}
	return p.peek().TokenType == tokenType
}

func (p *Parser) advance() token.Token {
	if !p.eof() {
		p.index++
	}
	return p.previous()
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.index-1]
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.index]
}

func (p *Parser) eof() bool {
	return p.peek().TokenType == token.EOF
}

/** Error Handling **/

type ParseError struct {
	Expected []token.TokenType
	Received token.Token
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parser expected one of '%s' received '%s' at line: %d, column: %d",
		e.Expected, e.Received.Lexeme, e.Received.Position.Line, e.Received.Position.Column)
}

type ConversionError struct {
	Value token.Token
	err   error
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("parser cannot convert token '%s' to concrete type: %s",
		e.Value.Lexeme, e.err)
}

func (e ConversionError) Unwrap() error {
	return e.err
}

// Parse lexes and parses a single command.
func Parse(src string) (ast.StatementNode, error) {
	tokens, err := LexicalScan(src)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}
