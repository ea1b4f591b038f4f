package parser

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/engine/token"
	"regexp"
	"strconv"
	"strings"
	"text/scanner"
)

type TokenPattern struct {
	regex *regexp.Regexp
	token.TokenType
}

var keywords = []TokenPattern{
	{regex: regexp.MustCompile(`(?i)^CREATE$`), TokenType: token.CREATE},
	{regex: regexp.MustCompile(`(?i)^DROP$`), TokenType: token.DROP},
	{regex: regexp.MustCompile(`(?i)^STACK$`), TokenType: token.STACK},
	{regex: regexp.MustCompile(`(?i)^STACKS$`), TokenType: token.STACKS},
	{regex: regexp.MustCompile(`(?i)^FROM$`), TokenType: token.FROM},
	{regex: regexp.MustCompile(`(?i)^PUSH$`), TokenType: token.PUSH},
	{regex: regexp.MustCompile(`(?i)^POP$`), TokenType: token.POP},
	{regex: regexp.MustCompile(`(?i)^TOP$`), TokenType: token.TOP},
	{regex: regexp.MustCompile(`(?i)^CLEAR$`), TokenType: token.CLEAR},
	{regex: regexp.MustCompile(`(?i)^FILL$`), TokenType: token.FILL},
	{regex: regexp.MustCompile(`(?i)^CHECK$`), TokenType: token.CHECK},
	{regex: regexp.MustCompile(`(?i)^WHERE$`), TokenType: token.WHERE},
	{regex: regexp.MustCompile(`(?i)^SHOW$`), TokenType: token.SHOW},
	{regex: regexp.MustCompile(`(?i)^SCAN$`), TokenType: token.SCAN},
	{regex: regexp.MustCompile(`(?i)^REVERSE$`), TokenType: token.REVERSE},
	{regex: regexp.MustCompile(`(?i)^COPY$`), TokenType: token.COPY},
	{regex: regexp.MustCompile(`(?i)^TO$`), TokenType: token.TO},
	{regex: regexp.MustCompile(`(?i)^COMPARE$`), TokenType: token.COMPARE},
	{regex: regexp.MustCompile(`(?i)^DESCRIBE$`), TokenType: token.DESCRIBE},
	{regex: regexp.MustCompile(`(?i)^TRUE$`), TokenType: token.TRUE},
	{regex: regexp.MustCompile(`(?i)^FALSE$`), TokenType: token.FALSE},
	{regex: regexp.MustCompile(`(?i)^AND$`), TokenType: token.AND},
	{regex: regexp.MustCompile(`(?i)^OR$`), TokenType: token.OR},
	{regex: regexp.MustCompile(`(?i)^NOT$`), TokenType: token.NOT},
}

var operators = []TokenPattern{
	{regex: regexp.MustCompile(`^,$`), TokenType: token.COMMA},
	{regex: regexp.MustCompile(`^\+$`), TokenType: token.PLUS},
	{regex: regexp.MustCompile(`^-$`), TokenType: token.MINUS},
	{regex: regexp.MustCompile(`^/$`), TokenType: token.DIVIDE},
	{regex: regexp.MustCompile(`^\*$`), TokenType: token.ASTERISK},
	{regex: regexp.MustCompile(`^%$`), TokenType: token.MODULO},
	{regex: regexp.MustCompile(`^\($`), TokenType: token.L_PAREN},
	{regex: regexp.MustCompile(`^\)$`), TokenType: token.R_PAREN},
	{regex: regexp.MustCompile(`^!=$`), TokenType: token.NOT_EQUAL},
	{regex: regexp.MustCompile(`^>=$`), TokenType: token.GTE},
	{regex: regexp.MustCompile(`^>$`), TokenType: token.GT},
	{regex: regexp.MustCompile(`^<=$`), TokenType: token.LTE},
	{regex: regexp.MustCompile(`^<$`), TokenType: token.LT},
	{regex: regexp.MustCompile(`^=$`), TokenType: token.EQUAL},
	{regex: regexp.MustCompile(`^!$`), TokenType: token.BANG},
}

// LexicalScan splits src into tokens. Keywords are case-insensitive. String
// literals use double quotes or backquotes; single quotes hold exactly one
// character.
func LexicalScan(src string) ([]token.Token, error) {
	tokens := make([]token.Token, 0, 10)
	var s scanner.Scanner
	s.Init(strings.NewReader(src))

	var scanErr error
	s.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%s at position: %s", msg, s.Pos())
		}
	}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		position := s.Position

		var (
			tokenType token.TokenType
			matched   bool
		)

		switch tok {
		case scanner.Int:
			tokenType, matched = token.INTEGER, true
		case scanner.Float:
			tokenType, matched = token.FLOAT, true
		case scanner.String, scanner.RawString, scanner.Char:
			unquoted, err := strconv.Unquote(text)
			if err != nil {
				return nil, fmt.Errorf("malformed string literal: %s at position: %s", text, position)
			}
			text, tokenType, matched = unquoted, token.STRING, true
		case scanner.Ident:
			tokenType, matched = token.IDENTIFIER, true
			for _, pattern := range keywords {
				if pattern.regex.MatchString(text) {
					tokenType = pattern.TokenType
					break
				}
			}
		default:
			switch text {
			case "!", ">", "<":
				if s.Peek() == '=' {
					s.Scan()
					text += s.TokenText()
				}
			}
			for _, pattern := range operators {
				if pattern.regex.MatchString(text) {
					tokenType, matched = pattern.TokenType, true
					break
				}
			}
		}

		if !matched {
			return nil, fmt.Errorf("unrecognized lexical pattern: %s at position: %s", text, position)
		}

		tokens = append(tokens, token.Token{
			TokenType: tokenType,
			Lexeme:    text,
			Position:  position,
		})
	}

	if scanErr != nil {
		return nil, scanErr
	}

	tokens = append(tokens, token.Token{TokenType: token.EOF})
	return tokens, nil
}
