package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/susumulang/susumu/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token

	switch l.ch {
	case '\n':
		tok = l.newToken(token.NEWLINE, "\n")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ':':
		tok = l.newToken(token.COLON, ":")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '.':
		tok = l.newToken(token.DOT, ".")
	case '@':
		tok = l.newToken(token.AT, "@")
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '*':
		tok = l.newToken(token.ASTERISK, "*")
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.newToken(token.ARROW, "->")
		} else {
			tok = l.newToken(token.MINUS, "-")
		}
	case '<':
		switch l.peekChar() {
		case '-':
			l.readChar()
			tok = l.newToken(token.L_ARROW, "<-")
		case '=':
			l.readChar()
			tok = l.newToken(token.LT_EQ, "<=")
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GT_EQ, ">=")
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.EQ, "==")
		} else {
			tok = l.newToken(token.ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ, "!=")
		} else {
			tok = l.newToken(token.ILLEGAL, "!")
		}
	case '/':
		if l.peekChar() == '/' {
			return l.readLineComment()
		}
		tok = l.newToken(token.SLASH, "/")
	case '"':
		return l.readString()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readLineComment() token.Token {
	startLine, startColumn := l.line, l.column
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: token.COMMENT, Lexeme: lexeme, Line: startLine, Column: startColumn}
}

func (l *Lexer) readString() token.Token {
	startLine, startColumn := l.line, l.column
	start := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' {
			break
		}
		if l.ch == 0 {
			return token.Token{
				Type:    token.ILLEGAL,
				Lexeme:  "unterminated string",
				Line:    startLine,
				Column:  startColumn,
				Literal: fmt.Sprintf("unterminated string starting at %d:%d", startLine, startColumn),
			}
		}
	}
	value := l.input[start:l.position]
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Lexeme: value, Literal: value, Line: startLine, Column: startColumn}
}

func (l *Lexer) readNumber() token.Token {
	startLine, startColumn := l.line, l.column
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	// A decimal point only belongs to the number when a digit follows,
	// so chains like "3 -> obj.field" still lex the dot separately.
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: value, Line: startLine, Column: startColumn}
}

func (l *Lexer) readIdentifier() token.Token {
	startLine, startColumn := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Line: startLine, Column: startColumn}
}

func (l *Lexer) newToken(tokenType token.TokenType, lexeme string) token.Token {
	column := l.column - (len(lexeme) - 1)
	if column < 1 {
		column = 1
	}
	return token.Token{Type: tokenType, Lexeme: lexeme, Line: l.line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
