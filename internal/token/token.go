package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Literals
	IDENT  = "IDENT"
	NUMBER = "NUMBER"
	STRING = "STRING"

	// Arrows
	ARROW   = "->"
	L_ARROW = "<-"

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	ASSIGN   = "="
	EQ       = "=="
	NOT_EQ   = "!="
	LT       = "<"
	GT       = ">"
	LT_EQ    = "<="
	GT_EQ    = ">="
	DOT      = "."
	AT       = "@"

	// Delimiters
	COMMA     = ","
	COLON     = ":"
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	NEWLINE = "NEWLINE"
	COMMENT = "COMMENT"

	// Keywords
	COND_IF      = "I"
	COND_ELSE_IF = "EI"
	COND_ELSE    = "E"
	RETURN       = "RETURN"
	ERROR        = "ERROR"
	MATCH        = "MATCH"
	WHEN         = "WHEN"
	FOREACH      = "FE"
	WHILE        = "WHILE"
	IN           = "IN"
	MUT          = "MUT"
	TRUE         = "TRUE"
	FALSE        = "FALSE"
	NULL         = "NULL"
	UNDERSCORE   = "_"
)

var keywords = map[string]TokenType{
	"return": RETURN,
	"error":  ERROR,
	"i":      COND_IF,
	"ei":     COND_ELSE_IF,
	"e":      COND_ELSE,
	"match":  MATCH,
	"when":   WHEN,
	"fe":     FOREACH,
	"while":  WHILE,
	"in":     IN,
	"mut":    MUT,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
	"_":      UNDERSCORE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
