// token.go — token kinds and the Token record produced by the lexer.
package mussel

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Operators
	PLUS       TokenKind = iota // "+"
	MINUS                       // "-"
	STAR                        // "*"
	RSLASH                      // "/"
	LSLASH                      // "\"
	ASSIGN                      // "="
	EQ                          // "=="
	NEQ                         // "!="
	LESS                        // "<"
	GREATER                     // ">"
	LESS_EQ                     // "<="
	GREATER_EQ                  // ">="

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	COMMA   // ","
	BAR     // "|"

	// Keywords
	FN
	INCLUDE
	FOR
	IN
	IF
	ELSE
	UNTIL
	LET
	RETURN
	AND
	OR
	NOT

	// Literals & identifiers
	INTEGER
	FLOAT
	BOOLEAN
	STRING
	ID

	// End of input
	EOF
)

var tokenNames = map[TokenKind]string{
	PLUS:       "'+'",
	MINUS:      "'-'",
	STAR:       "'*'",
	RSLASH:     "'/'",
	LSLASH:     "'\\'",
	ASSIGN:     "'='",
	EQ:         "'=='",
	NEQ:        "'!='",
	LESS:       "'<'",
	GREATER:    "'>'",
	LESS_EQ:    "'<='",
	GREATER_EQ: "'>='",
	LROUND:     "'('",
	RROUND:     "')'",
	LSQUARE:    "'['",
	RSQUARE:    "']'",
	LCURLY:     "'{'",
	RCURLY:     "'}'",
	COMMA:      "','",
	BAR:        "'|'",
	FN:         "'fn'",
	INCLUDE:    "'include'",
	FOR:        "'for'",
	IN:         "'in'",
	IF:         "'if'",
	ELSE:       "'else'",
	UNTIL:      "'until'",
	LET:        "'let'",
	RETURN:     "'return'",
	AND:        "'and'",
	OR:         "'or'",
	NOT:        "'not'",
	INTEGER:    "integer",
	FLOAT:      "float",
	BOOLEAN:    "boolean",
	STRING:     "string",
	ID:         "identifier",
	EOF:        "end of input",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return "unknown token"
}

// Token is a lexed unit. It never owns source text; it only references it by
// byte offset and length, so copying is cheap and tokens stay valid as long
// as the source string does.
type Token struct {
	Kind   TokenKind
	Offset int
	Length int
}

// Content returns the exact source slice the token was lexed from.
func (t Token) Content(src string) string {
	return src[t.Offset : t.Offset+t.Length]
}

// Range returns the half-open byte span of the token.
func (t Token) Range() Span {
	return Span{Start: t.Offset, End: t.Offset + t.Length}
}
