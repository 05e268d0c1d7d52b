// lexer.go — byte-walking scanner that turns mussel source into tokens.
//
// At each position the rules are tried in a fixed order: whitespace, comments,
// numbers, operators/punctuation (two-character forms before their one-char
// prefixes), string literals, then identifiers/keywords. Whitespace and
// comments are consumed but never emitted. If no rule matches, lexing fails
// with the byte offset of the offending position.
//
// Note that numbers are tried before operators, so a '-' immediately followed
// by a digit always starts a negative literal.
package mussel

// keywords maps exact identifier spellings to their dedicated token kinds.
// "true" and "false" lex as BOOLEAN, not ID.
var keywords = map[string]TokenKind{
	"fn":      FN,
	"include": INCLUDE,
	"for":     FOR,
	"in":      IN,
	"if":      IF,
	"else":    ELSE,
	"until":   UNTIL,
	"let":     LET,
	"return":  RETURN,
	"and":     AND,
	"or":      OR,
	"not":     NOT,
	"true":    BOOLEAN,
	"false":   BOOLEAN,
}

// Lex scans the entire source and returns its tokens, EOF marker included.
// Lexing is pure: it never touches anything but the input string.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	var tokens []Token
	for !l.atEnd() {
		if l.skipIgnored() {
			continue
		}
		start := l.cur
		kind, ok := l.scanOne()
		if !ok {
			return nil, &UnknownSymbolError{Offset: l.cur}
		}
		tokens = append(tokens, Token{Kind: kind, Offset: start, Length: l.cur - start})
	}
	tokens = append(tokens, Token{Kind: EOF, Offset: len(src)})
	return tokens, nil
}

type lexer struct {
	src string
	cur int
}

func (l *lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *lexer) peekAt(n int) byte {
	if l.cur+n >= len(l.src) {
		return 0
	}
	return l.src[l.cur+n]
}

func (l *lexer) hasPrefix(s string) bool {
	return len(l.src)-l.cur >= len(s) && l.src[l.cur:l.cur+len(s)] == s
}

// skipIgnored consumes one run of whitespace or one comment. It reports
// whether anything was consumed.
func (l *lexer) skipIgnored() bool {
	switch {
	case isSpace(l.peek()):
		for !l.atEnd() && isSpace(l.peek()) {
			l.cur++
		}
		return true
	case l.hasPrefix("//"):
		for !l.atEnd() && l.peek() != '\n' {
			l.cur++
		}
		return true
	case l.hasPrefix("/*"):
		// Only a terminated block comment counts; otherwise the '/' and '*'
		// fall through to the operator rules.
		for i := l.cur + 2; i+1 < len(l.src); i++ {
			if l.src[i] == '*' && l.src[i+1] == '/' {
				l.cur = i + 2
				return true
			}
		}
		return false
	}
	return false
}

// scanOne consumes exactly one token and returns its kind.
func (l *lexer) scanOne() (TokenKind, bool) {
	if kind, ok := l.scanNumber(); ok {
		return kind, true
	}
	if kind, ok := l.scanOperator(); ok {
		return kind, true
	}
	if l.scanString() {
		return STRING, true
	}
	if kind, ok := l.scanIdentifier(); ok {
		return kind, true
	}
	return 0, false
}

// scanNumber matches -?[0-9]+(\.[0-9]+)?. A decimal point selects FLOAT.
func (l *lexer) scanNumber() (TokenKind, bool) {
	i := l.cur
	if l.peek() == '-' && isDigit(l.peekAt(1)) {
		i++
	}
	if i >= len(l.src) || !isDigit(l.src[i]) {
		return 0, false
	}
	for i < len(l.src) && isDigit(l.src[i]) {
		i++
	}
	kind := INTEGER
	if i+1 < len(l.src) && l.src[i] == '.' && isDigit(l.src[i+1]) {
		kind = FLOAT
		i++
		for i < len(l.src) && isDigit(l.src[i]) {
			i++
		}
	}
	l.cur = i
	return kind, true
}

// twoCharOps must be tried before their one-character prefixes.
var twoCharOps = []struct {
	text string
	kind TokenKind
}{
	{"==", EQ},
	{"!=", NEQ},
	{"<=", LESS_EQ},
	{">=", GREATER_EQ},
}

var oneCharOps = map[byte]TokenKind{
	'+':  PLUS,
	'-':  MINUS,
	'*':  STAR,
	'/':  RSLASH,
	'\\': LSLASH,
	'=':  ASSIGN,
	'<':  LESS,
	'>':  GREATER,
	'(':  LROUND,
	')':  RROUND,
	'[':  LSQUARE,
	']':  RSQUARE,
	'{':  LCURLY,
	'}':  RCURLY,
	',':  COMMA,
	'|':  BAR,
}

func (l *lexer) scanOperator() (TokenKind, bool) {
	for _, op := range twoCharOps {
		if l.hasPrefix(op.text) {
			l.cur += len(op.text)
			return op.kind, true
		}
	}
	if kind, ok := oneCharOps[l.peek()]; ok {
		l.cur++
		return kind, true
	}
	return 0, false
}

// scanString matches a double-quoted literal with no escape processing. The
// emitted span covers both quotes; lowering strips them. An unterminated
// string matches nothing, so the opening quote surfaces as an unknown symbol.
func (l *lexer) scanString() bool {
	if l.peek() != '"' {
		return false
	}
	for i := l.cur + 1; i < len(l.src); i++ {
		if l.src[i] == '"' {
			l.cur = i + 1
			return true
		}
	}
	return false
}

func (l *lexer) scanIdentifier() (TokenKind, bool) {
	if !isIdentStart(l.peek()) {
		return 0, false
	}
	start := l.cur
	l.cur++
	for !l.atEnd() && isIdentChar(l.peek()) {
		l.cur++
	}
	if kind, ok := keywords[l.src[start:l.cur]]; ok {
		return kind, true
	}
	return ID, true
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentChar(b byte) bool { return isIdentStart(b) || isDigit(b) }
