// interp.go — string interpolation scanning.
//
// A string literal like "x is {x}!" splits into alternating segments: plain
// text, and brace-enclosed sub-programs that run through the full front end.
// The evaluator substitutes only when the string splits into two or more
// segments; a string that is all text, or a single bare "{expr}", stays
// byte-for-byte unchanged. Any malformed segment makes the whole string
// opaque rather than failing the program.
package mussel

import "strings"

// parseInterpolation splits s into interpolation segments. Literal runs
// become string Constants; each {..} becomes its lowered expression. Reports
// false when a brace is unterminated or a segment does not parse as exactly
// one expression.
func parseInterpolation(s string) ([]Expr, bool) {
	var segs []Expr
	i := 0
	for i < len(s) {
		j := strings.IndexByte(s[i:], '{')
		if j < 0 {
			segs = append(segs, Constant{Atom: Str(s[i:])})
			break
		}
		if j > 0 {
			segs = append(segs, Constant{Atom: Str(s[i : i+j])})
		}
		i += j + 1
		k := strings.IndexByte(s[i:], '}')
		if k < 0 {
			return nil, false
		}
		seg, ok := parseSegment(s[i : i+k])
		if !ok {
			return nil, false
		}
		segs = append(segs, seg)
		i += k + 1
	}
	return segs, true
}

// parseSegment runs one brace-enclosed source fragment through the lexer,
// parser and lowering.
func parseSegment(src string) (Expr, bool) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, false
	}
	unit, err := Parse(tokens)
	if err != nil {
		return nil, false
	}
	if len(unit) != 1 {
		return nil, false
	}
	exprs, err := Lower(src, unit)
	if err != nil {
		return nil, false
	}
	return exprs[0], true
}
