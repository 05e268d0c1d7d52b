// diag.go — source registry, byte spans, and diagnostic error types.
//
// Lexing, parsing, and lowering all report failures through the types in this
// file. Every diagnostic carries a byte span into the original source; the
// FileSet maps an opaque file identifier back to the path and content needed
// to resolve that span into a line/column and a caret snippet.
//
// Rendering is plain text in the style of
//
//	PARSE ERROR in demo.mus at 3:12: unexpected token ')' (expected identifier)
//
//	   2 | let x = (1 + 2
//	   3 |            )
//	     |            ^
//	   4 | x
//
// with at most one line of context on each side.
package mussel

import (
	"fmt"
	"strings"
)

// Span is a half-open byte interval [Start, End) into a source string.
type Span struct {
	Start int
	End   int
}

// Slice returns the source text the span refers to.
func (s Span) Slice(src string) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return src[s.Start:s.End]
}

// FileIdentifier names one file registered in a FileSet.
type FileIdentifier int

// FileSet registers source files so diagnostics can be resolved back to a
// path and content. It is append-only and read-only after registration.
type FileSet struct {
	paths    []string
	contents []string
}

func NewFileSet() *FileSet { return &FileSet{} }

// AddFile registers a file and returns its identifier.
func (fs *FileSet) AddFile(path, content string) FileIdentifier {
	fs.paths = append(fs.paths, path)
	fs.contents = append(fs.contents, content)
	return FileIdentifier(len(fs.paths) - 1)
}

// Content returns the registered content for id.
func (fs *FileSet) Content(id FileIdentifier) (string, bool) {
	if int(id) < 0 || int(id) >= len(fs.contents) {
		return "", false
	}
	return fs.contents[id], true
}

// Path returns the registered path for id.
func (fs *FileSet) Path(id FileIdentifier) (string, bool) {
	if int(id) < 0 || int(id) >= len(fs.paths) {
		return "", false
	}
	return fs.paths[id], true
}

// LineCol resolves a byte offset to 1-based line and column numbers.
// Offsets past the end of the source clamp to the last position.
func LineCol(src string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Diagnostic is a lex-, parse-, or lowering-time error that can point back
// into the source it came from.
type Diagnostic interface {
	error
	Span() Span
}

/* ===========================
   Lexing
   =========================== */

// UnknownSymbolError reports a byte position where no lexer rule matched.
type UnknownSymbolError struct {
	Offset int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol at offset %d", e.Offset)
}

func (e *UnknownSymbolError) Span() Span { return Span{Start: e.Offset, End: e.Offset + 1} }

/* ===========================
   Parsing
   =========================== */

// UnexpectedTokenError reports a token that does not fit the grammar at its
// position, together with the kind the parser was looking for.
type UnexpectedTokenError struct {
	Found    Token
	Expected TokenKind
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s (expected %s)", e.Found.Kind, e.Expected)
}

func (e *UnexpectedTokenError) Span() Span { return e.Found.Range() }

// TrailingInputError reports tokens left over after a successful top-level
// parse. Found is the first unconsumed token.
type TrailingInputError struct {
	Found Token
}

func (e *TrailingInputError) Error() string {
	return fmt.Sprintf("unexpected trailing input at %s", e.Found.Kind)
}

func (e *TrailingInputError) Span() Span { return e.Found.Range() }

// EofError reports that the token stream ran out where at least one more
// token was required. Offset is the end of the source.
type EofError struct {
	Offset int
}

func (e *EofError) Error() string { return "unexpected end of input" }

func (e *EofError) Span() Span {
	start := e.Offset - 1
	if start < 0 {
		start = 0
	}
	return Span{Start: start, End: e.Offset}
}

// CompoundError aggregates the candidate failures of a grammar alternation.
// The first entry is the one reported; the rest are kept for callers that
// want the full picture.
type CompoundError struct {
	Errors []Diagnostic
}

func (e *CompoundError) Error() string {
	if len(e.Errors) == 0 {
		return "parse error"
	}
	return e.Errors[0].Error()
}

func (e *CompoundError) Span() Span {
	if len(e.Errors) == 0 {
		return Span{}
	}
	return e.Errors[0].Span()
}

/* ===========================
   Lowering
   =========================== */

// LowerErrorKind classifies lowering failures.
type LowerErrorKind int

const (
	InvalidIntegerLiteral LowerErrorKind = iota
	InvalidFloatLiteral
	InvalidBooleanLiteral
	InvalidStringLiteral
	UnsupportedOperation
)

func (k LowerErrorKind) String() string {
	switch k {
	case InvalidIntegerLiteral:
		return "invalid integer literal"
	case InvalidFloatLiteral:
		return "invalid float literal"
	case InvalidBooleanLiteral:
		return "invalid boolean literal"
	case InvalidStringLiteral:
		return "invalid string literal"
	case UnsupportedOperation:
		return "unsupported operation"
	default:
		return "lowering error"
	}
}

// LowerError reports a syntax-tree node that could not be lowered into the
// evaluation representation. Tok is the token the node originated from.
type LowerError struct {
	Kind LowerErrorKind
	Tok  Token
	Msg  string
}

func (e *LowerError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *LowerError) Span() Span { return e.Tok.Range() }

/* ===========================
   Rendering
   =========================== */

// RenderDiagnostic formats a diagnostic as a caret snippet against the
// source it was produced from. Non-diagnostic errors render as their plain
// message.
func RenderDiagnostic(err error, name, src string) string {
	var header string
	switch err.(type) {
	case *UnknownSymbolError:
		header = "LEXICAL ERROR"
	case *UnexpectedTokenError, *TrailingInputError, *EofError, *CompoundError:
		header = "PARSE ERROR"
	case *LowerError:
		header = "LOWERING ERROR"
	default:
		return err.Error()
	}
	diag := err.(Diagnostic)
	line, col := LineCol(src, diag.Span().Start)
	return snippet(src, header, name, line, col, diag.Error())
}

// snippet builds the caret-annotated block. Coordinates are 1-based and
// clamped to the source bounds so a bad span cannot crash rendering.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
