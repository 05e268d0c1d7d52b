// ast.go — the syntax tree produced by the parser.
//
// Expression is a closed variant set: one struct per grammar production,
// every leaf carrying the token(s) it was parsed from so later stages can
// point diagnostics back into the source. Nodes own their children
// exclusively; the tree is built bottom-up in a single parse pass and
// consumed by lowering.
package mussel

// Expression is the closed interface implemented by every syntax node.
type Expression interface {
	syntaxNode()
}

// BinaryOperator tags the operator of a BinaryNode. It covers both the
// arithmetic and the comparison operators; lowering splits them apart.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpAnd
	OpOr
	OpEqual
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanOrEqual
	OpGreaterThanOrEqual
)

// UnaryOperator tags the operator of a UnaryNode.
type UnaryOperator int

const (
	OpNegate UnaryOperator = iota
	OpNot
)

type IncludeNode struct {
	Name Token
}

type ReturnNode struct {
	Value Expression
}

type FnNode struct {
	Name   Token
	Params []Token
	Body   []Expression
}

type ForNode struct {
	Var      Token
	Iterable Expression
	Body     []Expression
}

type UntilNode struct {
	Cond Expression
	Body []Expression
}

// IfNode's Else is nil when absent. An else-if chain parses as a one-node
// Else holding the nested IfNode.
type IfNode struct {
	Cond Expression
	Then []Expression
	Else []Expression
}

type LetNode struct {
	Name  Token
	Value Expression
}

type BinaryNode struct {
	Left    Expression
	Op      BinaryOperator
	OpToken Token
	Right   Expression
}

type UnaryNode struct {
	Op      UnaryOperator
	OpToken Token
	Operand Expression
}

// AssignNode wraps a postfix chain followed by '='. EqToken is the '='.
type AssignNode struct {
	EqToken Token
	Target  Expression
	Value   Expression
}

type IdentNode struct{ Tok Token }

type StringNode struct{ Tok Token }

type IntegerNode struct{ Tok Token }

type FloatNode struct{ Tok Token }

type BoolNode struct{ Tok Token }

type ArrayNode struct {
	Elements []Expression
}

type ClosureNode struct {
	Params []Token
	Body   []Expression
}

// CallNode applies a postfix argument list. ParenToken is the '('.
type CallNode struct {
	ParenToken Token
	Callee     Expression
	Args       []Expression
}

// IndexNode applies a postfix subscript. BracketToken is the '['.
type IndexNode struct {
	BracketToken Token
	Callee       Expression
	Index        Expression
}

func (IncludeNode) syntaxNode() {}
func (ReturnNode) syntaxNode()  {}
func (FnNode) syntaxNode()      {}
func (ForNode) syntaxNode()     {}
func (UntilNode) syntaxNode()   {}
func (IfNode) syntaxNode()      {}
func (LetNode) syntaxNode()     {}
func (BinaryNode) syntaxNode()  {}
func (UnaryNode) syntaxNode()   {}
func (AssignNode) syntaxNode()  {}
func (IdentNode) syntaxNode()   {}
func (StringNode) syntaxNode()  {}
func (IntegerNode) syntaxNode() {}
func (FloatNode) syntaxNode()   {}
func (BoolNode) syntaxNode()    {}
func (ArrayNode) syntaxNode()   {}
func (ClosureNode) syntaxNode() {}
func (CallNode) syntaxNode()    {}
func (IndexNode) syntaxNode()   {}
