// expr.go — the evaluation representation.
//
// Lowering turns the parser's syntax trees into this second, literal-resolved
// form. Values and programs share the one Expr type: evaluating an Expr yields
// another Expr, and the environment maps names to Exprs. A Constant holding a
// Name atom is the only form that still means "unresolved variable"; every
// other Constant is a finished value.
package mussel

import (
	"reflect"
	"strconv"
	"strings"
)

// ─────────────────────────────── atoms ───────────────────────────────

type AtomKind int

const (
	AtomNumber AtomKind = iota
	AtomFloat
	AtomBoolean
	AtomName
	AtomString
)

// Atom is a resolved literal leaf. Data holds int64, float64, bool or string
// depending on Kind.
type Atom struct {
	Kind AtomKind
	Data any
}

func Number(v int64) Atom   { return Atom{Kind: AtomNumber, Data: v} }
func Float(v float64) Atom  { return Atom{Kind: AtomFloat, Data: v} }
func Boolean(v bool) Atom   { return Atom{Kind: AtomBoolean, Data: v} }
func Name(name string) Atom { return Atom{Kind: AtomName, Data: name} }
func Str(text string) Atom  { return Atom{Kind: AtomString, Data: text} }

func (a Atom) Number() int64  { return a.Data.(int64) }
func (a Atom) Float() float64 { return a.Data.(float64) }
func (a Atom) Boolean() bool  { return a.Data.(bool) }
func (a Atom) Text() string   { return a.Data.(string) }

func (a Atom) String() string {
	switch a.Kind {
	case AtomNumber:
		return strconv.FormatInt(a.Number(), 10)
	case AtomFloat:
		return strconv.FormatFloat(a.Float(), 'f', -1, 64)
	case AtomBoolean:
		return strconv.FormatBool(a.Boolean())
	case AtomName, AtomString:
		return a.Text()
	}
	return ""
}

// ───────────────────────────── operators ─────────────────────────────

// Operator is a comparison operator usable in a Compare node.
type Operator int

const (
	Equal Operator = iota
	NotEqual
	LessThan
	LessThanEqual
	GreaterThan
	GreaterThanEqual
)

// BinOp is an arithmetic operator usable in a Binary node.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
)

// ─────────────────────────── expressions ───────────────────────────

// Expr is the closed set of evaluation-ready expression forms. Printing
// follows the language's value rendering: constants print bare, arrays print
// as "[a, b]", every other form prints as the empty string.
type Expr interface {
	String() string
	exprNode()
}

// BuiltinFunc is the native signature behind a Builtin binding. Arguments
// arrive already evaluated.
type BuiltinFunc func(args []Expr, env *Env) (Expr, error)

type (
	// Void is the result of statements that produce no value.
	Void struct{}

	// Constant wraps a single Atom.
	Constant struct{ Atom Atom }

	// Array is an ordered list of expressions.
	Array struct{ Items []Expr }

	// Let binds a name to the value of an expression.
	Let struct {
		Name  string
		Value Expr
	}

	// Call invokes the binding of Name with the given arguments.
	Call struct {
		Name string
		Args []Expr
	}

	// Compare applies a comparison operator to two expressions.
	Compare struct {
		Left  Expr
		Op    Operator
		Right Expr
	}

	// Closure is a parameter list plus body. Free variables resolve
	// dynamically through whatever environment is active at call time.
	Closure struct {
		Params []string
		Body   []Expr
	}

	// Function is a named function definition; evaluating it binds Name to
	// the equivalent Closure.
	Function struct {
		Name   string
		Params []string
		Body   []Expr
	}

	// If runs Then or Else depending on a boolean condition. A nil Else
	// means the branch is absent.
	If struct {
		Cond Expr
		Then []Expr
		Else []Expr
	}

	// Return carries a value out of the nearest enclosing call.
	Return struct{ Value Expr }

	// For iterates a loop variable over an array.
	For struct {
		Var      string
		Iterable Expr
		Body     []Expr
	}

	// Get reads one element of the array bound to Name.
	Get struct {
		Name  string
		Index int
	}

	// Until runs its body until the condition becomes true.
	Until struct {
		Cond Expr
		Body []Expr
	}

	// Binary applies an arithmetic operator to two expressions.
	Binary struct {
		Left  Expr
		Op    BinOp
		Right Expr
	}

	// Include loads a named builtin library into the current environment.
	Include struct{ Name string }

	// Builtin is a native operation. The stable Name identifies it; two
	// builtins are equal when their names are.
	Builtin struct {
		Name string
		Fn   BuiltinFunc
	}
)

func (Void) exprNode()     {}
func (Constant) exprNode() {}
func (Array) exprNode()    {}
func (Let) exprNode()      {}
func (Call) exprNode()     {}
func (Compare) exprNode()  {}
func (Closure) exprNode()  {}
func (Function) exprNode() {}
func (If) exprNode()       {}
func (Return) exprNode()   {}
func (For) exprNode()      {}
func (Get) exprNode()      {}
func (Until) exprNode()    {}
func (Binary) exprNode()   {}
func (Include) exprNode()  {}
func (Builtin) exprNode()  {}

func (Void) String() string       { return "" }
func (e Constant) String() string { return e.Atom.String() }

func (e Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range e.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (Let) String() string      { return "" }
func (Call) String() string     { return "" }
func (Compare) String() string  { return "" }
func (Closure) String() string  { return "" }
func (Function) String() string { return "" }
func (If) String() string       { return "" }
func (Return) String() string   { return "" }
func (For) String() string      { return "" }
func (Get) String() string      { return "" }
func (Until) String() string    { return "" }
func (Binary) String() string   { return "" }
func (Include) String() string  { return "" }
func (Builtin) String() string  { return "" }

// exprEqual is structural equality over Exprs. It exists because Builtin
// carries a function value, which reflect.DeepEqual never reports equal;
// builtins compare by name instead. The interpolation fixed point depends on
// this to terminate when a segment evaluates to a builtin.
func exprEqual(a, b Expr) bool {
	switch x := a.(type) {
	case Builtin:
		y, ok := b.(Builtin)
		return ok && x.Name == y.Name
	case Array:
		y, ok := b.(Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !exprEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
