// interpreter.go — the tree-walking evaluator.
//
// Evaluation is a direct recursive walk: an Expr evaluates to another Expr
// against a mutable environment. There is no recovery inside a run; the first
// runtime fault aborts the whole program and surfaces as a *RuntimeError.
package mussel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ───────────────────────── runtime faults ─────────────────────────

type FaultKind int

const (
	NameError FaultKind = iota
	TypeError
	InvalidComparisonError
	DivisionByZeroError
	IndexOutOfBoundsError
	NotIterableError
	UndefinedFunctionError
	UnknownLibraryError
	BuiltinError
)

var faultNames = map[FaultKind]string{
	NameError:              "NameError",
	TypeError:              "TypeError",
	InvalidComparisonError: "InvalidComparisonError",
	DivisionByZeroError:    "DivisionByZeroError",
	IndexOutOfBoundsError:  "IndexOutOfBoundsError",
	NotIterableError:       "NotIterableError",
	UndefinedFunctionError: "UndefinedFunctionError",
	UnknownLibraryError:    "UnknownLibraryError",
	BuiltinError:           "BuiltinError",
}

func (k FaultKind) String() string {
	if name, ok := faultNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// RuntimeError is a fatal evaluation fault. It aborts the program run but is
// an ordinary error value, so hosts can report it without crashing.
type RuntimeError struct {
	Kind FaultKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

func fault(kind FaultKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// describe names an expression form for error messages.
func describe(e Expr) string {
	switch v := e.(type) {
	case Constant:
		switch v.Atom.Kind {
		case AtomNumber:
			return "number"
		case AtomFloat:
			return "float"
		case AtomBoolean:
			return "boolean"
		case AtomName:
			return "name"
		case AtomString:
			return "string"
		}
	case Array:
		return "array"
	case Closure, Function:
		return "function"
	case Builtin:
		return "builtin"
	case Void:
		return "void"
	}
	return "expression"
}

// ───────────────────────── interpreter ─────────────────────────

// Interpreter owns one root environment and runs programs against it.
// Stdout and Stdin back the println and input special forms; tests swap them
// for buffers.
type Interpreter struct {
	env *Env

	Stdout io.Writer
	Stdin  io.Reader

	stdin *bufio.Reader
}

func NewInterpreter() *Interpreter {
	return &Interpreter{env: NewEnv(), Stdout: os.Stdout, Stdin: os.Stdin}
}

// Run evaluates each top-level expression in order against the root
// environment. The first runtime fault stops the run.
func (in *Interpreter) Run(exprs []Expr) error {
	for _, e := range exprs {
		if _, err := in.eval(e, in.env); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a single expression against the root environment. The REPL
// uses this to keep bindings alive across lines.
func (in *Interpreter) Eval(e Expr) (Expr, error) {
	return in.eval(e, in.env)
}

func (in *Interpreter) eval(e Expr, env *Env) (Expr, error) {
	switch n := e.(type) {
	case Void, Closure, Array, Builtin:
		return e, nil

	case Return:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		return Return{Value: v}, nil

	case Constant:
		switch n.Atom.Kind {
		case AtomString:
			return in.interpolate(n, env)
		case AtomName:
			name := n.Atom.Text()
			v, ok := env.Get(name)
			if !ok {
				return nil, fault(NameError, "%s doesn't exist", name)
			}
			return v, nil
		}
		return e, nil

	case Let:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name, v)
		return Void{}, nil

	case Compare:
		return in.evalCompare(n, env)

	case If:
		cond, err := in.eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		c, ok := cond.(Constant)
		if !ok || c.Atom.Kind != AtomBoolean {
			return nil, fault(TypeError, "if condition must be a boolean, got %s", describe(cond))
		}
		branch := n.Then
		if !c.Atom.Boolean() {
			branch = n.Else
		}
		for _, stmt := range branch {
			if _, err := in.eval(stmt, env); err != nil {
				return nil, err
			}
		}
		return Void{}, nil

	case Call:
		return in.evalCall(n, env)

	case Function:
		env.Define(n.Name, Closure{Params: n.Params, Body: n.Body})
		return Void{}, nil

	case For:
		iterable, err := in.eval(n.Iterable, env)
		if err != nil {
			return nil, err
		}
		array, ok := iterable.(Array)
		if !ok {
			return nil, fault(NotIterableError, "cannot loop over %s", describe(iterable))
		}
		// One snapshot for the whole loop: bindings made in one iteration
		// carry into the next, but never escape to the enclosing scope.
		scope := env.Clone()
		for _, item := range array.Items {
			scope.Define(n.Var, item)
			for _, stmt := range n.Body {
				if _, err := in.eval(stmt, scope); err != nil {
					return nil, err
				}
			}
		}
		return Void{}, nil

	case Until:
		for {
			cond, err := in.eval(n.Cond, env)
			if err != nil {
				return nil, err
			}
			// Anything that is not exactly boolean true counts as "not yet".
			if c, ok := cond.(Constant); ok && c.Atom.Kind == AtomBoolean && c.Atom.Boolean() {
				return Void{}, nil
			}
			for _, stmt := range n.Body {
				if _, err := in.eval(stmt, env); err != nil {
					return nil, err
				}
			}
		}

	case Get:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, fault(NameError, "%s doesn't exist", n.Name)
		}
		array, ok := v.(Array)
		if !ok {
			return nil, fault(TypeError, "expected array, got %s", describe(v))
		}
		if n.Index < 0 || n.Index >= len(array.Items) {
			return nil, fault(IndexOutOfBoundsError, "index %d out of bounds for array of length %d", n.Index, len(array.Items))
		}
		return in.eval(array.Items[n.Index], env)

	case Binary:
		return in.evalBinary(n, env)

	case Include:
		lib, ok := includeLibraries[n.Name]
		if !ok {
			return nil, fault(UnknownLibraryError, "unknown library %q", n.Name)
		}
		lib(env)
		return Void{}, nil
	}

	return nil, fault(TypeError, "cannot evaluate %s", describe(e))
}

// interpolate resolves "{expr}" segments inside a string constant. Strings
// that split into at most one segment, and strings whose segments do not
// parse, come back untouched.
func (in *Interpreter) interpolate(c Constant, env *Env) (Expr, error) {
	text := c.Atom.Text()
	segs, ok := parseInterpolation(text)
	if !ok || len(segs) <= 1 {
		return c, nil
	}
	var out strings.Builder
	out.Grow(len(text))
	for _, seg := range segs {
		// Chase one level of indirection at a time until the value settles.
		for {
			next, err := in.eval(seg, env)
			if err != nil {
				return nil, err
			}
			if exprEqual(seg, next) {
				break
			}
			seg = next
		}
		out.WriteString(seg.String())
	}
	return Constant{Atom: Str(out.String())}, nil
}

func (in *Interpreter) evalCompare(n Compare, env *Env) (Expr, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	lc, lok := left.(Constant)
	rc, rok := right.(Constant)
	if !lok || !rok || lc.Atom.Kind != rc.Atom.Kind {
		return nil, fault(InvalidComparisonError, "cannot compare %s with %s", describe(left), describe(right))
	}
	switch lc.Atom.Kind {
	case AtomNumber:
		return compareOrdered(lc.Atom.Number(), rc.Atom.Number(), n.Op), nil
	case AtomFloat:
		return compareOrdered(lc.Atom.Float(), rc.Atom.Float(), n.Op), nil
	case AtomBoolean:
		if n.Op != Equal && n.Op != NotEqual {
			return nil, fault(InvalidComparisonError, "booleans only support == and !=")
		}
		return boolConst((lc.Atom.Boolean() == rc.Atom.Boolean()) == (n.Op == Equal)), nil
	case AtomString:
		if n.Op != Equal && n.Op != NotEqual {
			return nil, fault(InvalidComparisonError, "strings only support == and !=")
		}
		return boolConst((lc.Atom.Text() == rc.Atom.Text()) == (n.Op == Equal)), nil
	}
	return nil, fault(InvalidComparisonError, "cannot compare %s with %s", describe(left), describe(right))
}

func compareOrdered[T int64 | float64](left, right T, op Operator) Expr {
	var v bool
	switch op {
	case Equal:
		v = left == right
	case NotEqual:
		v = left != right
	case LessThan:
		v = left < right
	case LessThanEqual:
		v = left <= right
	case GreaterThan:
		v = left > right
	case GreaterThanEqual:
		v = left >= right
	}
	return boolConst(v)
}

func boolConst(v bool) Expr {
	return Constant{Atom: Boolean(v)}
}

func (in *Interpreter) evalCall(n Call, env *Env) (Expr, error) {
	args := make([]Expr, len(n.Args))
	for i, arg := range n.Args {
		v, err := in.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if bound, ok := env.Get(n.Name); ok {
		switch f := bound.(type) {
		case Builtin:
			return f.Fn(args, env)
		case Closure:
			scope := env.Clone()
			// Extra arguments are dropped; missing parameters stay unbound.
			for i := 0; i < len(f.Params) && i < len(args); i++ {
				scope.Define(f.Params[i], args[i])
			}
			for _, stmt := range f.Body {
				v, err := in.eval(stmt, scope)
				if err != nil {
					return nil, err
				}
				if r, ok := v.(Return); ok {
					return r.Value, nil
				}
			}
			return Void{}, nil
		}
		return nil, fault(UndefinedFunctionError, "%s is not a function", n.Name)
	}

	switch n.Name {
	case "println":
		for _, arg := range args {
			fmt.Fprint(in.Stdout, arg.String())
		}
		fmt.Fprintln(in.Stdout)
		return Void{}, nil
	case "input":
		if len(args) > 0 {
			fmt.Fprint(in.Stdout, args[0].String())
		}
		line, err := in.readLine()
		if err != nil && line == "" {
			return nil, fault(BuiltinError, "input: %v", err)
		}
		return Constant{Atom: Str(line)}, nil
	}
	return nil, fault(UndefinedFunctionError, "function %s doesn't exist", n.Name)
}

func (in *Interpreter) readLine() (string, error) {
	if in.stdin == nil {
		in.stdin = bufio.NewReader(in.Stdin)
	}
	line, err := in.stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		err = nil
	}
	return line, err
}

func (in *Interpreter) evalBinary(n Binary, env *Env) (Expr, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	lc, lok := left.(Constant)
	rc, rok := right.(Constant)
	if !lok || !rok || lc.Atom.Kind != rc.Atom.Kind {
		return nil, fault(TypeError, "cannot apply arithmetic to %s and %s", describe(left), describe(right))
	}
	switch lc.Atom.Kind {
	case AtomNumber:
		l, r := lc.Atom.Number(), rc.Atom.Number()
		switch n.Op {
		case Add:
			return Constant{Atom: Number(l + r)}, nil
		case Sub:
			return Constant{Atom: Number(l - r)}, nil
		case Mul:
			return Constant{Atom: Number(l * r)}, nil
		case Div:
			if r == 0 {
				return nil, fault(DivisionByZeroError, "division by zero")
			}
			return Constant{Atom: Number(l / r)}, nil
		}
	case AtomFloat:
		l, r := lc.Atom.Float(), rc.Atom.Float()
		switch n.Op {
		case Add:
			return Constant{Atom: Float(l + r)}, nil
		case Sub:
			return Constant{Atom: Float(l - r)}, nil
		case Mul:
			return Constant{Atom: Float(l * r)}, nil
		case Div:
			if r == 0 {
				return nil, fault(DivisionByZeroError, "division by zero")
			}
			return Constant{Atom: Float(l / r)}, nil
		}
	}
	return nil, fault(TypeError, "cannot apply arithmetic to %s and %s", describe(left), describe(right))
}
