// stdlib.go — the include registry.
//
// `include <name>` resolves here: each known library is a loader that drops a
// fixed set of Builtin bindings into the current environment. Builtins
// validate their own argument count and types and fail with a BuiltinError.
package mussel

// includeLibraries maps include names to their loaders.
var includeLibraries = map[string]func(*Env){
	"math":   loadMath,
	"string": loadString,
	"time":   loadTime,
	"os":     loadOS,
	"random": loadRandom,
}

func register(env *Env, name string, fn BuiltinFunc) {
	env.Define(name, Builtin{Name: name, Fn: fn})
}

// ───────────────────── argument helpers ─────────────────────

func wantArity(name string, args []Expr, n int) error {
	if len(args) != n {
		return fault(BuiltinError, "%s expects %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func stringArg(name string, arg Expr) (string, error) {
	if c, ok := arg.(Constant); ok && c.Atom.Kind == AtomString {
		return c.Atom.Text(), nil
	}
	return "", fault(BuiltinError, "%s expects a string argument, got %s", name, describe(arg))
}

func numberArg(name string, arg Expr) (int64, error) {
	if c, ok := arg.(Constant); ok && c.Atom.Kind == AtomNumber {
		return c.Atom.Number(), nil
	}
	return 0, fault(BuiltinError, "%s expects an integer argument, got %s", name, describe(arg))
}

// numericArg accepts a number or a float and widens to float64.
func numericArg(name string, arg Expr) (float64, error) {
	if c, ok := arg.(Constant); ok {
		switch c.Atom.Kind {
		case AtomNumber:
			return float64(c.Atom.Number()), nil
		case AtomFloat:
			return c.Atom.Float(), nil
		}
	}
	return 0, fault(BuiltinError, "%s expects a numeric argument, got %s", name, describe(arg))
}
