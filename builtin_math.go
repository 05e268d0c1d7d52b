package mussel

import "math"

func loadMath(env *Env) {
	register(env, "abs", mathAbs)
	register(env, "sqrt", mathSqrt)
	register(env, "pow", mathPow)
}

// mathAbs preserves the kind of its argument: abs of a number is a number,
// abs of a float is a float.
func mathAbs(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("abs", args, 1); err != nil {
		return nil, err
	}
	if c, ok := args[0].(Constant); ok {
		switch c.Atom.Kind {
		case AtomNumber:
			n := c.Atom.Number()
			if n < 0 {
				n = -n
			}
			return Constant{Atom: Number(n)}, nil
		case AtomFloat:
			return Constant{Atom: Float(math.Abs(c.Atom.Float()))}, nil
		}
	}
	return nil, fault(BuiltinError, "abs expects a numeric argument, got %s", describe(args[0]))
}

func mathSqrt(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("sqrt", args, 1); err != nil {
		return nil, err
	}
	v, err := numericArg("sqrt", args[0])
	if err != nil {
		return nil, err
	}
	return Constant{Atom: Float(math.Sqrt(v))}, nil
}

func mathPow(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("pow", args, 2); err != nil {
		return nil, err
	}
	base, err := numericArg("pow", args[0])
	if err != nil {
		return nil, err
	}
	exponent, err := numericArg("pow", args[1])
	if err != nil {
		return nil, err
	}
	return Constant{Atom: Float(math.Pow(base, exponent))}, nil
}
