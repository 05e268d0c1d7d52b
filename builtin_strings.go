package mussel

import (
	"strings"
	"unicode"
)

func loadString(env *Env) {
	register(env, "lowercase", stringLowercase)
	register(env, "uppercase", stringUppercase)
	register(env, "length", stringLength)
	register(env, "split", stringSplit)
	register(env, "reverse", stringReverse)
	register(env, "trim", stringTrim)
	register(env, "ltrim", stringLtrim)
	register(env, "rtrim", stringRtrim)
}

func stringOp(name string, fn func(string) string) BuiltinFunc {
	return func(args []Expr, _ *Env) (Expr, error) {
		if err := wantArity(name, args, 1); err != nil {
			return nil, err
		}
		s, err := stringArg(name, args[0])
		if err != nil {
			return nil, err
		}
		return Constant{Atom: Str(fn(s))}, nil
	}
}

var (
	stringLowercase = stringOp("lowercase", strings.ToLower)
	stringUppercase = stringOp("uppercase", strings.ToUpper)
	stringTrim      = stringOp("trim", strings.TrimSpace)
	stringLtrim     = stringOp("ltrim", func(s string) string {
		return strings.TrimLeftFunc(s, unicode.IsSpace)
	})
	stringRtrim = stringOp("rtrim", func(s string) string {
		return strings.TrimRightFunc(s, unicode.IsSpace)
	})
	stringReverse = stringOp("reverse", func(s string) string {
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes)
	})
)

// stringLength counts bytes, not runes.
func stringLength(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("length", args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg("length", args[0])
	if err != nil {
		return nil, err
	}
	return Constant{Atom: Number(int64(len(s)))}, nil
}

func stringSplit(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("split", args, 2); err != nil {
		return nil, err
	}
	s, err := stringArg("split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := stringArg("split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	items := make([]Expr, len(parts))
	for i, part := range parts {
		items[i] = Constant{Atom: Str(part)}
	}
	return Array{Items: items}, nil
}
