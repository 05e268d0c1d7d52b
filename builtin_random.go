package mussel

import "math/rand"

func loadRandom(env *Env) {
	register(env, "rand", randomRand)
}

// randomRand returns a random integer in [min, max], bounds inclusive.
func randomRand(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("rand", args, 2); err != nil {
		return nil, err
	}
	min, err := numberArg("rand", args[0])
	if err != nil {
		return nil, err
	}
	max, err := numberArg("rand", args[1])
	if err != nil {
		return nil, err
	}
	if max < min {
		return nil, fault(BuiltinError, "rand: max %d is below min %d", max, min)
	}
	// The draw width max-min+1 does not fit in int64 for extreme bounds, so
	// the arithmetic runs in uint64. A width of zero means the bounds span
	// the whole int64 range.
	width := uint64(max) - uint64(min) + 1
	if width == 0 {
		return Constant{Atom: Number(int64(rand.Uint64()))}, nil
	}
	return Constant{Atom: Number(min + int64(rand.Uint64()%width))}, nil
}
