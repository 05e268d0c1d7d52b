package mussel

import "time"

func loadTime(env *Env) {
	register(env, "time_ms", timeMs)
	register(env, "time_sec", timeSec)
}

// timeMs returns milliseconds since the Unix epoch as a number.
func timeMs(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("time_ms", args, 0); err != nil {
		return nil, err
	}
	return Constant{Atom: Number(time.Now().UnixMilli())}, nil
}

// timeSec returns seconds since the Unix epoch as a float, fraction included.
func timeSec(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("time_sec", args, 0); err != nil {
		return nil, err
	}
	return Constant{Atom: Float(float64(time.Now().UnixNano()) / float64(time.Second))}, nil
}
