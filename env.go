package mussel

import "maps"

// Env is one lexical scope: a flat name to value mapping. Scopes do not
// chain; entering a function call or a for loop takes a full snapshot via
// Clone, so mutations inside the new frame never reach the parent.
type Env struct {
	vars map[string]Expr
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]Expr)}
}

// Clone returns an independent snapshot of the current bindings.
func (e *Env) Clone() *Env {
	return &Env{vars: maps.Clone(e.vars)}
}

// Define binds name to value, overwriting any existing binding.
func (e *Env) Define(name string, value Expr) {
	e.vars[name] = value
}

// Get looks up a binding in this scope.
func (e *Env) Get(name string) (Expr, bool) {
	v, ok := e.vars[name]
	return v, ok
}
