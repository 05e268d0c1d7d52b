package mussel

import "os"

func loadOS(env *Env) {
	register(env, "getcwd", osGetcwd)
	register(env, "listdir", osListdir)
	register(env, "exists", osExists)
}

func osGetcwd(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("getcwd", args, 0); err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fault(BuiltinError, "getcwd: %v", err)
	}
	return Constant{Atom: Str(cwd)}, nil
}

// osListdir returns the entry names of a directory, in directory order.
func osListdir(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("listdir", args, 1); err != nil {
		return nil, err
	}
	path, err := stringArg("listdir", args[0])
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fault(BuiltinError, "cannot read directory %s", path)
	}
	items := make([]Expr, len(entries))
	for i, entry := range entries {
		items[i] = Constant{Atom: Str(entry.Name())}
	}
	return Array{Items: items}, nil
}

func osExists(args []Expr, _ *Env) (Expr, error) {
	if err := wantArity("exists", args, 1); err != nil {
		return nil, err
	}
	path, err := stringArg("exists", args[0])
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)
	return Constant{Atom: Boolean(statErr == nil)}, nil
}
