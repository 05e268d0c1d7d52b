package mussel

import (
	"errors"
	"reflect"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func lowerOK(t *testing.T, src string) []Expr {
	t.Helper()
	exprs, err := Lower(src, parseOK(t, src))
	if err != nil {
		t.Fatalf("Lower(%q) error: %v", src, err)
	}
	return exprs
}

func lowerOne(t *testing.T, src string) Expr {
	t.Helper()
	exprs := lowerOK(t, src)
	if len(exprs) != 1 {
		t.Fatalf("Lower(%q) produced %d expressions, want 1", src, len(exprs))
	}
	return exprs[0]
}

func lowerErrKind(t *testing.T, src string) LowerErrorKind {
	t.Helper()
	_, err := Lower(src, parseOK(t, src))
	var lerr *LowerError
	if !errors.As(err, &lerr) {
		t.Fatalf("Lower(%q): want LowerError, got %v", src, err)
	}
	return lerr.Kind
}

func wantExpr(t *testing.T, src string, want Expr) {
	t.Helper()
	got := lowerOne(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lower(%q) = %#v, want %#v", src, got, want)
	}
}

// --- literals --------------------------------------------------------------

func Test_Lower_Literals(t *testing.T) {
	wantExpr(t, "42", Constant{Atom: Number(42)})
	wantExpr(t, "-17", Constant{Atom: Number(-17)})
	wantExpr(t, "2.5", Constant{Atom: Float(2.5)})
	wantExpr(t, "true", Constant{Atom: Boolean(true)})
	wantExpr(t, "false", Constant{Atom: Boolean(false)})
	wantExpr(t, "x", Constant{Atom: Name("x")})
}

func Test_Lower_String_Strips_Quotes(t *testing.T) {
	wantExpr(t, `"hello"`, Constant{Atom: Str("hello")})
	wantExpr(t, `""`, Constant{Atom: Str("")})
}

func Test_Lower_Integer_Overflow(t *testing.T) {
	if kind := lowerErrKind(t, "99999999999999999999999999"); kind != InvalidIntegerLiteral {
		t.Fatalf("kind = %v, want InvalidIntegerLiteral", kind)
	}
}

// --- structures ------------------------------------------------------------

func Test_Lower_Array_And_Nesting(t *testing.T) {
	wantExpr(t, "[1, x]", Array{Items: []Expr{
		Constant{Atom: Number(1)},
		Constant{Atom: Name("x")},
	}})
}

func Test_Lower_Let_And_Function(t *testing.T) {
	wantExpr(t, "let x = 1", Let{Name: "x", Value: Constant{Atom: Number(1)}})
	wantExpr(t, "fn id(a) { return a }", Function{
		Name:   "id",
		Params: []string{"a"},
		Body:   []Expr{Return{Value: Constant{Atom: Name("a")}}},
	})
}

func Test_Lower_Arithmetic_And_Comparison_Split(t *testing.T) {
	wantExpr(t, "1 + 2", Binary{Left: Constant{Atom: Number(1)}, Op: Add, Right: Constant{Atom: Number(2)}})
	wantExpr(t, "1 < 2", Compare{Left: Constant{Atom: Number(1)}, Op: LessThan, Right: Constant{Atom: Number(2)}})
	wantExpr(t, "1 != 2", Compare{Left: Constant{Atom: Number(1)}, Op: NotEqual, Right: Constant{Atom: Number(2)}})
}

func Test_Lower_Call_And_Index(t *testing.T) {
	wantExpr(t, "f(1, x)", Call{Name: "f", Args: []Expr{
		Constant{Atom: Number(1)},
		Constant{Atom: Name("x")},
	}})
	wantExpr(t, "xs[2]", Get{Name: "xs", Index: 2})
}

func Test_Lower_Include_For_Until_If(t *testing.T) {
	wantExpr(t, "include math", Include{Name: "math"})
	wantExpr(t, "until true { }", Until{Cond: Constant{Atom: Boolean(true)}, Body: []Expr{}})
	wantExpr(t, "for i in xs { }", For{Var: "i", Iterable: Constant{Atom: Name("xs")}, Body: []Expr{}})

	node := lowerOne(t, "if a { } else { let x = 1 }").(If)
	if node.Else == nil {
		t.Fatal("else branch should survive lowering")
	}
}

// --- rejections ------------------------------------------------------------

func Test_Lower_Rejects_Unsupported_Constructs(t *testing.T) {
	cases := []string{
		"not x",        // unary not
		"- x",          // unary negation
		"x = 1",        // bare assignment
		"a and b",      // boolean connective
		"a or b",       // boolean connective
		"f(1)(2)",      // indirect call target
		"xs[0](1)",     // call through an index
		"f()[0]",       // index through a call
		"xs[i]",        // dynamic index
		"xs[1 + 1]",    // computed index
	}
	for _, src := range cases {
		if kind := lowerErrKind(t, src); kind != UnsupportedOperation {
			t.Fatalf("Lower(%q) kind = %v, want UnsupportedOperation", src, kind)
		}
	}
}
