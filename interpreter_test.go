package mussel

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func compile(t *testing.T, src string) []Expr {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex error: %v\nsource:\n%s", err, src)
	}
	unit, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	exprs, err := Lower(src, unit)
	if err != nil {
		t.Fatalf("Lower error: %v\nsource:\n%s", err, src)
	}
	return exprs
}

// runSrc executes a program and returns everything it printed.
func runSrc(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	ip := NewInterpreter()
	ip.Stdout = &out
	if err := ip.Run(compile(t, src)); err != nil {
		t.Fatalf("run error: %v\nsource:\n%s", err, src)
	}
	return out.String()
}

// runFault executes a program expected to fail and returns the fault.
func runFault(t *testing.T, src string) *RuntimeError {
	t.Helper()
	ip := NewInterpreter()
	ip.Stdout = &bytes.Buffer{}
	err := ip.Run(compile(t, src))
	if err == nil {
		t.Fatalf("run succeeded, want fault\nsource:\n%s", src)
	}
	var fault *RuntimeError
	if !errors.As(err, &fault) {
		t.Fatalf("want *RuntimeError, got %v", err)
	}
	return fault
}

func wantOutput(t *testing.T, src, want string) {
	t.Helper()
	if got := runSrc(t, src); got != want {
		t.Fatalf("output = %q, want %q\nsource:\n%s", got, want, src)
	}
}

func wantFault(t *testing.T, src string, kind FaultKind) {
	t.Helper()
	if f := runFault(t, src); f.Kind != kind {
		t.Fatalf("fault kind = %v, want %v (%s)", f.Kind, kind, f.Msg)
	}
}

// --- arithmetic and comparison ---------------------------------------------

func Test_Interpreter_Precedence_Evaluates(t *testing.T) {
	wantOutput(t, "println(1 + 2 * 3)", "7\n")
	wantOutput(t, "println((1 + 2) * 3)", "9\n")
}

func Test_Interpreter_Float_Arithmetic_And_Rendering(t *testing.T) {
	wantOutput(t, "println(1.5 + 2.25)", "3.75\n")
	wantOutput(t, "println(10.0 / 4.0)", "2.5\n")
}

func Test_Interpreter_Integer_Division_Truncates(t *testing.T) {
	wantOutput(t, "println(7 / 2)", "3\n")
}

func Test_Interpreter_Division_By_Zero(t *testing.T) {
	wantFault(t, "println(5 / 0)", DivisionByZeroError)
	wantFault(t, "println(5.0 / 0.0)", DivisionByZeroError)
}

func Test_Interpreter_Mixed_Arithmetic_Is_TypeError(t *testing.T) {
	wantFault(t, "println(1 + 2.0)", TypeError)
	wantFault(t, `println("a" + "b")`, TypeError)
}

func Test_Interpreter_Comparisons(t *testing.T) {
	wantOutput(t, "println(1 < 2)", "true\n")
	wantOutput(t, "println(2.5 >= 2.5)", "true\n")
	wantOutput(t, "println(true == false)", "false\n")
	wantOutput(t, `println("a" != "b")`, "true\n")
}

func Test_Interpreter_Invalid_Comparisons(t *testing.T) {
	wantFault(t, `println("a" < "b")`, InvalidComparisonError)
	wantFault(t, "println(true > false)", InvalidComparisonError)
	wantFault(t, `println(1 == "1")`, InvalidComparisonError)
}

// --- bindings and scope ----------------------------------------------------

func Test_Interpreter_Let_Binds_And_Rebinds(t *testing.T) {
	wantOutput(t, "let x = 1 let x = x + 1 println(x)", "2\n")
}

func Test_Interpreter_Unbound_Name_Is_NameError(t *testing.T) {
	wantFault(t, "println(ghost)", NameError)
}

func Test_Interpreter_Callee_Bindings_Stay_Local(t *testing.T) {
	src := `
let x = 1
fn f() {
    let x = 99
}
f()
println(x)
`
	wantOutput(t, src, "1\n")
}

func Test_Interpreter_Closure_Reads_Enclosing_Scope(t *testing.T) {
	src := `
let base = 10
fn bump(n) {
    return base + n
}
println(bump(5))
`
	wantOutput(t, src, "15\n")
}

// --- functions and calls ---------------------------------------------------

func Test_Interpreter_Function_Call_End_To_End(t *testing.T) {
	wantOutput(t, "fn add(a, b) { return a + b }  println(add(2, 3))", "5\n")
}

func Test_Interpreter_Call_Without_Return_Is_Void(t *testing.T) {
	wantOutput(t, "fn noop() { let x = 1 }  println(noop())", "\n")
}

func Test_Interpreter_Extra_Arguments_Are_Dropped(t *testing.T) {
	wantOutput(t, "fn first(a) { return a }  println(first(1, 2, 3))", "1\n")
}

func Test_Interpreter_Return_Short_Circuits_Body(t *testing.T) {
	src := `
fn f() {
    return 1
    println(2)
}
println(f())
`
	wantOutput(t, src, "1\n")
}

func Test_Interpreter_TopLevel_Return_Is_Inert(t *testing.T) {
	wantOutput(t, "return 5 println(1)", "1\n")
}

func Test_Interpreter_Undefined_Function(t *testing.T) {
	wantFault(t, "nope()", UndefinedFunctionError)
}

func Test_Interpreter_Calling_Non_Function_Binding(t *testing.T) {
	wantFault(t, "let x = 1 x()", UndefinedFunctionError)
}

func Test_Interpreter_Binding_Shadows_Println(t *testing.T) {
	wantOutput(t, "fn println(a) { }  println(42)", "")
}

// --- control flow ----------------------------------------------------------

func Test_Interpreter_If_Selects_Branch(t *testing.T) {
	wantOutput(t, `if 1 < 2 { println("yes") } else { println("no") }`, "yes\n")
	wantOutput(t, `if 1 > 2 { println("yes") } else { println("no") }`, "no\n")
	wantOutput(t, `if 1 > 2 { println("yes") }`, "")
}

func Test_Interpreter_If_NonBoolean_Condition(t *testing.T) {
	wantFault(t, "if 1 { }", TypeError)
}

func Test_Interpreter_For_Iterates_In_Order(t *testing.T) {
	wantOutput(t, "for i in [1, 2, 3] { println(i) }", "1\n2\n3\n")
}

func Test_Interpreter_For_Over_NonArray(t *testing.T) {
	wantFault(t, "for i in 5 { }", NotIterableError)
}

func Test_Interpreter_For_Scope_Does_Not_Leak(t *testing.T) {
	wantFault(t, "for i in [1] { }  println(i)", NameError)
}

func Test_Interpreter_Until_True_Runs_Zero_Iterations(t *testing.T) {
	wantOutput(t, `until true { println("never") }`, "")
}

func Test_Interpreter_Until_Counts_In_Outer_Scope(t *testing.T) {
	src := `
let i = 0
until i == 3 {
    println(i)
    let i = i + 1
}
println(i)
`
	wantOutput(t, src, "0\n1\n2\n3\n")
}

// --- arrays ----------------------------------------------------------------

func Test_Interpreter_Array_Indexing(t *testing.T) {
	wantOutput(t, "let xs = [10, 20, 30] println(xs[1])", "20\n")
}

func Test_Interpreter_Array_Elements_Resolve_Lazily(t *testing.T) {
	src := `
let xs = [hidden]
let hidden = 7
println(xs[0])
`
	wantOutput(t, src, "7\n")
}

func Test_Interpreter_Index_Out_Of_Bounds(t *testing.T) {
	wantFault(t, "let xs = [1] println(xs[3])", IndexOutOfBoundsError)
}

func Test_Interpreter_Index_Into_NonArray(t *testing.T) {
	wantFault(t, "let x = 1 println(x[0])", TypeError)
}

func Test_Interpreter_Array_Printing(t *testing.T) {
	wantOutput(t, `println([1, 2.5, "x"])`, "[1, 2.5, x]\n")
}

// --- println and input -----------------------------------------------------

func Test_Interpreter_Println_Joins_Arguments(t *testing.T) {
	wantOutput(t, `println("a", 1, true)`, "a1true\n")
	wantOutput(t, "println()", "\n")
}

func Test_Interpreter_Input_Reads_A_Line(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter()
	ip.Stdout = &out
	ip.Stdin = strings.NewReader("world\n")
	if err := ip.Run(compile(t, `let name = input("who? ") println("hi {name}!")`)); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := out.String(); got != "who? hi world!\n" {
		t.Fatalf("output = %q", got)
	}
}

// --- string interpolation --------------------------------------------------

func Test_Interpreter_Interpolation_Substitutes(t *testing.T) {
	wantOutput(t, `let x = 5 println("x is {x}!")`, "x is 5!\n")
	wantOutput(t, `println("sum: {1 + 2}{3}")`, "sum: 33\n")
}

func Test_Interpreter_Interpolation_Single_Span_Unchanged(t *testing.T) {
	// One segment total, whether text or expression, stays byte-for-byte.
	wantOutput(t, `println("plain text")`, "plain text\n")
	wantOutput(t, `let x = 5 println("{x}")`, "{x}\n")
}

func Test_Interpreter_Interpolation_Malformed_Unchanged(t *testing.T) {
	wantOutput(t, `println("open {brace")`, "open {brace\n")
	wantOutput(t, `println("a {} b")`, "a {} b\n")
	wantOutput(t, `println("a {let} b")`, "a {let} b\n")
}

func Test_Interpreter_Interpolation_Fixed_Point_Indirection(t *testing.T) {
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Stdout = &out
	ip.env.Define("target", Constant{Atom: Number(7)})
	ip.env.Define("alias", Constant{Atom: Name("target")})
	v, err := ip.Eval(Constant{Atom: Str("value {alias}!")})
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	c, ok := v.(Constant)
	if !ok || c.Atom.Kind != AtomString {
		t.Fatalf("want string constant, got %#v", v)
	}
	if got := c.Atom.Text(); got != "value 7!" {
		t.Fatalf("interpolated = %q, want %q", got, "value 7!")
	}
}

func Test_Interpreter_Interpolation_Error_Propagates(t *testing.T) {
	wantFault(t, `println("a {ghost} b")`, NameError)
}

// --- include ---------------------------------------------------------------

func Test_Interpreter_Include_Unknown_Library(t *testing.T) {
	wantFault(t, "include nothing", UnknownLibraryError)
}

func Test_Interpreter_Include_Binds_Builtins(t *testing.T) {
	wantOutput(t, "include math println(abs(-4))", "4\n")
}
