package evaluator

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/lexer"
	"github.com/susumulang/susumu/internal/parser"
	"github.com/susumulang/susumu/internal/pipeline"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := pipeline.New(lexer.NewLexerProcessor(), parser.NewParserProcessor()).
		Run(pipeline.NewPipelineContext(source))
	if ctx.HasErrors() {
		t.Fatalf("parse failed for %q: %s", source, ctx.Errors[0].Error())
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		t.Fatalf("pipeline did not produce a program for %q", source)
	}
	return program
}

func evalSource(t *testing.T, source string) (Object, error) {
	t.Helper()
	ev := New()
	ev.Out = &bytes.Buffer{}
	return ev.Execute(parseSource(t, source))
}

func mustEval(t *testing.T, source string) Object {
	t.Helper()
	result, err := evalSource(t, source)
	if err != nil {
		t.Fatalf("eval of %q failed: %v", source, err)
	}
	return result
}

func assertNumber(t *testing.T, obj Object, want float64) {
	t.Helper()
	num, ok := obj.(*Number)
	if !ok {
		t.Fatalf("expected number, got %T (%s)", obj, obj.Inspect())
	}
	if math.Abs(num.Value-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, num.Value)
	}
}

func assertString(t *testing.T, obj Object, want string) {
	t.Helper()
	str, ok := obj.(*String)
	if !ok {
		t.Fatalf("expected string, got %T (%s)", obj, obj.Inspect())
	}
	if str.Value != want {
		t.Fatalf("expected %q, got %q", want, str.Value)
	}
}

func assertNull(t *testing.T, obj Object) {
	t.Helper()
	if _, ok := obj.(*Null); !ok {
		t.Fatalf("expected null, got %T (%s)", obj, obj.Inspect())
	}
}

func TestArrowChainConvergence(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"5 -> add <- 3", 8},
		{"5 -> add <- 3 <- 2", 10},
		{"10 -> subtract <- 2 -> multiply <- 3 -> add <- 5", 29},
		{"1 -> add <- 2 -> multiply <- 10", 30},
		{"100 -> divide <- 4", 25},
		{"7 -> modulo <- 3", 1},
	}
	for _, tt := range tests {
		assertNumber(t, mustEval(t, tt.source), tt.want)
	}
}

func TestArrowChainIntoUserFunction(t *testing.T) {
	source := `
square(x) {
  x -> multiply <- x
}

5 -> square
`
	assertNumber(t, mustEval(t, source), 25)
}

func TestArrowChainMultilineContinuation(t *testing.T) {
	source := "10 -> add <- 5\n  -> multiply <- 2"
	assertNumber(t, mustEval(t, source), 30)
}

func TestBareBackwardArrowIsError(t *testing.T) {
	_, err := evalSource(t, "add <- 3")
	if err == nil {
		t.Fatal("expected runtime error for leading backward arrow")
	}

	_, err = evalSource(t, "5 <- add")
	if err == nil {
		t.Fatal("expected chain error for backward arrow without convergence")
	}
	if _, ok := err.(*ArrowChainError); !ok {
		t.Fatalf("expected *ArrowChainError, got %T", err)
	}
}

func TestUndefinedFunctionError(t *testing.T) {
	_, err := evalSource(t, "5 -> nosuchfn")
	if err == nil {
		t.Fatal("expected undefined function error")
	}
	undef, ok := err.(*UndefinedFunctionError)
	if !ok {
		t.Fatalf("expected *UndefinedFunctionError, got %T", err)
	}
	if undef.Name != "nosuchfn" {
		t.Errorf("error should name the function, got %q", undef.Name)
	}
}

func TestTypeMismatchError(t *testing.T) {
	_, err := evalSource(t, `"five" -> sqrt`)
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
	mismatch, ok := err.(*TypeMismatchError)
	if !ok {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if mismatch.Expected != NUMBER_OBJ || mismatch.Found != STRING_OBJ {
		t.Errorf("expected number/string mismatch, got %s/%s", mismatch.Expected, mismatch.Found)
	}
	if !strings.Contains(err.Error(), "must be a number") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestArityMismatchError(t *testing.T) {
	source := `
pair(a, b) { a -> add <- b }

1 -> pair
`
	_, err := evalSource(t, source)
	if err == nil {
		t.Fatal("expected arity error")
	}
}

func TestChainReplacesResultOnNonFunction(t *testing.T) {
	// Forward into a plain value replaces the running result.
	assertNumber(t, mustEval(t, `"ignored" -> 42`), 42)
}

func TestConditionalSuccess(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`"value" i success { "yes" } e { "no" }`, "yes"},
		{`null i success { "yes" } e { "no" }`, "no"},
		{`"" i empty { "empty" } e { "full" }`, "empty"},
		{`"x" i empty { "empty" } e { "full" }`, "full"},
		{`null i null { "nil" } e { "set" }`, "nil"},
		{`0 i truthy { "t" } e { "f" }`, "f"},
		{`1 i truthy { "t" } e { "f" }`, "t"},
	}
	for _, tt := range tests {
		assertString(t, mustEval(t, tt.source), tt.want)
	}
}

func TestConditionalWithoutElseIsNull(t *testing.T) {
	assertNull(t, mustEval(t, `null i success { "yes" }`))
}

func TestConditionalElseIfChain(t *testing.T) {
	source := `
classify(x) {
  x i empty { return <- "empty" }
  ei success { return <- "present" }
  e { return <- "missing" }
}

"hello" -> classify
`
	assertString(t, mustEval(t, source), "present")
}

func TestChainTailReturn(t *testing.T) {
	source := `
check(x) {
  x i success {
    "yes" -> return
  }
  "no"
}

"anything" -> check
`
	assertString(t, mustEval(t, source), "yes")
}

func TestReturnStopsAtCallBoundary(t *testing.T) {
	source := `
early(x) {
  return <- x
  "unreachable"
}

7 -> early -> add <- 1
`
	assertNumber(t, mustEval(t, source), 8)
}

func TestUserErrorPropagates(t *testing.T) {
	source := `
boom(x) {
  error <- "went wrong"
}

1 -> boom
`
	_, err := evalSource(t, source)
	userErr, ok := err.(*UserError)
	if !ok {
		t.Fatalf("expected *UserError, got %T: %v", err, err)
	}
	assertString(t, userErr.Value, "went wrong")
}

func TestMatchLiteralsAndWildcard(t *testing.T) {
	source := `
describe(n) {
  match n {
    0 -> "zero"
    1 -> "one"
    _ -> "many"
  }
}

2 -> describe
`
	assertString(t, mustEval(t, source), "many")
}

func TestMatchGuards(t *testing.T) {
	source := `
bucket(n) {
  match n {
    x when x < 10 -> "small"
    x when x < 100 -> "medium"
    _ -> "large"
  }
}

42 -> bucket
`
	assertString(t, mustEval(t, source), "medium")
}

func TestMatchBindsIdentifier(t *testing.T) {
	source := `
double(n) {
  match n {
    x -> x -> multiply <- 2
  }
}

21 -> double
`
	assertNumber(t, mustEval(t, source), 42)
}

func TestMatchScrutineeFromChain(t *testing.T) {
	source := `
5 -> match {
  5 -> "five"
  _ -> "other"
}
`
	assertString(t, mustEval(t, source), "five")
}

func TestMatchTaggedPatterns(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`some(5) -> match { some <- x -> "got" none -> "nothing" }`, "got"},
		{`none() -> match { some <- x -> "got" none -> "nothing" }`, "nothing"},
		{`success("ok") -> match { success <- v -> v error <- m -> m }`, "ok"},
		// Builtins surface failures as plain objects; matching accepts
		// that shape alongside tagged values.
		{`{ type: "error", value: "bad" } -> match { success <- v -> v error <- m -> m }`, "bad"},
	}
	for _, tt := range tests {
		assertString(t, mustEval(t, tt.source), tt.want)
	}
}

func TestMatchNoPatternIsError(t *testing.T) {
	_, err := evalSource(t, `match 5 { 1 -> "one" }`)
	if err == nil {
		t.Fatal("expected no-pattern-matched error")
	}
}

func TestMatchTuplePattern(t *testing.T) {
	source := `
swap(p) {
  match p {
    (a, b) -> (b, a)
  }
}

(1, 2) -> swap
`
	arr, ok := mustEval(t, source).(*Array)
	if !ok {
		t.Fatal("expected array result")
	}
	if len(arr.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr.Elements))
	}
	assertNumber(t, arr.Elements[0], 2)
	assertNumber(t, arr.Elements[1], 1)
}

func TestForEachCollectsResults(t *testing.T) {
	source := `fe x in [1, 2, 3] { x -> multiply <- 10 }`
	arr, ok := mustEval(t, source).(*Array)
	if !ok {
		t.Fatal("expected array result")
	}
	want := []float64{10, 20, 30}
	if len(arr.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(arr.Elements))
	}
	for i, w := range want {
		assertNumber(t, arr.Elements[i], w)
	}
}

func TestForEachOverNonArrayIsError(t *testing.T) {
	_, err := evalSource(t, `fe x in "abc" { x }`)
	if err == nil {
		t.Fatal("expected type error iterating a string")
	}
}

func TestWhileLoop(t *testing.T) {
	source := `
mut total = 0
mut n = 1
while n <= 4 {
  total = total -> add <- n
  n = n -> add <- 1
}
total
`
	assertNumber(t, mustEval(t, source), 10)
}

func TestImmutableAssignmentFails(t *testing.T) {
	_, err := evalSource(t, "x = 1\nx = 2")
	if err == nil {
		t.Fatal("expected immutable assignment error")
	}
	if !strings.Contains(err.Error(), "immutable") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestMutableAssignment(t *testing.T) {
	assertNumber(t, mustEval(t, "mut x = 1\nx = 5\nx"), 5)
}

func TestObjectLiteralAndPropertyAccess(t *testing.T) {
	source := `
p = { name: "ada", age: 36 }
p.name
`
	assertString(t, mustEval(t, source), "ada")
}

func TestPropertyAccessMissingFieldIsNull(t *testing.T) {
	assertNull(t, mustEval(t, `p = { a: 1 }
p.b`))
}

func TestObjectMutationRequiresMut(t *testing.T) {
	_, err := evalSource(t, `p = { a: 1 }
p.a = 2`)
	if err == nil {
		t.Fatal("expected mutation of immutable binding to fail")
	}

	assertNumber(t, mustEval(t, `mut p = { a: 1 }
p.a = 2
p.a`), 2)
}

func TestTaggedConstructors(t *testing.T) {
	obj := mustEval(t, `some(5)`)
	tagged, ok := obj.(*Tagged)
	if !ok {
		t.Fatalf("expected tagged value, got %T", obj)
	}
	if tagged.Tag != "some" {
		t.Errorf("expected tag some, got %s", tagged.Tag)
	}
	assertNumber(t, tagged.Value, 5)

	none := mustEval(t, `none()`)
	if tg, ok := none.(*Tagged); !ok || tg.Tag != "none" {
		t.Fatalf("expected none, got %s", none.Inspect())
	}

	// Constructors are also plain builtins reachable through a chain.
	viaChain := mustEval(t, `5 -> some`)
	if tg, ok := viaChain.(*Tagged); !ok || tg.Tag != "some" {
		t.Fatalf("expected some via chain, got %s", viaChain.Inspect())
	}
}

func TestTaggedPropertyAccess(t *testing.T) {
	assertString(t, mustEval(t, `r = success("done")
r.type`), "success")
	assertString(t, mustEval(t, `r = success("done")
r.value`), "done")
}

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		source string
		want   Object
	}{
		{"1 + 2", &Number{Value: 3}},
		{"10 - 4", &Number{Value: 6}},
		{"3 * 4", &Number{Value: 12}},
		{"9 / 3", &Number{Value: 3}},
		{"2 < 3", TRUE},
		{"2 > 3", FALSE},
		{"2 <= 2", TRUE},
		{"2 >= 3", FALSE},
		{"2 == 2", TRUE},
		{"2 != 2", FALSE},
		{`"a" == "a"`, TRUE},
		{`"a" + "b"`, &String{Value: "ab"}},
	}
	for _, tt := range tests {
		got := mustEval(t, tt.source)
		if !objectsEqual(got, tt.want) {
			t.Errorf("%q: expected %s, got %s", tt.source, tt.want.Inspect(), got.Inspect())
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	if _, err := evalSource(t, "1 / 0"); err == nil {
		t.Fatal("expected division by zero error")
	}
	if _, err := evalSource(t, "1 -> divide <- 0"); err == nil {
		t.Fatal("expected division by zero error from builtin")
	}
}

func TestUnaryMinus(t *testing.T) {
	assertNumber(t, mustEval(t, "-5 -> add <- 10"), 5)
}

func TestFunctionRedefinitionLastWins(t *testing.T) {
	source := `
f(x) { 1 }
f(x) { 2 }

0 -> f
`
	assertNumber(t, mustEval(t, source), 2)
}

func TestZeroArgMainRuns(t *testing.T) {
	source := `
main() {
  "ran"
}
`
	assertString(t, mustEval(t, source), "ran")
}

func TestScopeIsolationAcrossCalls(t *testing.T) {
	source := `
setLocal(x) {
  y = x
  y
}

1 -> setLocal
y
`
	_, err := evalSource(t, source)
	if err == nil {
		t.Fatal("function locals must not leak into the global scope")
	}
}

func TestPrintlnKeepsChainFlowing(t *testing.T) {
	ev := New()
	out := &bytes.Buffer{}
	ev.Out = out
	result, err := ev.Execute(parseSource(t, `5 -> println -> add <- 1`))
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	assertNumber(t, result, 6)
	if !strings.Contains(out.String(), "5") {
		t.Errorf("println output missing, got %q", out.String())
	}
}

func TestRecursionDepthGuard(t *testing.T) {
	source := `
loop(x) { x -> loop }

1 -> loop
`
	_, err := evalSource(t, source)
	if err == nil {
		t.Fatal("expected depth guard to trip")
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Errorf("unexpected error: %v", err)
	}
}
