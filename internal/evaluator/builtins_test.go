package evaluator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMathBuiltins(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"2 -> power <- 10", 1024},
		{"16 -> sqrt", 4},
		{"-7 -> abs", 7},
		{"5 -> min <- 3 <- 8", 3},
		{"5 -> max <- 3 <- 8", 8},
		{"[1, 2, 3, 4] -> sum", 10},
		{"[2, 4, 6] -> average", 4},
		{"10 -> subtract", -10},
		{"2 -> multiply <- 3 <- 4", 24},
	}
	for _, tt := range tests {
		assertNumber(t, mustEval(t, tt.source), tt.want)
	}
}

func TestMathBuiltinErrors(t *testing.T) {
	sources := []string{
		`"x" -> add <- 1`,
		"-1 -> sqrt",
		"1 -> modulo <- 0",
		"[] -> average",
	}
	for _, source := range sources {
		if _, err := evalSource(t, source); err == nil {
			t.Errorf("%q: expected error", source)
		}
	}
}

func TestStringBuiltins(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`"hello" -> toUpper`, "HELLO"},
		{`"HELLO" -> toLower`, "hello"},
		{`"  padded  " -> trim`, "padded"},
		{`"hello" -> substring <- 1 <- 3`, "el"},
		{`"hello world" -> toTitleCase`, "Hello World"},
		{`"a" -> concat <- "b" <- "c"`, "abc"},
		{`["x", "y"] -> join <- "-"`, "x-y"},
	}
	for _, tt := range tests {
		assertString(t, mustEval(t, tt.source), tt.want)
	}
}

func TestSubstringIsRuneSafe(t *testing.T) {
	assertString(t, mustEval(t, `"héllo" -> substring <- 0 <- 2`), "hé")
	// Out-of-range indices clamp instead of failing.
	assertString(t, mustEval(t, `"ab" -> substring <- 0 <- 99`), "ab")
}

func TestLengthBuiltin(t *testing.T) {
	assertNumber(t, mustEval(t, `"héllo" -> length`), 5)
	assertNumber(t, mustEval(t, `[1, 2, 3] -> length`), 3)
	assertNumber(t, mustEval(t, `{ a: 1, b: 2 } -> length`), 2)
}

func TestSplitAndContains(t *testing.T) {
	arr := mustEval(t, `"a,b,c" -> split <- ","`).(*Array)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(arr.Elements))
	}
	if mustEval(t, `"hello" -> contains <- "ell"`) != TRUE {
		t.Error("substring containment failed")
	}
	if mustEval(t, `[1, 2] -> contains <- 3`) != FALSE {
		t.Error("array containment failed")
	}
}

func TestArrayBuiltins(t *testing.T) {
	assertNumber(t, mustEval(t, `[1, 2, 3] -> first`), 1)
	assertNumber(t, mustEval(t, `[1, 2, 3] -> last`), 3)
	assertNull(t, mustEval(t, `[] -> first`))
	assertNull(t, mustEval(t, `[] -> last`))

	rest := mustEval(t, `[1, 2, 3] -> rest`).(*Array)
	if len(rest.Elements) != 2 {
		t.Errorf("rest should drop the head, got %d elements", len(rest.Elements))
	}

	rev := mustEval(t, `[1, 2, 3] -> reverse`).(*Array)
	assertNumber(t, rev.Elements[0], 3)

	sorted := mustEval(t, `[3, 1, 2] -> sort`).(*Array)
	assertNumber(t, sorted.Elements[0], 1)
	assertNumber(t, sorted.Elements[2], 3)

	rng := mustEval(t, `1 -> range <- 4`).(*Array)
	if len(rng.Elements) != 3 {
		t.Errorf("range is half-open, got %d elements", len(rng.Elements))
	}
}

func TestPushIsNonDestructive(t *testing.T) {
	source := `
xs = [1, 2]
ys = xs -> push <- 3
xs -> length
`
	assertNumber(t, mustEval(t, source), 2)
}

func TestSortMixedTypesFails(t *testing.T) {
	if _, err := evalSource(t, `[1, "two"] -> sort`); err == nil {
		t.Fatal("expected mixed-type sort to fail")
	}
}

func TestMapFilterReduce(t *testing.T) {
	source := `
double(x) { x -> multiply <- 2 }

[1, 2, 3] -> map <- "double"
`
	mapped := mustEval(t, source).(*Array)
	assertNumber(t, mapped.Elements[2], 6)

	source = `
big(x) { x > 2 }

[1, 2, 3, 4] -> filter <- "big"
`
	filtered := mustEval(t, source).(*Array)
	if len(filtered.Elements) != 2 {
		t.Fatalf("expected 2 kept elements, got %d", len(filtered.Elements))
	}

	assertNumber(t, mustEval(t, `[1, 2, 3, 4] -> reduce <- "add" <- 0`), 10)
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		source string
		want   Object
	}{
		{`5 -> isNumber`, TRUE},
		{`"s" -> isString`, TRUE},
		{`true -> isBoolean`, TRUE},
		{`null -> isNull`, TRUE},
		{`[] -> isArray`, TRUE},
		{`{} -> isObject`, TRUE},
		{`"" -> isEmpty`, TRUE},
		{`[1] -> isEmpty`, FALSE},
		{`5 -> isString`, FALSE},
	}
	for _, tt := range tests {
		if got := mustEval(t, tt.source); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.source, tt.want.Inspect(), got.Inspect())
		}
	}
}

func TestTypeOf(t *testing.T) {
	assertString(t, mustEval(t, `5 -> typeOf`), "number")
	assertString(t, mustEval(t, `"s" -> typeOf`), "string")
	assertString(t, mustEval(t, `[] -> typeOf`), "array")
}

func TestConversions(t *testing.T) {
	assertString(t, mustEval(t, `42 -> toString`), "42")
	assertNumber(t, mustEval(t, `" 3.5 " -> toNumber`), 3.5)
	assertNumber(t, mustEval(t, `true -> toNumber`), 1)
	if _, err := evalSource(t, `"abc" -> toNumber`); err == nil {
		t.Error("expected conversion failure")
	}
}

func TestTaggedBuiltins(t *testing.T) {
	if mustEval(t, `some(1) -> isSome`) != TRUE {
		t.Error("isSome failed")
	}
	if mustEval(t, `none() -> isNone`) != TRUE {
		t.Error("isNone failed")
	}
	if mustEval(t, `success(1) -> isSuccess`) != TRUE {
		t.Error("isSuccess failed")
	}
	assertNumber(t, mustEval(t, `some(7) -> unwrap`), 7)
	assertNumber(t, mustEval(t, `none() -> unwrapOr <- 9`), 9)
	if _, err := evalSource(t, `none() -> unwrap`); err == nil {
		t.Error("unwrapping none must fail")
	}
}

func TestJsonRoundTrip(t *testing.T) {
	result := mustEval(t, `{ name: "ada", tags: ["a", "b"] } -> toJson -> parseJson`)
	obj, ok := result.(*ObjectValue)
	if !ok {
		t.Fatalf("expected object, got %T", result)
	}
	name, _ := obj.Get("name")
	assertString(t, name, "ada")
	tags, _ := obj.Get("tags")
	if arr, ok := tags.(*Array); !ok || len(arr.Elements) != 2 {
		t.Errorf("tags should survive the round trip, got %v", tags)
	}
}

func TestYamlParse(t *testing.T) {
	// String literals may span lines; the lexer keeps the raw newline.
	result := mustEval(t, "\"name: ada\ncount: 3\" -> parseYaml")
	obj, ok := result.(*ObjectValue)
	if !ok {
		t.Fatalf("expected object, got %T", result)
	}
	count, _ := obj.Get("count")
	assertNumber(t, count, 3)
}

func TestFileBuiltins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	ev := New()
	ev.Out = &bytes.Buffer{}
	program := parseSource(t, `"`+path+`" -> writeFile <- "line one"`)
	if _, err := ev.Execute(program); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "line one" {
		t.Errorf("unexpected file content %q", data)
	}

	ev2 := New()
	ev2.Out = &bytes.Buffer{}
	result, err := ev2.Execute(parseSource(t, `"`+path+`" -> readFile`))
	if err != nil {
		t.Fatalf("readFile failed: %v", err)
	}
	assertString(t, result, "line one")

	exists, err := ev2.Execute(parseSource(t, `"`+path+`" -> fileExists`))
	if err != nil || exists != TRUE {
		t.Errorf("fileExists should report true, got %v (%v)", exists, err)
	}
}

func TestTimeBuiltins(t *testing.T) {
	now := mustEval(t, `now()`)
	if _, ok := now.(*Number); !ok {
		t.Fatalf("now must return a number, got %T", now)
	}
	id := mustEval(t, `uuid()`)
	s, ok := id.(*String)
	if !ok || len(s.Value) != 36 {
		t.Errorf("expected uuid string, got %s", id.Inspect())
	}
	second := mustEval(t, `uuid()`)
	if s.Value == second.(*String).Value {
		t.Error("uuids must differ per call")
	}
}

func TestBuiltinArityErrors(t *testing.T) {
	sources := []string{
		`"only" -> substring`,
		`5 -> sqrt <- 6`,
		`[1] -> join`,
	}
	for _, source := range sources {
		_, err := evalSource(t, source)
		if err == nil {
			t.Errorf("%q: expected arity error", source)
			continue
		}
		if !strings.Contains(err.Error(), "expects") {
			t.Errorf("%q: unexpected message %q", source, err.Error())
		}
	}
}
