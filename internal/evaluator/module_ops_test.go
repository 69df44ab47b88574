package evaluator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func moduleEvaluator(t *testing.T, files map[string]string) *Evaluator {
	t.Helper()
	dir := t.TempDir()
	for name, source := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644); err != nil {
			t.Fatalf("writing module: %v", err)
		}
	}
	ev := New()
	ev.Out = &bytes.Buffer{}
	ev.Loader.RegisterSearchPath(dir)
	return ev
}

const geometryModule = `
area(w, h) {
  w -> multiply <- h
}

perimeter(w, h) {
  w -> add <- h -> multiply <- 2
}

hidden(x) {
  x
}

(area, perimeter) -> export
`

func TestFromReturnsModuleReference(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	result, err := ev.Execute(parseSource(t, `"geometry" -> from`))
	if err != nil {
		t.Fatalf("from failed: %v", err)
	}
	ref, ok := result.(*ObjectValue)
	if !ok {
		t.Fatalf("expected module reference object, got %T", result)
	}
	typ, _ := ref.Get("type")
	assertString(t, typ, "module_reference")
	exports, _ := ref.Get("exports")
	if arr, ok := exports.(*Array); !ok || len(arr.Elements) != 2 {
		t.Errorf("expected 2 exports, got %v", exports)
	}
}

func TestImportByName(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	source := `
"geometry" -> import <- "area"
area(3, 4)
`
	result, err := ev.Execute(parseSource(t, source))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	assertNumber(t, result, 12)
}

func TestImportNameList(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	source := `
"geometry" -> import <- ["area", "perimeter"]
perimeter(3, 4)
`
	result, err := ev.Execute(parseSource(t, source))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	assertNumber(t, result, 14)
}

func TestImportThroughReference(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	source := `
ref = "geometry" -> from
ref -> import <- "area"
area(2, 5)
`
	result, err := ev.Execute(parseSource(t, source))
	if err != nil {
		t.Fatalf("import via reference failed: %v", err)
	}
	assertNumber(t, result, 10)
}

func TestImportUnexportedFails(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	_, err := ev.Execute(parseSource(t, `"geometry" -> import <- "hidden"`))
	if err == nil {
		t.Fatal("expected unexported import to fail")
	}
	if !strings.Contains(err.Error(), "not exported") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestImportMissingFunctionFails(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	_, err := ev.Execute(parseSource(t, `"geometry" -> import <- "volume"`))
	if err == nil {
		t.Fatal("expected missing import to fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestModuleLoadedOncePerEvaluator(t *testing.T) {
	ev := moduleEvaluator(t, map[string]string{"geometry.susu": geometryModule})

	source := `
"geometry" -> import <- "area"
"geometry" -> import <- "perimeter"
`
	if _, err := ev.Execute(parseSource(t, source)); err != nil {
		t.Fatalf("imports failed: %v", err)
	}
	if ev.Loader.LoadCount() != 1 {
		t.Errorf("expected a single disk load, got %d", ev.Loader.LoadCount())
	}
}
