package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCapture(t *testing.T, path string, debug bool) (int, string, string) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	code := RunFile(path, Options{Debug: debug, Out: out, Err: errOut})
	return code, out.String(), errOut.String()
}

func TestRunFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "hello.susu", `"hello" -> println`)
	code, out, errOut := runCapture(t, path, false)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected program output, got %q", out)
	}
}

func TestRunFilePrintsResult(t *testing.T) {
	path := writeSource(t, t.TempDir(), "calc.susu", `5 -> add <- 3`)
	code, out, errOut := runCapture(t, path, false)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, "8") {
		t.Errorf("running a file should print the final result, got %q", out)
	}
}

func TestDebugPrintsResultType(t *testing.T) {
	path := writeSource(t, t.TempDir(), "calc.susu", `5 -> add <- 3`)
	code, out, _ := runCapture(t, path, true)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "8") {
		t.Errorf("debug mode should still print the result, got %q", out)
	}
	if !strings.Contains(out, "NUMBER") {
		t.Errorf("debug mode should print the result type, got %q", out)
	}
}

func TestParseErrorExitsNonZero(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.susu", `5 -> ]`)
	code, _, errOut := runCapture(t, path, false)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "Error:") {
		t.Errorf("expected formatted error, got %q", errOut)
	}
}

func TestRuntimeErrorExitsNonZero(t *testing.T) {
	path := writeSource(t, t.TempDir(), "boom.susu", `1 -> divide <- 0`)
	code, _, errOut := runCapture(t, path, false)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "Error:") {
		t.Errorf("expected formatted error, got %q", errOut)
	}
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := runCapture(t, filepath.Join(t.TempDir(), "nope.susu"), false)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "Error:") {
		t.Errorf("expected error output, got %q", errOut)
	}
}

func TestDirectoryEntryResolution(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app")
	if err := os.Mkdir(app, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, app, "main.susu", `"from main" -> println`)

	code, out, errOut := runCapture(t, app, false)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, "from main") {
		t.Errorf("expected entry file output, got %q", out)
	}
}

func TestUnknownOptionRejected(t *testing.T) {
	// Run parses flags before touching stdin, so a bad flag is safe here.
	if code := Run([]string{"--frobnicate"}); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestConfigSearchPathsApply(t *testing.T) {
	dir := t.TempDir()
	libs := filepath.Join(dir, "libs")
	if err := os.Mkdir(libs, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, libs, "mathx.susu", "double(x) { x -> multiply <- 2 }\ndouble -> export")
	writeSource(t, dir, "susumu.yaml", "searchPaths:\n  - "+libs+"\n")
	path := writeSource(t, dir, "main.susu", `
"mathx" -> import <- "double"
21 -> double -> println
`)

	code, out, errOut := runCapture(t, path, false)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("expected imported function output, got %q", out)
	}
}
