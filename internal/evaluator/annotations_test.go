package evaluator

import (
	"bytes"
	"strings"
	"testing"
)

func evalWithOutput(t *testing.T, source string) (Object, string) {
	t.Helper()
	ev := New()
	out := &bytes.Buffer{}
	ev.Out = out
	result, err := ev.Execute(parseSource(t, source))
	if err != nil {
		t.Fatalf("eval of %q failed: %v", source, err)
	}
	return result, out.String()
}

func TestTraceAnnotation(t *testing.T) {
	result, out := evalWithOutput(t, `@trace <- "calc" 5 -> add <- 3`)
	assertNumber(t, result, 8)

	if !strings.Contains(out, "TRACE [calc]") {
		t.Errorf("trace output missing label: %q", out)
	}
	if !strings.Contains(out, "run=") {
		t.Errorf("trace output missing run id: %q", out)
	}
	if !strings.Contains(out, "start") || !strings.Contains(out, "done in") {
		t.Errorf("trace should report start and completion: %q", out)
	}
}

func TestTracePerStep(t *testing.T) {
	result, out := evalWithOutput(t, `@trace <- "calc" 1 -> add <- 2 -> multiply <- 3`)
	assertNumber(t, result, 9)

	if !strings.Contains(out, "step 1 add -> 3") {
		t.Errorf("trace missing first step: %q", out)
	}
	if !strings.Contains(out, "step 2 multiply -> 9") {
		t.Errorf("trace missing second step: %q", out)
	}
}

func TestMonitorAnnotation(t *testing.T) {
	result, out := evalWithOutput(t, `@monitor <- ["latency", "throughput"] 2 -> multiply <- 3`)
	assertNumber(t, result, 6)

	if !strings.Contains(out, "MONITOR latency:") {
		t.Errorf("latency metric missing: %q", out)
	}
	if !strings.Contains(out, "MONITOR throughput: not tracked") {
		t.Errorf("unknown metrics should report as not tracked: %q", out)
	}
}

func TestConfigAnnotationIsInert(t *testing.T) {
	result, out := evalWithOutput(t, `@config <- { retries: 3 } 1 -> add <- 1`)
	assertNumber(t, result, 2)
	if out != "" {
		t.Errorf("config must produce no output, got %q", out)
	}
}

func TestDebugAnnotation(t *testing.T) {
	result, out := evalWithOutput(t, `@debug <- "step" 4 -> add <- 1`)
	assertNumber(t, result, 5)
	if !strings.Contains(out, "DEBUG [step]: 5") {
		t.Errorf("debug output missing: %q", out)
	}
}

func TestParallelMatchesSequentialResult(t *testing.T) {
	source := `
inc(x) { x -> add <- 1 }

@parallel 0 -> add <- inc(1) <- inc(2) <- inc(3) <- inc(4)
`
	result, _ := evalWithOutput(t, source)
	assertNumber(t, result, 14)
}

func TestParallelKeepsArgumentOrder(t *testing.T) {
	source := `@parallel "" -> concat <- "a" <- "b" <- "c"`
	result, _ := evalWithOutput(t, source)
	assertString(t, result, "abc")
}
