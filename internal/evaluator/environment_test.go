package evaluator

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &Number{Value: 1})

	v, ok := env.Get("x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	assertNumber(t, v, 1)

	if _, ok := env.Get("y"); ok {
		t.Error("undefined name must not resolve")
	}
}

func TestEnclosedEnvironmentLookup(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(outer)
	inner.Define("y", &Number{Value: 2})

	if _, ok := inner.Get("x"); !ok {
		t.Error("inner scope should see outer bindings")
	}
	if _, ok := outer.Get("y"); ok {
		t.Error("outer scope must not see inner bindings")
	}
}

func TestShadowingStaysLocal(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", &Number{Value: 99})

	v, _ := outer.Get("x")
	assertNumber(t, v, 1)
	v, _ = inner.Get("x")
	assertNumber(t, v, 99)
}

func TestUpdateRespectsMutability(t *testing.T) {
	env := NewEnvironment()
	env.Define("frozen", &Number{Value: 1})
	env.DefineMutable("counter", &Number{Value: 0})

	if env.Update("frozen", &Number{Value: 2}) {
		t.Error("immutable bindings must not update")
	}
	if !env.Update("counter", &Number{Value: 5}) {
		t.Fatal("mutable binding should update")
	}
	v, _ := env.Get("counter")
	assertNumber(t, v, 5)

	if env.Update("ghost", &Number{Value: 1}) {
		t.Error("unbound names must not update")
	}
}

func TestUpdateWritesDefiningScope(t *testing.T) {
	outer := NewEnvironment()
	outer.DefineMutable("n", &Number{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	if !inner.Update("n", &Number{Value: 2}) {
		t.Fatal("update should reach the defining scope")
	}
	v, _ := outer.Get("n")
	assertNumber(t, v, 2)
	if _, ok := inner.store["n"]; ok {
		t.Error("update must not create a shadow binding")
	}
}

func TestFunctionTable(t *testing.T) {
	env := NewEnvironment()
	fn := &Function{Name: "f", Params: []string{"x"}}
	env.DefineFunction(fn)

	got, ok := env.GetFunction("f")
	if !ok || got != fn {
		t.Fatal("expected function to resolve")
	}

	inner := NewEnclosedEnvironment(env)
	if _, ok := inner.GetFunction("f"); !ok {
		t.Error("inner scope should see outer functions")
	}

	// Redefinition replaces the earlier entry.
	replacement := &Function{Name: "f", Params: nil}
	env.DefineFunction(replacement)
	got, _ = env.GetFunction("f")
	if got != replacement {
		t.Error("last definition wins")
	}
}
