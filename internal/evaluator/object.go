package evaluator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/susumulang/susumu/internal/ast"
)

// ObjectType identifies the runtime kind of a value.
type ObjectType string

const (
	NULL_OBJ     ObjectType = "NULL"
	BOOLEAN_OBJ  ObjectType = "BOOLEAN"
	NUMBER_OBJ   ObjectType = "NUMBER"
	STRING_OBJ   ObjectType = "STRING"
	ARRAY_OBJ    ObjectType = "ARRAY"
	OBJECT_OBJ   ObjectType = "OBJECT"
	FUNCTION_OBJ ObjectType = "FUNCTION"
	BUILTIN_OBJ  ObjectType = "BUILTIN"
	TAGGED_OBJ   ObjectType = "TAGGED"
)

// Object is the interface all runtime values implement.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

// Number is the single numeric type. Whole values print without a
// decimal point.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string {
	if n.Value == float64(int64(n.Value)) {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = inspectQuoted(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectValue is a key/value record. Pairs keeps insertion order for
// display; lookup goes through the map.
type ObjectValue struct {
	Pairs map[string]Object
	Keys  []string
}

func NewObjectValue() *ObjectValue {
	return &ObjectValue{Pairs: map[string]Object{}}
}

func (o *ObjectValue) Set(key string, value Object) {
	if _, exists := o.Pairs[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Pairs[key] = value
}

func (o *ObjectValue) Get(key string) (Object, bool) {
	v, ok := o.Pairs[key]
	return v, ok
}

func (o *ObjectValue) Type() ObjectType { return OBJECT_OBJ }
func (o *ObjectValue) Inspect() string {
	keys := o.Keys
	if len(keys) != len(o.Pairs) {
		keys = make([]string, 0, len(o.Pairs))
		for k := range o.Pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + inspectQuoted(o.Pairs[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Tagged carries a constructor label (some, none, success, error) and
// its payload. none carries NULL.
type Tagged struct {
	Tag   string
	Value Object
}

func (t *Tagged) Type() ObjectType { return TAGGED_OBJ }
func (t *Tagged) Inspect() string {
	if t.Tag == "none" {
		return "none"
	}
	return fmt.Sprintf("%s(%s)", t.Tag, inspectQuoted(t.Value))
}

// Function is a user-defined function closed over its defining
// environment.
type Function struct {
	Name   string
	Params []string
	Body   ast.Expression
	Env    *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("function %s(%s)", f.Name, strings.Join(f.Params, ", "))
}

// BuiltinFn is the signature of a native function. Convergent builtins
// accept more arguments than their declared arity.
type BuiltinFn func(ev *Evaluator, args []Object) (Object, error)

type Builtin struct {
	Name       string
	Arity      int
	Convergent bool
	Fn         BuiltinFn
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

// inspectQuoted renders strings with quotes when nested inside
// containers; Inspect on a bare String stays unquoted.
func inspectQuoted(o Object) string {
	if s, ok := o.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return o.Inspect()
}
