package typesystem

import (
	"fmt"
	"strings"
)

// Type is the structural type of a value or function. Types are immutable
// and compared structurally.
type Type interface {
	String() string
	typeNode()
}

type Primitive int

const (
	Number Primitive = iota
	String
	Boolean
	Null
)

func (p Primitive) typeNode() {}
func (p Primitive) String() string {
	switch p {
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	default:
		return "null"
	}
}

// Unknown is the bidirectional escape hatch: assignable to and from
// every type. Inference returns it instead of failing.
type UnknownType struct{}

func (u UnknownType) typeNode()      {}
func (u UnknownType) String() string { return "unknown" }

var Unknown = UnknownType{}

type ArrayType struct {
	Elem Type
}

func (a ArrayType) typeNode()      {}
func (a ArrayType) String() string { return fmt.Sprintf("array of %s", a.Elem) }

type TupleType struct {
	Elems []Type
}

func (t TupleType) typeNode() {}
func (t TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "tuple (" + strings.Join(parts, ", ") + ")"
}

type Field struct {
	Name string
	Type Type
}

type ObjectType struct {
	Fields []Field
}

func (o ObjectType) typeNode() {}
func (o ObjectType) String() string {
	if len(o.Fields) == 0 {
		return "object"
	}
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return "object { " + strings.Join(parts, ", ") + " }"
}

// FuncType carries convergence awareness: a convergent function accepts
// additional backward-arrow arguments beyond its declared parameters.
type FuncType struct {
	Params     []Type
	Return     Type
	Convergent bool
}

func (f FuncType) typeNode() {}
func (f FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	s := fmt.Sprintf("function (%s) -> %s", strings.Join(parts, ", "), f.Return)
	if f.Convergent {
		s += " (supports convergence)"
	}
	return s
}

// ChainType is the end-to-end type of an arrow chain, with the types at
// each intermediate step kept for diagnostics.
type ChainType struct {
	Input         Type
	Output        Type
	Intermediates []Type
}

func (c ChainType) typeNode()      {}
func (c ChainType) String() string { return fmt.Sprintf("arrow chain %s -> %s", c.Input, c.Output) }

type ResultType struct {
	Success Type
	Error   Type
}

func (r ResultType) typeNode()      {}
func (r ResultType) String() string { return fmt.Sprintf("result<%s, %s>", r.Success, r.Error) }

type UnionType struct {
	Members []Type
}

func (u UnionType) typeNode() {}
func (u UnionType) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return "union (" + strings.Join(parts, " | ") + ")"
}

type GenericType struct {
	Name string
}

func (g GenericType) typeNode()      {}
func (g GenericType) String() string { return "generic " + g.Name }

// Assignable reports whether a value of type src can be used where dst is
// expected. It is a partial order, not equality: arrays, tuples and
// results are covariant, function parameters contravariant, and Unknown
// accepts and satisfies everything. Structural recursion strictly
// decreases node count, so this terminates on any finite type.
func Assignable(src, dst Type) bool {
	if src == nil || dst == nil {
		return true
	}
	if _, ok := src.(UnknownType); ok {
		return true
	}
	if _, ok := dst.(UnknownType); ok {
		return true
	}

	// A union source fits only if every member fits; a union target
	// accepts a source any member accepts.
	if u, ok := src.(UnionType); ok {
		for _, m := range u.Members {
			if !Assignable(m, dst) {
				return false
			}
		}
		return true
	}
	if u, ok := dst.(UnionType); ok {
		for _, m := range u.Members {
			if Assignable(src, m) {
				return true
			}
		}
		return false
	}

	switch s := src.(type) {
	case Primitive:
		d, ok := dst.(Primitive)
		return ok && s == d
	case GenericType:
		d, ok := dst.(GenericType)
		return ok && s.Name == d.Name
	case ArrayType:
		d, ok := dst.(ArrayType)
		return ok && Assignable(s.Elem, d.Elem)
	case TupleType:
		d, ok := dst.(TupleType)
		if !ok || len(s.Elems) != len(d.Elems) {
			return false
		}
		for i := range s.Elems {
			if !Assignable(s.Elems[i], d.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		d, ok := dst.(ObjectType)
		if !ok || len(s.Fields) != len(d.Fields) {
			return false
		}
		for i := range s.Fields {
			if s.Fields[i].Name != d.Fields[i].Name || !Assignable(s.Fields[i].Type, d.Fields[i].Type) {
				return false
			}
		}
		return true
	case FuncType:
		d, ok := dst.(FuncType)
		if !ok || len(s.Params) != len(d.Params) {
			return false
		}
		for i := range s.Params {
			if !Assignable(d.Params[i], s.Params[i]) {
				return false
			}
		}
		return Assignable(s.Return, d.Return)
	case ChainType:
		d, ok := dst.(ChainType)
		return ok && Assignable(s.Input, d.Input) && Assignable(s.Output, d.Output)
	case ResultType:
		d, ok := dst.(ResultType)
		return ok && Assignable(s.Success, d.Success) && Assignable(s.Error, d.Error)
	}
	return false
}
