// Package types implements NTL's structural type inferer (§4.5): a stack of
// type environments populated with built-in shapes, walked alongside the
// AST to assign every expression a canonical types.Type, with strict mode
// escalating assignability misses on declarations and plain assignments to
// TYPE_MISMATCH errors. It is grounded on the teacher's two-phase walk
// (parser/parser_template.go), generalized from template execution to a
// structural type system: the AST's own ast.TypeNode is parser syntax only
// (see its doc comment); the inferer normalizes it here rather than ever
// consulting TypeNode.Print() for identity.
package types

import "strings"

// Kind tags the concrete shape of a Type.
type Kind int

const (
	KAny Kind = iota
	KNever
	KUnknown
	KVoid
	KNull
	KUndefined
	KBoolean
	KNumber
	KString
	KBigint
	KLiteral
	KArray
	KTuple
	KObject
	KFunction
	KClass
	KUnion
)

// Field is one structural member of an object or class type.
type Field struct {
	Name     string
	Type     *Type
	Optional bool
}

// Param is one parameter of a function type.
type Param struct {
	Name string
	Type *Type
}

// Type is the inferer's canonical, structural type representation.
type Type struct {
	Kind Kind

	Name         string // primitive/class/literal-runtime-typeof name
	LiteralValue string // TLiteral's raw spelling, for Print only

	Elem    *Type   // TArray
	Elems   []*Type // TTuple
	Fields  []Field // TObject / TClass
	Params  []Param // TFunction
	Ret     *Type   // TFunction
	Members []*Type // TUnion
}

var (
	Any       = &Type{Kind: KAny, Name: "any"}
	Never     = &Type{Kind: KNever, Name: "never"}
	Unknown   = &Type{Kind: KUnknown, Name: "unknown"}
	Void      = &Type{Kind: KVoid, Name: "void"}
	Null      = &Type{Kind: KNull, Name: "null"}
	Undefined = &Type{Kind: KUndefined, Name: "undefined"}
	Boolean   = &Type{Kind: KBoolean, Name: "boolean"}
	Number    = &Type{Kind: KNumber, Name: "number"}
	String    = &Type{Kind: KString, Name: "string"}
	Bigint    = &Type{Kind: KBigint, Name: "bigint"}
)

// Array builds an `array(elem)` type (§4.5: "wrapped as array(elem)").
func Array(elem *Type) *Type {
	if elem == nil {
		elem = Any
	}
	return &Type{Kind: KArray, Elem: elem}
}

// Object builds a structural object type from its known fields.
func Object(fields ...Field) *Type {
	return &Type{Kind: KObject, Fields: fields}
}

// Function builds a function type from its parameters and return type.
func Function(ret *Type, params ...Param) *Type {
	if ret == nil {
		ret = Any
	}
	return &Type{Kind: KFunction, Params: params, Ret: ret}
}

// Class builds a named nominal-but-structurally-compared class type.
func Class(name string, fields ...Field) *Type {
	return &Type{Kind: KClass, Name: name, Fields: fields}
}

// Union merges member types into a flat union, collapsing duplicates by
// Print form and degrading to Any if any member is Any.
func Union(members ...*Type) *Type {
	var flat []*Type
	seen := map[string]bool{}
	for _, m := range members {
		if m == nil {
			continue
		}
		if m.Kind == KAny {
			return Any
		}
		if m.Kind == KUnion {
			flat = append(flat, m.Members...)
			continue
		}
		flat = append(flat, m)
	}
	var out []*Type
	for _, m := range flat {
		key := m.Print()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	if len(out) == 0 {
		return Any
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Type{Kind: KUnion, Members: out}
}

// Field looks up a field by name on an object or class type.
func (t *Type) Field(name string) (*Type, bool) {
	if t == nil {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// NonNullable strips null/undefined from a type, used by `??`'s left
// operand per §4.5 ("the non-null-non-undefined side").
func (t *Type) NonNullable() *Type {
	if t == nil {
		return Any
	}
	if t.Kind == KNull || t.Kind == KUndefined {
		return Never
	}
	if t.Kind != KUnion {
		return t
	}
	var rest []*Type
	for _, m := range t.Members {
		if m.Kind == KNull || m.Kind == KUndefined {
			continue
		}
		rest = append(rest, m)
	}
	return Union(rest...)
}

// IsNullable reports whether t includes null or undefined.
func (t *Type) IsNullable() bool {
	if t == nil {
		return true
	}
	if t.Kind == KNull || t.Kind == KUndefined {
		return true
	}
	if t.Kind == KUnion {
		for _, m := range t.Members {
			if m.IsNullable() {
				return true
			}
		}
	}
	return false
}

// Print renders t to its canonical NTL-ish spelling, used only for
// diagnostics (§4.5: "structural equality by printed form").
func (t *Type) Print() string {
	if t == nil {
		return "any"
	}
	switch t.Kind {
	case KAny, KNever, KUnknown, KVoid, KNull, KUndefined, KBoolean, KNumber, KString, KBigint:
		return t.Name
	case KLiteral:
		return t.LiteralValue
	case KClass:
		return t.Name
	case KArray:
		return t.Elem.Print() + "[]"
	case KTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.Print()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KObject:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			opt := ""
			if f.Optional {
				opt = "?"
			}
			parts[i] = f.Name + opt + ": " + f.Type.Print()
		}
		return "{" + strings.Join(parts, "; ") + "}"
	case KFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.Name + ": " + p.Type.Print()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.Ret.Print()
	case KUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.Print()
		}
		return strings.Join(parts, " | ")
	}
	return "any"
}
