package ast

import "github.com/ntl-lang/ntlc/token"

// TypeKind tags the concrete shape of a parsed TypeNode. This is the
// parser-level type *syntax*; the type inferer normalizes it into its own
// canonical types.Type without ever round-tripping through a printed
// string, per the "Type stored as a free-form printed string" design note:
// the AST keeps a structured value, display-only printing is derived, not
// canonical.
type TypeKind int

const (
	TAny TypeKind = iota
	TNever
	TUnknown
	TVoid
	TNullType
	TUndefinedType
	TPrimitive
	TLiteral
	TArray
	TTuple
	TObject
	TFunction
	TClassRef
	TUnion
	TIntersection
	TGeneric
	TQualified
	TKeyOf
	TTypeOf
	TInfer
)

// ObjectTypeField is one `key: T` member of an object type literal.
type ObjectTypeField struct {
	Name     string
	Type     TypeNode
	Optional bool
}

// FunctionTypeParam is one parameter of a `(...) -> T` function type.
type FunctionTypeParam struct {
	Name string
	Type TypeNode
}

// TypeNode is a parsed type expression (§3's "Type" data model, §4.3's type
// grammar).
type TypeNode struct {
	base
	TKind TypeKind

	// TPrimitive / TClassRef / TQualified
	Name string
	Path []string // qualified dotted path

	// TLiteral
	LiteralValue string

	// TArray / TTuple element(s)
	Elem  *TypeNode
	Elems []*TypeNode

	// TObject
	Fields []ObjectTypeField

	// TFunction
	Params []FunctionTypeParam
	Ret    *TypeNode

	// TUnion / TIntersection
	Members []*TypeNode

	// TGeneric
	Args []*TypeNode

	// TKeyOf / TTypeOf / TInfer wrap a single inner type/name.
	Inner *TypeNode

	Optional bool // trailing `?`
}

func newType(k TypeKind, pos token.Position) *TypeNode {
	return &TypeNode{base: newBase(KindInvalid, pos), TKind: k}
}

// NewType constructs a TypeNode of the given kind at pos; the parser sets
// that kind's relevant fields (Name, Elem, Members, …) after construction,
// since base is unexported outside this package.
func NewType(k TypeKind, pos token.Position) *TypeNode {
	return newType(k, pos)
}

// Print renders the type back to its canonical NTL surface spelling, used
// only for diagnostics and debugging, never consulted by the inferer for
// type identity (that uses structural comparison over the TypeNode/Type
// values directly).
func (t *TypeNode) Print() string {
	if t == nil {
		return "any"
	}
	switch t.TKind {
	case TAny:
		return "any"
	case TNever:
		return "never"
	case TUnknown:
		return "unknown"
	case TVoid:
		return "void"
	case TNullType:
		return "null"
	case TUndefinedType:
		return "undefined"
	case TPrimitive:
		return t.Name
	case TLiteral:
		return t.LiteralValue
	case TClassRef:
		return t.Name
	case TQualified:
		return joinDots(t.Path)
	case TArray:
		return t.Elem.Print() + "[]"
	case TTuple:
		return "[" + joinTypes(t.Elems) + "]"
	case TObject:
		s := "{"
		for i, f := range t.Fields {
			if i > 0 {
				s += "; "
			}
			s += f.Name + ": " + f.Type.Print()
		}
		return s + "}"
	case TFunction:
		s := "("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.Name + ": " + p.Type.Print()
		}
		return s + ") -> " + t.Ret.Print()
	case TUnion:
		return joinTypesSep(t.Members, " | ")
	case TIntersection:
		return joinTypesSep(t.Members, " & ")
	case TGeneric:
		return t.Name + "<" + joinTypes(t.Args) + ">"
	case TKeyOf:
		return "keyof " + t.Inner.Print()
	case TTypeOf:
		return "typeof " + t.Inner.Print()
	case TInfer:
		return "infer " + t.Name
	}
	return "any"
}

func joinDots(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

func joinTypes(ts []*TypeNode) string { return joinTypesSep(ts, ", ") }
func joinTypesSep(ts []*TypeNode, sep string) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += sep
		}
		s += t.Print()
	}
	return s
}
