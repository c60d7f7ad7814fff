package ast

import "github.com/ntl-lang/ntlc/token"

// PatternKind distinguishes the two destructuring pattern shapes (§3).
type PatternKind int

const (
	PatternSimple PatternKind = iota // a bare name, no destructuring
	PatternObject
	PatternArray
)

// ObjectPatternProp is one `{key, alias?, nested?, defaultVal?, rest?}`
// entry of an object destructuring pattern.
type ObjectPatternProp struct {
	Key        string
	Alias      string
	Nested     *Pattern
	DefaultVal Expr
	Rest       bool
}

// ArrayPatternItem is one `{name|nested, defaultVal?, rest?}` entry of an
// array destructuring pattern; a nil Name/Nested with Hole set represents
// an explicit elision hole (`[a, , b]`).
type ArrayPatternItem struct {
	Name       string
	Nested     *Pattern
	DefaultVal Expr
	Rest       bool
	Hole       bool
}

// Pattern is a destructuring pattern, tagged object or array, or a plain
// name when Kind == PatternSimple.
type Pattern struct {
	position   token.Position
	Kind       PatternKind
	Name       string // PatternSimple
	ObjectKeys []ObjectPatternProp
	ArrayItems []ArrayPatternItem
}

func (p *Pattern) Pos() token.Position { return p.position }

// NewPattern constructs a Pattern at pos; the parser fills in Kind and the
// relevant Object/Array fields afterward, since position is unexported
// outside this package.
func NewPattern(pos token.Position, kind PatternKind) *Pattern {
	return &Pattern{position: pos, Kind: kind}
}

// Names returns every leaf binding name introduced by the pattern, in
// left-to-right order, used by the scope analyzer to declare each
// destructured leaf (§4.4).
func (p *Pattern) Names() []string {
	if p == nil {
		return nil
	}
	var out []string
	switch p.Kind {
	case PatternSimple:
		if p.Name != "" {
			out = append(out, p.Name)
		}
	case PatternObject:
		for _, prop := range p.ObjectKeys {
			if prop.Nested != nil {
				out = append(out, prop.Nested.Names()...)
				continue
			}
			name := prop.Alias
			if name == "" {
				name = prop.Key
			}
			out = append(out, name)
		}
	case PatternArray:
		for _, item := range p.ArrayItems {
			if item.Hole {
				continue
			}
			if item.Nested != nil {
				out = append(out, item.Nested.Names()...)
				continue
			}
			if item.Name != "" {
				out = append(out, item.Name)
			}
		}
	}
	return out
}

// MatchPatternKind is the closed tag set of §3's "Match pattern" model.
type MatchPatternKind int

const (
	MPLiteral MatchPatternKind = iota
	MPBinding
	MPWildcard
	MPEnumVal
	MPVariant
	MPArray
	MPObject
)

// MatchPattern is one pattern within a match case, supporting the
// algebraic-variant and nested-binding forms of §3/§4.6.
type MatchPattern struct {
	position token.Position
	Kind     MatchPatternKind

	// MPLiteral
	LiteralValue Expr

	// MPBinding
	BindingName string

	// MPEnumVal
	EnumPath []string

	// MPVariant
	VariantName   string
	VariantFields []*MatchPattern

	// MPArray
	ArrayItems []*MatchPattern

	// MPObject
	ObjectProps []MatchObjectProp
}

// MatchObjectProp is one `key: pattern` entry of an object match pattern.
type MatchObjectProp struct {
	Key     string
	Pattern *MatchPattern
}

func (m *MatchPattern) Pos() token.Position { return m.position }

// NewMatchPattern constructs a MatchPattern at pos; the parser fills in the
// kind-specific fields afterward, since position is unexported outside
// this package.
func NewMatchPattern(pos token.Position, kind MatchPatternKind) *MatchPattern {
	return &MatchPattern{position: pos, Kind: kind}
}

// BoundNames returns every name this pattern binds within a matching arm's
// scope (§4.4: "match pattern captures ... become const bindings").
func (m *MatchPattern) BoundNames() []string {
	if m == nil {
		return nil
	}
	var out []string
	switch m.Kind {
	case MPBinding:
		if m.BindingName != "" && m.BindingName != "_" {
			out = append(out, m.BindingName)
		}
	case MPVariant:
		for _, f := range m.VariantFields {
			out = append(out, f.BoundNames()...)
		}
	case MPArray:
		for _, it := range m.ArrayItems {
			out = append(out, it.BoundNames()...)
		}
	case MPObject:
		for _, p := range m.ObjectProps {
			out = append(out, p.Pattern.BoundNames()...)
		}
	}
	return out
}
