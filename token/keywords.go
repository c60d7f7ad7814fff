package token

// Keywords is the closed reserved-word set recognized by the lexer (see the
// GLOSSARY entry "Reserved keywords").
var Keywords = map[string]bool{
	"var": true, "val": true, "let": true, "const": true,
	"fn": true, "async": true, "await": true,
	"if": true, "else": true, "unless": true, "elif": true,
	"while": true, "for": true, "loop": true, "in": true, "of": true,
	"break": true, "continue": true, "return": true, "raise": true, "throw": true,
	"class": true, "extends": true, "new": true, "this": true, "super": true,
	"abstract": true, "override": true,
	"interface": true, "implements": true, "trait": true,
	"try": true, "catch": true, "finally": true,
	"match": true, "case": true, "default": true, "when": true,
	"import": true, "export": true, "from": true, "as": true,
	"true": true, "false": true, "null": true, "void": true, "undefined": true,
	"typeof": true, "instanceof": true, "keyof": true, "infer": true,
	"ifset": true, "have": true,
	"enum": true, "type": true, "alias": true,
	"require": true, "ntl": true,
	"static": true, "get": true, "set": true,
	"readonly": true, "private": true, "public": true, "protected": true,
	"do": true, "yield": true,
	"spawn": true, "select": true, "channel": true,
	"macro": true, "immutable": true, "freeze": true,
	"with": true, "using": true,
	"namespace": true, "module": true,
	"satisfies": true, "assert": true,
	"declare": true,
	"init":    true,
}

// IsKeyword reports whether ident is a reserved keyword.
func IsKeyword(ident string) bool {
	return Keywords[ident]
}
