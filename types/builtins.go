package types

// numberFn/stringFn/anyFn/voidFn are shorthands for the handful of shapes
// the built-in shadow environment needs; hosts beyond the named members
// below fall through to Any on lookup miss rather than erroring, since the
// scope pass (not the type pass) is responsible for catching truly unknown
// names (§4.5: "in strict mode, a miss yields a warning, never an error").
func numberFn(params ...Param) *Type { return Function(Number, params...) }
func anyFn(params ...Param) *Type    { return Function(Any, params...) }
func voidFn(params ...Param) *Type   { return Function(Void, params...) }

func arg(name string, t *Type) Param { return Param{Name: name, Type: t} }

// declareBuiltins populates root with the pre-shaped built-in objects named
// in §4.5: console, Math, JSON, Object, Array, Promise, Date, Error,
// process, require.
func declareBuiltins(root *Env) {
	root.Define("console", Object(
		Field{Name: "log", Type: anyFn()},
		Field{Name: "error", Type: anyFn()},
		Field{Name: "warn", Type: anyFn()},
		Field{Name: "info", Type: anyFn()},
		Field{Name: "debug", Type: anyFn()},
	))

	root.Define("Math", Object(
		Field{Name: "PI", Type: Number},
		Field{Name: "E", Type: Number},
		Field{Name: "max", Type: numberFn()},
		Field{Name: "min", Type: numberFn()},
		Field{Name: "floor", Type: numberFn(arg("x", Number))},
		Field{Name: "ceil", Type: numberFn(arg("x", Number))},
		Field{Name: "round", Type: numberFn(arg("x", Number))},
		Field{Name: "abs", Type: numberFn(arg("x", Number))},
		Field{Name: "sqrt", Type: numberFn(arg("x", Number))},
		Field{Name: "pow", Type: numberFn(arg("base", Number), arg("exp", Number))},
		Field{Name: "random", Type: numberFn()},
	))

	root.Define("JSON", Object(
		Field{Name: "stringify", Type: Function(String, arg("value", Any))},
		Field{Name: "parse", Type: anyFn(arg("text", String))},
	))

	root.Define("Object", Object(
		Field{Name: "keys", Type: Function(Array(String), arg("o", Any))},
		Field{Name: "values", Type: Function(Array(Any), arg("o", Any))},
		Field{Name: "entries", Type: anyFn(arg("o", Any))},
		Field{Name: "assign", Type: anyFn()},
		Field{Name: "freeze", Type: anyFn(arg("o", Any))},
		Field{Name: "create", Type: anyFn()},
	))

	root.Define("Array", Object(
		Field{Name: "isArray", Type: Function(Boolean, arg("v", Any))},
		Field{Name: "from", Type: anyFn()},
		Field{Name: "of", Type: anyFn()},
	))

	root.Define("Promise", Object(
		Field{Name: "resolve", Type: anyFn()},
		Field{Name: "reject", Type: anyFn()},
		Field{Name: "all", Type: anyFn()},
		Field{Name: "race", Type: anyFn()},
	))

	root.Define("Date", Object(
		Field{Name: "now", Type: numberFn()},
	))

	root.Define("Error", Class("Error",
		Field{Name: "message", Type: String},
		Field{Name: "name", Type: String},
		Field{Name: "stack", Type: String, Optional: true},
	))

	root.Define("process", Object(
		Field{Name: "argv", Type: Array(String)},
		Field{Name: "env", Type: Any},
		Field{Name: "exit", Type: voidFn(arg("code", Number))},
		Field{Name: "platform", Type: String},
	))

	root.Define("require", anyFn(arg("id", String)))

	for _, name := range []string{
		"globalThis", "fetch", "module", "exports", "parseInt", "parseFloat",
		"isNaN", "isFinite", "setTimeout", "setInterval", "clearTimeout",
		"clearInterval", "encodeURIComponent", "decodeURIComponent",
		"Symbol", "Map", "Set", "WeakMap", "WeakSet", "RegExp", "BigInt",
	} {
		root.Define(name, Any)
	}
	root.Define("undefined", Undefined)
	root.Define("NaN", Number)
	root.Define("Infinity", Number)
}

// arrayMembers lists the method names hardcoded as Any for array/string
// member access (§4.5: "hardcodes length: number and a list of method names
// as any").
var arrayMembers = []string{
	"push", "pop", "shift", "unshift", "slice", "splice", "concat", "join",
	"map", "filter", "reduce", "reduceRight", "forEach", "find", "findIndex",
	"includes", "indexOf", "lastIndexOf", "some", "every", "sort", "reverse",
	"flat", "flatMap", "fill", "keys", "values", "entries",
}

var stringMembers = []string{
	"charAt", "charCodeAt", "codePointAt", "concat", "includes", "indexOf",
	"lastIndexOf", "padStart", "padEnd", "repeat", "replace", "replaceAll",
	"slice", "split", "startsWith", "endsWith", "substring", "toLowerCase",
	"toUpperCase", "trim", "trimStart", "trimEnd", "match", "matchAll",
}

// arrayFieldType returns the hardcoded shape for an array/string member
// access, or (nil, false) if name isn't one of the recognized members.
func arrayFieldType(name string) (*Type, bool) {
	if name == "length" {
		return Number, true
	}
	for _, m := range arrayMembers {
		if m == name {
			return Any, true
		}
	}
	return nil, false
}

func stringFieldType(name string) (*Type, bool) {
	if name == "length" {
		return Number, true
	}
	for _, m := range stringMembers {
		if m == name {
			return Any, true
		}
	}
	return nil, false
}
