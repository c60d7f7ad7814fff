package scope

// jsGlobals is the closed set of host/runtime globals pre-declared in the
// root scope so ordinary JS interop doesn't trip UNDEF_VAR (§4.4: "Built-ins
// ... pre-declared in root scope with kind builtin, never flagged"). Note
// `print`/`println` are deliberately absent: §4.4 special-cases them to
// UNDEF_FUNC with a console.log-pointing fix set.
var jsGlobals = []string{
	"console", "Math", "JSON", "Object", "Array", "Number", "String", "Boolean",
	"BigInt", "Symbol", "Promise", "Date", "Error", "TypeError", "RangeError",
	"SyntaxError", "RegExp", "Map", "Set", "WeakMap", "WeakSet", "Proxy", "Reflect",
	"ArrayBuffer", "DataView",
	"Int8Array", "Uint8Array", "Uint8ClampedArray",
	"Int16Array", "Uint16Array", "Int32Array", "Uint32Array",
	"Float32Array", "Float64Array", "BigInt64Array", "BigUint64Array",
	"parseInt", "parseFloat", "isNaN", "isFinite",
	"encodeURIComponent", "decodeURIComponent", "encodeURI", "decodeURI",
	"require", "process", "globalThis", "fetch", "module", "exports",
	"setTimeout", "setInterval", "clearTimeout", "clearInterval",
	"undefined", "NaN", "Infinity",
}

func declareBuiltins(root *Scope) {
	for _, name := range jsGlobals {
		root.declare(&Binding{Name: name, Kind: KindBuiltin, Const: true})
	}
}
