// Package modules resolves NTL's built-in `require(ntl, name, ...)` module
// names to the path of their shipped JavaScript implementation, relative to
// the runtime directory; the path is not made absolute (§4.6, §6's "NTL
// built-in module resolution"), grounded on the teacher's
// closed template-function-name map (parser/builtins.go), generalized from
// a set of recognized names to a name-to-path table.
package modules

import "fmt"

// builtin maps the closed set of NTL module names to the relative path of
// their implementation under runtime/ (the ntl-runtime/ directory). Resolve
// returns these relative paths unchanged.
var builtin = map[string]string{
	"http":   "ntl-runtime/http.js",
	"fs":     "ntl-runtime/fs.js",
	"crypto": "ntl-runtime/crypto.js",
	"logger": "ntl-runtime/logger.js",
	"test":   "ntl-runtime/test.js",
	"ai":     "ntl-runtime/ai.js",
	"game":   "ntl-runtime/game.js",
	"web":    "ntl-runtime/web.js",
	"obf":    "ntl-runtime/obf.js",
}

// Resolve returns the shipped module path for name, or an error if name is
// not in the closed built-in set.
func Resolve(name string) (string, error) {
	path, ok := builtin[name]
	if !ok {
		return "", fmt.Errorf("unknown NTL module %q", name)
	}
	return path, nil
}

// Known reports whether name is a recognized built-in module.
func Known(name string) bool {
	_, ok := builtin[name]
	return ok
}

// Names returns every recognized built-in module name.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	return out
}
