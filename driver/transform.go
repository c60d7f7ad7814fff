package driver

import (
	"regexp"
	"strings"
)

// rewriteESM performs the textual post-pass from CommonJS to ES-module form
// (§4.6: "the driver does a second textual pass ... for ESM targets").
// Codegen never emits import/export directly; this pattern-matches the
// exact shapes codegen.go is known to produce.
var (
	reRequireNamed  = regexp.MustCompile(`^const \{ (.+) \} = require\((".*")\);$`)
	reRequireSingle = regexp.MustCompile(`^const (\w+) = require\((".*")\);$`)
	reExportDefault = regexp.MustCompile(`^module\.exports = (\w+);$`)
	reExportNamed   = regexp.MustCompile(`^module\.exports\.(\w+) = (\w+);$`)
)

func rewriteESM(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case reRequireNamed.MatchString(trimmed):
			m := reRequireNamed.FindStringSubmatch(trimmed)
			lines[i] = indent + "import { " + m[1] + " } from " + m[2] + ";"
		case reRequireSingle.MatchString(trimmed):
			m := reRequireSingle.FindStringSubmatch(trimmed)
			lines[i] = indent + "import " + m[1] + " from " + m[2] + ";"
		case reExportDefault.MatchString(trimmed):
			m := reExportDefault.FindStringSubmatch(trimmed)
			lines[i] = indent + "export default " + m[1] + ";"
		case reExportNamed.MatchString(trimmed):
			m := reExportNamed.FindStringSubmatch(trimmed)
			if m[1] == m[2] {
				lines[i] = indent + "export { " + m[1] + " };"
			} else {
				lines[i] = indent + "export { " + m[2] + " as " + m[1] + " };"
			}
		}
	}
	return strings.Join(lines, "\n")
}

var reBlankLines = regexp.MustCompile(`\n\s*\n`)
var reLeadingWS = regexp.MustCompile(`(?m)^[ \t]+`)

// minify strips blank lines and collapses leading indentation (§4.7:
// "strip blank lines, collapse whitespace"). It does not rename
// identifiers or otherwise shrink expressions.
func minify(code string) string {
	code = reBlankLines.ReplaceAllString(code, "\n")
	code = reLeadingWS.ReplaceAllString(code, "")
	return strings.TrimSpace(code) + "\n"
}
