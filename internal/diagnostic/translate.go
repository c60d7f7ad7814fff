package diagnostic

import (
	"regexp"
)

// translation describes one host-engine error shape and how to present it
// as an NTL-shaped runtime diagnostic (§4.1, §7's "translation only" row).
type translation struct {
	pattern *regexp.Regexp
	build   func(m []string) (message string, code Code)
}

var translations = []translation{
	{
		pattern: regexp.MustCompile(`Cannot read propert(?:y|ies) '([A-Za-z0-9_$]+)' of (?:undefined|null)`),
		build: func(m []string) (string, Code) {
			return "Cannot access property '" + m[1] + "', value is null or undefined", CodeNullAccess
		},
	},
	{
		pattern: regexp.MustCompile(`Cannot read propert(?:y|ies) of (?:undefined|null) \(reading '([A-Za-z0-9_$]+)'\)`),
		build: func(m []string) (string, Code) {
			return "Cannot access property '" + m[1] + "', value is null or undefined", CodeNullAccess
		},
	},
	{
		pattern: regexp.MustCompile(`([A-Za-z0-9_$.]+) is not a function`),
		build: func(m []string) (string, Code) {
			return "'" + m[1] + "' is not a function", CodeNotFunction
		},
	},
	{
		pattern: regexp.MustCompile(`([A-Za-z0-9_$]+) is not defined`),
		build: func(m []string) (string, Code) {
			return "'" + m[1] + "' is not declared", CodeUndefVar
		},
	},
	{
		pattern: regexp.MustCompile(`Maximum call stack size exceeded`),
		build: func(m []string) (string, Code) {
			return "stack overflow, likely unbounded recursion", CodeStackOverflow
		},
	},
	{
		pattern: regexp.MustCompile(`Assignment to constant variable`),
		build: func(m []string) (string, Code) {
			return "cannot reassign a const/val binding", CodeConstReassign
		},
	},
	{
		pattern: regexp.MustCompile(`has already been declared|Identifier '([A-Za-z0-9_$]+)' has already been declared`),
		build: func(m []string) (string, Code) {
			return "duplicate declaration", CodeDuplicateDecl
		},
	},
}

// TranslateHostError rewrites a raw host-JavaScript-engine error message
// into an NTL-shaped Diagnostic. It never throws; if nothing matches, the
// original message is preserved verbatim with code CodeInternal.
func TranslateHostError(raw string, file string, line, column int) *Diagnostic {
	for _, t := range translations {
		if m := t.pattern.FindStringSubmatch(raw); m != nil {
			msg, code := t.build(m)
			return &Diagnostic{
				Phase:    PhaseRuntime,
				Severity: Error,
				Message:  msg,
				Code:     code,
				File:     file,
				Line:     line,
				Column:   column,
			}
		}
	}
	return &Diagnostic{
		Phase:    PhaseRuntime,
		Severity: Error,
		Message:  raw,
		Code:     CodeInternal,
		File:     file,
		Line:     line,
		Column:   column,
	}
}
