// Package diagnostic implements the structured error/warning engine shared
// by every compiler stage (§4.1, §7). It is grounded on the teacher's
// parser/error.go pattern of a PrettyPrinter error wrapped in xerrors, but
// generalized from a single "syntax error" shape into the full diagnostic
// record set the specification requires: phase, severity, code, source
// excerpt, similar-name suggestions, and bad/good examples.
package diagnostic

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Phase identifies which pipeline stage raised a Diagnostic.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseScope   Phase = "scope"
	PhaseType    Phase = "type"
	PhaseCompile Phase = "compile"
	PhaseRuntime Phase = "runtime"
	PhaseResolve Phase = "resolve"
	PhaseMacro   Phase = "macro"
)

// Severity distinguishes errors (which abort the pipeline) from warnings
// (which never do).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code is a closed set of short diagnostic tags used by tests and tooling
// to match on a specific failure shape without parsing Message text.
type Code string

const (
	CodeUndefVar        Code = "UNDEF_VAR"
	CodeUndefFunc       Code = "UNDEF_FUNC"
	CodeConstReassign   Code = "CONST_REASSIGN"
	CodeDuplicateDecl   Code = "DUPLICATE_DECL"
	CodeDuplicateParam  Code = "DUPLICATE_PARAM"
	CodeTypeMismatch    Code = "TYPE_MISMATCH"
	CodeNotFunction     Code = "NOT_FUNCTION"
	CodeNullAccess      Code = "NULL_ACCESS"
	CodeUnknownModule   Code = "UNKNOWN_MODULE"
	CodeUnexpectedToken Code = "UNEXPECTED_TOKEN"
	CodeUnterminated    Code = "UNTERMINATED"
	CodeUnexpectedChar  Code = "UNEXPECTED_CHAR"
	CodeStackOverflow   Code = "STACK_OVERFLOW"
	CodeInternal        Code = "INTERNAL"
)

// SimilarName is one entry of a fuzzy-match suggestion list: an in-scope
// name close to the misspelled reference, along with where it was declared.
type SimilarName struct {
	Name string
	Line int
}

// Example is an optional bad/good snippet pair attached to a Diagnostic.
type Example struct {
	Bad  string
	Good string
}

// Diagnostic is a single structured error or warning.
type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Message  string
	Code     Code

	File   string
	Line   int
	Column int

	// Source is the full source text the diagnostic was raised against; it
	// is used to render a ±2-line excerpt on demand. It may be empty if the
	// caller does not want source context rendered.
	Source string

	Similar     []SimilarName
	Suggestions []string
	Example     *Example
}

// Error implements the error interface so a Diagnostic can be returned and
// wrapped like any other Go error.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil diagnostic>"
	}
	loc := ""
	if d.File != "" {
		loc = fmt.Sprintf("%s:", d.File)
	}
	return fmt.Sprintf("%s%d:%d: %s[%s]: %s", loc, d.Line, d.Column, d.Phase, d.Severity, d.Message)
}

// PrettyPrint renders the diagnostic into sink, following the six-region
// block layout of §7: header, location, blank, source excerpt, explanation,
// suggestions/similar-names/example.
func (d *Diagnostic) PrettyPrint(sink *Sink, colored, inclSource bool) {
	render(d, sink, colored, inclSource)
}

// Wrapf wraps err with additional context, preserving any underlying
// Diagnostic for later xerrors.As extraction, mirroring the teacher's
// errors.Wrapf helper.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf(format+": %w", append(args, err)...)
}

// List is an ordered collection of diagnostics accumulated within a phase.
type List []*Diagnostic

// HasErrors reports whether any diagnostic in the list is an Error.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity diagnostics.
func (l List) Errors() List {
	var out List
	for _, d := range l {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the Warning-severity diagnostics.
func (l List) Warnings() List {
	var out List
	for _, d := range l {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}
