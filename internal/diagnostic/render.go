package diagnostic

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// palette groups the color functions used across a render pass so colored
// and plain rendering share one code path, matching the inline
// color.New(...).SprintFunc() wiring in the teacher's cmd/yparse/yparse.go.
type palette struct {
	red, yellow, cyan, gray, plain func(format string, a ...interface{}) string
}

func newPalette(colored bool) palette {
	if !colored {
		id := func(format string, a ...interface{}) string { return fmt.Sprintf(format, a...) }
		return palette{id, id, id, id, id}
	}
	mk := func(attrs ...color.Attribute) func(string, ...interface{}) string {
		return color.New(attrs...).SprintfFunc()
	}
	return palette{
		red:    mk(color.FgRed, color.Bold),
		yellow: mk(color.FgYellow),
		cyan:   mk(color.FgCyan, color.Bold),
		gray:   mk(color.FgHiBlack),
		plain:  func(format string, a ...interface{}) string { return fmt.Sprintf(format, a...) },
	}
}

// render implements the six-region diagnostic block of §7: header,
// location line, blank, source excerpt with underline caret, explanation,
// then optional suggestions / similar-names / bad-good example.
func render(d *Diagnostic, sink *Sink, colored, inclSource bool) {
	p := newPalette(colored)

	// Region 1: header with phase label.
	label := strings.ToUpper(string(d.Phase))
	if d.Severity == Warning {
		sink.printf("%s %s", p.yellow("[%s warning]", label), p.plain("%s", headerCode(d)))
	} else {
		sink.printf("%s %s", p.red("[%s error]", label), p.plain("%s", headerCode(d)))
	}
	sink.printf("\n")

	// Region 2: location line.
	file := d.File
	if file == "" {
		file = "<input>"
	}
	sink.printf("%s\n", p.cyan("  --> %s:%d:%d", file, d.Line, d.Column))

	// Region 3: blank.
	sink.printf("\n")

	// Region 4: source excerpt with underline caret.
	if inclSource && d.Source != "" {
		renderExcerpt(d, sink, p)
		sink.printf("\n")
	}

	// Region 5: explanation paragraph.
	sink.printf("  %s\n", d.Message)

	// Region 6a: suggestions.
	if len(d.Suggestions) > 0 {
		sink.printf("\n  %s\n", p.cyan("suggestions:"))
		for i, s := range d.Suggestions {
			sink.printf("    %d. %s\n", i+1, s)
		}
	}

	// Region 6b: similar names.
	if len(d.Similar) > 0 {
		sink.printf("\n  %s\n", p.gray("similar names in scope:"))
		for _, s := range d.Similar {
			sink.printf("    - %s (declared at line %d)\n", s.Name, s.Line)
		}
	}

	// Region 6c: bad/good example.
	if d.Example != nil {
		sink.printf("\n  %s\n", p.red("  bad:  %s", d.Example.Bad))
		sink.printf("  %s\n", p.cyan("  good: %s", d.Example.Good))
	}
}

func headerCode(d *Diagnostic) string {
	if d.Code == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", d.Code)
}

func renderExcerpt(d *Diagnostic, sink *Sink, p palette) {
	lines := strings.Split(d.Source, "\n")
	start := d.Line - 3
	if start < 0 {
		start = 0
	}
	end := d.Line + 2
	if end > len(lines) {
		end = len(lines)
	}
	width := len(fmt.Sprintf("%d", end))
	for i := start; i < end; i++ {
		lineNum := i + 1
		gutter := p.gray("%*d | ", width, lineNum)
		sink.printf("  %s%s\n", gutter, lines[i])
		if lineNum == d.Line {
			col := d.Column
			if col < 1 {
				col = 1
			}
			pad := strings.Repeat(" ", col-1)
			marker := p.red("^")
			sink.printf("  %s%s%s\n", strings.Repeat(" ", width+3), pad, marker)
		}
	}
}
