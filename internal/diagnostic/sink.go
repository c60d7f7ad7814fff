package diagnostic

import (
	"fmt"
	"io"
)

// Sink is the output target PrettyPrint writes to, mirroring the teacher's
// errors.Sink wrapper around a bytes.Buffer in parser/error.go.
type Sink struct {
	io.Writer
}

func (s *Sink) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Writer, format, args...)
}
