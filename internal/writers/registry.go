// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"chromcheck/internal/checker"
)

// ReportWriters maps an --output format to its renderer.
// Formats register themselves in init() blocks.
var ReportWriters = map[string]func(w io.Writer, s checker.Summary) error{}

// RegisterReport adds or replaces a format (last wins).
func RegisterReport(format string, fn func(io.Writer, checker.Summary) error) {
	ReportWriters[format] = fn
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(ReportWriters))
	for k := range ReportWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteReport dispatches to the writer registered for format.
func WriteReport(format string, w io.Writer, s checker.Summary) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, s)
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers such as `head` may close stdout early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
