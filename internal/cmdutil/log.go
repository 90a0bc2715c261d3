// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes a "WARN: " line to dst unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Infof writes an "INFO: " line to dst only when verbose is set.
func Infof(dst io.Writer, verbose bool, format string, a ...any) {
	if !verbose {
		return
	}
	_, _ = fmt.Fprintf(dst, "INFO: "+format+"\n", a...)
}

// ConfigErrorf writes the block shown for a failed consistency check.
func ConfigErrorf(dst io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, "\nCONFIGURATION ERROR:\n"+format+"\n\n", a...)
}
