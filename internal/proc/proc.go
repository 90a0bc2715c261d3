// Package proc runs an external tool and treats its stdout as a
// line-oriented protocol.
package proc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const maxLine = 64 * 1024 * 1024 // @SQ/@CO lines can be long

// Command is an external tool invocation.
type Command struct {
	Path   string
	Args   []string
	Stderr io.Writer // nil discards the tool's stderr
}

// String renders the command the way a shell user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, fmt.Sprintf("%q", c.Path))
	for _, a := range c.Args {
		if strings.HasPrefix(a, "-") {
			parts = append(parts, a)
		} else {
			parts = append(parts, fmt.Sprintf("%q", a))
		}
	}
	return strings.Join(parts, " ")
}

// ExitError reports a tool that could not be started or exited non-zero.
type ExitError struct {
	Cmd string
	Err error
}

func (e *ExitError) Error() string { return fmt.Sprintf("command %s: %v", e.Cmd, e.Err) }
func (e *ExitError) Unwrap() error { return e.Err }

// Lines starts the command and calls fn for each stdout line, in order.
// The process is always waited on. If fn or the scanner fails, the process is
// killed first and that error is returned; otherwise a start failure or
// non-zero exit is returned as *ExitError.
func (c Command) Lines(ctx context.Context, fn func(line string) error) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stderr = c.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &ExitError{Cmd: c.String(), Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &ExitError{Cmd: c.String(), Err: err}
	}

	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	var fnErr error
	for sc.Scan() {
		if fnErr = fn(sc.Text()); fnErr != nil {
			break
		}
	}
	scanErr := sc.Err()
	if fnErr != nil || scanErr != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	switch {
	case fnErr != nil:
		return fnErr
	case scanErr != nil:
		return fmt.Errorf("read output of %s: %w", c, scanErr)
	case waitErr != nil:
		return &ExitError{Cmd: c.String(), Err: waitErr}
	}
	return nil
}
