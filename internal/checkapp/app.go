// internal/checkapp/app.go
package checkapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"chromcheck/internal/checker"
	"chromcheck/internal/chrom"
	"chromcheck/internal/cli"
	"chromcheck/internal/cmdutil"
	"chromcheck/internal/htsheader"
	"chromcheck/internal/version"
	"chromcheck/internal/writers"
)

// Exit codes
const (
	ExitOK          = 0
	ExitConfigError = 1
	ExitUsage       = 2
	ExitOutput      = 3
	ExitInterrupted = 130
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	flush := func(code int) int {
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return code
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitOutput
		}
		return code
	}

	fs := cli.NewFlagSet("chromcheck")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "chromcheck version %s\n", version.Version)
		return flush(ExitOK)
	}

	warnDuplicates(stderr, opts.Quiet, "alignment file", opts.Alignments)
	warnDuplicates(stderr, opts.Quiet, "label", opts.Labels)

	c := checker.New(opts.Htsfile, opts.Tabix, stderr)
	if opts.HeaderSource == cli.SourceNative {
		c.Headers = htsheader.Native{}
	}
	var labels []string
	if len(opts.Labels) > 0 {
		labels = opts.Labels
	}

	sum, err := c.Run(parent, checker.Input{
		Reference:       opts.Reference,
		Alignments:      opts.Alignments,
		Labels:          labels,
		Archives:        opts.Archives,
		ReferenceLocked: opts.Locked,
	})
	if err != nil {
		if parent.Err() != nil {
			return ExitInterrupted
		}
		if chrom.IsConfigError(err) {
			cmdutil.ConfigErrorf(stderr, "%s", err)
			return ExitConfigError
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitUsage
	}

	if len(sum.Alignments) > 0 {
		base := sum.Alignments[0]
		cmdutil.Infof(stderr, opts.Verbose, "canonical chromosome order taken from the %s alignment file '%s'", base.Label, base.Path)
		if n := len(sum.ExtraReference); n > 0 {
			cmdutil.Infof(stderr, opts.Verbose, "reference has %d chromosome(s) not present in the %s alignment file: %s",
				n, base.Label, strings.Join(sum.ExtraReference, ","))
		}
	}

	if opts.Quiet {
		return ExitOK
	}
	if err := writers.WriteReport(opts.Output, outw, sum); err != nil {
		if writers.IsBrokenPipe(err) {
			return ExitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return flush(ExitOK)
}

func warnDuplicates(stderr io.Writer, quiet bool, what string, vals []string) {
	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		if seen[v] {
			cmdutil.Warnf(stderr, quiet, "%s %q is given more than once", what, v)
			continue
		}
		seen[v] = true
	}
}
