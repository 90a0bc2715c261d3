package htsheader

import (
	"context"
	"errors"
	"io"

	"chromcheck/internal/chrom"
	"chromcheck/internal/proc"
)

// Command reads headers by running `<Htsfile> -h <path>`.
type Command struct {
	Htsfile string
	Stderr  io.Writer
}

func (c Command) Header(ctx context.Context, path string) (chrom.AlignmentMap, error) {
	pc := proc.Command{Path: c.Htsfile, Args: []string{"-h", path}, Stderr: c.Stderr}
	b := newBuilder(path)
	err := pc.Lines(ctx, b.parseLine)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var ee *proc.ExitError
		if errors.As(err, &ee) {
			return nil, chrom.Errorf("Failed to pipe command: '%s'", pc)
		}
		return nil, err
	}
	return b.m, nil
}
