// Package tabix lists the chromosome names known to a tabix-indexed file.
package tabix

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chromcheck/internal/chrom"
	"chromcheck/internal/proc"
)

// Lister runs `<Tabix> -l <path>`.
type Lister struct {
	Tabix  string
	Stderr io.Writer
}

// Chroms returns the set of chromosome names in the archive's index.
// Blank lines are skipped.
func (l Lister) Chroms(ctx context.Context, path string) (chrom.NameSet, error) {
	set := chrom.NameSet{}
	pc := proc.Command{Path: l.Tabix, Args: []string{"-l", path}, Stderr: l.Stderr}
	err := pc.Lines(ctx, func(line string) error {
		if name := strings.TrimSpace(line); name != "" {
			set[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tabix: %w", err)
	}
	return set, nil
}
