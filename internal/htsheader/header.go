// Package htsheader extracts the chromosome (@SQ) entries of a BAM/SAM/CRAM
// header. Two sources are provided: Command pipes the output of an external
// `htsfile -h` process, Native reads the header in-process.
package htsheader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chromcheck/internal/chrom"
)

// SQTag marks a reference sequence line in a SAM header.
const SQTag = "@SQ"

// Source yields the chromosome map of one alignment file.
type Source interface {
	Header(ctx context.Context, path string) (chrom.AlignmentMap, error)
}

// builder assigns header order and rejects bad records for one file.
type builder struct {
	path string
	m    chrom.AlignmentMap
}

func newBuilder(path string) *builder {
	return &builder{path: path, m: chrom.AlignmentMap{}}
}

func (b *builder) add(name string, size int) error {
	if size <= 0 {
		return chrom.Errorf("Unexpected chromosome size '%d' in BAM/CRAM header for file '%s'", size, b.path)
	}
	if _, dup := b.m[name]; dup {
		return chrom.Errorf("Duplicate chromosome '%s' in BAM/CRAM header for file '%s'", name, b.path)
	}
	b.m[name] = chrom.Record{Name: name, Length: size, Order: len(b.m)}
	return nil
}

// parseLine handles one header line; non-@SQ lines are ignored.
func (b *builder) parseLine(line string) error {
	if !strings.HasPrefix(line, SQTag) {
		return nil
	}
	w := strings.Split(strings.TrimSpace(line), "\t")
	if len(w) < 3 {
		return chrom.Errorf("Unexpected BAM/CRAM header for file '%s'", b.path)
	}
	h := make(map[string]string, len(w)-1)
	for _, word := range w[1:] {
		key, val, ok := strings.Cut(word, ":")
		if !ok {
			return chrom.Errorf("Unexpected BAM/CRAM header field '%s' for file '%s'", word, b.path)
		}
		h[key] = val
	}
	name, okName := h["SN"]
	ln, okLen := h["LN"]
	if !okName || !okLen {
		return chrom.Errorf("BAM/CRAM header line without SN/LN fields for file '%s': '%s'", b.path, strings.TrimSpace(line))
	}
	size, err := strconv.Atoi(ln)
	if err != nil {
		return chrom.Errorf("Unexpected chromosome size '%s' in BAM/CRAM header for file '%s'", ln, b.path)
	}
	return b.add(name, size)
}

// Parse reads SAM header text and returns its @SQ entries keyed by name.
// path is used only in error messages.
func Parse(r io.Reader, path string) (chrom.AlignmentMap, error) {
	b := newBuilder(path)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		if err := b.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("header scan %s: %w", path, err)
	}
	return b.m, nil
}
