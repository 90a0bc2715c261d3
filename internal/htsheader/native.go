package htsheader

import (
	"bufio"
	"bytes"
	"context"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"chromcheck/internal/chrom"
)

type format int

const (
	formatSAM format = iota
	formatBAM
	formatCRAM
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	cramMagic = []byte("CRAM")
)

// sniff detects the container by magic number: BGZF (BAM) shares gzip's,
// CRAM starts with "CRAM", anything else is read as SAM text.
func sniff(br *bufio.Reader) format {
	sig, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(sig, gzipMagic):
		return formatBAM
	case bytes.HasPrefix(sig, cramMagic):
		return formatCRAM
	default:
		return formatSAM
	}
}

// Native reads BAM and SAM headers in-process with biogo/hts.
// CRAM needs the external tool.
type Native struct{}

func (Native) Header(ctx context.Context, path string) (chrom.AlignmentMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, chrom.Errorf("Can't open alignment file '%s': %v", path, err)
	}
	defer fh.Close()
	br := bufio.NewReader(fh)

	var h *sam.Header
	switch sniff(br) {
	case formatBAM:
		r, err := bam.NewReader(br, 1)
		if err != nil {
			return nil, chrom.Errorf("Unexpected BAM/CRAM header for file '%s': %v", path, err)
		}
		defer r.Close()
		h = r.Header()
	case formatCRAM:
		return nil, chrom.Errorf("CRAM file '%s' can't be read with the native header source; use --header-source command", path)
	default:
		r, err := sam.NewReader(br)
		if err != nil {
			return nil, chrom.Errorf("Unexpected BAM/CRAM header for file '%s': %v", path, err)
		}
		h = r.Header()
	}

	b := newBuilder(path)
	for _, ref := range h.Refs() {
		if err := b.add(ref.Name(), ref.Len()); err != nil {
			return nil, err
		}
	}
	return b.m, nil
}
