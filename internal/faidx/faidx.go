// Package faidx reads the samtools FASTA index (.fai) that sits next to a
// reference sequence file.
package faidx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"chromcheck/internal/chrom"
)

// Suffix is appended to the FASTA path to locate its index.
const Suffix = ".fai"

// IndexPath returns the index path for a reference FASTA.
func IndexPath(fasta string) string { return fasta + Suffix }

func remedy(fasta string) string {
	return fmt.Sprintf("\tRe-running fasta indexing may fix the issue. To do so, run: \"samtools faidx %s\"", fasta)
}

// Load opens IndexPath(fasta) and parses it.
func Load(fasta string) (chrom.ReferenceMap, error) {
	fai := IndexPath(fasta)
	fh, err := os.Open(fai)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, chrom.Errorf("Can't find fasta index file: '%s'\n%s", fai, remedy(fasta))
		}
		return nil, fmt.Errorf("open fasta index: %w", err)
	}
	defer fh.Close()
	return Parse(fh, fai, fasta)
}

// Parse reads index lines of exactly five whitespace-separated fields and
// returns name -> length. fai and fasta are used only in error messages.
func Parse(r io.Reader, fai, fasta string) (chrom.ReferenceMap, error) {
	info := chrom.ReferenceMap{}
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		f := strings.Fields(sc.Text())
		if len(f) != 5 {
			return nil, chrom.Errorf("Unexpected format for line number '%d' of fasta index file: '%s'\n%s", ln, fai, remedy(fasta))
		}
		size, err := strconv.Atoi(f[1])
		if err != nil || size <= 0 {
			return nil, chrom.Errorf("Unexpected chromosome length '%s' on line number '%d' of fasta index file: '%s'\n%s", f[1], ln, fai, remedy(fasta))
		}
		if _, dup := info[f[0]]; dup {
			return nil, chrom.Errorf("Duplicate chromosome '%s' on line number '%d' of fasta index file: '%s'\n%s", f[0], ln, fai, remedy(fasta))
		}
		info[f[0]] = size
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta index scan %s: %w", fai, err)
	}
	return info, nil
}

// Loader adapts Load to the checker's reference loader contract.
type Loader struct{}

func (Loader) Load(fasta string) (chrom.ReferenceMap, error) { return Load(fasta) }
