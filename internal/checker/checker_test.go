package checker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"chromcheck/internal/chrom"
)

type fakeRef struct {
	m     chrom.ReferenceMap
	calls int
}

func (f *fakeRef) Load(string) (chrom.ReferenceMap, error) {
	f.calls++
	return f.m, nil
}

type fakeHeaders struct {
	files map[string][]chrom.Record
	read  []string
}

func (f *fakeHeaders) Header(_ context.Context, path string) (chrom.AlignmentMap, error) {
	f.read = append(f.read, path)
	recs, ok := f.files[path]
	if !ok {
		return nil, chrom.Errorf("no such file %s", path)
	}
	m := chrom.AlignmentMap{}
	for i, r := range recs {
		r.Order = i
		m[r.Name] = r
	}
	return m, nil
}

type fakeArchives map[string]chrom.NameSet

func (f fakeArchives) Chroms(_ context.Context, path string) (chrom.NameSet, error) {
	return f[path], nil
}

func recs(pairs ...any) []chrom.Record {
	var out []chrom.Record
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, chrom.Record{Name: pairs[i].(string), Length: pairs[i+1].(int)})
	}
	return out
}

var hg = chrom.ReferenceMap{"chr1": 1000, "chr2": 800, "chr3": 600, "chrM": 16, "decoy": 5}

func newChecker(files map[string][]chrom.Record) (*Checker, *fakeRef, *fakeHeaders) {
	r := &fakeRef{m: hg}
	h := &fakeHeaders{files: files}
	return &Checker{Reference: r, Headers: h}, r, h
}

func run(c *Checker, in Input) error {
	_, err := c.Run(context.Background(), in)
	return err
}

func wantConfigError(t *testing.T, err error, frags ...string) {
	t.Helper()
	if !chrom.IsConfigError(err) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	for _, f := range frags {
		if !strings.Contains(err.Error(), f) {
			t.Errorf("error %q lacks %q", err, f)
		}
	}
}

func TestEmptyAlignmentListIsNoOp(t *testing.T) {
	c, r, h := newChecker(nil)
	if err := run(c, Input{Reference: "ref.fa", Labels: []string{"a", "b"}, ReferenceLocked: true}); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if r.calls != 0 || len(h.read) != 0 {
		t.Fatalf("files read for empty list: ref=%d headers=%v", r.calls, h.read)
	}
}

func TestLabelCountPrecondition(t *testing.T) {
	c, r, h := newChecker(map[string][]chrom.Record{"a.bam": recs("chr1", 1000)})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"a.bam"}, Labels: []string{"n", "t"}})
	if !errors.Is(err, ErrLabelCount) {
		t.Fatalf("want ErrLabelCount, got %v", err)
	}
	if r.calls != 0 || len(h.read) != 0 {
		t.Fatalf("files read before precondition: ref=%d headers=%v", r.calls, h.read)
	}
}

func TestUnlockedAllowsExtraReferenceChroms(t *testing.T) {
	c, r, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000, "chr2", 800, "chrM", 16),
		"t.bam": recs("chr1", 1000, "chr2", 800, "chrM", 16),
	})
	sum, err := c.Run(context.Background(), Input{Reference: "ref.fa", Alignments: []string{"n.bam", "t.bam"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("reference loaded %d times", r.calls)
	}
	if want := []string{"chr3", "decoy"}; !reflect.DeepEqual(sum.ExtraReference, want) {
		t.Fatalf("ExtraReference=%v want %v", sum.ExtraReference, want)
	}
	if want := []string{"chr1", "chr2", "chrM"}; !reflect.DeepEqual(sum.CanonicalOrder, want) {
		t.Fatalf("CanonicalOrder=%v", sum.CanonicalOrder)
	}
	if len(sum.Alignments) != 2 || sum.Alignments[1].Label != "index1" || sum.Alignments[1].Chroms != 3 {
		t.Fatalf("Alignments=%+v", sum.Alignments)
	}
}

func TestLockedRequiresAllReferenceChroms(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000, "chr2", 800, "chr3", 600, "chrM", 16),
	})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam"}, Labels: []string{"normal"}, ReferenceLocked: true})
	wantConfigError(t, err, "normal alignment file 'n.bam'", "'decoy'", "ref.fa")
}

func TestLockedPassesWhenSetsMatch(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("decoy", 5, "chr1", 1000, "chr2", 800, "chr3", 600, "chrM", 16),
	})
	sum, err := c.Run(context.Background(), Input{Reference: "ref.fa", Alignments: []string{"n.bam"}, ReferenceLocked: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sum.ExtraReference) != 0 {
		t.Fatalf("ExtraReference=%v", sum.ExtraReference)
	}
}

func TestFirstFileChromMissingFromReference(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{"n.bam": recs("chr1", 1000, "chrUn", 10)})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam"}})
	wantConfigError(t, err, "'chrUn'", "index0 alignment file 'n.bam'", "Reference fasta file 'ref.fa'")
}

func TestFirstFileLengthMismatch(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{"n.bam": recs("chr1", 999)})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam"}})
	wantConfigError(t, err, "chromosome 'chr1' is 1000", "but 999", "index0 alignment file 'n.bam'")
}

func TestSecondFileLengthDisagrees(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000, "chr2", 800),
		"t.bam": recs("chr1", 1000, "chr2", 801),
	})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam", "t.bam"}, Labels: []string{"normal", "tumor"}})
	wantConfigError(t, err, "'chr2' is 800", "but 801", "tumor alignment file 't.bam'")
}

func TestSecondFileChromMissingFromReference(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000),
		"t.bam": recs("chr1", 1000, "HLA-A", 3000),
	})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam", "t.bam"}})
	wantConfigError(t, err, "'HLA-A'", "index1 alignment file 't.bam'")
}

func TestReversedOrderCitesOrdinal(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000, "chr2", 800, "chr3", 600),
		"t.bam": recs("chr1", 1000, "chr3", 600, "chr2", 800),
	})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam", "t.bam"}, Labels: []string{"normal", "tumor"}})
	wantConfigError(t, err, "Chromosome order mismatch", "'chr3' is the 2nd shared chromosome in the tumor alignment file", "normal alignment file 'n.bam' is 'chr2'")
}

func TestOrderIgnoresUnsharedChroms(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{
		"n.bam": recs("chr1", 1000, "chr2", 800, "chrM", 16),
		"t.bam": recs("chr3", 600, "chr1", 1000, "decoy", 5, "chrM", 16),
	})
	if err := run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam", "t.bam"}}); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestStopsAtFirstFailure(t *testing.T) {
	c, _, h := newChecker(map[string][]chrom.Record{
		"a.bam": recs("chr1", 1000, "chr2", 800),
		"b.bam": recs("chr2", 800, "chr1", 1000),
		"c.bam": recs("chr1", 1000),
	})
	err := run(c, Input{Reference: "ref.fa", Alignments: []string{"a.bam", "b.bam", "c.bam"}})
	wantConfigError(t, err, "1st shared chromosome")
	if want := []string{"a.bam", "b.bam"}; !reflect.DeepEqual(h.read, want) {
		t.Fatalf("read %v, want %v", h.read, want)
	}
}

func TestArchivesMustBeInReference(t *testing.T) {
	c, _, _ := newChecker(map[string][]chrom.Record{"n.bam": recs("chr1", 1000)})
	c.Archives = fakeArchives{
		"ok.bed.gz":  {"chr1": {}, "chr2": {}},
		"bad.bed.gz": {"chr1": {}, "chr22": {}},
	}
	sum, err := c.Run(context.Background(), Input{Reference: "ref.fa", Alignments: []string{"n.bam"}, Archives: []string{"ok.bed.gz"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sum.Archives) != 1 || sum.Archives[0].Chroms != 2 {
		t.Fatalf("Archives=%+v", sum.Archives)
	}
	err = run(c, Input{Reference: "ref.fa", Alignments: []string{"n.bam"}, Archives: []string{"ok.bed.gz", "bad.bed.gz"}})
	wantConfigError(t, err, "'chr22'", "indexed file 'bad.bed.gz'")
}

func TestArchivesWithoutLister(t *testing.T) {
	c, _, _ := newChecker(nil)
	if err := run(c, Input{Reference: "ref.fa", Archives: []string{"x.bed.gz"}}); err == nil {
		t.Fatalf("expected error without archive lister")
	}
}

func TestDefaultLabels(t *testing.T) {
	if got := DefaultLabels(3); !reflect.DeepEqual(got, []string{"index0", "index1", "index2"}) {
		t.Fatalf("DefaultLabels=%v", got)
	}
}

// TestCheckChromSet drives the function-level contract with a real .fai and
// a stand-in htsfile executable.
func TestCheckChromSet(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string, mode os.FileMode) string {
		fn := filepath.Join(dir, name)
		if err := os.WriteFile(fn, []byte(data), mode); err != nil {
			t.Fatalf("write %s: %v", fn, err)
		}
		return fn
	}
	bin := write("htsfile", "#!/bin/sh\ncat \"$2\"\n", 0o755)
	ref := write("ref.fa", ">chr1\nACGT\n", 0o644)
	write("ref.fa.fai", "chr1\t1000\t6\t4\t5\nchr2\t800\t1012\t4\t5\n", 0o644)
	n := write("n.sam", "@SQ\tSN:chr1\tLN:1000\n@SQ\tSN:chr2\tLN:800\n", 0o644)
	tu := write("t.sam", "@SQ\tSN:chr2\tLN:800\n@SQ\tSN:chr1\tLN:1000\n", 0o644)

	ctx := context.Background()
	if err := CheckChromSet(ctx, bin, ref, []string{n, n}, nil, true); err != nil {
		t.Fatalf("consistent set: %v", err)
	}
	if err := CheckChromSet(ctx, bin, ref, nil, nil, true); err != nil {
		t.Fatalf("empty set: %v", err)
	}
	err := CheckChromSet(ctx, bin, ref, []string{n, tu}, []string{"normal", "tumor"}, false)
	wantConfigError(t, err, "1st shared chromosome in the tumor")
}
