package checker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"chromcheck/internal/chrom"
	"chromcheck/internal/faidx"
	"chromcheck/internal/htsheader"
	"chromcheck/internal/tabix"
)

// ErrLabelCount is returned when the label list does not match the alignment list.
var ErrLabelCount = errors.New("label count does not match alignment file count")

// ReferenceLoader returns name -> length for a reference FASTA.
type ReferenceLoader interface {
	Load(fasta string) (chrom.ReferenceMap, error)
}

// ArchiveLister returns the chromosome names known to an indexed archive.
type ArchiveLister interface {
	Chroms(ctx context.Context, path string) (chrom.NameSet, error)
}

// Checker wires the readers used by Run. Archives may be nil when no
// archive files are checked.
type Checker struct {
	Reference ReferenceLoader
	Headers   htsheader.Source
	Archives  ArchiveLister
}

// New returns a Checker backed by the .fai reader and the external tools.
func New(htsfileBin, tabixBin string, stderr io.Writer) *Checker {
	return &Checker{
		Reference: faidx.Loader{},
		Headers:   htsheader.Command{Htsfile: htsfileBin, Stderr: stderr},
		Archives:  tabix.Lister{Tabix: tabixBin, Stderr: stderr},
	}
}

// Input describes one validation run.
type Input struct {
	Reference       string
	Alignments      []string
	Labels          []string // nil: "index0", "index1", ...
	Archives        []string
	ReferenceLocked bool
}

// AlignmentSummary describes one validated alignment file.
type AlignmentSummary struct {
	Label  string
	Path   string
	Chroms int
}

// ArchiveSummary describes one validated archive file.
type ArchiveSummary struct {
	Path   string
	Chroms int
}

// Summary is what a successful run established.
type Summary struct {
	Reference       string
	ReferenceChroms int
	ReferenceLocked bool
	CanonicalOrder  []string
	Alignments      []AlignmentSummary
	Archives        []ArchiveSummary
	// ExtraReference lists reference chromosomes absent from the baseline
	// alignment file. Always empty when ReferenceLocked is set.
	ExtraReference []string
}

// DefaultLabels returns "index0".."index<n-1>".
func DefaultLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("index%d", i)
	}
	return out
}

// Run validates in and stops at the first inconsistency.
func (c *Checker) Run(ctx context.Context, in Input) (Summary, error) {
	if len(in.Alignments) == 0 && len(in.Archives) == 0 {
		return Summary{}, nil
	}
	labels := in.Labels
	if labels == nil {
		labels = DefaultLabels(len(in.Alignments))
	}
	if len(labels) != len(in.Alignments) {
		return Summary{}, fmt.Errorf("%w: %d labels for %d alignment files", ErrLabelCount, len(labels), len(in.Alignments))
	}
	if len(in.Archives) > 0 && c.Archives == nil {
		return Summary{}, errors.New("checker: archive files given but no archive lister configured")
	}

	ref, err := c.Reference.Load(in.Reference)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Reference:       in.Reference,
		ReferenceChroms: len(ref),
		ReferenceLocked: in.ReferenceLocked,
	}

	if len(in.Alignments) > 0 {
		if err := c.checkAlignments(ctx, in, labels, ref, &sum); err != nil {
			return Summary{}, err
		}
	}

	for _, path := range in.Archives {
		names, err := c.Archives.Chroms(ctx, path)
		if err != nil {
			return Summary{}, err
		}
		if err := checkArchive(names, ref, path, in.Reference); err != nil {
			return Summary{}, err
		}
		sum.Archives = append(sum.Archives, ArchiveSummary{Path: path, Chroms: len(names)})
	}
	return sum, nil
}

func (c *Checker) checkAlignments(ctx context.Context, in Input, labels []string, ref chrom.ReferenceMap, sum *Summary) error {
	first, err := c.Headers.Header(ctx, in.Alignments[0])
	if err != nil {
		return err
	}
	canon := chrom.CanonicalOrder(first)
	base := fileRef{label: labels[0], path: in.Alignments[0]}

	if err := checkAgainstReference(first, canon, ref, base, in.Reference); err != nil {
		return err
	}
	extra := missingFromAlignment(ref, first)
	if in.ReferenceLocked && len(extra) > 0 {
		return chrom.Errorf("Reference genome mismatch: %s alignment file '%s' is missing a chromosome found in the reference fasta file '%s': '%s'",
			base.label, base.path, in.Reference, extra[0])
	}
	sum.CanonicalOrder = canon
	sum.ExtraReference = extra
	sum.Alignments = append(sum.Alignments, AlignmentSummary{Label: base.label, Path: base.path, Chroms: len(first)})

	for i := 1; i < len(in.Alignments); i++ {
		f := fileRef{label: labels[i], path: in.Alignments[i]}
		m, err := c.Headers.Header(ctx, f.path)
		if err != nil {
			return err
		}
		if err := checkAgainstReference(m, chrom.CanonicalOrder(m), ref, f, in.Reference); err != nil {
			return err
		}
		if err := checkOrder(canon, m, base, f); err != nil {
			return err
		}
		sum.Alignments = append(sum.Alignments, AlignmentSummary{Label: f.label, Path: f.path, Chroms: len(m)})
	}
	return nil
}

// CheckChromSet validates the alignment files against referenceFasta using
// `htsfileBin -h` to read headers. It returns nil when everything agrees.
func CheckChromSet(ctx context.Context, htsfileBin, referenceFasta string, alignments, labels []string, referenceLocked bool) error {
	c := &Checker{
		Reference: faidx.Loader{},
		Headers:   htsheader.Command{Htsfile: htsfileBin},
	}
	_, err := c.Run(ctx, Input{
		Reference:       referenceFasta,
		Alignments:      alignments,
		Labels:          labels,
		ReferenceLocked: referenceLocked,
	})
	return err
}
