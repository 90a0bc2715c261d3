package checker

import "chromcheck/internal/chrom"

type fileRef struct {
	label string
	path  string
}

// checkAgainstReference walks names (header order of m) and requires each to
// exist in ref with the same length.
func checkAgainstReference(m chrom.AlignmentMap, names []string, ref chrom.ReferenceMap, f fileRef, refPath string) error {
	for _, name := range names {
		refLen, ok := ref[name]
		if !ok {
			return chrom.Errorf("Reference genome mismatch: Reference fasta file '%s' is missing a chromosome found in the %s alignment file '%s': '%s'",
				refPath, f.label, f.path, name)
		}
		if got := m[name].Length; got != refLen {
			return chrom.Errorf("Reference genome mismatch: The length of chromosome '%s' is %d in the reference fasta file '%s' but %d in the %s alignment file '%s'",
				name, refLen, refPath, got, f.label, f.path)
		}
	}
	return nil
}

// missingFromAlignment returns reference names absent from m, sorted.
func missingFromAlignment(ref chrom.ReferenceMap, m chrom.AlignmentMap) []string {
	var out []string
	for _, name := range ref.Names() {
		if _, ok := m[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// checkOrder requires the chromosomes m shares with canon to appear in the
// same relative order in both. Chromosomes present in only one of them are
// ignored.
func checkOrder(canon []string, m chrom.AlignmentMap, base, f fileRef) error {
	inCanon := make(map[string]struct{}, len(canon))
	for _, name := range canon {
		inCanon[name] = struct{}{}
	}
	var want []string
	for _, name := range canon {
		if _, ok := m[name]; ok {
			want = append(want, name)
		}
	}
	var got []string
	for _, name := range chrom.CanonicalOrder(m) {
		if _, ok := inCanon[name]; ok {
			got = append(got, name)
		}
	}
	// want and got hold the same names, so lengths match.
	for i := range got {
		if got[i] != want[i] {
			pos := chrom.Ordinal(i + 1)
			return chrom.Errorf("Chromosome order mismatch between alignment files: '%s' is the %s shared chromosome in the %s alignment file '%s', but the %s shared chromosome in the %s alignment file '%s' is '%s'. All alignment files must list their shared chromosomes in the same order",
				got[i], pos, f.label, f.path, pos, base.label, base.path, want[i])
		}
	}
	return nil
}

func checkArchive(names chrom.NameSet, ref chrom.ReferenceMap, path, refPath string) error {
	for _, name := range names.Names() {
		if _, ok := ref[name]; !ok {
			return chrom.Errorf("Reference genome mismatch: Reference fasta file '%s' is missing a chromosome found in the indexed file '%s': '%s'",
				refPath, path, name)
		}
	}
	return nil
}
