// Package chrom holds the chromosome records shared by the readers and the
// consistency checker.
package chrom

import "sort"

// Record is one chromosome entry of an alignment header.
// Order is the zero-based position of the entry in header order.
type Record struct {
	Name   string
	Length int
	Order  int
}

// ReferenceMap maps a reference chromosome name to its length.
type ReferenceMap map[string]int

// Names returns the reference chromosome names sorted lexically.
func (m ReferenceMap) Names() []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AlignmentMap maps a chromosome name to its header record.
type AlignmentMap map[string]Record

// CanonicalOrder returns the chromosome names of m sorted by header order.
func CanonicalOrder(m AlignmentMap) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return m[out[i]].Order < m[out[j]].Order })
	return out
}

// NameSet is a presence-only set of chromosome names.
type NameSet map[string]struct{}

// Names returns the members of s sorted lexically.
func (s NameSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
