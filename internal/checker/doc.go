// Package checker validates that a reference FASTA and a list of alignment
// files agree on chromosome names, lengths and relative order.
//
// The first alignment file is the ordering baseline. Every later file must
// list the chromosomes it shares with the baseline in the same relative order,
// and every alignment chromosome must exist in the reference with the same
// length. With ReferenceLocked set, the baseline must also contain every
// reference chromosome.
//
// Readers are injected (ReferenceLoader, htsheader.Source, ArchiveLister), so
// the checker never parses tool output itself. It never imports cli, app or
// writers; keep it domain-only.
package checker
