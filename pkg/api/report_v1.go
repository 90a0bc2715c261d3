// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema for a successful consistency check.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Status          string        `json:"status"` // "ok"
	Reference       string        `json:"reference"`
	ReferenceChroms int           `json:"reference_chroms"`
	ReferenceLocked bool          `json:"reference_locked"`
	CanonicalOrder  []string      `json:"canonical_order"`
	Alignments      []AlignmentV1 `json:"alignments"`
	Archives        []ArchiveV1   `json:"archives,omitempty"`
	ExtraReference  []string      `json:"extra_reference,omitempty"`
}

// AlignmentV1 is one checked alignment file.
type AlignmentV1 struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Chroms int    `json:"chroms"`
}

// ArchiveV1 is one checked tabix-indexed file.
type ArchiveV1 struct {
	Path   string `json:"path"`
	Chroms int    `json:"chroms"`
}
