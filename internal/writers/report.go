package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"chromcheck/internal/checker"
	"chromcheck/pkg/api"
)

func init() {
	RegisterReport("text", WriteText)
	RegisterReport("json", WriteJSON)
}

// ToAPI converts a summary to the v1 wire type.
func ToAPI(s checker.Summary) api.ReportV1 {
	r := api.ReportV1{
		Status:          "ok",
		Reference:       s.Reference,
		ReferenceChroms: s.ReferenceChroms,
		ReferenceLocked: s.ReferenceLocked,
		CanonicalOrder:  s.CanonicalOrder,
		Alignments:      make([]api.AlignmentV1, 0, len(s.Alignments)),
		ExtraReference:  s.ExtraReference,
	}
	if r.CanonicalOrder == nil {
		r.CanonicalOrder = []string{}
	}
	for _, a := range s.Alignments {
		r.Alignments = append(r.Alignments, api.AlignmentV1{Label: a.Label, Path: a.Path, Chroms: a.Chroms})
	}
	for _, a := range s.Archives {
		r.Archives = append(r.Archives, api.ArchiveV1{Path: a.Path, Chroms: a.Chroms})
	}
	return r
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s checker.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPI(s))
}

// WriteText writes a short human-readable report.
func WriteText(w io.Writer, s checker.Summary) error {
	mode := "unlocked"
	if s.ReferenceLocked {
		mode = "locked"
	}
	if _, err := fmt.Fprintf(w, "OK: reference '%s' (%d chromosomes, %s)\n", s.Reference, s.ReferenceChroms, mode); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(s.Alignments) > 0 {
		fmt.Fprintln(tw, "label\tchroms\talignment")
		for _, a := range s.Alignments {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", a.Label, a.Chroms, a.Path)
		}
	}
	for _, a := range s.Archives {
		fmt.Fprintf(tw, "archive\t%d\t%s\n", a.Chroms, a.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n := len(s.ExtraReference); n > 0 {
		if _, err := fmt.Fprintf(w, "reference-only chromosomes: %d (%s)\n", n, abbreviate(s.ExtraReference, 5)); err != nil {
			return err
		}
	}
	return nil
}

func abbreviate(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:limit], ", ") + fmt.Sprintf(", … +%d more", len(names)-limit)
}
