// Package config loads a YAML run manifest for chromcheck.
//
//	reference: /data/GRCh38.fa
//	htsfile: /opt/htslib/bin/htsfile
//	reference_locked: true
//	alignments:
//	  - path: normal.bam
//	    label: normal
//	  - path: tumor.cram
//	    label: tumor
//	archives:
//	  - callRegions.bed.gz
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alignment is one alignment file entry.
type Alignment struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label,omitempty"`
}

// Manifest mirrors the command-line options.
type Manifest struct {
	Reference       string      `yaml:"reference"`
	Htsfile         string      `yaml:"htsfile,omitempty"`
	Tabix           string      `yaml:"tabix,omitempty"`
	HeaderSource    string      `yaml:"header_source,omitempty"`
	ReferenceLocked bool        `yaml:"reference_locked,omitempty"`
	Alignments      []Alignment `yaml:"alignments"`
	Archives        []string    `yaml:"archives,omitempty"`
}

// Parse decodes and validates a manifest payload. Unknown keys are rejected.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if len(bytes.TrimSpace(data)) == 0 {
		return m, errors.New("config: manifest is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("config: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks entries that can be judged without the rest of the CLI.
func (m Manifest) Validate() error {
	labeled := 0
	for i, a := range m.Alignments {
		if strings.TrimSpace(a.Path) == "" {
			return fmt.Errorf("config: alignments[%d]: path is required", i)
		}
		if a.Label != "" {
			labeled++
		}
	}
	if labeled != 0 && labeled != len(m.Alignments) {
		return errors.New("config: label either every alignment or none")
	}
	for i, a := range m.Archives {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("config: archives[%d]: path is empty", i)
		}
	}
	return nil
}

// Paths returns the alignment paths in manifest order.
func (m Manifest) Paths() []string {
	out := make([]string, 0, len(m.Alignments))
	for _, a := range m.Alignments {
		out = append(out, a.Path)
	}
	return out
}

// Labels returns the alignment labels, or nil when none are set.
func (m Manifest) Labels() []string {
	if len(m.Alignments) == 0 || m.Alignments[0].Label == "" {
		return nil
	}
	out := make([]string, 0, len(m.Alignments))
	for _, a := range m.Alignments {
		out = append(out, a.Label)
	}
	return out
}

// Load reads a manifest file. Relative paths inside it are resolved against
// the manifest's directory.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	m.Reference = resolve(dir, m.Reference)
	for i := range m.Alignments {
		m.Alignments[i].Path = resolve(dir, m.Alignments[i].Path)
	}
	for i := range m.Archives {
		m.Archives[i] = resolve(dir, m.Archives[i])
	}
	return m, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
