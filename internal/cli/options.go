// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"chromcheck/internal/cliutil"
	"chromcheck/internal/config"
)

// Header sources
const (
	SourceCommand = "command"
	SourceNative  = "native"
)

// Options holds all CLI flags and arguments after the manifest is merged in.
type Options struct {
	// Input
	Reference  string
	Alignments []string
	Labels     []string
	Archives   []string
	ConfigFile string

	// Check
	Locked       bool
	HeaderSource string
	Htsfile      string
	Tabix        string

	// Output
	Output  string
	Quiet   bool
	Verbose bool

	Version bool
}

// sliceValue appends each value to a *[]string.
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// ParseArgs registers and parses all flags and returns an Options struct.
// Flags and positionals may be interleaved.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Reference, "reference", "", "reference FASTA")
	fs.StringVar(&opt.Reference, "r", "", "alias of --reference")
	alnVal := &sliceValue{dst: &opt.Alignments}
	fs.Var(alnVal, "alignments", "alignment file (repeatable)")
	fs.Var(alnVal, "a", "alias of --alignments")
	lblVal := &sliceValue{dst: &opt.Labels}
	fs.Var(lblVal, "label", "alignment label (repeatable)")
	fs.Var(lblVal, "l", "alias of --label")
	fs.Var(&sliceValue{dst: &opt.Archives}, "archive", "tabix-indexed file (repeatable)")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run manifest")

	fs.BoolVar(&opt.Locked, "locked", false, "require every reference chromosome in the alignments")
	fs.StringVar(&opt.HeaderSource, "header-source", SourceCommand, "header reader: command | native")
	fs.StringVar(&opt.Htsfile, "htsfile", "htsfile", "htsfile binary")
	fs.StringVar(&opt.Tabix, "tabix", "tabix", "tabix binary")

	fs.StringVar(&opt.Output, "output", "text", "report format: text | json")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.BoolVar(&opt.Quiet, "quiet", false, "print nothing on success")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Verbose, "verbose", false, "print informational notes")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	posArgs = append(posArgs, fs.Args()...)
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.Alignments = append(opt.Alignments, exp...)
	}

	if opt.ConfigFile != "" {
		m, err := config.Load(opt.ConfigFile)
		if err != nil {
			return opt, err
		}
		merge(fs, &opt, m)
	}
	return opt, Validate(&opt)
}

// merge copies manifest values into opt wherever the matching flag was not
// given explicitly. Alignment paths and labels travel together.
func merge(fs *flag.FlagSet, opt *Options, m config.Manifest) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["reference"] && !set["r"] && m.Reference != "" {
		opt.Reference = m.Reference
	}
	if !set["htsfile"] && m.Htsfile != "" {
		opt.Htsfile = m.Htsfile
	}
	if !set["tabix"] && m.Tabix != "" {
		opt.Tabix = m.Tabix
	}
	if !set["header-source"] && m.HeaderSource != "" {
		opt.HeaderSource = m.HeaderSource
	}
	if !set["locked"] {
		opt.Locked = m.ReferenceLocked
	}
	if len(opt.Alignments) == 0 && len(opt.Labels) == 0 {
		opt.Alignments = m.Paths()
		opt.Labels = m.Labels()
	}
	if len(opt.Archives) == 0 {
		opt.Archives = m.Archives
	}
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	if o.Reference == "" {
		return errors.New("--reference is required")
	}
	if len(o.Alignments) == 0 && len(o.Archives) == 0 {
		return errors.New("at least one alignment or --archive file is required")
	}
	if len(o.Labels) > 0 && len(o.Labels) != len(o.Alignments) {
		return fmt.Errorf("got %d --label values for %d alignment files", len(o.Labels), len(o.Alignments))
	}
	switch o.HeaderSource {
	case SourceCommand, SourceNative:
	default:
		return fmt.Errorf("invalid --header-source %q", o.HeaderSource)
	}
	switch o.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}
