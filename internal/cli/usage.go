package cli

import (
	"flag"
	"fmt"

	"chromcheck/internal/version"
)

// NewFlagSet returns a ContinueOnError FlagSet with the grouped help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – reference / alignment chromosome consistency check\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage:\n  %s -r ref.fa [flags] normal.bam tumor.bam ...\n", name)
		fmt.Fprintf(out, "  %s --config run.yaml\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -r, --reference file        Reference FASTA (index expected at <file>.fai) [*]")
		fmt.Fprintln(out, "  -a, --alignments file       BAM/SAM/CRAM file (repeatable; positionals and globs also accepted)")
		fmt.Fprintln(out, "  -l, --label string          Label for the matching alignment (repeatable, one per file)")
		fmt.Fprintln(out, "      --archive file          Tabix-indexed file whose chromosomes must be in the reference (repeatable)")
		fmt.Fprintln(out, "      --config file           YAML run manifest; explicit flags override it")

		fmt.Fprintln(out, "\nCheck:")
		fmt.Fprintf(out, "      --locked                Alignments must contain every reference chromosome [%s]\n", def("locked"))
		fmt.Fprintf(out, "      --header-source string  Header reader: command | native [%s]\n", def("header-source"))
		fmt.Fprintf(out, "      --htsfile path          htsfile binary used by the command header reader [%s]\n", def("htsfile"))
		fmt.Fprintf(out, "      --tabix path            tabix binary used for --archive files [%s]\n", def("tabix"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Report on success: text | json [%s]\n", def("output"))
		fmt.Fprintf(out, "  -q, --quiet                 Print nothing on success; suppress warnings [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Print informational notes to stderr [%s]\n", def("verbose"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")

		fmt.Fprintln(out, "\nExit status: 0 consistent, 1 configuration error, 2 usage error, 3 output error.")
	}
	return fs
}
