package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/miren-lang/miren/internal/diag"
	"github.com/miren-lang/miren/internal/parser"
)

func newParseCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse Miren source files and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed bool
			for _, path := range args {
				out, src, err := parseFile(path)
				if err != nil {
					return err
				}
				reportDiagnostics(path, src, out)
				if len(out.Errors) > 0 {
					failed = true
				}
				if dump {
					out.Dump(os.Stdout)
				}
			}
			if failed {
				return fmt.Errorf("parse failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the syntax tree")
	return cmd
}

func parseFile(path string) (parser.ParseOutput, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return parser.ParseOutput{}, "", fmt.Errorf("read %s: %w", path, err)
	}
	return parser.Parse(path, string(src)), string(src), nil
}

// diagOptions carries the root-level output flags into diagnostic rendering.
type diagOptions struct {
	json      bool
	maxErrors int // 0 = unlimited
}

func reportDiagnostics(path, src string, out parser.ParseOutput) {
	opts := diagOptions{json: jsonOutput, maxErrors: maxErrors}
	if err := writeDiagnostics(os.Stderr, path, src, out.ToDiagnostics(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "miren: %s\n", err)
	}
}

func writeDiagnostics(w io.Writer, path, src string, ds []diag.Diagnostic, opts diagOptions) error {
	total := len(ds)
	if opts.maxErrors > 0 && len(ds) > opts.maxErrors {
		ds = ds[:opts.maxErrors]
	}
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	}
	f := diag.NewFormatter(w)
	f.AddSource(path, src)
	for _, d := range ds {
		f.Format(d)
	}
	if omitted := total - len(ds); omitted > 0 {
		fmt.Fprintf(w, "%s: %d further error(s) not shown\n", path, omitted)
	}
	return nil
}
