package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with a source snippet and caret underline.
type Formatter struct {
	out     io.Writer
	sources map[string]string
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:     out,
		sources: make(map[string]string),
	}
}

// AddSource registers source text so spans in that file can be rendered with
// a snippet. Unregistered files fall back to the location-only format.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// Format renders one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}

	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
		f.printSnippet(d.Span)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "  help: %s\n", d.Help)
	}
	if d.Fix != "" {
		fmt.Fprintf(f.out, "  fix: %s\n", d.Fix)
	}
}

func (f *Formatter) printSnippet(span Span) {
	src, ok := f.sources[span.Filename]
	if !ok {
		return
	}

	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		return
	}
	line := lines[span.Line-1]

	width := len(fmt.Sprintf("%d", span.Line))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(f.out, " %s |\n", gutter)
	fmt.Fprintf(f.out, " %d | %s\n", span.Line, line)

	carets := span.End - span.Start
	if carets < 1 {
		carets = 1
	}
	if span.Column-1+carets > len(line) {
		carets = len(line) - (span.Column - 1)
		if carets < 1 {
			carets = 1
		}
	}
	pad := span.Column - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(f.out, " %s | %s%s\n", gutter, strings.Repeat(" ", pad), strings.Repeat("^", carets))
}
