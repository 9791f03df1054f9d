package diag

import (
	"strings"
	"testing"
)

func TestSpanString(t *testing.T) {
	s := Span{Filename: "main.mn", Line: 3, Column: 7}
	if got := s.String(); got != "main.mn:3:7" {
		t.Fatalf("span string = %q", got)
	}

	anon := Span{Line: 1, Column: 2}
	if got := anon.String(); got != "1:2" {
		t.Fatalf("anonymous span string = %q", got)
	}
}

func TestDiagnosticBuilders(t *testing.T) {
	d := Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeParseExpectedExpr,
		Message:  "expected an expression",
	}
	d = d.WithHelp("operators need an operand on each side").
		WithFix("remove the trailing operator").
		WithNote("found end of input")

	if d.Help == "" || d.Fix == "" || len(d.Notes) != 1 {
		t.Fatalf("builder fields not applied: %+v", d)
	}
}

func TestFormatterSnippet(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)
	f.AddSource("main.mn", "let x =\nlet y = 2\n")

	f.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeParseExpectedExpr,
		Message:  "expected an expression",
		Span:     Span{Filename: "main.mn", Line: 1, Column: 7, Start: 6, End: 7},
		Help:     "`=` must be followed by an initializer",
	})

	rendered := out.String()
	for _, want := range []string{
		"error[PARSE_EXPECTED_EXPRESSION]: expected an expression",
		"--> main.mn:1:7",
		"let x =",
		"^",
		"help: `=` must be followed by an initializer",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("output missing %q:\n%s", want, rendered)
		}
	}
}
