package parser_test

import (
	"testing"

	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/parser"
)

func TestFunctionBodyIndented(t *testing.T) {
	parseClean(t, "@foo () -> int =\n  1 + 2\n")
	parseClean(t, "$limit =\n  10 * 10\n")
}

func TestFunctionBodyUnderIndented(t *testing.T) {
	out := parser.Parse("test.mn", "@foo () -> int =\n1 + 2\n")
	if len(out.Errors) != 1 {
		t.Fatalf("errors = %+v, want exactly one", out.Errors)
	}
	if out.Errors[0].Kind != parser.ErrInsufficientIndent {
		t.Fatalf("error kind = %v, want insufficient indentation", out.Errors[0].Kind)
	}
	// The function is still produced with the misindented body attached.
	if got := len(collect(out, ast.TagFunc)); got != 1 {
		t.Fatalf("func count = %d, want 1", got)
	}
}

func TestUnderIndentedLineReportsOnce(t *testing.T) {
	// Every token of the offending line is below the threshold; the line
	// must still report a single error.
	out := parser.Parse("test.mn", "@foo () -> int =\na + b + c + d\n")
	var n int
	for _, e := range out.Errors {
		if e.Kind == parser.ErrInsufficientIndent {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("insufficient-indentation errors = %d, want 1 (all: %+v)", n, out.Errors)
	}
}

func TestIndentErrorSurvivesSpeculation(t *testing.T) {
	// `(a,` forces a speculative lambda attempt that consumes the
	// under-indented line before rolling back. The rollback must also
	// unstamp the per-line dedupe so the committed re-parse still reports.
	out := parser.Parse("test.mn", "@f () -> int =\n  g((a,\nb))\n")
	var n int
	for _, e := range out.Errors {
		if e.Kind == parser.ErrInsufficientIndent {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("insufficient-indentation errors = %d, want 1 (all: %+v)", n, out.Errors)
	}
}

func TestMatchArmsAligned(t *testing.T) {
	out := parseClean(t, "@f (x) -> int =\n match x\n    1 => 10\n    2 => 20\n    3 => 30\n")
	m := firstNode(t, out, ast.TagMatch)
	arms := out.Tree.ExtraNodes(out.Tree.Payload(out.Tree.Payload(m).NodeB()).Range())
	if len(arms) != 3 {
		t.Fatalf("arm count = %d, want 3", len(arms))
	}
}

func TestMatchArmDriftReportsOnceAndKeepsArm(t *testing.T) {
	src := "@f (x) -> int =\n" +
		" match x\n" +
		"    1 => 10\n" +
		"    2 => 20\n" +
		"  3 => 30\n"
	out := parser.Parse("test.mn", src)
	if len(out.Errors) != 1 {
		t.Fatalf("errors = %+v, want exactly one", out.Errors)
	}
	if out.Errors[0].Kind != parser.ErrInconsistentIndent {
		t.Fatalf("error kind = %v, want inconsistent indentation", out.Errors[0].Kind)
	}
	m := firstNode(t, out, ast.TagMatch)
	arms := out.Tree.ExtraNodes(out.Tree.Payload(out.Tree.Payload(m).NodeB()).Range())
	if len(arms) != 3 {
		t.Fatalf("arm count = %d, want all three arms kept", len(arms))
	}
	for _, a := range arms {
		if out.Tree.Tag(a) != ast.TagMatchArm {
			t.Fatalf("arm tag = %v, want MatchArm", out.Tree.Tag(a))
		}
	}
}

func TestForBodyIndentation(t *testing.T) {
	parseClean(t, "@sum (xs) -> int =\n  for x in xs do\n    acc + x\n")

	out := parser.Parse("test.mn", "@sum (xs) -> int =\n  for x in xs do\nacc + x\n")
	var saw bool
	for _, e := range out.Errors {
		if e.Kind == parser.ErrInsufficientIndent {
			saw = true
		}
	}
	if !saw {
		t.Fatalf("errors = %+v, want insufficient indentation", out.Errors)
	}
}

func TestTraitMembersAligned(t *testing.T) {
	out := parser.Parse("test.mn", "trait show\n  @show (x) -> str\n   @debug (x) -> str\n")
	if len(out.Errors) != 1 || out.Errors[0].Kind != parser.ErrInconsistentIndent {
		t.Fatalf("errors = %+v, want one inconsistent-indentation", out.Errors)
	}
	tr := firstNode(t, out, ast.TagTrait)
	members := out.Tree.Payload(tr).NodeA()
	if got := len(out.Tree.ExtraNodes(out.Tree.Payload(members).Range())); got != 2 {
		t.Fatalf("member count = %d, want 2", got)
	}
}
