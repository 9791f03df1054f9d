package parser_test

import (
	"strings"
	"testing"

	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/parser"
)

func hasErrorKind(out parser.ParseOutput, kind parser.ErrorKind) bool {
	for _, e := range out.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestRunawayOpenDelimitersTerminate(t *testing.T) {
	for _, src := range []string{"((((", "$r = ((((", "$r = [[[[", "@f () -> int = (((("} {
		out := parser.Parse("test.mn", src)
		if len(out.Errors) == 0 {
			t.Errorf("%q: no errors reported", src)
		}
		if out.Tree.Tag(out.Root) != ast.TagModule {
			t.Errorf("%q: root = %v, want Module", src, out.Tree.Tag(out.Root))
		}
	}
}

func TestGarbageRunTerminatesUnderCap(t *testing.T) {
	// 400 junk tokens overrun the single-scan recovery cap; the scan must
	// restart and still reach the next item.
	src := "$a = 1\n" + strings.Repeat("* ", 400) + "\n$b = 2\n"
	out := parser.Parse("test.mn", src)
	if len(out.Errors) == 0 {
		t.Fatal("no errors reported")
	}
	if got := len(collect(out, ast.TagConst)); got != 2 {
		t.Fatalf("const count = %d, want both constants recovered", got)
	}
}

func TestUnclosedCallReported(t *testing.T) {
	out := parser.Parse("test.mn", "$r = f(x: 1, y: 2\n")
	if !hasErrorKind(out, parser.ErrUnclosedDelimiter) {
		t.Fatalf("errors = %+v, want unclosed-delimiter", out.Errors)
	}
}

func TestStrayCloserReported(t *testing.T) {
	out := parser.Parse("test.mn", "$a = 1\n)\n$b = 2\n")
	if !hasErrorKind(out, parser.ErrStrayCloser) {
		t.Fatalf("errors = %+v, want stray-closer", out.Errors)
	}
	if got := len(collect(out, ast.TagConst)); got != 2 {
		t.Fatalf("const count = %d, want 2", got)
	}
}

func TestMissingSeparatorResyncs(t *testing.T) {
	out := parser.Parse("test.mn", "$r = [1 2]\n$s = 3\n")
	if !hasErrorKind(out, parser.ErrMissingSeparator) {
		t.Fatalf("errors = %+v, want missing-separator", out.Errors)
	}
	if got := len(collect(out, ast.TagConst)); got != 2 {
		t.Fatalf("const count = %d, want the next item to survive", got)
	}
}

func TestBadListElementKeepsRest(t *testing.T) {
	out := parser.Parse("test.mn", "$r = [1, *, 3]\n")
	if len(out.Errors) == 0 {
		t.Fatal("no errors reported")
	}
	list := firstNode(t, out, ast.TagList)
	elems := out.Tree.ExtraNodes(out.Tree.Payload(list).Range())
	if len(elems) != 3 {
		t.Fatalf("element count = %d, want placeholder for the bad element", len(elems))
	}
	if out.Tree.Tag(elems[1]) != ast.TagError {
		t.Fatalf("middle element = %v, want Error placeholder", out.Tree.Tag(elems[1]))
	}
	if out.Tree.Tag(elems[2]) != ast.TagInt {
		t.Fatalf("last element = %v, want Int", out.Tree.Tag(elems[2]))
	}
}

func TestErrorNodePlaceholdersInModule(t *testing.T) {
	out := parser.Parse("test.mn", "@broken (\n$b = 2\n")
	items := out.Tree.ExtraNodes(out.Tree.Payload(out.Root).Range())
	if len(items) < 2 {
		t.Fatalf("item count = %d, want placeholder plus surviving constant", len(items))
	}
	if out.Tree.Tag(items[len(items)-1]) != ast.TagConst {
		t.Fatalf("last item = %v, want Const", out.Tree.Tag(items[len(items)-1]))
	}
}

func TestMultipleErrorsAccumulate(t *testing.T) {
	out := parser.Parse("test.mn", "$a = 1 +\n$b = [1 2]\n$c = (\n")
	if len(out.Errors) < 3 {
		t.Fatalf("error count = %d (%+v), want one per defect", len(out.Errors), out.Errors)
	}
}
