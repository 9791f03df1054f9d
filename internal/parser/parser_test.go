package parser_test

import (
	"testing"

	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/parser"
)

func parseClean(t *testing.T, src string) parser.ParseOutput {
	t.Helper()
	out := parser.Parse("test.mn", src)
	for _, e := range out.Errors {
		t.Errorf("unexpected parse error: %s", e.Message)
	}
	return out
}

// collect returns every node with the given tag, in preorder.
func collect(out parser.ParseOutput, tag ast.Tag) []ast.NodeId {
	var ids []ast.NodeId
	out.Tree.Walk(out.Root, func(id ast.NodeId) bool {
		if out.Tree.Tag(id) == tag {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

func firstNode(t *testing.T, out parser.ParseOutput, tag ast.Tag) ast.NodeId {
	t.Helper()
	ids := collect(out, tag)
	if len(ids) == 0 {
		t.Fatalf("no %v node in tree", tag)
	}
	return ids[0]
}

// nodeText resolves a token-payload node's token text.
func nodeText(out parser.ParseOutput, id ast.NodeId) string {
	return out.Tokens[out.Tree.Payload(id).A].Text
}

// constValue returns the value expression of the sole constant item.
func constValue(t *testing.T, out parser.ParseOutput) ast.NodeId {
	t.Helper()
	c := firstNode(t, out, ast.TagConst)
	return out.Tree.Payload(c).NodeA()
}

func TestParseEmptyModule(t *testing.T) {
	out := parseClean(t, "\n\n")
	if out.Tree.Tag(out.Root) != ast.TagModule {
		t.Fatalf("root tag = %v, want Module", out.Tree.Tag(out.Root))
	}
	if n := len(out.Tree.ExtraNodes(out.Tree.Payload(out.Root).Range())); n != 0 {
		t.Fatalf("empty module has %d items", n)
	}
}

func TestParseFunctionItem(t *testing.T) {
	out := parseClean(t, "@add (x: int, y: int) -> int = x + y\n")
	fn := firstNode(t, out, ast.TagFunc)
	if got := out.Tokens[out.Tree.Payload(fn).B].Text; got != "add" {
		t.Fatalf("function name = %q, want %q", got, "add")
	}
	sig := out.Tree.Payload(fn).NodeA()
	if out.Tree.Tag(sig) != ast.TagFuncSig {
		t.Fatalf("sig tag = %v", out.Tree.Tag(sig))
	}
	params := out.Tree.Payload(sig).NodeA()
	if out.Tree.Tag(params) != ast.TagParams {
		t.Fatalf("params tag = %v", out.Tree.Tag(params))
	}
	fr := out.Tree.Payload(sig).NodeB()
	if out.Tree.Tag(fr) != ast.TagFuncResult {
		t.Fatalf("result tag = %v", out.Tree.Tag(fr))
	}
	if ret := out.Tree.Payload(fr).NodeA(); out.Tree.Tag(ret) != ast.TagTypeName {
		t.Fatalf("return type tag = %v", out.Tree.Tag(ret))
	}
	if body := out.Tree.Payload(fr).NodeB(); out.Tree.Tag(body) != ast.TagAdd {
		t.Fatalf("body tag = %v", out.Tree.Tag(body))
	}
}

func TestParseConstAndTypeAlias(t *testing.T) {
	out := parseClean(t, "$limit = 100\ntype id = int\n")
	c := firstNode(t, out, ast.TagConst)
	if got := out.Tokens[out.Tree.Payload(c).B].Text; got != "limit" {
		t.Fatalf("const name = %q", got)
	}
	a := firstNode(t, out, ast.TagTypeAlias)
	if got := out.Tokens[out.Tree.Payload(a).B].Text; got != "id" {
		t.Fatalf("alias name = %q", got)
	}
}

func TestParseTraitWithMembers(t *testing.T) {
	out := parseClean(t, "trait show\n  @show (x) -> str\n  @debug (x) -> str\n")
	tr := firstNode(t, out, ast.TagTrait)
	members := out.Tree.Payload(tr).NodeA()
	if out.Tree.Tag(members) != ast.TagBlock {
		t.Fatalf("members tag = %v", out.Tree.Tag(members))
	}
	ids := out.Tree.ExtraNodes(out.Tree.Payload(members).Range())
	if len(ids) != 2 {
		t.Fatalf("trait has %d members, want 2", len(ids))
	}
	for _, m := range ids {
		if out.Tree.Tag(m) != ast.TagFunc {
			t.Fatalf("member tag = %v", out.Tree.Tag(m))
		}
	}
}

func TestParseImplForms(t *testing.T) {
	out := parseClean(t, "impl show for point\n  @show (p) -> str = \"point\"\n")
	im := firstNode(t, out, ast.TagImpl)
	head := out.Tree.Payload(im).NodeA()
	if out.Tree.Tag(head) != ast.TagImplHead {
		t.Fatalf("head tag = %v", out.Tree.Tag(head))
	}
	if tr := out.Tree.Payload(head).NodeA(); tr == ast.NoNode {
		t.Fatal("trait type missing on `impl show for point`")
	}

	out = parseClean(t, "impl point\n  @origin () -> point = point { }\n")
	im = firstNode(t, out, ast.TagImpl)
	head = out.Tree.Payload(im).NodeA()
	if tr := out.Tree.Payload(head).NodeA(); tr != ast.NoNode {
		t.Fatal("inherent impl should have no trait type")
	}
}

func TestParseUseOrdering(t *testing.T) {
	out := parseClean(t, "use std.io\nuse std.fmt\n$x = 1\n")
	if got := len(collect(out, ast.TagUse)); got != 2 {
		t.Fatalf("use count = %d, want 2", got)
	}

	out = parser.Parse("test.mn", "$x = 1\nuse std.io\n")
	if len(out.Errors) != 1 || out.Errors[0].Kind != parser.ErrMisplacedUse {
		t.Fatalf("errors = %+v, want one misplaced-use", out.Errors)
	}
	// The declaration is still recorded.
	if got := len(collect(out, ast.TagUse)); got != 1 {
		t.Fatalf("use count = %d, want 1", got)
	}
}

func TestParsePubWrapsItem(t *testing.T) {
	out := parseClean(t, "pub @f () -> int = 1\n")
	pub := firstNode(t, out, ast.TagPub)
	if inner := out.Tree.Payload(pub).NodeA(); out.Tree.Tag(inner) != ast.TagFunc {
		t.Fatalf("pub wraps %v, want Func", out.Tree.Tag(inner))
	}

	out = parser.Parse("test.mn", "pub 42\n")
	if len(out.Errors) == 0 || out.Errors[0].Kind != parser.ErrOrphanModifier {
		t.Fatalf("errors = %+v, want orphan-modifier first", out.Errors)
	}
}

func TestParseMultipleItemsSurviveBadOne(t *testing.T) {
	out := parser.Parse("test.mn", "$a = 1\n???\n$b = 2\n")
	if len(out.Errors) == 0 {
		t.Fatal("expected at least one error")
	}
	consts := collect(out, ast.TagConst)
	if len(consts) != 2 {
		t.Fatalf("const count = %d, want both constants recovered", len(consts))
	}
	if got := out.Tokens[out.Tree.Payload(consts[1]).B].Text; got != "b" {
		t.Fatalf("second const = %q, want %q", got, "b")
	}
}

func TestLexErrorsSurfaceAsParseErrors(t *testing.T) {
	out := parser.Parse("test.mn", "$x = \"unterminated\n")
	var sawLex bool
	for _, e := range out.Errors {
		if e.Kind == parser.ErrLexical {
			sawLex = true
		}
	}
	if !sawLex {
		t.Fatalf("errors = %+v, want a lexical error", out.Errors)
	}
}
