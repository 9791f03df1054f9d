package parser_test

import (
	"testing"

	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/parser"
)

func TestMulBindsTighterThanAdd(t *testing.T) {
	out := parseClean(t, "$r = 1 + 2 * 3\n")
	add := constValue(t, out)
	if out.Tree.Tag(add) != ast.TagAdd {
		t.Fatalf("top = %v, want Add", out.Tree.Tag(add))
	}
	if l := out.Tree.Payload(add).NodeA(); out.Tree.Tag(l) != ast.TagInt {
		t.Fatalf("left = %v, want Int", out.Tree.Tag(l))
	}
	if r := out.Tree.Payload(add).NodeB(); out.Tree.Tag(r) != ast.TagMul {
		t.Fatalf("right = %v, want Mul", out.Tree.Tag(r))
	}
}

func TestAddIsLeftAssociative(t *testing.T) {
	out := parseClean(t, "$r = 1 + 2 + 3\n")
	top := constValue(t, out)
	if out.Tree.Tag(top) != ast.TagAdd {
		t.Fatalf("top = %v, want Add", out.Tree.Tag(top))
	}
	if l := out.Tree.Payload(top).NodeA(); out.Tree.Tag(l) != ast.TagAdd {
		t.Fatalf("left = %v, want nested Add", out.Tree.Tag(l))
	}
	if r := out.Tree.Payload(top).NodeB(); out.Tree.Tag(r) != ast.TagInt {
		t.Fatalf("right = %v, want Int", out.Tree.Tag(r))
	}
}

func TestComparisonChainsLeft(t *testing.T) {
	out := parseClean(t, "$r = a < b < c\n")
	top := constValue(t, out)
	if out.Tree.Tag(top) != ast.TagLess {
		t.Fatalf("top = %v, want Less", out.Tree.Tag(top))
	}
	if l := out.Tree.Payload(top).NodeA(); out.Tree.Tag(l) != ast.TagLess {
		t.Fatalf("left = %v, want nested Less", out.Tree.Tag(l))
	}
	if r := out.Tree.Payload(top).NodeB(); out.Tree.Tag(r) != ast.TagIdent {
		t.Fatalf("right = %v, want Ident", out.Tree.Tag(r))
	}
}

// Binary operands live inline in the node payload. Comparing extra-data
// growth against a minimal module shows no list storage is touched.
func TestBinaryChildrenStayInline(t *testing.T) {
	base := parseClean(t, "$r = 1\n")
	bin := parseClean(t, "$r = 1 + 2 * 3 - 4\n")
	if base.Tree.ExtraLen() != bin.Tree.ExtraLen() {
		t.Fatalf("binary expression grew extra data: %d -> %d",
			base.Tree.ExtraLen(), bin.Tree.ExtraLen())
	}
}

func TestCallArgumentStorage(t *testing.T) {
	// Zero and one argument: inline.
	base := parseClean(t, "$r = f()\n")
	one := parseClean(t, "$r = f(x: 1)\n")
	if base.Tree.ExtraLen() != one.Tree.ExtraLen() {
		t.Fatalf("one-arg call grew extra data")
	}
	call := firstNode(t, base, ast.TagCall)
	if arg := base.Tree.Payload(call).NodeB(); arg != ast.NoNode {
		t.Fatalf("empty call arg = %v, want NoNode", arg)
	}

	// Two arguments: inline pair node.
	two := parseClean(t, "$r = f(x: 1, y: 2)\n")
	if base.Tree.ExtraLen() != two.Tree.ExtraLen() {
		t.Fatalf("two-arg call grew extra data")
	}
	call = firstNode(t, two, ast.TagCall)
	if arg := two.Tree.Payload(call).NodeB(); two.Tree.Tag(arg) != ast.TagArgPair {
		t.Fatalf("two-arg container = %v, want ArgPair", two.Tree.Tag(arg))
	}

	// Three arguments: extra-data buffer.
	three := parseClean(t, "$r = f(x: 1, y: 2, z: 3)\n")
	if got, want := three.Tree.ExtraLen(), base.Tree.ExtraLen()+3; got != want {
		t.Fatalf("three-arg extra = %d, want %d", got, want)
	}
	call = firstNode(t, three, ast.TagCall)
	args := three.Tree.Payload(call).NodeB()
	if three.Tree.Tag(args) != ast.TagArgs {
		t.Fatalf("three-arg container = %v, want Args", three.Tree.Tag(args))
	}
	if n := len(three.Tree.ExtraNodes(three.Tree.Payload(args).Range())); n != 3 {
		t.Fatalf("arg count = %d, want 3", n)
	}
}

func TestNamedArguments(t *testing.T) {
	out := parseClean(t, "$r = mk(width: 3, height: 4)\n")
	named := collect(out, ast.TagNamedArg)
	if len(named) != 2 {
		t.Fatalf("named arg count = %d, want 2", len(named))
	}
	if got := out.Tokens[out.Tree.Payload(named[0]).B].Text; got != "width" {
		t.Fatalf("first arg name = %q", got)
	}
}

func TestPositionalArgMixReported(t *testing.T) {
	out := parser.Parse("test.mn", "$r = f(1, y: 2)\n")
	var saw bool
	for _, e := range out.Errors {
		if e.Kind == parser.ErrBadCallArg {
			saw = true
		}
	}
	if !saw {
		t.Fatalf("errors = %+v, want bad-call-argument", out.Errors)
	}
}

func TestPostfixChain(t *testing.T) {
	out := parseClean(t, "$r = origin.points[0].scale(by: 2)?\n")
	v := constValue(t, out)
	if out.Tree.Tag(v) != ast.TagTry {
		t.Fatalf("top = %v, want Try", out.Tree.Tag(v))
	}
	call := out.Tree.Payload(v).NodeA()
	if out.Tree.Tag(call) != ast.TagCall {
		t.Fatalf("under ? = %v, want Call", out.Tree.Tag(call))
	}
	field := out.Tree.Payload(call).NodeA()
	if out.Tree.Tag(field) != ast.TagField {
		t.Fatalf("callee = %v, want Field", out.Tree.Tag(field))
	}
	if idx := out.Tree.Payload(field).NodeA(); out.Tree.Tag(idx) != ast.TagIndex {
		t.Fatalf("receiver = %v, want Index", out.Tree.Tag(idx))
	}
}

func TestCastAndRange(t *testing.T) {
	out := parseClean(t, "$r = n as float\n")
	if v := constValue(t, out); out.Tree.Tag(v) != ast.TagCast {
		t.Fatalf("cast top = %v", out.Tree.Tag(v))
	}

	out = parseClean(t, "$r = 1 .. n + 1\n")
	v := constValue(t, out)
	if out.Tree.Tag(v) != ast.TagRange {
		t.Fatalf("range top = %v", out.Tree.Tag(v))
	}
	if r := out.Tree.Payload(v).NodeB(); out.Tree.Tag(r) != ast.TagAdd {
		t.Fatalf("range end = %v, want Add bound into the range", out.Tree.Tag(r))
	}
}

func TestUnaryNesting(t *testing.T) {
	out := parseClean(t, "$r = -!x\n")
	v := constValue(t, out)
	if out.Tree.Tag(v) != ast.TagUnary {
		t.Fatalf("top = %v, want Unary", out.Tree.Tag(v))
	}
	if inner := out.Tree.Payload(v).NodeA(); out.Tree.Tag(inner) != ast.TagUnary {
		t.Fatalf("inner = %v, want Unary", out.Tree.Tag(inner))
	}
}

func TestIfThenElse(t *testing.T) {
	out := parseClean(t, "$r = if x > 0 then x else -x\n")
	v := constValue(t, out)
	if out.Tree.Tag(v) != ast.TagIf {
		t.Fatalf("top = %v, want If", out.Tree.Tag(v))
	}
	if c := out.Tree.Payload(v).NodeA(); out.Tree.Tag(c) != ast.TagGreater {
		t.Fatalf("cond = %v, want Greater", out.Tree.Tag(c))
	}
	branches := out.Tree.Payload(v).NodeB()
	if out.Tree.Tag(branches) != ast.TagBranchPair {
		t.Fatalf("branches = %v, want BranchPair", out.Tree.Tag(branches))
	}
}

func TestTrailingOperatorRecovers(t *testing.T) {
	out := parser.Parse("test.mn", "$r = 1 +\n$s = 2\n")
	var saw bool
	for _, e := range out.Errors {
		if e.Kind == parser.ErrTrailingOperator {
			saw = true
		}
	}
	if !saw {
		t.Fatalf("errors = %+v, want trailing-operator", out.Errors)
	}
	if got := len(collect(out, ast.TagConst)); got != 2 {
		t.Fatalf("const count = %d, want both items", got)
	}
}

func TestCtorSoftKeywords(t *testing.T) {
	out := parseClean(t, "$r = some 3\n")
	v := constValue(t, out)
	if out.Tree.Tag(v) != ast.TagCtor {
		t.Fatalf("top = %v, want Ctor", out.Tree.Tag(v))
	}

	// Without an argument on the same line, `some` is a plain identifier.
	out = parseClean(t, "$r = some\n")
	if v := constValue(t, out); out.Tree.Tag(v) != ast.TagIdent {
		t.Fatalf("bare top = %v, want Ident", out.Tree.Tag(v))
	}

	out = parseClean(t, "$r = none\n")
	if v := constValue(t, out); out.Tree.Tag(v) != ast.TagCtor {
		t.Fatalf("none top = %v, want Ctor", out.Tree.Tag(v))
	}
}

func TestReservedReturnReported(t *testing.T) {
	out := parser.Parse("test.mn", "@f () -> int = return 1\n")
	if len(out.Errors) == 0 || out.Errors[0].Kind != parser.ErrReservedWord {
		t.Fatalf("errors = %+v, want reserved-word first", out.Errors)
	}
}
