package ast_test

import (
	"testing"

	"github.com/miren-lang/miren/internal/ast"
)

func TestAllocAndAccessors(t *testing.T) {
	tree := ast.NewTree(256)

	left := tree.Alloc(ast.TagInt, ast.Span{Start: 0, End: 1}, ast.TokenA(0))
	right := tree.Alloc(ast.TagInt, ast.Span{Start: 4, End: 5}, ast.TokenA(2))
	sum := tree.Alloc(ast.TagAdd, ast.Span{Start: 0, End: 5}, ast.Nodes(left, right))

	if got := tree.Tag(sum); got != ast.TagAdd {
		t.Fatalf("tag = %v", got)
	}
	if got := tree.Span(sum); got != (ast.Span{Start: 0, End: 5}) {
		t.Fatalf("span = %+v", got)
	}
	p := tree.Payload(sum)
	if p.NodeA() != left || p.NodeB() != right {
		t.Fatalf("payload = %+v, want (%d, %d)", p, left, right)
	}
	if tree.Len() != 3 {
		t.Fatalf("len = %d", tree.Len())
	}
}

func TestBinaryChildrenInline(t *testing.T) {
	// A binary node's two children must be retrievable without touching
	// the extra-data buffer.
	tree := ast.NewTree(64)
	a := tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(0))
	b := tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(1))
	mul := tree.Alloc(ast.TagMul, ast.Span{}, ast.Nodes(a, b))

	if tree.ExtraLen() != 0 {
		t.Fatalf("binary allocation touched extra-data buffer (len %d)", tree.ExtraLen())
	}
	p := tree.Payload(mul)
	if p.NodeA() != a || p.NodeB() != b {
		t.Fatalf("children not inline: %+v", p)
	}
}

func TestThreeArgumentsRouteThroughExtra(t *testing.T) {
	tree := ast.NewTree(64)
	callee := tree.Alloc(ast.TagIdent, ast.Span{}, ast.TokenA(0))
	args := []ast.NodeId{
		tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(2)),
		tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(4)),
		tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(6)),
	}
	r := tree.AllocExtraNodes(args)
	container := tree.Alloc(ast.TagArgs, ast.Span{}, ast.RangePayload(r))
	tree.Alloc(ast.TagCall, ast.Span{}, ast.Nodes(callee, container))

	if tree.ExtraLen() != 3 {
		t.Fatalf("extra len = %d, want 3", tree.ExtraLen())
	}
	got := tree.ExtraNodes(tree.Payload(container).Range())
	if len(got) != 3 || got[0] != args[0] || got[1] != args[1] || got[2] != args[2] {
		t.Fatalf("extra nodes = %v, want %v", got, args)
	}
}

func TestReserveFill(t *testing.T) {
	tree := ast.NewTree(64)
	fn := tree.Reserve(ast.TagFunc)
	body := tree.Alloc(ast.TagInt, ast.Span{Start: 10, End: 12}, ast.TokenA(5))
	tree.Fill(fn, ast.Span{Start: 0, End: 12}, ast.NodeToken(body, 1))

	if tree.Tag(fn) != ast.TagFunc {
		t.Fatalf("tag after fill = %v", tree.Tag(fn))
	}
	if tree.Payload(fn).NodeA() != body {
		t.Fatalf("payload after fill = %+v", tree.Payload(fn))
	}
}

func TestAbandonTrailingPops(t *testing.T) {
	tree := ast.NewTree(64)
	tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(0))
	id := tree.Reserve(ast.TagFunc)
	tree.Abandon(id)

	if tree.Len() != 1 {
		t.Fatalf("len after trailing abandon = %d, want 1", tree.Len())
	}
}

func TestAbandonBuriedBecomesError(t *testing.T) {
	tree := ast.NewTree(64)
	id := tree.Reserve(ast.TagFunc)
	tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(0)) // allocated after the reservation
	tree.Abandon(id)

	if tree.Len() != 2 {
		t.Fatalf("len after buried abandon = %d, want 2", tree.Len())
	}
	if tree.Tag(id) != ast.TagError {
		t.Fatalf("buried abandoned node tag = %v, want Error", tree.Tag(id))
	}
}

func TestTruncateTo(t *testing.T) {
	tree := ast.NewTree(64)
	keep := tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(0))
	tree.AllocExtra([]uint32{1, 2})
	nodeLen, extraLen := tree.Len(), tree.ExtraLen()

	tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(1))
	tree.AllocExtra([]uint32{3, 4, 5})
	tree.TruncateTo(nodeLen, extraLen)

	if tree.Len() != nodeLen || tree.ExtraLen() != extraLen {
		t.Fatalf("after truncate: nodes=%d extra=%d, want %d/%d",
			tree.Len(), tree.ExtraLen(), nodeLen, extraLen)
	}
	if tree.Tag(keep) != ast.TagInt {
		t.Fatalf("surviving node corrupted: %v", tree.Tag(keep))
	}
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range NodeId")
		}
	}()
	tree := ast.NewTree(16)
	tree.Tag(ast.NodeId(0))
}

func TestSpanMerge(t *testing.T) {
	a := ast.Span{Start: 4, End: 9}
	b := ast.Span{Start: 1, End: 6}
	if got := a.Merge(b); got != (ast.Span{Start: 1, End: 9}) {
		t.Fatalf("merge = %+v", got)
	}
}

func TestWalkPreorder(t *testing.T) {
	tree := ast.NewTree(64)
	a := tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(0))
	b := tree.Alloc(ast.TagInt, ast.Span{}, ast.TokenA(2))
	add := tree.Alloc(ast.TagAdd, ast.Span{}, ast.Nodes(a, b))

	var order []ast.NodeId
	tree.Walk(add, func(id ast.NodeId) bool {
		order = append(order, id)
		return true
	})
	want := []ast.NodeId{add, a, b}
	if len(order) != len(want) {
		t.Fatalf("walk order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("walk order = %v, want %v", order, want)
		}
	}
	if n := tree.Count(add); n != 3 {
		t.Fatalf("count = %d", n)
	}
}

func TestBinaryTagCoversOperators(t *testing.T) {
	if !ast.TagAdd.IsBinary() || !ast.TagShr.IsBinary() {
		t.Fatalf("binary tag group boundaries wrong")
	}
	if ast.TagUnary.IsBinary() || ast.TagAssign.IsBinary() {
		t.Fatalf("non-binary tag classified as binary")
	}
}
