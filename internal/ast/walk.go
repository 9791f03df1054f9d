package ast

// payload shape classes drive generic traversal without per-tag switches at
// every call site.
type shape uint8

const (
	shapeEmpty  shape = iota // no children
	shapeNode                // A is a node, B unused
	shapeNodes               // A and B are nodes (NoNode allowed)
	shapeNodeTk              // A is a node (NoNode allowed), B is a token
	shapeTokens              // payload holds token indices only
	shapeExtra               // payload is an extra-data range of NodeIds
)

var shapes = [NumTags]shape{
	TagError:        shapeEmpty,
	TagModule:       shapeExtra,
	TagFunc:         shapeNodeTk,
	TagFuncSig:      shapeNodes,
	TagFuncResult:   shapeNodes,
	TagConst:        shapeNodeTk,
	TagTypeAlias:    shapeNodeTk,
	TagTrait:        shapeNodeTk,
	TagImpl:         shapeNodes,
	TagImplHead:     shapeNodes,
	TagUse:          shapeTokens,
	TagParam:        shapeNodeTk,
	TagParams:       shapeExtra,
	TagPub:          shapeNode,
	TagInt:          shapeTokens,
	TagFloat:        shapeTokens,
	TagString:       shapeTokens,
	TagChar:         shapeTokens,
	TagBool:         shapeTokens,
	TagUnit:         shapeEmpty,
	TagIdent:        shapeTokens,
	TagConstRef:     shapeTokens,
	TagFuncRef:      shapeTokens,
	TagUnary:        shapeNodeTk,
	TagAdd:          shapeNodes,
	TagSub:          shapeNodes,
	TagMul:          shapeNodes,
	TagDiv:          shapeNodes,
	TagMod:          shapeNodes,
	TagEq:           shapeNodes,
	TagNotEq:        shapeNodes,
	TagLess:         shapeNodes,
	TagLessEq:       shapeNodes,
	TagGreater:      shapeNodes,
	TagGreaterEq:    shapeNodes,
	TagAnd:          shapeNodes,
	TagOr:           shapeNodes,
	TagBitAnd:       shapeNodes,
	TagBitOr:        shapeNodes,
	TagBitXor:       shapeNodes,
	TagShl:          shapeNodes,
	TagShr:          shapeNodes,
	TagAssign:       shapeNodes,
	TagRange:        shapeNodes,
	TagRangeIncl:    shapeNodes,
	TagCast:         shapeNodes,
	TagField:        shapeNodeTk,
	TagIndex:        shapeNodes,
	TagCall:         shapeNodes,
	TagTry:          shapeNode,
	TagArgs:         shapeExtra,
	TagArgPair:      shapeNodes,
	TagNamedArg:     shapeNodeTk,
	TagIf:           shapeNodes,
	TagBranchPair:   shapeNodes,
	TagMatch:        shapeNodes,
	TagMatchArm:     shapeNodes,
	TagFor:          shapeNodes,
	TagForHeader:    shapeNodeTk,
	TagBreak:        shapeTokens,
	TagContinue:     shapeTokens,
	TagLet:          shapeNodes,
	TagLambda:       shapeNodes,
	TagBlock:        shapeExtra,
	TagList:         shapeExtra,
	TagMap:          shapeExtra,
	TagMapEntry:     shapeNodes,
	TagStructLit:    shapeNodeTk,
	TagFields:       shapeExtra,
	TagFieldInit:    shapeNodeTk,
	TagTuple:        shapeExtra,
	TagCtor:         shapeNodeTk,
	TagPatWildcard:  shapeEmpty,
	TagPatLiteral:   shapeTokens,
	TagPatBind:      shapeTokens,
	TagPatTuple:     shapeExtra,
	TagPatCtor:      shapeNodeTk,
	TagPatOr:        shapeNodes,
	TagTypeName:     shapeTokens,
	TagTypeApp:      shapeNodes,
	TagTypeFunc:     shapeNodes,
	TagTypeTuple:    shapeExtra,
	TagTypeOptional: shapeNode,
}

// Children appends id's child NodeIds to buf and returns it. Absent optional
// children (NoNode) are skipped.
func (t *Tree) Children(id NodeId, buf []NodeId) []NodeId {
	tag := t.Tag(id)
	p := t.Payload(id)
	switch shapes[tag] {
	case shapeNode:
		if p.NodeA() != NoNode {
			buf = append(buf, p.NodeA())
		}
	case shapeNodes:
		if p.NodeA() != NoNode {
			buf = append(buf, p.NodeA())
		}
		if p.NodeB() != NoNode {
			buf = append(buf, p.NodeB())
		}
	case shapeNodeTk:
		if p.NodeA() != NoNode {
			buf = append(buf, p.NodeA())
		}
	case shapeExtra:
		for _, w := range t.Extra(p.Range()) {
			buf = append(buf, NodeId(w))
		}
	}
	return buf
}

// Walk visits id and its descendants in preorder. Returning false from the
// visitor prunes that subtree.
func (t *Tree) Walk(id NodeId, visit func(NodeId) bool) {
	if id == NoNode || !visit(id) {
		return
	}
	for _, child := range t.Children(id, nil) {
		t.Walk(child, visit)
	}
}

// Count returns the number of nodes in the subtree rooted at id.
func (t *Tree) Count(id NodeId) int {
	n := 0
	t.Walk(id, func(NodeId) bool { n++; return true })
	return n
}
