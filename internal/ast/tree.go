// Package ast holds the flat, structure-of-arrays syntax tree. Nodes are
// addressed by dense NodeId handles and consist of a 1-byte tag, a byte-span,
// and a fixed 8-byte payload; variable-length child lists live in a single
// append-only extra-data buffer. One Tree instance is owned exclusively by
// one parse until Finalize.
package ast

import "fmt"

// NodeId is a dense handle: the node's index in the storage arrays. A NodeId
// is valid only for the Tree that produced it and only while that tree has
// not been truncated below the id.
type NodeId uint32

// NoNode marks an absent optional child.
const NoNode NodeId = ^NodeId(0)

// Span is a half-open byte range into the source.
type Span struct {
	Start uint32
	End   uint32
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Payload is the fixed 8-byte node payload: two 4-byte words whose meaning
// depends on the tag (two NodeIds, NodeId + token index, two token indices,
// or an extra-data range).
type Payload struct {
	A uint32
	B uint32
}

// Nodes builds a two-child payload.
func Nodes(a, b NodeId) Payload {
	return Payload{A: uint32(a), B: uint32(b)}
}

// NodeToken builds a child-plus-token payload.
func NodeToken(n NodeId, tok uint32) Payload {
	return Payload{A: uint32(n), B: tok}
}

// Tokens builds a token-pair payload.
func Tokens(a, b uint32) Payload {
	return Payload{A: a, B: b}
}

// TokenA builds a single-token payload.
func TokenA(tok uint32) Payload {
	return Payload{A: tok, B: 0}
}

// NodeA returns the payload's first word as a NodeId.
func (p Payload) NodeA() NodeId { return NodeId(p.A) }

// NodeB returns the payload's second word as a NodeId.
func (p Payload) NodeB() NodeId { return NodeId(p.B) }

// ExtraRange addresses a contiguous slice of the extra-data buffer. Len is
// 16-bit: no single node owns more than 65535 children.
type ExtraRange struct {
	Start uint32
	Len   uint16
}

// RangePayload encodes an extra-data range into a payload.
func RangePayload(r ExtraRange) Payload {
	return Payload{A: r.Start, B: uint32(r.Len)}
}

// Range decodes the payload as an extra-data range.
func (p Payload) Range() ExtraRange {
	return ExtraRange{Start: p.A, Len: uint16(p.B)}
}

// Tree is the structure-of-arrays node arena plus the extra-data buffer.
// All mutation happens through Alloc/Reserve/Fill/Abandon/AllocExtra and the
// snapshot-restore truncation; accessors are O(1) and read-only.
type Tree struct {
	tags     []Tag
	spans    []Span
	payloads []Payload
	extra    []uint32

	finalized bool
}

// NewTree creates a tree sized for the given source length. The heuristic is
// one token per ~8 bytes of source and one node per ~2 tokens.
func NewTree(sourceLen int) *Tree {
	nodes := sourceLen / 16
	if nodes < 16 {
		nodes = 16
	}
	return &Tree{
		tags:     make([]Tag, 0, nodes),
		spans:    make([]Span, 0, nodes),
		payloads: make([]Payload, 0, nodes),
		extra:    make([]uint32, 0, nodes/2),
	}
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int { return len(t.tags) }

// ExtraLen returns the extra-data buffer length in words.
func (t *Tree) ExtraLen() int { return len(t.extra) }

// Alloc appends a node and returns its handle.
func (t *Tree) Alloc(tag Tag, span Span, payload Payload) NodeId {
	t.mutable()
	id := NodeId(len(t.tags))
	t.tags = append(t.tags, tag)
	t.spans = append(t.spans, span)
	t.payloads = append(t.payloads, payload)
	return id
}

// Reserve appends a placeholder node carrying the final tag, to be completed
// later via Fill. Used for forward references such as a function header
// allocated before its body is parsed.
func (t *Tree) Reserve(tag Tag) NodeId {
	return t.Alloc(tag, Span{}, Payload{})
}

// Fill completes a reserved node with its span and payload.
func (t *Tree) Fill(id NodeId, span Span, payload Payload) {
	t.mutable()
	t.check(id)
	t.spans[id] = span
	t.payloads[id] = payload
}

// Abandon discards a reservation: the node is popped if it is the most
// recently allocated, otherwise its tag is left as TagError (nodes allocated
// after it cannot be renumbered).
func (t *Tree) Abandon(id NodeId) {
	t.mutable()
	t.check(id)
	if int(id) == len(t.tags)-1 {
		t.tags = t.tags[:id]
		t.spans = t.spans[:id]
		t.payloads = t.payloads[:id]
		return
	}
	t.tags[id] = TagError
	t.payloads[id] = Payload{}
}

// AllocExtra appends raw words to the extra-data buffer.
func (t *Tree) AllocExtra(words []uint32) ExtraRange {
	t.mutable()
	if len(words) > 0xFFFF {
		panic(fmt.Sprintf("ast: extra range of %d words exceeds 16-bit length", len(words)))
	}
	start := uint32(len(t.extra))
	t.extra = append(t.extra, words...)
	return ExtraRange{Start: start, Len: uint16(len(words))}
}

// AllocExtraNodes appends a NodeId list to the extra-data buffer.
func (t *Tree) AllocExtraNodes(ids []NodeId) ExtraRange {
	t.mutable()
	if len(ids) > 0xFFFF {
		panic(fmt.Sprintf("ast: extra range of %d nodes exceeds 16-bit length", len(ids)))
	}
	start := uint32(len(t.extra))
	for _, id := range ids {
		t.extra = append(t.extra, uint32(id))
	}
	return ExtraRange{Start: start, Len: uint16(len(ids))}
}

// TruncateTo shrinks node storage and the extra-data buffer back to the given
// lengths. This is the sole bulk-removal operation and is only called from
// snapshot restore.
func (t *Tree) TruncateTo(nodeLen, extraLen int) {
	t.mutable()
	if nodeLen > len(t.tags) || extraLen > len(t.extra) {
		panic("ast: TruncateTo past current length")
	}
	t.tags = t.tags[:nodeLen]
	t.spans = t.spans[:nodeLen]
	t.payloads = t.payloads[:nodeLen]
	t.extra = t.extra[:extraLen]
}

// Tag returns the node's discriminant.
func (t *Tree) Tag(id NodeId) Tag {
	t.check(id)
	return t.tags[id]
}

// Span returns the node's source span.
func (t *Tree) Span(id NodeId) Span {
	t.check(id)
	return t.spans[id]
}

// Payload returns the node's fixed payload.
func (t *Tree) Payload(id NodeId) Payload {
	t.check(id)
	return t.payloads[id]
}

// Extra returns the words addressed by r. The returned slice aliases the
// buffer and must not be mutated.
func (t *Tree) Extra(r ExtraRange) []uint32 {
	end := int(r.Start) + int(r.Len)
	if end > len(t.extra) {
		panic(fmt.Sprintf("ast: extra range [%d,%d) out of bounds (len %d)", r.Start, end, len(t.extra)))
	}
	return t.extra[r.Start:end]
}

// ExtraNodes returns the NodeIds addressed by r as a fresh slice.
func (t *Tree) ExtraNodes(r ExtraRange) []NodeId {
	words := t.Extra(r)
	ids := make([]NodeId, len(words))
	for i, w := range words {
		ids[i] = NodeId(w)
	}
	return ids
}

// Finalize freezes the tree. Any later mutation is a programming error.
func (t *Tree) Finalize() {
	t.finalized = true
}

func (t *Tree) mutable() {
	if t.finalized {
		panic("ast: mutation after Finalize")
	}
}

func (t *Tree) check(id NodeId) {
	if int(id) >= len(t.tags) {
		panic(fmt.Sprintf("ast: NodeId %d out of range (len %d)", id, len(t.tags)))
	}
}
