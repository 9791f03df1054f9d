package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/miren-lang/miren/internal/ast"
)

// Dump writes an indented rendering of the tree for inspection, resolving
// token payloads to their lexemes.
func (out ParseOutput) Dump(w io.Writer) {
	out.dumpNode(w, out.Root, 0)
}

func (out ParseOutput) dumpNode(w io.Writer, id ast.NodeId, depth int) {
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth),
		out.Tree.Tag(id), out.tokenSuffix(id))
	var buf [2]ast.NodeId
	for _, c := range out.Tree.Children(id, buf[:0]) {
		out.dumpNode(w, c, depth+1)
	}
}

// tokenSuffix renders the token half of a node's payload, when it has one.
func (out ParseOutput) tokenSuffix(id ast.NodeId) string {
	pl := out.Tree.Payload(id)
	switch out.Tree.Tag(id) {
	case ast.TagInt, ast.TagFloat, ast.TagString, ast.TagChar, ast.TagBool,
		ast.TagIdent, ast.TagConstRef, ast.TagFuncRef, ast.TagTypeName,
		ast.TagPatLiteral, ast.TagPatBind, ast.TagBreak, ast.TagContinue:
		return " " + out.Tokens[pl.A].Text
	case ast.TagFunc, ast.TagConst, ast.TagTypeAlias, ast.TagTrait,
		ast.TagParam, ast.TagField, ast.TagNamedArg, ast.TagStructLit,
		ast.TagFieldInit, ast.TagCtor, ast.TagPatCtor, ast.TagForHeader,
		ast.TagUnary:
		return " " + out.Tokens[pl.B].Text
	case ast.TagUse:
		if pl.A == pl.B {
			return " " + out.Tokens[pl.A].Text
		}
		return " " + out.Tokens[pl.A].Text + ".." + out.Tokens[pl.B].Text
	}
	return ""
}
