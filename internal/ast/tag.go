package ast

import "github.com/miren-lang/miren/internal/token"

// Tag is the 1-byte node discriminant. The payload interpretation is fixed
// per tag: "nodes" means two NodeId words, "node+token" means a NodeId word
// and a token-index word, "tokens" means token-index words, "extra" means an
// extra-data range. Lists with three or more elements always live in the
// extra-data buffer; a node never grows past its fixed payload.
type Tag uint8

const (
	// TagError marks a placeholder produced by error recovery or an
	// abandoned reservation. Payload is empty.
	TagError Tag = iota

	TagModule // extra: item NodeIds

	// Items.
	TagFunc       // node+token: A=TagFuncSig, B=name token
	TagFuncSig    // nodes: A=params container (NoNode if none), B=TagFuncResult
	TagFuncResult // nodes: A=return type (NoNode if omitted), B=body expr
	TagConst      // node+token: A=value expr, B=name token
	TagTypeAlias  // node+token: A=aliased type, B=name token
	TagTrait      // node+token: A=members container (NoNode), B=name token
	TagImpl       // nodes: A=TagImplHead, B=members container (NoNode when empty)
	TagImplHead   // nodes: A=trait type (NoNode for inherent impls), B=target type
	TagUse        // tokens: A=path head token, B=path tail token (same when unqualified)
	TagParam      // node+token: A=declared type (NoNode if untyped), B=name token
	TagParams     // extra: TagParam NodeIds
	TagPub        // node: A=wrapped item

	// Literals. Payload tokens: A=the literal token.
	TagInt
	TagFloat
	TagString
	TagChar
	TagBool
	TagUnit // empty payload

	// References. Payload tokens: A=name token.
	TagIdent
	TagConstRef // $name
	TagFuncRef  // @name

	// Operators. The operator itself is folded into the tag so that a
	// binary node's payload is exactly its two children; IsBinary and
	// BinaryTag cover the whole group.
	TagUnary // node+token: A=operand, B=operator token
	TagAdd   // nodes: A=left, B=right (likewise for every binary tag below)
	TagSub
	TagMul
	TagDiv
	TagMod
	TagEq
	TagNotEq
	TagLess
	TagLessEq
	TagGreater
	TagGreaterEq
	TagAnd
	TagOr
	TagBitAnd
	TagBitOr
	TagBitXor
	TagShl
	TagShr
	TagAssign // nodes: A=target, B=value
	TagRange     // nodes: A=start (NoNode=open), B=end (NoNode=open)
	TagRangeIncl // nodes: as TagRange, inclusive end
	TagCast      // nodes: A=expr, B=type

	// Postfix.
	TagField // node+token: A=receiver, B=field name token
	TagIndex // nodes: A=receiver, B=index expr
	TagCall  // nodes: A=callee, B=argument node (NoNode, one arg, TagArgPair, or TagArgs)
	TagTry   // node: A=operand (`expr?`)

	// Argument containers.
	TagArgs     // extra: argument NodeIds (any call with 3+ arguments)
	TagArgPair  // nodes: A,B = exactly two arguments
	TagNamedArg // node+token: A=value expr, B=name token

	// Control flow.
	TagIf         // nodes: A=condition, B=TagBranchPair
	TagBranchPair // nodes: A=then branch, B=else branch (NoNode when absent)
	TagMatch      // nodes: A=scrutinee, B=arms container (TagArgs over TagMatchArm)
	TagMatchArm   // nodes: A=pattern, B=body
	TagFor        // nodes: A=TagForHeader, B=body
	TagForHeader  // node+token: A=iterable, B=binding token
	TagBreak      // tokens: A=keyword token
	TagContinue   // tokens: A=keyword token

	// Bindings and functions.
	TagLet    // nodes: A=pattern, B=init
	TagLambda // nodes: A=params container (NoNode, TagParam, or TagParams), B=body
	TagBlock  // extra: statement NodeIds, last one is the block value

	// Composite literals.
	TagList      // extra: element NodeIds
	TagMap       // extra: TagMapEntry NodeIds
	TagMapEntry  // nodes: A=key, B=value
	TagStructLit // node+token: A=fields container (TagFields), B=type name token
	TagFields    // extra: TagFieldInit NodeIds
	TagFieldInit // node+token: A=value expr, B=field name token
	TagTuple     // extra: element NodeIds
	TagCtor      // node+token: A=argument (NoNode for bare `none`), B=ctor name token

	// Patterns.
	TagPatWildcard // empty
	TagPatLiteral  // tokens: A=literal token
	TagPatBind     // tokens: A=name token
	TagPatTuple    // extra: sub-pattern NodeIds
	TagPatCtor     // node+token: A=sub-pattern (NoNode), B=ctor name token
	TagPatOr       // nodes: A=left, B=right

	// Types.
	TagTypeName     // tokens: A=name token
	TagTypeApp      // nodes: A=head type, B=args container (TagTypeTuple-style extra node)
	TagTypeFunc     // nodes: A=params container, B=result type
	TagTypeTuple    // extra: element type NodeIds
	TagTypeOptional // node: A=inner type

	NumTags
)

var tagNames = [NumTags]string{
	TagError:        "Error",
	TagModule:       "Module",
	TagFunc:         "Func",
	TagFuncSig:      "FuncSig",
	TagFuncResult:   "FuncResult",
	TagConst:        "Const",
	TagTypeAlias:    "TypeAlias",
	TagTrait:        "Trait",
	TagImpl:         "Impl",
	TagImplHead:     "ImplHead",
	TagUse:          "Use",
	TagParam:        "Param",
	TagParams:       "Params",
	TagPub:          "Pub",
	TagInt:          "Int",
	TagFloat:        "Float",
	TagString:       "String",
	TagChar:         "Char",
	TagBool:         "Bool",
	TagUnit:         "Unit",
	TagIdent:        "Ident",
	TagConstRef:     "ConstRef",
	TagFuncRef:      "FuncRef",
	TagUnary:        "Unary",
	TagAdd:          "Add",
	TagSub:          "Sub",
	TagMul:          "Mul",
	TagDiv:          "Div",
	TagMod:          "Mod",
	TagEq:           "Eq",
	TagNotEq:        "NotEq",
	TagLess:         "Less",
	TagLessEq:       "LessEq",
	TagGreater:      "Greater",
	TagGreaterEq:    "GreaterEq",
	TagAnd:          "And",
	TagOr:           "Or",
	TagBitAnd:       "BitAnd",
	TagBitOr:        "BitOr",
	TagBitXor:       "BitXor",
	TagShl:          "Shl",
	TagShr:          "Shr",
	TagAssign:       "Assign",
	TagRange:        "Range",
	TagRangeIncl:    "RangeIncl",
	TagCast:         "Cast",
	TagField:        "Field",
	TagIndex:        "Index",
	TagCall:         "Call",
	TagTry:          "Try",
	TagArgs:         "Args",
	TagArgPair:      "ArgPair",
	TagNamedArg:     "NamedArg",
	TagIf:           "If",
	TagBranchPair:   "BranchPair",
	TagMatch:        "Match",
	TagMatchArm:     "MatchArm",
	TagFor:          "For",
	TagForHeader:    "ForHeader",
	TagBreak:        "Break",
	TagContinue:     "Continue",
	TagLet:          "Let",
	TagLambda:       "Lambda",
	TagBlock:        "Block",
	TagList:         "List",
	TagMap:          "Map",
	TagMapEntry:     "MapEntry",
	TagStructLit:    "StructLit",
	TagFields:       "Fields",
	TagFieldInit:    "FieldInit",
	TagTuple:        "Tuple",
	TagCtor:         "Ctor",
	TagPatWildcard:  "PatWildcard",
	TagPatLiteral:   "PatLiteral",
	TagPatBind:      "PatBind",
	TagPatTuple:     "PatTuple",
	TagPatCtor:      "PatCtor",
	TagPatOr:        "PatOr",
	TagTypeName:     "TypeName",
	TagTypeApp:      "TypeApp",
	TagTypeFunc:     "TypeFunc",
	TagTypeTuple:    "TypeTuple",
	TagTypeOptional: "TypeOptional",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return "Tag(?)"
}

// IsBinary reports whether t is one of the binary-operator tags. All binary
// nodes carry their two children inline in the payload.
func (t Tag) IsBinary() bool {
	return t >= TagAdd && t <= TagShr
}

var binaryTags = map[token.Kind]Tag{
	token.Plus:     TagAdd,
	token.Minus:    TagSub,
	token.Star:     TagMul,
	token.Slash:    TagDiv,
	token.Percent:  TagMod,
	token.Eq:       TagEq,
	token.NotEq:    TagNotEq,
	token.Lt:       TagLess,
	token.LtEq:     TagLessEq,
	token.Gt:       TagGreater,
	token.GtEq:     TagGreaterEq,
	token.AmpAmp:   TagAnd,
	token.PipePipe: TagOr,
	token.Amp:      TagBitAnd,
	token.Pipe:     TagBitOr,
	token.Caret:    TagBitXor,
	token.Shl:      TagShl,
	token.Shr:      TagShr,
}

// BinaryTag maps a binary-operator token kind to its node tag.
func BinaryTag(k token.Kind) (Tag, bool) {
	t, ok := binaryTags[k]
	return t, ok
}

