package token

import "strings"

// Set is a bitset over token kinds. One uint64 word covers the whole kind
// space (NumKinds <= 64), which makes membership tests a single AND and set
// union a single OR — cheap enough to pass sets by value everywhere.
type Set uint64

// Compile-time guard: the kind space must fit in one word.
var _ [64 - NumKinds]struct{}

// NewSet builds a set from the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns the set extended with k.
func (s Set) With(k Kind) Set {
	return s | 1<<uint(k)
}

// Union returns the union of both sets.
func (s Set) Union(other Set) Set {
	return s | other
}

// Contains reports whether k is in the set.
func (s Set) Contains(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// IsEmpty reports whether no kind is in the set.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Len returns the number of kinds in the set.
func (s Set) Len() int {
	n := 0
	for v := uint64(s); v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Format renders the set for an "expected one of" diagnostic, in kind order:
// "`,`", "`,` or `)`", "`,`, `)`, or `}`".
func (s Set) Format() string {
	var names []string
	for k := Kind(0); k < NumKinds; k++ {
		if s.Contains(k) {
			names = append(names, k.String())
		}
	}
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
