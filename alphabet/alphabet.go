/*
Package alphabet provides the symbol tables for biological sequence
alphabets: DNA, RNA, and Protein.

A Table is a small, immutable, process-wide singleton: it knows which
symbols are members of the alphabet, how to fold a symbol to its canonical
upper-case form, how to complement a symbol (for nucleic acids), which
symbols represent gaps, and which symbols are ambiguity codes that expand
to a set of unambiguous symbols. Sequence and the GenBank parser both
depend on a Table but never construct one themselves; they are handed
DNA, RNA, or Protein.
*/
package alphabet

import "fmt"

// Error is returned when an operation cannot complete because a symbol is
// not a member of the alphabet, or the operation itself is not supported
// for the alphabet.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Table is a symbol table for a biological sequence alphabet.
//
// Case is preserved by callers but ignored for membership, folding, and
// complement lookups: 'a' and 'A' are the same symbol.
type Table struct {
	name                string
	hasGaps             bool
	hasAmbiguity        bool
	hasTerminations     bool
	complementSupported bool
	members             map[byte]bool
	complementTable     map[byte]byte
	gapSymbols          map[byte]bool
	ambiguityExpansion  map[byte][]byte
}

// Name returns the alphabet's display name, e.g. "DNA".
func (t *Table) Name() string { return t.name }

// HasGaps reports whether the alphabet defines gap symbols.
func (t *Table) HasGaps() bool { return t.hasGaps }

// HasAmbiguity reports whether the alphabet defines ambiguity codes.
func (t *Table) HasAmbiguity() bool { return t.hasAmbiguity }

// HasTerminations reports whether the alphabet defines a termination
// symbol (stop-codon translation, '*' for Protein).
func (t *Table) HasTerminations() bool { return t.hasTerminations }

// ComplementSupported reports whether Complement is a meaningful
// operation for this alphabet. It is false for Protein.
func (t *Table) ComplementSupported() bool { return t.complementSupported }

// Valid reports whether sym is a member of the alphabet, ignoring case.
func (t *Table) Valid(sym byte) bool {
	return t.members[fold(sym)]
}

// ValidateRange returns true if every byte in buf[offset:offset+length] is
// a member of the alphabet, false at the first non-member symbol.
func (t *Table) ValidateRange(buf []byte, offset, length int) bool {
	end := offset + length
	for i := offset; i < end; i++ {
		if !t.Valid(buf[i]) {
			return false
		}
	}
	return true
}

// Fold canonicalizes sym to its upper-case representative. ASCII
// lower-case letters are upper-cased whether or not they are members of
// the alphabet; any other byte is returned unchanged.
func (t *Table) Fold(sym byte) byte {
	return fold(sym)
}

// Complement returns the complement of sym and true, or (0, false) if sym
// is not a member of the alphabet or the alphabet does not support
// complementation.
func (t *Table) Complement(sym byte) (byte, bool) {
	if !t.complementSupported {
		return 0, false
	}
	folded := fold(sym)
	c, ok := t.complementTable[folded]
	if !ok {
		return 0, false
	}
	if isLower(sym) {
		return lower(c), true
	}
	return c, true
}

// GapSymbols returns the set of symbols this alphabet treats as gaps.
func (t *Table) GapSymbols() map[byte]bool {
	out := make(map[byte]bool, len(t.gapSymbols))
	for k, v := range t.gapSymbols {
		out[k] = v
	}
	return out
}

// AmbiguousExpansion returns the set of unambiguous symbols an ambiguity
// code expands to, and true, or (nil, false) if sym is not an ambiguity
// code in this alphabet.
func (t *Table) AmbiguousExpansion(sym byte) ([]byte, bool) {
	expansion, ok := t.ambiguityExpansion[fold(sym)]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(expansion))
	copy(out, expansion)
	return out, true
}

// GetConsensus is intentionally unsupported: consensus calling is out of
// scope for this library.
func (t *Table) GetConsensus([]byte) (byte, error) {
	return 0, &Error{message: fmt.Sprintf("GetConsensus is unsupported for alphabet %s", t.name)}
}

func fold(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func newTable(name string, hasGaps, hasAmbiguity, hasTerminations, complementSupported bool, basic []byte, complements map[byte]byte, ambiguity map[byte][]byte, gaps []byte) *Table {
	members := make(map[byte]bool, len(basic)+len(ambiguity)+len(gaps))
	for _, s := range basic {
		members[fold(s)] = true
	}
	for amb := range ambiguity {
		members[fold(amb)] = true
	}
	gapSet := make(map[byte]bool, len(gaps))
	for _, g := range gaps {
		gapSet[fold(g)] = true
		members[fold(g)] = true
	}
	return &Table{
		name:                name,
		hasGaps:             hasGaps,
		hasAmbiguity:        hasAmbiguity,
		hasTerminations:     hasTerminations,
		complementSupported: complementSupported,
		members:             members,
		complementTable:     complements,
		gapSymbols:          gapSet,
		ambiguityExpansion:  ambiguity,
	}
}

// DNA is the singleton DNA alphabet: {A,C,G,T,-} plus IUPAC ambiguity
// codes. Complementation is supported: A<->T, C<->G, -<->-.
var DNA = newTable(
	"DNA", true, true, false, true,
	[]byte{'A', 'C', 'G', 'T'},
	map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', '-': '-',
		'N': 'N', 'M': 'K', 'K': 'M', 'R': 'Y', 'Y': 'R',
		'S': 'S', 'W': 'W', 'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
	},
	map[byte][]byte{
		'M': {'A', 'C'}, 'R': {'A', 'G'}, 'W': {'A', 'T'},
		'S': {'C', 'G'}, 'Y': {'C', 'T'}, 'K': {'G', 'T'},
		'V': {'A', 'C', 'G'}, 'H': {'A', 'C', 'T'},
		'D': {'A', 'G', 'T'}, 'B': {'C', 'G', 'T'},
		'N': {'A', 'C', 'G', 'T'},
	},
	[]byte{'-'},
)

// RNA is the singleton RNA alphabet: {A,C,G,U,-} plus IUPAC ambiguity
// codes. Complementation is supported: A<->U, C<->G, -<->-.
var RNA = newTable(
	"RNA", true, true, false, true,
	[]byte{'A', 'C', 'G', 'U'},
	map[byte]byte{
		'A': 'U', 'U': 'A', 'C': 'G', 'G': 'C', '-': '-',
		'N': 'N', 'M': 'K', 'K': 'M', 'R': 'Y', 'Y': 'R',
		'S': 'S', 'W': 'W', 'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
	},
	map[byte][]byte{
		'M': {'A', 'C'}, 'R': {'A', 'G'}, 'W': {'A', 'U'},
		'S': {'C', 'G'}, 'Y': {'C', 'U'}, 'K': {'G', 'U'},
		'V': {'A', 'C', 'G'}, 'H': {'A', 'C', 'U'},
		'D': {'A', 'G', 'U'}, 'B': {'C', 'G', 'U'},
		'N': {'A', 'C', 'G', 'U'},
	},
	[]byte{'-'},
)

// Protein is the singleton amino-acid alphabet: the 20 standard residues
// plus 'X' (unknown) and '*' (stop). Complementation is not a meaningful
// operation and ComplementSupported reports false.
var Protein = newTable(
	"Protein", true, true, true, false,
	[]byte{'A', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'K', 'L', 'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'Y', '*'},
	nil,
	map[byte][]byte{
		'X': {'A', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'K', 'L', 'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'Y'},
		'B': {'D', 'N'},
		'Z': {'E', 'Q'},
	},
	[]byte{'-'},
)
