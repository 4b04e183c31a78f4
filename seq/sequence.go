/*
Package seq provides the in-memory record model that the GenBank parser
populates: a Sequence (symbol buffer plus the annotation bags attached to
it by a GenBank record) and the Feature/Reference types that hang off it.

This is the data model half of the library; the wire format grammar lives
in the location package and the line-oriented parsing lives in insdcscan
and genbank. Nothing here reads a byte stream.
*/
package seq

import (
	"fmt"

	"github.com/nucleobase/insdc/alphabet"
	"github.com/nucleobase/insdc/gbkerr"
	"github.com/nucleobase/insdc/location"
)

// Qualifier is a single `/key=value` (or bare `/key`) feature annotation.
// A bare flag like `/pseudo` has Value == nil. Quoted string values retain
// their surrounding quotes; stripping them is left to the caller, the same
// design choice the teacher's multi-line quoted-qualifier handling made.
type Qualifier struct {
	Key   string
	Value *string
}

// HasValue reports whether this qualifier carries a value, as opposed to
// being a bare flag.
func (q Qualifier) HasValue() bool {
	return q.Value != nil
}

// Feature is an annotated region of a Sequence: a key (e.g. "CDS",
// "gene"), a Location, and its qualifiers in source order.
type Feature struct {
	Key        string
	Location   location.Location
	Qualifiers []Qualifier
}

// Get returns the value of the first qualifier with the given key, and
// true, or ("", false) if no such qualifier is present or it is a bare
// flag.
func (f Feature) Get(key string) (string, bool) {
	for _, q := range f.Qualifiers {
		if q.Key == key && q.Value != nil {
			return *q.Value, true
		}
	}
	return "", false
}

// Has reports whether the feature carries any qualifier (valued or bare)
// with the given key.
func (f Feature) Has(key string) bool {
	for _, q := range f.Qualifiers {
		if q.Key == key {
			return true
		}
	}
	return false
}

// Reference is a single REFERENCE block from a GenBank record.
type Reference struct {
	Number     int
	BasesRef   []location.Simple
	Authors    string
	Consortium string
	Title      string
	Journal    string
	MedlineID  string
	PubmedID   string
	Remark     string
}

// Sequence owns a symbol buffer and the annotation bags a GenBank record
// attaches to it. Once returned by genbank.Parser it should be treated
// as immutable by convention, though Go cannot enforce that; Subsequence,
// Reverse, Complement, and ReverseComplement all return new values rather
// than mutating the receiver.
type Sequence struct {
	ID          string
	Name        string
	Description string
	Alphabet    *alphabet.Table
	Data        []byte

	Metadata          map[string]any
	Annotations       map[string]any
	LetterAnnotations map[string][]any
	Dbxrefs           []string
	Features          []Feature
}

// New constructs a Sequence over text, validating every symbol against
// alphabet unless validate is false. Returns gbkerr.InvalidSymbol on the
// first invalid symbol found.
func New(id string, alph *alphabet.Table, text string, validate bool) (*Sequence, error) {
	data := []byte(text)
	if validate {
		if !alph.ValidateRange(data, 0, len(data)) {
			return nil, gbkerr.New(gbkerr.InvalidSymbol, 0, fmt.Sprintf("sequence %q contains a symbol not valid in alphabet %s", id, alph.Name()))
		}
	}
	return &Sequence{
		ID:                id,
		Alphabet:          alph,
		Data:              data,
		Metadata:          map[string]any{},
		Annotations:       map[string]any{},
		LetterAnnotations: map[string][]any{},
	}, nil
}

// Len returns the number of symbols in the sequence.
func (s *Sequence) Len() int {
	return len(s.Data)
}

// At returns the symbol at index i. If i is out of range it returns a
// plain error built with fmt.Errorf; gbkerr defines no out-of-range kind.
func (s *Sequence) At(i int) (byte, error) {
	if i < 0 || i >= len(s.Data) {
		return 0, fmt.Errorf("seq: index %d out of range [0,%d)", i, len(s.Data))
	}
	return s.Data[i], nil
}

// Subsequence returns a new Sequence over [start, start+length), sharing
// the same ID and Alphabet and a shallow copy of Metadata. It fails if the
// requested range is out of bounds.
func (s *Sequence) Subsequence(start, length int) (*Sequence, error) {
	if start < 0 || length < 0 || start+length > len(s.Data) {
		return nil, fmt.Errorf("seq: subsequence [%d,%d) out of range [0,%d)", start, start+length, len(s.Data))
	}
	data := make([]byte, length)
	copy(data, s.Data[start:start+length])
	meta := make(map[string]any, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}
	return &Sequence{
		ID:       s.ID,
		Alphabet: s.Alphabet,
		Data:     data,
		Metadata: meta,
	}, nil
}

// Reverse returns a new Sequence with the symbol order reversed. Letter
// annotations, if present, are reversed in lock-step.
func (s *Sequence) Reverse() *Sequence {
	data := make([]byte, len(s.Data))
	for i, b := range s.Data {
		data[len(data)-1-i] = b
	}
	out := s.shallowClone()
	out.Data = data
	out.LetterAnnotations = reverseLetterAnnotations(s.LetterAnnotations)
	return out
}

// Complement returns a new Sequence with each symbol mapped through
// Alphabet.Complement. It fails with gbkerr.Unsupported if the alphabet
// does not support complementation (Protein).
func (s *Sequence) Complement() (*Sequence, error) {
	if !s.Alphabet.ComplementSupported() {
		return nil, gbkerr.New(gbkerr.Unsupported, 0, fmt.Sprintf("complement is unsupported for alphabet %s", s.Alphabet.Name()))
	}
	data := make([]byte, len(s.Data))
	for i, b := range s.Data {
		c, ok := s.Alphabet.Complement(b)
		if !ok {
			return nil, gbkerr.New(gbkerr.InvalidSymbol, 0, fmt.Sprintf("symbol %q at position %d has no complement in alphabet %s", b, i, s.Alphabet.Name()))
		}
		data[i] = c
	}
	out := s.shallowClone()
	out.Data = data
	return out, nil
}

// ReverseComplement returns the reverse complement of the sequence. It is
// equivalent to s.Complement().Reverse(), which is also one of this
// module's testable invariants.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	complemented, err := s.Complement()
	if err != nil {
		return nil, err
	}
	return complemented.Reverse(), nil
}

// IndexOfNonGap scans forward from "from" and returns the index of the
// first non-gap symbol, or -1 if none is found.
func (s *Sequence) IndexOfNonGap(from int) int {
	gaps := s.Alphabet.GapSymbols()
	for i := from; i < len(s.Data); i++ {
		if !gaps[alphabetFold(s.Data[i])] {
			return i
		}
	}
	return -1
}

// LastIndexOfNonGap scans backward from "to" (inclusive) and returns the
// index of the last non-gap symbol, or -1 if none is found.
func (s *Sequence) LastIndexOfNonGap(to int) int {
	gaps := s.Alphabet.GapSymbols()
	for i := to; i >= 0; i-- {
		if !gaps[alphabetFold(s.Data[i])] {
			return i
		}
	}
	return -1
}

func alphabetFold(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func (s *Sequence) shallowClone() *Sequence {
	meta := make(map[string]any, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}
	annotations := make(map[string]any, len(s.Annotations))
	for k, v := range s.Annotations {
		annotations[k] = v
	}
	dbxrefs := make([]string, len(s.Dbxrefs))
	copy(dbxrefs, s.Dbxrefs)
	features := make([]Feature, len(s.Features))
	copy(features, s.Features)
	return &Sequence{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Alphabet:          s.Alphabet,
		Metadata:          meta,
		Annotations:       annotations,
		Dbxrefs:           dbxrefs,
		Features:          features,
	}
}

func reverseLetterAnnotations(in map[string][]any) map[string][]any {
	if len(in) == 0 {
		return map[string][]any{}
	}
	out := make(map[string][]any, len(in))
	for k, v := range in {
		rev := make([]any, len(v))
		for i, x := range v {
			rev[len(v)-1-i] = x
		}
		out[k] = rev
	}
	return out
}
