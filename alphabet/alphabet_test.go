package alphabet_test

import (
	"testing"

	"github.com/nucleobase/insdc/alphabet"
	"github.com/stretchr/testify/assert"
)

func TestDNAValid(t *testing.T) {
	for _, sym := range []byte{'A', 'c', 'G', 't', '-', 'n', 'M'} {
		assert.True(t, alphabet.DNA.Valid(sym), "expected %q to be valid DNA", sym)
	}
	assert.False(t, alphabet.DNA.Valid('U'), "U is not a member of DNA (that's RNA)")
	assert.False(t, alphabet.DNA.Valid('Z'))
}

func TestDNAComplement(t *testing.T) {
	cases := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', '-': '-', 'a': 't', 'n': 'n'}
	for in, want := range cases {
		got, ok := alphabet.DNA.Complement(in)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := alphabet.DNA.Complement('Z')
	assert.False(t, ok, "non-member symbols have no complement")
}

func TestRNAComplement(t *testing.T) {
	got, ok := alphabet.RNA.Complement('A')
	assert.True(t, ok)
	assert.Equal(t, byte('U'), got)
}

func TestProteinComplementUnsupported(t *testing.T) {
	assert.False(t, alphabet.Protein.ComplementSupported())
	_, ok := alphabet.Protein.Complement('A')
	assert.False(t, ok)
}

func TestGapSymbols(t *testing.T) {
	gaps := alphabet.DNA.GapSymbols()
	assert.True(t, gaps['-'])
	assert.False(t, gaps['A'])
}

func TestAmbiguousExpansion(t *testing.T) {
	expansion, ok := alphabet.DNA.AmbiguousExpansion('M')
	assert.True(t, ok)
	assert.ElementsMatch(t, []byte{'A', 'C'}, expansion)

	_, ok = alphabet.DNA.AmbiguousExpansion('A')
	assert.False(t, ok, "A is not an ambiguity code")
}

func TestValidateRange(t *testing.T) {
	buf := []byte("ACGTXACGT")
	assert.True(t, alphabet.DNA.ValidateRange(buf, 0, 4))
	assert.False(t, alphabet.DNA.ValidateRange(buf, 0, 5))
}

func TestGetConsensusUnsupported(t *testing.T) {
	_, err := alphabet.DNA.GetConsensus([]byte("ACGT"))
	assert.Error(t, err)
}
