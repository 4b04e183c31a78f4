package seq_test

import (
	"testing"

	"github.com/nucleobase/insdc/alphabet"
	"github.com/nucleobase/insdc/seq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesAlphabet(t *testing.T) {
	_, err := seq.New("id1", alphabet.DNA, "ACGTX", true)
	require.Error(t, err)

	s, err := seq.New("id1", alphabet.DNA, "ACGT", true)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
}

func TestAlphabetSoundness(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "ACGTNRYM", true)
	require.NoError(t, err)
	for i := 0; i < s.Len(); i++ {
		b, err := s.At(i)
		require.NoError(t, err)
		assert.True(t, s.Alphabet.Valid(b))
	}
}

func TestSubsequenceComposition(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "ACGTACGTACGT", false)
	require.NoError(t, err)

	left, err := s.Subsequence(2, 6)
	require.NoError(t, err)
	inner, err := left.Subsequence(1, 3)
	require.NoError(t, err)

	direct, err := s.Subsequence(3, 3)
	require.NoError(t, err)

	assert.Equal(t, direct.Data, inner.Data)
}

func TestDoubleReverse(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "ACGTACGT", false)
	require.NoError(t, err)
	assert.Equal(t, s.Data, s.Reverse().Reverse().Data)
}

func TestReverseComplementDuality(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "ACGTACGT", false)
	require.NoError(t, err)

	rc, err := s.ReverseComplement()
	require.NoError(t, err)

	complemented, err := s.Complement()
	require.NoError(t, err)
	expected := complemented.Reverse()

	assert.Equal(t, expected.Data, rc.Data)
}

func TestComplementUnsupportedForProtein(t *testing.T) {
	s, err := seq.New("id1", alphabet.Protein, "MKLV", false)
	require.NoError(t, err)
	_, err = s.Complement()
	require.Error(t, err)
}

func TestIndexOfNonGap(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "--AC--GT--", false)
	require.NoError(t, err)
	assert.Equal(t, 2, s.IndexOfNonGap(0))
	assert.Equal(t, 7, s.LastIndexOfNonGap(s.Len()-1))
}

func TestIndexOfNonGapAllGaps(t *testing.T) {
	s, err := seq.New("id1", alphabet.DNA, "----", false)
	require.NoError(t, err)
	assert.Equal(t, -1, s.IndexOfNonGap(0))
}

func TestFeatureGetAndHas(t *testing.T) {
	val := "lacZ"
	f := seq.Feature{Key: "gene", Qualifiers: []seq.Qualifier{
		{Key: "gene", Value: &val},
		{Key: "pseudo"},
	}}
	v, ok := f.Get("gene")
	assert.True(t, ok)
	assert.Equal(t, "lacZ", v)
	assert.True(t, f.Has("pseudo"))
	_, ok = f.Get("pseudo")
	assert.False(t, ok)
}
