package location_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nucleobase/insdc/gbkerr"
	"github.com/nucleobase/insdc/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// locationCmpOpts exports the unexported Position fields for cmp.Diff, the
// way the teacher's own genbank_test.go reaches into ParentSequence-shaped
// structs with cmpopts rather than hand-rolling per-field assertions.
var locationCmpOpts = cmp.AllowUnexported(location.Position{})

func TestSimplePair(t *testing.T) {
	loc, err := location.FromString("1..10", 100, false, true, nil)
	require.NoError(t, err)
	require.True(t, loc.IsSimple())
	s := loc.AsSimple()
	assert.Equal(t, 0, s.Start.MonomerPosition())
	assert.Equal(t, 10, s.End.MonomerPosition())
	assert.Equal(t, location.Forward, s.Strand)
}

func TestComplementSimple(t *testing.T) {
	loc, err := location.FromString("complement(1..10)", 100, false, true, nil)
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, location.Reverse, s.Strand)
}

func TestJoinOrdersParts(t *testing.T) {
	loc, err := location.FromString("join(1..10,20..30)", 100, false, true, nil)
	require.NoError(t, err)
	require.True(t, loc.IsCompound())
	op, parts := loc.AsCompound()
	assert.Equal(t, location.Join, op)
	require.Len(t, parts, 2)
	assert.Equal(t, 0, parts[0].Start.MonomerPosition())
	assert.Equal(t, 19, parts[1].Start.MonomerPosition())
}

func TestComplementJoinReversesPartOrderAndStrand(t *testing.T) {
	loc, err := location.FromString("complement(join(1..10,20..30))", 100, false, true, nil)
	require.NoError(t, err)
	_, parts := loc.AsCompound()
	require.Len(t, parts, 2)
	assert.Equal(t, 19, parts[0].Start.MonomerPosition())
	assert.Equal(t, 0, parts[1].Start.MonomerPosition())
	for _, p := range parts {
		assert.Equal(t, location.Reverse, p.Strand)
	}
}

func TestNestedOperatorsRejected(t *testing.T) {
	_, err := location.FromString("join(order(1..2,3..4),5..6)", 100, false, true, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, gbkerr.New(gbkerr.LocationParseError, 0, "").WithSub(gbkerr.NestedOperators))
}

func TestDoubleComplementRejected(t *testing.T) {
	_, err := location.FromString("complement(join(complement(1..10),20..30))", 100, false, true, nil)
	require.Error(t, err)
}

func TestOriginWrapSynthesizesJoin(t *testing.T) {
	var warnings []string
	loc, err := location.FromString("95..5", 100, true, true, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)
	require.True(t, loc.IsCompound())
	op, parts := loc.AsCompound()
	assert.Equal(t, location.Join, op)
	require.Len(t, parts, 2)
	assert.Equal(t, 94, parts[0].Start.MonomerPosition())
	assert.Equal(t, 100, parts[0].End.MonomerPosition())
	assert.Equal(t, 0, parts[1].Start.MonomerPosition())
	assert.Equal(t, 5, parts[1].End.MonomerPosition())
	assert.NotEmpty(t, warnings)
}

func TestOriginWrapRejectedWhenNotCircular(t *testing.T) {
	_, err := location.FromString("95..5", 100, false, true, nil)
	require.Error(t, err)
}

func TestBetweenBases(t *testing.T) {
	loc, err := location.FromString("3^4", 100, false, true, nil)
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, 3, s.Start.MonomerPosition())
	assert.Equal(t, 3, s.End.MonomerPosition())
}

func TestBetweenBasesCircularWrap(t *testing.T) {
	loc, err := location.FromString("100^1", 100, false, true, nil)
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, 100, s.Start.MonomerPosition())
}

func TestBetweenBasesInvalidGap(t *testing.T) {
	_, err := location.FromString("3^9", 100, false, true, nil)
	require.Error(t, err)
}

func TestBondQualifierDropped(t *testing.T) {
	var warnings []string
	loc, err := location.FromString("bond(50)", 100, false, true, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, 49, s.Start.MonomerPosition())
	assert.NotEmpty(t, warnings)
}

func TestBondOperatorCompound(t *testing.T) {
	loc, err := location.FromString("bond(50,60)", 100, false, true, nil)
	require.NoError(t, err)
	require.True(t, loc.IsCompound())
	op, _ := loc.AsCompound()
	assert.Equal(t, location.Bond, op)
}

func TestReferencePrefix(t *testing.T) {
	loc, err := location.FromString("J00123.1:1..10", 100, false, true, nil)
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, "J00123.1", s.Reference)
}

func TestFuzzyEnds(t *testing.T) {
	loc, err := location.FromString("<1..>10", 100, false, true, nil)
	require.NoError(t, err)
	s := loc.AsSimple()
	assert.Equal(t, location.Before, s.Start.Kind)
	assert.Equal(t, location.After, s.End.Kind)
}

func TestTrailingCommaRepaired(t *testing.T) {
	var warnings []string
	loc, err := location.FromString("join(1..10,20..30,)", 100, false, true, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)
	_, parts := loc.AsCompound()
	assert.Len(t, parts, 2)
	assert.NotEmpty(t, warnings)
}

func TestUndefinedStrandWhenUnstranded(t *testing.T) {
	loc, err := location.FromString("1..10", 100, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, location.Undefined, loc.AsSimple().Strand)
}

func TestOriginWrapInsideJoinMemberRejected(t *testing.T) {
	_, err := location.FromString("join(4000..100,200..300)", 4000, true, true, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, gbkerr.New(gbkerr.LocationParseError, 0, "").WithSub(gbkerr.CompoundListMember))
}

func TestEquivalentFormsParseIdentically(t *testing.T) {
	a, err := location.FromString("join(1..10,20..30)", 100, false, true, nil)
	require.NoError(t, err)
	b, err := location.FromString("join( 1..10 , 20..30 )", 100, false, true, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, locationCmpOpts, cmp.AllowUnexported(location.Location{})); diff != "" {
		t.Errorf("equivalent location text parsed differently (-want +got):\n%s", diff)
	}
}
