package gbkerr_test

import (
	"errors"
	"testing"

	"github.com/nucleobase/insdc/gbkerr"
	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := gbkerr.New(gbkerr.LengthMismatch, 12, "declared size does not match sequence length")
	assert.True(t, errors.Is(err, gbkerr.New(gbkerr.LengthMismatch, 0, "")))
	assert.False(t, errors.Is(err, gbkerr.New(gbkerr.NotText, 0, "")))
}

func TestErrorIsMatchesLocationSub(t *testing.T) {
	err := gbkerr.New(gbkerr.LocationParseError, 4, "circular required").WithSub(gbkerr.OriginWrapNotCircular)
	match := gbkerr.New(gbkerr.LocationParseError, 0, "").WithSub(gbkerr.OriginWrapNotCircular)
	mismatch := gbkerr.New(gbkerr.LocationParseError, 0, "").WithSub(gbkerr.NestedOperators)
	assert.True(t, errors.Is(err, match))
	assert.False(t, errors.Is(err, mismatch))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := gbkerr.Wrap(gbkerr.IoError, 1, cause, "read failed")
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessage(t *testing.T) {
	err := gbkerr.New(gbkerr.UnrecognizedLocus, 1, "no dialect matched").WithOffset(0)
	assert.Contains(t, err.Error(), "UnrecognizedLocus")
	assert.Contains(t, err.Error(), "line 1")
}
