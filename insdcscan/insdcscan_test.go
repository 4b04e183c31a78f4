package insdcscan_test

import (
	"strings"
	"testing"

	"github.com/nucleobase/insdc/insdcscan"
	"github.com/nucleobase/insdc/lineio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genbankDialect() insdcscan.Dialect {
	return insdcscan.Dialect{
		RecordStart:         "LOCUS",
		FeatureSectionStart: "FEATURES",
		FooterMarkers:       []string{"ORIGIN", "CONTIG"},
		RecordEnd:           "//",
	}
}

const minimalRecord = `LOCUS       TESTSEQ       10 bp    DNA     linear   UNA 01-JAN-2024
DEFINITION  a short test sequence.
ACCESSION   TESTSEQ
VERSION     TESTSEQ.1
KEYWORDS    .
SOURCE      nowhere
  ORGANISM  Nowhere organism
FEATURES             Location/Qualifiers
     source          1..10
                     /organism="Nowhere organism"
     gene            1..10
                     /gene="x"
                     /note="a note that
                     continues onto a second line"
ORIGIN
        1 acgtacgtac
//
`

func TestScanMinimalRecord(t *testing.T) {
	ls := lineio.New(strings.NewReader(minimalRecord), 1<<16)
	scanner := insdcscan.New(ls, genbankDialect())
	rec, err := scanner.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.True(t, strings.Contains(rec.HeaderLine, "LOCUS"))
	tags := map[string]bool{}
	for _, m := range rec.Metadata {
		tags[m.Tag] = true
	}
	assert.True(t, tags["DEFINITION"])
	assert.True(t, tags["ACCESSION"])
	assert.True(t, tags["SOURCE"])

	require.Len(t, rec.Features, 2)
	assert.Equal(t, "source", rec.Features[0].Key)
	assert.Equal(t, "1..10", rec.Features[0].LocationText)
	require.Len(t, rec.Features[1].Qualifiers, 2)
	assert.Contains(t, rec.Features[1].Qualifiers[1], "continues onto a second line")

	assert.Equal(t, "ORIGIN", rec.FooterTag)
	require.Len(t, rec.SequenceLines, 1)

	next, err := scanner.Next()
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestScanSkipsLeadingGarbage(t *testing.T) {
	text := "some junk before the record\n" + minimalRecord
	ls := lineio.New(strings.NewReader(text), 1<<16)
	scanner := insdcscan.New(ls, genbankDialect())
	rec, err := scanner.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, strings.Contains(rec.HeaderLine, "LOCUS"))
}
