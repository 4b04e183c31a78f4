package bio

import (
	"io"
	"testing"

	"github.com/nucleobase/insdc/genbank"
)

func TestParserInterfaceSatisfiedByGenbank(t *testing.T) {
	var _ parserInterface[*genbank.Record, *genbank.Header] = (*genbank.Parser)(nil)
	var _ io.WriterTo = (*genbank.Record)(nil)
	var _ io.WriterTo = (*genbank.Header)(nil)
}
