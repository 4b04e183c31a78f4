/*
Package genbank implements the GenBank flat-file dialect of the INSDC
scanner: LOCUS dialect detection, footer/sequence assembly, and the
semantic interpretation of a scanned insdcscan.RawRecord into a
seq.Sequence.

This mirrors the teacher's own bio/genbank/genbank.go, but the line
grouping it used to do inline is delegated to the insdcscan package;
what remains here is GenBank's specific vocabulary (LOCUS dialects,
ACCESSION/VERSION/KEYWORDS/REFERENCE semantics, qualifier value rules).
*/
package genbank

import (
	"io"

	"github.com/nucleobase/insdc/gbkerr"
	"github.com/nucleobase/insdc/seq"
)

// Header is a placeholder satisfying the generic bio.Parser[Data, Header]
// contract. GenBank has no separate file-level header distinct from its
// first record, so, like the teacher's own genbank.Header, it writes
// nothing.
type Header struct{}

// WriteTo is a no-op, matching the teacher's own blank Header.WriteTo.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	return 0, nil
}

// Record is one parsed GenBank entry: a seq.Sequence plus its
// REFERENCE blocks, which don't fit seq.Sequence's generic shape.
type Record struct {
	*seq.Sequence
	References []seq.Reference
}

// WriteTo is deliberately unimplemented: serializing back to GenBank
// flat-file text is out of scope for this module. Callers that need it
// should render seq.Sequence and Record fields into their own writer.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	return 0, gbkerr.New(gbkerr.Unsupported, 0, "genbank.Record.WriteTo is not implemented")
}
