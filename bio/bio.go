/*
Package bio provides a generic wrapper around the lower-level format
parsers (currently just genbank) with shared Parse/ParseN/ParseToChannel
convenience methods, in the same spirit as the teacher's own bio
package, which does the same for fasta/fastq/genbank/slow5/pileup.
*/
package bio

import (
	"context"
	"errors"
	"io"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/nucleobase/insdc/genbank"
)

// Format is an enum of the parser formats this package wires up.
type Format int

const (
	Genbank Format = iota
)

// DefaultMaxLengths mirrors the teacher's per-format scanner buffer
// sizing: GenBank records rarely need more than the stdlib bufio
// default line buffer.
const defaultMaxLineLength = 64 * 1024

var DefaultMaxLengths = map[Format]int{
	Genbank: defaultMaxLineLength,
}

// parserInterface is the minimal contract every lower-level parser
// meets: Header() once, Next() repeatedly until io.EOF.
type parserInterface[Data io.WriterTo, Header io.WriterTo] interface {
	Header() (Header, error)
	Next() (Data, error)
}

// Parser wraps a lower-level format parser and adds Parse/ParseN/
// ParseWithHeader/ParseToChannel on top of it.
type Parser[Data io.WriterTo, Header io.WriterTo] struct {
	parserInterface parserInterface[Data, Header]
}

// NewGenbankParser initiates a new Genbank parser from an io.Reader.
func NewGenbankParser(r io.Reader) (*Parser[*genbank.Record, *genbank.Header], error) {
	return NewGenbankParserWithMaxLineLength(r, DefaultMaxLengths[Genbank])
}

// NewGenbankParserWithMaxLineLength initiates a new Genbank parser from
// an io.Reader and a user-given maxLineLength.
func NewGenbankParserWithMaxLineLength(r io.Reader, maxLineLength int) (*Parser[*genbank.Record, *genbank.Header], error) {
	return &Parser[*genbank.Record, *genbank.Header]{parserInterface: genbank.NewParser(r, maxLineLength)}, nil
}

// Next returns the next record from the parser. On EOF, it returns an
// io.EOF error, though the returned Data may or may not be nil,
// depending on where the io.EOF is; this should be checked by
// downstream software.
func (p *Parser[Data, Header]) Next() (Data, error) {
	return p.parserInterface.Next()
}

// Header returns the parser's header. GenBank has no useful header
// distinct from its first record, so this always returns a zero Header.
func (p *Parser[Data, Header]) Header() (Header, error) {
	return p.parserInterface.Header()
}

// ParseN returns up to countN records from the parser.
func (p *Parser[Data, Header]) ParseN(countN int) ([]Data, error) {
	var records []Data
	for counter := 0; counter < countN; counter++ {
		record, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Parse returns every record from the parser. It can only be called
// once on a given parser, since it reads the underlying io.Reader to
// completion.
func (p *Parser[Data, Header]) Parse() ([]Data, error) {
	return p.ParseN(math.MaxInt)
}

// ParseWithHeader returns every record plus the header.
func (p *Parser[Data, Header]) ParseWithHeader() ([]Data, Header, error) {
	header, headerErr := p.Header()
	data, err := p.Parse()
	if headerErr != nil {
		return data, header, err
	}
	return data, header, err
}

// ParseToChannel pipes every record from the parser into channel, then
// optionally closes it. ctx can be used to stop early.
func (p *Parser[Data, Header]) ParseToChannel(ctx context.Context, channel chan<- Data, keepChannelOpen bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			record, err := p.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				if !keepChannelOpen {
					close(channel)
				}
				return err
			}
			channel <- record
		}
	}
}

// ManyToChannel runs several parsers concurrently into a single shared
// channel, closing it once every parser has finished or one fails.
func ManyToChannel[Data io.WriterTo, Header io.WriterTo](ctx context.Context, channel chan<- Data, parsers ...*Parser[Data, Header]) error {
	errorGroup, ctx := errgroup.WithContext(ctx)
	for _, p := range parsers {
		parser := p
		errorGroup.Go(func() error {
			return parser.ParseToChannel(ctx, channel, true)
		})
	}
	err := errorGroup.Wait()
	close(channel)
	return err
}
