/*
Package insdcscan implements the line-grouping mechanics shared by every
member of the INSDC flat-file family (GenBank, EMBL, DDBJ): find the
start of a record, gather its header into tag-delimited blocks, gather
its feature table into key/location/qualifier blocks, and gather its
sequence or CONTIG footer.

This is a generalization of the teacher's own bio/genbank/genbank.go
Parser.Next() state machine (see the "metadata"/"features"/"sequence"
switch there): the indentation bookkeeping and tag-continuation rules
are identical, but the dialect-specific tokens ("LOCUS", "FEATURES",
"ORIGIN") are pulled out into a Dialect value instead of being string
literals baked into the switch. What stays concrete, per this module's
design notes, is the parsing itself: Next is one state machine walked
with a single forward cursor, not an iterator wrapping an iterator.
*/
package insdcscan

import (
	"strings"

	"github.com/nucleobase/insdc/gbkerr"
	"github.com/nucleobase/insdc/lineio"
)

// Dialect configures the literal tokens a family member's flat file
// uses to delimit sections. GenBank is the only dialect this module
// ships; EMBL/DDBJ would supply their own values.
type Dialect struct {
	RecordStart         string   // e.g. "LOCUS"
	FeatureSectionStart string   // e.g. "FEATURES"
	FooterMarkers       []string // e.g. "ORIGIN", "CONTIG"
	RecordEnd           string   // e.g. "//"
}

// MetadataBlock is one header tag (column 0 through 11 in classic
// GenBank) and the lines belonging to it: the text after the tag on its
// first line (trimmed), then every continuation line verbatim.
type MetadataBlock struct {
	Tag   string
	Lines []string
}

// FeatureBlock is one feature table entry: its key, the (possibly
// multi-line, now joined) location text, and its qualifier lines each
// still prefixed with "/".
type FeatureBlock struct {
	Key          string
	LocationText string
	Qualifiers   []string
}

// RawRecord is one scanned record with its sections grouped but not yet
// semantically interpreted. genbank.Parser walks this into a
// seq.Sequence.
type RawRecord struct {
	HeaderLine    string
	Metadata      []MetadataBlock
	Features      []FeatureBlock
	BaseCountLine string
	FooterTag     string
	FooterRest    string
	SequenceLines []string
}

// Scanner pulls RawRecords out of a multi-record INSDC flat file.
type Scanner struct {
	lines   *lineio.LineScanner
	dialect Dialect
}

// New returns a Scanner reading from ls under dialect.
func New(ls *lineio.LineScanner, dialect Dialect) *Scanner {
	return &Scanner{lines: ls, dialect: dialect}
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func isFooterMarker(dialect Dialect, line string) (string, bool) {
	for _, marker := range dialect.FooterMarkers {
		if strings.HasPrefix(line, marker) {
			return marker, true
		}
	}
	return "", false
}

// FindStart advances past any leading garbage and returns true once
// positioned at the dialect's RecordStart line (not yet consumed), or
// false at EOF with no record found.
func (s *Scanner) FindStart() bool {
	for {
		line, ok := s.lines.Peek()
		if !ok {
			return false
		}
		if strings.Contains(line, s.dialect.RecordStart) {
			return true
		}
		s.lines.Consume()
	}
}

// Next scans one full record, or returns (nil, nil) at EOF.
func (s *Scanner) Next() (*RawRecord, error) {
	if !s.FindStart() {
		return nil, nil
	}
	rec := &RawRecord{HeaderLine: s.lines.Consume()}

	if err := s.scanMetadata(rec); err != nil {
		return nil, err
	}
	if err := s.scanFeatures(rec); err != nil {
		return nil, err
	}
	if err := s.scanFooter(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// scanMetadata gathers header tag blocks until the FeatureSectionStart
// line, which is left unconsumed for scanFeatures to pick up.
func (s *Scanner) scanMetadata(rec *RawRecord) error {
	var current *MetadataBlock
	for {
		line, ok := s.lines.Peek()
		if !ok {
			return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "end of input while reading header")
		}
		if strings.Contains(line, s.dialect.FeatureSectionStart) {
			if current != nil {
				rec.Metadata = append(rec.Metadata, *current)
			}
			return nil
		}
		s.lines.Consume()
		if len(line) == 0 {
			return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "unexpected blank line in header")
		}
		if line[0] != ' ' {
			if current != nil {
				rec.Metadata = append(rec.Metadata, *current)
			}
			fields := strings.Fields(line)
			tag := fields[0]
			current = &MetadataBlock{Tag: tag, Lines: []string{strings.TrimSpace(line[len(tag):])}}
		} else {
			if current == nil {
				return gbkerr.New(gbkerr.OrphanContinuation, s.lines.Line(), "header continuation line with no open tag")
			}
			current.Lines = append(current.Lines, line)
		}
	}
}

// scanFeatures consumes the FEATURES header line itself, then gathers
// feature blocks until a footer marker line is found. A BASE COUNT line
// met on the way is stored in rec.BaseCountLine and scanning goes on.
func (s *Scanner) scanFeatures(rec *RawRecord) error {
	s.lines.Consume() // the "FEATURES  Location/Qualifiers" line

	var current *FeatureBlock
	var currentQualifier *string
	prevIndent := -1

	flushQualifier := func() {
		if current != nil && currentQualifier != nil {
			current.Qualifiers = append(current.Qualifiers, *currentQualifier)
			currentQualifier = nil
		}
	}

	for {
		line, ok := s.lines.Peek()
		if !ok {
			return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "end of input while reading features")
		}
		if strings.Contains(line, "BASE COUNT") {
			s.lines.Consume()
			rec.BaseCountLine = line
			continue
		}
		if _, ok := isFooterMarker(s.dialect, line); ok {
			flushQualifier()
			if current != nil {
				rec.Features = append(rec.Features, *current)
			}
			return nil
		}
		s.lines.Consume()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := leadingSpaces(line)
		switch {
		case indent == 0:
			return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "unexpected top-level line inside feature table")
		case current == nil || indent < prevIndent:
			flushQualifier()
			if current != nil {
				rec.Features = append(rec.Features, *current)
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "malformed feature header line")
			}
			current = &FeatureBlock{Key: fields[0], LocationText: fields[len(fields)-1]}
		case strings.HasPrefix(trimmed, "/"):
			flushQualifier()
			q := trimmed
			currentQualifier = &q
		case currentQualifier != nil:
			q := *currentQualifier + "\n" + strings.TrimSpace(line)
			currentQualifier = &q
		default:
			current.LocationText += trimmed
		}
		prevIndent = indent
	}
}

// scanFooter consumes the footer marker line and, for a sequence
// footer, every monomer line up to the record terminator.
func (s *Scanner) scanFooter(rec *RawRecord) error {
	line, ok := s.lines.Peek()
	if !ok {
		return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "end of input before record footer")
	}
	marker, _ := isFooterMarker(s.dialect, line)
	s.lines.Consume()
	rec.FooterTag = marker
	rec.FooterRest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), marker))

	for {
		line, ok := s.lines.Peek()
		if !ok {
			return gbkerr.New(gbkerr.PrematureEnd, s.lines.Line(), "end of input before record terminator")
		}
		s.lines.Consume()
		if strings.TrimSpace(line) == s.dialect.RecordEnd {
			return nil
		}
		rec.SequenceLines = append(rec.SequenceLines, line)
	}
}
