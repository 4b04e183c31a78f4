package genbank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nucleobase/insdc/alphabet"
	"github.com/nucleobase/insdc/gbkerr"
	"github.com/nucleobase/insdc/insdcscan"
	"github.com/nucleobase/insdc/location"
	"github.com/nucleobase/insdc/seq"
)

// removeSpaceQualifiers names the qualifiers whose values are stored
// with all internal whitespace stripped, e.g. wrapped /translation
// strings.
var removeSpaceQualifiers = map[string]bool{
	"translation": true,
}

func alphabetForLocus(lf locusFields) *alphabet.Table {
	if lf.ResidueType == "aa" {
		return alphabet.Protein
	}
	if strings.Contains(strings.ToUpper(lf.MoleculeType), "RNA") {
		return alphabet.RNA
	}
	return alphabet.DNA
}

func joinWrapped(lines []string) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func splitTrimDrop(text, sep string) []string {
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")
	var out []string
	for _, p := range strings.Split(text, sep) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitTaxonomy(lines []string) []string {
	text := strings.TrimSuffix(strings.Join(lines, "\n"), ".")
	var out []string
	for _, l := range strings.Split(text, "\n") {
		for _, p := range strings.Split(l, ";") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func appendAnnotationList(rec *Record, key, value string) {
	list, _ := rec.Annotations[key].([]string)
	list = append(list, value)
	rec.Annotations[key] = list
}

func normalizeDbxref(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ": ", ":")
	return value
}

func addDbxref(rec *Record, seen map[string]bool, value string) {
	value = normalizeDbxref(value)
	if value == "" || seen[value] {
		return
	}
	seen[value] = true
	rec.Dbxrefs = append(rec.Dbxrefs, value)
}

// BaseCount is one Base/Count pair from a legacy "BASE COUNT" footer
// line, e.g. BASE COUNT 1000 a 1500 c 1500 g 1000 t.
type BaseCount struct {
	Base  string
	Count int
}

func parseBaseCount(line string) []BaseCount {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "BASE COUNT"))
	var out []BaseCount
	for i := 0; i+1 < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		out = append(out, BaseCount{Base: fields[i+1], Count: n})
	}
	return out
}

const (
	structuredCommentStartSuffix = "-START##"
	structuredCommentEndSuffix   = "-END##"
)

// parseComment recognizes NCBI's "##Genome-Assembly-Data-START##" /
// "##...-END##" delimited key:value block inside a COMMENT, returning
// the parsed pairs plus the comment text with the structured block
// removed. When no delimiters are found it returns a nil map and the
// untouched text.
func parseComment(lines []string) (map[string]string, string) {
	startIdx, endIdx := -1, -1
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "##") && strings.HasSuffix(trimmed, structuredCommentStartSuffix) {
			startIdx = i
		}
		if strings.HasPrefix(trimmed, "##") && strings.HasSuffix(trimmed, structuredCommentEndSuffix) {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx < 0 || endIdx <= startIdx {
		return nil, strings.Join(lines, "\n")
	}
	structured := map[string]string{}
	for _, l := range lines[startIdx+1 : endIdx] {
		if idx := strings.Index(l, "::"); idx >= 0 {
			key := strings.TrimSpace(l[:idx])
			value := strings.TrimSpace(l[idx+2:])
			if key != "" {
				structured[key] = value
			}
		}
	}
	rest := append(append([]string{}, lines[:startIdx]...), lines[endIdx+1:]...)
	return structured, strings.TrimSpace(strings.Join(rest, "\n"))
}

var refBasesRangeRe = regexp.MustCompile(`^(\d+)\s+to\s+(\d+)$`)

// parseReferenceBases parses the "(bases A to B; C to D)" / "(residues
// A to B)" / "(sites)" / "(bases)" forms into 0-based half-open Simple
// locations. The bare "(sites)"/"(bases)" forms carry no coordinates.
func parseReferenceBases(text string) ([]location.Simple, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
		return nil, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("malformed reference bases %q", text)).WithSub(gbkerr.BadReferenceBases)
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	switch strings.ToLower(inner) {
	case "sites", "bases":
		return nil, nil
	}
	inner = strings.TrimPrefix(inner, "bases ")
	inner = strings.TrimPrefix(inner, "residues ")

	var out []location.Simple
	for _, seg := range strings.Split(inner, ";") {
		seg = strings.TrimSpace(seg)
		m := refBasesRangeRe.FindStringSubmatch(seg)
		if m == nil {
			return nil, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("malformed reference bases segment %q", seg)).WithSub(gbkerr.BadReferenceBases)
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		out = append(out, location.Simple{Start: location.NewExact(a - 1), End: location.NewExact(b), Strand: location.Undefined})
	}
	return out, nil
}

var referenceSubTagRe = regexp.MustCompile(`^(AUTHORS|CONSRTM|TITLE|JOURNAL|MEDLINE|PUBMED|REMARK)\s*(.*)$`)

// parseReferenceBlock interprets a REFERENCE metadata block: its first
// line carries the number and base range, subsequent lines carry
// indented AUTHORS/TITLE/JOURNAL/... sub-fields, each of which may
// itself wrap onto further continuation lines.
func parseReferenceBlock(lines []string) (seq.Reference, error) {
	var ref seq.Reference
	if len(lines) == 0 {
		return ref, nil
	}
	first := strings.TrimSpace(lines[0])
	fields := strings.Fields(first)
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			ref.Number = n
		}
	}
	if idx := strings.Index(first, "("); idx >= 0 {
		bases, err := parseReferenceBases(first[idx:])
		if err != nil {
			return ref, err
		}
		ref.BasesRef = bases
	}

	var tag string
	var buf []string
	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, " "))
		switch tag {
		case "AUTHORS":
			ref.Authors = text
		case "CONSRTM":
			ref.Consortium = text
		case "TITLE":
			ref.Title = text
		case "JOURNAL":
			ref.Journal = text
		case "MEDLINE":
			ref.MedlineID = text
		case "PUBMED":
			ref.PubmedID = text
		case "REMARK":
			ref.Remark = text
		}
		buf = nil
	}
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if m := referenceSubTagRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			tag = m[1]
			buf = append(buf, m[2])
			continue
		}
		buf = append(buf, trimmed)
	}
	flush()
	return ref, nil
}

// isExplicitJoinText reports whether a feature's raw location text
// itself uses the join(...) operator (optionally complement-wrapped),
// as opposed to a plain span that incidentally resolved to a Join
// compound through origin-wrap rewriting on a circular molecule. Only
// the former implies real splicing.
func isExplicitJoinText(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "complement(") && strings.HasSuffix(text, ")") {
		text = strings.TrimSpace(text[len("complement(") : len(text)-1])
	}
	return strings.HasPrefix(text, "join(")
}

// synthesizeSpliceFeatures derives the exon/intron features implied by a
// feature explicitly declared with the join(...) operator: one exon per
// part, and one intron filling each gap between consecutive parts. A
// compound that only arose from origin-wrap rewriting (see
// isExplicitJoinText) carries no implied splicing and synthesizes
// nothing, nor do order(...)/bond(...) compounds.
func synthesizeSpliceFeatures(f seq.Feature, explicitJoin bool) []seq.Feature {
	if !explicitJoin || !f.Location.IsCompound() {
		return nil
	}
	op, parts := f.Location.AsCompound()
	if op != location.Join {
		return nil
	}
	var out []seq.Feature
	for i, p := range parts {
		out = append(out, seq.Feature{Key: "exon", Location: location.NewSimpleLocation(p)})
		if i+1 < len(parts) {
			out = append(out, seq.Feature{Key: "intron", Location: location.NewSimpleLocation(location.Simple{
				Start:  p.End,
				End:    parts[i+1].Start,
				Strand: p.Strand,
			})})
		}
	}
	return out
}

func parseQualifier(raw string) seq.Qualifier {
	raw = strings.TrimPrefix(raw, "/")
	eq := strings.Index(raw, "=")
	if eq < 0 {
		return seq.Qualifier{Key: raw}
	}
	key := raw[:eq]
	val := raw[eq+1:]
	if val == "" {
		return seq.Qualifier{Key: key}
	}
	if removeSpaceQualifiers[key] {
		val = strings.Join(strings.Fields(val), "")
	}
	return seq.Qualifier{Key: key, Value: &val}
}

func assembleSequence(lines []string, warn func(string)) (string, error) {
	var sb strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if warn != nil {
				warn("blank line in sequence block")
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			if len(line) > 1 {
				fields = strings.Fields(line[1:])
			}
			if len(fields) == 0 {
				return "", gbkerr.New(gbkerr.MalformedSequenceLine, 0, "sequence line missing leading column-1 integer")
			}
			if _, err2 := strconv.Atoi(fields[0]); err2 != nil {
				return "", gbkerr.New(gbkerr.MalformedSequenceLine, 0, "sequence line missing leading column-1 integer")
			}
		}
		for _, f := range fields[1:] {
			sb.WriteString(f)
		}
	}
	return sb.String(), nil
}

// interpretRecord turns a scanned raw record into a Record, applying
// every behavior of the consumer-callback contract: accession/version
// bookkeeping, keyword/taxonomy splitting, dblink/project dedup,
// reference assembly, feature/location parsing, and sequence assembly
// with length verification.
func interpretRecord(raw *insdcscan.RawRecord, doFeatures bool, warn func(string)) (*Record, error) {
	lf, err := parseLocus(raw.HeaderLine)
	if err != nil {
		return nil, err
	}
	circular := lf.Topology == "circular"

	rec := &Record{Sequence: &seq.Sequence{
		Name:              lf.Name,
		Alphabet:          alphabetForLocus(lf),
		Metadata:          map[string]any{},
		Annotations:       map[string]any{},
		LetterAnnotations: map[string][]any{},
	}}
	rec.Annotations["molecule_type"] = lf.MoleculeType
	rec.Annotations["topology"] = lf.Topology
	rec.Annotations["data_file_division"] = lf.DataFileDivision
	rec.Annotations["date"] = lf.Date
	rec.Annotations["residue_type"] = lf.ResidueType

	seenAccessions := map[string]bool{}
	seenDbxrefs := map[string]bool{}

	for _, block := range raw.Metadata {
		switch block.Tag {
		case "DEFINITION":
			rec.Description = joinWrapped(block.Lines)
		case "ACCESSION":
			for _, a := range strings.FieldsFunc(joinWrapped(block.Lines), func(r rune) bool { return r == ' ' || r == ';' }) {
				if rec.ID == "" {
					rec.ID = a
				}
				if !seenAccessions[a] {
					seenAccessions[a] = true
					appendAnnotationList(rec, "accessions", a)
				}
			}
		case "VERSION":
			v := joinWrapped(block.Lines)
			if idx := strings.LastIndex(v, "."); idx >= 0 {
				acc, suffix := v[:idx], v[idx+1:]
				if n, err := strconv.Atoi(suffix); err == nil {
					if rec.ID == "" {
						rec.ID = acc
					}
					if !seenAccessions[acc] {
						seenAccessions[acc] = true
						appendAnnotationList(rec, "accessions", acc)
					}
					rec.Annotations["sequence_version"] = n
					continue
				}
			}
			rec.ID = v
		case "KEYWORDS":
			rec.Annotations["keywords"] = splitTrimDrop(joinWrapped(block.Lines), ";")
		case "SOURCE":
			if len(block.Lines) > 0 {
				rec.Annotations["source"] = strings.TrimSpace(block.Lines[0])
			}
			var taxLines []string
			for _, l := range block.Lines[1:] {
				trimmed := strings.TrimSpace(l)
				if strings.HasPrefix(trimmed, "ORGANISM") {
					rec.Annotations["organism"] = strings.TrimSpace(strings.TrimPrefix(trimmed, "ORGANISM"))
					continue
				}
				taxLines = append(taxLines, trimmed)
			}
			rec.Annotations["taxonomy"] = splitTaxonomy(taxLines)
		case "REFERENCE":
			ref, err := parseReferenceBlock(block.Lines)
			if err != nil {
				return nil, err
			}
			rec.References = append(rec.References, ref)
		case "DBLINK", "PROJECT":
			addDbxref(rec, seenDbxrefs, joinWrapped(block.Lines))
		case "COMMENT":
			structured, rest := parseComment(block.Lines)
			if structured != nil {
				rec.Annotations["structured_comment"] = structured
			}
			rec.Annotations["comment"] = rest
		case "SEGMENT":
			rec.Annotations["segment"] = joinWrapped(block.Lines)
		default:
			rec.Metadata[block.Tag] = joinWrapped(block.Lines)
		}
	}

	if doFeatures {
		for _, fb := range raw.Features {
			loc, err := location.FromString(fb.LocationText, lf.Size, circular, true, warn)
			if err != nil {
				return nil, gbkerr.Wrap(gbkerr.LocationParseError, 0, err, fmt.Sprintf("feature %s location %q", fb.Key, fb.LocationText))
			}
			f := seq.Feature{Key: fb.Key, Location: loc}
			for _, raw := range fb.Qualifiers {
				f.Qualifiers = append(f.Qualifiers, parseQualifier(raw))
			}
			rec.Features = append(rec.Features, f)
			rec.Features = append(rec.Features, synthesizeSpliceFeatures(f, isExplicitJoinText(fb.LocationText))...)
		}
	}

	switch raw.FooterTag {
	case "CONTIG":
		rec.Metadata["CONTIG"] = raw.FooterRest
	case "WGS", "TSA", "TLS":
		rec.Annotations["wgs_statement"] = strings.TrimSpace(raw.FooterRest)
	}
	if raw.BaseCountLine != "" {
		rec.Annotations["base_count"] = parseBaseCount(raw.BaseCountLine)
	}

	text, err := assembleSequence(raw.SequenceLines, warn)
	if err != nil {
		return nil, err
	}
	rec.Data = []byte(strings.ToUpper(text))
	if lf.HasSize && len(rec.Data) != lf.Size {
		return nil, gbkerr.New(gbkerr.LengthMismatch, 0, fmt.Sprintf("declared size %d does not match sequence length %d", lf.Size, len(rec.Data)))
	}

	return rec, nil
}
