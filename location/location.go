package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nucleobase/insdc/gbkerr"
)

// Strand is the reading strand a location (or one of its parts) lies on.
type Strand int

const (
	Forward Strand = iota
	Reverse
	Undefined
)

func (s Strand) String() string {
	switch s {
	case Forward:
		return "Forward"
	case Reverse:
		return "Reverse"
	default:
		return "Undefined"
	}
}

// Operation is the compound-location operator: join, order, or bond.
type Operation int

const (
	Join Operation = iota
	Order
	Bond
)

func (o Operation) String() string {
	switch o {
	case Join:
		return "join"
	case Order:
		return "order"
	case Bond:
		return "bond"
	default:
		return "?"
	}
}

// Simple is a contiguous span: [Start, End) in 0-based half-open
// coordinates, on a given Strand, optionally qualified by a reference
// sequence name (a cross-reference to another record's location).
type Simple struct {
	Start     Position
	End       Position
	Strand    Strand
	Reference string // "" if this location is not on another record
	RefDB     string // "" unless Reference carried a "db|accession" prefix
}

// Bounds returns the monomer-position bounds of the span.
func (s Simple) Bounds() (int, int) {
	return s.Start.MonomerPosition(), s.End.MonomerPosition()
}

func (s Simple) String() string {
	body := s.Start.String() + ".." + s.End.String()
	if s.Reference != "" {
		body = s.Reference + ":" + body
	}
	if s.Strand == Reverse {
		body = "complement(" + body + ")"
	}
	return body
}

// locationKind distinguishes the two Location variants.
type locationKind int

const (
	simpleKind locationKind = iota
	compoundKind
)

// Location is either a Simple span or a Compound of two or more Simple
// parts joined by an Operation. It is a tagged union rather than an
// interface hierarchy per this module's design: Simple and Compound are
// sibling variants, not base/derived classes.
type Location struct {
	kind      locationKind
	simple    Simple
	operation Operation
	parts     []Simple
}

// NewSimpleLocation wraps a Simple span as a Location.
func NewSimpleLocation(s Simple) Location {
	return Location{kind: simpleKind, simple: s}
}

// NewCompoundLocation wraps an operation and its parts as a Location. It
// panics if fewer than two parts are given, since a one-part compound
// location is a contradiction in terms — callers should unwrap instead.
func NewCompoundLocation(op Operation, parts []Simple) Location {
	if len(parts) < 2 {
		panic("location: compound location requires at least 2 parts")
	}
	cp := make([]Simple, len(parts))
	copy(cp, parts)
	return Location{kind: compoundKind, operation: op, parts: cp}
}

// IsSimple reports whether this Location is a Simple span.
func (l Location) IsSimple() bool { return l.kind == simpleKind }

// IsCompound reports whether this Location is a Compound of parts.
func (l Location) IsCompound() bool { return l.kind == compoundKind }

// AsSimple returns the Simple span. It panics if IsSimple() is false.
func (l Location) AsSimple() Simple {
	if l.kind != simpleKind {
		panic("location: AsSimple called on a Compound location")
	}
	return l.simple
}

// AsCompound returns the operation and parts. It panics if IsCompound()
// is false.
func (l Location) AsCompound() (Operation, []Simple) {
	if l.kind != compoundKind {
		panic("location: AsCompound called on a Simple location")
	}
	out := make([]Simple, len(l.parts))
	copy(out, l.parts)
	return l.operation, out
}

// Bounds returns the overall (start, end) monomer-position span: the
// span itself for Simple, or the min start / max end across parts for
// Compound.
func (l Location) Bounds() (int, int) {
	if l.kind == simpleKind {
		return l.simple.Bounds()
	}
	lo, hi := l.parts[0].Bounds()
	for _, p := range l.parts[1:] {
		s, e := p.Bounds()
		if s < lo {
			lo = s
		}
		if e > hi {
			hi = e
		}
	}
	return lo, hi
}

func (l Location) String() string {
	if l.kind == simpleKind {
		return l.simple.String()
	}
	parts := make([]string, len(l.parts))
	for i, p := range l.parts {
		parts[i] = p.String()
	}
	return l.operation.String() + "(" + strings.Join(parts, ",") + ")"
}

var (
	fastPairRe  = regexp.MustCompile(`^(\d+)\.\.(\d+)$`)
	referenceRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.|]*[a-zA-Z0-9]?:`)
	bondWrapRe  = regexp.MustCompile(`^bond\((.+)\)$`)
	betweenRe   = regexp.MustCompile(`^(\d+)\^(\d+)$`)
	operatorRe  = regexp.MustCompile(`^(join|order|bond)\((.*)\)$`)
)

func detectOperator(text string) (Operation, string, bool) {
	m := operatorRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	var op Operation
	switch m[1] {
	case "join":
		op = Join
	case "order":
		op = Order
	case "bond":
		op = Bond
	}
	return op, m[2], true
}

// splitLocationList splits a compound operator's interior into its
// comma-separated sub-expressions, honoring nested parentheses so that
// "complement(1..3,5..7)" (a single entry containing a comma) is not
// split in half. This replaces the reference implementation's
// capture-group regex splitter with a balanced-parenthesis scan in the
// style of the teacher's own join(...) parser, which walks the interior
// tracking a paren depth counter to find top-level commas.
func splitLocationList(interior string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(interior); i++ {
		switch interior[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, interior[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, interior[start:])
	return parts
}

// FromString parses a complete feature (or reference) location
// expression. length is the sequence length, used for origin-wrap
// synthesis; circular enables it; stranded selects the default strand
// (Forward vs Undefined) when no complement(...) wrapper is present.
// warn, if non-nil, receives a human-readable message for every locally
// recoverable malformation encountered (trailing comma repair, dropped
// bond qualifier, origin wrap).
func FromString(text string, length int, circular, stranded bool, warn func(string)) (Location, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ",)") {
		if warn != nil {
			warn(fmt.Sprintf("repairing trailing comma in location %q", text))
		}
		text = strings.ReplaceAll(text, ",)", ")")
	}

	outerStrand := Forward
	if !stranded {
		outerStrand = Undefined
	}
	if strings.HasPrefix(text, "complement(") && strings.HasSuffix(text, ")") {
		text = text[len("complement(") : len(text)-1]
		outerStrand = Reverse
	}

	if op, interior, ok := detectOperator(text); ok {
		rawParts := splitLocationList(interior)
		if op == Bond && len(rawParts) == 1 {
			if warn != nil {
				warn("dropping bond qualifier")
			}
			loc, err := parseSimple(strings.TrimSpace(rawParts[0]), length, circular, warn)
			if err != nil {
				return Location{}, err
			}
			return applyOuterStrand(loc, outerStrand), nil
		}
		simples := make([]Simple, 0, len(rawParts))
		for _, raw := range rawParts {
			raw = strings.TrimSpace(raw)
			if _, _, isNested := detectOperator(raw); isNested {
				return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("nested operator in location part %q", raw)).WithSub(gbkerr.NestedOperators)
			}
			sub, err := parseSimple(raw, length, circular, warn)
			if err != nil {
				return Location{}, err
			}
			if sub.IsCompound() {
				return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("location part %q wraps the origin, which would nest a compound inside %s(...)", raw, op)).WithSub(gbkerr.CompoundListMember)
			}
			s := sub.AsSimple()
			if s.Strand == Reverse && outerStrand == Reverse {
				return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("double complement in location part %q", raw)).WithSub(gbkerr.DoubleComplement)
			}
			if s.Strand == Undefined {
				s.Strand = outerStrand
			}
			simples = append(simples, s)
		}
		if len(simples) == 1 {
			return NewSimpleLocation(simples[0]), nil
		}
		if outerStrand == Reverse {
			for i, j := 0, len(simples)-1; i < j; i, j = i+1, j-1 {
				simples[i], simples[j] = simples[j], simples[i]
			}
		}
		return NewCompoundLocation(op, simples), nil
	}

	loc, err := parseSimple(text, length, circular, warn)
	if err != nil {
		return Location{}, err
	}
	return applyOuterStrand(loc, outerStrand), nil
}

func applyOuterStrand(loc Location, outer Strand) Location {
	if loc.IsSimple() {
		s := loc.simple
		if s.Strand == Undefined {
			s.Strand = outer
		}
		return NewSimpleLocation(s)
	}
	op, parts := loc.AsCompound()
	for i := range parts {
		if parts[i].Strand == Undefined {
			parts[i].Strand = outer
		}
	}
	if outer == Reverse {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	return NewCompoundLocation(op, parts)
}

// setStrand forces strand onto every part of loc, reversing part order
// when strand is Reverse, matching the teacher's treatment of
// complement(...) wrapping a sub-location.
func setStrand(loc Location, strand Strand) Location {
	if loc.IsSimple() {
		s := loc.simple
		s.Strand = strand
		return NewSimpleLocation(s)
	}
	op, parts := loc.AsCompound()
	for i := range parts {
		parts[i].Strand = strand
	}
	if strand == Reverse {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	return NewCompoundLocation(op, parts)
}

// parseSimple implements SimpleLocation::from_string: a single primitive
// location, possibly wrapped in its own complement(...), possibly
// producing a Compound(Join, ...) via origin-wrap synthesis.
func parseSimple(text string, length int, circular bool, warn func(string)) (Location, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "complement(") && strings.HasSuffix(text, ")") {
		inner := text[len("complement(") : len(text)-1]
		sub, err := parseSimple(inner, length, circular, warn)
		if err != nil {
			return Location{}, err
		}
		return setStrand(sub, Reverse), nil
	}

	if m := fastPairRe.FindStringSubmatch(text); m != nil {
		s, errS := strconv.Atoi(m[1])
		e, errE := strconv.Atoi(m[2])
		if errS == nil && errE == nil && s-1 >= 0 && s-1 < e {
			return NewSimpleLocation(Simple{Start: NewExact(s - 1), End: NewExact(e), Strand: Undefined}), nil
		}
	}

	reference, refDB := "", ""
	if m := referenceRe.FindString(text); m != "" {
		ref := strings.TrimSuffix(m, ":")
		if idx := strings.Index(ref, "|"); idx >= 0 {
			refDB = ref[:idx]
			ref = ref[idx+1:]
		}
		reference = ref
		text = text[len(m):]
	}

	if m := bondWrapRe.FindStringSubmatch(text); m != nil {
		if warn != nil {
			warn("dropping bond qualifier")
		}
		text = m[1]
	}

	if m := betweenRe.FindStringSubmatch(text); m != nil {
		a, errA := strconv.Atoi(m[1])
		b, errB := strconv.Atoi(m[2])
		if errA != nil || errB != nil {
			return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("malformed between-bases location %q", text))
		}
		if b != a+1 && !(a == length && b == 1) {
			return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("between-bases location %q does not describe adjacent bases", text))
		}
		return NewSimpleLocation(Simple{Start: NewExact(a), End: NewExact(a), Strand: Undefined, Reference: reference, RefDB: refDB}), nil
	}

	var start, end Position
	var err error
	if idx := strings.Index(text, ".."); idx >= 0 {
		left, right := text[:idx], text[idx+2:]
		start, err = ParsePosition(left, -1)
		if err != nil {
			return Location{}, err
		}
		end, err = ParsePosition(right, 0)
		if err != nil {
			return Location{}, err
		}
	} else {
		start, err = ParsePosition(text, -1)
		if err != nil {
			return Location{}, err
		}
		end, err = ParsePosition(text, 0)
		if err != nil {
			return Location{}, err
		}
	}

	if start.MonomerPosition() > end.MonomerPosition() {
		if !circular {
			return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("location %q wraps the origin on a non-circular molecule", text)).WithSub(gbkerr.OriginWrapNotCircular)
		}
		if warn != nil {
			warn(fmt.Sprintf("location %q wraps the origin; rewriting as a join", text))
		}
		parts := []Simple{
			{Start: start, End: NewExact(length), Strand: Undefined, Reference: reference, RefDB: refDB},
			{Start: NewExact(0), End: end, Strand: Undefined, Reference: reference, RefDB: refDB},
		}
		return NewCompoundLocation(Join, parts), nil
	}

	if start.MonomerPosition() < 0 {
		return Location{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("location %q resolves to a negative start", text)).WithSub(gbkerr.NegativeStart)
	}

	return NewSimpleLocation(Simple{Start: start, End: end, Strand: Undefined, Reference: reference, RefDB: refDB}), nil
}
