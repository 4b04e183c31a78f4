/*
Package location implements the feature-location expression grammar of
GenBank-family flat files: fuzzy positions (<N, >N, ?N, (a.b), one-of(...))
and simple/compound locations built from join/order/bond operators,
complement wrapping, and origin-wrap rewriting on circular molecules.

This is "the core" the teacher's own bio/genbank.go reduces to a single
recursive parseLocation function; here the grammar is split into its own
package the way the teacher's design notes ask for (regex tables moved out
of a Location/SimpleLocation class hierarchy into a free module, since Go
has no classes to begin with).
*/
package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nucleobase/insdc/gbkerr"
)

// PositionKind enumerates the tagged variants of Position.
type PositionKind int

const (
	Exact PositionKind = iota
	Before
	After
	Within
	OneOf
	Uncertain
	Unknown
)

func (k PositionKind) String() string {
	switch k {
	case Exact:
		return "Exact"
	case Before:
		return "Before"
	case After:
		return "After"
	case Within:
		return "Within"
	case OneOf:
		return "OneOf"
	case Uncertain:
		return "Uncertain"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Position is a fuzzy or exact single coordinate in a feature location.
// The zero value is not meaningful; construct with the package-level
// helpers or ParsePosition.
type Position struct {
	Kind    PositionKind
	value   int
	low     int
	high    int
	choices []int
}

// NewExact returns an Exact position at n.
func NewExact(n int) Position { return Position{Kind: Exact, value: n} }

// NewBefore returns a Before ("<n") position.
func NewBefore(n int) Position { return Position{Kind: Before, value: n} }

// NewAfter returns an After (">n") position.
func NewAfter(n int) Position { return Position{Kind: After, value: n} }

// NewUncertain returns an Uncertain ("?n") position.
func NewUncertain(n int) Position { return Position{Kind: Uncertain, value: n} }

// NewUnknown returns the Unknown ("?") position.
func NewUnknown() Position { return Position{Kind: Unknown} }

// NewWithin returns a Within ("(low.high)") position with the given
// default (the monomer position used for ordering/arithmetic).
func NewWithin(def, low, high int) Position {
	return Position{Kind: Within, value: def, low: low, high: high}
}

// NewOneOf returns a OneOf ("one-of(...)") position with the given
// default and choice list.
func NewOneOf(def int, choices []int) Position {
	cp := make([]int, len(choices))
	copy(cp, choices)
	return Position{Kind: OneOf, value: def, choices: cp}
}

// MonomerPosition returns the single integer used for ordering and
// arithmetic: "value" for Exact/Before/After/Uncertain, the configured
// default for Within/OneOf, and 0 for Unknown.
func (p Position) MonomerPosition() int {
	switch p.Kind {
	case Within, OneOf:
		return p.value
	case Unknown:
		return 0
	default:
		return p.value
	}
}

// Bounds returns (low, high) for Within, or (choices[0], choices[n-1])
// sorted for OneOf; for all other kinds it returns (n, n).
func (p Position) Bounds() (int, int) {
	switch p.Kind {
	case Within:
		return p.low, p.high
	case OneOf:
		lo, hi := p.choices[0], p.choices[0]
		for _, c := range p.choices {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		return lo, hi
	default:
		return p.value, p.value
	}
}

// Choices returns the candidate list for a OneOf position, or nil.
func (p Position) Choices() []int {
	if p.Kind != OneOf {
		return nil
	}
	out := make([]int, len(p.choices))
	copy(out, p.choices)
	return out
}

func (p Position) String() string {
	switch p.Kind {
	case Exact:
		return strconv.Itoa(p.value)
	case Before:
		return "<" + strconv.Itoa(p.value)
	case After:
		return ">" + strconv.Itoa(p.value)
	case Uncertain:
		return "?" + strconv.Itoa(p.value)
	case Unknown:
		return "?"
	case Within:
		return fmt.Sprintf("(%d.%d)", p.low, p.high)
	case OneOf:
		parts := make([]string, len(p.choices))
		for i, c := range p.choices {
			parts[i] = strconv.Itoa(c)
		}
		return "one-of(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

var (
	uncertainRe = regexp.MustCompile(`^\?(\d+)$`)
	beforeRe    = regexp.MustCompile(`^<(\d+)$`)
	afterRe     = regexp.MustCompile(`^>(\d+)$`)
	withinRe    = regexp.MustCompile(`^\((\d+)\.(\d+)\)$`)
	oneOfRe     = regexp.MustCompile(`^one-of\(([0-9,]+)\)$`)
	exactRe     = regexp.MustCompile(`^\d+$`)
)

// ParsePosition parses a single position expression. offset must be 0
// (for an end position) or -1 (for a start position); it converts the
// 1-based inclusive GenBank coordinate to a 0-based half-open one.
func ParsePosition(text string, offset int) (Position, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "?":
		return NewUnknown(), nil
	case uncertainRe.MatchString(text):
		n, err := strconv.Atoi(uncertainRe.FindStringSubmatch(text)[1])
		if err != nil {
			return Position{}, err
		}
		return NewUncertain(n + offset), nil
	case beforeRe.MatchString(text):
		n, err := strconv.Atoi(beforeRe.FindStringSubmatch(text)[1])
		if err != nil {
			return Position{}, err
		}
		return NewBefore(n + offset), nil
	case afterRe.MatchString(text):
		n, err := strconv.Atoi(afterRe.FindStringSubmatch(text)[1])
		if err != nil {
			return Position{}, err
		}
		return NewAfter(n + offset), nil
	case withinRe.MatchString(text):
		m := withinRe.FindStringSubmatch(text)
		a, err := strconv.Atoi(m[1])
		if err != nil {
			return Position{}, err
		}
		b, err := strconv.Atoi(m[2])
		if err != nil {
			return Position{}, err
		}
		var def int
		if offset == -1 {
			def = a + offset
		} else {
			def = b + offset
		}
		return NewWithin(def, a+offset, b+offset), nil
	case oneOfRe.MatchString(text):
		m := oneOfRe.FindStringSubmatch(text)
		rawParts := strings.Split(m[1], ",")
		parts := make([]int, 0, len(rawParts))
		for _, rp := range rawParts {
			n, err := strconv.Atoi(rp)
			if err != nil {
				return Position{}, err
			}
			parts = append(parts, n+offset)
		}
		var def int
		if offset == -1 {
			def = parts[0]
			for _, p := range parts {
				if p < def {
					def = p
				}
			}
		} else {
			def = parts[0]
			for _, p := range parts {
				if p > def {
					def = p
				}
			}
		}
		return NewOneOf(def, parts), nil
	case exactRe.MatchString(text):
		n, err := strconv.Atoi(text)
		if err != nil {
			return Position{}, err
		}
		return NewExact(n + offset), nil
	default:
		return Position{}, gbkerr.New(gbkerr.LocationParseError, 0, fmt.Sprintf("unrecognized position expression %q", text))
	}
}
