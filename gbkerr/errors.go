/*
Package gbkerr defines the typed error taxonomy surfaced by the insdcscan
and genbank packages.

Every parsing failure that isn't a bare I/O error is one of the Kinds
below. Each error carries the offending line (1-based, 0 when unknown)
and, when known, the byte offset into that line. Errors built with Wrap
also carry the underlying cause via github.com/pkg/errors so callers can
still unwrap to the original error; errors built with New carry none.
*/
package gbkerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the taxonomy of spec-level parsing failures.
type Kind int

const (
	// IoError wraps a stream read failure.
	IoError Kind = iota
	// NotText indicates binary-looking content before the first record.
	NotText
	// UnrecognizedLocus indicates no LOCUS dialect matched.
	UnrecognizedLocus
	// BadHeaderField indicates a malformed date, topology, residue unit, etc.
	BadHeaderField
	// PrematureEnd indicates EOF inside the header, a feature, or the sequence.
	PrematureEnd
	// MalformedSequenceLine indicates missing indentation or a missing
	// column-1 integer in the sequence block.
	MalformedSequenceLine
	// LengthMismatch indicates the declared LOCUS size did not match the
	// actual residue count.
	LengthMismatch
	// LocationParseError indicates a feature or reference location syntax
	// error. See Sub for the specific failure.
	LocationParseError
	// InvalidSymbol indicates the sequence contains a symbol the alphabet
	// rejects.
	InvalidSymbol
	// OrphanContinuation indicates a "/" continuation line with no open
	// qualifier.
	OrphanContinuation
	// Unsupported indicates an operation unsupported for a given alphabet,
	// e.g. complementing a protein sequence.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case NotText:
		return "NotText"
	case UnrecognizedLocus:
		return "UnrecognizedLocus"
	case BadHeaderField:
		return "BadHeaderField"
	case PrematureEnd:
		return "PrematureEnd"
	case MalformedSequenceLine:
		return "MalformedSequenceLine"
	case LengthMismatch:
		return "LengthMismatch"
	case LocationParseError:
		return "LocationParseError"
	case InvalidSymbol:
		return "InvalidSymbol"
	case OrphanContinuation:
		return "OrphanContinuation"
	case Unsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// LocationSub enumerates the LocationParseError sub-kinds.
type LocationSub int

const (
	// NoSub is used for LocationParseError instances with no specific
	// sub-kind (a generic grammar error).
	NoSub LocationSub = iota
	NestedOperators
	DoubleComplement
	OriginWrapNotCircular
	NegativeStart
	BadReferenceBases
	// CompoundListMember indicates a join/order/bond list member itself
	// resolved to a Compound (e.g. an origin wrap on a circular
	// molecule), which would violate the invariant that compound parts
	// are always Simple and operations never nest.
	CompoundListMember
)

func (s LocationSub) String() string {
	switch s {
	case NestedOperators:
		return "NestedOperators"
	case DoubleComplement:
		return "DoubleComplement"
	case OriginWrapNotCircular:
		return "OriginWrapNotCircular"
	case NegativeStart:
		return "NegativeStart"
	case BadReferenceBases:
		return "BadReferenceBases"
	case CompoundListMember:
		return "CompoundListMember"
	default:
		return "NoSub"
	}
}

// Error is the concrete error type returned by this module's parsers.
type Error struct {
	Kind    Kind
	Sub     LocationSub
	Message string
	Line    int // 1-based line number, 0 if unknown
	Offset  int // byte offset within the line, -1 if unknown
	cause   error
}

// New constructs an Error with no wrapped cause.
func New(kind Kind, line int, message string) *Error {
	return &Error{Kind: kind, Message: message, Line: line, Offset: -1}
}

// Wrap constructs an Error that wraps cause with a stack trace via
// github.com/pkg/errors.
func Wrap(kind Kind, line int, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Line: line, Offset: -1, cause: errors.Wrapf(cause, "line %d", line)}
}

// WithSub sets the LocationParseError sub-kind and returns the receiver,
// for fluent construction.
func (e *Error) WithSub(sub LocationSub) *Error {
	e.Sub = sub
	return e
}

// WithOffset sets the byte offset and returns the receiver.
func (e *Error) WithOffset(offset int) *Error {
	e.Offset = offset
	return e
}

func (e *Error) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Offset >= 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Offset)
	}
	if e.Kind == LocationParseError && e.Sub != NoSub {
		if e.cause != nil {
			return fmt.Sprintf("%s/%s at %s: %s: %v", e.Kind, e.Sub, loc, e.Message, e.cause)
		}
		return fmt.Sprintf("%s/%s at %s: %s", e.Kind, e.Sub, loc, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Kind, loc, e.Message, e.cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, loc, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *Error with the same Kind (and, for
// LocationParseError, the same Sub). This lets callers write
// errors.Is(err, gbkerr.New(gbkerr.LengthMismatch, 0, "")) style checks,
// matching how the teacher's own ParseError is compared in tests.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != other.Kind {
		return false
	}
	if e.Kind == LocationParseError && other.Sub != NoSub {
		return e.Sub == other.Sub
	}
	return true
}
