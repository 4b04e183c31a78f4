/*
Package lineio provides a one-line-lookahead scanner over an io.Reader,
the pull-based primitive the insdcscan state machine is built on.

The teacher's own genbank.Parser drives a bufio.Scanner directly inside
a single large Next() method, consulting parser.parameters.currentLine
and .prevline to look one line behind. LineScanner makes that lookahead
explicit and bidirectional (peek before consuming) so insdcscan's state
machine can decide how to handle a line before committing to it.
*/
package lineio

import (
	"bufio"
	"io"
)

// LineScanner wraps a bufio.Scanner with one line of lookahead and a
// running 1-based line counter.
type LineScanner struct {
	scanner *bufio.Scanner
	line    int
	next    string
	hasNext bool
	err     error
	done    bool
}

// New returns a LineScanner over r. maxLineSize bounds the longest line
// the underlying bufio.Scanner will accept, matching the teacher's own
// NewParser(r, maxLineSize) signature.
func New(r io.Reader, maxLineSize int) *LineScanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)
	ls := &LineScanner{scanner: scanner}
	ls.advance()
	return ls
}

func (ls *LineScanner) advance() {
	if ls.done {
		ls.hasNext = false
		return
	}
	if ls.scanner.Scan() {
		ls.next = ls.scanner.Text()
		ls.hasNext = true
		return
	}
	ls.err = ls.scanner.Err()
	ls.done = true
	ls.hasNext = false
}

// Peek returns the next line without consuming it, and whether one is
// available.
func (ls *LineScanner) Peek() (string, bool) {
	return ls.next, ls.hasNext
}

// Consume returns the next line, advances past it, and increments the
// line counter. It panics if called when AtEOF() is true; callers are
// expected to check Peek or AtEOF first.
func (ls *LineScanner) Consume() string {
	if !ls.hasNext {
		panic("lineio: Consume called past end of input")
	}
	line := ls.next
	ls.line++
	ls.advance()
	return line
}

// AtEOF reports whether the scanner has been exhausted.
func (ls *LineScanner) AtEOF() bool {
	return !ls.hasNext
}

// Line returns the 1-based number of the line last returned by Consume,
// or 0 if none has been consumed yet.
func (ls *LineScanner) Line() int {
	return ls.line
}

// Err returns the first non-EOF error encountered by the underlying
// bufio.Scanner, if any.
func (ls *LineScanner) Err() error {
	return ls.err
}
