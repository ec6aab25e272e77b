// Package cigar provides parsing of CIGAR alignment strings.
package cigar

import (
	"fmt"
	"strings"
)

// OpKind identifies a CIGAR operation.
type OpKind byte

const (
	// Match consumes both transcript and genomic bases.
	Match OpKind = iota
	// Insertion consumes transcript bases only.
	Insertion
	// Deletion consumes genomic bases only.
	Deletion
)

var opCodes = []string{"M", "I", "D"}

// String returns the single-letter CIGAR code for the operation kind.
func (k OpKind) String() string {
	if int(k) >= len(opCodes) {
		return "?"
	}
	return opCodes[k]
}

// ConsumesTranscript reports whether the operation advances the transcript cursor.
func (k OpKind) ConsumesTranscript() bool {
	return k == Match || k == Insertion
}

// ConsumesGenome reports whether the operation advances the genomic cursor.
func (k OpKind) ConsumesGenome() bool {
	return k == Match || k == Deletion
}

// Op is a single CIGAR operation with its base count.
type Op struct {
	Kind OpKind
	Len  int64
}

// String returns the operation in CIGAR notation (e.g. "8M").
func (o Op) String() string {
	return fmt.Sprintf("%d%s", o.Len, o.Kind)
}

// Plan is an ordered sequence of CIGAR operations. Order matches the 5'->3'
// genomic orientation of the alignment. A Plan is never modified after Parse.
type Plan []Op

// Parse converts a CIGAR string into a Plan. The input is a concatenation of
// <length><opcode> tokens with no separators, length a positive decimal
// integer, opcode one of M, I, D (uppercase). Any other input is a
// *SyntaxError.
func Parse(s string) (Plan, error) {
	if s == "" {
		return nil, &SyntaxError{Cigar: s, Message: "empty CIGAR string"}
	}

	var plan Plan
	var n int64
	haveLen := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			n = n*10 + int64(c-'0')
			haveLen = true
			continue
		}

		if !haveLen {
			return nil, &SyntaxError{Cigar: s, Pos: i, Message: fmt.Sprintf("operation %q has no length", c)}
		}
		if n == 0 {
			return nil, &SyntaxError{Cigar: s, Pos: i, Message: fmt.Sprintf("operation %q has zero length", c)}
		}

		var kind OpKind
		switch c {
		case 'M':
			kind = Match
		case 'I':
			kind = Insertion
		case 'D':
			kind = Deletion
		default:
			return nil, &SyntaxError{Cigar: s, Pos: i, Message: fmt.Sprintf("unsupported operation %q", c)}
		}

		plan = append(plan, Op{Kind: kind, Len: n})
		n = 0
		haveLen = false
	}

	if haveLen {
		return nil, &SyntaxError{Cigar: s, Pos: len(s), Message: "trailing length with no operation"}
	}

	return plan, nil
}

// TranscriptLen returns the number of transcript bases the plan covers
// (sum of Match and Insertion lengths).
func (p Plan) TranscriptLen() int64 {
	var total int64
	for _, op := range p {
		if op.Kind.ConsumesTranscript() {
			total += op.Len
		}
	}
	return total
}

// GenomicSpan returns the number of genomic bases the plan covers
// (sum of Match and Deletion lengths).
func (p Plan) GenomicSpan() int64 {
	var total int64
	for _, op := range p {
		if op.Kind.ConsumesGenome() {
			total += op.Len
		}
	}
	return total
}

// String returns the plan in CIGAR notation.
func (p Plan) String() string {
	var sb strings.Builder
	for _, op := range p {
		sb.WriteString(op.String())
	}
	return sb.String()
}

// SyntaxError describes a malformed CIGAR string.
type SyntaxError struct {
	Cigar   string
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed CIGAR %q at offset %d: %s", e.Cigar, e.Pos, e.Message)
}
