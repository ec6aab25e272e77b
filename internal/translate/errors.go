package translate

import (
	"errors"
	"fmt"
)

// Kind classifies why a query could not be translated. The string form is
// written verbatim to the output status column.
type Kind int

const (
	// KindNone marks a successful translation.
	KindNone Kind = iota
	// KindMalformedCigar means the transcript's CIGAR string did not parse.
	// Every query against that transcript fails with this kind.
	KindMalformedCigar
	// KindUnknownTranscript means the query names a transcript absent from
	// the genome mapping.
	KindUnknownTranscript
	// KindUnmappablePosition means the offset lands on an inserted base with
	// no genomic counterpart.
	KindUnmappablePosition
	// KindOffsetOutOfRange means the offset exceeds the transcript length
	// implied by the CIGAR.
	KindOffsetOutOfRange
)

var kindNames = []string{
	KindNone:               "ok",
	KindMalformedCigar:     "malformed_cigar",
	KindUnknownTranscript:  "unknown_transcript",
	KindUnmappablePosition: "unmappable_position",
	KindOffsetOutOfRange:   "offset_out_of_range",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Error is a per-query translation failure. It carries the failure kind and
// the offending transcript/offset so failures can be reported without losing
// which query they belong to.
type Error struct {
	Kind         Kind
	TranscriptID string
	Offset       int64
	cause        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: transcript %q offset %d", e.Kind, e.TranscriptID, e.Offset)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any (e.g. the *cigar.SyntaxError
// behind a malformed_cigar failure).
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the failure kind from an error. Returns KindNone for nil
// and for errors that are not translation failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindNone
}
