package translate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ok", KindNone.String())
	assert.Equal(t, "malformed_cigar", KindMalformedCigar.String())
	assert.Equal(t, "unknown_transcript", KindUnknownTranscript.String())
	assert.Equal(t, "unmappable_position", KindUnmappablePosition.String())
	assert.Equal(t, "offset_out_of_range", KindOffsetOutOfRange.String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNone, KindOf(errors.New("plain")))

	err := &Error{Kind: KindUnknownTranscript, TranscriptID: "TR1", Offset: 4}
	assert.Equal(t, KindUnknownTranscript, KindOf(err))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("processing: %w", err)
	assert.Equal(t, KindUnknownTranscript, KindOf(wrapped))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindUnmappablePosition, TranscriptID: "TR1", Offset: 14}
	assert.Contains(t, err.Error(), "unmappable_position")
	assert.Contains(t, err.Error(), "TR1")
	assert.Contains(t, err.Error(), "14")
}
