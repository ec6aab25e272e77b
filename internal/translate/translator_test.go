package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txgenome/remap/internal/cigar"
	"github.com/txgenome/remap/internal/gmap"
	"github.com/txgenome/remap/internal/query"
)

func testTable(t *testing.T) *gmap.Table {
	t.Helper()
	table, err := gmap.NewTable([]*gmap.Record{
		{TranscriptID: "TR1", Chrom: "CHR1", Anchor: 3, Cigar: "8M7D6M2I2M11D7M"},
		{TranscriptID: "TR2", Chrom: "CHR2", Anchor: 10, Cigar: "20M"},
		{TranscriptID: "BROKEN", Chrom: "CHR3", Anchor: 0, Cigar: "5X"},
	})
	require.NoError(t, err)
	return table
}

func TestTranslate_Success(t *testing.T) {
	tr := NewTranslator(testTable(t))

	tests := []struct {
		name         string
		transcriptID string
		offset       int64
		wantChrom    string
		wantPos      int64
	}{
		{"TR1 offset 4", "TR1", 4, "CHR1", 7},
		{"TR1 offset 13", "TR1", 13, "CHR1", 23},
		{"TR1 spans deletion", "TR1", 10, "CHR1", 20},
		{"TR2 offset 0", "TR2", 0, "CHR2", 10},
		{"TR2 offset 10", "TR2", 10, "CHR2", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tr.Translate(&query.Query{TranscriptID: tt.transcriptID, Offset: tt.offset})
			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantChrom, res.Chrom)
			assert.Equal(t, tt.wantPos, res.GenomicPos)
			assert.Equal(t, KindNone, res.Kind())
		})
	}
}

func TestTranslate_Failures(t *testing.T) {
	tr := NewTranslator(testTable(t))

	tests := []struct {
		name         string
		transcriptID string
		offset       int64
		wantKind     Kind
	}{
		{"unknown transcript", "TR9", 5, KindUnknownTranscript},
		{"inserted base", "TR1", 14, KindUnmappablePosition},
		{"past transcript end", "TR1", 25, KindOffsetOutOfRange},
		{"malformed cigar", "BROKEN", 0, KindMalformedCigar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tr.Translate(&query.Query{TranscriptID: tt.transcriptID, Offset: tt.offset})
			require.Error(t, res.Err)
			assert.Equal(t, tt.wantKind, res.Kind())

			var te *Error
			require.ErrorAs(t, res.Err, &te)
			assert.Equal(t, tt.transcriptID, te.TranscriptID)
			assert.Equal(t, tt.offset, te.Offset)
		})
	}
}

func TestTranslate_MalformedCigarFailsEveryQuery(t *testing.T) {
	tr := NewTranslator(testTable(t))

	// The record is unusable; the cached parse failure applies to all offsets.
	for _, offset := range []int64{0, 1, 100} {
		res := tr.Translate(&query.Query{TranscriptID: "BROKEN", Offset: offset})
		assert.Equal(t, KindMalformedCigar, res.Kind())

		var syntaxErr *cigar.SyntaxError
		assert.ErrorAs(t, res.Err, &syntaxErr)
	}
}

func TestTranslate_PlanParsedOnce(t *testing.T) {
	table := testTable(t)
	tr := NewTranslator(table)

	res := tr.Translate(&query.Query{TranscriptID: "TR1", Offset: 0})
	require.NoError(t, res.Err)

	// Corrupt the raw CIGAR after first use; the cached plan must still win.
	table.Lookup("TR1").Cigar = "5X"
	res = tr.Translate(&query.Query{TranscriptID: "TR1", Offset: 1})
	require.NoError(t, res.Err)
	assert.Equal(t, int64(4), res.GenomicPos)
}

// collectWriter records results in order; used instead of a file-backed writer.
type collectWriter struct {
	results []*Result
}

func (w *collectWriter) WriteHeader() error { return nil }
func (w *collectWriter) Flush() error       { return nil }

func (w *collectWriter) Write(r *Result) error {
	w.results = append(w.results, r)
	return nil
}

func TestTranslateAll_FailureIsolation(t *testing.T) {
	tr := NewTranslator(testTable(t))

	src := query.NewSliceSource([]*query.Query{
		{TranscriptID: "TR1", Offset: 4},
		{TranscriptID: "TR9", Offset: 5},  // unknown transcript
		{TranscriptID: "TR1", Offset: 14}, // inserted base
		{TranscriptID: "TR2", Offset: 3},
		{TranscriptID: "BROKEN", Offset: 0}, // malformed cigar
		{TranscriptID: "TR1", Offset: 25},   // out of range
		{TranscriptID: "TR2", Offset: 0},
	})

	w := &collectWriter{}
	err := tr.TranslateAll(src, w, 4)
	require.NoError(t, err)

	// One result per query, in input order, failures included.
	require.Len(t, w.results, 7)

	wantKinds := []Kind{
		KindNone,
		KindUnknownTranscript,
		KindUnmappablePosition,
		KindNone,
		KindMalformedCigar,
		KindOffsetOutOfRange,
		KindNone,
	}
	for i, want := range wantKinds {
		assert.Equal(t, want, w.results[i].Kind(), "result %d", i)
	}

	assert.Equal(t, int64(7), w.results[0].GenomicPos)
	assert.Equal(t, int64(13), w.results[3].GenomicPos)
	assert.Equal(t, int64(10), w.results[6].GenomicPos)
}

func TestTranslateAll_EmptySource(t *testing.T) {
	tr := NewTranslator(testTable(t))

	w := &collectWriter{}
	err := tr.TranslateAll(query.NewSliceSource(nil), w, 1)
	require.NoError(t, err)
	assert.Empty(t, w.results)
}
