package translate

import (
	"github.com/txgenome/remap/internal/cigar"
)

// Resolve maps a 0-based transcript offset to a 0-based genomic offset by
// walking the CIGAR plan from the anchor position.
//
// The walk keeps two cursors, one per coordinate space. Match blocks advance
// both in lockstep; Insertion blocks advance only the transcript cursor;
// Deletion blocks advance only the genomic cursor. Block ranges are half-open,
// so an offset equal to a block's end belongs to the next block.
//
// Failures: an offset inside an Insertion block has no genomic counterpart
// (unmappable_position); an offset the walk never reaches exceeds the
// transcript length (offset_out_of_range). Resolve is a pure function and may
// be called any number of times with the same plan.
func Resolve(plan cigar.Plan, anchor, offset int64) (int64, error) {
	var transcriptCursor int64
	genomicCursor := anchor

	for _, op := range plan {
		switch op.Kind {
		case cigar.Match:
			if offset < transcriptCursor+op.Len {
				return genomicCursor + (offset - transcriptCursor), nil
			}
			transcriptCursor += op.Len
			genomicCursor += op.Len
		case cigar.Insertion:
			if offset < transcriptCursor+op.Len {
				return 0, &Error{Kind: KindUnmappablePosition, Offset: offset}
			}
			transcriptCursor += op.Len
		case cigar.Deletion:
			genomicCursor += op.Len
		}
	}

	return 0, &Error{Kind: KindOffsetOutOfRange, Offset: offset}
}
