// Package query provides transcript-coordinate query parsing.
package query

// Query asks for the genomic position of one transcript coordinate: a
// transcript ID and a 0-based offset along that transcript.
type Query struct {
	TranscriptID string
	Offset       int64
}

// Source yields queries one at a time. Next returns nil, nil when the source
// is exhausted. The streaming file parser implements this; tests use slices.
type Source interface {
	Next() (*Query, error)
	Close() error
}

// SliceSource adapts an in-memory query slice to the Source interface.
type SliceSource struct {
	queries []*Query
	pos     int
}

// NewSliceSource creates a Source backed by a slice.
func NewSliceSource(queries []*Query) *SliceSource {
	return &SliceSource{queries: queries}
}

// Next returns the next query, or nil, nil when exhausted.
func (s *SliceSource) Next() (*Query, error) {
	if s.pos >= len(s.queries) {
		return nil, nil
	}
	q := s.queries[s.pos]
	s.pos++
	return q, nil
}

// Close is a no-op for slice-backed sources.
func (s *SliceSource) Close() error { return nil }
