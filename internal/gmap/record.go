// Package gmap provides genome-mapping records and their file parser.
package gmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record describes where a transcript sits on the genome: the chromosome,
// the 0-based genomic offset of the first aligned base (the anchor), and the
// raw CIGAR string describing the alignment. The CIGAR is kept as text and
// parsed lazily by the translation layer.
type Record struct {
	TranscriptID string
	Chrom        string
	Anchor       int64
	Cigar        string
}

// Locus returns the anchor formatted as CHROMOSOME:POSITION.
func (r *Record) Locus() string {
	return fmt.Sprintf("%s:%d", r.Chrom, r.Anchor)
}

// ParseLocus splits a CHROMOSOME:POSITION string (e.g. "CHR1:3") into its
// parts. The position must be a non-negative integer.
func ParseLocus(s string) (chrom string, pos int64, err error) {
	idx := strings.LastIndexByte(s, ':')
	if idx <= 0 || idx == len(s)-1 {
		return "", 0, fmt.Errorf("invalid locus %q: want CHROMOSOME:POSITION", s)
	}
	pos, err = strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil || pos < 0 {
		return "", 0, fmt.Errorf("invalid locus %q: bad position %q", s, s[idx+1:])
	}
	return s[:idx], pos, nil
}

// Table is a read-only lookup from transcript ID to its Record. It is built
// once before query processing begins and never mutated afterwards, so
// concurrent lookups are safe.
type Table struct {
	records map[string]*Record
}

// NewTable builds a Table from records. A transcript maps to at most one
// genomic location; a duplicate transcript ID is an error.
func NewTable(records []*Record) (*Table, error) {
	m := make(map[string]*Record, len(records))
	for _, r := range records {
		if _, ok := m[r.TranscriptID]; ok {
			return nil, fmt.Errorf("duplicate transcript %q in genome mapping", r.TranscriptID)
		}
		m[r.TranscriptID] = r
	}
	return &Table{records: m}, nil
}

// Lookup returns the record for a transcript ID, or nil if unknown.
func (t *Table) Lookup(transcriptID string) *Record {
	return t.records[transcriptID]
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// TranscriptIDs returns a sorted list of transcript IDs in the table.
func (t *Table) TranscriptIDs() []string {
	ids := make([]string, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
