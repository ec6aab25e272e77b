// Package output provides translation result formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/txgenome/remap/internal/translate"
)

// TabWriter writes translation results in tab-delimited format, one row per
// query in input order. Failed queries are written as explicit failure rows
// with "-" placeholders and the failure kind in the Status column.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Transcript",
			"Offset",
			"Chrom",
			"GenomicPos",
			"Status",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result.
func (tw *TabWriter) Write(r *translate.Result) error {
	chrom := "-"
	pos := "-"
	if r.Err == nil {
		chrom = r.Chrom
		pos = fmt.Sprintf("%d", r.GenomicPos)
	}

	values := []string{
		r.TranscriptID,
		fmt.Sprintf("%d", r.Offset),
		chrom,
		pos,
		r.Kind().String(),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
