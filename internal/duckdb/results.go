package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/txgenome/remap/internal/translate"
)

// WriteResults batch-inserts translation results using the Appender API.
// Failed queries are stored too, with a NULL chromosome and position, so the
// database holds one row per query like the tab output does.
func (s *Store) WriteResults(results []*translate.Result) error {
	if len(results) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "translation_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range results {
		var chrom any
		var pos any
		if r.Err == nil {
			chrom = r.Chrom
			pos = r.GenomicPos
		}
		if err := appender.AppendRow(
			r.TranscriptID, r.Offset, chrom, pos, r.Kind().String(),
		); err != nil {
			return fmt.Errorf("append translation result: %w", err)
		}
	}

	return appender.Flush()
}

// ClearResults removes all stored translation results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM translation_results")
	return err
}

// LookupResults queries previously stored results for a transcript.
func (s *Store) LookupResults(transcriptID string) ([]*translate.Result, error) {
	rows, err := s.db.Query(`SELECT
		transcript_id, transcript_offset, chrom, genomic_pos, status
		FROM translation_results
		WHERE transcript_id=?
		ORDER BY transcript_offset`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []*translate.Result
	for rows.Next() {
		var r translate.Result
		var chrom *string
		var pos *int64
		var status string
		if err := rows.Scan(&r.TranscriptID, &r.Offset, &chrom, &pos, &status); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if chrom != nil {
			r.Chrom = *chrom
		}
		if pos != nil {
			r.GenomicPos = *pos
		}
		if status != "ok" {
			r.Err = fmt.Errorf("stored failure: %s", status)
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// Writer adapts a Store to the translate.ResultWriter interface. Rows are
// buffered and appended in one batch on Flush.
type Writer struct {
	store   *Store
	results []*translate.Result
}

// NewWriter creates a ResultWriter that persists into the store.
func NewWriter(store *Store) *Writer {
	return &Writer{store: store}
}

// WriteHeader is a no-op; the schema is the header.
func (w *Writer) WriteHeader() error { return nil }

// Write buffers a single result.
func (w *Writer) Write(r *translate.Result) error {
	w.results = append(w.results, r)
	return nil
}

// Flush appends all buffered results to the database.
func (w *Writer) Flush() error {
	return w.store.WriteResults(w.results)
}
