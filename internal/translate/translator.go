// Package translate converts transcript coordinates to genomic coordinates
// using per-transcript CIGAR alignments.
package translate

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/txgenome/remap/internal/cigar"
	"github.com/txgenome/remap/internal/gmap"
	"github.com/txgenome/remap/internal/query"
)

// Result is the outcome of one query: the chromosome and genomic offset on
// success, or a typed failure. Exactly one of GenomicPos/Err is meaningful.
type Result struct {
	TranscriptID string
	Offset       int64
	Chrom        string
	GenomicPos   int64
	Err          error
}

// Kind returns the failure classification for the result ("ok" on success).
func (r *Result) Kind() Kind {
	return KindOf(r.Err)
}

// MappingLookup defines the interface for finding a transcript's genome
// mapping record.
type MappingLookup interface {
	Lookup(transcriptID string) *gmap.Record
}

// planEntry caches the outcome of parsing one transcript's CIGAR string.
// A parse failure is cached too: the record is unusable and every query
// against it fails the same way.
type planEntry struct {
	plan cigar.Plan
	err  error
}

// Translator resolves queries against a read-only genome mapping table.
// Each transcript's CIGAR is parsed once and cached; the parse is pure, so a
// duplicate parse under concurrent first use is harmless.
type Translator struct {
	table  MappingLookup
	plans  sync.Map // transcriptID -> *planEntry
	logger *zap.Logger
}

// NewTranslator creates a translator over the given mapping table.
func NewTranslator(table MappingLookup) *Translator {
	return &Translator{
		table:  table,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-query failure warnings.
func (t *Translator) SetLogger(l *zap.Logger) {
	t.logger = l
}

// Translate resolves a single query. Failures are returned inside the Result,
// never as a bare error: one query's failure must not disturb the others.
func (t *Translator) Translate(q *query.Query) *Result {
	res := &Result{TranscriptID: q.TranscriptID, Offset: q.Offset}

	rec := t.table.Lookup(q.TranscriptID)
	if rec == nil {
		res.Err = &Error{Kind: KindUnknownTranscript, TranscriptID: q.TranscriptID, Offset: q.Offset}
		return res
	}

	plan, err := t.plan(rec)
	if err != nil {
		res.Err = &Error{Kind: KindMalformedCigar, TranscriptID: q.TranscriptID, Offset: q.Offset, cause: err}
		return res
	}

	pos, err := Resolve(plan, rec.Anchor, q.Offset)
	if err != nil {
		if te, ok := err.(*Error); ok {
			te.TranscriptID = q.TranscriptID
		}
		res.Err = err
		return res
	}

	res.Chrom = rec.Chrom
	res.GenomicPos = pos
	return res
}

// plan returns the cached CigarPlan for a record, parsing on first use.
func (t *Translator) plan(rec *gmap.Record) (cigar.Plan, error) {
	if v, ok := t.plans.Load(rec.TranscriptID); ok {
		e := v.(*planEntry)
		return e.plan, e.err
	}

	plan, err := cigar.Parse(rec.Cigar)
	e := &planEntry{plan: plan, err: err}
	if prev, loaded := t.plans.LoadOrStore(rec.TranscriptID, e); loaded {
		e = prev.(*planEntry)
	}
	return e.plan, e.err
}

// TranslateAll drains a query source through a worker pool and writes one
// result per query, in input order. Per-query failures become failure rows
// and are logged; only I/O-level problems (source or writer) abort the run.
// If workers is 0, runtime.NumCPU() is used.
func (t *Translator) TranslateAll(src query.Source, w ResultWriter, workers int) error {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error
	queryCount := 0

	go func() {
		defer close(items)
		seq := 0
		for {
			q, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read query: %w", err)
				return
			}
			if q == nil {
				return
			}
			queryCount++
			items <- WorkItem{Seq: seq, Query: q}
			seq++
		}
	}()

	results := t.ParallelTranslate(items, workers)

	failures := 0
	if err := OrderedCollect(results, func(r WorkResult) error {
		if r.Result.Err != nil {
			failures++
			t.logger.Warn("query failed",
				zap.String("transcript", r.Result.TranscriptID),
				zap.Int64("offset", r.Result.Offset),
				zap.String("status", r.Result.Kind().String()),
				zap.Error(r.Result.Err))
		}
		if err := w.Write(r.Result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if readErr != nil {
		return readErr
	}

	t.logger.Info("translation complete",
		zap.Int("queries", queryCount),
		zap.Int("failures", failures))

	return w.Flush()
}

// ResultWriter defines the interface for writing translation results.
type ResultWriter interface {
	WriteHeader() error
	Write(r *Result) error
	Flush() error
}
