package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/txgenome/remap/internal/duckdb"
	"github.com/txgenome/remap/internal/gmap"
	"github.com/txgenome/remap/internal/output"
	"github.com/txgenome/remap/internal/query"
	"github.com/txgenome/remap/internal/translate"
)

func newTranslateCmd() *cobra.Command {
	var (
		mappingPath string
		queryPath   string
		outputPath  string
		duckdbPath  string
		workers     int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate transcript coordinates to genomic coordinates",
		Long: `Translate reads a genome-mapping file (transcript ID, anchor locus, CIGAR)
and a query file (transcript ID, 0-based transcript offset) and writes one
result row per query, in input order. Queries that cannot be translated
become failure rows; they never abort the run.`,
		Example: `  remap translate -m mapping.tsv -q queries.tsv
  remap translate -m mapping.tsv -q queries.tsv -o results.tsv
  remap translate -m mapping.tsv -q - --duckdb results.db < queries.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers == 0 {
				workers = viper.GetInt("workers")
			}
			return runTranslate(mappingPath, queryPath, outputPath, duckdbPath, workers, verbose)
		},
	}

	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "genome mapping file (use '-' for stdin)")
	cmd.Flags().StringVarP(&queryPath, "queries", "q", "", "transcript query file (use '-' for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "also store results in a DuckDB database at this path")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = number of CPUs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-query failures and a summary to stderr")
	cmd.MarkFlagRequired("mapping")
	cmd.MarkFlagRequired("queries")

	return cmd
}

func runTranslate(mappingPath, queryPath, outputPath, duckdbPath string, workers int, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	table, err := gmap.LoadTable(mappingPath)
	if err != nil {
		return fmt.Errorf("load genome mapping: %w", err)
	}
	logger.Info("loaded genome mapping", zap.Int("transcripts", table.Len()))

	src, err := query.NewParser(queryPath)
	if err != nil {
		return err
	}
	defer src.Close()

	var out *os.File
	if outputPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	var writer translate.ResultWriter = output.NewTabWriter(out)

	if duckdbPath != "" {
		store, err := duckdb.Open(duckdbPath)
		if err != nil {
			return fmt.Errorf("open duckdb: %w", err)
		}
		defer store.Close()
		writer = newTeeWriter(writer, duckdb.NewWriter(store))
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	tr := translate.NewTranslator(table)
	tr.SetLogger(logger)

	return tr.TranslateAll(src, writer, workers)
}

// newLogger builds a console logger on stderr. Warnings (per-query failures)
// are always shown; --verbose adds info-level progress.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

// teeWriter fans results out to multiple sinks (e.g. tab output plus DuckDB).
type teeWriter struct {
	writers []translate.ResultWriter
}

func newTeeWriter(writers ...translate.ResultWriter) *teeWriter {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) WriteHeader() error {
	for _, w := range t.writers {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

func (t *teeWriter) Write(r *translate.Result) error {
	for _, w := range t.writers {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

func (t *teeWriter) Flush() error {
	for _, w := range t.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
