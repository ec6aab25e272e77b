package gmap

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads genome-mapping records from a whitespace-separated text file.
//
// Two line layouts are accepted, detected per line by field count:
//
//	TR1  CHR1:3  8M7D6M2I2M11D7M        (3 columns, combined locus)
//	TR1  CHR1  3  8M7D6M2I2M11D7M       (4 columns, split locus)
//
// Blank lines and lines starting with '#' are skipped.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a parser for the given file. Supports plain and gzipped
// input and "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome mapping file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read genome mapping file: %w", err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek genome mapping file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next record. Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read genome mapping line: %w", err)
		}
		atEOF := err == io.EOF
		if line != "" {
			p.lineNumber++
		}

		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return p.parseLine(trimmed)
		}
		if atEOF {
			return nil, nil
		}
	}
}

func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Fields(line)

	switch len(fields) {
	case 3:
		chrom, anchor, err := ParseLocus(fields[1])
		if err != nil {
			return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
		}
		return &Record{
			TranscriptID: fields[0],
			Chrom:        chrom,
			Anchor:       anchor,
			Cigar:        fields[2],
		}, nil
	case 4:
		anchor, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil || anchor < 0 {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("invalid anchor position %q", fields[2]),
			}
		}
		return &Record{
			TranscriptID: fields[0],
			Chrom:        fields[1],
			Anchor:       anchor,
			Cigar:        fields[3],
		}, nil
	default:
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected 3 or 4 columns, found %d", len(fields)),
		}
	}
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// LoadTable reads every record from the file at path and builds the lookup
// table the translation layer works from.
func LoadTable(path string) (*Table, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return ReadTable(p)
}

// ReadTable drains a parser into a Table.
func ReadTable(p *Parser) (*Table, error) {
	var records []*Record
	for {
		r, err := p.Next()
		if err != nil {
			return nil, err
		}
		if r == nil {
			break
		}
		records = append(records, r)
	}
	return NewTable(records)
}

// ParseError represents an error during genome mapping parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genome mapping parse error at line %d: %s", e.Line, e.Message)
}
