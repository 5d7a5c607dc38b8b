package gtf

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrTranscriptNotFound is returned when a GTF file holds no records for the
// requested transcript.
var ErrTranscriptNotFound = errors.New("transcript not found")

// ParseError reports a GTF line that cannot be read as a 9-column record.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("gtf parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("gtf parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
}

// Reader reads records from a GTF stream, one line at a time.
type Reader struct {
	scanner    *bufio.Scanner
	file       *os.File
	gzipReader *gzip.Reader
	path       string
	lineNumber int
}

// Open opens a GTF file for reading. Files ending in ".gz" are decompressed.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}

	var reader io.Reader = f
	var gz *gzip.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		reader = gz
	}

	r := NewReader(reader, path)
	r.file = f
	r.gzipReader = gz
	return r, nil
}

// NewReader creates a reader over r. path is only used in error messages.
func NewReader(r io.Reader, path string) *Reader {
	scanner := bufio.NewScanner(r)
	// GENCODE attribute columns can be long
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	return &Reader{scanner: scanner, path: path}
}

// Next returns the next record.
// Returns nil, nil when there are no more records.
// Surrounding whitespace is ignored. A line that, once trimmed, does not
// have exactly 9 tab-separated fields, or whose
// coordinates are not integers, yields a *ParseError.
func (r *Reader) Next() (*Record, error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return r.parseLine(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}
	return nil, nil
}

// LineNumber returns the number of the last line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close releases the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return nil, r.errorf("expected 9 tab-delimited fields, found %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, r.errorf("invalid start %q", fields[3])
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, r.errorf("invalid end %q", fields[4])
	}

	return &Record{
		Chrom:      fields[0],
		Source:     fields[1],
		Feature:    fields[2],
		Kind:       parseKind(fields[2]),
		Start:      start,
		End:        end,
		Strand:     parseStrand(fields[6]),
		Attributes: ParseAttributes(fields[8]),
	}, nil
}

func (r *Reader) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Path:    r.path,
		Line:    r.lineNumber,
		Message: fmt.Sprintf(format, args...),
	}
}

// FilterTranscript reads every record from r and keeps those whose
// transcript_id, version stripped, equals transcriptID. File order is kept.
// Reading stops at the first malformed line.
func FilterTranscript(r *Reader, transcriptID string) ([]Record, error) {
	transcriptID = StripVersion(transcriptID)

	var records []Record
	for {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		if rec.TranscriptID() != transcriptID {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// ReadTranscript returns all records of one transcript from the GTF file at
// path. It wraps ErrTranscriptNotFound when nothing matches.
func ReadTranscript(path, transcriptID string) ([]Record, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := FilterTranscript(r, transcriptID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrTranscriptNotFound, StripVersion(transcriptID), path)
	}
	return records, nil
}
