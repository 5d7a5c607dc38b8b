package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/txplot/internal/transcript"
)

// Plot describes one written plot file.
type Plot struct {
	TranscriptID string
	GeneName     string
	View         transcript.View
	Features     int
	SpanBp       int64
	Mode         transcript.Mode
	Path         string
}

// TabWriter writes a tab-delimited summary of written plots.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#transcript_id",
			"gene_name",
			"feature_type",
			"features",
			"size_kbp",
			"scale",
			"path",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single plot row.
func (tw *TabWriter) Write(p Plot) error {
	gene := p.GeneName
	if gene == "" {
		gene = "-"
	}
	path := p.Path
	if path == "" {
		path = "-"
	}

	values := []string{
		p.TranscriptID,
		gene,
		p.View.Noun(),
		strconv.Itoa(p.Features),
		transcript.FormatKbp(p.SpanBp),
		p.Mode.String(),
		path,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
