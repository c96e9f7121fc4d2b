package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
)

// ErrNoHeader is returned when a delimited writer is created without columns.
var ErrNoHeader = errors.New("delimited output needs at least one column")

// Delimited writes header-first delimited rows, one flush per row.
type Delimited struct {
	w       *csv.Writer
	closer  io.Closer
	unknown string
	width   int
	rows    int
}

// NewDelimited writes the header to w and returns a row writer.
func NewDelimited(w io.Writer, sep rune, header []string, unknown string) (*Delimited, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	cw := csv.NewWriter(w)
	cw.Comma = sep

	d := &Delimited{w: cw, unknown: unknown, width: len(header)}
	if err := d.writeRecord(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return d, nil
}

// CreateCSV creates (or truncates) path and writes the header row.
func CreateCSV(path string, sep rune, header []string, unknown string) (*Delimited, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	d, err := NewDelimited(f, sep, header, unknown)
	if err != nil {
		f.Close()
		return nil, err
	}
	d.closer = f
	return d, nil
}

// Write renders one row. The row must match the header width.
func (d *Delimited) Write(values []field.Value) error {
	if len(values) != d.width {
		return fmt.Errorf("row has %d columns, header has %d", len(values), d.width)
	}

	record := make([]string, len(values))
	for i, v := range values {
		record[i] = v.Or(d.unknown)
	}
	if err := d.writeRecord(record); err != nil {
		return err
	}
	d.rows++
	return nil
}

// Rows returns the number of data rows written.
func (d *Delimited) Rows() int { return d.rows }

// Close flushes and closes the underlying file, if any. Calling Close
// again only flushes.
func (d *Delimited) Close() error {
	d.w.Flush()
	err := d.w.Error()
	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
		d.closer = nil
	}
	return err
}

func (d *Delimited) writeRecord(record []string) error {
	if err := d.w.Write(record); err != nil {
		return err
	}
	d.w.Flush()
	return d.w.Error()
}

// Line joins values with delim for one-line project records.
func Line(values []field.Value, delim, unknown string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Or(unknown)
	}
	return strings.Join(parts, delim)
}
