package aggregate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
)

// ErrNoHeader is returned for delimited input without a header row.
var ErrNoHeader = errors.New("missing header row")

// Row is one record of a headered delimited file. Fields are addressed by
// header name.
type Row struct {
	columns map[string]int
	fields  []string
	Line    int
}

// Get returns the named field. Missing columns and empty cells are unknown.
func (r Row) Get(name string) field.Value {
	i, ok := r.columns[name]
	if !ok || i >= len(r.fields) {
		return field.Unknown
	}
	return field.Known(r.fields[i])
}

// Reader streams rows from headered delimited input. Malformed rows are
// logged and skipped.
type Reader struct {
	csv     *csv.Reader
	header  []string
	columns map[string]int
	log     logger.Logger
	skipped int
	err     error
}

// NewReader reads the header row of r.
func NewReader(r io.Reader, sep rune, log logger.Logger) (*Reader, error) {
	if log == nil {
		log = logger.NewSilentLogger()
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	// Short and long rows are kept; absent cells read as unknown.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}

	return &Reader{csv: cr, header: header, columns: columns, log: log}, nil
}

// Header returns the header names in file order.
func (r *Reader) Header() []string { return r.header }

// Has reports whether the header names column.
func (r *Reader) Has(column string) bool {
	_, ok := r.columns[column]
	return ok
}

// Skipped returns how many malformed rows were dropped so far.
func (r *Reader) Skipped() int { return r.skipped }

// Err returns the I/O error that ended the row sequence, if any.
func (r *Reader) Err() error { return r.err }

// Rows yields the remaining rows. It stops at end of input or on an I/O
// error, which is then available from Err.
func (r *Reader) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for {
			record, err := r.csv.Read()
			if err == io.EOF {
				return
			}

			if err != nil {
				var perr *csv.ParseError
				if !errors.As(err, &perr) {
					r.err = fmt.Errorf("reading rows: %w", err)
					return
				}
				r.skipped++
				r.log.Warn("Skipping malformed row",
					logger.F("line", perr.Line),
					logger.F("error", perr.Err))
				continue
			}

			line, _ := r.csv.FieldPos(0)
			if !yield(Row{columns: r.columns, fields: record, Line: line}) {
				return
			}
		}
	}
}
