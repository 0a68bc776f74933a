// Package dataset loads numeric points from delimited text.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yyyoichi/colorcluster/internal/kmeans"
)

var ErrNoRows = errors.New("dataset: no data rows")

// ParseError reports a value that could not be read as a number.
// Row and Column are 1-based positions in the input.
type ParseError struct {
	Row, Column int
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: row %d, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type options struct {
	comma   rune
	header  bool
	columns []int
}

type Option func(*options) error

// WithComma sets the field delimiter. The default is ','.
func WithComma(r rune) Option {
	return func(o *options) error {
		if r == '\n' || r == '\r' || r == '"' {
			return fmt.Errorf("dataset: invalid delimiter %q", r)
		}
		o.comma = r
		return nil
	}
}

// WithHeader skips the first record.
func WithHeader() Option {
	return func(o *options) error {
		o.header = true
		return nil
	}
}

// WithColumns selects the 0-based columns that form a point, in order.
// By default every column is used.
func WithColumns(cols ...int) Option {
	return func(o *options) error {
		for _, c := range cols {
			if c < 0 {
				return fmt.Errorf("dataset: invalid column %d", c)
			}
		}
		o.columns = cols
		return nil
	}
}

// ReadCSV reads one point per record. Blank lines and lines starting with
// '#' are skipped. Every record must yield the same number of channels.
func ReadCSV(r io.Reader, opts ...Option) ([]kmeans.Point, error) {
	o := options{comma: ','}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var points []kmeans.Point
	for first := true; ; first = false {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		if first && o.header {
			continue
		}
		row, _ := cr.FieldPos(0)
		p, err := parseRecord(record, o.columns, row)
		if err != nil {
			return nil, err
		}
		if len(points) > 0 && len(p) != len(points[0]) {
			return nil, fmt.Errorf("dataset: row %d: %w: %d values, want %d",
				row, kmeans.ErrDimensionMismatch, len(p), len(points[0]))
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, ErrNoRows
	}
	return points, nil
}

func parseRecord(record []string, columns []int, row int) (kmeans.Point, error) {
	if columns == nil {
		p := make(kmeans.Point, len(record))
		for i, field := range record {
			v, err := parseFloat(field)
			if err != nil {
				return nil, &ParseError{Row: row, Column: i + 1, Err: err}
			}
			p[i] = v
		}
		return p, nil
	}
	p := make(kmeans.Point, len(columns))
	for i, c := range columns {
		if c >= len(record) {
			return nil, &ParseError{Row: row, Column: c + 1, Err: errors.New("missing column")}
		}
		v, err := parseFloat(record[c])
		if err != nil {
			return nil, &ParseError{Row: row, Column: c + 1, Err: err}
		}
		p[i] = v
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ReadFile opens path and calls ReadCSV on it.
func ReadFile(path string, opts ...Option) ([]kmeans.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, opts...)
}
