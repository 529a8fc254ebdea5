// Package frame provides the column-oriented candle table consumed by the indicator
// pipeline. Tables are immutable once built: every With* method returns a new table
// and leaves the receiver untouched.
package frame

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
)

var (
	// ErrMissingColumn is returned when a named column does not exist.
	ErrMissingColumn = errors.New("missing column")
	// ErrColumnKind is returned when a column exists but holds the other kind of data.
	ErrColumnKind = errors.New("column kind mismatch")
	// ErrLengthMismatch is returned when a column length differs from the table length.
	ErrLengthMismatch = errors.New("column length mismatch")
	// ErrRowOutOfRange is returned for row indices outside the table.
	ErrRowOutOfRange = errors.New("row out of range")
)

type column struct {
	name   string
	floats []indicators.Value
	labels []string
	label  bool
}

// Table ordered rows of named float and label columns.
type Table struct {
	rows    int
	columns []column
	index   map[string]int
}

// New creates an empty table with n rows and no columns.
func New(n int) *Table {
	if n < 0 {
		n = 0
	}
	return &Table{rows: n, index: make(map[string]int)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns column names in insertion order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// Has reports whether the table has a column with this name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) lookup(name string) (column, error) {
	i, ok := t.index[name]
	if !ok {
		return column{}, errors.Wrapf(ErrMissingColumn, "column %q", name)
	}
	return t.columns[i], nil
}

// Float returns a copy of a float column.
func (t *Table) Float(name string) ([]indicators.Value, error) {
	c, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	if c.label {
		return nil, errors.Wrapf(ErrColumnKind, "column %q holds labels", name)
	}
	out := make([]indicators.Value, len(c.floats))
	copy(out, c.floats)
	return out, nil
}

// Numbers returns a float column as raw float64, undefined cells become NaN.
func (t *Table) Numbers(name string) ([]float64, error) {
	values, err := t.Float(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.OrNaN()
	}
	return out, nil
}

// Labels returns a copy of a label column.
func (t *Table) Labels(name string) ([]string, error) {
	c, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	if !c.label {
		return nil, errors.Wrapf(ErrColumnKind, "column %q holds numbers", name)
	}
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out, nil
}

// FloatAt returns a single cell of a float column.
func (t *Table) FloatAt(name string, row int) (indicators.Value, error) {
	if row < 0 || row >= t.rows {
		return indicators.Undefined(), errors.Wrapf(ErrRowOutOfRange, "row %d of %d", row, t.rows)
	}
	c, err := t.lookup(name)
	if err != nil {
		return indicators.Undefined(), err
	}
	if c.label {
		return indicators.Undefined(), errors.Wrapf(ErrColumnKind, "column %q holds labels", name)
	}
	return c.floats[row], nil
}

// LabelAt returns a single cell of a label column.
func (t *Table) LabelAt(name string, row int) (string, error) {
	if row < 0 || row >= t.rows {
		return "", errors.Wrapf(ErrRowOutOfRange, "row %d of %d", row, t.rows)
	}
	c, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	if !c.label {
		return "", errors.Wrapf(ErrColumnKind, "column %q holds numbers", name)
	}
	return c.labels[row], nil
}

// WithFloat returns a new table with the float column set.
// An existing column of the same name is replaced in place of the column order.
func (t *Table) WithFloat(name string, values []indicators.Value) (*Table, error) {
	if len(values) != t.rows {
		return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	floats := make([]indicators.Value, len(values))
	copy(floats, values)
	return t.with(column{name: name, floats: floats}), nil
}

// WithNumbers is WithFloat for raw float64 input; NaN becomes undefined.
func (t *Table) WithNumbers(name string, values []float64) (*Table, error) {
	wrapped := make([]indicators.Value, len(values))
	for i, v := range values {
		wrapped[i] = indicators.Defined(v)
	}
	return t.WithFloat(name, wrapped)
}

// WithLabels returns a new table with the label column set.
func (t *Table) WithLabels(name string, values []string) (*Table, error) {
	if len(values) != t.rows {
		return nil, errors.Wrapf(ErrLengthMismatch, "column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	labels := make([]string, len(values))
	copy(labels, values)
	return t.with(column{name: name, labels: labels, label: true}), nil
}

// with copies the column list; cell slices are shared because they are never written
// after construction.
func (t *Table) with(c column) *Table {
	next := &Table{
		rows:    t.rows,
		columns: make([]column, len(t.columns), len(t.columns)+1),
		index:   make(map[string]int, len(t.index)+1),
	}
	copy(next.columns, t.columns)
	for k, v := range t.index {
		next.index[k] = v
	}

	if i, ok := next.index[c.name]; ok {
		next.columns[i] = c
		return next
	}
	next.index[c.name] = len(next.columns)
	next.columns = append(next.columns, c)
	return next
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	next := New(t.rows)
	for _, c := range t.columns {
		cp := column{name: c.name, label: c.label}
		if c.label {
			cp.labels = append([]string(nil), c.labels...)
		} else {
			cp.floats = append([]indicators.Value(nil), c.floats...)
		}
		next.index[c.name] = len(next.columns)
		next.columns = append(next.columns, cp)
	}
	return next
}

// Equal reports whether both tables hold the same columns, in the same order, with
// the same cells.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.rows != other.rows || len(t.columns) != len(other.columns) {
		return false
	}
	for i, c := range t.columns {
		o := other.columns[i]
		if c.name != o.name || c.label != o.label {
			return false
		}
		if c.label {
			for j := range c.labels {
				if c.labels[j] != o.labels[j] {
					return false
				}
			}
			continue
		}
		for j := range c.floats {
			if c.floats[j] != o.floats[j] {
				return false
			}
		}
	}
	return true
}
