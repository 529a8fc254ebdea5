package frame

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/trendfilter/pkg/indicators"
)

// ReadCSV reads a table from CSV. The first record names the columns.
// A column whose non-empty cells all parse as numbers becomes a float column, with
// empty cells undefined; any other column is kept as labels.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv has no header")
	}

	header := records[0]
	rows := records[1:]
	t := New(len(rows))

	for col, rawName := range header {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return nil, errors.Errorf("csv column %d has empty name", col)
		}
		if t.Has(name) {
			return nil, errors.Errorf("csv column %q is duplicated", name)
		}

		cells := make([]string, len(rows))
		for i, record := range rows {
			cells[i] = strings.TrimSpace(record[col])
		}

		if values, ok := parseNumbers(cells); ok {
			t = t.with(column{name: name, floats: values})
			continue
		}
		t = t.with(column{name: name, labels: cells, label: true})
	}

	return t, nil
}

func parseNumbers(cells []string) ([]indicators.Value, bool) {
	values := make([]indicators.Value, len(cells))
	for i, cell := range cells {
		if cell == "" || strings.EqualFold(cell, "nan") {
			continue
		}
		d, err := decimal.NewFromString(cell)
		if err != nil {
			return nil, false
		}
		values[i] = decimalToValue(d)
	}
	return values, true
}
