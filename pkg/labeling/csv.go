package labeling

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseRows reads a CSV stream whose first row names the columns and returns
// the remaining rows as column-keyed maps, in file order. Short rows leave
// their trailing columns absent; extra cells are dropped.
func ParseRows(r io.Reader) (columns []string, rows []map[string]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, nil, err
	}

	columns = make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(cells) {
				continue
			}
			row[col] = cells[i]
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

func hasColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
