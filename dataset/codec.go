package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/malbuddy/malbuddy/errs"
)

// File layouts.
const (
	// OrientColumns maps every column to an index-keyed object: {"user": {"0": "a"}, "rating": {"0": 8}}.
	OrientColumns = "columns"

	// OrientRecords is a plain array of records: [{"user": "a", "rating": 8}].
	OrientRecords = "records"
)

var errEmptyFile = errors.New("empty dataset file")

func decode[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmptyFile
	}

	var records []T
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	case '{':
		var columns map[string]map[string]json.RawMessage
		if err := json.Unmarshal(data, &columns); err != nil {
			return nil, err
		}

		rows, err := pivot(columns)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unrecognized dataset layout starting with %q", data[0])
	}

	if records == nil {
		records = []T{}
	}
	return records, nil
}

// pivot turns index-keyed columns into rows ordered by numeric index.
func pivot(columns map[string]map[string]json.RawMessage) ([]map[string]json.RawMessage, error) {
	rowsByIndex := make(map[int]map[string]json.RawMessage)
	for column, cells := range columns {
		for index, value := range cells {
			i, err := strconv.Atoi(index)
			if err != nil {
				return nil, fmt.Errorf("column %q: non-numeric index %q", column, index)
			}

			row, ok := rowsByIndex[i]
			if !ok {
				row = make(map[string]json.RawMessage)
				rowsByIndex[i] = row
			}
			row[column] = value
		}
	}

	indexes := make([]int, 0, len(rowsByIndex))
	for i := range rowsByIndex {
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	rows := make([]map[string]json.RawMessage, 0, len(indexes))
	for _, i := range indexes {
		rows = append(rows, rowsByIndex[i])
	}
	return rows, nil
}

func encode[T any](records []T, orient string) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	switch orient {
	case OrientRecords:
		return json.Marshal(records)
	case "", OrientColumns:
	default:
		return nil, fmt.Errorf("%w: unknown dataset orientation %q", errs.ErrConfig, orient)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	columns := make(map[string]map[string]json.RawMessage)
	for i, row := range rows {
		index := strconv.Itoa(i)
		for column, value := range row {
			cells, ok := columns[column]
			if !ok {
				cells = make(map[string]json.RawMessage)
				columns[column] = cells
			}
			cells[index] = value
		}
	}

	return json.Marshal(columns)
}
