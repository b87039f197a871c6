// Package datautil handles structured data files (JSON and CSV) and the
// conversions between them, plus generic map helpers.
package datautil

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "parsing %s", path)
	}
	return nil
}

// WriteJSON encodes v into the file at path, optionally indented.
func WriteJSON(path string, v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "encoding %s", path)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadCSV reads the CSV file at path. With hasHeader the first row becomes
// map keys; otherwise keys are the 0-based column indexes as strings.
func ReadCSV(path string, hasHeader bool) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "parsing %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var header []string
	if hasHeader {
		header = rows[0]
		rows = rows[1:]
	} else {
		header = make([]string, len(rows[0]))
		for i := range header {
			header[i] = fmt.Sprint(i)
		}
	}

	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		out = append(out, record)
	}
	return out, nil
}

// WriteCSV writes records to path with a header row. fieldOrder fixes the
// column order; nil derives it from the first record's sorted keys.
func WriteCSV(path string, records []map[string]string, fieldOrder []string) error {
	if len(records) == 0 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "no records to write")
	}
	if fieldOrder == nil {
		for key := range records[0] {
			fieldOrder = append(fieldOrder, key)
		}
		sort.Strings(fieldOrder)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	if err := w.Write(fieldOrder); err != nil {
		f.Close()
		return err
	}
	row := make([]string, len(fieldOrder))
	for _, record := range records {
		for i, key := range fieldOrder {
			row[i] = record[key]
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// JSONToCSV converts a JSON array of flat objects into a CSV file.
func JSONToCSV(jsonPath, csvPath string) error {
	var records []map[string]any
	if err := ReadJSON(jsonPath, &records); err != nil {
		return err
	}
	if len(records) == 0 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "%s holds no records", jsonPath)
	}
	rows := make([]map[string]string, len(records))
	for i, record := range records {
		row := make(map[string]string, len(record))
		for key, value := range record {
			row[key] = fmt.Sprint(value)
		}
		rows[i] = row
	}
	return WriteCSV(csvPath, rows, nil)
}

// CSVToJSON converts a CSV file with a header row into an indented JSON
// array of objects.
func CSVToJSON(csvPath, jsonPath string) error {
	records, err := ReadCSV(csvPath, true)
	if err != nil {
		return err
	}
	return WriteJSON(jsonPath, records, true)
}

// Flatten collapses nested maps into a single level, joining keys with sep.
func Flatten(m map[string]any, sep string) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", m, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any, sep string) {
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + sep + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, full, nested, sep)
			continue
		}
		out[full] = value
	}
}

// Merge combines maps left to right; later maps win on key conflicts.
func Merge(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}

// Filter returns a copy of m containing only the named keys.
func Filter(m map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := m[key]; ok {
			out[key] = value
		}
	}
	return out
}
