// Package export serializes rotation tables for download and offline use.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/fawsd/crewrotation/core/rotation"
)

// WriteJSON writes the table to w in its column-oriented JSON form.
func WriteJSON(w io.Writer, t rotation.Table) error {
	enc := json.NewEncoder(w)
	return enc.Encode(t)
}

// WriteCSV writes the table to w with one header row and one row per record,
// columns in table order. Missing cells are written empty.
func WriteCSV(w io.Writer, t rotation.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	row := make([]string, len(t.Columns))
	for _, rec := range t.Data {
		for i, col := range t.Columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
