package store

import (
	"bytes"
	"encoding/json"

	"alcyxob/fitness-coach/internal/dberr"
)

// EncodeRow converts a record to its wire shape. Numbers are kept as json.Number so
// integers and exact decimals survive the conversion unchanged.
func EncodeRow(record any) (Row, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	row, err := DecodeRow(data)
	if err != nil {
		return nil, dberr.Unknown(err)
	}
	return row, nil
}

// DecodeRow parses a single JSON object into a Row.
func DecodeRow(data []byte) (Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var row Row
	if err := dec.Decode(&row); err != nil {
		return nil, err
	}
	return row, nil
}

// DecodeRows decodes a JSON array of rows into dest, a pointer to a slice.
// A null payload decodes as an empty result.
func DecodeRows(data []byte, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return dberr.Decoding(err)
	}
	return nil
}

// MarshalRows encodes rows as a JSON array.
func MarshalRows(rows []Row) ([]byte, error) {
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(rows)
}

// Clone returns a shallow copy of row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without returns a copy of row with columns removed.
func (r Row) Without(columns ...string) Row {
	out := r.Clone()
	for _, c := range columns {
		delete(out, c)
	}
	return out
}
