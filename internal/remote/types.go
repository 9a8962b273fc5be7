package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a task record as returned by the remote collection.
// Name and Active are nil when the record omits them.
type Record struct {
	ID     string
	Name   *string
	Active *bool
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// NewRecord builds a complete record.
func NewRecord(id, name string, active bool) Record {
	return Record{ID: id, Name: String(name), Active: Bool(active)}
}

type wireRecord struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Name   *string         `json:"name,omitempty"`
	Active *bool           `json:"active,omitempty"`
}

// MarshalJSON encodes the record with a string id.
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{Name: r.Name, Active: r.Active}
	if r.ID != "" {
		id, err := json.Marshal(r.ID)
		if err != nil {
			return nil, err
		}
		w.ID = id
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts ids encoded as JSON strings or numbers.
// A non-boolean "active" or non-string "name" is a decode error.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}
	*r = Record{ID: id, Name: w.Name, Active: w.Active}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id %s", raw)
	}
	return n.String(), nil
}
