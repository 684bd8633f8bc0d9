package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a row identifier that decodes from a JSON number or a numeric string.
// Mobile clients send numbers; the web client sends strings. A value that is
// not an integer still decodes, but is not Valid and matches no row.
type ID struct {
	n     int64
	valid bool
}

func NewID(n int64) ID { return ID{n: n, valid: true} }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			data = []byte(s)
		}
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	*id = ID{n: n, valid: err == nil}
	return nil
}

func (id ID) Valid() bool { return id.valid }

func (id ID) Int64() int64 { return id.n }
