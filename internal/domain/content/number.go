package content

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field the backend may send as an integer, a fraction
// or a numeric string. Anything else decodes as absent rather than failing
// the whole record.
type Number struct {
	Value float64
	Valid bool
}

// NewNumber returns a present number
func NewNumber(v float64) *Number {
	return &Number{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Float returns the value, or nil when absent
func (n *Number) Float() *float64 {
	if n == nil || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Int returns the value truncated to an integer; absent is 0
func (n *Number) Int() int {
	if n == nil || !n.Valid {
		return 0
	}
	return int(n.Value)
}
