package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// FlexTime is a timestamp that the backend may send either as an ISO string,
// a {"$date": "..."} wrapper, or epoch milliseconds. A value in none of
// these shapes decodes as absent and is kept in Unparsed for logging.
type FlexTime struct {
	time.Time
	Unparsed string
}

// NewFlexTime wraps t
func NewFlexTime(t time.Time) *FlexTime {
	return &FlexTime{Time: t}
}

// ParseFlexTime parses a date string using the accepted layouts
func ParseFlexTime(s string) (*FlexTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &FlexTime{Time: t.UTC()}, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	*f = FlexTime{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		parsed, err := ParseFlexTime(s)
		if err != nil {
			f.Unparsed = s
			return nil
		}
		*f = *parsed
		return nil
	case '{':
		var wrapped struct {
			Date json.RawMessage `json:"$date"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil || len(wrapped.Date) == 0 {
			f.Unparsed = string(data)
			return nil
		}
		return f.UnmarshalJSON(wrapped.Date)
	default:
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			f.Unparsed = string(data)
			return nil
		}
		f.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}
}

// Invalid reports whether the backend sent a date that could not be read
func (f *FlexTime) Invalid() bool {
	return f != nil && f.Unparsed != ""
}

// MarshalJSON implements json.Marshaler
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.UTC().Format(time.RFC3339))
}

// TimePtr returns the underlying time, or nil for an absent value
func (f *FlexTime) TimePtr() *time.Time {
	if f == nil || f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}
