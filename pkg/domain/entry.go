package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk representation of Entry.LastUpdate.
// It carries microseconds and no zone; values are read back in local time.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// timestampParseLayout also accepts values written without a fractional part.
const timestampParseLayout = "2006-01-02 15:04:05.999999999"

// Timestamp is a time.Time with the session file encoding.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the precision kept on disk.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Microsecond)}
}

// ParseTimestamp parses a value in TimestampLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(timestampParseLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

// String formats the timestamp in TimestampLayout.
func (t Timestamp) String() string {
	return t.Local().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entry is the stored cursor position of a single document.
// X and Y are host coordinates (e.g. row/column) and are never interpreted.
type Entry struct {
	X          int       `json:"x"`
	Y          int       `json:"y"`
	LastUpdate Timestamp `json:"last_update"`
}

// entryWire rejects entries missing any of the three fields.
type entryWire struct {
	X          *int       `json:"x"`
	Y          *int       `json:"y"`
	LastUpdate *Timestamp `json:"last_update"`
}

// UnmarshalJSON implements json.Unmarshaler.
// An entry is either complete or an error, never partially filled.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.X == nil || w.Y == nil || w.LastUpdate == nil {
		return fmt.Errorf("incomplete entry: x, y and last_update are required")
	}
	*e = Entry{X: *w.X, Y: *w.Y, LastUpdate: *w.LastUpdate}
	return nil
}

// Age returns the number of whole days elapsed between the last update and now.
func (e Entry) Age(now time.Time) int {
	return int(now.Sub(e.LastUpdate.Time) / (24 * time.Hour))
}

// Table maps an absolute document path to its Entry.
// Keys are compared byte for byte; no path normalization is applied.
type Table map[string]Entry

// NewTable returns an empty table.
func NewTable() Table {
	return make(Table)
}

// Clone returns a shallow copy; Entry is a value type so the copy is independent.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Equal reports whether both tables hold the same keys with identical entries.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for k, v := range t {
		o, ok := other[k]
		if !ok || o.X != v.X || o.Y != v.Y || !o.LastUpdate.Equal(v.LastUpdate.Time) {
			return false
		}
	}
	return true
}
