package models

import (
	"encoding/json"
	"time"
)

// Common constants
const (
	// TimestampLayout is the ISO-8601 layout used for every timestamp in a
	// response body (UTC, millisecond precision).
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// IDLength is the length of identifiers minted for created resources.
	IDLength = 9

	// IDAlphabet is the base-36 alphabet identifiers are drawn from.
	IDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// SeedTimestamp is the creation time reported by canned records.
	SeedTimestamp = "2023-01-01T00:00:00.000Z"
)

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a timestamp produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// RawJSON encodes v as a field value that is carried verbatim in a record.
// It panics if v cannot be encoded, so it is meant for fixed values only.
func RawJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
