// Package field holds the optional string value shared by every inventory record.
package field

import "strings"

// Value is an optional string field. The zero Value is unknown.
//
// Unknown values compare equal to each other, so two records that both lack
// a field match on that field when used as aggregation keys.
type Value struct {
	text  string
	known bool
}

// Unknown is the distinguished missing value.
var Unknown = Value{}

// Known wraps s. Blank text is treated as unknown.
func Known(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return Value{text: s, known: true}
}

// Get returns the text and whether the value is known.
func (v Value) Get() (string, bool) {
	return v.text, v.known
}

// IsKnown reports whether v holds text.
func (v Value) IsKnown() bool {
	return v.known
}

// Or returns the text, or fallback when v is unknown.
func (v Value) Or(fallback string) string {
	if !v.known {
		return fallback
	}
	return v.text
}

// OrValue returns v when known, otherwise fallback.
func (v Value) OrValue(fallback Value) Value {
	if v.known {
		return v
	}
	return fallback
}

// String renders unknown as an empty string.
func (v Value) String() string {
	return v.text
}
