package utils

import "encoding/json"

// ToJSONColumn serializes a slice for storage in a text column.
func ToJSONColumn[T any](v []T) string {
	if len(v) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// FromJSONColumn deserializes a text column back into a slice. Empty or
// invalid content yields an empty slice rather than an error.
func FromJSONColumn[T any](s string) []T {
	if s == "" || s == "[]" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []T{}
	}
	return out
}
