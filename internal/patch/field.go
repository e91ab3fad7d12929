// Package patch provides an optional-field wrapper for sparse update
// payloads. A Field records whether its JSON key was present at all, so
// callers can tell "not provided" apart from "explicitly set to null".
package patch

import (
	"bytes"
	"encoding/json"
)

// Field wraps a patchable value of type T. The zero value means the key
// was absent from the payload.
type Field[T any] struct {
	present bool
	value   *T
}

// Set returns a Field carrying the given value. Used by tests and internal
// callers that build patches programmatically.
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// Null returns a Field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{present: true}
}

// UnmarshalJSON marks the field as present. encoding/json only invokes this
// for keys that exist in the payload, which is exactly the presence check
// the update flow needs.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(data, []byte("null")) {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

// MarshalJSON renders the held value, or null when unset/null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.value)
}

// Present reports whether the key appeared in the payload, regardless of
// its value.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the key was present and explicitly null.
func (f Field[T]) IsNull() bool { return f.present && f.value == nil }

// Value returns the held value and whether one is held. A null or absent
// field returns the zero value and false.
func (f Field[T]) Value() (T, bool) {
	if f.value == nil {
		var zero T
		return zero, false
	}
	return *f.value, true
}

// Ptr returns a pointer to the held value, or nil for null/absent fields.
// The pointer refers to a copy; mutating it does not affect the Field.
func (f Field[T]) Ptr() *T {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}
