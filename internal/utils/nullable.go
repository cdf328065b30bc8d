// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field that distinguishes three states:
//
//   - absent:        Set == false
//   - explicit null: Set == true,  Valid == false
//   - value:         Set == true,  Valid == true
//
// Partial updates use it to tell "leave unchanged" apart from "clear".
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

// Null returns an explicitly-null Nullable.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Value: v, Valid: true, Set: true} }

// UnmarshalJSON marks the field as present and decodes null or a value.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		n.Value, n.Valid = zero, false
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON writes null unless a value is held.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
