package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Nullable is a patch field that tells an absent key apart from an explicit
// null. Set is true when the key was present; Valid is false for null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Null returns a field that clears the stored value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Of returns a field that sets v.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns nil for null, a pointer to a copy of the value otherwise.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Date accepts either an RFC3339 timestamp or a plain "2006-01-02" day,
// which is read as midnight UTC.
type Date struct {
	time.Time
}

const dayLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// TimePtr is nil for a nil date.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
