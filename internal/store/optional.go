package store

import "encoding/json"

// Optional distinguishes an omitted JSON field from one explicitly set to
// null. Set is true when the key was present; Valid is true when it carried a
// non-null value. This gives partial updates "omit keeps, null clears"
// semantics without inspecting raw request maps.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil for explicit null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
