package petstore

import (
	"encoding/json"
	"fmt"
)

// Lookup is the outcome of a fetch whose body is decoded into T.
//
// Found is true only when the call returned 200 and the body decoded. When
// the body did not decode, Err holds the cause.
type Lookup[T any] struct {
	Result Result
	Value  T
	Found  bool
	Err    error
}

// Get returns the value and whether it is present.
func (l Lookup[T]) Get() (T, bool) { return l.Value, l.Found }

// DecodeJSON decodes the body of a result into T.
func DecodeJSON[T any](r Result) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(r.Body), &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

func lookupFrom[T any](r Result) Lookup[T] {
	l := Lookup[T]{Result: r}
	if !r.OK() {
		return l
	}
	v, err := DecodeJSON[T](r)
	if err != nil {
		l.Err = err
		return l
	}
	l.Value = v
	l.Found = true
	return l
}
