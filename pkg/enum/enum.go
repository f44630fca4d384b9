package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type to the set of its declared values, keyed by
// their string form. Enums are declared in package-level var blocks, so the
// registry is only written during initialization.
var registry = map[reflect.Type]map[string]any{}

// New registers value as a member of its enum type and returns it unchanged.
func New[T ~string](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := registry[t]; !ok {
		registry[t] = map[string]any{}
	}

	registry[t][string(value)] = value
	return value
}

// ToEnum converts a raw string to a declared member of the enum T.
func ToEnum[T ~string](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	v, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return v.(T), nil
}
